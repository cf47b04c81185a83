package ux

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Tabular is implemented by command results that render as a table in
// text mode.
type Tabular interface {
	Table() Table
}

// Table is a titled grid of cells.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Empty is printed instead of the grid when there are no rows
	Empty string
	// Footer is printed below the grid
	Footer string
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Render draws the table, without colors when noColor is set.
func (t Table) Render(noColor bool) string {
	var b strings.Builder
	style := func(s lipgloss.Style) lipgloss.Style {
		if noColor {
			return s.UnsetForeground().UnsetBold()
		}
		return s
	}

	if t.Title != "" {
		b.WriteString(style(titleStyle).Render(t.Title))
		b.WriteString("\n")
	}

	if len(t.Rows) == 0 {
		b.WriteString(style(mutedStyle).Render(t.Empty))
	} else {
		grid := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(t.Headers...).
			Rows(t.Rows...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return style(headerStyle)
				}
				return cellStyle
			})
		b.WriteString(grid.String())
	}

	if t.Footer != "" {
		b.WriteString("\n")
		b.WriteString(t.Footer)
	}
	return b.String()
}
