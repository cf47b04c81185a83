package attendance

import (
	"sort"
	"time"

	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/platform"
)

// JournalRow is one student's assessments keyed by formatted date.
type JournalRow struct {
	UserID domain.ID         `json:"userId" yaml:"userId"`
	Name   string            `json:"name" yaml:"name"`
	Email  string            `json:"email" yaml:"email"`
	Marks  map[string]string `json:"marks" yaml:"marks"`
}

// Journal is the students × dates grid of a group in one subject.
type Journal struct {
	Dates []string     `json:"dates" yaml:"dates"`
	Rows  []JournalRow `json:"rows" yaml:"rows"`
}

// PivotJournal groups entries per student and per day. Students keep the
// order of their first entry; dates are sorted chronologically, with
// unparseable dates last. A later entry for the same day wins.
func PivotJournal(entries []platform.JournalEntry, loc *time.Location) Journal {
	j := Journal{Dates: []string{}, Rows: []JournalRow{}}
	index := map[domain.ID]int{}
	seen := map[string]time.Time{}
	var unparsed []string

	for _, e := range entries {
		label := FormatDate(e.DateCreate, loc)
		if _, ok := seen[label]; !ok {
			if t, err := ParseTime(e.DateCreate, loc); err == nil {
				seen[label] = t
			} else {
				seen[label] = time.Time{}
				unparsed = append(unparsed, label)
			}
		}

		i, ok := index[e.UserID]
		if !ok {
			i = len(j.Rows)
			index[e.UserID] = i
			j.Rows = append(j.Rows, JournalRow{
				UserID: e.UserID,
				Name:   e.Name,
				Email:  e.Email,
				Marks:  map[string]string{},
			})
		}
		j.Rows[i].Marks[label] = e.Assessment
	}

	for label, t := range seen {
		if !t.IsZero() {
			j.Dates = append(j.Dates, label)
		}
	}
	sort.Slice(j.Dates, func(a, b int) bool {
		return seen[j.Dates[a]].Before(seen[j.Dates[b]])
	})
	j.Dates = append(j.Dates, unparsed...)
	return j
}

// Mark returns the assessment of row on date, or "" when there is none.
func (r JournalRow) Mark(date string) string {
	return r.Marks[date]
}
