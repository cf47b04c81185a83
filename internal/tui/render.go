package tui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"

	"github.com/felixgeelhaar/uniattend/internal/errors"
)

// maxColumns bounds the width of images that are not a recognizable
// QR symbol.
const maxColumns = 64

// RenderPNG draws a PNG QR code with half-block characters, two pixel
// rows per line. Light modules are drawn, dark ones left blank, so the
// code scans on dark terminals.
func RenderPNG(data []byte) (string, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeCodeUnreadable, "code image is not a PNG", err)
	}
	grid, ok := Modules(img)
	if !ok {
		grid = sample(img, maxColumns)
	}
	return renderGrid(grid), nil
}

// Modules samples the QR symbol in img into a grid of dark modules, quiet
// zone excluded. The module size is measured on the top-left finder
// pattern and snapped to the nearest symbol version.
func Modules(img image.Image) ([][]bool, bool) {
	b := img.Bounds()
	x0, y0, found := -1, -1, false
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isDark(img.At(x, y)) {
				x0, y0, found = x, y, true
				break
			}
		}
	}
	if !found {
		return nil, false
	}

	run := 0
	for x := x0; x < b.Max.X && isDark(img.At(x, y0)); x++ {
		run++
	}
	right := x0
	for x := b.Max.X - 1; x > x0; x-- {
		if isDark(img.At(x, y0)) {
			right = x
			break
		}
	}
	if run < 7 {
		return nil, false
	}

	width := float64(right - x0 + 1)
	n := int(math.Round(width / (float64(run) / 7)))
	version := int(math.Round(float64(n-21) / 4))
	if version < 0 {
		version = 0
	}
	n = 21 + 4*version
	if n > 177 {
		return nil, false
	}
	m := width / float64(n)

	grid := make([][]bool, n)
	for i := range grid {
		y := y0 + int((float64(i)+0.5)*m)
		if y >= b.Max.Y {
			return nil, false
		}
		row := make([]bool, n)
		for j := range row {
			row[j] = isDark(img.At(x0+int((float64(j)+0.5)*m), y))
		}
		grid[i] = row
	}
	return grid, true
}

// sample downscales img to at most cols columns.
func sample(img image.Image, cols int) [][]bool {
	b := img.Bounds()
	step := (b.Dx() + cols - 1) / cols
	if step < 1 {
		step = 1
	}
	var grid [][]bool
	for y := b.Min.Y; y < b.Max.Y; y += step {
		var row []bool
		for x := b.Min.X; x < b.Max.X; x += step {
			row = append(row, isDark(img.At(x, y)))
		}
		grid = append(grid, row)
	}
	return grid
}

// renderGrid draws grid inside a one module quiet zone.
func renderGrid(grid [][]bool) string {
	rows := len(grid)
	cols := 0
	if rows > 0 {
		cols = len(grid[0])
	}
	light := func(r, c int) bool {
		switch {
		case r > rows+1:
			return false
		case r == 0 || c == 0 || r == rows+1 || c == cols+1:
			return true
		case c-1 >= len(grid[r-1]):
			return false
		}
		return !grid[r-1][c-1]
	}

	var sb strings.Builder
	for r := 0; r < rows+2; r += 2 {
		for c := 0; c < cols+2; c++ {
			top, bottom := light(r, c), light(r+1, c)
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteByte(' ')
			}
		}
		if r+2 < rows+2 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func isDark(c color.Color) bool {
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return false
	}
	return (299*r+587*g+114*b)/1000 < 0x8000
}
