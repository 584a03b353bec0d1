package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

// Table renders header and rows as aligned columns separated by two spaces.
// The last column is truncated so a line fits in maxWidth cells (0 means no
// limit). styled enables the header color.
func Table(header []string, rows [][]string, maxWidth int, styled bool) string {
	cols := len(header)
	widths := make([]int, cols)
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, isHeader bool) {
		used := 0
		var line strings.Builder
		for i := range cols {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == cols-1 {
				if maxWidth > 0 {
					cell = Truncate(cell, max(maxWidth-used, 4))
				}
				line.WriteString(cell)
				break
			}
			line.WriteString(runewidth.FillRight(cell, widths[i]))
			line.WriteString("  ")
			used += widths[i] + 2
		}
		text := strings.TrimRight(line.String(), " ")
		if isHeader && styled {
			text = headerStyle.Render(text)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}

	writeRow(header, true)
	for _, row := range rows {
		writeRow(row, false)
	}
	return b.String()
}
