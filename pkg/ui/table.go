package ui

import (
	"strings"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Table writes rows under a header. On a terminal the table has a rounded
// border and wraps to the terminal width; otherwise it is a markdown table.
// Empty cells are written as "-".
func (w *Writer) Table(header []string, rows [][]string) {
	if len(header) == 0 {
		return
	}
	if w.tty {
		w.Println(renderTable(header, rows, w.Width()))
	} else {
		w.Println(renderMarkdownTable(header, rows))
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func renderTable(header []string, rows [][]string, width int) string {
	t := lgtable.New().
		Headers(header...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headingStyle
			}
			return lipgloss.NewStyle()
		})
	for _, row := range rows {
		t.Row(cells(row, len(header))...)
	}

	// Only constrain to the width if the natural render exceeds it
	result := t.Render()
	if width > 0 && widest(result) > width {
		t.Width(width)
		result = t.Render()
	}
	return result
}

func renderMarkdownTable(header []string, rows [][]string) string {
	var buf strings.Builder
	buf.WriteString("| " + strings.Join(header, " | ") + " |\n|")
	for range header {
		buf.WriteString("---|")
	}
	for _, row := range rows {
		buf.WriteString("\n| " + strings.Join(cells(row, len(header)), " | ") + " |")
	}
	return buf.String()
}

// cells pads or truncates a row to n cells, replacing empty values
// and collapsing newlines
func cells(row []string, n int) []string {
	result := make([]string, n)
	for i := range result {
		if i < len(row) && strings.TrimSpace(row[i]) != "" {
			result[i] = strings.ReplaceAll(row[i], "\n", " ")
		} else {
			result[i] = "-"
		}
	}
	return result
}

func widest(text string) int {
	widest := 0
	for _, line := range strings.Split(text, "\n") {
		if n := lipgloss.Width(line); n > widest {
			widest = n
		}
	}
	return widest
}
