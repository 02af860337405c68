package session

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	header lipgloss.Style
	index  lipgloss.Style
	dim    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		index:  r.NewStyle().Foreground(lipgloss.Color("12")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func pad(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

// render draws the grid with logical column numbers across the top and row numbers down the side.
func (s *Session) render() string {
	records := s.grid.Records()
	cols := s.grid.Cols()
	if len(records) == 0 || cols == 0 {
		return "(empty table)"
	}

	widths := make([]int, cols)
	for j := range widths {
		widths[j] = len(strconv.Itoa(j))
		for _, rec := range records {
			widths[j] = max(widths[j], lipgloss.Width(rec[j]))
		}
	}
	indexWidth := len(strconv.Itoa(len(records) - 1))

	bar := s.styles.dim.Render("|")
	lines := make([]string, 0, len(records)+2)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", indexWidth))
	for j, w := range widths {
		b.WriteString(" " + bar + " ")
		b.WriteString(s.styles.header.Render(pad(strconv.Itoa(j), w)))
	}
	lines = append(lines, strings.TrimRight(b.String(), " "))

	parts := []string{strings.Repeat("-", indexWidth)}
	for _, w := range widths {
		parts = append(parts, strings.Repeat("-", w))
	}
	lines = append(lines, s.styles.dim.Render(strings.Join(parts, "-+-")))

	for i, rec := range records {
		b.Reset()
		b.WriteString(s.styles.index.Render(pad(strconv.Itoa(i), indexWidth)))
		for j, w := range widths {
			b.WriteString(" " + bar + " ")
			b.WriteString(pad(rec[j], w))
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}

	return strings.Join(lines, "\n")
}
