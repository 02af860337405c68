package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samthor/treegrid/session"
)

type printer struct {
	w      io.Writer
	status map[session.Status]lipgloss.Style
}

func newPrinter(r *lipgloss.Renderer, w io.Writer) *printer {
	return &printer{
		w: w,
		status: map[session.Status]lipgloss.Style{
			session.StatusSuccess: r.NewStyle().Foreground(lipgloss.Color("10")),
			session.StatusProblem: r.NewStyle().Foreground(lipgloss.Color("9")),
			session.StatusWarning: r.NewStyle().Foreground(lipgloss.Color("11")),
			session.StatusInfo:    r.NewStyle().Foreground(lipgloss.Color("14")),
			session.StatusExit:    r.NewStyle().Foreground(lipgloss.Color("8")),
		},
	}
}

// print writes a reply as "STATUS: message", coloring the status. Blank replies print nothing.
func (p *printer) print(r session.Reply) {
	if r.Status == "" {
		return
	}

	label := strings.ToUpper(string(r.Status)) + ":"
	if style, ok := p.status[r.Status]; ok {
		label = style.Render(label)
	}

	sep := " "
	if strings.Contains(r.Message, "\n") {
		sep = "\n"
	}
	fmt.Fprint(p.w, label, sep, r.Message, "\n")
}
