package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/samthor/treegrid/session"
)

func TestPrint(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)

	var buf bytes.Buffer
	p := newPrinter(r, &buf)

	p.print(session.Reply{})
	p.print(session.Reply{Status: session.StatusSuccess, Message: "Row appended."})
	p.print(session.Reply{Status: session.StatusInfo, Message: "a\nb"})

	want := "SUCCESS: Row appended.\nINFO:\na\nb\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
