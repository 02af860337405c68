// Command gridsh is an interactive shell for editing CSV files.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/ergochat/readline"
	"github.com/samthor/treegrid/internal/logger"
	"github.com/samthor/treegrid/session"
)

var (
	flagHistory = flag.String("history", filepath.Join(os.TempDir(), ".gridsh_history"), "readline history file")
)

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("print"),

	readline.PcItem("append_row"),
	readline.PcItem("append_col"),
	readline.PcItem("insert_row"),
	readline.PcItem("insert_col"),
	readline.PcItem("delete_row"),
	readline.PcItem("delete_col"),
	readline.PcItem("swap_rows"),
	readline.PcItem("swap_cols"),

	readline.PcItem("write"),
	readline.PcItem("read"),
	readline.PcItem("undo"),
	readline.PcItem("redo"),
	readline.PcItem("typed"),
	readline.PcItem("dump"),

	readline.PcItem("load"),
	readline.PcItem("save"),
	readline.PcItem("exit"),
	readline.PcItem("quit"),
	readline.PcItem("quit!"),
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [file.csv]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	log := logger.NewDefaultLogger(slog.LevelWarn)

	renderer := lipgloss.NewRenderer(os.Stdout)
	s := session.New(&session.Options{Renderer: renderer})
	out := newPrinter(renderer, os.Stdout)

	if path := flag.Arg(0); path != "" {
		if err := s.Load(path); err != nil {
			out.print(session.Reply{Status: session.StatusProblem, Message: err.Error()})
		} else {
			out.print(session.Reply{Status: session.StatusSuccess, Message: fmt.Sprintf("Loaded '%s'.", path)})
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.Prompt(),
		HistoryFile:     *flagHistory,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Error("could not start readline", "err", err)
		os.Exit(1)
	}
	defer rl.Close()
	rl.CaptureExitSignal()

	fmt.Fprintln(os.Stdout, "Grid shell. Type 'help' for commands.")

	for !s.Exited() {
		rl.SetPrompt(s.Prompt())
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			if s.Dirty() {
				out.print(session.Reply{Status: session.StatusWarning, Message: "Unsaved changes were discarded."})
			}
			return
		} else if err != nil {
			log.Error("could not read line", "err", err)
			os.Exit(1)
		}

		out.print(s.Exec(line))
	}
}
