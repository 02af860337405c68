package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samthor/treegrid/coltable"
	"github.com/samthor/treegrid/history"
	"github.com/samthor/treegrid/value"
)

type command struct {
	names []string
	args  string
	help  string
	run   func(s *Session, args []string) Reply
}

func (c command) usage() string {
	parts := make([]string, len(c.names))
	for i, n := range c.names {
		parts[i] = strings.TrimSpace(n + " " + c.args)
	}
	return "Usage: " + strings.Join(parts, " or ")
}

var commands []command
var lookup = map[string]command{}

func init() {
	commands = []command{
		{[]string{"help"}, "", "Show this help", (*Session).help},
		{[]string{"p", "print"}, "", "Print the table", (*Session).print},
		{[]string{"ar", "append_row"}, "", "Append a row", (*Session).appendRow},
		{[]string{"ac", "append_col"}, "", "Append a column", (*Session).appendCol},
		{[]string{"ir", "insert_row"}, "<index>", "Insert a row", (*Session).insertRow},
		{[]string{"ic", "insert_col"}, "<index>", "Insert a column", (*Session).insertCol},
		{[]string{"dr", "delete_row"}, "<index>", "Delete a row", (*Session).deleteRow},
		{[]string{"dc", "delete_col"}, "<index>", "Delete a column", (*Session).deleteCol},
		{[]string{"sr", "swap_rows"}, "<a> <b>", "Swap two rows", (*Session).swapRows},
		{[]string{"sc", "swap_cols"}, "<a> <b>", "Swap two columns", (*Session).swapCols},
		{[]string{"w", "write"}, "<row> <col> <value>", "Write a cell", (*Session).write},
		{[]string{"read"}, "<row> <col>", "Read a cell", (*Session).read},
		{[]string{"u", "undo"}, "", "Undo", (*Session).undo},
		{[]string{"r", "redo"}, "", "Redo", (*Session).redo},
		{[]string{"t", "typed"}, "<kind>...", "Print with the first row as typed column headers", (*Session).typed},
		{[]string{"dump"}, "", "Show the row and column layout", (*Session).dump},
		{[]string{"load"}, "<path>", "Load a CSV file", (*Session).load},
		{[]string{"s", "save"}, "[path]", "Save as CSV", (*Session).save},
		{[]string{"quit", "exit"}, "", "Quit", (*Session).quit},
		{[]string{"quit!"}, "", "Quit without saving", (*Session).forceQuit},
	}
	for _, c := range commands {
		for _, n := range c.names {
			lookup[n] = c
		}
	}
}

// Commands returns every command name, including short aliases.
func Commands() []string {
	var out []string
	for _, c := range commands {
		out = append(out, c.names...)
	}
	return out
}

func reply(status Status, format string, args ...any) Reply {
	return Reply{Status: status, Message: fmt.Sprintf(format, args...)}
}

func successf(format string, args ...any) Reply { return reply(StatusSuccess, format, args...) }
func problemf(format string, args ...any) Reply { return reply(StatusProblem, format, args...) }

// ints parses exactly n integer arguments.
func ints(args []string, n int) ([]int, bool) {
	if len(args) < n {
		return nil, false
	}
	out := make([]int, n)
	for i := range n {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// edit runs a mutating grid call with one index argument.
func (s *Session) edit(args []string, c string, fn func(int) error, done, verb, noun string) Reply {
	v, ok := ints(args, 1)
	if !ok {
		return problemf("%s", lookup[c].usage())
	}
	if err := fn(v[0]); err != nil {
		return problemf("Cannot %s %s %d: %v", verb, noun, v[0], err)
	}
	s.dirty = true
	return successf(done, v[0])
}

func (s *Session) help([]string) Reply {
	var b strings.Builder
	b.WriteString("Commands:")
	for _, c := range commands {
		fmt.Fprintf(&b, "\n  %s: %s", c.help, strings.TrimPrefix(c.usage(), "Usage: "))
	}
	return Reply{Status: StatusInfo, Message: b.String()}
}

func (s *Session) print([]string) Reply {
	return Reply{Status: StatusInfo, Message: s.render()}
}

func (s *Session) appendRow([]string) Reply {
	s.grid.AppendRow()
	s.dirty = true
	return successf("Row appended.")
}

func (s *Session) appendCol([]string) Reply {
	s.grid.AppendCol()
	s.dirty = true
	return successf("Column appended.")
}

func (s *Session) insertRow(args []string) Reply {
	return s.edit(args, "ir", s.grid.InsertRow, "Row inserted at %d.", "insert", "row")
}

func (s *Session) insertCol(args []string) Reply {
	return s.edit(args, "ic", s.grid.InsertCol, "Column inserted at %d.", "insert", "column")
}

func (s *Session) deleteRow(args []string) Reply {
	return s.edit(args, "dr", s.grid.DeleteRow, "Row deleted at %d.", "delete", "row")
}

func (s *Session) deleteCol(args []string) Reply {
	return s.edit(args, "dc", s.grid.DeleteCol, "Column deleted at %d.", "delete", "column")
}

func (s *Session) swapRows(args []string) Reply {
	v, ok := ints(args, 2)
	if !ok {
		return problemf("%s", lookup["sr"].usage())
	}
	if err := s.grid.SwapRows(v[0], v[1]); err != nil {
		return problemf("Cannot swap rows %d and %d: %v", v[0], v[1], err)
	}
	s.dirty = true
	return successf("Rows %d and %d swapped.", v[0], v[1])
}

func (s *Session) swapCols(args []string) Reply {
	v, ok := ints(args, 2)
	if !ok {
		return problemf("%s", lookup["sc"].usage())
	}
	if err := s.grid.SwapCols(v[0], v[1]); err != nil {
		return problemf("Cannot swap columns %d and %d: %v", v[0], v[1], err)
	}
	s.dirty = true
	return successf("Columns %d and %d swapped.", v[0], v[1])
}

func (s *Session) write(args []string) Reply {
	v, ok := ints(args, 2)
	if !ok {
		return problemf("%s", lookup["w"].usage())
	}
	text := strings.Join(args[2:], " ")
	if err := s.grid.WriteCell(v[0], v[1], text); err != nil {
		return problemf("Cannot write cell (%d, %d): %v", v[0], v[1], err)
	}
	s.dirty = true
	return successf("Written to (%d, %d).", v[0], v[1])
}

func (s *Session) read(args []string) Reply {
	v, ok := ints(args, 2)
	if !ok {
		return problemf("%s", lookup["read"].usage())
	}
	text, err := s.grid.ReadCell(v[0], v[1])
	if err != nil {
		return problemf("Cannot read cell (%d, %d): %v", v[0], v[1], err)
	}
	return successf("Value at (%d, %d) = %q", v[0], v[1], text)
}

func (s *Session) undo([]string) Reply {
	err := s.grid.Undo()
	if errors.Is(err, history.ErrNothingToUndo) {
		return Reply{Status: StatusInfo, Message: "Nothing to undo."}
	} else if err != nil {
		return problemf("Undo failed: %v", err)
	}
	s.dirty = true
	return successf("Undo done.")
}

func (s *Session) redo([]string) Reply {
	err := s.grid.Redo()
	if errors.Is(err, history.ErrNothingToRedo) {
		return Reply{Status: StatusInfo, Message: "Nothing to redo."}
	} else if err != nil {
		return problemf("Redo failed: %v", err)
	}
	s.dirty = true
	return successf("Redo done.")
}

func (s *Session) typed(args []string) Reply {
	if len(args) == 0 {
		return problemf("%s", lookup["typed"].usage())
	}
	records := s.grid.Records()
	if len(records) == 0 {
		return problemf("Cannot type an empty table.")
	}

	kinds := make([]value.Kind, len(args))
	for i, name := range args {
		k, ok := value.ParseKind(name)
		if !ok {
			return problemf("Unknown kind '%s'.", name)
		}
		kinds[i] = k
	}

	t, err := coltable.FromText(records[0], kinds, records[1:])
	if err != nil {
		return problemf("Cannot type table: %v", err)
	}
	return Reply{Status: StatusInfo, Message: t.Render()}
}

func (s *Session) dump([]string) Reply {
	return Reply{Status: StatusInfo, Message: s.grid.Dump().String()}
}

func (s *Session) load(args []string) Reply {
	if s.dirty {
		return Reply{Status: StatusWarning, Message: "You have unsaved changes. Save them before loading a new file."}
	}
	if len(args) != 1 {
		return problemf("%s", lookup["load"].usage())
	}
	if err := s.Load(args[0]); err != nil {
		return problemf("%v", err)
	}
	return successf("Loaded '%s'.", args[0])
}

func (s *Session) save(args []string) Reply {
	var path string
	if len(args) > 1 {
		return problemf("%s", lookup["save"].usage())
	} else if len(args) == 1 {
		path = args[0]
	}
	if err := s.Save(path); err != nil {
		if errors.Is(err, ErrNoPath) {
			return problemf("No file path. Use `save <path>` first.")
		}
		return problemf("%v", err)
	}
	return successf("Saved to '%s'.", s.path)
}

func (s *Session) quit([]string) Reply {
	if s.dirty {
		return Reply{Status: StatusWarning, Message: "You have unsaved changes. Type 'quit!' to exit without saving, or 'save' to save."}
	}
	s.exited = true
	return Reply{Status: StatusExit, Message: "Exiting..."}
}

func (s *Session) forceQuit([]string) Reply {
	s.exited = true
	return Reply{Status: StatusExit, Message: "Exiting without saving."}
}
