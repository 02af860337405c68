package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, s *Session, line string, want Status) Reply {
	t.Helper()
	r := s.Exec(line)
	require.Equal(t, want, r.Status, "%q => %s", line, r)
	return r
}

func TestEditing(t *testing.T) {
	s := New(nil)
	assert.Equal(t, "[untitled] > ", s.Prompt())

	run(t, s, "ar", StatusSuccess)
	run(t, s, "append_col", StatusSuccess)
	run(t, s, "ac", StatusSuccess)
	assert.True(t, s.Dirty())
	assert.Equal(t, "[untitled*] > ", s.Prompt())

	run(t, s, "w 0 1 hello   there", StatusSuccess)
	r := run(t, s, "read 0 1", StatusSuccess)
	assert.Equal(t, `Value at (0, 1) = "hello there"`, r.Message)

	run(t, s, "ir 0", StatusSuccess)
	run(t, s, "sr 0 1", StatusSuccess)
	run(t, s, "sc 0 1", StatusSuccess)
	assert.Equal(t, [][]string{{"hello there", ""}, {"", ""}}, s.Grid().Records())

	run(t, s, "dr 1", StatusSuccess)
	run(t, s, "dc 0", StatusSuccess)
	assert.Equal(t, [][]string{{""}}, s.Grid().Records())

	run(t, s, "u", StatusSuccess)
	run(t, s, "undo", StatusSuccess)
	run(t, s, "r", StatusSuccess)
	assert.Equal(t, [][]string{{"hello there", ""}}, s.Grid().Records())
	assert.True(t, s.Dirty())
}

func TestProblems(t *testing.T) {
	s := New(nil)

	r := run(t, s, "dr 0", StatusProblem)
	assert.Equal(t, "Cannot delete row 0: row 0 out of bounds for length 0", r.Message)

	r = run(t, s, "ir", StatusProblem)
	assert.Equal(t, "Usage: ir <index> or insert_row <index>", r.Message)

	r = run(t, s, "w x 1 v", StatusProblem)
	assert.True(t, strings.HasPrefix(r.Message, "Usage: w <row> <col> <value>"))

	run(t, s, "read 0 0", StatusProblem)
	run(t, s, "sc 0 1", StatusProblem)

	r = run(t, s, "frob", StatusProblem)
	assert.Equal(t, "Unknown command 'frob'. Type 'help' for commands.", r.Message)

	r = run(t, s, "undo", StatusInfo)
	assert.Equal(t, "Nothing to undo.", r.Message)
	run(t, s, "redo", StatusInfo)

	assert.False(t, s.Dirty(), "failed commands must not dirty the session")
	assert.Equal(t, Reply{}, s.Exec("   "))
}

func TestHelp(t *testing.T) {
	r := run(t, New(nil), "help", StatusInfo)
	assert.Contains(t, r.Message, "Insert a row: ir <index> or insert_row <index>")
	assert.Contains(t, r.Message, "Save as CSV: s [path] or save [path]")
	assert.Contains(t, Commands(), "quit!")
}

func TestPrint(t *testing.T) {
	s := New(nil)
	r := run(t, s, "p", StatusInfo)
	assert.Equal(t, "(empty table)", r.Message)

	for _, line := range []string{"ar", "ar", "ac", "ac", "w 0 0 a", "w 0 1 bb", "w 1 0 c"} {
		run(t, s, line, StatusSuccess)
	}

	want := "" +
		"  | 0 | 1\n" +
		"--+---+---\n" +
		"0 | a | bb\n" +
		"1 | c |"
	r = run(t, s, "print", StatusInfo)
	assert.Equal(t, want, r.Message)
	assert.Equal(t, "INFO:\n"+want, r.String())
}

func TestTyped(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Grid().ReadCSV(strings.NewReader("item,qty\npen,3\nink,12\n")))

	r := run(t, s, "typed str uint", StatusInfo)
	want := "" +
		"item qty\n" +
		"---- ---\n" +
		"pen  3  \n" +
		"ink  12 "
	assert.Equal(t, want, r.Message)

	run(t, s, "t str", StatusProblem)
	run(t, s, "t str decimal", StatusProblem)
	r = run(t, s, "t uint uint", StatusProblem)
	assert.Contains(t, r.Message, `column "item"`)
}

func TestDump(t *testing.T) {
	s := New(nil)
	run(t, s, "ar", StatusSuccess)
	run(t, s, "ar", StatusSuccess)
	run(t, s, "dr 0", StatusSuccess)
	r := run(t, s, "dump", StatusInfo)
	assert.Equal(t, "rows: order=[1] free=[0] next=2\ncols: order=[] free=[] next=0\nhistory: undo=3 redo=0", r.Message)
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	s := New(&Options{Dir: dir})

	r := run(t, s, "save", StatusProblem)
	assert.Equal(t, "No file path. Use `save <path>` first.", r.Message)

	run(t, s, "ar", StatusSuccess)
	run(t, s, "ac", StatusSuccess)
	run(t, s, "w 0 0 a,b", StatusSuccess)

	r = run(t, s, "load x.csv", StatusWarning)
	assert.Contains(t, r.Message, "unsaved changes")
	run(t, s, "quit", StatusWarning)
	assert.False(t, s.Exited())

	r = run(t, s, "s out.csv", StatusSuccess)
	assert.Equal(t, "Saved to 'out.csv'.", r.Message)
	assert.False(t, s.Dirty())
	assert.Equal(t, "[out.csv] > ", s.Prompt())

	b, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, "\"a,b\"\n", string(b))

	other := New(&Options{Dir: dir})
	run(t, other, "load out.csv", StatusSuccess)
	assert.Equal(t, [][]string{{"a,b"}}, other.Grid().Records())
	assert.False(t, other.Grid().Undoable())

	run(t, other, "load missing.csv", StatusProblem)
	assert.Equal(t, "out.csv", other.Path(), "failed load keeps the current path")

	r = run(t, other, "save ../escape.csv", StatusProblem)
	assert.Contains(t, r.Message, "cannot create file")
	run(t, other, "load /etc/passwd", StatusProblem)

	run(t, s, "quit", StatusExit)
	assert.True(t, s.Exited())
}

func TestForceQuit(t *testing.T) {
	s := New(nil)
	run(t, s, "ar", StatusSuccess)
	r := run(t, s, "quit!", StatusExit)
	assert.Equal(t, "EXIT: Exiting without saving.", r.String())
	assert.True(t, s.Exited())
}
