// Package session runs text commands against a grid, tracking the file it came from and unsaved changes.
package session

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/samthor/treegrid/grid"
)

// Status is the outcome of a command.
type Status string

const (
	StatusSuccess Status = "success"
	StatusProblem Status = "problem"
	StatusInfo    Status = "info"
	StatusWarning Status = "warning"
	StatusExit    Status = "exit"
)

// Reply is the result of running one line.
type Reply struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// String formats the reply as a status line, e.g., "SUCCESS: Row appended.".
// Multi-line messages start on the following line.
func (r Reply) String() string {
	if r.Status == "" {
		return r.Message
	}
	sep := " "
	if strings.Contains(r.Message, "\n") {
		sep = "\n"
	}
	return strings.ToUpper(string(r.Status)) + ":" + sep + r.Message
}

// Options configures a Session.
type Options struct {
	// Dir confines load and save to paths inside this directory.
	// If empty, any path is allowed.
	Dir string

	// Renderer styles printed tables.
	// Defaults to a renderer which never emits color or other escapes.
	Renderer *lipgloss.Renderer
}

func (o *Options) setDefaults() {
	if o.Renderer == nil {
		o.Renderer = lipgloss.NewRenderer(io.Discard)
		o.Renderer.SetColorProfile(termenv.Ascii)
	}
}

// Session is an editing session over one grid. It is not goroutine-safe.
type Session struct {
	opts   Options
	styles styles
	grid   *grid.Grid
	path   string
	dirty  bool
	exited bool
}

// New returns a Session with an empty, untitled grid.
func New(opts *Options) *Session {
	var o Options
	if opts != nil {
		o = *opts
	}
	o.setDefaults()

	return &Session{
		opts:   o,
		styles: newStyles(o.Renderer),
		grid:   grid.New(),
	}
}

// Grid returns the grid being edited.
func (s *Session) Grid() *grid.Grid {
	return s.grid
}

// Path returns the file this session loads from and saves to, or "" if untitled.
func (s *Session) Path() string {
	return s.path
}

// Dirty returns whether there are unsaved changes.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Exited returns whether a quit command has succeeded.
func (s *Session) Exited() bool {
	return s.exited
}

// Prompt returns a prompt showing the path and a "*" if dirty, e.g., "[data.csv*] > ".
func (s *Session) Prompt() string {
	name := s.path
	if name == "" {
		name = "untitled"
	}
	if s.dirty {
		name += "*"
	}
	return "[" + name + "] > "
}

func (s *Session) open(path string) (*os.File, error) {
	if s.opts.Dir == "" {
		return os.Open(path)
	}
	root, err := os.OpenRoot(s.opts.Dir)
	if err != nil {
		return nil, err
	}
	defer root.Close()
	return root.Open(path)
}

func (s *Session) create(path string) (*os.File, error) {
	if s.opts.Dir == "" {
		return os.Create(path)
	}
	root, err := os.OpenRoot(s.opts.Dir)
	if err != nil {
		return nil, err
	}
	defer root.Close()
	return root.Create(path)
}

// Load replaces the grid with the CSV file at path, clearing history and the dirty flag.
// The grid is unchanged on failure.
func (s *Session) Load(path string) error {
	f, err := s.open(path)
	if err != nil {
		return errors.Wrapf(err, "cannot open file '%s'", path)
	}
	defer f.Close()

	if err := s.grid.ReadCSV(f); err != nil {
		return errors.Wrap(err, "failed to read CSV")
	}
	s.path = path
	s.dirty = false
	return nil
}

// Save writes the grid as CSV to path, or to the current path if empty.
// On success, path becomes the current path and the dirty flag is cleared.
func (s *Session) Save(path string) error {
	if path == "" {
		path = s.path
	}
	if path == "" {
		return ErrNoPath
	}

	f, err := s.create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create file '%s'", path)
	}
	if err := s.grid.WriteCSV(f); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to write CSV")
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "cannot close file '%s'", path)
	}

	s.path = path
	s.dirty = false
	return nil
}

// ErrNoPath is returned by Save when neither a path nor a current path is known.
var ErrNoPath = errors.New("no file path, use `save <path>` first")

// Exec runs one command line. Blank lines return the zero Reply.
func (s *Session) Exec(line string) Reply {
	args := strings.Fields(line)
	if len(args) == 0 {
		return Reply{}
	}

	c, ok := lookup[args[0]]
	if !ok {
		return problemf("Unknown command '%s'. Type 'help' for commands.", args[0])
	}
	return c.run(s, args[1:])
}
