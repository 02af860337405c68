// Package grid implements an editable table of text cells with undoable row and column edits.
//
// Logical rows and columns are mapped to physical slots in a Store. Deleting a row or column frees
// its slot for reuse rather than moving any cells, so structural edits cost O(logn) plus the cells
// in the deleted line.
package grid

import (
	"errors"
	"fmt"

	"github.com/samthor/treegrid/cellstore"
	"github.com/samthor/treegrid/history"
	"github.com/samthor/treegrid/slots"
)

var (
	// ErrHistoryMismatch is returned if a recorded change no longer fits the grid.
	// It should not happen unless the Store is modified behind the Grid's back.
	ErrHistoryMismatch = errors.New("grid: history does not match grid state")
)

// Grid is a table of text cells addressed by logical row and column.
// It is not goroutine-safe.
type Grid struct {
	newStore func() Store
	store    Store
	rows     *slots.Slots
	cols     *slots.Slots
	history  history.Log[Memento]
}

// New returns an empty Grid backed by a dense in-memory store.
func New() *Grid {
	return NewWithStore(func() Store { return cellstore.New(0, 0) })
}

// NewWithStore returns an empty Grid whose cells are held in stores built by newStore.
// A new store is built now, and again whenever records are loaded.
func NewWithStore(newStore func() Store) *Grid {
	return &Grid{
		newStore: newStore,
		store:    newStore(),
		rows:     slots.New(RowAxis.String()),
		cols:     slots.New(ColAxis.String()),
	}
}

func (g *Grid) axis(a Axis) *slots.Slots {
	if a == ColAxis {
		return g.cols
	}
	return g.rows
}

func (g *Grid) grow(a Axis, n int) {
	if a == ColAxis {
		g.store.GrowColsTo(n)
	} else {
		g.store.GrowRowsTo(n)
	}
}

// Rows returns the number of logical rows.
func (g *Grid) Rows() int {
	return g.rows.Len()
}

// Cols returns the number of logical columns.
func (g *Grid) Cols() int {
	return g.cols.Len()
}

// HasRow returns whether logical row i exists.
func (g *Grid) HasRow(i int) bool {
	return g.rows.Has(i)
}

// HasCol returns whether logical column j exists.
func (g *Grid) HasCol(j int) bool {
	return g.cols.Has(j)
}

// HasCell returns whether the logical cell (i, j) exists.
func (g *Grid) HasCell(i, j int) bool {
	return g.rows.Has(i) && g.cols.Has(j)
}

// AppendRow adds an empty row at the end.
func (g *Grid) AppendRow() {
	g.insert(RowAxis, g.rows.Len())
}

// AppendCol adds an empty column at the end.
func (g *Grid) AppendCol() {
	g.insert(ColAxis, g.cols.Len())
}

// InsertRow adds an empty row at logical position i in [0,Rows()].
func (g *Grid) InsertRow(i int) error {
	return g.insert(RowAxis, i)
}

// InsertCol adds an empty column at logical position j in [0,Cols()].
func (g *Grid) InsertCol(j int) error {
	return g.insert(ColAxis, j)
}

// DeleteRow removes logical row i, clearing its cells.
func (g *Grid) DeleteRow(i int) error {
	return g.delete(RowAxis, i)
}

// DeleteCol removes logical column j, clearing its cells.
func (g *Grid) DeleteCol(j int) error {
	return g.delete(ColAxis, j)
}

// SwapRows exchanges logical rows i and j.
func (g *Grid) SwapRows(i, j int) error {
	return g.swap(RowAxis, i, j)
}

// SwapCols exchanges logical columns i and j.
func (g *Grid) SwapCols(i, j int) error {
	return g.swap(ColAxis, i, j)
}

func (g *Grid) insert(a Axis, i int) error {
	p, fresh, err := g.axis(a).Insert(i)
	if err != nil {
		return err
	}
	if fresh {
		g.grow(a, p+1)
	}
	g.history.Record(Memento{Changes: []Change{deleted(a, i, p), freePushed(a, p)}})
	return nil
}

func (g *Grid) delete(a Axis, i int) error {
	p, err := g.axis(a).Delete(i)
	if err != nil {
		return err
	}

	other := g.axis(RowAxis)
	if a == RowAxis {
		other = g.axis(ColAxis)
	}

	changes := make([]Change, 0, 2+other.Len())
	changes = append(changes, inserted(a, i, p), freePopped(a, p))

	for _, q := range other.All() {
		row, col := p, q
		if a == ColAxis {
			row, col = q, p
		}
		changes = append(changes, cellEdit(row, col, g.store.Get(row, col)))
		g.store.Set(row, col, "")
	}

	g.history.Record(Memento{Changes: changes})
	return nil
}

func (g *Grid) swap(a Axis, i, j int) error {
	s := g.axis(a)
	if err := s.Swap(i, j); err != nil {
		return err
	}
	if i != j {
		g.history.Record(Memento{Changes: []Change{swapped(a, i, j)}})
	}
	return nil
}

func (g *Grid) resolve(i, j int) (row, col int, err error) {
	if row, err = g.rows.Resolve(i); err != nil {
		return
	}
	col, err = g.cols.Resolve(j)
	return
}

// WriteCell sets the cell at logical (i, j).
func (g *Grid) WriteCell(i, j int, value string) error {
	row, col, err := g.resolve(i, j)
	if err != nil {
		return err
	}
	prev := g.store.Get(row, col)
	g.store.Set(row, col, value)
	g.history.Record(Memento{Changes: []Change{cellEdit(row, col, prev)}})
	return nil
}

// ReadCell returns the cell at logical (i, j).
func (g *Grid) ReadCell(i, j int) (string, error) {
	row, col, err := g.resolve(i, j)
	if err != nil {
		return "", err
	}
	return g.store.Get(row, col), nil
}

// Undoable returns whether there is anything to undo.
func (g *Grid) Undoable() bool {
	return g.history.Undoable()
}

// Redoable returns whether there is anything to redo.
func (g *Grid) Redoable() bool {
	return g.history.Redoable()
}

// Undo reverts the last call that changed the grid.
// Returns history.ErrNothingToUndo if there is nothing to undo.
func (g *Grid) Undo() error {
	return g.history.Undo(target{g})
}

// Redo performs the last undone call again.
// Returns history.ErrNothingToRedo if there is nothing to redo.
func (g *Grid) Redo() error {
	return g.history.Redo(target{g})
}

// Records returns a copy of all cells, in logical order.
func (g *Grid) Records() [][]string {
	out := make([][]string, 0, g.rows.Len())
	for _, row := range g.rows.All() {
		rec := make([]string, 0, g.cols.Len())
		for _, col := range g.cols.All() {
			rec = append(rec, g.store.Get(row, col))
		}
		out = append(out, rec)
	}
	return out
}

// LoadRecords replaces everything, including history, with the given row-major records.
// Short records are padded with empty cells.
func (g *Grid) LoadRecords(records [][]string) {
	width := 0
	for _, rec := range records {
		width = max(width, len(rec))
	}

	store := g.newStore()
	store.GrowColsTo(width)
	store.GrowRowsTo(len(records))
	for i, rec := range records {
		for j, v := range rec {
			store.Set(i, j, v)
		}
	}

	g.store = store
	g.rows.Reset(len(records))
	g.cols.Reset(width)
	g.history.Clear()
}

// Dump is a snapshot of the grid's internal layout, for inspection and tests.
type Dump struct {
	Rows slots.Dump `json:"rows"`
	Cols slots.Dump `json:"cols"`
	Undo int        `json:"undo"`
	Redo int        `json:"redo"`
}

func (d Dump) String() string {
	return fmt.Sprintf("rows: %v\ncols: %v\nhistory: undo=%d redo=%d", d.Rows, d.Cols, d.Undo, d.Redo)
}

// Dump returns a snapshot of the row and column indirections and history depth.
func (g *Grid) Dump() Dump {
	undo, redo := g.history.Depth()
	return Dump{
		Rows: g.rows.Dump(),
		Cols: g.cols.Dump(),
		Undo: undo,
		Redo: redo,
	}
}
