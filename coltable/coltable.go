// Package coltable implements a table of typed columns whose rows can be reordered without moving data.
//
// Each column stores its values by physical row slot. The logical row order is held in a slots.Slots,
// so deleting a row only frees its slot, which the next inserted row reuses.
package coltable

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samthor/treegrid/slots"
	"github.com/samthor/treegrid/value"
)

// RowLengthError is returned when a row does not have one value per column.
type RowLengthError struct {
	Expected int
	Found    int
}

func (e *RowLengthError) Error() string {
	return fmt.Sprintf("row length mismatch: expected %d, found %d", e.Expected, e.Found)
}

// ColumnError wraps a failure specific to one column, usually a *value.TypeMismatchError.
type ColumnError struct {
	Column string
	Err    error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q: %v", e.Column, e.Err)
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}

type column struct {
	name   string
	kind   value.Kind
	values []value.Value // by physical slot
}

func (c *column) growTo(n int) {
	for len(c.values) < n {
		c.values = append(c.values, value.Zero(c.kind))
	}
}

// Table is a table of typed columns. The zero Table is not usable; use New.
type Table struct {
	columns []*column
	rows    *slots.Slots
}

// New returns an empty Table with no columns.
func New() *Table {
	return &Table{rows: slots.New("row")}
}

// AddColumn adds a column at the end. Existing rows get the zero value of kind.
func (t *Table) AddColumn(name string, kind value.Kind) *Table {
	c := &column{name: name, kind: kind}
	c.growTo(t.rows.Next())
	t.columns = append(t.columns, c)
	return t
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// ColumnNames returns the names of all columns, in order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.name
	}
	return out
}

// ColumnKinds returns the kinds of all columns, in order.
func (t *Table) ColumnKinds() []value.Kind {
	out := make([]value.Kind, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.kind
	}
	return out
}

// Rows returns the number of logical rows.
func (t *Table) Rows() int {
	return t.rows.Len()
}

// check validates row against the columns. Null is always allowed.
func (t *Table) check(row []value.Value) error {
	if len(row) != len(t.columns) {
		return &RowLengthError{Expected: len(t.columns), Found: len(row)}
	}
	for i, v := range row {
		c := t.columns[i]
		if !v.IsNull() && v.Kind() != c.kind {
			return &ColumnError{
				Column: c.name,
				Err:    &value.TypeMismatchError{Expected: c.kind, Found: v.Kind()},
			}
		}
	}
	return nil
}

// AppendRow adds a row at the end. Null values are stored as the column's zero value.
func (t *Table) AppendRow(row []value.Value) error {
	return t.InsertRow(t.rows.Len(), row)
}

// InsertRow adds a row at logical position i. Null values are stored as the column's zero value.
// Nothing is changed if the row is invalid.
func (t *Table) InsertRow(i int, row []value.Value) error {
	if err := t.check(row); err != nil {
		return err
	}
	p, _, err := t.rows.Insert(i)
	if err != nil {
		return err
	}

	for j, v := range row {
		c := t.columns[j]
		c.growTo(p + 1)
		if v.IsNull() {
			v = value.Zero(c.kind)
		}
		c.values[p] = v
	}
	return nil
}

// UpdateRow overwrites the row at logical position i. Null values leave that cell unchanged.
func (t *Table) UpdateRow(i int, row []value.Value) error {
	if err := t.check(row); err != nil {
		return err
	}
	p, err := t.rows.Resolve(i)
	if err != nil {
		return err
	}

	for j, v := range row {
		if !v.IsNull() {
			t.columns[j].values[p] = v
		}
	}
	return nil
}

// DeleteRow removes the row at logical position i, freeing its slot for reuse.
func (t *Table) DeleteRow(i int) error {
	_, err := t.rows.Delete(i)
	return err
}

// SwapRows exchanges the rows at logical positions i and j.
func (t *Table) SwapRows(i, j int) error {
	return t.rows.Swap(i, j)
}

// GetRow returns a copy of the row at logical position i.
func (t *Table) GetRow(i int) ([]value.Value, error) {
	p, err := t.rows.Resolve(i)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, len(t.columns))
	for j, c := range t.columns {
		out[j] = c.values[p]
	}
	return out, nil
}

// FreeSlots returns the physical slots waiting for reuse, in ascending order.
func (t *Table) FreeSlots() []int {
	return t.rows.FreeSlots()
}

// NextPhysical returns the next physical slot that would be minted.
func (t *Table) NextPhysical() int {
	return t.rows.Next()
}

// PhysicalOrder returns the physical slot of each row, in logical order.
func (t *Table) PhysicalOrder() []int {
	return t.rows.PhysicalOrder()
}

// Render returns the table as left-aligned padded text: a header, a line of dashes, then each row.
func (t *Table) Render() string {
	if len(t.columns) == 0 || t.rows.Len() == 0 {
		return "(empty table)"
	}

	widths := make([]int, len(t.columns))
	for j, c := range t.columns {
		widths[j] = utf8.RuneCountInString(c.name)
		for _, p := range t.rows.All() {
			widths[j] = max(widths[j], utf8.RuneCountInString(c.values[p].String()))
		}
	}

	lines := make([]string, 0, t.rows.Len()+2)
	line := func(cell func(j int) string) {
		parts := make([]string, len(t.columns))
		for j := range t.columns {
			parts[j] = fmt.Sprintf("%-*s", widths[j], cell(j))
		}
		lines = append(lines, strings.Join(parts, " "))
	}

	line(func(j int) string { return t.columns[j].name })
	line(func(j int) string { return strings.Repeat("-", widths[j]) })
	for _, p := range t.rows.All() {
		line(func(j int) string { return t.columns[j].values[p].String() })
	}

	return strings.Join(lines, "\n")
}
