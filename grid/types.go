package grid

import (
	"fmt"
)

// Store holds text cells by physical coordinate.
// Cells that were never written must read as the empty string.
type Store interface {
	Get(row, col int) string
	Set(row, col int, value string)
	GrowRowsTo(n int)
	GrowColsTo(n int)
}

// Axis selects rows or columns.
type Axis uint8

const (
	RowAxis Axis = iota
	ColAxis
)

func (a Axis) String() string {
	if a == ColAxis {
		return "col"
	}
	return "row"
}

// ChangeKind is the type of a single reversible change.
type ChangeKind uint8

const (
	// CellEdit sets the cell at physical (Row, Col) to Value.
	CellEdit ChangeKind = iota

	// Inserted places physical Slot at logical Index on Axis.
	Inserted

	// Deleted removes logical Index (holding physical Slot) on Axis.
	Deleted

	// Swapped exchanges logical Index and Other on Axis.
	Swapped

	// FreePushed adds physical Slot to the free pool of Axis.
	FreePushed

	// FreePopped removes physical Slot from the free pool of Axis.
	FreePopped
)

var changeKindNames = [...]string{"edit", "inserted", "deleted", "swapped", "free-pushed", "free-popped"}

func (k ChangeKind) String() string {
	if int(k) < len(changeKindNames) {
		return changeKindNames[k]
	}
	return fmt.Sprintf("ChangeKind(%d)", k)
}

// Change is one reversible primitive. Which fields matter depends on Kind.
type Change struct {
	Kind ChangeKind `json:"kind"`
	Axis Axis       `json:"axis,omitempty"`

	Index int `json:"index,omitempty"`
	Other int `json:"other,omitempty"`
	Slot  int `json:"slot,omitempty"`

	Row   int    `json:"row,omitempty"`
	Col   int    `json:"col,omitempty"`
	Value string `json:"value,omitempty"`
}

func (c Change) String() string {
	switch c.Kind {
	case CellEdit:
		return fmt.Sprintf("edit(%d,%d)=%q", c.Row, c.Col, c.Value)
	case Inserted, Deleted:
		return fmt.Sprintf("%s-%s(%d@%d)", c.Axis, c.Kind, c.Index, c.Slot)
	case Swapped:
		return fmt.Sprintf("%s-swapped(%d,%d)", c.Axis, c.Index, c.Other)
	default:
		return fmt.Sprintf("%s-%s(%d)", c.Axis, c.Kind, c.Slot)
	}
}

// Memento is the ordered set of changes produced by one user-level call.
type Memento struct {
	Changes []Change `json:"changes"`
}

func cellEdit(row, col int, value string) Change {
	return Change{Kind: CellEdit, Row: row, Col: col, Value: value}
}

func inserted(axis Axis, index, slot int) Change {
	return Change{Kind: Inserted, Axis: axis, Index: index, Slot: slot}
}

func deleted(axis Axis, index, slot int) Change {
	return Change{Kind: Deleted, Axis: axis, Index: index, Slot: slot}
}

func swapped(axis Axis, i, j int) Change {
	return Change{Kind: Swapped, Axis: axis, Index: i, Other: j}
}

func freePushed(axis Axis, slot int) Change {
	return Change{Kind: FreePushed, Axis: axis, Slot: slot}
}

func freePopped(axis Axis, slot int) Change {
	return Change{Kind: FreePopped, Axis: axis, Slot: slot}
}
