// Package slots maps a dense logical position space onto sparse, recyclable physical slots.
package slots

import (
	"fmt"
	"iter"
	"slices"

	"github.com/samthor/treegrid/aatree"
	"github.com/samthor/treegrid/treearray"
)

// PositionError is returned when a logical position is outside the current bounds.
type PositionError struct {
	Axis  string // optional, e.g. "row"
	Index int
	Len   int
}

func (e *PositionError) Error() string {
	axis := e.Axis
	if axis == "" {
		axis = "position"
	}
	return fmt.Sprintf("%s %d out of bounds for length %d", axis, e.Index, e.Len)
}

// Slots is an indirection from logical positions to physical slot ids.
//
// Every id in [0,Next()) is either in the logical order exactly once, or in the free pool.
// Freed ids are reused smallest-first before a new id is minted.
type Slots struct {
	axis  string
	order *treearray.Tree[int]
	free  *aatree.AATree[int]
	next  int
}

// New returns an empty Slots. The axis name is only used in errors.
func New(axis string) *Slots {
	return &Slots{
		axis:  axis,
		order: treearray.New[int](),
		free:  aatree.New[int](),
	}
}

// Reset returns this to empty with n slots, mapped identically (logical i => physical i).
func (s *Slots) Reset(n int) {
	s.order.Clear()
	s.free.Clear()
	for i := range n {
		s.order.Append(i)
	}
	s.next = n
}

// Len returns the number of logical positions.
func (s *Slots) Len() int {
	return s.order.Len()
}

// Next returns the next physical slot id that would be minted.
func (s *Slots) Next() int {
	return s.next
}

// Has returns whether logical position i exists.
func (s *Slots) Has(i int) bool {
	return i >= 0 && i < s.order.Len()
}

func (s *Slots) positionError(i, length int) error {
	return &PositionError{Axis: s.axis, Index: i, Len: length}
}

// Check returns a PositionError if i is not an existing logical position.
func (s *Slots) Check(i int) error {
	if !s.Has(i) {
		return s.positionError(i, s.order.Len())
	}
	return nil
}

// CheckInsert returns a PositionError if i is not in [0,Len()].
func (s *Slots) CheckInsert(i int) error {
	if i < 0 || i > s.order.Len() {
		return s.positionError(i, s.order.Len())
	}
	return nil
}

// Resolve returns the physical slot at logical position i.
func (s *Slots) Resolve(i int) (int, error) {
	if err := s.Check(i); err != nil {
		return 0, err
	}
	p, _ := s.order.Get(i)
	return p, nil
}

// Append allocates a slot at the end of the logical order.
// It returns the physical slot and whether it was newly minted (vs. reused from the free pool).
func (s *Slots) Append() (physical int, fresh bool) {
	physical, fresh = s.Allocate()
	s.order.Append(physical)
	return
}

// Insert allocates a slot at logical position i, shifting later positions along.
func (s *Slots) Insert(i int) (physical int, fresh bool, err error) {
	if err = s.CheckInsert(i); err != nil {
		return
	}
	physical, fresh = s.Allocate()
	s.order.Insert(i, physical)
	return
}

// Delete removes logical position i and returns its slot to the free pool.
func (s *Slots) Delete(i int) (physical int, err error) {
	physical, err = s.Take(i)
	if err != nil {
		return
	}
	s.free.Insert(physical)
	return
}

// Swap exchanges the slots at logical positions i and j.
func (s *Slots) Swap(i, j int) error {
	pi, err := s.Resolve(i)
	if err != nil {
		return err
	}
	pj, err := s.Resolve(j)
	if err != nil {
		return err
	}
	if i == j {
		return nil
	}
	s.order.Set(i, pj)
	s.order.Set(j, pi)
	return nil
}

// Allocate takes the smallest free slot, or mints a new one.
// The slot is not placed in the logical order; see Place.
func (s *Slots) Allocate() (physical int, fresh bool) {
	if p, ok := s.free.PopMin(); ok {
		return p, false
	}
	physical = s.next
	s.next++
	return physical, true
}

// Place puts an already-allocated physical slot at logical position i without touching the free pool.
// This is the primitive used when replaying history.
func (s *Slots) Place(i, physical int) error {
	if err := s.CheckInsert(i); err != nil {
		return err
	}
	if physical < 0 || physical >= s.next {
		return fmt.Errorf("slots: %s slot %d was never allocated (next=%d)", s.axis, physical, s.next)
	}
	s.order.Insert(i, physical)
	return nil
}

// Take removes logical position i without returning its slot to the free pool.
func (s *Slots) Take(i int) (physical int, err error) {
	if err = s.Check(i); err != nil {
		return
	}
	return s.order.Delete(i)
}

// PushFree adds a slot to the free pool. Returns false if it was already free.
func (s *Slots) PushFree(physical int) bool {
	return s.free.Insert(physical)
}

// PopFree removes a specific slot from the free pool. Returns false if it was not free.
func (s *Slots) PopFree(physical int) bool {
	return s.free.Remove(physical)
}

// IsFree returns whether this physical slot is in the free pool.
func (s *Slots) IsFree(physical int) bool {
	return s.free.Has(physical)
}

// FreeSlots returns the free pool in ascending order.
func (s *Slots) FreeSlots() []int {
	return slices.AppendSeq(make([]int, 0, s.free.Count()), s.free.All())
}

// All yields each logical position and its physical slot.
func (s *Slots) All() iter.Seq2[int, int] {
	return s.order.All()
}

// PhysicalOrder returns the physical slots in logical order.
func (s *Slots) PhysicalOrder() []int {
	return s.order.InOrder()
}

// Dump is a snapshot of a Slots, for inspection and tests.
type Dump struct {
	Order []int `json:"order"`
	Free  []int `json:"free"`
	Next  int   `json:"next"`
}

func (d Dump) String() string {
	return fmt.Sprintf("order=%v free=%v next=%d", d.Order, d.Free, d.Next)
}

// Dump returns a snapshot of the logical order, free pool and next counter.
func (s *Slots) Dump() Dump {
	return Dump{
		Order: s.PhysicalOrder(),
		Free:  s.FreeSlots(),
		Next:  s.next,
	}
}
