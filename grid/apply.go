package grid

import (
	"fmt"
	"slices"
)

// target lets the history log apply mementos without exposing Apply on Grid.
type target struct {
	g *Grid
}

// Apply performs every change of m in order and returns the memento which reverses it.
// If any change fails, the changes already made are reverted and the error returned.
func (t target) Apply(m Memento) (Memento, error) {
	inverse := make([]Change, 0, len(m.Changes))

	for _, c := range m.Changes {
		inv, err := t.g.apply(c)
		if err != nil {
			for _, undo := range slices.Backward(inverse) {
				t.g.apply(undo)
			}
			return Memento{}, err
		}
		inverse = append(inverse, inv)
	}

	slices.Reverse(inverse)
	return Memento{Changes: inverse}, nil
}

func (g *Grid) apply(c Change) (Change, error) {
	s := g.axis(c.Axis)

	switch c.Kind {
	case CellEdit:
		prev := g.store.Get(c.Row, c.Col)
		g.store.Set(c.Row, c.Col, c.Value)
		return cellEdit(c.Row, c.Col, prev), nil

	case Inserted:
		if err := s.Place(c.Index, c.Slot); err != nil {
			return Change{}, fmt.Errorf("%w: %s: %w", ErrHistoryMismatch, c, err)
		}
		return deleted(c.Axis, c.Index, c.Slot), nil

	case Deleted:
		p, err := s.Resolve(c.Index)
		if err != nil {
			return Change{}, fmt.Errorf("%w: %s: %w", ErrHistoryMismatch, c, err)
		} else if p != c.Slot {
			return Change{}, fmt.Errorf("%w: %s: found slot %d", ErrHistoryMismatch, c, p)
		}
		s.Take(c.Index)
		return inserted(c.Axis, c.Index, c.Slot), nil

	case Swapped:
		if err := s.Swap(c.Index, c.Other); err != nil {
			return Change{}, fmt.Errorf("%w: %s: %w", ErrHistoryMismatch, c, err)
		}
		return c, nil

	case FreePushed:
		if !s.PushFree(c.Slot) {
			return Change{}, fmt.Errorf("%w: %s: already free", ErrHistoryMismatch, c)
		}
		return freePopped(c.Axis, c.Slot), nil

	case FreePopped:
		if !s.PopFree(c.Slot) {
			return Change{}, fmt.Errorf("%w: %s: not free", ErrHistoryMismatch, c)
		}
		return freePushed(c.Axis, c.Slot), nil
	}

	return Change{}, fmt.Errorf("%w: unknown change %s", ErrHistoryMismatch, c)
}
