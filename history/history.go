// Package history implements an undo/redo log of invertible mementos.
package history

import (
	"errors"
)

var (
	// ErrNothingToUndo is returned by Undo when the undo stack is empty.
	ErrNothingToUndo = errors.New("history: nothing to undo")

	// ErrNothingToRedo is returned by Redo when the redo stack is empty.
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// Target is something a memento can be applied to.
// Apply must perform the memento and return the memento that reverses it.
// If Apply fails, it must leave the Target as it was.
type Target[M any] interface {
	Apply(m M) (inverse M, err error)
}

// Log holds the undo and redo stacks. The zero Log is ready to use.
// It is not goroutine-safe.
type Log[M any] struct {
	undo []M
	redo []M
}

// Record pushes a memento which undoes the action just performed, and clears the redo stack.
// Call this once per user-level action.
func (l *Log[M]) Record(m M) {
	l.undo = append(l.undo, m)
	clear(l.redo)
	l.redo = l.redo[:0]
}

// Undoable returns whether there is anything to undo.
func (l *Log[M]) Undoable() bool {
	return len(l.undo) != 0
}

// Redoable returns whether there is anything to redo.
func (l *Log[M]) Redoable() bool {
	return len(l.redo) != 0
}

// Depth returns the size of the undo and redo stacks.
func (l *Log[M]) Depth() (undo, redo int) {
	return len(l.undo), len(l.redo)
}

// Undo applies the most recent undo memento to target, moving its inverse to the redo stack.
// Returns ErrNothingToUndo if there is nothing to do.
func (l *Log[M]) Undo(target Target[M]) error {
	if !l.Undoable() {
		return ErrNothingToUndo
	}
	return step(target, &l.undo, &l.redo)
}

// Redo applies the most recent redo memento to target, moving its inverse to the undo stack.
// Returns ErrNothingToRedo if there is nothing to do.
func (l *Log[M]) Redo(target Target[M]) error {
	if !l.Redoable() {
		return ErrNothingToRedo
	}
	return step(target, &l.redo, &l.undo)
}

// Clear drops all history.
func (l *Log[M]) Clear() {
	l.undo = nil
	l.redo = nil
}

func step[M any](target Target[M], from, to *[]M) error {
	at := len(*from) - 1
	m := (*from)[at]

	inverse, err := target.Apply(m)
	if err != nil {
		return err // memento stays where it was
	}

	var zero M
	(*from)[at] = zero
	*from = (*from)[:at]
	*to = append(*to, inverse)
	return nil
}
