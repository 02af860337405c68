// Package treearray implements a positional sequence on top of an AVL tree.
// Elements have no key: a node's position is the size of everything to its left.
package treearray

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned by Pop on an empty Tree.
	ErrEmpty = errors.New("treearray: empty")
)

// IndexError is returned when a position is outside the current bounds.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("treearray: index %d out of bounds for length %d", e.Index, e.Len)
}

type node[T any] struct {
	value  T
	size   int // nodes in this subtree, including this one
	height int // longest path to a leaf, leaves are 1
	left   *node[T]
	right  *node[T]
}

func sizeOf[T any](n *node[T]) int {
	if n == nil {
		return 0
	}
	return n.size
}

func heightOf[T any](n *node[T]) int {
	if n == nil {
		return 0
	}
	return n.height
}
