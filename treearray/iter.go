package treearray

import (
	"iter"
)

// All yields each position and element in order.
// The Tree must not be modified while iterating; use InOrder to get a stable copy.
func (t *Tree[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := t.Iter()
		for i := 0; ; i++ {
			v, ok := it.Next()
			if !ok || !yield(i, v) {
				return
			}
		}
	}
}

// Iterator walks a Tree forward once, holding only the path to the next node.
type Iterator[T any] struct {
	stack []*node[T]
}

// Iter returns a new Iterator positioned before the first element.
func (t *Tree[T]) Iter() *Iterator[T] {
	it := &Iterator[T]{stack: make([]*node[T], 0, heightOf(t.root))}
	it.pushLeft(t.root)
	return it
}

func (it *Iterator[T]) pushLeft(n *node[T]) {
	for n != nil {
		it.stack = append(it.stack, n)
		n = n.left
	}
}

// Next returns the next element, or false once the Tree is exhausted.
func (it *Iterator[T]) Next() (v T, ok bool) {
	at := len(it.stack) - 1
	if at < 0 {
		return
	}
	n := it.stack[at]
	it.stack = it.stack[:at]
	it.pushLeft(n.right)
	return n.value, true
}
