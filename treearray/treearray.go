package treearray

import (
	"fmt"
	"strings"
)

// Tree is a sequence addressed by position, with O(logn) access, insert and delete anywhere.
// The zero Tree is empty and ready to use.
// It is not goroutine-safe.
type Tree[T any] struct {
	root *node[T]
}

// New creates a new, empty Tree.
func New[T any]() *Tree[T] {
	return &Tree[T]{}
}

// Len returns the number of elements in this Tree. O(1).
func (t *Tree[T]) Len() int {
	return sizeOf(t.root)
}

// Height returns the height of the underlying tree, zero when empty.
func (t *Tree[T]) Height() int {
	return heightOf(t.root)
}

// Clear removes all elements.
func (t *Tree[T]) Clear() {
	t.root = nil
}

// Get returns a copy of the element at position i.
func (t *Tree[T]) Get(i int) (v T, err error) {
	n, err := t.lookup(i)
	if err != nil {
		return
	}
	return n.value, nil
}

// Set overwrites the element at position i.
func (t *Tree[T]) Set(i int, v T) error {
	n, err := t.lookup(i)
	if err != nil {
		return err
	}
	n.value = v
	return nil
}

// Insert places v at position i, moving everything at i or later along by one.
// Valid positions are [0,Len()].
func (t *Tree[T]) Insert(i int, v T) error {
	if i < 0 || i > t.Len() {
		return &IndexError{Index: i, Len: t.Len()}
	}
	t.root = insert(t.root, i, v)
	return nil
}

// Append adds v to the end and returns its position.
func (t *Tree[T]) Append(v T) int {
	i := t.Len()
	t.root = insert(t.root, i, v)
	return i
}

// Delete removes and returns the element at position i.
func (t *Tree[T]) Delete(i int) (v T, err error) {
	if i < 0 || i >= t.Len() {
		err = &IndexError{Index: i, Len: t.Len()}
		return
	}
	t.root, v = remove(t.root, i)
	return v, nil
}

// Pop removes and returns the last element, or ErrEmpty.
func (t *Tree[T]) Pop() (v T, err error) {
	if t.root == nil {
		err = ErrEmpty
		return
	}
	return t.Delete(t.Len() - 1)
}

// InOrder returns a copy of every element, in position order.
func (t *Tree[T]) InOrder() []T {
	out := make([]T, 0, t.Len())
	var walk func(n *node[T])
	walk = func(n *node[T]) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n.value)
		walk(n.right)
	}
	walk(t.root)
	return out
}

func (t *Tree[T]) lookup(i int) (*node[T], error) {
	if i < 0 || i >= t.Len() {
		return nil, &IndexError{Index: i, Len: t.Len()}
	}

	n := t.root
	for {
		ls := sizeOf(n.left)
		if i < ls {
			n = n.left
		} else if i > ls {
			i -= ls + 1
			n = n.right
		} else {
			return n, nil
		}
	}
}

// DebugString renders the tree structure, one node per line, with its size and height.
func (t *Tree[T]) DebugString() string {
	var b strings.Builder
	var walk func(n *node[T], prefix string, isLeft bool)
	walk = func(n *node[T], prefix string, isLeft bool) {
		if n == nil {
			return
		}
		side := "R"
		next := prefix + "   "
		if isLeft {
			side = "L"
			next = prefix + "|  "
		}
		fmt.Fprintf(&b, "%s%s- [%v] size:%d height:%d\n", prefix, side, n.value, n.size, n.height)
		walk(n.left, next, true)
		walk(n.right, next, false)
	}
	walk(t.root, "", false)
	return b.String()
}

func (n *node[T]) update() {
	n.size = 1 + sizeOf(n.left) + sizeOf(n.right)
	n.height = 1 + max(heightOf(n.left), heightOf(n.right))
}

func (n *node[T]) balanceFactor() int {
	return heightOf(n.left) - heightOf(n.right)
}

func rotateRight[T any](y *node[T]) *node[T] {
	x := y.left
	y.left = x.right
	y.update()
	x.right = y
	x.update()
	return x
}

func rotateLeft[T any](x *node[T]) *node[T] {
	y := x.right
	x.right = y.left
	x.update()
	y.left = x
	y.update()
	return y
}

// balance refreshes n's size/height and restores the AVL invariant, returning the new subtree root.
func balance[T any](n *node[T]) *node[T] {
	n.update()
	bf := n.balanceFactor()

	if bf > 1 {
		if n.left.balanceFactor() < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	} else if bf < -1 {
		if n.right.balanceFactor() > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

func insert[T any](n *node[T], i int, v T) *node[T] {
	if n == nil {
		return &node[T]{value: v, size: 1, height: 1}
	}

	ls := sizeOf(n.left)
	if i <= ls {
		n.left = insert(n.left, i, v)
	} else {
		n.right = insert(n.right, i-ls-1, v)
	}
	return balance(n)
}

// remove deletes position i from the subtree at n, which must exist.
func remove[T any](n *node[T], i int) (*node[T], T) {
	ls := sizeOf(n.left)
	var out T

	if i < ls {
		n.left, out = remove(n.left, i)
	} else if i > ls {
		n.right, out = remove(n.right, i-ls-1)
	} else {
		out = n.value
		if n.left == nil {
			return n.right, out
		} else if n.right == nil {
			return n.left, out
		}

		// two children: take the value of the leftmost node on the right
		n.right, n.value = remove(n.right, 0)
	}

	return balance(n), out
}
