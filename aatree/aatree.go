// Package aatree implements an ordered set on an AA tree.
// It is used as the pool of free physical slots, where the smallest member is always reused first.
package aatree

import (
	"cmp"
	"iter"
)

type treeNode[X any] struct {
	level int
	left  *treeNode[X]
	right *treeNode[X]
	data  X
}

// CompareFunc is a function type that compares two elements of type X.
// It should return:
//   - a negative integer if a < b
//   - zero if a == b
//   - a positive integer if a > b
type CompareFunc[X any] func(a, b X) int

// AATree is an ordered set of X.
type AATree[X any] struct {
	root    *treeNode[X]
	count   int
	change  bool
	compare CompareFunc[X]
}

// New creates a new, empty AA tree ordered by the natural order of X.
func New[X cmp.Ordered]() *AATree[X] {
	return NewFunc(cmp.Compare[X])
}

// NewFunc creates a new, empty AA tree with the given comparison function.
func NewFunc[X any](compare CompareFunc[X]) *AATree[X] {
	return &AATree[X]{
		compare: compare,
	}
}

// Clear removes all elements from the tree.
func (t *AATree[X]) Clear() {
	t.root = nil
	t.count = 0
}

// Count returns the number of items in this tree.
func (t *AATree[X]) Count() int {
	return t.count
}

// Has checks if this tree contains the given data, based on the compare function.
func (t *AATree[X]) Has(data X) bool {
	node := t.root

	for node != nil {
		c := t.compare(data, node.data)
		if c < 0 {
			node = node.left
		} else if c > 0 {
			node = node.right
		} else {
			return true
		}
	}
	return false
}

// Min returns the smallest element, or false if the tree is empty.
func (t *AATree[X]) Min() (x X, ok bool) {
	if t.root == nil {
		return
	}
	return findMinNode(t.root).data, true
}

// PopMin removes and returns the smallest element, or false if the tree is empty.
func (t *AATree[X]) PopMin() (x X, ok bool) {
	x, ok = t.Min()
	if ok {
		t.Remove(x)
	}
	return
}

// All yields every element in ascending order.
// The tree must not be modified while iterating.
func (t *AATree[X]) All() iter.Seq[X] {
	return func(yield func(X) bool) {
		var walk func(node *treeNode[X]) bool
		walk = func(node *treeNode[X]) bool {
			if node == nil {
				return true
			}
			return walk(node.left) && yield(node.data) && walk(node.right)
		}
		walk(t.root)
	}
}

// Insert inserts the value into the tree.
// Returns true if a new node was inserted, false if an equal value was already present.
func (t *AATree[X]) Insert(data X) bool {
	t.change = false
	t.root = t.insert(t.root, data)
	return t.change
}

// Remove removes the value from the tree.
// Returns true if there was a change (node was removed), false otherwise.
func (t *AATree[X]) Remove(data X) bool {
	t.change = false
	t.root = t.remove(t.root, data)
	return t.change
}

func skew[X any](node *treeNode[X]) *treeNode[X] {
	if node == nil || node.left == nil || node.left.level != node.level {
		return node
	}
	leftNode := node.left
	node.left = leftNode.right
	leftNode.right = node
	return leftNode
}

func split[X any](node *treeNode[X]) *treeNode[X] {
	if node == nil || node.right == nil || node.right.right == nil {
		return node
	}
	if node.right.right.level != node.level {
		return node
	}
	rightNode := node.right
	node.right = rightNode.left
	rightNode.left = node
	rightNode.level++
	return rightNode
}

func (t *AATree[X]) insert(node *treeNode[X], data X) *treeNode[X] {
	if node == nil {
		t.count++
		t.change = true
		return &treeNode[X]{level: 1, data: data}
	}

	c := t.compare(data, node.data)
	if c < 0 {
		node.left = t.insert(node.left, data)
	} else if c > 0 {
		node.right = t.insert(node.right, data)
	} else {
		return node // already a member
	}

	return split(skew(node))
}

func (t *AATree[X]) remove(node *treeNode[X], data X) *treeNode[X] {
	if node == nil {
		return nil
	}

	c := t.compare(data, node.data)
	if c < 0 {
		node.left = t.remove(node.left, data)
	} else if c > 0 {
		node.right = t.remove(node.right, data)
	} else {
		t.count--
		t.change = true

		if node.left == nil {
			return node.right
		} else if node.right == nil {
			return node.left
		}

		successor := findMinNode(node.right)
		node.data = successor.data
		node.right = t.removeMin(node.right)
	}

	return rebalance(node)
}

// removeMin drops the leftmost node below node without touching count.
func (t *AATree[X]) removeMin(node *treeNode[X]) *treeNode[X] {
	if node.left == nil {
		return node.right
	}
	node.left = t.removeMin(node.left)
	return rebalance(node)
}

func rebalance[X any](node *treeNode[X]) *treeNode[X] {
	var leftLevel, rightLevel int
	if node.left != nil {
		leftLevel = node.left.level
	}
	if node.right != nil {
		rightLevel = node.right.level
	}

	newLevel := min(leftLevel, rightLevel) + 1
	if newLevel < node.level {
		node.level = newLevel
		if node.right != nil && newLevel < node.right.level {
			node.right.level = newLevel
		}
	}

	node = skew(node)
	node.right = skew(node.right)
	if node.right != nil {
		node.right.right = skew(node.right.right)
	}
	node = split(node)
	node.right = split(node.right)
	return node
}

// findMinNode finds the node with the minimum value in the subtree rooted at `node`.
// Assumes `node` is not nil.
func findMinNode[X any](node *treeNode[X]) *treeNode[X] {
	for node.left != nil {
		node = node.left
	}
	return node
}
