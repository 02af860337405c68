package treearray

import (
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"
)

// checkNode verifies size, height and balance below n, returning its size.
func checkNode[T any](t *testing.T, n *node[T]) int {
	if n == nil {
		return 0
	}
	ls := checkNode(t, n.left)
	rs := checkNode(t, n.right)

	if n.size != 1+ls+rs {
		t.Fatalf("bad size at %v: got=%d want=%d", n.value, n.size, 1+ls+rs)
	}
	if want := 1 + max(heightOf(n.left), heightOf(n.right)); n.height != want {
		t.Fatalf("bad height at %v: got=%d want=%d", n.value, n.height, want)
	}
	if bf := n.balanceFactor(); bf < -1 || bf > 1 {
		t.Fatalf("unbalanced at %v: bf=%d", n.value, bf)
	}
	return n.size
}

func checkTree[T any](t *testing.T, tree *Tree[T], want []T) {
	t.Helper()
	checkNode(t, tree.root)

	if tree.Len() != len(want) {
		t.Fatalf("bad len: got=%d want=%d", tree.Len(), len(want))
	}
	got := tree.InOrder()
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("bad order: got=%v want=%v", got, want)
	}

	// AVL height is at most ~1.44*log2(n+2)
	limit := int(math.Ceil(1.45 * math.Log2(float64(len(want)+2))))
	if tree.Height() > limit {
		t.Fatalf("tree too tall: height=%d limit=%d n=%d", tree.Height(), limit, len(want))
	}
}

func TestBasic(t *testing.T) {
	tree := New[int]()
	tree.Append(10)
	tree.Append(20)
	if err := tree.Insert(1, 15); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	checkTree(t, tree, []int{10, 15, 20})

	v, err := tree.Delete(1)
	if err != nil || v != 15 {
		t.Errorf("Delete(1): expected 15, got %d err=%v", v, err)
	}
	checkTree(t, tree, []int{10, 20})

	if err := tree.Set(1, 99); err != nil {
		t.Errorf("Set(1): %v", err)
	}
	if v, _ := tree.Get(1); v != 99 {
		t.Errorf("Get(1): expected 99, got %d", v)
	}
	if v, _ := tree.Get(0); v != 10 {
		t.Errorf("Get(0): expected 10, got %d", v)
	}
}

func TestBounds(t *testing.T) {
	tree := New[string]()
	tree.Append("a")

	var ie *IndexError

	_, err := tree.Get(5)
	if !errors.As(err, &ie) || *ie != (IndexError{Index: 5, Len: 1}) {
		t.Errorf("Get(5): expected IndexError{5,1}, got %v", err)
	}
	if err := tree.Set(1, "x"); !errors.As(err, &ie) {
		t.Errorf("Set(1): expected IndexError, got %v", err)
	}
	if err := tree.Insert(3, "x"); !errors.As(err, &ie) || ie.Index != 3 {
		t.Errorf("Insert(3): expected IndexError, got %v", err)
	}
	if err := tree.Insert(-1, "x"); !errors.As(err, &ie) {
		t.Errorf("Insert(-1): expected IndexError, got %v", err)
	}
	if _, err := tree.Delete(1); !errors.As(err, &ie) {
		t.Errorf("Delete(1): expected IndexError, got %v", err)
	}

	// failures did not change anything
	checkTree(t, tree, []string{"a"})

	// insert at len is allowed
	if err := tree.Insert(1, "b"); err != nil {
		t.Errorf("Insert(len): %v", err)
	}
	checkTree(t, tree, []string{"a", "b"})
}

func TestPop(t *testing.T) {
	tree := New[int]()
	if _, err := tree.Pop(); err != ErrEmpty {
		t.Errorf("Pop on empty: expected ErrEmpty, got %v", err)
	}

	for i := range 5 {
		tree.Append(i)
	}
	for i := 4; i >= 0; i-- {
		v, err := tree.Pop()
		if err != nil || v != i {
			t.Errorf("Pop: expected %d, got %d err=%v", i, v, err)
		}
	}
	checkTree(t, tree, nil)
}

func TestIter(t *testing.T) {
	tree := New[int]()
	for v := range 100 {
		tree.Append(v)
	}

	var got []int
	it := tree.Iter()
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if !reflect.DeepEqual(got, tree.InOrder()) {
		t.Errorf("Iter disagrees with InOrder")
	}

	// All can be restarted
	for range 2 {
		count := 0
		for i, v := range tree.All() {
			if i != v {
				t.Errorf("All: position %d had %d", i, v)
			}
			count++
		}
		if count != 100 {
			t.Errorf("All: expected 100 values, got %d", count)
		}
	}

	// early break is fine
	for i := range tree.All() {
		if i == 3 {
			break
		}
	}

	empty := New[int]()
	if _, ok := empty.Iter().Next(); ok {
		t.Errorf("empty Iter should be done")
	}
}

func TestInsertDeleteSymmetry(t *testing.T) {
	tree := New[int]()
	for v := range 33 {
		tree.Append(v)
	}
	before := tree.InOrder()

	for i := 0; i <= tree.Len(); i++ {
		if err := tree.Insert(i, -1); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
		v, err := tree.Delete(i)
		if err != nil || v != -1 {
			t.Fatalf("Delete(%d): got %d err=%v", i, v, err)
		}
		checkTree(t, tree, before)
	}
}

func TestRandom(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	tree := New[int]()
	var model []int

	for op := range 5000 {
		switch choice := r.IntN(10); {
		case choice < 4:
			i := r.IntN(len(model) + 1)
			if err := tree.Insert(i, op); err != nil {
				t.Fatalf("Insert(%d): %v", i, err)
			}
			model = append(model[:i], append([]int{op}, model[i:]...)...)

		case choice < 6:
			tree.Append(op)
			model = append(model, op)

		case choice < 8 && len(model) > 0:
			i := r.IntN(len(model))
			v, err := tree.Delete(i)
			if err != nil || v != model[i] {
				t.Fatalf("Delete(%d): got %d want %d err=%v", i, v, model[i], err)
			}
			model = append(model[:i], model[i+1:]...)

		case choice == 8 && len(model) > 0:
			i := r.IntN(len(model))
			if err := tree.Set(i, -op); err != nil {
				t.Fatalf("Set(%d): %v", i, err)
			}
			model[i] = -op

		default:
			v, err := tree.Pop()
			if len(model) == 0 {
				if err != ErrEmpty {
					t.Fatalf("Pop on empty: %v", err)
				}
				continue
			}
			if err != nil || v != model[len(model)-1] {
				t.Fatalf("Pop: got %d want %d", v, model[len(model)-1])
			}
			model = model[:len(model)-1]
		}

		if op%50 == 0 {
			checkTree(t, tree, model)
		}
	}
	checkTree(t, tree, model)

	for i, want := range model {
		if got, _ := tree.Get(i); got != want {
			t.Fatalf("Get(%d): got %d want %d", i, got, want)
		}
	}
}

func TestDebugString(t *testing.T) {
	tree := New[int]()
	if tree.DebugString() != "" {
		t.Errorf("expected empty render")
	}
	tree.Append(1)
	tree.Append(2)
	tree.Append(3)

	want := "R- [2] size:3 height:2\n   L- [1] size:1 height:1\n   R- [3] size:1 height:1\n"
	if got := tree.DebugString(); got != want {
		t.Errorf("bad render:\n%s", got)
	}
}

func BenchmarkInsertDelete(b *testing.B) {
	r := rand.New(rand.NewPCG(3, 4))
	tree := New[int]()
	for v := range 100_000 {
		tree.Append(v)
	}

	for b.Loop() {
		i := r.IntN(tree.Len())
		tree.Insert(i, i)
		tree.Delete(r.IntN(tree.Len()))
	}
}
