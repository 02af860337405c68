package cellstore

import (
	"testing"
)

func TestDense(t *testing.T) {
	d := New(1, 1)
	if d.Rows() != 1 || d.Cols() != 1 {
		t.Errorf("bad size: %dx%d", d.Rows(), d.Cols())
	}

	d.Set(2, 3, "x")
	if d.Rows() != 3 || d.Cols() != 4 {
		t.Errorf("Set should grow: %dx%d", d.Rows(), d.Cols())
	}
	if d.Get(2, 3) != "x" || d.Get(0, 0) != "" {
		t.Errorf("bad cells")
	}
	if d.Get(10, 0) != "" || d.Get(-1, 0) != "" {
		t.Errorf("out of range should read empty")
	}

	d.GrowColsTo(2) // no-op
	d.GrowRowsTo(5)
	if d.Rows() != 5 || d.Cols() != 4 || d.Get(4, 3) != "" {
		t.Errorf("bad grow: %dx%d", d.Rows(), d.Cols())
	}

	d.Set(-1, 0, "ignored")
	if d.Rows() != 5 {
		t.Errorf("negative Set should be ignored")
	}
}

func TestFromRecords(t *testing.T) {
	src := [][]string{{"a"}, {"b", "c", "d"}}
	d := FromRecords(src)
	if d.Rows() != 2 || d.Cols() != 3 {
		t.Fatalf("bad size: %dx%d", d.Rows(), d.Cols())
	}
	if d.Get(0, 2) != "" || d.Get(1, 2) != "d" {
		t.Errorf("bad padding")
	}

	src[0][0] = "changed"
	if d.Get(0, 0) != "a" {
		t.Errorf("records were not copied")
	}
}
