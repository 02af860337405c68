package iter

import (
	"errors"
	"reflect"
	"testing"
)

func TestCollectErr(t *testing.T) {
	boom := errors.New("boom")

	seq := func(yield func(int, error) bool) {
		for i := range 3 {
			if !yield(i, nil) {
				return
			}
		}
		yield(0, boom)
	}

	out, err := CollectErr(seq)
	if err != boom {
		t.Errorf("expected boom, got %v", err)
	}
	if !reflect.DeepEqual(out, []int{0, 1, 2}) {
		t.Errorf("bad partial result: %v", out)
	}

	out, err = CollectErr(Seq2Error[int](boom))
	if err != boom || len(out) != 0 {
		t.Errorf("Seq2Error: got %v %v", out, err)
	}

	// a nil error is yielded as a zero value
	out, err = CollectErr(Seq2Error[int](nil))
	if err != nil || !reflect.DeepEqual(out, []int{0}) {
		t.Errorf("Seq2Error(nil): got %v %v", out, err)
	}
}
