// Package iter has helpers for iter.Seq2 values which pair results with an error.
package iter

import (
	"iter"
)

// Seq2Error returns an iter.Seq2 that simply yields a fixed error as its second argument, once.
// It is valid for err to be nil.
func Seq2Error[X any](err error) iter.Seq2[X, error] {
	return func(yield func(X, error) bool) {
		var x X
		yield(x, err)
	}
}

// CollectErr gathers all X from seq, stopping at the first non-nil error.
// The values read before the error are returned alongside it.
func CollectErr[X any](seq iter.Seq2[X, error]) (out []X, err error) {
	for x, xerr := range seq {
		if xerr != nil {
			return out, xerr
		}
		out = append(out, x)
	}
	return out, nil
}
