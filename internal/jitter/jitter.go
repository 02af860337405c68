// Package jitter spreads out periodic timers.
package jitter

import (
	"math/rand/v2"
	"time"
)

// Range gets a random duration in [low,high). It returns low if the range is empty.
func Range(low, high time.Duration) time.Duration {
	delta := int64(high - low)
	if delta <= 0 {
		return low
	}
	return low + time.Duration(rand.Int64N(delta))
}

// Ratio returns value +/- the given fraction of itself. For instance, for +/- 25%, pass 0.25.
func Ratio(value time.Duration, by float64) time.Duration {
	i := time.Duration(float64(value) * by)
	return Range(value-i, value+i)
}
