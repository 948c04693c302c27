package dataset

import (
	"iter"
	"slices"
)

// ElementSize is the width in bytes of one encoded sample value.
const ElementSize = 4

// Sample is an immutable, ordered sequence of 32-bit signed integers.
type Sample struct {
	values []int32
}

// NewSample returns a Sample holding a copy of values.
func NewSample(values ...int32) Sample {
	return Sample{values: slices.Clone(values)}
}

// Len returns the number of elements.
func (s Sample) Len() int {
	return len(s.values)
}

// At returns the i-th element. It panics if i is out of range.
func (s Sample) At(i int) int32 {
	return s.values[i]
}

// Values exposes the backing slice for index-based loops.
// Callers must not modify it.
func (s Sample) Values() []int32 {
	return s.values
}

// All returns a lazy, single-pass sequence over the elements in order.
func (s Sample) All() iter.Seq[int32] {
	return func(yield func(int32) bool) {
		for _, v := range s.values {
			if !yield(v) {
				return
			}
		}
	}
}

// Size returns the encoded size of the sample in bytes.
func (s Sample) Size() int64 {
	return int64(len(s.values)) * ElementSize
}
