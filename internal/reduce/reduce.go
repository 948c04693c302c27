// Package reduce computes the sum of squares of a sample in several
// equivalent ways.
package reduce

import (
	"iter"

	"speedtests/internal/dataset"

	"lukechampine.com/uint128"
)

// Square returns x*x. The result of any int32 fits in 63 bits.
func Square(x int32) uint64 {
	v := int64(x)
	return uint64(v * v)
}

func add(acc uint128.Uint128, sq uint64) uint128.Uint128 {
	return acc.Add64(sq)
}

// Map lazily applies f to every element of seq.
func Map[In, Out any](seq iter.Seq[In], f func(In) Out) iter.Seq[Out] {
	return func(yield func(Out) bool) {
		for v := range seq {
			if !yield(f(v)) {
				return
			}
		}
	}
}

// Fold combines the elements of seq from left to right, starting with seed.
func Fold[T, A any](seq iter.Seq[T], seed A, f func(A, T) A) A {
	acc := seed
	for v := range seq {
		acc = f(acc, v)
	}
	return acc
}

// Loop sums the squares with an index-based accumulator loop.
func Loop(s dataset.Sample, p Policy) (Total, error) {
	values := s.Values()
	acc := uint128.Zero
	for i := 0; i < len(values); i++ {
		acc = add(acc, Square(values[i]))
	}
	return p.apply(acc)
}

// Functional folds a lazy stream of squares into a sum.
func Functional(s dataset.Sample, p Policy) (Total, error) {
	return p.apply(Fold(Map(s.All(), Square), uint128.Zero, add))
}
