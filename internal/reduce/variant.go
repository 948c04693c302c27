package reduce

import (
	"errors"
	"fmt"
	"slices"

	"speedtests/internal/dataset"

	"lukechampine.com/uint128"
)

// ErrUnknownVariant is returned by Lookup for unregistered names.
var ErrUnknownVariant = errors.New("unknown variant")

// Func computes a total over a sample bound at construction time.
type Func func() (Total, error)

// Variant is one way of computing the sum of squares.
type Variant struct {
	Name        string
	Description string
	// WarmupCost marks variants whose first call pays a one-time setup cost.
	WarmupCost bool
	New        func(s dataset.Sample, p Policy) Func
}

var variants = []Variant{
	{
		Name:        "loop",
		Description: "accumulator loop over indices",
		New: func(s dataset.Sample, p Policy) Func {
			return func() (Total, error) { return Loop(s, p) }
		},
	},
	{
		Name:        "functional",
		Description: "lazy map of squares folded with addition",
		New: func(s dataset.Sample, p Policy) Func {
			return func() (Total, error) { return Functional(s, p) }
		},
	},
	{
		Name:        "staged",
		Description: "loop over a widened copy prepared on first call",
		WarmupCost:  true,
		New: func(s dataset.Sample, p Policy) Func {
			st := &staged{sample: s, policy: p}
			return st.call
		},
	},
}

// Variants returns the registered variants in a stable order.
func Variants() []Variant {
	return slices.Clone(variants)
}

// Names returns the names of the registered variants.
func Names() []string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}
	return names
}

// Lookup finds a variant by name.
func Lookup(name string) (Variant, error) {
	for _, v := range variants {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// staged widens the sample into int64 on its first call and reuses that copy.
// The preparation is setup, not a cached result: every call still sums.
type staged struct {
	sample   dataset.Sample
	policy   Policy
	ready    bool
	prepared []int64
}

func (st *staged) call() (Total, error) {
	if !st.ready {
		st.prepared = make([]int64, st.sample.Len())
		for i, v := range st.sample.Values() {
			st.prepared[i] = int64(v)
		}
		st.ready = true
	}

	acc := uint128.Zero
	for _, v := range st.prepared {
		acc = acc.Add64(uint64(v * v))
	}
	return st.policy.apply(acc)
}
