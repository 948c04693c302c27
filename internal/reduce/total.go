package reduce

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"lukechampine.com/uint128"
)

// ErrOverflow is returned under PolicyChecked when a sum does not fit in an int64.
var ErrOverflow = errors.New("sum of squares overflows int64")

// Policy decides how a sum that does not fit in 64 bits is reported.
// Every reduction accumulates into the same exact 128-bit sum and applies
// the policy once at the end. Squares are never negative, so the running sum
// only grows and checking the final value is equivalent to checking each step.
type Policy int

const (
	// PolicyExact reports the full sum.
	PolicyExact Policy = iota
	// PolicyWrap keeps the low 64 bits as a two's-complement int64, like an
	// int64 accumulator over int64 squares.
	PolicyWrap
	// PolicyChecked fails with ErrOverflow when the sum exceeds math.MaxInt64.
	PolicyChecked
	// PolicyWrap32 keeps the low 32 bits as a two's-complement int32, like an
	// int accumulator over int squares. Addition and multiplication both
	// commute with truncation mod 2^32, so this is exact.
	PolicyWrap32
)

var policyNames = map[Policy]string{
	PolicyExact:   "exact",
	PolicyWrap:    "wrap",
	PolicyChecked: "checked",
	PolicyWrap32:  "wrap32",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy maps a configuration value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown overflow policy %q (want exact, wrap, wrap32 or checked)", s)
}

func (p Policy) apply(sum uint128.Uint128) (Total, error) {
	switch p {
	case PolicyExact:
		return Total{sum: sum}, nil
	case PolicyWrap:
		return Total{sum: uint128.From64(sum.Lo), bits: 64}, nil
	case PolicyWrap32:
		return Total{sum: uint128.From64(uint64(uint32(sum.Lo))), bits: 32}, nil
	case PolicyChecked:
		if sum.Hi != 0 || sum.Lo > math.MaxInt64 {
			return Total{}, fmt.Errorf("%w: %s", ErrOverflow, sum)
		}
		return Total{sum: sum}, nil
	default:
		return Total{}, fmt.Errorf("unknown overflow policy %d", int(p))
	}
}

// Total is the result of a reduction.
type Total struct {
	sum uint128.Uint128
	// bits is the width a wrapped total was truncated to, 0 when exact.
	bits uint8
}

// Equal reports whether both totals are bit-identical.
func (t Total) Equal(o Total) bool {
	return t.bits == o.bits && t.sum.Equals(o.sum)
}

// Uint128 returns the accumulated value. For wrapped totals only the low
// 64 or 32 bits are set.
func (t Total) Uint128() uint128.Uint128 {
	return t.sum
}

// Wrapped reports whether the total was produced under PolicyWrap or
// PolicyWrap32.
func (t Total) Wrapped() bool {
	return t.bits != 0
}

func (t Total) String() string {
	switch t.bits {
	case 64:
		return strconv.FormatInt(int64(t.sum.Lo), 10)
	case 32:
		return strconv.FormatInt(int64(int32(uint32(t.sum.Lo))), 10)
	}
	return t.sum.String()
}
