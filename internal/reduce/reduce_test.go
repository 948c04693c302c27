package reduce

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
	"testing"

	"speedtests/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func TestLoopAndFunctionalAgree(t *testing.T) {
	tests := []struct {
		name   string
		values []int32
		want   string
	}{
		{name: "Empty", values: nil, want: "0"},
		{name: "Single", values: []int32{7}, want: "49"},
		{name: "Negative Single", values: []int32{-5}, want: "25"},
		{name: "Small", values: []int32{1, 2, 3}, want: "14"},
		{name: "All Zeros", values: make([]int32, 100), want: "0"},
		{name: "Min Int32", values: []int32{math.MinInt32}, want: "4611686018427387904"},
		{name: "Max Int32", values: []int32{math.MaxInt32}, want: "4611686014132420609"},
		{
			name:   "Min And Max",
			values: []int32{math.MinInt32, math.MaxInt32},
			want:   "9223372032559808513",
		},
		{
			name:   "Beyond Int64",
			values: []int32{math.MinInt32, math.MinInt32, math.MinInt32},
			want:   "13835058055282163712",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := dataset.NewSample(tt.values...)

			loop, err := Loop(s, PolicyExact)
			require.NoError(t, err)
			fn, err := Functional(s, PolicyExact)
			require.NoError(t, err)

			assert.Equal(t, tt.want, loop.String())
			assert.True(t, loop.Equal(fn), "loop=%s functional=%s", loop, fn)
		})
	}
}

func TestAgreeOnGeneratedSamples(t *testing.T) {
	for seed := uint64(0); seed < 5; seed++ {
		s := dataset.Generate(5000, seed)
		for _, p := range []Policy{PolicyExact, PolicyWrap} {
			loop, err := Loop(s, p)
			require.NoError(t, err)
			fn, err := Functional(s, p)
			require.NoError(t, err)
			assert.True(t, loop.Equal(fn), "seed %d policy %s", seed, p)
		}
	}
}

func TestSingleElementIsSquare(t *testing.T) {
	for _, x := range []int32{0, 1, -1, 46341, -46341, 123456, math.MaxInt32, math.MinInt32} {
		s := dataset.NewSample(x)
		want := uint128.From64(uint64(int64(x) * int64(x)))

		loop, err := Loop(s, PolicyExact)
		require.NoError(t, err)
		assert.True(t, loop.Uint128().Equals(want), "x=%d", x)

		fn, err := Functional(s, PolicyExact)
		require.NoError(t, err)
		assert.True(t, fn.Uint128().Equals(want), "x=%d", x)
	}
}

func TestDeterministic(t *testing.T) {
	s := dataset.Generate(1000, 99)
	first, err := Functional(s, PolicyExact)
	require.NoError(t, err)
	second, err := Functional(s, PolicyExact)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))

	first, err = Loop(s, PolicyExact)
	require.NoError(t, err)
	second, err = Loop(s, PolicyExact)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestPolicies(t *testing.T) {
	// 3 * 2^62 does not fit in an int64.
	large := dataset.NewSample(math.MinInt32, math.MinInt32, math.MinInt32)
	small := dataset.NewSample(1, 2, 3)

	t.Run("Wrap", func(t *testing.T) {
		loop, err := Loop(large, PolicyWrap)
		require.NoError(t, err)
		fn, err := Functional(large, PolicyWrap)
		require.NoError(t, err)

		assert.True(t, loop.Wrapped())
		assert.Equal(t, "-4611686018427387904", loop.String())
		assert.True(t, loop.Equal(fn))

		exact, err := Loop(large, PolicyExact)
		require.NoError(t, err)
		assert.False(t, exact.Equal(loop))
	})

	t.Run("Checked", func(t *testing.T) {
		_, err := Loop(large, PolicyChecked)
		assert.True(t, errors.Is(err, ErrOverflow))
		_, err = Functional(large, PolicyChecked)
		assert.True(t, errors.Is(err, ErrOverflow))

		total, err := Functional(small, PolicyChecked)
		require.NoError(t, err)
		assert.Equal(t, "14", total.String())
	})

	t.Run("Wrap Without Overflow", func(t *testing.T) {
		total, err := Loop(small, PolicyWrap)
		require.NoError(t, err)
		assert.Equal(t, "14", total.String())

		total, err = Functional(small, PolicyWrap32)
		require.NoError(t, err)
		assert.Equal(t, "14", total.String())
	})

	t.Run("Wrap32", func(t *testing.T) {
		// 46341^2 = 2147488281 is just past math.MaxInt32.
		total, err := Loop(dataset.NewSample(46341), PolicyWrap32)
		require.NoError(t, err)
		assert.True(t, total.Wrapped())
		assert.Equal(t, "-2147479015", total.String())

		// 3 * 2^62 is a multiple of 2^32.
		total, err = Functional(large, PolicyWrap32)
		require.NoError(t, err)
		assert.Equal(t, "0", total.String())

		wrap64, err := Loop(large, PolicyWrap)
		require.NoError(t, err)
		assert.False(t, total.Equal(wrap64))
	})

	t.Run("Wrap32 Matches Int32 Accumulator", func(t *testing.T) {
		s := dataset.Generate(10_000, 7)

		var acc int32
		for _, x := range s.Values() {
			acc += x * x
		}

		loop, err := Loop(s, PolicyWrap32)
		require.NoError(t, err)
		fn, err := Functional(s, PolicyWrap32)
		require.NoError(t, err)

		assert.Equal(t, strconv.FormatInt(int64(acc), 10), loop.String())
		assert.True(t, loop.Equal(fn))
	})
}

func TestParsePolicy(t *testing.T) {
	for _, name := range []string{"exact", "wrap", "wrap32", "checked", "EXACT"} {
		p, err := ParsePolicy(name)
		require.NoError(t, err)
		assert.Equal(t, strings.ToLower(name), p.String())
	}

	_, err := ParsePolicy("saturate")
	assert.Error(t, err)
	assert.Equal(t, "Policy(42)", Policy(42).String())
}

func TestMapIsLazy(t *testing.T) {
	calls := 0
	seq := Map(slices.Values([]int{1, 2, 3, 4}), func(v int) int {
		calls++
		return v * 10
	})
	assert.Equal(t, 0, calls)

	for v := range seq {
		if v == 20 {
			break
		}
	}
	assert.Equal(t, 2, calls)
}

func TestFoldIsLeftToRight(t *testing.T) {
	got := Fold(slices.Values([]string{"a", "b", "c"}), ">", func(acc, v string) string {
		return acc + v
	})
	assert.Equal(t, ">abc", got)
	assert.Equal(t, 5, Fold(slices.Values([]int(nil)), 5, func(a, b int) int { return a + b }))
}
