package benchmark

import (
	"bytes"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lineRegex = regexp.MustCompile(`^result = (-?\d+) \((\d+\.\d{8}) seconds\)$`)

type recordingObserver struct {
	repetitions []int
}

func (r *recordingObserver) Observe(repetition int, elapsed time.Duration) {
	r.repetitions = append(r.repetitions, repetition)
}

func TestMeasure(t *testing.T) {
	var out bytes.Buffer
	obs := &recordingObserver{}
	calls := 0

	records, err := Measure(func() (int, error) {
		calls++
		return calls * 100, nil
	}, 10, WithOutput(&out), WithObserver(obs))
	require.NoError(t, err)

	assert.Equal(t, 10, calls)
	require.Len(t, records, 10)
	for i, r := range records {
		assert.Equal(t, (i+1)*100, r.Result, "records must be in call order")
		assert.GreaterOrEqual(t, r.Duration, time.Duration(0))
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, obs.repetitions)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 10)
	for i, line := range lines {
		m := lineRegex.FindStringSubmatch(line)
		require.NotNil(t, m, "unexpected line %q", line)
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		assert.Equal(t, records[i].Result, n)
	}
}

func TestMeasure_LinesWrittenImmediately(t *testing.T) {
	var out bytes.Buffer
	lineCounts := []int{}

	_, err := Measure(func() (int, error) {
		lineCounts = append(lineCounts, strings.Count(out.String(), "\n"))
		return 1, nil
	}, 3, WithOutput(&out))
	require.NoError(t, err)

	// Before call k, k-1 lines are already visible.
	assert.Equal(t, []int{0, 1, 2}, lineCounts)
}

func TestMeasure_FailurePropagates(t *testing.T) {
	boom := errors.New("boom")
	var out bytes.Buffer
	calls := 0

	records, err := Measure(func() (int, error) {
		calls++
		if calls == 4 {
			return 0, boom
		}
		return calls, nil
	}, 10, WithOutput(&out))

	assert.Same(t, boom, err)
	assert.Equal(t, 4, calls)
	assert.Len(t, records, 3)
	assert.Equal(t, 3, strings.Count(out.String(), "\n"))
}

func TestMeasure_FailureOnFirstCall(t *testing.T) {
	boom := errors.New("boom")
	records, err := Measure(func() (int, error) { return 0, boom }, 10, WithOutput(nil))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, records)
}

func TestMeasure_InvalidRepeats(t *testing.T) {
	for _, n := range []int{0, -1} {
		called := false
		records, err := Measure(func() (int, error) {
			called = true
			return 0, nil
		}, n, WithOutput(nil))

		assert.ErrorIs(t, err, ErrInvalidRepeats)
		assert.Nil(t, records)
		assert.False(t, called)
	}
}

func TestMeasure_Label(t *testing.T) {
	var out bytes.Buffer
	_, err := Measure(func() (string, error) { return "x", nil }, 1, WithOutput(&out), WithLabel("total"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "total = x ("))
}

func TestFormatLine(t *testing.T) {
	assert.Equal(t, "result = 14 (0.01234567 seconds)", FormatLine("result", 14, 12345670*time.Nanosecond))
	assert.Equal(t, "result = 25 (1.50000000 seconds)", FormatLine("result", 25, 1500*time.Millisecond))
	assert.Equal(t, "result = 0 (0.00000000 seconds)", FormatLine("result", 0, 0))
}

func TestNewRun(t *testing.T) {
	records := []Record[int]{
		{Result: 14, Duration: 2 * time.Second},
		{Result: 14, Duration: time.Second},
	}

	run := NewRun("loop", "exact", "data.int32", 3, records)

	assert.Equal(t, "loop", run.Variant)
	assert.Equal(t, "exact", run.Policy)
	assert.Equal(t, "data.int32", run.Source)
	assert.Equal(t, 3, run.Elements)
	assert.False(t, run.Timestamp.IsZero())
	require.Len(t, run.Results, 2)
	assert.Equal(t, Result{Repetition: 1, Total: "14", Seconds: 2}, run.Results[0])
	assert.Equal(t, Result{Repetition: 2, Total: "14", Seconds: 1}, run.Results[1])
}
