package benchmark

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// ErrInvalidRepeats is returned when Measure is asked for fewer than one repetition.
var ErrInvalidRepeats = errors.New("repeats must be positive")

// DefaultRepeats matches the ten repetitions of the original speed tests.
const DefaultRepeats = 10

// Observer is notified after every completed repetition.
type Observer interface {
	Observe(repetition int, elapsed time.Duration)
}

type options struct {
	out      io.Writer
	label    string
	observer Observer
}

// Option configures Measure.
type Option func(*options)

// WithOutput sets where per-repetition lines are written. Defaults to stdout.
// A nil writer disables the lines.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithLabel sets the text printed before the result. Defaults to "result".
func WithLabel(label string) Option {
	return func(o *options) { o.label = label }
}

// WithObserver registers an Observer.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// Measure calls f repeats times, timing each call with the monotonic clock.
// A line is printed as soon as each repetition finishes. If f fails, the
// records of the earlier repetitions are returned together with f's error.
// There is no warmup and no timeout.
func Measure[T any](f func() (T, error), repeats int, opts ...Option) ([]Record[T], error) {
	if repeats < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRepeats, repeats)
	}

	o := options{out: os.Stdout, label: "result"}
	for _, opt := range opts {
		opt(&o)
	}

	records := make([]Record[T], 0, repeats)
	for i := 1; i <= repeats; i++ {
		start := time.Now()
		v, err := f()
		elapsed := time.Since(start)
		if err != nil {
			return records, err
		}

		records = append(records, Record[T]{Result: v, Duration: elapsed})

		if o.out != nil {
			fmt.Fprintln(o.out, FormatLine(o.label, v, elapsed))
		}
		if o.observer != nil {
			o.observer.Observe(i, elapsed)
		}
	}

	return records, nil
}

// FormatLine renders a repetition as "label = value (0.01234567 seconds)".
func FormatLine(label string, value any, elapsed time.Duration) string {
	return fmt.Sprintf("%s = %v (%.8f seconds)", label, value, elapsed.Seconds())
}
