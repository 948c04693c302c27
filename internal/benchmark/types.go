package benchmark

import (
	"fmt"
	"time"
)

// Record is the outcome of a single timed repetition.
type Record[T any] struct {
	Result   T
	Duration time.Duration
}

// Result is the persisted form of a Record.
type Result struct {
	Repetition int     `json:"repetition"`
	Total      string  `json:"total"`
	Seconds    float64 `json:"seconds"`
}

// Run represents the records of one harness invocation.
type Run struct {
	Timestamp time.Time `json:"timestamp"`
	Variant   string    `json:"variant"`
	Policy    string    `json:"policy"`
	Source    string    `json:"source"`   // Sample file path
	Elements  int       `json:"elements"` // Sample length
	Results   []Result  `json:"results"`
}

// NewRun converts records into a Run stamped with the current time.
func NewRun[T any](variant, policy, source string, elements int, records []Record[T]) Run {
	run := Run{
		Timestamp: time.Now(),
		Variant:   variant,
		Policy:    policy,
		Source:    source,
		Elements:  elements,
		Results:   make([]Result, len(records)),
	}
	for i, r := range records {
		run.Results[i] = Result{
			Repetition: i + 1,
			Total:      fmt.Sprint(r.Result),
			Seconds:    r.Duration.Seconds(),
		}
	}
	return run
}
