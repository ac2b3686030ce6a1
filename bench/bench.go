// Package bench compares search strategies over the same inputs.
//
// A Runner takes Cases, times every strategy over each one with a Meter
// scoped to that single measurement, and cross-checks all results against
// the naive scan. Any disagreement is a correctness failure and is
// reported, never resolved by trusting one strategy over another.
package bench

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mhr3/skipscan/seq"
)

var (
	// ErrSourceUnavailable is returned when a haystack cannot be loaded.
	ErrSourceUnavailable = seq.ErrSourceUnavailable

	// ErrMismatch is wrapped by ValidationError.
	ErrMismatch = errors.New("bench: strategies disagree")
)

// Sample is one timed row: a strategy run Iterations times over one case.
type Sample struct {
	Label      string
	Iterations int
	Elapsed    time.Duration
	Allocs     uint64
	Bytes      uint64
	// Value is the result of the last iteration: a match offset (or -1)
	// for search rows, the pattern length for init-only rows.
	Value int
	// Checked marks rows whose Value is validated against the reference.
	Checked bool
}

// PerOp returns the mean time per iteration.
func (s Sample) PerOp() time.Duration {
	if s.Iterations <= 0 {
		return 0
	}
	return s.Elapsed / time.Duration(s.Iterations)
}

// Violation records a strategy disagreeing with the reference result.
type Violation struct {
	Case        string
	Label       string
	Want, Got   int
	HaystackLen int
	Needle      string // preview of the needle
}

func (v Violation) String() string {
	return fmt.Sprintf("case=%s strategy=%s got=%d want=%d haystack_len=%d needle=%s",
		v.Case, v.Label, v.Got, v.Want, v.HaystackLen, v.Needle)
}

// ValidationError lists every violation found during a run.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "bench: %d correctness violation(s)", len(e.Violations))
	for _, v := range e.Violations {
		sb.WriteString("; ")
		sb.WriteString(v.String())
	}
	return sb.String()
}

func (e *ValidationError) Unwrap() error { return ErrMismatch }
