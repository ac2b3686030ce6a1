package bench

import (
	"context"
	"fmt"
	"strings"

	"github.com/mhr3/skipscan/internal/bytealg"
	"github.com/mhr3/skipscan/search"
	"github.com/mhr3/skipscan/seq"
)

// Job is a unit of work for a Runner. *Case[T] is the only implementation.
type Job interface {
	caseName() string
	run(ctx context.Context, r *Runner) (CaseReport, error)
}

// Contender is an extra strategy timed and validated next to the built-in
// ones.
type Contender[T comparable] struct {
	Label    string
	Strategy search.Strategy[T]
}

// Case is one (pattern, haystack, iteration count) triple.
type Case[T comparable] struct {
	Name       string
	Haystack   seq.Sequence[T]
	Needle     seq.Sequence[T]
	Iterations int // 0 uses the runner default

	// Contenders must be bound to Needle.
	Contenders []Contender[T]
}

var _ Job = (*Case[byte])(nil)

func (c *Case[T]) caseName() string { return c.Name }

func (c *Case[T]) run(ctx context.Context, r *Runner) (CaseReport, error) {
	rep := CaseReport{Name: c.Name}

	r.transition(c.Name, Generating)
	defer r.transition(c.Name, Idle)

	if c.Haystack == nil {
		return rep, fmt.Errorf("bench: case %s: nil haystack", c.Name)
	}
	reference, err := search.Bind(c.Needle, search.Naive)
	if err != nil {
		return rep, fmt.Errorf("bench: case %s: %w", c.Name, err)
	}
	iters := c.Iterations
	if iters <= 0 {
		iters = r.cfg.iterations
	}
	rep.Input = describe(c.Haystack, c.Needle)
	want := int(reference.Find(c.Haystack, 0))
	hayText, hayIsText := textOf[T](c.Haystack)
	needleText, needleIsText := textOf[T](c.Needle)

	r.transition(c.Name, Running)
	if r.cfg.baselines && hayIsText && needleIsText {
		rep.Samples = append(rep.Samples, r.measure(c.Name, "stdlib", iters, true, func() int {
			return strings.Index(hayText, needleText)
		}))
		rep.Samples = append(rep.Samples, r.measure(c.Name, "dense_horspool init only", iters, false, func() int {
			return bytealg.NewHorspool(needleText).Len()
		}))
		dense := bytealg.NewHorspool(needleText)
		rep.Samples = append(rep.Samples, r.measure(c.Name, "dense_horspool", iters, true, func() int {
			return dense.Index(hayText, 0)
		}))
	}

	for _, kind := range r.cfg.kinds {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		e, err := search.Bind(c.Needle, kind)
		if err != nil {
			return rep, fmt.Errorf("bench: case %s: %w", c.Name, err)
		}
		if r.cfg.initRows {
			rep.Samples = append(rep.Samples, r.measure(c.Name, kind.String()+" init only", iters, false, func() int {
				p, err := search.NewPattern(c.Needle, kind)
				if err != nil {
					return -1
				}
				return p.Len()
			}))
		}
		rep.Samples = append(rep.Samples, r.measure(c.Name, kind.String(), iters, true, func() int {
			return int(e.Find(c.Haystack, 0))
		}))
	}

	for _, ct := range c.Contenders {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		s := ct.Strategy
		rep.Samples = append(rep.Samples, r.measure(c.Name, ct.Label, iters, true, func() int {
			return int(s.Find(c.Haystack, 0))
		}))
	}

	r.transition(c.Name, Validating)
	rep.Violations = validate(c, rep, want)
	for _, v := range rep.Violations {
		r.cfg.logger.Printf("correctness violation: %s", v)
	}
	return rep, nil
}

func validate[T comparable](c *Case[T], rep CaseReport, want int) []Violation {
	var out []Violation
	needle := preview(c.Needle)
	add := func(label string, got int) {
		out = append(out, Violation{
			Case:        c.Name,
			Label:       label,
			Want:        want,
			Got:         got,
			HaystackLen: c.Haystack.Len(),
			Needle:      needle,
		})
	}

	// the reference itself must not report a false match
	if want >= 0 && !seq.Equal(c.Haystack.Slice(want, want+c.Needle.Len()), c.Needle) {
		add(search.Naive.String()+" (reference)", want)
	}
	for _, s := range rep.Samples {
		if s.Checked && s.Value != want {
			add(s.Label, s.Value)
		}
	}
	return out
}

// textOf returns the string form of a byte sequence. The copy happens
// before any timed section.
func textOf[T comparable](s seq.Sequence[T]) (string, bool) {
	switch v := any(s).(type) {
	case seq.String:
		return v.String(), true
	case interface{ Bytes() []byte }:
		return string(v.Bytes()), true
	case seq.Sequence[byte]:
		return string(seq.Values(v)), true
	}
	return "", false
}

func preview[T comparable](s seq.Sequence[T]) string {
	const limit = 32
	n := s.Len()
	if t, ok := textOf(s); ok {
		if n > limit {
			return fmt.Sprintf("%q...(%d)", t[:limit], n)
		}
		return fmt.Sprintf("%q", t)
	}
	vals := seq.Values(s.Slice(0, min(n, limit)))
	if n > limit {
		return fmt.Sprintf("%v...(%d)", vals, n)
	}
	return fmt.Sprintf("%v", vals)
}
