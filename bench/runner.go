package bench

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"

	"github.com/mhr3/skipscan/internal/options"
)

// State is the phase a Runner is in for a case.
type State int32

const (
	Idle State = iota
	Generating
	Running
	Validating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Generating:
		return "generating"
	case Running:
		return "running"
	case Validating:
		return "validating"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Runner times and cross-checks strategies over cases.
type Runner struct {
	cfg   *Config
	state atomic.Int32
}

// NewRunner returns a Runner configured by opts.
func NewRunner(opts ...Option) (*Runner, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg}, nil
}

// State returns the most recent state entered by any case.
func (r *Runner) State() State { return State(r.state.Load()) }

func (r *Runner) transition(caseName string, s State) {
	r.state.Store(int32(s))
	if r.cfg.onState != nil {
		r.cfg.onState(caseName, s)
	}
	if r.cfg.verbose {
		r.cfg.logger.Printf("case %s: %s", caseName, s)
	}
}

// measure runs fn iters times under a fresh meter. Nothing else runs
// inside the timed section.
func (r *Runner) measure(caseName, label string, iters int, checked bool, fn func() int) Sample {
	m := r.cfg.newMeter()
	var v int

	m.Begin()
	start := time.Now()
	for i := 0; i < iters; i++ {
		v = fn()
	}
	elapsed := time.Since(start)
	usage := m.End()

	if r.cfg.verbose {
		r.cfg.logger.Printf("case %s: %s: %v over %d iterations", caseName, label, elapsed, iters)
	}
	return Sample{
		Label:      label,
		Iterations: iters,
		Elapsed:    elapsed,
		Allocs:     usage.Allocs,
		Bytes:      usage.Bytes,
		Value:      v,
		Checked:    checked,
	}
}

type queued struct {
	idx int
	job Job
}

// Run executes jobs and returns a report in job order. Up to the
// configured number of workers run distinct jobs concurrently. The context
// is checked between rows, never inside a timed section.
//
// If any strategy disagreed with the reference, the report is returned
// together with a *ValidationError.
func (r *Runner) Run(ctx context.Context, jobs ...Job) (*Report, error) {
	q := queue.New()
	for i, j := range jobs {
		q.Add(queued{idx: i, job: j})
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]CaseReport, len(jobs))
		errs    = make([]error, len(jobs))
	)
	next := func() (queued, bool) {
		mu.Lock()
		defer mu.Unlock()
		if q.Length() == 0 {
			return queued{}, false
		}
		return q.Remove().(queued), true
	}

	workers := min(r.cfg.workers, len(jobs))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				it, ok := next()
				if !ok {
					return
				}
				if err := ctx.Err(); err != nil {
					results[it.idx] = CaseReport{Name: it.job.caseName()}
					errs[it.idx] = err
					continue
				}
				results[it.idx], errs[it.idx] = it.job.run(ctx, r)
			}
		}()
	}
	wg.Wait()

	rep := &Report{Env: CurrentEnvironment(), Cases: results}
	if err := errors.Join(errs...); err != nil {
		return rep, err
	}
	if vs := rep.Violations(); len(vs) > 0 {
		return rep, &ValidationError{Violations: vs}
	}
	return rep, nil
}
