package bench

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhr3/skipscan/search"
	"github.com/mhr3/skipscan/seq"
)

func newTestRunner(t *testing.T, opts ...Option) *Runner {
	t.Helper()
	base := []Option{WithIterations(3), WithMeter(NewNopMeter), WithLogger(nil)}
	r, err := NewRunner(append(base, opts...)...)
	require.NoError(t, err)
	return r
}

func textCase(name, hay, needle string) *Case[byte] {
	return &Case[byte]{Name: name, Haystack: seq.FromString(hay), Needle: seq.FromString(needle)}
}

func labels(c CaseReport) []string {
	out := make([]string, 0, len(c.Samples))
	for _, s := range c.Samples {
		out = append(out, s.Label)
	}
	return out
}

func TestRunnerText(t *testing.T) {
	needle := NeedleSpec{Origin: OriginEnd, Length: 24}.Cut(LoremIpsum)
	want := strings.Index(LoremIpsum, needle)

	r := newTestRunner(t)
	rep, err := r.Run(context.Background(), textCase("lorem", LoremIpsum, needle))
	require.NoError(t, err)
	require.Len(t, rep.Cases, 1)

	c := rep.Cases[0]
	require.Equal(t, []string{
		"stdlib",
		"dense_horspool init only",
		"dense_horspool",
		"naive init only",
		"naive",
		"boyer_moore init only",
		"boyer_moore",
		"boyer_moore_horspool init only",
		"boyer_moore_horspool",
	}, labels(c))
	for _, s := range c.Samples {
		require.Equal(t, 3, s.Iterations, s.Label)
		if s.Checked {
			require.Equal(t, want, s.Value, s.Label)
		} else {
			require.Equal(t, len(needle), s.Value, s.Label)
		}
	}
	require.Empty(t, c.Violations)

	assert.Equal(t, len(LoremIpsum), c.Input.HaystackLen)
	assert.Equal(t, len(needle), c.Input.NeedleLen)
	assert.True(t, c.Input.Text)
	assert.True(t, c.Input.ASCII)
	assert.NotZero(t, c.Input.Fingerprint)
	assert.Equal(t, Idle, r.State())
}

func TestRunnerNotFound(t *testing.T) {
	r := newTestRunner(t, WithInitRows(false), WithBaselines(false))
	rep, err := r.Run(context.Background(), textCase("absent", LoremIpsum, "zzzzqqqq"))
	require.NoError(t, err)
	for _, s := range rep.Cases[0].Samples {
		require.Equal(t, -1, s.Value, s.Label)
	}
}

func TestRunnerInts(t *testing.T) {
	hay := Iota(100_000)
	c := &Case[int]{
		Name:       "ints",
		Haystack:   seq.Of(hay),
		Needle:     seq.Of(hay[len(hay)-1000:]),
		Iterations: 2,
	}

	r := newTestRunner(t)
	rep, err := r.Run(context.Background(), c)
	require.NoError(t, err)

	got := rep.Cases[0]
	// no byte baselines for non-text elements
	require.Equal(t, []string{
		"naive init only", "naive",
		"boyer_moore init only", "boyer_moore",
		"boyer_moore_horspool init only", "boyer_moore_horspool",
	}, labels(got))
	for _, s := range got.Samples {
		require.Equal(t, 2, s.Iterations)
		if s.Checked {
			require.Equal(t, 99_000, s.Value, s.Label)
		}
	}
	require.False(t, got.Input.Text)
	require.NotZero(t, got.Input.Fingerprint)
}

func TestRunnerStates(t *testing.T) {
	var (
		mu     sync.Mutex
		states []State
	)
	r := newTestRunner(t, WithStateHook(func(name string, s State) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "states", name)
		states = append(states, s)
	}))
	_, err := r.Run(context.Background(), textCase("states", LoremIpsum, "laborum"))
	require.NoError(t, err)
	require.Equal(t, []State{Generating, Running, Validating, Idle}, states)
}

// shifted reports every match one position too far right.
type shifted struct {
	*search.Engine[byte]
}

func (s shifted) Find(h seq.Sequence[byte], from int) search.Result {
	r := s.Engine.Find(h, from)
	if r.Found() {
		return r + 1
	}
	return r
}

func TestRunnerFlagsWrongStrategy(t *testing.T) {
	needle := "dolore magna"
	e, err := search.Bind[byte](seq.FromString(needle), search.Horspool)
	require.NoError(t, err)

	c := textCase("wrong", LoremIpsum, needle)
	c.Contenders = []Contender[byte]{{Label: "shifted", Strategy: shifted{e}}}

	var logBuf bytes.Buffer
	r := newTestRunner(t, WithLogger(log.New(&logBuf, "", 0)))
	rep, err := r.Run(context.Background(), c)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMismatch)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 1)

	v := verr.Violations[0]
	want := strings.Index(LoremIpsum, needle)
	assert.Equal(t, "wrong", v.Case)
	assert.Equal(t, "shifted", v.Label)
	assert.Equal(t, want, v.Want)
	assert.Equal(t, want+1, v.Got)
	assert.Equal(t, len(LoremIpsum), v.HaystackLen)
	assert.Equal(t, `"dolore magna"`, v.Needle)

	require.NotNil(t, rep)
	require.Equal(t, verr.Violations, rep.Violations())
	require.Contains(t, logBuf.String(), "correctness violation")
	require.Contains(t, logBuf.String(), "strategy=shifted")
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestRunner(t)
	_, err := r.Run(ctx, textCase("a", LoremIpsum, "ipsum"), textCase("b", LoremIpsum, "amet"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunnerWorkers(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var jobs []Job
	wants := map[string]int{}
	for i := 0; i < 12; i++ {
		hay := DigitText(rng, 200, 1, 6)
		spec := NeedleSpec{Origin: Origin(1 + i%3), Length: 3 + i}
		needle := spec.Cut(hay)
		name := fmt.Sprintf("digits-%d", i)
		wants[name] = strings.Index(hay, needle)
		jobs = append(jobs, textCase(name, hay, needle))
	}

	r := newTestRunner(t, WithWorkers(4))
	rep, err := r.Run(context.Background(), jobs...)
	require.NoError(t, err)
	require.Len(t, rep.Cases, len(jobs))
	for i, c := range rep.Cases {
		require.Equal(t, fmt.Sprintf("digits-%d", i), c.Name, "report out of job order")
		for _, s := range c.Samples {
			if s.Checked {
				require.Equal(t, wants[c.Name], s.Value, "%s/%s", c.Name, s.Label)
			}
		}
	}
}

func TestRunnerErrors(t *testing.T) {
	_, err := NewRunner(WithIterations(0))
	require.Error(t, err)
	_, err = NewRunner(WithWorkers(0))
	require.Error(t, err)
	_, err = NewRunner(WithKinds())
	require.Error(t, err)
	_, err = NewRunner(WithKinds(search.Kind(42)))
	require.ErrorIs(t, err, search.ErrUnknownKind)
	_, err = NewRunner(WithMeter(nil))
	require.Error(t, err)

	r := newTestRunner(t)
	_, err = r.Run(context.Background(), textCase("empty", LoremIpsum, ""))
	require.ErrorIs(t, err, search.ErrInvalidPattern)

	_, err = r.Run(context.Background(), &Case[byte]{Name: "nohay", Needle: seq.FromString("x")})
	require.Error(t, err)
}

func TestRunnerKinds(t *testing.T) {
	r := newTestRunner(t, WithKinds(search.Horspool), WithInitRows(false), WithBaselines(false))
	rep, err := r.Run(context.Background(), textCase("one", "abcabcabd", "abd"))
	require.NoError(t, err)
	require.Equal(t, []string{"boyer_moore_horspool"}, labels(rep.Cases[0]))
	require.Equal(t, 6, rep.Cases[0].Samples[0].Value)
}

func TestRunnerInitRowsBindOnce(t *testing.T) {
	r := newTestRunner(t, WithBaselines(false))
	rep, err := r.Run(context.Background(), &Case[int]{
		Name:     "single",
		Haystack: seq.Of([]int{5, 4, 3, 2, 1}),
		Needle:   seq.Of([]int{2}),
	})
	require.NoError(t, err)
	for _, s := range rep.Cases[0].Samples {
		if strings.HasSuffix(s.Label, " init only") {
			require.Equal(t, 1, s.Value, s.Label)
		} else {
			require.Equal(t, 3, s.Value, s.Label)
		}
	}
}

func TestRunnerNoJobs(t *testing.T) {
	rep, err := newTestRunner(t).Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, rep.Cases)
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		Idle: "idle", Generating: "generating", Running: "running", Validating: "validating",
	} {
		require.Equal(t, want, s.String())
	}
	require.Equal(t, "State(9)", State(9).String())
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Violations: []Violation{{Case: "c", Label: "x", Want: 1, Got: 2, HaystackLen: 10, Needle: `"ab"`}}}
	require.True(t, errors.Is(err, ErrMismatch))
	require.Contains(t, err.Error(), "1 correctness violation(s)")
	require.Contains(t, err.Error(), `case=c strategy=x got=2 want=1 haystack_len=10 needle="ab"`)
}
