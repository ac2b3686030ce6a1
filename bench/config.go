package bench

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mhr3/skipscan/internal/options"
	"github.com/mhr3/skipscan/search"
)

// DefaultIterations is used by cases that do not set their own count.
const DefaultIterations = 1000

// Config controls a Runner.
type Config struct {
	iterations int
	workers    int
	kinds      []search.Kind
	baselines  bool
	initRows   bool
	verbose    bool
	newMeter   func() Meter
	logger     *log.Logger
	onState    func(caseName string, s State)
}

// Option configures a Runner.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{
		iterations: DefaultIterations,
		workers:    1,
		kinds:      search.Kinds(),
		baselines:  true,
		initRows:   true,
		newMeter:   NewRuntimeMeter,
		logger:     log.New(os.Stderr, "searchbench: ", 0),
	}
}

// WithIterations sets the iteration count for cases without their own.
func WithIterations(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("bench: iterations must be positive, got %d", n)
		}
		c.iterations = n
		return nil
	})
}

// WithWorkers sets how many cases may run at once. Rows within a case
// always run sequentially. With more than one worker, RuntimeMeter
// figures include the other workers' allocations.
func WithWorkers(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("bench: workers must be positive, got %d", n)
		}
		c.workers = n
		return nil
	})
}

// WithKinds restricts the strategies that are timed. The naive scan still
// provides the reference result.
func WithKinds(kinds ...search.Kind) Option {
	return options.New(func(c *Config) error {
		if len(kinds) == 0 {
			return errors.New("bench: at least one strategy kind is required")
		}
		for _, k := range kinds {
			if !k.Valid() {
				return fmt.Errorf("%w: %v", search.ErrUnknownKind, k)
			}
		}
		c.kinds = append([]search.Kind(nil), kinds...)
		return nil
	})
}

// WithBaselines toggles the stdlib and dense_horspool rows for byte cases.
func WithBaselines(on bool) Option {
	return options.NoError(func(c *Config) { c.baselines = on })
}

// WithInitRows toggles the "init only" preprocessing rows.
func WithInitRows(on bool) Option {
	return options.NoError(func(c *Config) { c.initRows = on })
}

// WithMeter sets the factory that yields one Meter per measurement.
func WithMeter(factory func() Meter) Option {
	return options.New(func(c *Config) error {
		if factory == nil {
			return errors.New("bench: nil meter factory")
		}
		c.newMeter = factory
		return nil
	})
}

// WithLogger sets where violations and progress are logged. A nil logger
// discards output.
func WithLogger(l *log.Logger) Option {
	return options.NoError(func(c *Config) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		c.logger = l
	})
}

// WithVerbose logs progress for every case and row.
func WithVerbose(on bool) Option {
	return options.NoError(func(c *Config) { c.verbose = on })
}

// WithStateHook is called on every state transition of every case.
func WithStateHook(fn func(caseName string, s State)) Option {
	return options.NoError(func(c *Config) { c.onState = fn })
}
