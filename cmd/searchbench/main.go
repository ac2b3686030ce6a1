// Command searchbench times the search strategies against each other and
// against strings.Index, and fails if any of them disagree.
//
// Usage:
//
//	searchbench [-f file|nofile] [-i iterations] [-p start|center|end] [-n len]
//	            [-s needle] [--ints] [--digits N] [-j workers] [-k kinds]
//	            [--format table|csv] [--seed N] [-v]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"

	"github.com/kivattt/getopt"
	"golang.org/x/term"

	"github.com/mhr3/skipscan/bench"
	"github.com/mhr3/skipscan/search"
	"github.com/mhr3/skipscan/seq"
)

// errUsage marks a command line error that has already been reported
// together with the usage text.
var errUsage = errors.New("usage error")

type options struct {
	file       string
	iterations int
	patternLen int
	pos        string
	needle     string
	ints       bool
	digits     int
	workers    int
	kinds      string
	format     string
	seed       int64
	verbose    bool
	help       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := getopt.NewFlagSet("searchbench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.file, "file", bench.NoFile, "haystack `path`; .zst, .lz4 and .s2 are decompressed, nofile uses Lorem ipsum")
	fs.IntVar(&o.iterations, "iterations", bench.DefaultIterations, "iterations per strategy")
	fs.IntVar(&o.patternLen, "pattern-len", 0, "needle length cut from the haystack (default a quarter of it)")
	fs.StringVar(&o.pos, "pos", "", "where the needle is cut: start (0), center (1) or end (any other number); default the last quarter")
	fs.StringVar(&o.needle, "needle", "", "literal needle, overrides --pos and --pattern-len")
	fs.BoolVar(&o.ints, "ints", false, "add a vector-of-ints case")
	fs.IntVar(&o.digits, "digits", 0, "add a case over `N` random digit strings")
	fs.IntVar(&o.workers, "workers", 1, "cases run concurrently")
	fs.StringVar(&o.kinds, "kinds", "", "comma separated strategies to time (default all)")
	fs.StringVar(&o.format, "format", "", "output format, table or csv (default table on a terminal)")
	fs.Int64Var(&o.seed, "seed", 1, "seed for generated inputs")
	fs.BoolVar(&o.verbose, "verbose", false, "log progress")
	fs.BoolVar(&o.help, "help", false, "print this help")
	fs.Aliases(
		"f", "file",
		"i", "iterations",
		"n", "pattern-len",
		"p", "pos",
		"s", "needle",
		"j", "workers",
		"k", "kinds",
		"v", "verbose",
		"h", "help",
	)
	if err := fs.Parse(args); err != nil {
		return o, errUsage
	}
	if o.help {
		fmt.Fprintln(stderr, "Usage of searchbench:")
		fs.PrintDefaults()
		return o, flag.ErrHelp
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "searchbench: ", 0)

	o, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if errors.Is(err, errUsage) {
		return 2
	}
	if err != nil {
		logger.Print(err)
		return 2
	}

	format, err := outputFormat(o.format, stdout)
	if err != nil {
		logger.Print(err)
		return 2
	}

	jobs, release, err := buildJobs(o)
	if err != nil {
		logger.Print(err)
		return 1
	}
	defer func() {
		if err := release(); err != nil {
			logger.Print(err)
		}
	}()

	opts := []bench.Option{
		bench.WithIterations(o.iterations),
		bench.WithWorkers(o.workers),
		bench.WithLogger(logger),
		bench.WithVerbose(o.verbose),
	}
	if o.kinds != "" {
		kinds, err := parseKinds(o.kinds)
		if err != nil {
			logger.Print(err)
			return 2
		}
		opts = append(opts, bench.WithKinds(kinds...))
	}
	r, err := bench.NewRunner(opts...)
	if err != nil {
		logger.Print(err)
		return 2
	}

	rep, runErr := r.Run(ctx, jobs...)
	if rep != nil {
		write := rep.WriteTable
		if format == "csv" {
			write = rep.WriteCSV
		}
		if err := write(stdout); err != nil {
			logger.Print(err)
			return 1
		}
	}
	if runErr != nil {
		var verr *bench.ValidationError
		if errors.As(runErr, &verr) {
			logger.Printf("%d correctness violation(s)", len(verr.Violations))
		} else {
			logger.Print(runErr)
		}
		return 1
	}
	return 0
}

func parseKinds(list string) ([]search.Kind, error) {
	var kinds []search.Kind
	for _, name := range strings.Split(list, ",") {
		k, err := search.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func outputFormat(name string, stdout io.Writer) (string, error) {
	switch name {
	case "table", "csv":
		return name, nil
	case "":
		if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return "table", nil
		}
		return "csv", nil
	}
	return "", fmt.Errorf("unknown format %q", name)
}

func buildJobs(o options) ([]bench.Job, func() error, error) {
	spec := bench.NeedleSpec{Length: o.patternLen}
	if o.needle != "" {
		spec.Origin = bench.OriginLiteral
	} else {
		origin, err := bench.ParseOrigin(o.pos)
		if err != nil {
			return nil, nil, err
		}
		if origin == bench.OriginLiteral {
			return nil, nil, errors.New("--pos literal requires --needle")
		}
		spec.Origin = origin
	}

	hay, release, err := bench.OpenFile(o.file)
	if err != nil {
		return nil, nil, err
	}
	if hay.Len() == 0 && spec.Origin != bench.OriginLiteral {
		_ = release()
		return nil, nil, fmt.Errorf("%s: empty haystack", o.file)
	}

	text := &bench.Case[byte]{Name: "text", Haystack: hay, Needle: cut(hay, spec, o.needle)}
	jobs := []bench.Job{text}

	rng := rand.New(rand.NewSource(o.seed))
	if o.digits > 0 {
		digits := seq.FromString(bench.DigitText(rng, o.digits, 1, 10))
		jobs = append(jobs, &bench.Case[byte]{
			Name:     "digits",
			Haystack: digits,
			Needle:   cut(digits, spec, o.needle),
		})
	}
	if o.ints {
		ints := bench.Iota(1_000_000)
		jobs = append(jobs, &bench.Case[int]{
			Name:     "ints",
			Haystack: seq.Of(ints),
			Needle:   seq.Of(ints[len(ints)-1000:]),
		})
	}
	return jobs, release, nil
}

func cut(hay seq.Sequence[byte], spec bench.NeedleSpec, literal string) seq.Sequence[byte] {
	if spec.Origin == bench.OriginLiteral {
		return seq.FromString(literal)
	}
	if spec.Origin != bench.OriginDefault && spec.Length <= 0 {
		spec.Length = hay.Len() / 4
	}
	return hay.Slice(spec.Bounds(hay.Len()))
}
