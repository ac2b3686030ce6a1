package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/segmentio/asm/ascii"
	"golang.org/x/sys/cpu"

	"github.com/mhr3/skipscan/seq"
)

// Report is the outcome of one Runner.Run.
type Report struct {
	Env   Environment
	Cases []CaseReport
}

// CaseReport holds the rows measured for one case.
type CaseReport struct {
	Name       string
	Input      Input
	Samples    []Sample
	Violations []Violation
}

// Input describes the data a case ran over.
type Input struct {
	HaystackLen int
	NeedleLen   int
	// Fingerprint is the xxhash64 of the haystack, so runs over the same
	// corpus can be matched up.
	Fingerprint uint64
	Text        bool
	ASCII       bool
}

func describe[T comparable](haystack, needle seq.Sequence[T]) Input {
	in := Input{HaystackLen: haystack.Len(), NeedleLen: needle.Len()}
	if s, ok := textOf(haystack); ok {
		in.Text = true
		in.ASCII = ascii.ValidString(s)
		in.Fingerprint = xxhash.Sum64String(s)
		return in
	}

	d := xxhash.New()
	var buf []byte
	for i := 0; i < haystack.Len(); i++ {
		buf = fmt.Appendf(buf[:0], "%v,", haystack.At(i))
		_, _ = d.Write(buf)
	}
	in.Fingerprint = d.Sum64()
	return in
}

// Environment identifies the machine a report was produced on.
type Environment struct {
	GOOS      string
	GOARCH    string
	NumCPU    int
	GoVersion string
	Features  []string
}

// CurrentEnvironment describes the running process.
func CurrentEnvironment() Environment {
	return Environment{
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
		GoVersion: runtime.Version(),
		Features:  cpuFeatures(),
	}
}

func cpuFeatures() []string {
	var fs []string
	add := func(ok bool, name string) {
		if ok {
			fs = append(fs, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE42, "sse4.2")
		add(cpu.X86.HasPOPCNT, "popcnt")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasBMI2, "bmi2")
		add(cpu.X86.HasAVX512BW, "avx512bw")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasCRC32, "crc32")
		add(cpu.ARM64.HasSVE, "sve")
	}
	return fs
}

// Violations returns every violation across all cases.
func (r *Report) Violations() []Violation {
	var out []Violation
	for _, c := range r.Cases {
		out = append(out, c.Violations...)
	}
	return out
}

// WriteTable writes a fixed-width, human readable rendering of r.
func (r *Report) WriteTable(w io.Writer) error {
	ew := &errWriter{w: w}
	features := "none"
	if len(r.Env.Features) > 0 {
		features = strings.Join(r.Env.Features, ",")
	}
	ew.printf("%s/%s, %d CPUs, %s, features: %s\n\n",
		r.Env.GOOS, r.Env.GOARCH, r.Env.NumCPU, r.Env.GoVersion, features)

	for _, c := range r.Cases {
		ew.printf("=== %s ===\n", c.Name)
		ew.printf("  Haystack:     %d elements (xxhash %016x", c.Input.HaystackLen, c.Input.Fingerprint)
		if c.Input.Text {
			ew.printf(", ascii=%t", c.Input.ASCII)
		}
		ew.printf(")\n")
		ew.printf("  Needle:       %d elements\n\n", c.Input.NeedleLen)

		ew.printf("%-28s | %-10s | %-14s | %-12s | %-10s | %-12s | %-8s\n",
			"Strategy", "Iterations", "Elapsed", "ns/op", "Allocs", "Bytes", "Value")
		ew.printf("%s\n", strings.Repeat("-", 112))
		for _, s := range c.Samples {
			ew.printf("%-28s | %-10d | %-14s | %-12d | %-10d | %-12d | %-8d\n",
				s.Label, s.Iterations, s.Elapsed, s.PerOp().Nanoseconds(), s.Allocs, s.Bytes, s.Value)
		}
		for _, v := range c.Violations {
			ew.printf("  VIOLATION: %s\n", v)
		}
		ew.printf("\n")
	}
	return ew.err
}

// WriteCSV writes one record per sample, preceded by a header.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{
		"case", "strategy", "iterations", "elapsed_ns", "ns_per_op", "allocs", "bytes", "value",
		"haystack_len", "needle_len", "fingerprint", "ascii",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, c := range r.Cases {
		for _, s := range c.Samples {
			rec := []string{
				c.Name,
				s.Label,
				strconv.Itoa(s.Iterations),
				strconv.FormatInt(s.Elapsed.Nanoseconds(), 10),
				strconv.FormatInt(s.PerOp().Nanoseconds(), 10),
				strconv.FormatUint(s.Allocs, 10),
				strconv.FormatUint(s.Bytes, 10),
				strconv.Itoa(s.Value),
				strconv.Itoa(c.Input.HaystackLen),
				strconv.Itoa(c.Input.NeedleLen),
				strconv.FormatUint(c.Input.Fingerprint, 16),
				strconv.FormatBool(c.Input.ASCII),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
