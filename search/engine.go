package search

import (
	"iter"

	"github.com/mhr3/skipscan/seq"
)

// Strategy is the common contract of every search strategy.
type Strategy[T comparable] interface {
	// Kind reports which algorithm is used.
	Kind() Kind
	// Find returns the leftmost match at or after from, or NotFound.
	Find(haystack seq.Sequence[T], from int) Result
}

type finder[T comparable] func(haystack seq.Sequence[T], p *Pattern[T], from int) Result

func finderFor[T comparable](k Kind) finder[T] {
	switch k {
	case Naive:
		return naiveFind[T]
	case BoyerMoore:
		return boyerMooreFind[T]
	case Horspool:
		return horspoolFind[T]
	}
	return nil
}

// Engine binds a preprocessed pattern to one strategy. Construct once with
// Bind, then call Find on multiple haystacks.
type Engine[T comparable] struct {
	pattern *Pattern[T]
	kind    Kind
	find    finder[T]
}

var _ Strategy[byte] = (*Engine[byte])(nil)

// Bind preprocesses pattern for kind. It fails with ErrInvalidPattern if
// pattern is empty and ErrUnknownKind if kind is not a known strategy.
func Bind[T comparable](pattern seq.Sequence[T], kind Kind) (*Engine[T], error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	p, err := NewPattern(pattern, kind)
	if err != nil {
		return nil, err
	}
	return &Engine[T]{pattern: p, kind: kind, find: finderFor[T](kind)}, nil
}

// BindPattern reuses an already preprocessed pattern. The pattern must have
// been built with tables for kind.
func BindPattern[T comparable](p *Pattern[T], kind Kind) (*Engine[T], error) {
	if p == nil {
		return nil, ErrInvalidPattern
	}
	if !kind.Valid() || !p.supports(kind) {
		return nil, ErrUnknownKind
	}
	return &Engine[T]{pattern: p, kind: kind, find: finderFor[T](kind)}, nil
}

// Kind reports the strategy the engine runs.
func (e *Engine[T]) Kind() Kind { return e.kind }

// Pattern returns the bound pattern.
func (e *Engine[T]) Pattern() *Pattern[T] { return e.pattern }

// Find returns the offset of the leftmost match at or after from, or
// NotFound. A negative from is treated as zero.
func (e *Engine[T]) Find(haystack seq.Sequence[T], from int) Result {
	return e.find(haystack, e.pattern, from)
}

// FindAll yields the start of every match in haystack in increasing order,
// overlapping matches included.
func (e *Engine[T]) FindAll(haystack seq.Sequence[T]) iter.Seq[int] {
	// After a full match Boyer-Moore may skip by matchShift without
	// stepping over an overlapping match.
	step := 1
	if e.kind == BoyerMoore {
		step = e.pattern.matchShift
	}
	return func(yield func(int) bool) {
		from := 0
		for {
			r := e.find(haystack, e.pattern, from)
			if r < 0 || !yield(int(r)) {
				return
			}
			from = int(r) + step
		}
	}
}

// Count returns the number of possibly overlapping matches in haystack.
func (e *Engine[T]) Count(haystack seq.Sequence[T]) int {
	n := 0
	for range e.FindAll(haystack) {
		n++
	}
	return n
}

// Index is a one-shot search of needle in haystack.
func Index[T comparable](haystack, needle []T, kind Kind) (Result, error) {
	e, err := Bind[T](seq.Of(needle), kind)
	if err != nil {
		return NotFound, err
	}
	return e.Find(seq.Of(haystack), 0), nil
}

// IndexString is a one-shot byte search of needle in haystack.
func IndexString(haystack, needle string, kind Kind) (Result, error) {
	e, err := Bind[byte](seq.FromString(needle), kind)
	if err != nil {
		return NotFound, err
	}
	return e.Find(seq.FromString(haystack), 0), nil
}
