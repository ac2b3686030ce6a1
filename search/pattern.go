package search

import "github.com/mhr3/skipscan/seq"

// Pattern is a non-empty needle together with the tables its strategies
// need. It is read-only once built.
type Pattern[T comparable] struct {
	elems seq.Sequence[T]
	n     int

	last       lastOccurrence[T] // bad-character rule, all positions
	skip       lastOccurrence[T] // Horspool, final position excluded
	good       []int
	matchShift int
}

// NewPattern preprocesses s for the given strategies, or for all of them
// when none are named. It returns ErrInvalidPattern if s is empty.
func NewPattern[T comparable](s seq.Sequence[T], kinds ...Kind) (*Pattern[T], error) {
	if s == nil || s.Len() == 0 {
		return nil, ErrInvalidPattern
	}
	if len(kinds) == 0 {
		kinds = Kinds()
	}

	p := &Pattern[T]{elems: s, n: s.Len()}
	for _, k := range kinds {
		switch k {
		case Naive:
		case BoyerMoore:
			if p.good == nil {
				p.last = buildLastOccurrence(s, p.n)
				p.good, p.matchShift = buildGoodSuffix(s)
			}
		case Horspool:
			if p.skip == nil {
				p.skip = buildLastOccurrence(s, p.n-1)
			}
		default:
			return nil, ErrUnknownKind
		}
	}
	return p, nil
}

// Len returns the number of elements in the pattern.
func (p *Pattern[T]) Len() int { return p.n }

// Sequence returns the pattern elements.
func (p *Pattern[T]) Sequence() seq.Sequence[T] { return p.elems }

// supports reports whether the tables for k have been built.
func (p *Pattern[T]) supports(k Kind) bool {
	switch k {
	case Naive:
		return true
	case BoyerMoore:
		return p.good != nil
	case Horspool:
		return p.skip != nil
	}
	return false
}

func (p *Pattern[T]) at(i int) T { return p.elems.At(i) }
