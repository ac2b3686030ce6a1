// Package seq provides read-only, random-access views over ordered elements.
//
// A Sequence never owns the storage it reads from. Slicing a Sequence yields
// another view of the same storage; nothing is copied.
package seq

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrIndexOutOfRange is wrapped by the RangeError raised when a Sequence
	// is read past its bounds.
	ErrIndexOutOfRange = errors.New("seq: index out of range")

	// ErrSourceUnavailable is returned when a backing source cannot be opened.
	ErrSourceUnavailable = errors.New("seq: source unavailable")
)

// Sequence is an indexable, sliceable view over elements of type T.
type Sequence[T comparable] interface {
	// Len returns the number of elements.
	Len() int
	// At returns the element at index i. It panics with a *RangeError
	// if i is outside [0, Len()).
	At(i int) T
	// Slice returns the view [start, end). It panics with a *RangeError
	// unless 0 <= start <= end <= Len().
	Slice(start, end int) Sequence[T]
}

// RangeError describes an out-of-bounds access. It is a programming error
// and is raised with panic, never returned.
type RangeError struct {
	Index int
	End   int
	Len   int
	slice bool
}

func (e *RangeError) Error() string {
	if e.slice {
		return fmt.Sprintf("seq: slice bounds [%d:%d] out of range with length %d", e.Index, e.End, e.Len)
	}
	return fmt.Sprintf("seq: index %d out of range with length %d", e.Index, e.Len)
}

func (e *RangeError) Unwrap() error { return ErrIndexOutOfRange }

func checkIndex(i, n int) {
	if uint(i) >= uint(n) {
		panic(&RangeError{Index: i, Len: n})
	}
}

func checkSlice(start, end, n int) {
	if start < 0 || end < start || end > n {
		panic(&RangeError{Index: start, End: end, Len: n, slice: true})
	}
}

// Slice is a Sequence over a contiguous Go slice.
type Slice[T comparable] struct {
	elems []T
}

// Of wraps elems without copying. The caller must not mutate elems while a
// search over the returned view is in flight.
func Of[T comparable](elems []T) Slice[T] {
	return Slice[T]{elems: elems}
}

// Bytes wraps b as a byte Sequence.
func Bytes(b []byte) Slice[byte] {
	return Slice[byte]{elems: b}
}

// Runes decodes s into a rune Sequence. Invalid UTF-8 decodes to
// utf8.RuneError, one per bad byte, as a range loop does.
func Runes(s string) Slice[rune] {
	out := make([]rune, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, r)
	}
	return Slice[rune]{elems: out}
}

func (s Slice[T]) Len() int { return len(s.elems) }

func (s Slice[T]) At(i int) T {
	checkIndex(i, len(s.elems))
	return s.elems[i]
}

func (s Slice[T]) Slice(start, end int) Sequence[T] {
	checkSlice(start, end, len(s.elems))
	return Slice[T]{elems: s.elems[start:end:end]}
}

// Elems returns the backing slice.
func (s Slice[T]) Elems() []T { return s.elems }

// String is a byte Sequence backed by an immutable Go string.
type String struct {
	s string
}

// FromString returns a byte view of s.
func FromString(s string) String {
	return String{s: s}
}

func (s String) Len() int { return len(s.s) }

func (s String) At(i int) byte {
	checkIndex(i, len(s.s))
	return s.s[i]
}

func (s String) Slice(start, end int) Sequence[byte] {
	checkSlice(start, end, len(s.s))
	return String{s: s.s[start:end]}
}

func (s String) String() string { return s.s }

// Values copies the elements of s into a new slice.
func Values[T comparable](s Sequence[T]) []T {
	if c, ok := s.(Slice[T]); ok {
		return append([]T(nil), c.elems...)
	}
	n := s.Len()
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = s.At(i)
	}
	return out
}

// Equal reports whether a and b hold the same elements in the same order.
func Equal[T comparable](a, b Sequence[T]) bool {
	n := a.Len()
	if n != b.Len() {
		return false
	}
	for i := 0; i < n; i++ {
		if a.At(i) != b.At(i) {
			return false
		}
	}
	return true
}
