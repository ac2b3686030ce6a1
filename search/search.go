// Package search finds the first exact occurrence of a pattern in a sequence.
//
// Three strategies share one contract: Naive, BoyerMoore and Horspool. A
// pattern is preprocessed once by Bind and the resulting Engine is reused
// for any number of haystacks. Engines are immutable and safe for
// concurrent use.
package search

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPattern is returned when a pattern has no elements.
	ErrInvalidPattern = errors.New("search: invalid pattern: empty")

	// ErrUnknownKind is returned for a Kind outside the known strategies.
	ErrUnknownKind = errors.New("search: unknown strategy kind")
)

// Result is the outcome of a search: the start offset of the leftmost
// match, or NotFound.
type Result int

// NotFound reports that no match exists at or after the requested offset.
const NotFound Result = -1

// Found reports whether r holds a match position.
func (r Result) Found() bool { return r >= 0 }

// Index returns the match offset, or -1.
func (r Result) Index() int { return int(r) }

func (r Result) String() string {
	if r < 0 {
		return "NotFound"
	}
	return fmt.Sprintf("Found(%d)", int(r))
}

// Kind selects a search strategy.
type Kind uint8

const (
	// Naive compares every alignment left to right. Used as the reference.
	Naive Kind = iota
	// BoyerMoore uses the bad-character and good-suffix rules.
	BoyerMoore
	// Horspool shifts on the last-occurrence table alone.
	Horspool

	numKinds
)

var kindNames = [numKinds]string{
	Naive:      "naive",
	BoyerMoore: "boyer_moore",
	Horspool:   "boyer_moore_horspool",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k names a known strategy.
func (k Kind) Valid() bool { return k < numKinds }

// Kinds returns every strategy, reference first.
func Kinds() []Kind {
	return []Kind{Naive, BoyerMoore, Horspool}
}

// ParseKind maps a strategy name to its Kind. Dashes are accepted in place
// of underscores, and "bm"/"bmh"/"horspool" as short names.
func ParseKind(name string) (Kind, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_") {
	case "naive", "default":
		return Naive, nil
	case "boyer_moore", "bm":
		return BoyerMoore, nil
	case "boyer_moore_horspool", "horspool", "bmh":
		return Horspool, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
