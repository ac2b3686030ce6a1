// Package bytealg holds byte-alphabet search routines used as baselines
// for the generic strategies.
package bytealg

// Horspool is a Boyer-Moore-Horspool searcher with a dense 256-entry
// shift table. Construct once with NewHorspool, then call Index on
// multiple haystacks.
type Horspool struct {
	needle string
	skip   [256]int
}

// NewHorspool builds the shift table for needle.
func NewHorspool(needle string) *Horspool {
	h := &Horspool{needle: needle}
	n := len(needle)
	for i := range h.skip {
		h.skip[i] = n
	}
	// final position excluded so every shift is at least 1
	for i := 0; i < n-1; i++ {
		h.skip[needle[i]] = n - 1 - i
	}
	return h
}

// Index finds the first occurrence of the needle in haystack at or after
// from. An empty needle matches at from.
func (h *Horspool) Index(haystack string, from int) int {
	n, m := len(haystack), len(h.needle)
	if from < 0 {
		from = 0
	}
	if m == 0 {
		if from > n {
			return -1
		}
		return from
	}
	if m > n {
		return -1
	}

	last := h.needle[m-1]
	for i := from; i <= n-m; {
		c := haystack[i+m-1]
		if c == last && haystack[i:i+m-1] == h.needle[:m-1] {
			return i
		}
		i += h.skip[c]
	}
	return -1
}

// Len returns the needle length.
func (h *Horspool) Len() int { return len(h.needle) }
