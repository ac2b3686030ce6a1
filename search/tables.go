package search

import "github.com/mhr3/skipscan/seq"

// lastOccurrence maps an element to the rightmost index at which it occurs
// in the pattern. Only elements present in the pattern are stored.
type lastOccurrence[T comparable] map[T]int

// buildLastOccurrence scans pattern[0:end) left to right; later positions
// overwrite earlier ones.
func buildLastOccurrence[T comparable](p seq.Sequence[T], end int) lastOccurrence[T] {
	t := make(lastOccurrence[T], end)
	for i := 0; i < end; i++ {
		t[p.At(i)] = i
	}
	return t
}

// lookup returns the last index of x, or -1 if x does not occur.
func (t lastOccurrence[T]) lookup(x T) int {
	if i, ok := t[x]; ok {
		return i
	}
	return -1
}

// buildGoodSuffix computes the strong good-suffix shifts in O(m).
//
// good[j] is the shift to apply after a mismatch at pattern position j
// (pattern[j+1:] matched). matchShift is the shift after a full match.
//
// bpos[i] is the start of the widest border of pattern[i:]. The first pass
// walks those borders like a failure function, recording for each suffix
// the nearest earlier occurrence preceded by a different element. The
// second pass fills the remaining positions from the widest border of the
// whole pattern, falling back to a full-length shift.
func buildGoodSuffix[T comparable](p seq.Sequence[T]) (good []int, matchShift int) {
	m := p.Len()
	shift := make([]int, m+1)
	bpos := make([]int, m+1)

	i, j := m, m+1
	bpos[i] = j
	for i > 0 {
		for j <= m && p.At(i-1) != p.At(j-1) {
			if shift[j] == 0 {
				shift[j] = j - i
			}
			j = bpos[j]
		}
		i--
		j--
		bpos[i] = j
	}

	j = bpos[0]
	for i := 0; i <= m; i++ {
		if shift[i] == 0 {
			shift[i] = j
		}
		if i == j {
			j = bpos[j]
		}
	}

	return shift[1:], shift[0]
}
