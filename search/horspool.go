package search

import "github.com/mhr3/skipscan/seq"

// horspoolFind compares each alignment right to left and, on any mismatch,
// shifts by the distance from the element under the pattern's final
// position to its last occurrence in pattern[:m-1].
func horspoolFind[T comparable](haystack seq.Sequence[T], p *Pattern[T], from int) Result {
	n, m := haystack.Len(), p.n
	if m > n {
		return NotFound
	}
	if from < 0 {
		from = 0
	}

	for i := from; i <= n-m; {
		tail := haystack.At(i + m - 1)
		if tail == p.at(m-1) {
			j := m - 2
			for j >= 0 && haystack.At(i+j) == p.at(j) {
				j--
			}
			if j < 0 {
				return Result(i)
			}
		}
		// skip excludes position m-1, so the shift is at least 1
		i += m - 1 - p.skip.lookup(tail)
	}
	return NotFound
}
