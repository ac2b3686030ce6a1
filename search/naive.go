package search

import "github.com/mhr3/skipscan/seq"

// naiveFind tries every alignment from left to right, comparing left to
// right and stopping at the first mismatch. O(n*m) worst case.
func naiveFind[T comparable](haystack seq.Sequence[T], p *Pattern[T], from int) Result {
	n, m := haystack.Len(), p.n
	if m > n {
		return NotFound
	}
	if from < 0 {
		from = 0
	}

	for i := from; i <= n-m; i++ {
		j := 0
		for j < m && haystack.At(i+j) == p.at(j) {
			j++
		}
		if j == m {
			return Result(i)
		}
	}
	return NotFound
}
