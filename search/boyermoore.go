package search

import "github.com/mhr3/skipscan/seq"

// boyerMooreFind compares each alignment right to left. On a mismatch at
// pattern position j it advances by the larger of the good-suffix shift
// and the bad-character shift, never less than one.
func boyerMooreFind[T comparable](haystack seq.Sequence[T], p *Pattern[T], from int) Result {
	n, m := haystack.Len(), p.n
	if m > n {
		return NotFound
	}
	if from < 0 {
		from = 0
	}

	for i := from; i <= n-m; {
		j := m - 1
		var c T
		for ; j >= 0; j-- {
			c = haystack.At(i + j)
			if c != p.at(j) {
				break
			}
		}
		if j < 0 {
			return Result(i)
		}

		shift := p.good[j]
		if bc := j - p.last.lookup(c); bc > shift {
			shift = bc
		}
		i += max(shift, 1)
	}
	return NotFound
}
