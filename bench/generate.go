package bench

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// LoremIpsum is the default haystack when no file is given.
const LoremIpsum = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, " +
	"sed do eiusmod tempor incididuntsuperlongwordsuper ut labore et dolore magna aliqua. Ut enim ad minim veniam, " +
	"quis nostrud exercitation ullamco laboris nisi ut aliquipsuperlongword ex ea commodo consequat. Duis aute " +
	"irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. " +
	"Excepteur sint occaecat cupidatatsuperlongword non proident, sunt in culpa qui officia deserunt mollit anim id est laborum."

// RandomDigits returns count decimal numbers of minLen to maxLen digits.
// The first digit is never zero. It returns nil if minLen > maxLen or
// minLen < 1.
func RandomDigits(rng *rand.Rand, count, minLen, maxLen int) []string {
	if minLen > maxLen || minLen < 1 {
		return nil
	}
	out := make([]string, 0, count)
	buf := make([]byte, maxLen)
	for i := 0; i < count; i++ {
		n := minLen + rng.Intn(maxLen-minLen+1)
		buf[0] = byte('1' + rng.Intn(9))
		for j := 1; j < n; j++ {
			buf[j] = byte('0' + rng.Intn(10))
		}
		out = append(out, string(buf[:n]))
	}
	return out
}

// DigitText joins count random numbers with single spaces.
func DigitText(rng *rand.Rand, count, minLen, maxLen int) string {
	return strings.Join(RandomDigits(rng, count, minLen, maxLen), " ")
}

// RandomInts returns count values drawn uniformly from the int32 range.
func RandomInts(rng *rand.Rand, count int) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = int(rng.Int63n(math.MaxUint32+1) + math.MinInt32)
	}
	return out
}

// Iota returns 0, 1, ..., n-1.
func Iota(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Origin says where in the haystack a generated needle is taken from.
type Origin uint8

const (
	// OriginDefault takes the last quarter of the haystack.
	OriginDefault Origin = iota
	OriginStart
	OriginCenter
	OriginEnd
	// OriginLiteral means the needle is given verbatim, not cut from the
	// haystack.
	OriginLiteral
)

var originNames = [...]string{
	OriginDefault: "default",
	OriginStart:   "start",
	OriginCenter:  "center",
	OriginEnd:     "end",
	OriginLiteral: "literal",
}

func (o Origin) String() string {
	if int(o) < len(originNames) {
		return originNames[o]
	}
	return fmt.Sprintf("Origin(%d)", uint8(o))
}

// ParseOrigin accepts an origin name or its numeric position code:
// 0 start, 1 center, any other integer end.
func ParseOrigin(s string) (Origin, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return OriginDefault, nil
	case "start", "0":
		return OriginStart, nil
	case "center", "centre", "1":
		return OriginCenter, nil
	case "end", "2":
		return OriginEnd, nil
	case "literal":
		return OriginLiteral, nil
	}
	// any other position code selects the end
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return OriginEnd, nil
	}
	return 0, fmt.Errorf("bench: unknown needle origin %q", s)
}

// NeedleSpec selects a needle out of a haystack.
type NeedleSpec struct {
	Origin Origin
	Length int
}

// Bounds returns the [start, end) range of the needle in a haystack of n
// elements. Length is clamped to n; a non-empty haystack always yields a
// non-empty needle.
func (s NeedleSpec) Bounds(n int) (start, end int) {
	if n <= 0 {
		return 0, 0
	}

	l := min(s.Length, n)
	switch s.Origin {
	case OriginStart:
		start = 0
	case OriginCenter:
		start = n/2 - l/2 - 1
	case OriginEnd:
		// stops one short of the final element
		start = n - l - 1
	default:
		l = n / 4
		start = n - l - 1
	}

	if l <= 0 {
		l = 1
	}
	start = max(start, 0)
	if start+l > n {
		start = n - l
	}
	return start, start + l
}

// Cut returns the needle selected by s from haystack.
func (s NeedleSpec) Cut(haystack string) string {
	start, end := s.Bounds(len(haystack))
	return haystack[start:end]
}
