package seq

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceView(t *testing.T) {
	backing := []int{10, 20, 30, 40, 50}
	s := Of(backing)

	require.Equal(t, 5, s.Len())
	require.Equal(t, 30, s.At(2))

	sub := s.Slice(1, 4)
	require.Equal(t, 3, sub.Len())
	require.Equal(t, []int{20, 30, 40}, Values(sub))

	// views share storage
	backing[2] = 99
	require.Equal(t, 99, sub.At(1))

	empty := s.Slice(5, 5)
	require.Zero(t, empty.Len())
}

func TestStringView(t *testing.T) {
	s := FromString("abracadabra")

	require.Equal(t, 11, s.Len())
	require.Equal(t, byte('c'), s.At(4))

	sub := s.Slice(4, 7)
	require.Equal(t, "cad", sub.(String).String())
	require.True(t, Equal[byte](sub, Bytes([]byte("cad"))))
	require.False(t, Equal[byte](sub, Bytes([]byte("cat"))))
	require.False(t, Equal[byte](sub, Bytes([]byte("ca"))))
}

func TestRunes(t *testing.T) {
	r := Runes("héllo, 世界")
	require.Equal(t, 9, r.Len())
	require.Equal(t, 'é', r.At(1))
	require.Equal(t, '界', r.At(8))
}

func TestOutOfRangePanics(t *testing.T) {
	cases := []struct {
		name string
		fn   func()
	}{
		{"At negative", func() { Of([]int{1}).At(-1) }},
		{"At past end", func() { FromString("ab").At(2) }},
		{"Slice inverted", func() { Of([]int{1, 2, 3}).Slice(2, 1) }},
		{"Slice past end", func() { FromString("abc").Slice(0, 4) }},
		{"Slice negative", func() { FromString("abc").Slice(-1, 0) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected panic")
				err, ok := r.(error)
				require.True(t, ok, "panic value should be an error, got %T", r)
				require.True(t, errors.Is(err, ErrIndexOutOfRange))
				var re *RangeError
				require.ErrorAs(t, err, &re)
			}()
			tc.fn()
		})
	}
}

func TestRangeErrorMessage(t *testing.T) {
	assert.Equal(t, "seq: index 7 out of range with length 3", (&RangeError{Index: 7, Len: 3}).Error())
	assert.Equal(t, "seq: slice bounds [0:0] out of range with length 3",
		(&RangeError{Index: 0, End: 0, Len: 3, slice: true}).Error())
}

func TestMap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello mapped world"), 0o644))

	m, err := Map(path)
	require.NoError(t, err)
	defer m.Close()

	require.Equal(t, 18, m.Len())
	require.Equal(t, byte('m'), m.At(6))
	require.Equal(t, []byte("mapped"), Values(m.Slice(6, 12)))

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	require.Zero(t, m.Len())
}

func TestMapEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	m, err := Map(path)
	require.NoError(t, err)
	require.Zero(t, m.Len())
	require.NoError(t, m.Close())
}

func TestMapMissing(t *testing.T) {
	_, err := Map(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, ErrSourceUnavailable)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Map(t.TempDir())
	require.ErrorIs(t, err, ErrSourceUnavailable)
}
