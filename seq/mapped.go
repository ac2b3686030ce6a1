package seq

import (
	"fmt"
	"os"
)

// Mapped is a byte Sequence backed by a read-only file mapping. Views
// obtained from it are valid until Close.
type Mapped struct {
	data   []byte
	mapped bool
}

// Map opens path and maps its contents for reading. Errors wrap
// ErrSourceUnavailable.
func Map(path string) (*Mapped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrSourceUnavailable, path)
	}
	if fi.Size() == 0 {
		return &Mapped{}, nil
	}

	data, mapped, err := mapFile(f, fi.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: map %s: %w", ErrSourceUnavailable, path, err)
	}
	return &Mapped{data: data, mapped: mapped}, nil
}

func (m *Mapped) Len() int { return len(m.data) }

func (m *Mapped) At(i int) byte {
	checkIndex(i, len(m.data))
	return m.data[i]
}

func (m *Mapped) Slice(start, end int) Sequence[byte] {
	checkSlice(start, end, len(m.data))
	return Slice[byte]{elems: m.data[start:end:end]}
}

// Bytes exposes the mapped region. It must not be written to.
func (m *Mapped) Bytes() []byte { return m.data }

// Close releases the mapping. It is safe to call more than once.
func (m *Mapped) Close() error {
	data := m.data
	m.data = nil
	if !m.mapped || data == nil {
		return nil
	}
	m.mapped = false
	return unmapFile(data)
}
