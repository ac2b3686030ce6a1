package bench

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/mhr3/skipscan/seq"
)

// NoFile selects the built-in LoremIpsum haystack.
const NoFile = "nofile"

var zstdDecoder = sync.OnceValues(func() (*zstd.Decoder, error) {
	return zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
})

// LoadFile reads path into memory in one shot. Files ending in .zst, .lz4,
// .s2 or .sz are decompressed transparently. Errors wrap
// ErrSourceUnavailable; nothing is retried.
func LoadFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	data, err := decompress(strings.ToLower(filepath.Ext(path)), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress %s: %w", ErrSourceUnavailable, path, err)
	}
	return data, nil
}

// LoadText returns the contents of path, or LoremIpsum for "" and NoFile.
func LoadText(path string) (string, error) {
	if path == "" || path == NoFile {
		return LoremIpsum, nil
	}
	data, err := LoadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// OpenFile returns a byte view of path and a function releasing it.
// Uncompressed files are memory mapped; compressed ones are decoded into
// memory as LoadFile does. NoFile and "" yield LoremIpsum.
func OpenFile(path string) (seq.Sequence[byte], func() error, error) {
	nop := func() error { return nil }
	if path == "" || path == NoFile {
		return seq.FromString(LoremIpsum), nop, nil
	}
	if isCompressed(path) {
		data, err := LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		return seq.Bytes(data), nop, nil
	}
	m, err := seq.Map(path)
	if err != nil {
		return nil, nil, err
	}
	return m, m.Close, nil
}

func isCompressed(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd", ".lz4", ".s2", ".sz":
		return true
	}
	return false
}

func decompress(ext string, raw []byte) ([]byte, error) {
	switch ext {
	case ".zst", ".zstd":
		dec, err := zstdDecoder()
		if err != nil {
			return nil, err
		}
		return dec.DecodeAll(raw, nil)
	case ".lz4":
		return io.ReadAll(lz4.NewReader(bytes.NewReader(raw)))
	case ".s2", ".sz":
		return io.ReadAll(s2.NewReader(bytes.NewReader(raw)))
	}
	return raw, nil
}
