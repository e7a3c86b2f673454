// Package input reads a whole DSV document into memory ahead of parsing.
//
// Input is decoded on the way in:
//
//   - a UTF-8 or UTF-16 byte order mark selects that encoding and is dropped
//   - anything else is read as UTF-8, with invalid bytes replaced by U+FFFD
//
// so the parser always sees valid UTF-8 text.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Stdin is the path that names standard input.
const Stdin = "-"

// ErrTooLarge is returned when input exceeds the configured maximum size.
var ErrTooLarge = errors.New("input too large")

// Stats describes one read.
type Stats struct {
	// Bytes is the number of raw bytes consumed from the source.
	Bytes int64
	// Decoded is the length of the text handed back, in bytes.
	Decoded int
}

// ReadAll reads r to the end, decodes it and returns the text. Reading
// stops with ErrTooLarge once more than maxSize raw bytes have been seen.
func ReadAll(r io.Reader, maxSize int64) (string, Stats, error) {
	counter := &countingReader{reader: io.LimitReader(r, maxSize+1)}
	decoder := transform.NewReader(counter, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	var b strings.Builder
	if _, err := io.Copy(&b, decoder); err != nil {
		return "", Stats{Bytes: counter.n}, fmt.Errorf("read input: %w", err)
	}

	stats := Stats{Bytes: counter.n, Decoded: b.Len()}
	if counter.n > maxSize {
		return "", stats, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxSize)
	}
	return b.String(), stats, nil
}

// ReadPath reads the file at path, or standard input when path is Stdin or
// empty.
func ReadPath(path string, maxSize int64) (string, Stats, error) {
	if path == "" || path == Stdin {
		return ReadAll(os.Stdin, maxSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", Stats{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() && info.Size() > maxSize {
		return "", Stats{}, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, path, info.Size(), maxSize)
	}
	return ReadAll(f, maxSize)
}

// countingReader tracks the bytes read through it.
type countingReader struct {
	reader io.Reader
	n      int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.n += int64(n)
	return n, err
}
