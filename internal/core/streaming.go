package core

// streaming.go provides readers that clean catalog input before CSV parsing:
//
//   - BOMSkippingReader: Removes the UTF-8 BOM (0xEF 0xBB 0xBF) that
//     spreadsheet programs add on Windows
//   - UTF8Sanitizer: Replaces invalid UTF-8 sequences with '?'
//
// Use WrapForStreaming to apply both in the correct order.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOMSkippingReader wraps an io.Reader and skips the UTF-8 BOM if present.
type BOMSkippingReader struct {
	r       *bufio.Reader
	checked bool
}

// NewBOMSkippingReader creates a new BOM-skipping reader.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{r: bufio.NewReader(r)}
}

// Read implements io.Reader. On the first read, it checks for and skips the BOM.
func (b *BOMSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		if head, err := b.r.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			if _, err := b.r.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
		}
	}
	return b.r.Read(p)
}

// UTF8Sanitizer wraps an io.Reader and replaces invalid UTF-8 bytes with '?'.
// Multi-byte sequences split across reads are carried to the next read.
type UTF8Sanitizer struct {
	r       io.Reader
	pending []byte
	out     []byte
	err     error
}

// NewUTF8Sanitizer creates a new UTF-8 sanitizer.
func NewUTF8Sanitizer(r io.Reader) *UTF8Sanitizer {
	return &UTF8Sanitizer{r: r}
}

// Read implements io.Reader.
func (s *UTF8Sanitizer) Read(p []byte) (int, error) {
	for len(s.out) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		s.fill(len(p))
	}
	n := copy(p, s.out)
	s.out = s.out[n:]
	return n, nil
}

func (s *UTF8Sanitizer) fill(size int) {
	if size < utf8.UTFMax {
		size = utf8.UTFMax
	}
	buf := make([]byte, len(s.pending)+size)
	copy(buf, s.pending)
	n, err := s.r.Read(buf[len(s.pending):])
	data := buf[:len(s.pending)+n]
	s.pending = s.pending[:0]
	s.err = err
	atEOF := err != nil

	clean := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			if !atEOF && !utf8.FullRune(data[i:]) {
				s.pending = append(s.pending, data[i:]...)
				break
			}
			clean = append(clean, '?')
			i++
			continue
		}
		clean = append(clean, data[i:i+size]...)
		i += size
	}
	s.out = clean
}

// WrapForStreaming applies BOM skipping and UTF-8 sanitization to r.
func WrapForStreaming(r io.Reader) io.Reader {
	return NewUTF8Sanitizer(NewBOMSkippingReader(r))
}
