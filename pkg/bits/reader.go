package bits

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Reader unpacks unsigned integers from a byte slice, LSB first.
//
// Reading past the end of the data yields zero bits rather than an error, so
// a caller that skips validation can still walk a truncated stream.
type Reader struct {
	buf []byte
	pos int
}

// NewReader returns a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{buf: data}
}

// NewTextReader decodes base64 text and returns a Reader over the result.
// ASCII whitespace is ignored. Padding is optional, but when present the text
// must be a whole number of quanta ending in at most two '='.
func NewTextReader(text string) (*Reader, error) {
	text = strings.Map(dropASCIISpace, text)
	if len(text)%4 == 0 {
		text = strings.TrimSuffix(text, "=")
		text = strings.TrimSuffix(text, "=")
	}
	data, err := base64.RawStdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedText, err)
	}
	return NewReader(data), nil
}

func dropASCIISpace(r rune) rune {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return -1
	}
	return r
}

// ReadNumber reads the next numBits bits and advances the cursor.
func (r *Reader) ReadNumber(numBits int) uint16 {
	if numBits < 0 || numBits > MaxFieldBits {
		panic(fmt.Sprintf("bits: invalid field width %d", numBits))
	}

	var v uint16
	for i := 0; i < numBits; i++ {
		if r.bit(r.pos) {
			v |= 1 << i
		}
		r.pos++
	}
	return v
}

// ReadBool reads a single bit.
func (r *Reader) ReadBool() bool {
	return r.ReadNumber(1) == 1
}

// Pos returns the cursor position in bits.
func (r *Reader) Pos() int {
	return r.pos
}

// Seek moves the cursor to bit position pos.
func (r *Reader) Seek(pos int) {
	if pos < 0 {
		panic(fmt.Sprintf("bits: negative seek position %d", pos))
	}
	r.pos = pos
}

// Len returns the length of the underlying data in bytes.
func (r *Reader) Len() int {
	return len(r.buf)
}

// Exhausted reports whether the cursor has moved past the last bit of data.
func (r *Reader) Exhausted() bool {
	return r.pos > len(r.buf)*8
}

// Checksum returns the checksum of the data bytes in [start, end).
func (r *Reader) Checksum(start, end int) uint8 {
	return Checksum(r.buf, start, end)
}

// VerifyChecksum reports whether crc matches the checksum of [start, end).
func (r *Reader) VerifyChecksum(crc uint8, start, end int) bool {
	return crc^r.Checksum(start, end) == 0
}

func (r *Reader) bit(pos int) bool {
	idx := pos / 8
	if idx >= len(r.buf) {
		return false
	}
	return (r.buf[idx]>>(pos%8))&1 == 1
}
