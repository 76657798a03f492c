package bits

import (
	"encoding/base64"
	"fmt"
)

// Writer packs unsigned integers into a byte slice, LSB first.
//
// The cursor can be moved anywhere with Seek, which lets a caller reserve a
// field, write what follows, and come back to fill it in. Bits are set or
// cleared individually, so rewriting a field never disturbs its neighbours.
type Writer struct {
	buf []byte
	pos int
}

// NewWriter returns a Writer with an initial buffer of capacity bytes.
// The buffer grows when a write goes past its end.
func NewWriter(capacity int) *Writer {
	if capacity < 0 {
		capacity = 0
	}
	return &Writer{buf: make([]byte, capacity)}
}

// WriteNumber writes the low numBits bits of v at the cursor and advances it.
// Higher bits of v are ignored; callers validate field widths.
func (w *Writer) WriteNumber(v uint16, numBits int) {
	if numBits < 0 || numBits > MaxFieldBits {
		panic(fmt.Sprintf("bits: invalid field width %d", numBits))
	}
	w.grow(w.pos + numBits)

	for i := 0; i < numBits; i++ {
		mask := byte(1) << (w.pos % 8)
		if v&1 == 1 {
			w.buf[w.pos/8] |= mask
		} else {
			w.buf[w.pos/8] &^= mask
		}
		w.pos++
		v >>= 1
	}
}

// WriteBool writes a single bit.
func (w *Writer) WriteBool(b bool) {
	var v uint16
	if b {
		v = 1
	}
	w.WriteNumber(v, 1)
}

// Pos returns the cursor position in bits.
func (w *Writer) Pos() int {
	return w.pos
}

// Seek moves the cursor to bit position pos.
func (w *Writer) Seek(pos int) {
	if pos < 0 {
		panic(fmt.Sprintf("bits: negative seek position %d", pos))
	}
	w.pos = pos
}

// Checksum returns the checksum of the buffer bytes in [start, end).
func (w *Writer) Checksum(start, end int) uint8 {
	return Checksum(w.buf, start, end)
}

// Bytes returns the first ceil(Pos()/8) bytes of the buffer.
// The slice aliases the Writer's buffer.
func (w *Writer) Bytes() []byte {
	n := ByteLen(w.pos)
	w.grow(n * 8)
	return w.buf[:n]
}

// Text returns Bytes as padded standard base64.
func (w *Writer) Text() string {
	return base64.StdEncoding.EncodeToString(w.Bytes())
}

// grow makes sure the buffer holds at least numBits bits.
func (w *Writer) grow(numBits int) {
	need := ByteLen(numBits)
	if need <= len(w.buf) {
		return
	}
	if need <= cap(w.buf) {
		w.buf = w.buf[:need]
		return
	}
	buf := make([]byte, need, 2*need)
	copy(buf, w.buf)
	w.buf = buf
}
