// Package bits provides a seekable bit-granularity writer and reader over byte
// slices. Values are packed least-significant bit first, and fields run
// contiguously across byte boundaries: bit i of the stream is bit i%8 of byte
// i/8.
package bits

import "errors"

// MaxFieldBits is the widest field a single WriteNumber/ReadNumber call handles.
const MaxFieldBits = 16

// ErrMalformedText is returned when text input is not valid base64.
var ErrMalformedText = errors.New("malformed base64 text")

// Checksum XORs every byte of data in [start, end) into an accumulator that
// starts at 0xFF. Bytes outside data count as zero.
func Checksum(data []byte, start, end int) uint8 {
	crc := uint8(0xFF)
	if start < 0 {
		start = 0
	}
	if end > len(data) {
		end = len(data)
	}
	for i := start; i < end; i++ {
		crc ^= data[i]
	}
	return crc
}

// ByteLen returns the number of bytes needed to hold numBits bits.
func ByteLen(numBits int) int {
	return (numBits + 7) / 8
}
