package loadout

import (
	"fmt"

	"github.com/Faultbox/rocket-loadout/pkg/bits"
)

// CurrentVersion is the protocol version written by Encode.
const CurrentVersion = 2

// SizeTolerance is how far, in characters, a code's length may drift from the
// length implied by its header before Decode rejects it.
const SizeTolerance = 6

// Field limits.
const (
	MaxItems      = 1<<countBits - 1
	MaxSlotIndex  = 1<<slotBits - 1
	MaxProductID  = 1<<productBits - 1
	MaxPaintIndex = 1<<paintBits - 1
	MaxCodeSize   = 1<<codeSizeBits - 1
)

// Field widths in bits.
const (
	versionBits  = 6
	codeSizeBits = 10
	crcBits      = 8
	countBits    = 4
	slotBits     = 5
	productBits  = 13
	paintBits    = 6
	channelBits  = 8

	headerBytes = (versionBits + codeSizeBits + crcBits) / 8

	// Two full teams with color overrides take a little over 110 bytes.
	encodeBufferSize = 128
)

// Encode packs l into a code. It fails with ErrFieldOverflow if any equipped
// item has an out-of-range field or a team has more than MaxItems equipped
// items. Unequipped items (ProductID 0) are skipped.
func Encode(l *Loadout) (string, error) {
	if err := l.validate(); err != nil {
		return "", err
	}

	w := bits.NewWriter(encodeBufferSize)
	w.WriteNumber(CurrentVersion, versionBits)
	// Size and checksum are only known once the body is written.
	w.WriteNumber(0, codeSizeBits)
	w.WriteNumber(0, crcBits)

	w.WriteBool(l.BlueIsOrange)
	writeTeam(w, l.Blue)
	writeColorOverride(w, l.BlueColor)

	if !l.BlueIsOrange {
		writeTeam(w, l.Orange)
		writeColorOverride(w, l.OrangeColor)
	}

	end := w.Pos()
	size := bits.ByteLen(end)
	if size > MaxCodeSize {
		return "", fmt.Errorf("%w: code size %d bytes", ErrFieldOverflow, size)
	}
	w.Seek(versionBits)
	w.WriteNumber(uint16(size), codeSizeBits)
	w.WriteNumber(uint16(w.Checksum(headerBytes, size)), crcBits)
	w.Seek(end)

	return w.Text(), nil
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	verify bool
}

// WithoutVerify skips the size and checksum checks, for codes the caller
// already trusts. A corrupted code then decodes to unspecified content.
func WithoutVerify() DecodeOption {
	return func(o *decodeOptions) {
		o.verify = false
	}
}

// WithVerify sets whether Decode validates the size and checksum.
func WithVerify(verify bool) DecodeOption {
	return func(o *decodeOptions) {
		o.verify = verify
	}
}

// Decode unpacks a code. By default the header size is checked against the
// code length (ErrSizeMismatch) and the checksum against the body
// (ErrChecksumMismatch) before the body is read.
func Decode(code string, opts ...DecodeOption) (*Loadout, error) {
	o := decodeOptions{verify: true}
	for _, opt := range opts {
		opt(&o)
	}

	r, err := bits.NewTextReader(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCode, err)
	}

	l := &Loadout{Header: readHeader(r)}
	if o.verify {
		if err := checkHeader(r, l.Header, len(code)); err != nil {
			return nil, err
		}
	}

	l.BlueIsOrange = r.ReadBool()
	l.Blue = readTeam(r)
	l.BlueColor = readColorOverride(r)

	if l.BlueIsOrange {
		l.Orange = l.Blue
	} else {
		l.Orange = readTeam(r)
		l.OrangeColor = readColorOverride(r)
	}

	return l, nil
}

// Verify reads the header of a code and runs the size and checksum checks
// without decoding the body.
func Verify(code string) (Header, error) {
	r, err := bits.NewTextReader(code)
	if err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrMalformedCode, err)
	}
	h := readHeader(r)
	return h, checkHeader(r, h, len(code))
}

// ExpectedCodeLength returns the base64 length of a message of codeSize bytes.
func ExpectedCodeLength(codeSize int) int {
	return ((4*codeSize+2)/3 + 3) &^ 3
}

func readHeader(r *bits.Reader) Header {
	return Header{
		Version:  uint8(r.ReadNumber(versionBits)),
		CodeSize: r.ReadNumber(codeSizeBits),
		CRC:      uint8(r.ReadNumber(crcBits)),
	}
}

func checkHeader(r *bits.Reader, h Header, codeLen int) error {
	expected := ExpectedCodeLength(int(h.CodeSize))
	if diff := expected - codeLen; diff > SizeTolerance || diff < -SizeTolerance {
		return fmt.Errorf("%w: header declares %d bytes (%d chars), code has %d chars",
			ErrSizeMismatch, h.CodeSize, expected, codeLen)
	}
	if !r.VerifyChecksum(h.CRC, headerBytes, int(h.CodeSize)) {
		return fmt.Errorf("%w: header has %#02x, body sums to %#02x",
			ErrChecksumMismatch, h.CRC, r.Checksum(headerBytes, int(h.CodeSize)))
	}
	return nil
}

func writeTeam(w *bits.Writer, t *TeamLoadout) {
	countPos := w.Pos()
	w.WriteNumber(0, countBits)

	var count uint16
	for _, item := range t.Items() {
		if !item.Equipped() {
			continue
		}
		count++
		w.WriteNumber(uint16(item.SlotIndex), slotBits)
		w.WriteNumber(item.ProductID, productBits)
		w.WriteBool(item.Painted())
		if item.Painted() {
			w.WriteNumber(uint16(item.PaintIndex), paintBits)
		}
	}

	end := w.Pos()
	w.Seek(countPos)
	w.WriteNumber(count, countBits)
	w.Seek(end)
}

func readTeam(r *bits.Reader) *TeamLoadout {
	t := NewTeamLoadout()
	count := int(r.ReadNumber(countBits))
	for i := 0; i < count; i++ {
		item := Item{
			SlotIndex: uint8(r.ReadNumber(slotBits)),
			ProductID: r.ReadNumber(productBits),
		}
		if r.ReadBool() {
			item.PaintIndex = uint8(r.ReadNumber(paintBits))
		}
		t.Set(item)
	}
	return t
}

func writeColorOverride(w *bits.Writer, c ColorOverride) {
	w.WriteBool(c.ShouldOverride)
	if c.ShouldOverride {
		writeRGB(w, c.Primary)
		writeRGB(w, c.Secondary)
	}
}

func readColorOverride(r *bits.Reader) ColorOverride {
	var c ColorOverride
	c.ShouldOverride = r.ReadBool()
	if c.ShouldOverride {
		c.Primary = readRGB(r)
		c.Secondary = readRGB(r)
	}
	return c
}

func writeRGB(w *bits.Writer, c RGB) {
	w.WriteNumber(uint16(c.R), channelBits)
	w.WriteNumber(uint16(c.G), channelBits)
	w.WriteNumber(uint16(c.B), channelBits)
}

func readRGB(r *bits.Reader) RGB {
	return RGB{
		R: uint8(r.ReadNumber(channelBits)),
		G: uint8(r.ReadNumber(channelBits)),
		B: uint8(r.ReadNumber(channelBits)),
	}
}

// validate checks every field that Encode will write.
func (l *Loadout) validate() error {
	if l == nil {
		return fmt.Errorf("%w: nil loadout", ErrFieldOverflow)
	}
	if err := validateTeam("blue", l.Blue); err != nil {
		return err
	}
	if !l.BlueIsOrange {
		return validateTeam("orange", l.Orange)
	}
	return nil
}

func validateTeam(team string, t *TeamLoadout) error {
	equipped := t.Equipped()
	if len(equipped) > MaxItems {
		return fmt.Errorf("%w: %s team has %d equipped items, max %d",
			ErrFieldOverflow, team, len(equipped), MaxItems)
	}
	for _, item := range equipped {
		switch {
		case item.SlotIndex > MaxSlotIndex:
			return fmt.Errorf("%w: %s slot index %d, max %d",
				ErrFieldOverflow, team, item.SlotIndex, MaxSlotIndex)
		case item.ProductID > MaxProductID:
			return fmt.Errorf("%w: %s slot %d product ID %d, max %d",
				ErrFieldOverflow, team, item.SlotIndex, item.ProductID, MaxProductID)
		case item.PaintIndex > MaxPaintIndex:
			return fmt.Errorf("%w: %s slot %d paint index %d, max %d",
				ErrFieldOverflow, team, item.SlotIndex, item.PaintIndex, MaxPaintIndex)
		}
	}
	return nil
}
