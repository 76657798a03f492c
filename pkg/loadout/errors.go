package loadout

import "errors"

// Code validation errors.
var (
	ErrMalformedCode    = errors.New("malformed loadout code")
	ErrSizeMismatch     = errors.New("invalid loadout code size")
	ErrChecksumMismatch = errors.New("loadout code checksum mismatch")
)

// Loadout construction errors.
var (
	ErrFieldOverflow = errors.New("loadout field out of range")
	ErrUnknownName   = errors.New("unknown name")
	ErrInvalidColor  = errors.New("invalid color")
)
