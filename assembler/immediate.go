package assembler

import (
	"fmt"
)

// Immediate widths in bits.
const (
	WidthI = 12
	WidthS = 12
	WidthB = 13
	WidthJ = 21
)

// immRange returns the inclusive two's-complement bounds for width bits.
func immRange(width int) (lo, hi int64) {
	return -(int64(1) << (width - 1)), int64(1)<<(width-1) - 1
}

// signedField validates value against width and returns its two's-complement
// bits in the low width bits of the result. The width is always the field's,
// never one derived from the value.
func signedField(value int64, width int) (uint32, error) {
	if width < 1 || width > 32 {
		return 0, fmt.Errorf("invalid immediate width %d", width)
	}
	lo, hi := immRange(width)
	if value < lo || value > hi {
		return 0, fmt.Errorf("%w: %d does not fit in %d bits [%d, %d]", ErrImmediateOutOfRange, value, width, lo, hi)
	}
	mask := uint64(1)<<width - 1
	return uint32(uint64(value) & mask), nil
}

// EncodeSigned renders value as a width-bit two's-complement bit string, MSB first.
func EncodeSigned(value int64, width int) (string, error) {
	bits, err := signedField(value, width)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*b", width, bits), nil
}

// displacement validates a B/J target: it must fit width bits and be even,
// since bit 0 is implied and never stored.
func displacement(value int64, width int) (uint32, error) {
	bits, err := signedField(value, width)
	if err != nil {
		return 0, err
	}
	if value%2 != 0 {
		return 0, fmt.Errorf("%w: displacement %d is odd", ErrMisalignedTarget, value)
	}
	return bits, nil
}
