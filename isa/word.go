package isa

import (
	"encoding/binary"
	"fmt"
)

// Width of every instruction, in bytes.
const Width = 4

// Word is one encoded 32-bit instruction.
type Word uint32

// String renders the word MSB first as 32 '0'/'1' characters.
func (w Word) String() string {
	return fmt.Sprintf("%032b", uint32(w))
}

// Hex renders the word as 8 lowercase hex digits.
func (w Word) Hex() string {
	return fmt.Sprintf("%08x", uint32(w))
}

// WordsToBytes converts words to a little-endian byte slice, the in-memory layout on RISC-V.
func WordsToBytes(words []Word) []byte {
	out := make([]byte, len(words)*Width)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*Width:], uint32(w))
	}
	return out
}

// BytesToWords interprets bytes as little-endian words.
// A trailing partial word is padded with zeroes.
func BytesToWords(b []byte) []Word {
	if rem := len(b) % Width; rem != 0 {
		padded := make([]byte, len(b)+Width-rem)
		copy(padded, b)
		b = padded
	}
	out := make([]Word, len(b)/Width)
	for i := range out {
		out[i] = Word(binary.LittleEndian.Uint32(b[i*Width:]))
	}
	return out
}

// ParseWord reads a 32-character binary string back into a Word.
func ParseWord(s string) (Word, error) {
	if len(s) != 32 {
		return 0, fmt.Errorf("expected 32 binary digits, got %d", len(s))
	}
	var w uint32
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			w <<= 1
		case '1':
			w = w<<1 | 1
		default:
			return 0, fmt.Errorf("invalid binary digit %q at %d", s[i], i)
		}
	}
	return Word(w), nil
}
