package isa

import (
	"fmt"
)

// Instruction holds the fields of a decoded word.
// Registers and the immediate are only meaningful for the formats that carry them.
type Instruction struct {
	Mnemonic Mnemonic
	Rd       Register
	Rs1      Register
	Rs2      Register
	// Imm is sign-extended. For B and J it is the byte displacement.
	Imm int32
}

// Format of the decoded instruction.
func (in Instruction) Format() Format {
	return in.Mnemonic.Format()
}

// Field extraction.
func opcode(w Word) uint32 { return uint32(w) & 0x7F }
func rd(w Word) Register   { return Register((w >> 7) & 0x1F) }
func funct3(w Word) uint32 { return uint32(w>>12) & 0x7 }
func rs1(w Word) Register  { return Register((w >> 15) & 0x1F) }
func rs2(w Word) Register  { return Register((w >> 20) & 0x1F) }
func funct7(w Word) uint32 { return uint32(w>>25) & 0x7F }

// SignExtend interprets the low width bits of v as two's complement.
func SignExtend(v uint32, width uint) int32 {
	shift := 32 - width
	return int32(v<<shift) >> shift
}

func immI(w Word) int32 {
	return SignExtend(uint32(w)>>20, 12)
}

func immS(w Word) int32 {
	raw := (uint32(w)>>25)<<5 | (uint32(w)>>7)&0x1F
	return SignExtend(raw, 12)
}

// immB reassembles imm[12|10:5] (bits 31:25) and imm[4:1|11] (bits 11:7).
func immB(w Word) int32 {
	v := uint32(w)
	raw := ((v>>31)&0x1)<<12 |
		((v>>7)&0x1)<<11 |
		((v>>25)&0x3F)<<5 |
		((v>>8)&0xF)<<1
	return SignExtend(raw, 13)
}

// immJ reassembles imm[20|10:1|11|19:12] (bits 31:12).
func immJ(w Word) int32 {
	v := uint32(w)
	raw := ((v>>31)&0x1)<<20 |
		((v>>12)&0xFF)<<12 |
		((v>>20)&0x1)<<11 |
		((v>>21)&0x3FF)<<1
	return SignExtend(raw, 21)
}

// Decode splits a word into its instruction fields.
// Words outside the supported subset return ErrUnknownMnemonic.
func Decode(w Word) (Instruction, error) {
	op := opcode(w)
	f3 := funct3(w)
	for i := ADD; int(i) < len(Encodings); i++ {
		e := Encodings[i]
		if e.Opcode != op {
			continue
		}
		if e.Format != FormatJ && e.Funct3 != f3 {
			continue
		}
		if e.Format == FormatR && e.Funct7 != funct7(w) {
			continue
		}
		return decodeAs(i, w), nil
	}
	return Instruction{}, fmt.Errorf("%w: cannot decode %08x", ErrUnknownMnemonic, uint32(w))
}

func decodeAs(mn Mnemonic, w Word) Instruction {
	in := Instruction{Mnemonic: mn}
	switch mn.Format() {
	case FormatR:
		in.Rd, in.Rs1, in.Rs2 = rd(w), rs1(w), rs2(w)
	case FormatI:
		in.Rd, in.Rs1, in.Imm = rd(w), rs1(w), immI(w)
	case FormatS:
		in.Rs1, in.Rs2, in.Imm = rs1(w), rs2(w), immS(w)
	case FormatB:
		in.Rs1, in.Rs2, in.Imm = rs1(w), rs2(w), immB(w)
	case FormatJ:
		in.Rd, in.Imm = rd(w), immJ(w)
	}
	return in
}
