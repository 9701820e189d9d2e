package assembler

import (
	"fmt"

	"github.com/Urethramancer/rvasm/isa"
)

// makeS packs imm[11:5]|rs2|rs1|funct3|imm[4:0]|opcode.
func makeS(e isa.Encoding, rs1, rs2 isa.Register, imm uint32) isa.Word {
	return isa.Word(((imm>>5)&0x7F)<<25 |
		uint32(rs2)<<20 |
		uint32(rs1)<<15 |
		e.Funct3<<12 |
		(imm&0x1F)<<7 |
		e.Opcode)
}

// encodeS assembles "sw rs2, offset(rs1)".
func encodeS(mn isa.Mnemonic, operands []string) (isa.Word, error) {
	if mn.Format() != isa.FormatS {
		return 0, fmt.Errorf("%w: %s is not an S-type instruction", ErrUnknownMnemonic, mn)
	}
	if len(operands) != 2 {
		return 0, fmt.Errorf("%w: %s requires 2 operands (rs2, offset(rs1)), got %d", ErrMalformedOperands, mn, len(operands))
	}
	rs2, err := isa.ParseRegister(operands[0])
	if err != nil {
		return 0, err
	}
	off, rs1, err := parseOffsetBase(operands[1])
	if err != nil {
		return 0, err
	}
	field, err := signedField(off, WidthS)
	if err != nil {
		return 0, err
	}
	return makeS(mn.Encoding(), rs1, rs2, field), nil
}
