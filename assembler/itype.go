package assembler

import (
	"fmt"

	"github.com/Urethramancer/rvasm/isa"
)

// makeI packs imm[11:0]|rs1|funct3|rd|opcode. imm holds the 12-bit field.
func makeI(e isa.Encoding, rd, rs1 isa.Register, imm uint32) isa.Word {
	return isa.Word(imm<<20 |
		uint32(rs1)<<15 |
		e.Funct3<<12 |
		uint32(rd)<<7 |
		e.Opcode)
}

// encodeI assembles lw, addi and jalr.
//
//	lw   rd, offset(rs1)
//	addi rd, rs1, imm
//	jalr rd, rs1, imm
func encodeI(mn isa.Mnemonic, operands []string) (isa.Word, error) {
	var (
		rd, rs1 isa.Register
		imm     int64
		err     error
	)

	switch mn {
	case isa.LW:
		if len(operands) != 2 {
			return 0, fmt.Errorf("%w: lw requires 2 operands (rd, offset(rs1)), got %d", ErrMalformedOperands, len(operands))
		}
		if rd, err = isa.ParseRegister(operands[0]); err != nil {
			return 0, err
		}
		if imm, rs1, err = parseOffsetBase(operands[1]); err != nil {
			return 0, err
		}

	case isa.ADDI, isa.JALR:
		if len(operands) != 3 {
			return 0, fmt.Errorf("%w: %s requires 3 operands (rd, rs1, imm), got %d", ErrMalformedOperands, mn, len(operands))
		}
		var regs []isa.Register
		if regs, err = parseRegisters(operands[:2]); err != nil {
			return 0, err
		}
		rd, rs1 = regs[0], regs[1]
		if imm, err = parseImmediate(operands[2]); err != nil {
			return 0, err
		}

	default:
		return 0, fmt.Errorf("%w: %s is not an I-type instruction", ErrUnknownMnemonic, mn)
	}

	field, err := signedField(imm, WidthI)
	if err != nil {
		return 0, err
	}
	return makeI(mn.Encoding(), rd, rs1, field), nil
}
