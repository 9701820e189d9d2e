package assembler

import (
	"fmt"

	"github.com/Urethramancer/rvasm/isa"
)

// makeB scatters a 13-bit displacement: imm[12|10:5] into bits 31:25 and
// imm[4:1|11] into bits 11:7. Bit 0 is implied.
func makeB(e isa.Encoding, rs1, rs2 isa.Register, imm uint32) isa.Word {
	w := uint32(rs2)<<20 | uint32(rs1)<<15 | e.Funct3<<12 | e.Opcode
	w |= ((imm >> 12) & 0x1) << 31
	w |= ((imm >> 5) & 0x3F) << 25
	w |= ((imm >> 1) & 0xF) << 8
	w |= ((imm >> 11) & 0x1) << 7
	return isa.Word(w)
}

// makeJ scatters a 21-bit displacement as imm[20|10:1|11|19:12] into bits 31:12.
func makeJ(e isa.Encoding, rd isa.Register, imm uint32) isa.Word {
	w := uint32(rd)<<7 | e.Opcode
	w |= ((imm >> 20) & 0x1) << 31
	w |= ((imm >> 1) & 0x3FF) << 21
	w |= ((imm >> 11) & 0x1) << 20
	w |= ((imm >> 12) & 0xFF) << 12
	return isa.Word(w)
}

// encodeB assembles "op rs1, rs2, target" for beq, bne and blt.
// The target is a literal displacement or a label resolved against pc.
func encodeB(mn isa.Mnemonic, operands []string, labels *LabelTable, pc uint32) (isa.Word, error) {
	if mn.Format() != isa.FormatB {
		return 0, fmt.Errorf("%w: %s is not a branch", ErrUnknownMnemonic, mn)
	}
	if len(operands) != 3 {
		return 0, fmt.Errorf("%w: %s requires 3 operands (rs1, rs2, target), got %d", ErrMalformedOperands, mn, len(operands))
	}
	regs, err := parseRegisters(operands[:2])
	if err != nil {
		return 0, err
	}
	disp, err := parseTarget(operands[2], labels, pc)
	if err != nil {
		return 0, err
	}
	field, err := displacement(disp, WidthB)
	if err != nil {
		return 0, err
	}
	return makeB(mn.Encoding(), regs[0], regs[1], field), nil
}

// encodeJ assembles "jal rd, target".
func encodeJ(mn isa.Mnemonic, operands []string, labels *LabelTable, pc uint32) (isa.Word, error) {
	if mn.Format() != isa.FormatJ {
		return 0, fmt.Errorf("%w: %s is not a jump", ErrUnknownMnemonic, mn)
	}
	if len(operands) != 2 {
		return 0, fmt.Errorf("%w: %s requires 2 operands (rd, target), got %d", ErrMalformedOperands, mn, len(operands))
	}
	rd, err := isa.ParseRegister(operands[0])
	if err != nil {
		return 0, err
	}
	disp, err := parseTarget(operands[1], labels, pc)
	if err != nil {
		return 0, err
	}
	field, err := displacement(disp, WidthJ)
	if err != nil {
		return 0, err
	}
	return makeJ(mn.Encoding(), rd, field), nil
}
