package assembler

import (
	"fmt"

	"github.com/Urethramancer/rvasm/isa"
)

// makeR packs funct7|rs2|rs1|funct3|rd|opcode.
func makeR(e isa.Encoding, rd, rs1, rs2 isa.Register) isa.Word {
	return isa.Word(e.Funct7<<25 |
		uint32(rs2)<<20 |
		uint32(rs1)<<15 |
		e.Funct3<<12 |
		uint32(rd)<<7 |
		e.Opcode)
}

// parseRegisters resolves every operand as a register name.
func parseRegisters(operands []string) ([]isa.Register, error) {
	regs := make([]isa.Register, len(operands))
	for i, op := range operands {
		r, err := isa.ParseRegister(op)
		if err != nil {
			return nil, err
		}
		regs[i] = r
	}
	return regs, nil
}

// encodeR assembles "op rd, rs1, rs2" for add, sub, slt, srl, or and and.
func encodeR(mn isa.Mnemonic, operands []string) (isa.Word, error) {
	if mn.Format() != isa.FormatR {
		return 0, fmt.Errorf("%w: %s is not an R-type instruction", ErrUnknownMnemonic, mn)
	}
	if len(operands) != 3 {
		return 0, fmt.Errorf("%w: %s requires 3 operands (rd, rs1, rs2), got %d", ErrMalformedOperands, mn, len(operands))
	}
	regs, err := parseRegisters(operands)
	if err != nil {
		return 0, err
	}
	return makeR(mn.Encoding(), regs[0], regs[1], regs[2]), nil
}
