package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/rvasm/isa"
)

// Instruction represents a single decoded instruction at a specific address.
type Instruction struct {
	Address  uint32
	Word     isa.Word
	Decoded  isa.Instruction
	Mnemonic string
	Operands string
	// Target is the absolute address of a branch or jump, when HasTarget is set.
	Target    uint32
	HasTarget bool
	Valid     bool
}

// Disassemble renders words, starting at address 0, as assembly text.
// Branch and jump targets inside the program get labels, so the output
// reassembles to the same words.
func Disassemble(words []isa.Word) (string, error) {
	return DisassembleAt(words, 0)
}

// DisassembleAt is Disassemble with the first word at base.
func DisassembleAt(words []isa.Word, base uint32) (string, error) {
	if len(words) == 0 {
		return "", nil
	}

	instructions := make([]*Instruction, len(words))
	for i, w := range words {
		instructions[i] = decode(w, base+uint32(i)*isa.Width)
	}

	// Only word-aligned targets inside the program, or just past it, get labels.
	end := base + uint32(len(words))*isa.Width
	labelTargets := make(map[uint32]bool)
	for _, inst := range instructions {
		if inst.HasTarget && inst.Target >= base && inst.Target <= end && (inst.Target-base)%isa.Width == 0 {
			labelTargets[inst.Target] = true
		}
	}

	var out strings.Builder
	for _, inst := range instructions {
		if labelTargets[inst.Address] {
			fmt.Fprintf(&out, "%s:\n", labelName(inst.Address))
		}
		if !inst.Valid {
			fmt.Fprintf(&out, "    # unknown 0x%08x\n", uint32(inst.Word))
			continue
		}

		operands := inst.Operands
		if inst.HasTarget && labelTargets[inst.Target] {
			operands = replaceTarget(operands, labelName(inst.Target))
		}
		fmt.Fprintf(&out, "    %-6s %s\n", inst.Mnemonic, operands)
	}
	// A branch past the last word still needs somewhere to land.
	if labelTargets[end] {
		fmt.Fprintf(&out, "%s:\n", labelName(end))
	}

	return out.String(), nil
}

// Decode returns the rendered form of a single word at pc.
func Decode(w isa.Word, pc uint32) Instruction {
	return *decode(w, pc)
}

func decode(w isa.Word, pc uint32) *Instruction {
	inst := &Instruction{Address: pc, Word: w}
	d, err := isa.Decode(w)
	if err != nil {
		return inst
	}
	inst.Decoded = d
	inst.Valid = true
	inst.Mnemonic = d.Mnemonic.String()

	switch d.Format() {
	case isa.FormatR:
		inst.Operands = joinOperands(d.Rd.String(), d.Rs1.String(), d.Rs2.String())
	case isa.FormatI:
		if d.Mnemonic == isa.LW {
			inst.Operands = joinOperands(d.Rd.String(), offsetBase(d.Imm, d.Rs1))
		} else {
			inst.Operands = joinOperands(d.Rd.String(), d.Rs1.String(), fmt.Sprint(d.Imm))
		}
	case isa.FormatS:
		inst.Operands = joinOperands(d.Rs2.String(), offsetBase(d.Imm, d.Rs1))
	case isa.FormatB:
		inst.Operands = joinOperands(d.Rs1.String(), d.Rs2.String(), fmt.Sprint(d.Imm))
		inst.Target, inst.HasTarget = branchTarget(pc, d.Imm)
	case isa.FormatJ:
		inst.Operands = joinOperands(d.Rd.String(), fmt.Sprint(d.Imm))
		inst.Target, inst.HasTarget = branchTarget(pc, d.Imm)
	}
	return inst
}
