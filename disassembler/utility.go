package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/rvasm/isa"
)

// labelName returns the generated label for an address.
func labelName(addr uint32) string {
	return fmt.Sprintf("L_%04x", addr)
}

func joinOperands(ops ...string) string {
	return strings.Join(ops, ", ")
}

// offsetBase formats the "offset(rs1)" operand of lw and sw.
func offsetBase(imm int32, base isa.Register) string {
	return fmt.Sprintf("%d(%s)", imm, base)
}

// branchTarget returns pc+disp, unless it wraps below zero.
func branchTarget(pc uint32, disp int32) (uint32, bool) {
	t := int64(pc) + int64(disp)
	if t < 0 || t > 0xFFFFFFFF {
		return 0, false
	}
	return uint32(t), true
}

// replaceTarget swaps the trailing displacement operand for a label.
func replaceTarget(operands, label string) string {
	i := strings.LastIndex(operands, ", ")
	if i == -1 {
		return label
	}
	return operands[:i+2] + label
}
