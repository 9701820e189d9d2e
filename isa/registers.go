package isa

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRegister is returned when a register name is not in the table.
var ErrUnknownRegister = errors.New("unknown register")

// Register is a general-purpose register index, 0-31.
type Register uint8

// NumRegisters in the base integer ISA.
const NumRegisters = 32

// abiNames lists the calling-convention alias of each register, by index.
var abiNames = [NumRegisters]string{
	"zero", "ra", "sp", "gp", "tp",
	"t0", "t1", "t2",
	"s0", "s1",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	"t3", "t4", "t5", "t6",
}

var registers = func() map[string]Register {
	m := make(map[string]Register, NumRegisters*2+1)
	for i, name := range abiNames {
		m[name] = Register(i)
		m[fmt.Sprintf("x%d", i)] = Register(i)
	}
	m["fp"] = 8
	return m
}()

// ParseRegister resolves a register name ("x5", "t0", "SP") to its index.
func ParseRegister(name string) (Register, error) {
	r, ok := registers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRegister, name)
	}
	return r, nil
}

// String returns the numeric name, e.g. "x5".
func (r Register) String() string {
	return fmt.Sprintf("x%d", uint8(r))
}

// ABIName returns the calling-convention alias, e.g. "t0".
func (r Register) ABIName() string {
	if int(r) >= NumRegisters {
		return r.String()
	}
	return abiNames[r]
}
