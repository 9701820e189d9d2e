package isa

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMnemonic is returned for instruction names outside the supported set.
var ErrUnknownMnemonic = errors.New("unknown mnemonic")

// Format is the RISC-V instruction format family.
type Format int

const (
	// FormatInvalid is the zero value.
	FormatInvalid Format = iota
	// FormatR is register-register ALU operations.
	FormatR
	// FormatI is loads, immediate ALU operations and jalr.
	FormatI
	// FormatS is stores.
	FormatS
	// FormatB is conditional branches.
	FormatB
	// FormatJ is jal.
	FormatJ
)

func (f Format) String() string {
	switch f {
	case FormatR:
		return "R"
	case FormatI:
		return "I"
	case FormatS:
		return "S"
	case FormatB:
		return "B"
	case FormatJ:
		return "J"
	default:
		return "?"
	}
}

// Opcodes (bits 6:0).
const (
	OPOp     = 0b0110011 // add, sub, slt, srl, or, and
	OPLoad   = 0b0000011 // lw
	OPOpImm  = 0b0010011 // addi
	OPJalr   = 0b1100111 // jalr
	OPStore  = 0b0100011 // sw
	OPBranch = 0b1100011 // beq, bne, blt
	OPJal    = 0b1101111 // jal
)

// Funct7 values for OPOp.
const (
	Funct7Base = 0b0000000
	Funct7Alt  = 0b0100000 // sub
)

// Mnemonic enumerates every instruction the assembler knows.
type Mnemonic int

const (
	// Invalid is the zero value.
	Invalid Mnemonic = iota
	ADD
	SUB
	SLT
	SRL
	OR
	AND
	LW
	ADDI
	JALR
	SW
	BEQ
	BNE
	BLT
	JAL
)

// Encoding holds the fixed fields of one mnemonic.
type Encoding struct {
	Name   string
	Format Format
	Opcode uint32
	Funct3 uint32
	Funct7 uint32
}

// Encodings is indexed by Mnemonic.
var Encodings = [...]Encoding{
	Invalid: {Name: "invalid"},
	ADD:     {"add", FormatR, OPOp, 0b000, Funct7Base},
	SUB:     {"sub", FormatR, OPOp, 0b000, Funct7Alt},
	SLT:     {"slt", FormatR, OPOp, 0b010, Funct7Base},
	SRL:     {"srl", FormatR, OPOp, 0b101, Funct7Base},
	OR:      {"or", FormatR, OPOp, 0b110, Funct7Base},
	AND:     {"and", FormatR, OPOp, 0b111, Funct7Base},
	LW:      {"lw", FormatI, OPLoad, 0b010, 0},
	ADDI:    {"addi", FormatI, OPOpImm, 0b000, 0},
	JALR:    {"jalr", FormatI, OPJalr, 0b000, 0},
	SW:      {"sw", FormatS, OPStore, 0b010, 0},
	BEQ:     {"beq", FormatB, OPBranch, 0b000, 0},
	BNE:     {"bne", FormatB, OPBranch, 0b001, 0},
	BLT:     {"blt", FormatB, OPBranch, 0b100, 0},
	JAL:     {"jal", FormatJ, OPJal, 0, 0},
}

var mnemonics = func() map[string]Mnemonic {
	m := make(map[string]Mnemonic, len(Encodings))
	for i, e := range Encodings {
		if Mnemonic(i) != Invalid {
			m[e.Name] = Mnemonic(i)
		}
	}
	return m
}()

// ParseMnemonic converts an instruction name such as "ADDI" to its Mnemonic.
func ParseMnemonic(s string) (Mnemonic, error) {
	mn, ok := mnemonics[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Invalid, fmt.Errorf("%w: %s", ErrUnknownMnemonic, s)
	}
	return mn, nil
}

// Valid reports whether mn names a supported instruction.
func (mn Mnemonic) Valid() bool {
	return mn > Invalid && int(mn) < len(Encodings)
}

// Encoding returns the fixed fields for mn.
func (mn Mnemonic) Encoding() Encoding {
	if !mn.Valid() {
		return Encodings[Invalid]
	}
	return Encodings[mn]
}

// Format returns the format family of mn.
func (mn Mnemonic) Format() Format {
	return mn.Encoding().Format
}

func (mn Mnemonic) String() string {
	return mn.Encoding().Name
}
