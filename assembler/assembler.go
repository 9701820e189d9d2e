package assembler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Urethramancer/rvasm/isa"
)

// LevelTrace sits below debug and logs every encoded word.
const LevelTrace = slog.LevelDebug - 4

// Assembler holds the state for the assembly process.
type Assembler struct {
	base   uint32
	labels *LabelTable
	log    *slog.Logger
}

// New creates a new Assembler instance placing the first instruction at address 0.
func New() *Assembler {
	return &Assembler{
		labels: NewLabelTable(),
		log:    slog.Default(),
	}
}

// WithLogger sets the logger used for pass diagnostics.
func (asm *Assembler) WithLogger(l *slog.Logger) *Assembler {
	if l != nil {
		asm.log = l
	}
	return asm
}

// WithBase sets the address of the first instruction. It must be word aligned.
func (asm *Assembler) WithBase(addr uint32) *Assembler {
	asm.base = addr &^ (isa.Width - 1)
	return asm
}

// Labels returns the table built by the last run.
func (asm *Assembler) Labels() *LabelTable {
	return asm.labels
}

// Assemble parses and assembles RISC-V source text.
func (asm *Assembler) Assemble(src string) (*Program, error) {
	lines, err := ParseSource(src)
	if err != nil {
		asm.labels = NewLabelTable()
		return nil, fmt.Errorf("parsing error: %w", err)
	}
	return asm.AssembleLines(lines)
}

// AssembleLines runs both passes over already tokenized lines.
// The run is atomic: either every instruction encodes, or no program is returned.
func (asm *Assembler) AssembleLines(lines []Line) (*Program, error) {
	asm.labels = NewLabelTable()
	labels, err := buildLabels(lines, asm.base)
	if err != nil {
		return nil, err
	}
	asm.labels = labels
	for _, name := range labels.Names() {
		addr, _ := labels.Lookup(name)
		asm.log.Debug("label", "name", name, "addr", fmt.Sprintf("0x%08x", addr))
	}
	asm.log.Debug("label pass complete", "labels", labels.Len())

	prog := &Program{Base: asm.base, Labels: labels}
	pc := asm.base
	for _, l := range lines {
		if !l.IsInstruction() {
			continue
		}
		w, err := asm.encodeLine(l, pc)
		if err != nil {
			return nil, lineError(l, err)
		}
		asm.log.Log(context.Background(), LevelTrace, "encoded", "pc", pc, "word", w.Hex(), "src", l.Source)
		prog.Words = append(prog.Words, w)
		prog.Lines = append(prog.Lines, l)
		pc += isa.Width
	}

	asm.log.Debug("code pass complete", "words", len(prog.Words))
	return prog, nil
}

// Emit assembles src and hands every word to sink in program order.
// Nothing reaches sink unless the whole source assembled.
func (asm *Assembler) Emit(src string, sink Sink) error {
	prog, err := asm.Assemble(src)
	if err != nil {
		return err
	}
	return prog.Emit(sink)
}

// encodeLine dispatches one instruction to the encoder for its format.
func (asm *Assembler) encodeLine(l Line, pc uint32) (isa.Word, error) {
	mn, err := isa.ParseMnemonic(l.Mnemonic)
	if err != nil {
		return 0, err
	}

	switch mn.Format() {
	case isa.FormatR:
		return encodeR(mn, l.Operands)
	case isa.FormatI:
		return encodeI(mn, l.Operands)
	case isa.FormatS:
		return encodeS(mn, l.Operands)
	case isa.FormatB:
		return encodeB(mn, l.Operands, asm.labels, pc)
	case isa.FormatJ:
		return encodeJ(mn, l.Operands, asm.labels, pc)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownMnemonic, l.Mnemonic)
	}
}
