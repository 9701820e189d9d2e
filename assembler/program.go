package assembler

import (
	"bufio"
	"fmt"
	"io"
	"iter"

	"github.com/Urethramancer/rvasm/isa"
)

// Sink receives the words of a successfully assembled program.
type Sink interface {
	WriteWord(addr uint32, w isa.Word) error
}

// Program is the result of a successful run.
type Program struct {
	Base   uint32
	Words  []isa.Word
	Lines  []Line
	Labels *LabelTable
}

// Address of word i.
func (p *Program) Address(i int) uint32 {
	return p.Base + uint32(i)*isa.Width
}

// Strings yields each word as a 32-character binary string, in program order.
func (p *Program) Strings() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, w := range p.Words {
			if !yield(w.String()) {
				return
			}
		}
	}
}

// Emit hands every word to sink, stopping at the first sink error.
func (p *Program) Emit(sink Sink) error {
	for i, w := range p.Words {
		if err := sink.WriteWord(p.Address(i), w); err != nil {
			return fmt.Errorf("emit 0x%08x: %w", p.Address(i), err)
		}
	}
	return nil
}

// Bytes returns the program as little-endian machine code.
func (p *Program) Bytes() []byte {
	return isa.WordsToBytes(p.Words)
}

// Output formats.
const (
	FormatText = "text"
	FormatHex  = "hex"
	FormatBin  = "bin"
)

// Encode writes the program in the given format: one binary string per line
// ("text"), one hex word per line ("hex"), or raw little-endian bytes ("bin").
func (p *Program) Encode(w io.Writer, format string) error {
	switch format {
	case FormatBin:
		_, err := w.Write(p.Bytes())
		return err
	case FormatText, FormatHex, "":
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	bw := bufio.NewWriter(w)
	for _, word := range p.Words {
		s := word.String()
		if format == FormatHex {
			s = word.Hex()
		}
		if _, err := fmt.Fprintln(bw, s); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteListing writes labels, addresses, words and source side by side.
func (p *Program) WriteListing(w io.Writer) error {
	byAddr := make(map[uint32][]string)
	if p.Labels != nil {
		for _, name := range p.Labels.Names() {
			addr, _ := p.Labels.Lookup(name)
			byAddr[addr] = append(byAddr[addr], name)
		}
	}

	bw := bufio.NewWriter(w)
	for i, word := range p.Words {
		addr := p.Address(i)
		for _, name := range byAddr[addr] {
			fmt.Fprintf(bw, "%s:\n", name)
		}
		src := ""
		if i < len(p.Lines) {
			src = p.Lines[i].Source
		}
		fmt.Fprintf(bw, "%08x  %s  %s  %s\n", addr, word.Hex(), word, src)
	}
	return bw.Flush()
}
