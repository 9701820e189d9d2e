package assembler

// Line is one tokenized source line.
// A line that only declares a label has an empty Mnemonic and no operands.
type Line struct {
	// Number is the 1-based physical line in the source.
	Number   int
	Label    string
	Mnemonic string
	Operands []string
	// Source is the trimmed text, kept for diagnostics and listings.
	Source string
}

// IsInstruction reports whether the line occupies a program-counter slot.
func (l Line) IsInstruction() bool {
	return l.Mnemonic != ""
}
