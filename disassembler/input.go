package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/rvasm/isa"
)

// ParseText reads the assembler's text output: one 32-digit binary word per
// line. Blank lines are skipped.
func ParseText(src string) ([]isa.Word, error) {
	var words []isa.Word
	for i, line := range strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		w, err := isa.ParseWord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		words = append(words, w)
	}
	return words, nil
}
