package assembler

import (
	"fmt"
	"sort"

	"github.com/Urethramancer/rvasm/isa"
)

// LabelTable maps label names to byte addresses.
// It is filled by the first pass and only read afterwards.
type LabelTable struct {
	addrs map[string]uint32
}

// NewLabelTable returns an empty table.
func NewLabelTable() *LabelTable {
	return &LabelTable{addrs: make(map[string]uint32)}
}

// Define records name at addr. Redefinition fails with ErrDuplicateLabel.
func (t *LabelTable) Define(name string, addr uint32) error {
	if prev, ok := t.addrs[name]; ok {
		return fmt.Errorf("%w: %s (already at 0x%x)", ErrDuplicateLabel, name, prev)
	}
	t.addrs[name] = addr
	return nil
}

// Lookup returns the address of name.
func (t *LabelTable) Lookup(name string) (uint32, bool) {
	addr, ok := t.addrs[name]
	return addr, ok
}

// Resolve returns the signed displacement from pc to name.
func (t *LabelTable) Resolve(name string, pc uint32) (int64, error) {
	addr, ok := t.addrs[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUndefinedLabel, name)
	}
	return int64(addr) - int64(pc), nil
}

// Len returns the number of labels.
func (t *LabelTable) Len() int {
	return len(t.addrs)
}

// Names returns the labels sorted by address, then name.
func (t *LabelTable) Names() []string {
	names := make([]string, 0, len(t.addrs))
	for n := range t.addrs {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		ai, aj := t.addrs[names[i]], t.addrs[names[j]]
		if ai != aj {
			return ai < aj
		}
		return names[i] < names[j]
	})
	return names
}

// buildLabels is the first pass. Labels take the address of the instruction
// they prefix, or of the next instruction when they stand alone; only
// instruction lines advance the program counter.
func buildLabels(lines []Line, base uint32) (*LabelTable, error) {
	t := NewLabelTable()
	pc := base
	for _, l := range lines {
		if l.Label != "" {
			if err := t.Define(l.Label, pc); err != nil {
				return nil, lineError(l, err)
			}
		}
		if l.IsInstruction() {
			pc += isa.Width
		}
	}
	return t, nil
}
