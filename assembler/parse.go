package assembler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Urethramancer/rvasm/isa"
)

var (
	reLabel      = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.$]*$`)
	reOffsetBase = regexp.MustCompile(`^([^()]*)\(\s*([^()\s]+)\s*\)$`)
)

// ParseSource splits assembly text into lines, dropping blanks and comments.
// Comments start with '#', ';' or "//".
func ParseSource(src string) ([]Line, error) {
	raw := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	var lines []Line
	for i, text := range raw {
		l, ok, err := ParseLine(text, i+1)
		if err != nil {
			return nil, err
		}
		if ok {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

// ParseLine tokenizes one physical line. It returns false for lines with
// nothing to assemble.
func ParseLine(text string, number int) (Line, bool, error) {
	text = stripComment(text)
	text = strings.TrimSpace(text)
	if text == "" {
		return Line{}, false, nil
	}

	l := Line{Number: number, Source: text}
	if i := strings.IndexByte(text, ':'); i != -1 {
		label := strings.TrimSpace(text[:i])
		if !reLabel.MatchString(label) {
			return Line{}, false, lineError(l, fmt.Errorf("%w: invalid label %q", ErrMalformedOperands, label))
		}
		l.Label = label
		text = strings.TrimSpace(text[i+1:])
	}
	if text == "" {
		return l, true, nil
	}

	mnemonic, operandStr := text, ""
	if i := strings.IndexAny(text, " \t"); i != -1 {
		mnemonic, operandStr = text[:i], strings.TrimSpace(text[i:])
	}
	l.Mnemonic = strings.ToLower(mnemonic)
	if operandStr != "" {
		ops, err := splitOperands(operandStr)
		if err != nil {
			return Line{}, false, lineError(l, err)
		}
		l.Operands = ops
	}
	return l, true, nil
}

func stripComment(s string) string {
	cut := len(s)
	for _, marker := range []string{"#", ";", "//"} {
		if i := strings.Index(s, marker); i != -1 && i < cut {
			cut = i
		}
	}
	return s[:cut]
}

// splitOperands splits on commas and whitespace outside parentheses, so
// "4( x1 )" stays one operand. A comma with no operand before it, or a
// trailing comma, is malformed.
func splitOperands(s string) ([]string, error) {
	var result []string
	var cur strings.Builder
	parenLevel := 0
	// seen is set once an operand follows the last comma.
	seen := false
	flush := func() {
		if cur.Len() > 0 {
			result = append(result, cur.String())
			cur.Reset()
			seen = true
		}
	}
	for _, r := range s {
		switch {
		case r == '(':
			parenLevel++
			cur.WriteRune(r)
		case r == ')':
			parenLevel--
			cur.WriteRune(r)
		case parenLevel == 0 && r == ',':
			flush()
			if !seen {
				return nil, fmt.Errorf("%w: empty operand in %q", ErrMalformedOperands, s)
			}
			seen = false
		case parenLevel == 0 && (r == ' ' || r == '\t'):
			flush()
		case r == ' ' || r == '\t':
			// whitespace inside parentheses is dropped
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	if !seen {
		return nil, fmt.Errorf("%w: trailing comma in %q", ErrMalformedOperands, s)
	}
	return result, nil
}

// parseConstant converts a decimal, 0x hex or 0b binary literal with an optional sign.
func parseConstant(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	base := 10
	switch lower := strings.ToLower(s); {
	case strings.HasPrefix(lower, "0x"):
		s = s[2:]
		base = 16
	case strings.HasPrefix(lower, "0b"):
		s = s[2:]
		base = 2
	}
	if s == "" || s[0] == '-' || s[0] == '+' {
		return 0, fmt.Errorf("invalid number format")
	}

	val, err := strconv.ParseUint(s, base, 63)
	if err != nil {
		return 0, fmt.Errorf("invalid number format: %s", s)
	}
	if neg {
		return -int64(val), nil
	}
	return int64(val), nil
}

// parseImmediate parses a literal immediate operand.
func parseImmediate(s string) (int64, error) {
	v, err := parseConstant(s)
	if err != nil {
		return 0, fmt.Errorf("%w: immediate %q: %v", ErrMalformedOperands, s, err)
	}
	return v, nil
}

// parseOffsetBase splits the "offset(rs1)" form used by lw and sw.
// An empty offset means zero.
func parseOffsetBase(s string) (int64, isa.Register, error) {
	m := reOffsetBase.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("%w: expected offset(register), got %q", ErrMalformedOperands, s)
	}
	var off int64
	if o := strings.TrimSpace(m[1]); o != "" {
		var err error
		off, err = parseImmediate(o)
		if err != nil {
			return 0, 0, err
		}
	}
	base, err := isa.ParseRegister(m[2])
	if err != nil {
		return 0, 0, err
	}
	return off, base, nil
}

// parseTarget returns the displacement of a B/J target operand: either a
// literal, or the distance from pc to a label.
func parseTarget(s string, labels *LabelTable, pc uint32) (int64, error) {
	if v, err := parseConstant(s); err == nil {
		return v, nil
	}
	if !reLabel.MatchString(s) {
		return 0, fmt.Errorf("%w: invalid branch target %q", ErrMalformedOperands, s)
	}
	return labels.Resolve(s, pc)
}
