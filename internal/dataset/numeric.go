package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// layout is how the numbers of one column are written: the decimal separator and
// the digit-grouping separator (0 when the column has no grouping).
type layout struct {
	dec, thou rune
}

// columnLayout decides whether a column holds locale-formatted numbers that need rewriting
// before type detection. It returns ok=false when the cells must be loaded exactly as read:
// text, mixed conventions, percentages, or numbers that already parse as written.
// Missing cells are passed as "" and ignored.
func columnLayout(cells []string, opt Options) (layout, bool) {
	explicit := opt.DecimalSeparator != 0 || opt.ThousandsSeparator != 0
	var present []string
	plain := true
	for _, c := range cells {
		if c == "" {
			continue
		}
		present = append(present, c)
		if _, err := strconv.ParseFloat(c, 64); err != nil {
			plain = false
		}
	}
	if len(present) == 0 || (plain && !explicit) {
		return layout{}, false
	}

	l := layout{dec: opt.DecimalSeparator, thou: opt.ThousandsSeparator}
	if l.dec == 0 {
		if l.thou == '.' {
			l.dec = ','
		} else if l.thou != 0 {
			l.dec = '.'
		} else {
			var votes [2]bool
			for _, c := range present {
				switch guessDecimal(c) {
				case '.':
					votes[0] = true
				case ',':
					votes[1] = true
				}
			}
			if votes[0] && votes[1] {
				return layout{}, false
			}
			l.dec = '.'
			if votes[1] {
				l.dec = ','
			}
		}
	}
	if l.thou == 0 {
		l.thou = groupingRune(present, l.dec)
	}
	for _, c := range present {
		if _, ok := parseNumber(c, l); !ok {
			return layout{}, false
		}
	}
	return l, true
}

// guessDecimal reports the decimal separator a single cell commits to, or 0 when the
// cell reads the same either way or is ambiguous ("1,234" may be grouping or three decimals).
func guessDecimal(s string) rune {
	commas, dots := strings.Count(s, ","), strings.Count(s, ".")
	switch {
	case commas > 0 && dots > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			return ','
		}
		return '.'
	case commas > 1:
		return '.'
	case dots > 1:
		return ','
	case commas == 1:
		if len(s)-strings.Index(s, ",")-1 == 3 {
			return 0
		}
		return ','
	case dots == 1:
		if len(s)-strings.Index(s, ".")-1 == 3 {
			return 0
		}
		return '.'
	}
	return 0
}

// groupingRune picks the first grouping separator other than dec found in cells.
func groupingRune(cells []string, dec rune) rune {
	for _, sep := range []rune{',', '.', ' '} {
		if sep == dec {
			continue
		}
		for _, c := range cells {
			if strings.ContainsRune(c, sep) {
				return sep
			}
		}
	}
	return 0
}

// parseNumber parses s strictly under l. Grouped digits must come in threes after the
// first group; signs, digits and the two separators are the only characters allowed.
func parseNumber(s string, l layout) (float64, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
	if raw == "" || !startsNumeric(raw) {
		return 0, false
	}
	sign := ""
	if raw[0] == '+' || raw[0] == '-' {
		sign, raw = raw[:1], raw[1:]
	}
	intPart, frac := raw, ""
	if i := strings.IndexRune(raw, l.dec); i >= 0 {
		intPart, frac = raw[:i], raw[i+len(string(l.dec)):]
		if frac == "" || !allDigits(frac) {
			return 0, false
		}
	}
	if l.thou != 0 && strings.ContainsRune(intPart, l.thou) {
		groups := strings.Split(intPart, string(l.thou))
		if len(groups[0]) == 0 || len(groups[0]) > 3 {
			return 0, false
		}
		for _, g := range groups[1:] {
			if len(g) != 3 {
				return 0, false
			}
		}
		intPart = strings.Join(groups, "")
	}
	if !allDigits(intPart) || (intPart == "" && frac == "") {
		return 0, false
	}
	num := sign + intPart
	if frac != "" {
		num += "." + frac
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// hasLeadingZero reports codes such as "007" or "01234" whose zeros carry meaning.
func hasLeadingZero(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9'
}

// startsNumeric keeps words like "Inf" or "nan" out of numeric parsing.
func startsNumeric(s string) bool {
	c := s[0]
	if c == '+' || c == '-' {
		if len(s) == 1 {
			return false
		}
		c = s[1]
	}
	return (c >= '0' && c <= '9') || c == '.' || c == ','
}

// ParseDelimiter maps a flag or config value to a CSV delimiter; "" means auto.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s", s)
	}
}

// ParseDecimal maps a decimal separator setting; "" means auto-detect.
func ParseDecimal(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ",", "comma":
		return ',', nil
	case ".", "dot":
		return '.', nil
	case "":
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported decimal separator: %s (use '.'|'comma')", s)
	}
}

// ParseThousands maps a thousands separator setting; "" means auto-detect.
func ParseThousands(s string) (rune, error) {
	switch strings.ToLower(s) {
	case ",":
		return ',', nil
	case ".":
		return '.', nil
	case "space", " ":
		return ' ', nil
	case "":
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported thousands separator: %s (use ','|'.'|'space')", s)
	}
}
