package inspect

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

func (i Int) text() string {
	return strconv.FormatInt(int64(i), 10)
}

// text renders f the way the host runtime prints numbers: integral values
// without a decimal point, plain decimals between 1e-6 and 1e21, exponent
// notation outside that range.
func (f Float) text() string {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	// Go pads the exponent to two digits ("1e-07"); drop the padding.
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

// Escape escapes backslash, newline, tab, carriage return, vertical tab and
// NUL, then the quote character of the literal flavor: a single quote when
// isChar is set, a double quote otherwise. Bytes that are not valid UTF-8 are
// written as \xNN.
func Escape(s string, isChar bool) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&sb, `\x%02x`, s[0])
			s = s[1:]
			continue
		}
		s = s[size:]
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\v':
			sb.WriteString(`\v`)
		case 0:
			sb.WriteString(`\0`)
		case '\'':
			if isChar {
				sb.WriteString(`\'`)
			} else {
				sb.WriteRune(r)
			}
		case '"':
			if isChar {
				sb.WriteRune(r)
			} else {
				sb.WriteString(`\"`)
			}
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Quote returns s as a double-quoted string literal.
func Quote(s string) string {
	return `"` + Escape(s, false) + `"`
}

// QuoteChar returns r as a single-quoted character literal.
func QuoteChar(r rune) string {
	return "'" + Escape(string(r), true) + "'"
}
