package sexp

import (
	"strconv"
	"strings"
)

// Decimal places used for coordinates in each document kind.
const (
	FootprintPrecision = 4
	SymbolPrecision    = 2
)

// FormatFixed formats v with exactly prec decimal places. Negative zero is
// written as zero.
func FormatFixed(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		return s[1:]
	}
	return s
}

// FormatNum formats v in its shortest exact form (1.27, 0.254, 0).
func FormatNum(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// Escape escapes backslashes, double quotes and newlines for embedding in a
// quoted string.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Quote returns s escaped and wrapped in double quotes.
func Quote(s string) string {
	return `"` + Escape(s) + `"`
}

// YesNo renders a boolean flag the way KiCad does.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
