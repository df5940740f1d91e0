package part

import "strings"

// PatternTable is an ordered list of lowercase tokens matched as substrings
// of a pin name.
type PatternTable struct {
	Name   string
	Tokens []string
}

// Match reports whether name contains any token, ignoring case.
func (t PatternTable) Match(name string) bool {
	lower := strings.ToLower(name)
	for _, tok := range t.Tokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// With returns a copy of the table extended by extra tokens.
func (t PatternTable) With(extra ...string) PatternTable {
	tokens := make([]string, 0, len(t.Tokens)+len(extra))
	tokens = append(tokens, t.Tokens...)
	for _, tok := range extra {
		tokens = append(tokens, strings.ToLower(tok))
	}
	return PatternTable{Name: t.Name, Tokens: tokens}
}

// GroundPatterns recognises ground and negative-supply rails.
var GroundPatterns = PatternTable{
	Name:   "ground",
	Tokens: []string{"gnd", "vss", "ground", "agnd", "dgnd", "avss", "dvss"},
}

// SupplyPatterns recognises positive supply rails.
var SupplyPatterns = PatternTable{
	Name:   "supply",
	Tokens: []string{"vcc", "vdd", "avdd", "dvdd", "vbat", "v+", "vin", "vcore"},
}
