package pinout

import (
	"strings"
	"unicode"

	"github.com/Ka-zam/KiForge/pkg/part"
)

// match selects how a rule's tokens are compared with an upper-case name.
type match int

const (
	prefix       match = iota // name starts with the token
	prefixOrTail              // prefix, or name ends in "_" + token
	exact                     // whole name
)

type typeRule struct {
	typ    part.ElectricalType
	how    match
	tokens []string
}

// typeRules are tried in order; the first hit wins.
var typeRules = []typeRule{
	{part.PowerIn, prefix, []string{"VCC", "VDD", "VBAT", "AVDD", "DVDD", "V+", "VIN", "VCORE"}},
	{part.PowerIn, prefix, []string{"GND", "VSS", "AVSS", "DVSS", "AGND", "DGND", "V-", "PGND"}},
	{part.NoConnect, prefix, []string{"NC", "N/C", "DNC", "N.C.", "RSVD", "RESERVED"}},
	{part.Input, prefix, []string{"CLK", "CLOCK", "OSC", "XTAL", "EXTAL", "XI", "XO"}},
	{part.Input, prefix, []string{"RST", "RESET", "NRST", "~RST", "MR", "MCLR"}},
	{part.Output, prefixOrTail, []string{"OUT", "TXD", "TX", "MOSI", "SCK", "SCLK", "DO", "SDO", "TDO"}},
	{part.Input, prefixOrTail, []string{"IN", "RXD", "RX", "MISO", "DI", "SDI", "TDI", "TCK", "TMS"}},
	{part.Bidirectional, prefix, []string{"GPIO", "PORT", "IO", "P0", "P1", "P2", "P3", "PA", "PB", "PC", "PD", "PE", "PF"}},
	{part.Bidirectional, prefix, []string{"SDA", "SWDIO", "D+", "D-", "DP", "DM", "USB"}},
	{part.OpenCollector, prefix, []string{"INT", "IRQ", "NMI", "ALERT", "BUSY"}},
	{part.Passive, prefix, []string{"AIN", "AOUT", "ADC", "DAC", "VREF", "AN"}},
}

func (m match) hit(name, tok string) bool {
	switch m {
	case exact:
		return name == tok
	case prefixOrTail:
		return strings.HasPrefix(name, tok) || strings.HasSuffix(name, "_"+tok)
	}
	return strings.HasPrefix(name, tok)
}

// InferType guesses the electrical type from common naming conventions.
// Unrecognized names are unspecified.
func InferType(name string) part.ElectricalType {
	n := strings.ToUpper(strings.TrimSpace(name))
	for _, r := range typeRules {
		for _, tok := range r.tokens {
			if r.how.hit(n, tok) {
				return r.typ
			}
		}
	}
	return part.Unspecified
}

var clockNames = []string{"CLK", "CLOCK", "SCK", "SCLK", "TCK"}

// InferStyle returns inverted for active-low names (~X, /X, NRST, X_N,
// X_B, X#), clock for clock inputs, and line otherwise.
func InferStyle(name string) part.GraphicStyle {
	n := strings.ToUpper(strings.TrimSpace(name))
	switch {
	case strings.HasPrefix(n, "~"), strings.HasPrefix(n, "/"):
		return part.StyleInverted
	case len(n) > 2 && n[0] == 'N' && unicode.IsLetter(rune(n[1])):
		return part.StyleInverted
	case strings.HasSuffix(n, "_N"), strings.HasSuffix(n, "_B"), strings.HasSuffix(n, "#"):
		return part.StyleInverted
	}
	for _, tok := range clockNames {
		if exact.hit(n, tok) || strings.HasSuffix(n, "_"+tok) {
			return part.StyleClock
		}
	}
	return part.StyleLine
}

var categoryRules = []struct {
	cat    part.GroupCategory
	tokens []string
}{
	{part.CategoryPower, []string{"VCC", "VDD", "VBAT", "AVDD", "DVDD", "V+", "VIN", "VCORE"}},
	{part.CategoryGround, []string{"GND", "VSS", "AVSS", "DVSS", "AGND", "DGND", "V-"}},
	{part.CategoryCommunication, []string{"SPI", "I2C", "UART", "USART", "CAN", "USB", "ETH", "MOSI", "MISO", "SCL", "SDA", "TX", "RX"}},
	{part.CategoryDebug, []string{"JTAG", "SWD", "TDI", "TDO", "TCK", "TMS", "TRST", "SWCLK"}},
	{part.CategoryClock, []string{"CLK", "CLOCK", "OSC", "XTAL"}},
	{part.CategoryControl, []string{"EN", "ENABLE", "RST", "RESET", "CS", "CE", "WR", "RD", "OE", "WE"}},
	{part.CategoryAnalog, []string{"AIN", "AOUT", "ADC", "DAC", "VREF", "AN"}},
	{part.CategoryBidirectional, []string{"GPIO", "PORT", "IO", "P0", "P1", "PA", "PB"}},
}

// InferCategory picks a pin group from the name, falling back to the
// electrical type.
func InferCategory(name string, typ part.ElectricalType) part.GroupCategory {
	if typ == part.NoConnect {
		return part.CategoryNC
	}
	n := strings.ToUpper(strings.TrimSpace(name))
	for _, r := range categoryRules {
		for _, tok := range r.tokens {
			if strings.HasPrefix(n, tok) {
				return r.cat
			}
		}
	}
	switch typ {
	case part.Input:
		return part.CategoryInput
	case part.Output:
		return part.CategoryOutput
	case part.Bidirectional:
		return part.CategoryBidirectional
	}
	return part.CategoryOther
}

// typeNames maps datasheet type abbreviations to electrical types.
var typeNames = map[string]part.ElectricalType{
	"i": part.Input, "in": part.Input, "input": part.Input,
	"o": part.Output, "out": part.Output, "output": part.Output,
	"io": part.Bidirectional, "i/o": part.Bidirectional, "inout": part.Bidirectional,
	"bidir": part.Bidirectional, "bidirectional": part.Bidirectional,
	"p": part.PowerIn, "pwr": part.PowerIn, "power": part.PowerIn,
	"s": part.PowerIn, "supply": part.PowerIn,
	"g": part.PowerIn, "gnd": part.PowerIn, "ground": part.PowerIn,
	"power_in": part.PowerIn, "power_out": part.PowerOut,
	"passive": part.Passive, "analog": part.Passive, "a": part.Passive,
	"tristate": part.TriState, "tri": part.TriState, "t": part.TriState,
	"hi-z": part.TriState, "tri_state": part.TriState,
	"od": part.OpenCollector, "open_drain": part.OpenCollector, "open-drain": part.OpenCollector,
	"oc": part.OpenCollector, "open_collector": part.OpenCollector,
	"oe": part.OpenEmitter, "open_emitter": part.OpenEmitter,
	"nc": part.NoConnect, "n/c": part.NoConnect, "-": part.NoConnect, "no_connect": part.NoConnect,
	"free": part.Free, "unspecified": part.Unspecified,
}

// ParseType maps a type column value such as "I/O" or "pwr" to an
// electrical type. The second result is false for unknown values.
func ParseType(s string) (part.ElectricalType, bool) {
	t, ok := typeNames[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// ResolveType uses the type column when it is recognized and falls back to
// InferType.
func ResolveType(typeColumn, name string) part.ElectricalType {
	if t, ok := ParseType(typeColumn); ok && t != part.Unspecified {
		return t
	}
	return InferType(name)
}
