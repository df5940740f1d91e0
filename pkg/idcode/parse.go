package idcode

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by ParsePattern.
var (
	ErrPatternLength = errors.New("idcode: pattern must have 32 bits")
	ErrWildcard      = errors.New("idcode: manufacturer bits are not fixed")
)

// ParseIDCode parses a raw 32-bit IDCODE into its component fields
func ParseIDCode(raw uint32) IDCode {
	return IDCode{
		Raw:              raw,
		Version:          uint8((raw >> 28) & 0xF),
		PartNumber:       uint16((raw >> 12) & 0xFFFF),
		ManufacturerCode: uint16((raw >> 1) & 0x7FF),
		HasIDCode:        (raw & 0x1) == 0x1,
	}
}

// ParsePattern reads an IDCODE_REGISTER string, most significant bit first.
// Spaces and underscores are ignored. X bits (usually the version) read as
// zero; the manufacturer field [11:1] must be fixed.
func ParsePattern(s string) (IDCode, error) {
	bits := strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' || r == '\t' {
			return -1
		}
		return r
	}, s)
	if len(bits) != 32 {
		return IDCode{}, fmt.Errorf("%w, got %d", ErrPatternLength, len(bits))
	}

	var raw uint32
	for i, c := range strings.ToUpper(bits) {
		bit := 31 - i
		switch c {
		case '1':
			raw |= 1 << bit
		case '0':
		case 'X':
			if bit >= 1 && bit <= 11 {
				return IDCode{}, ErrWildcard
			}
		default:
			return IDCode{}, fmt.Errorf("idcode: bit %d: unexpected %q", bit, c)
		}
	}
	return ParseIDCode(raw), nil
}

// Manufacturer looks up the JEP106 entry of the code.
func (c IDCode) Manufacturer() (Manufacturer, bool) {
	return LookupManufacturer(c.ManufacturerCode)
}
