// Package schematic reads KiCad symbol library files (.kicad_sym).
package schematic

import (
	"sort"

	"github.com/Ka-zam/KiForge/pkg/kicad/sexp"
)

// Shared types (aliases to sexp package)
type Position = sexp.Position
type Angle = sexp.Angle
type PositionAngle = sexp.PositionAngle
type Stroke = sexp.Stroke
type Fill = sexp.Fill
type Effects = sexp.Effects
type Property = sexp.Property

// SymbolLib is a parsed symbol library.
type SymbolLib struct {
	sexp.Header
	Symbols []LibSymbol
}

// Symbol returns the symbol with the given name.
func (l *SymbolLib) Symbol(name string) (*LibSymbol, bool) {
	for i := range l.Symbols {
		if l.Symbols[i].Name == name {
			return &l.Symbols[i], true
		}
	}
	return nil, false
}

// LibSymbol is one top-level symbol definition.
type LibSymbol struct {
	Name             string
	PinNumbersHidden bool
	PinNamesHidden   bool
	PinNameOffset    float64
	ExcludeFromSim   bool
	InBom            bool
	OnBoard          bool
	Properties       []Property
	Units            []SymbolUnit
}

// Property returns the property with the given key.
func (s *LibSymbol) Property(key string) (Property, bool) {
	for _, p := range s.Properties {
		if p.Key == key {
			return p, true
		}
	}
	return Property{}, false
}

// Pins returns the pins of every unit in file order.
func (s *LibSymbol) Pins() []Pin {
	var out []Pin
	for _, u := range s.Units {
		out = append(out, u.Pins...)
	}
	return out
}

// UnitNumbers returns the distinct non-zero unit numbers, ascending. Unit
// 0 holds graphics shared by all units.
func (s *LibSymbol) UnitNumbers() []int {
	seen := map[int]bool{}
	var out []int
	for _, u := range s.Units {
		if u.Unit > 0 && !seen[u.Unit] {
			seen[u.Unit] = true
			out = append(out, u.Unit)
		}
	}
	sort.Ints(out)
	return out
}

// SymbolUnit is a nested "NAME_unit_style" block.
type SymbolUnit struct {
	Name     string
	Unit     int
	Style    int
	Graphics []SymGraphic
	Texts    []SymText
	Pins     []Pin
}

// SymGraphic represents a graphical element in a symbol
type SymGraphic struct {
	Type   string // rectangle, circle, arc, polyline
	Start  Position
	Mid    Position
	End    Position
	Center Position
	Points []Position
	Radius float64
	Stroke Stroke
	Fill   Fill
}

// SymText is a free text item inside a unit.
type SymText struct {
	Text     string
	Position PositionAngle
	Effects  Effects
}

// Pin represents a symbol pin
type Pin struct {
	Type       string // input, output, bidirectional, ...
	Style      string // line, inverted, clock, ...
	Position   Position
	Angle      Angle // 0, 90, 180, 270
	Length     float64
	Name       PinName
	Number     PinNum
	Hide       bool
	Alternates []AltPin
}

// PinName contains pin name information
type PinName struct {
	Name    string
	Effects Effects
}

// PinNum contains pin number information
type PinNum struct {
	Number  string
	Effects Effects
}

// AltPin represents an alternate pin function
type AltPin struct {
	Name  string
	Type  string
	Style string
}
