package part

import (
	"fmt"
	"strings"
)

// Pin is one electrical terminal of a component. Pins are values; the
// engines never modify them.
type Pin struct {
	Number string
	Name   string
	Type   ElectricalType
	Style  GraphicStyle

	// Alternates lists alternate functions of a multiplexed pin.
	Alternates []string

	// Row and Column locate the pin in a ball grid. Column 0 means unset.
	Row    string
	Column int

	Unit        int
	Description string
	Hidden      bool
}

// PinOption configures optional pin fields.
type PinOption func(*Pin)

// WithStyle sets the graphic style.
func WithStyle(s GraphicStyle) PinOption {
	return func(p *Pin) { p.Style = s }
}

// WithUnit places the pin in symbol unit u.
func WithUnit(u int) PinOption {
	return func(p *Pin) { p.Unit = u }
}

// WithAlternates sets the alternate function names.
func WithAlternates(names ...string) PinOption {
	return func(p *Pin) { p.Alternates = append([]string(nil), names...) }
}

// WithGrid sets the ball grid location.
func WithGrid(row string, column int) PinOption {
	return func(p *Pin) {
		p.Row = row
		p.Column = column
	}
}

// WithDescription attaches a datasheet description.
func WithDescription(d string) PinOption {
	return func(p *Pin) { p.Description = d }
}

// Hidden marks the pin invisible in the symbol.
func Hidden() PinOption {
	return func(p *Pin) { p.Hidden = true }
}

// NewPin builds and validates a pin. An empty type means unspecified.
func NewPin(number, name string, typ ElectricalType, opts ...PinOption) (Pin, error) {
	p := Pin{Number: number, Name: name, Type: typ}
	for _, opt := range opts {
		opt(&p)
	}
	return p.normalize()
}

// MustPin is NewPin for fixed tables and tests; it panics on error.
func MustPin(number, name string, typ ElectricalType, opts ...PinOption) Pin {
	p, err := NewPin(number, name, typ, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pin) normalize() (Pin, error) {
	p.Number = strings.TrimSpace(p.Number)
	p.Name = strings.TrimSpace(p.Name)
	if p.Type == "" {
		p.Type = Unspecified
	}
	if p.Style == "" {
		p.Style = StyleLine
	}
	if p.Unit == 0 {
		p.Unit = 1
	}
	if err := p.Validate(); err != nil {
		return Pin{}, err
	}
	return p, nil
}

// Validate checks field constraints on an already built pin.
func (p Pin) Validate() error {
	if strings.TrimSpace(p.Number) == "" {
		return invalid("pin number", p.Number, ErrEmptyField)
	}
	if p.Number != strings.TrimSpace(p.Number) {
		return invalid("pin number", fmt.Sprintf("%q", p.Number), ErrUntrimmed)
	}
	if strings.TrimSpace(p.Name) == "" {
		return invalid(fmt.Sprintf("pin %s name", p.Number), p.Name, ErrEmptyField)
	}
	if !p.Type.Valid() {
		return invalid(fmt.Sprintf("pin %s electrical type", p.Number), p.Type, ErrUnknownValue)
	}
	if !p.Style.Valid() {
		return invalid(fmt.Sprintf("pin %s graphic style", p.Number), p.Style, ErrUnknownValue)
	}
	if p.Unit < 1 {
		return invalid(fmt.Sprintf("pin %s unit", p.Number), p.Unit, ErrInvalidUnit)
	}
	if p.Column < 0 {
		return invalid(fmt.Sprintf("pin %s column", p.Number), p.Column, ErrOutOfRange)
	}
	return nil
}

// IsPower reports a power input or output pin.
func (p Pin) IsPower() bool {
	return p.Type == PowerIn || p.Type == PowerOut
}

// IsGround reports a name matching GroundPatterns.
func (p Pin) IsGround() bool { return GroundPatterns.Match(p.Name) }

// IsSupply reports a name matching SupplyPatterns.
func (p Pin) IsSupply() bool { return SupplyPatterns.Match(p.Name) }

// IsNC reports a no-connect pin.
func (p Pin) IsNC() bool { return p.Type == NoConnect }

// GridPosition returns the ball designator such as "A1", or "" when the
// pin has no grid location.
func (p Pin) GridPosition() string {
	if p.Row == "" || p.Column == 0 {
		return ""
	}
	return fmt.Sprintf("%s%d", p.Row, p.Column)
}

func (p Pin) String() string {
	return fmt.Sprintf("%s %s (%s)", p.Number, p.Name, p.Type)
}

// PinGroup is a named set of pins sharing a function, used to order pins on
// a symbol.
type PinGroup struct {
	Name      string
	Category  GroupCategory
	Pins      []Pin
	Unit      int
	SortOrder int
}

// PinNumbers returns the numbers of the group's pins in order.
func (g PinGroup) PinNumbers() []string {
	out := make([]string, len(g.Pins))
	for i, p := range g.Pins {
		out[i] = p.Number
	}
	return out
}

// PinsByType filters the group by electrical type.
func (g PinGroup) PinsByType(t ElectricalType) []Pin {
	return filterPins(g.Pins, func(p Pin) bool { return p.Type == t })
}

func filterPins(pins []Pin, keep func(Pin) bool) []Pin {
	var out []Pin
	for _, p := range pins {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
