package part

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultReferencePrefix is the designator prefix of an IC.
const DefaultReferencePrefix = "U"

// Component aggregates the identity, pins and packages of a part. It is
// built once and only read afterwards.
type Component struct {
	Name         string
	Manufacturer string
	Description  string
	Category     string
	Keywords     []string
	DatasheetURL string

	Pins   []Pin
	Groups []PinGroup

	Packages            []*Package
	PrimaryPackageIndex int

	SymbolUnits     int
	UnitNames       map[int]string
	ReferencePrefix string
	Properties      map[string]string
}

// ComponentOption configures optional component fields.
type ComponentOption func(*Component)

// WithManufacturer sets the manufacturer.
func WithManufacturer(m string) ComponentOption {
	return func(c *Component) { c.Manufacturer = m }
}

// WithComponentDescription sets the description property.
func WithComponentDescription(d string) ComponentOption {
	return func(c *Component) { c.Description = d }
}

// WithDatasheet sets the datasheet URL.
func WithDatasheet(url string) ComponentOption {
	return func(c *Component) { c.DatasheetURL = url }
}

// WithKeywords sets the search keywords.
func WithKeywords(kw ...string) ComponentOption {
	return func(c *Component) { c.Keywords = append([]string(nil), kw...) }
}

// WithPackages sets the package variants and which one is primary.
func WithPackages(primary int, pkgs ...*Package) ComponentOption {
	return func(c *Component) {
		c.Packages = append([]*Package(nil), pkgs...)
		c.PrimaryPackageIndex = primary
	}
}

// WithGroups sets the named pin groups.
func WithGroups(groups ...PinGroup) ComponentOption {
	return func(c *Component) { c.Groups = append([]PinGroup(nil), groups...) }
}

// WithUnitNames labels symbol units.
func WithUnitNames(names map[int]string) ComponentOption {
	return func(c *Component) {
		c.UnitNames = make(map[int]string, len(names))
		for k, v := range names {
			c.UnitNames[k] = v
		}
	}
}

// WithReferencePrefix sets the designator prefix.
func WithReferencePrefix(prefix string) ComponentOption {
	return func(c *Component) { c.ReferencePrefix = prefix }
}

// WithProperty adds a custom symbol property.
func WithProperty(key, value string) ComponentOption {
	return func(c *Component) {
		if c.Properties == nil {
			c.Properties = map[string]string{}
		}
		c.Properties[key] = value
	}
}

// NewComponent validates and builds a component. Pin numbers and names
// are trimmed and numbers must then be unique. An empty pin list is
// accepted.
func NewComponent(name string, pins []Pin, opts ...ComponentOption) (*Component, error) {
	c := &Component{
		Name:            strings.TrimSpace(name),
		Pins:            make([]Pin, 0, len(pins)),
		ReferencePrefix: DefaultReferencePrefix,
	}
	for _, p := range pins {
		p, err := p.normalize()
		if err != nil {
			return nil, err
		}
		c.Pins = append(c.Pins, p)
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.SymbolUnits == 0 {
		c.SymbolUnits = max(1, len(c.Units()))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks field constraints and pin number uniqueness.
func (c *Component) Validate() error {
	if c.Name == "" {
		return invalid("component name", c.Name, ErrEmptyField)
	}
	if strings.TrimSpace(c.ReferencePrefix) == "" {
		return invalid("reference prefix", c.ReferencePrefix, ErrEmptyField)
	}
	if c.PrimaryPackageIndex < 0 || (c.PrimaryPackageIndex > 0 && c.PrimaryPackageIndex >= len(c.Packages)) {
		return invalid("primary package index", c.PrimaryPackageIndex, ErrOutOfRange)
	}
	if c.SymbolUnits < 1 {
		return invalid("symbol units", c.SymbolUnits, ErrInvalidUnit)
	}
	for _, p := range c.Pins {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	if dups := duplicateNumbers(c.Pins); len(dups) > 0 {
		return &ValidationError{
			Field: "pin numbers",
			Value: strings.Join(dups, ", "),
			Err:   ErrDuplicatePin,
		}
	}
	for _, pkg := range c.Packages {
		if pkg == nil {
			return invalid("package", nil, ErrEmptyField)
		}
		if err := pkg.Validate(); err != nil {
			return fmt.Errorf("package %s: %w", pkg.Name, err)
		}
	}
	return nil
}

func duplicateNumbers(pins []Pin) []string {
	seen := make(map[string]bool, len(pins))
	var dups []string
	for _, p := range pins {
		n := strings.TrimSpace(p.Number)
		if seen[n] {
			dups = append(dups, n)
		}
		seen[n] = true
	}
	return dups
}

// PinCount returns the number of pins.
func (c *Component) PinCount() int { return len(c.Pins) }

// PrimaryPackage returns the primary package variant, or nil.
func (c *Component) PrimaryPackage() *Package {
	if c.PrimaryPackageIndex >= 0 && c.PrimaryPackageIndex < len(c.Packages) {
		return c.Packages[c.PrimaryPackageIndex]
	}
	return nil
}

// PinsByType filters pins by electrical type.
func (c *Component) PinsByType(t ElectricalType) []Pin {
	return filterPins(c.Pins, func(p Pin) bool { return p.Type == t })
}

// PinsByUnit returns the pins of symbol unit u.
func (c *Component) PinsByUnit(u int) []Pin {
	return filterPins(c.Pins, func(p Pin) bool { return p.Unit == u })
}

// PinsByGroup returns the pins of the named group.
func (c *Component) PinsByGroup(name string) []Pin {
	for _, g := range c.Groups {
		if g.Name == name {
			return append([]Pin(nil), g.Pins...)
		}
	}
	return nil
}

// PowerPins returns power-typed pins and supply-named pins.
func (c *Component) PowerPins() []Pin {
	return filterPins(c.Pins, func(p Pin) bool { return p.IsPower() || p.IsSupply() })
}

// GroundPins returns ground-named pins.
func (c *Component) GroundPins() []Pin {
	return filterPins(c.Pins, Pin.IsGround)
}

// NCPins returns no-connect pins.
func (c *Component) NCPins() []Pin {
	return filterPins(c.Pins, Pin.IsNC)
}

// PinByNumber looks up a pin by its number.
func (c *Component) PinByNumber(number string) (Pin, bool) {
	for _, p := range c.Pins {
		if p.Number == number {
			return p, true
		}
	}
	return Pin{}, false
}

// PinByName looks up the first pin with the given name, ignoring case.
func (c *Component) PinByName(name string) (Pin, bool) {
	for _, p := range c.Pins {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Pin{}, false
}

// Units returns the distinct unit numbers used by the pins, ascending.
func (c *Component) Units() []int {
	seen := map[int]bool{}
	var units []int
	for _, p := range c.Pins {
		if !seen[p.Unit] {
			seen[p.Unit] = true
			units = append(units, p.Unit)
		}
	}
	sort.Ints(units)
	return units
}

// IsMultiUnit reports whether pins span more than one unit.
func (c *Component) IsMultiUnit() bool { return len(c.Units()) > 1 }

// UnitName returns the label of unit u, "Unit N" when none was set.
func (c *Component) UnitName(u int) string {
	if name, ok := c.UnitNames[u]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("Unit %d", u)
}
