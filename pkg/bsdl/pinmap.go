package bsdl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// ErrNoPinMap is returned when an entity carries no PIN_MAP_STRING
// constant.
var ErrNoPinMap = errors.New("bsdl: no PIN_MAP_STRING constant")

// PinMapType is the constant type of a package pin table.
const PinMapType = "PIN_MAP_STRING"

type pinMapList struct {
	Entries []*pinMapEntry `( @@ ","? )*`
}

// pinMapEntry is `PORT : PIN` or `PORT : (PIN, PIN, ...)`.
type pinMapEntry struct {
	Port string   `@Word ":"`
	Pins []string `( "(" @Word ( "," @Word )* ")" | @Word )`
}

var pinMapParser = participle.MustBuild[pinMapList](
	participle.Lexer(pinMapLexer),
	participle.Elide("Whitespace"),
)

// PinMap maps port names to package pins. A vector port maps to one pin
// per element in declaration order.
type PinMap map[string][]string

// ParsePinMap parses the joined text of a PIN_MAP_STRING constant.
func ParsePinMap(s string) (PinMap, error) {
	list, err := pinMapParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("bsdl: pin map: %w", err)
	}
	m := make(PinMap, len(list.Entries))
	for _, e := range list.Entries {
		if _, dup := m[e.Port]; dup {
			return nil, fmt.Errorf("bsdl: pin map: port %s listed twice", e.Port)
		}
		m[e.Port] = e.Pins
	}
	return m, nil
}

// PhysicalPinMap returns the default of the PHYSICAL_PIN_MAP generic, which
// names the PIN_MAP_STRING constant for the package.
func (e *Entity) PhysicalPinMap() string {
	if e.Generic == nil {
		return ""
	}
	for _, g := range e.Generic.Generics {
		if strings.EqualFold(g.Name, "PHYSICAL_PIN_MAP") && g.DefaultValue != nil {
			return g.DefaultValue.GetValue()
		}
	}
	return ""
}

// PinMapNames lists the PIN_MAP_STRING constants in file order.
func (e *Entity) PinMapNames() []string {
	var names []string
	for _, attr := range e.GetAttributes() {
		if c := attr.Constant; c != nil && strings.EqualFold(c.Type, PinMapType) {
			names = append(names, c.Name)
		}
	}
	return names
}

// PinMap parses the named PIN_MAP_STRING constant. An empty name selects
// the PHYSICAL_PIN_MAP default, else the first table in the file.
func (e *Entity) PinMap(name string) (PinMap, error) {
	if name == "" {
		name = e.PhysicalPinMap()
	}
	for _, attr := range e.GetAttributes() {
		c := attr.Constant
		if c == nil || !strings.EqualFold(c.Type, PinMapType) {
			continue
		}
		if name == "" || strings.EqualFold(c.Name, name) {
			return ParsePinMap(c.Value.GetConcatenatedString())
		}
	}
	if name != "" {
		return nil, fmt.Errorf("%w named %s", ErrNoPinMap, name)
	}
	return nil, ErrNoPinMap
}

// Signal is one scalar element of a port: the port itself for a bit port,
// or NAME(i) for element i of a bit_vector.
type Signal struct {
	Name  string
	Port  string
	Mode  string // in, out, inout, buffer, linkage
	Index int    // element position within the port
}

// Signals expands the port clause into scalar signals in declaration order.
func (e *Entity) Signals() []Signal {
	if e.Port == nil {
		return nil
	}
	var out []Signal
	for _, p := range e.Port.Ports {
		mode := strings.ToLower(p.Mode)
		for _, name := range p.Names {
			if !p.Type.IsVector() {
				out = append(out, Signal{Name: name, Port: name, Mode: mode})
				continue
			}
			for i, idx := range p.Type.Range.Indices() {
				out = append(out, Signal{
					Name:  name + "(" + strconv.Itoa(idx) + ")",
					Port:  name,
					Mode:  mode,
					Index: i,
				})
			}
		}
	}
	return out
}

// PortPin is a signal bound to its package pin.
type PortPin struct {
	Signal
	Pin string
}

// PortPins binds every signal to the pins of the selected pin map. Signals
// missing from the map are skipped; a vector with fewer pins than elements
// is an error.
func (e *Entity) PortPins(pinMap string) ([]PortPin, error) {
	m, err := e.PinMap(pinMap)
	if err != nil {
		return nil, err
	}
	var out []PortPin
	for _, s := range e.Signals() {
		pins, ok := m[s.Port]
		if !ok {
			continue
		}
		if s.Index >= len(pins) {
			return nil, fmt.Errorf("bsdl: port %s maps %d pins, need element %d", s.Port, len(pins), s.Index)
		}
		out = append(out, PortPin{Signal: s, Pin: pins[s.Index]})
	}
	return out, nil
}
