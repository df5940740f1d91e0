// Package symbol lays out and writes KiCad schematic symbols (.kicad_sym).
//
// Single-unit components get one body with pins assigned to sides by
// electrical role. Components whose pins span several units get one body
// per unit, with differential pairs kept adjacent.
package symbol

import (
	"math"
	"sort"

	"github.com/Ka-zam/KiForge/pkg/kicad/sexp"
	"github.com/Ka-zam/KiForge/pkg/part"
)

// Symbol dimensions in millimetres (100 mil grid).
const (
	PinLength  = 2.54
	PinSpacing = 2.54
	FontSize   = 1.27
	LineWidth  = 0.254
	MinBody    = 10.16

	sidePadding = 2 * PinSpacing
	endPadding  = 4 * PinSpacing
)

// Side is the body edge a pin is drawn on.
type Side int

const (
	Left Side = iota
	Right
	Top
	Bottom
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	}
	return "unknown"
}

// Orientation returns the direction a pin on side s points, toward the
// body.
func (s Side) Orientation() part.Orientation {
	switch s {
	case Right:
		return part.OrientLeft
	case Top:
		return part.OrientDown
	case Bottom:
		return part.OrientUp
	}
	return part.OrientRight
}

// PlacedPin is a pin with its connection point. Y points up, as in the
// symbol editor.
type PlacedPin struct {
	Pin      part.Pin
	Side     Side
	Position sexp.Position
}

// Orientation returns the direction the pin points.
func (p PlacedPin) Orientation() part.Orientation { return p.Side.Orientation() }

// UnitLayout is the placement of one symbol unit.
type UnitLayout struct {
	Unit   int
	Name   string
	Width  float64
	Height float64

	Left   []PlacedPin
	Right  []PlacedPin
	Top    []PlacedPin
	Bottom []PlacedPin

	// PowerOnly is set when the unit carries nothing but supply and
	// ground pins.
	PowerOnly bool
}

// Pins returns every placed pin in write order: left, right, top, bottom.
func (u *UnitLayout) Pins() []PlacedPin {
	out := make([]PlacedPin, 0, len(u.Left)+len(u.Right)+len(u.Top)+len(u.Bottom))
	out = append(out, u.Left...)
	out = append(out, u.Right...)
	out = append(out, u.Top...)
	out = append(out, u.Bottom...)
	return out
}

// Body returns the body rectangle centred on the origin.
func (u *UnitLayout) Body() sexp.BoundingBox {
	return sexp.BoundingBox{
		Min: sexp.Position{X: -u.Width / 2, Y: -u.Height / 2},
		Max: sexp.Position{X: u.Width / 2, Y: u.Height / 2},
	}
}

// Layout places the pins of c. Components whose pins use at most one unit
// number get a single layout numbered 1; otherwise there is one layout per
// unit in ascending order.
func Layout(c *part.Component, opts ...Option) ([]UnitLayout, error) {
	if err := checkComponent(c); err != nil {
		return nil, err
	}
	return layout(c, buildOptions(opts)), nil
}

func layout(c *part.Component, o options) []UnitLayout {
	units := c.Units()
	if len(units) <= 1 {
		return []UnitLayout{layoutSingle(c.Pins, o.classifier)}
	}
	layouts := make([]UnitLayout, 0, len(units))
	for _, u := range units {
		layouts = append(layouts, layoutUnit(c.PinsByUnit(u), u, c.UnitName(u), o.classifier))
	}
	return layouts
}

// layoutSingle assigns sides by role: ground then no-connect on the bottom,
// supply on top, inputs and unclassified pins on the left, outputs on the
// right, and bidirectional pins split with the first half on the left.
func layoutSingle(pins []part.Pin, cl Classifier) UnitLayout {
	byClass := map[Class][]part.Pin{}
	for _, p := range pins {
		c := cl.Classify(p)
		byClass[c] = append(byClass[c], p)
	}
	for _, list := range byClass {
		sortByNameNumber(list)
	}

	bidir := byClass[ClassBidirectional]
	half := len(bidir) / 2

	left := concat(byClass[ClassInput], bidir[:half], byClass[ClassOther])
	right := concat(byClass[ClassOutput], bidir[half:])
	top := byClass[ClassSupply]
	bottom := concat(byClass[ClassGround], byClass[ClassNoConnect])

	u := place(1, "", left, right, top, bottom)
	u.PowerOnly = len(pins) > 0 && len(top)+len(byClass[ClassGround]) == len(pins)
	return u
}

// layoutUnit is the multi-unit variant: supply on top, ground and
// no-connect on the bottom, and the remaining signals ordered by PairPins
// before being split between left and right.
func layoutUnit(pins []part.Pin, unit int, name string, cl Classifier) UnitLayout {
	var supply, ground, nc, signals []part.Pin
	for _, p := range pins {
		switch {
		case cl.Ground.Match(p.Name):
			ground = append(ground, p)
		case cl.Supply.Match(p.Name):
			supply = append(supply, p)
		case p.IsNC():
			nc = append(nc, p)
		default:
			signals = append(signals, p)
		}
	}
	sortByName(supply)
	sortByName(ground)

	var left, right []part.Pin
	for _, g := range PairPins(signals) {
		for _, p := range g.Pins {
			switch {
			case positiveMember(p.Name) || p.Type == part.Input:
				left = append(left, p)
			case negativeMember(p.Name) || p.Type == part.Output:
				right = append(right, p)
			case len(left) <= len(right):
				left = append(left, p)
			default:
				right = append(right, p)
			}
		}
	}

	u := place(unit, name, left, right, supply, concat(ground, nc))
	u.PowerOnly = len(signals) == 0 && len(supply)+len(ground) > 0
	return u
}

// place sizes the body and computes pin positions. Pins on each side are
// centred, spaced one grid unit apart, and sit one pin length outside the
// body.
func place(unit int, name string, left, right, top, bottom []part.Pin) UnitLayout {
	side := max(len(left), len(right), 1)
	ends := max(len(top), len(bottom), 1)
	h := ceilGrid(math.Max(float64(side)*PinSpacing+sidePadding, MinBody))
	w := ceilGrid(math.Max(float64(ends)*PinSpacing+endPadding, MinBody))

	u := UnitLayout{Unit: unit, Name: name, Width: w, Height: h}
	u.Left = column(left, Left, -w/2-PinLength)
	u.Right = column(right, Right, w/2+PinLength)
	u.Top = row(top, Top, h/2+PinLength)
	u.Bottom = row(bottom, Bottom, -h/2-PinLength)
	return u
}

func column(pins []part.Pin, s Side, x float64) []PlacedPin {
	out := make([]PlacedPin, len(pins))
	y0 := float64(len(pins)-1) * PinSpacing / 2
	for i, p := range pins {
		out[i] = PlacedPin{Pin: p, Side: s, Position: sexp.Position{X: x, Y: y0 - float64(i)*PinSpacing}}
	}
	return out
}

func row(pins []part.Pin, s Side, y float64) []PlacedPin {
	out := make([]PlacedPin, len(pins))
	x0 := -float64(len(pins)-1) * PinSpacing / 2
	for i, p := range pins {
		out[i] = PlacedPin{Pin: p, Side: s, Position: sexp.Position{X: x0 + float64(i)*PinSpacing, Y: y}}
	}
	return out
}

// ceilGrid rounds v up to the pin grid, ignoring float noise below 1 µm.
func ceilGrid(v float64) float64 {
	return math.Ceil(v/PinSpacing-1e-6) * PinSpacing
}

func sortByNameNumber(pins []part.Pin) {
	sort.SliceStable(pins, func(i, j int) bool {
		if pins[i].Name != pins[j].Name {
			return pins[i].Name < pins[j].Name
		}
		return pins[i].Number < pins[j].Number
	})
}

func sortByName(pins []part.Pin) {
	sort.SliceStable(pins, func(i, j int) bool { return pins[i].Name < pins[j].Name })
}

func concat(lists ...[]part.Pin) []part.Pin {
	var out []part.Pin
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
