package designator

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Ka-zam/KiForge/pkg/footprint"
	"github.com/Ka-zam/KiForge/pkg/part"
)

// ErrUnsupportedFamily is returned when a name parses but its family has no
// footprint generator.
var ErrUnsupportedFamily = errors.New("unsupported package family")

// Package holds the figures encoded in a package name. Dimensions are in
// millimetres; zero means the name did not carry the value.
type Package struct {
	Family      part.PackageType
	Pins        int
	ExposedPads int
	BodyW       float64
	BodyL       float64
	BodyH       float64
	Pitch       float64
	EPW         float64
	EPL         float64

	// Suffixes are trailing name fields the parser does not interpret,
	// such as ThermalVias.
	Suffixes []string
}

// Parse reads a package name. The family must be a known package type.
func Parse(name string) (*Package, error) {
	d, err := parser.ParseString("", strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("designator %q: %w", name, err)
	}
	family, err := part.ParsePackageType(d.Family)
	if err != nil {
		return nil, fmt.Errorf("designator %q: %w", name, err)
	}

	p := &Package{
		Family:   family,
		Pins:     d.Pins,
		BodyW:    d.Body.W,
		BodyL:    d.Body.L,
		Pitch:    d.Pitch,
		Suffixes: d.Suffixes,
	}
	if d.Body.H != nil {
		p.BodyH = *d.Body.H
	}
	if d.Exposed != nil {
		p.ExposedPads = *d.Exposed
	}
	if d.EP != nil {
		p.EPW, p.EPL = d.EP.W, d.EP.L
		if p.ExposedPads == 0 {
			p.ExposedPads = 1
		}
	}
	if p.Pins <= 0 {
		return nil, fmt.Errorf("designator %q: %w", name, &part.ValidationError{Field: "pin count", Value: p.Pins, Err: part.ErrOutOfRange})
	}
	return p, nil
}

// HasExposedPad reports whether the name declares an exposed pad.
func (p *Package) HasExposedPad() bool { return p.ExposedPads > 0 }

// String formats the canonical name, for example
// QFN-32-1EP_5.0x5.0mm_P0.5mm_EP3.1x3.1mm.
func (p *Package) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s-%d", p.Family, p.Pins)
	if p.HasExposedPad() {
		fmt.Fprintf(&b, "-%dEP", p.ExposedPads)
	}
	fmt.Fprintf(&b, "_%sx%s", part.FormatDim(p.BodyW), part.FormatDim(p.BodyL))
	if p.BodyH > 0 {
		fmt.Fprintf(&b, "x%s", part.FormatDim(p.BodyH))
	}
	fmt.Fprintf(&b, "mm_P%smm", part.FormatDim(p.Pitch))
	if p.EPW > 0 {
		fmt.Fprintf(&b, "_EP%sx%smm", part.FormatDim(p.EPW), part.FormatDim(p.EPL))
	}
	for _, s := range p.Suffixes {
		b.WriteString("_" + s)
	}
	return b.String()
}

// Default heights used when the name carries none.
const (
	defaultLeadedHeight   = 1.4
	defaultLeadlessHeight = 0.9
	defaultEPRatio        = 0.6
)

// Part builds the package model. A missing body height takes the family
// default and an exposed pad without a size gets 60% of the smaller body
// side.
func (p *Package) Part() (*part.Package, error) {
	h := p.BodyH
	if h == 0 {
		h = defaultLeadedHeight
		if p.Family.IsLeadless() {
			h = defaultLeadlessHeight
		}
	}
	pkg := part.Package{
		Type:       p.Family,
		PinCount:   p.Pins,
		Pitch:      p.Pitch,
		BodyWidth:  p.BodyW,
		BodyLength: p.BodyL,
		BodyHeight: h,
	}
	if p.HasExposedPad() {
		w, l := p.EPW, p.EPL
		if w == 0 {
			w = math.Round(math.Min(p.BodyW, p.BodyL)*defaultEPRatio*100) / 100
			l = w
		}
		tp, err := part.NewThermalPad(w, l)
		if err != nil {
			return nil, err
		}
		pkg.ThermalPad = tp
		pkg.PinCount++
	}
	return part.NewPackage(pkg)
}

// QFP converts a gull-wing quad name into footprint options.
func (p *Package) QFP() (footprint.QFPOptions, error) {
	switch p.Family {
	case part.QFP, part.LQFP, part.TQFP, part.VQFP:
	default:
		return footprint.QFPOptions{}, fmt.Errorf("%s as QFP: %w", p.Family, ErrUnsupportedFamily)
	}
	return footprint.QFPOptions{
		Pins:       p.Pins,
		Pitch:      p.Pitch,
		BodyWidth:  p.BodyW,
		BodyLength: p.BodyL,
		BodyHeight: p.BodyH,
		Variant:    string(p.Family),
	}, nil
}

// QFN converts a no-lead name into footprint options. A name without an
// exposed pad size gets the default pad.
func (p *Package) QFN() (footprint.QFNOptions, error) {
	if !p.Family.IsLeadless() {
		return footprint.QFNOptions{}, fmt.Errorf("%s as QFN: %w", p.Family, ErrUnsupportedFamily)
	}
	return footprint.QFNOptions{
		Pins:             p.Pins,
		Pitch:            p.Pitch,
		BodyWidth:        p.BodyW,
		BodyLength:       p.BodyL,
		BodyHeight:       p.BodyH,
		ThermalPadSize:   p.EPW,
		ThermalPadLength: p.EPL,
		Variant:          string(p.Family),
	}, nil
}

// Create generates the footprint text for the name.
func (p *Package) Create(opts ...footprint.Option) (string, error) {
	switch {
	case p.Family.IsLeadless():
		o, err := p.QFN()
		if err != nil {
			return "", err
		}
		return footprint.CreateQFN(o, opts...)
	case p.Family.IsQuad():
		o, err := p.QFP()
		if err != nil {
			return "", err
		}
		return footprint.CreateQFP(o, opts...)
	}
	return "", fmt.Errorf("%s: %w", p.Family, ErrUnsupportedFamily)
}
