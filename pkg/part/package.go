package part

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Thermal pad defaults.
const (
	DefaultEPNumber      = "EP"
	DefaultPasteCoverage = 0.5
	DefaultViaCount      = 3
	DefaultViaDrill      = 0.3
	DefaultViaPad        = 0.5
)

// ThermalPad is an exposed pad under the package body, optionally stitched
// to inner layers with a grid of vias.
type ThermalPad struct {
	Width  float64
	Height float64

	// PasteCoverage is the fraction of the pad covered by paste, 0 to 1.
	PasteCoverage float64

	ViaCountX int
	ViaCountY int
	ViaDrill  float64
	ViaPad    float64

	CornerRadius float64
	Number       string
}

// NewThermalPad returns a validated pad of the given size with a 3x3 via
// grid and the other defaults filled in.
func NewThermalPad(width, height float64) (*ThermalPad, error) {
	tp := &ThermalPad{
		Width:         width,
		Height:        height,
		PasteCoverage: DefaultPasteCoverage,
		ViaCountX:     DefaultViaCount,
		ViaCountY:     DefaultViaCount,
		ViaDrill:      DefaultViaDrill,
		ViaPad:        DefaultViaPad,
		Number:        DefaultEPNumber,
	}
	if err := tp.Validate(); err != nil {
		return nil, err
	}
	return tp, nil
}

// Validate checks field constraints.
func (t *ThermalPad) Validate() error {
	if err := positive("thermal pad width", t.Width); err != nil {
		return err
	}
	if err := positive("thermal pad height", t.Height); err != nil {
		return err
	}
	if t.PasteCoverage < 0 || t.PasteCoverage > 1 {
		return invalid("thermal pad paste coverage", t.PasteCoverage, ErrRatioRange)
	}
	if t.ViaCountX < 0 {
		return invalid("thermal pad via count x", t.ViaCountX, ErrOutOfRange)
	}
	if t.ViaCountY < 0 {
		return invalid("thermal pad via count y", t.ViaCountY, ErrOutOfRange)
	}
	if err := positive("thermal via drill", t.ViaDrill); err != nil {
		return err
	}
	if err := positive("thermal via pad", t.ViaPad); err != nil {
		return err
	}
	if err := optionalPositive("thermal pad corner radius", t.CornerRadius); err != nil {
		return err
	}
	if strings.TrimSpace(t.Number) == "" {
		return invalid("thermal pad number", t.Number, ErrEmptyField)
	}
	return nil
}

// Area returns the pad area in mm².
func (t *ThermalPad) Area() float64 { return t.Width * t.Height }

// TotalVias returns the number of vias in the grid.
func (t *ThermalPad) TotalVias() int { return t.ViaCountX * t.ViaCountY }

// Package describes the physical outline of an IC package.
//
// PinCount includes the exposed pad when ThermalPad is set. Optional
// lengths are zero when unknown.
type Package struct {
	Type       PackageType
	Name       string
	PinCount   int
	Pitch      float64
	BodyWidth  float64
	BodyLength float64
	BodyHeight float64

	LeadWidth  float64
	LeadLength float64
	LeadSpan   float64

	ThermalPad *ThermalPad

	BallDiameter float64
	BallPattern  BallPattern
	BallRows     int
	BallColumns  int
	Depopulated  []string

	ManufacturerCode string
}

// NewPackage validates p and returns a copy. An empty name is replaced by
// the IPC name.
func NewPackage(p Package) (*Package, error) {
	pkg := p
	if pkg.ThermalPad != nil {
		tp := *pkg.ThermalPad
		pkg.ThermalPad = &tp
	}
	pkg.Depopulated = append([]string(nil), p.Depopulated...)
	if strings.TrimSpace(pkg.Name) == "" && pkg.Type.Valid() {
		pkg.Name = pkg.IPCName()
	}
	if err := pkg.Validate(); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Validate checks field constraints. Side divisibility is not checked
// here; see NewFootprintParams.
func (p *Package) Validate() error {
	if !p.Type.Valid() {
		return invalid("package type", p.Type, ErrUnknownValue)
	}
	if strings.TrimSpace(p.Name) == "" {
		return invalid("package name", p.Name, ErrEmptyField)
	}
	if p.PinCount <= 0 {
		return invalid("pin count", p.PinCount, ErrOutOfRange)
	}
	for _, d := range []struct {
		field string
		v     float64
	}{
		{"pitch", p.Pitch},
		{"body width", p.BodyWidth},
		{"body length", p.BodyLength},
		{"body height", p.BodyHeight},
	} {
		if err := positive(d.field, d.v); err != nil {
			return err
		}
	}
	for _, d := range []struct {
		field string
		v     float64
	}{
		{"lead width", p.LeadWidth},
		{"lead length", p.LeadLength},
		{"lead span", p.LeadSpan},
		{"ball diameter", p.BallDiameter},
	} {
		if err := optionalPositive(d.field, d.v); err != nil {
			return err
		}
	}
	if p.BallRows < 0 || p.BallColumns < 0 {
		return invalid("ball grid", fmt.Sprintf("%dx%d", p.BallRows, p.BallColumns), ErrOutOfRange)
	}
	if p.ThermalPad != nil {
		if err := p.ThermalPad.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// HasThermalPad reports whether the package has an exposed pad.
func (p *Package) HasThermalPad() bool { return p.ThermalPad != nil }

func (p *Package) IsLeaded() bool   { return p.Type.IsLeaded() }
func (p *Package) IsLeadless() bool { return p.Type.IsLeadless() }
func (p *Package) IsBGA() bool      { return p.Type.IsBGA() }
func (p *Package) IsQuad() bool     { return p.Type.IsQuad() }
func (p *Package) IsDual() bool     { return p.Type.IsDual() }

// SignalPins returns the pin count without the exposed pad.
func (p *Package) SignalPins() int {
	if p.HasThermalPad() {
		return p.PinCount - 1
	}
	return p.PinCount
}

// PinsPerSide returns the pins on each side of a quad package.
func (p *Package) PinsPerSide() (int, bool) {
	if !p.IsQuad() {
		return 0, false
	}
	return p.SignalPins() / 4, true
}

// PinsPerRow returns the pins in each row of a dual package.
func (p *Package) PinsPerRow() (int, bool) {
	if !p.IsDual() {
		return 0, false
	}
	return p.SignalPins() / 2, true
}

// IPCName builds the IPC-7351 style footprint name, for example
// QFN-32-1EP_5.0x5.0mm_P0.5mm_EP3.1x3.1mm. The pin field counts signal
// pins only.
func (p *Package) IPCName() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s-%d", p.Type, p.SignalPins())
	if p.HasThermalPad() {
		b.WriteString("-1EP")
	}
	fmt.Fprintf(&b, "_%sx%smm_P%smm", FormatDim(p.BodyWidth), FormatDim(p.BodyLength), FormatDim(p.Pitch))
	if tp := p.ThermalPad; tp != nil {
		fmt.Fprintf(&b, "_EP%sx%smm", FormatDim(tp.Width), FormatDim(tp.Height))
	}
	return b.String()
}

// FormatDim formats a dimension rounded to 0.1 µm in shortest form with
// at least one decimal: 5 → "5.0", 0.65 → "0.65".
func FormatDim(v float64) string {
	s := strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

var rowLetters = func() []byte {
	var out []byte
	for c := byte('A'); c <= 'Z'; c++ {
		if !strings.ContainsRune("IOQSXZ", rune(c)) {
			out = append(out, c)
		}
	}
	return out
}()

// RowLetter converts a zero-based ball row index to its JEDEC letter,
// skipping I, O, Q, S, X and Z. Rows past Y continue AA, AB, ...
func RowLetter(i int) string {
	n := len(rowLetters)
	if i < 0 || i >= n*(n+1) {
		return ""
	}
	if i < n {
		return string(rowLetters[i])
	}
	return string([]byte{rowLetters[i/n-1], rowLetters[i%n]})
}
