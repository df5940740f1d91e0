package part

import (
	"fmt"
	"strings"
)

// Footprint parameter defaults, in millimetres.
const (
	DefaultLibrary             = "KiForge"
	DefaultCornerRatio         = 0.25
	DefaultCourtyardMargin     = 0.25
	DefaultCourtyardLineWidth  = 0.05
	DefaultSilkscreenMargin    = 0.15
	DefaultSilkscreenLineWidth = 0.12
	DefaultFabLineWidth        = 0.1
)

// PadDimensions is the nominal size and shape of a signal pad. Width runs
// along the pad's lead axis on the left and right sides.
type PadDimensions struct {
	Width       float64
	Height      float64
	Shape       PadShape
	CornerRatio float64
}

// NewPadDimensions returns a rounded-rectangle pad with the default corner
// ratio.
func NewPadDimensions(width, height float64) (PadDimensions, error) {
	d := PadDimensions{
		Width:       width,
		Height:      height,
		Shape:       ShapeRoundRect,
		CornerRatio: DefaultCornerRatio,
	}
	return d, d.Validate()
}

// Validate checks field constraints.
func (d PadDimensions) Validate() error {
	if err := positive("pad width", d.Width); err != nil {
		return err
	}
	if err := positive("pad height", d.Height); err != nil {
		return err
	}
	if !d.Shape.Valid() {
		return invalid("pad shape", d.Shape, ErrUnknownValue)
	}
	if d.CornerRatio < 0 || d.CornerRatio > 0.5 {
		return invalid("pad corner ratio", d.CornerRatio, ErrRatioRange)
	}
	return nil
}

// Vec3 is an (x, y, z) triple.
type Vec3 struct{ X, Y, Z float64 }

// Model3D references an external 3D model. Offset is in millimetres and
// Rotation in degrees.
type Model3D struct {
	Path     string
	Offset   Vec3
	Rotation Vec3
	Scale    Vec3
}

// NewModel3D returns a model reference at the origin with unit scale.
func NewModel3D(path string) *Model3D {
	return &Model3D{Path: path, Scale: Vec3{1, 1, 1}}
}

// FootprintParams carries everything the footprint engine needs.
type FootprintParams struct {
	Name        string
	Library     string
	Description string
	Tags        []string

	Package *Package
	Pad     PadDimensions
	PadType PadType

	// Distance from the origin to the pad centres of the left/right and
	// top/bottom rows.
	PadCenterX float64
	PadCenterY float64

	CourtyardMargin     float64
	CourtyardLineWidth  float64
	SilkscreenMargin    float64
	SilkscreenLineWidth float64
	FabLineWidth        float64

	// ThermalPadOverride replaces the package's exposed pad when set.
	ThermalPadOverride *ThermalPad

	Model *Model3D
}

// ParamOption configures optional footprint parameters.
type ParamOption func(*FootprintParams)

// WithLibrary sets the library nickname used by FullName.
func WithLibrary(lib string) ParamOption {
	return func(p *FootprintParams) { p.Library = lib }
}

// WithFootprintDescription sets the descr header entry.
func WithFootprintDescription(descr string) ParamOption {
	return func(p *FootprintParams) { p.Description = descr }
}

// WithTags sets the search tags.
func WithTags(tags ...string) ParamOption {
	return func(p *FootprintParams) { p.Tags = append([]string(nil), tags...) }
}

// WithPadType sets the pad type of the signal pads.
func WithPadType(t PadType) ParamOption {
	return func(p *FootprintParams) { p.PadType = t }
}

// WithCourtyard sets the courtyard margin and line width.
func WithCourtyard(margin, lineWidth float64) ParamOption {
	return func(p *FootprintParams) {
		p.CourtyardMargin = margin
		p.CourtyardLineWidth = lineWidth
	}
}

// WithSilkscreen sets the silkscreen clearance and line width.
func WithSilkscreen(margin, lineWidth float64) ParamOption {
	return func(p *FootprintParams) {
		p.SilkscreenMargin = margin
		p.SilkscreenLineWidth = lineWidth
	}
}

// WithFabLineWidth sets the fabrication outline width.
func WithFabLineWidth(w float64) ParamOption {
	return func(p *FootprintParams) { p.FabLineWidth = w }
}

// WithCornerRatio sets the roundrect ratio of the signal pads.
func WithCornerRatio(r float64) ParamOption {
	return func(p *FootprintParams) { p.Pad.CornerRatio = r }
}

// WithThermalVias sets the via grid of the exposed pad, if there is one.
// The package's pad is copied, not modified.
func WithThermalVias(countX, countY int, drill, pad float64) ParamOption {
	return func(p *FootprintParams) {
		tp := p.ThermalPad()
		if tp == nil {
			return
		}
		c := *tp
		c.ViaCountX, c.ViaCountY = countX, countY
		c.ViaDrill, c.ViaPad = drill, pad
		p.ThermalPadOverride = &c
	}
}

// WithThermalPadOverride replaces the package's exposed pad.
func WithThermalPadOverride(tp *ThermalPad) ParamOption {
	return func(p *FootprintParams) { p.ThermalPadOverride = tp }
}

// WithModel attaches a 3D model reference.
func WithModel(m *Model3D) ParamOption {
	return func(p *FootprintParams) { p.Model = m }
}

// NewFootprintParams validates the parameters and checks that the signal
// pin count divides evenly over the package family's sides.
func NewFootprintParams(name string, pkg *Package, pad PadDimensions, centerX, centerY float64, opts ...ParamOption) (*FootprintParams, error) {
	p := &FootprintParams{
		Name:                strings.TrimSpace(name),
		Library:             DefaultLibrary,
		Package:             pkg,
		Pad:                 pad,
		PadType:             PadSMD,
		PadCenterX:          centerX,
		PadCenterY:          centerY,
		CourtyardMargin:     DefaultCourtyardMargin,
		CourtyardLineWidth:  DefaultCourtyardLineWidth,
		SilkscreenMargin:    DefaultSilkscreenMargin,
		SilkscreenLineWidth: DefaultSilkscreenLineWidth,
		FabLineWidth:        DefaultFabLineWidth,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks field constraints and side divisibility.
func (p *FootprintParams) Validate() error {
	if p.Name == "" {
		return invalid("footprint name", p.Name, ErrEmptyField)
	}
	if p.Package == nil {
		return invalid("package", nil, ErrEmptyField)
	}
	if err := p.Package.Validate(); err != nil {
		return err
	}
	if err := p.Pad.Validate(); err != nil {
		return err
	}
	if !p.PadType.Valid() {
		return invalid("pad type", p.PadType, ErrUnknownValue)
	}
	for _, d := range []struct {
		field string
		v     float64
	}{
		{"pad center x", p.PadCenterX},
		{"pad center y", p.PadCenterY},
		{"courtyard margin", p.CourtyardMargin},
		{"courtyard line width", p.CourtyardLineWidth},
		{"silkscreen margin", p.SilkscreenMargin},
		{"silkscreen line width", p.SilkscreenLineWidth},
		{"fab line width", p.FabLineWidth},
	} {
		if err := positive(d.field, d.v); err != nil {
			return err
		}
	}
	if p.ThermalPadOverride != nil {
		if err := p.ThermalPadOverride.Validate(); err != nil {
			return err
		}
	}
	if sides := p.Package.Type.Sides(); sides > 0 {
		if n := p.Package.SignalPins(); n%sides != 0 {
			return invalid(fmt.Sprintf("%s pin count", p.Package.Type), n, fmt.Errorf("%w (%d sides)", ErrPinCount, sides))
		}
	}
	return nil
}

// ThermalPad returns the effective exposed pad: the override when set,
// else the package's pad, else nil.
func (p *FootprintParams) ThermalPad() *ThermalPad {
	if p.ThermalPadOverride != nil {
		return p.ThermalPadOverride
	}
	return p.Package.ThermalPad
}

// HasThermalPad reports whether an exposed pad will be emitted.
func (p *FootprintParams) HasThermalPad() bool { return p.ThermalPad() != nil }

// FullName returns the library-qualified footprint name.
func (p *FootprintParams) FullName() string {
	return p.Library + ":" + p.Name
}
