package footprint

import (
	"fmt"
	"math"
	"time"

	"github.com/Ka-zam/KiForge/pkg/kicad/sexp"
	"github.com/Ka-zam/KiForge/pkg/part"
)

// Text label placement.
const (
	textOffset    = 2.0
	textSize      = 1.0
	textThickness = 0.15
	courtyardGrid = 0.01
)

// Result is the output of one generation run.
type Result struct {
	Text     string
	Geometry Geometry
	// Courtyard is the signal pad extent grown by the courtyard margin.
	Courtyard sexp.BoundingBox
	Family    string
}

// Option configures serialisation.
type Option func(*options)

type options struct {
	ids sexp.IDSource
	now func() time.Time
}

// WithIDSource replaces the random element identifiers.
func WithIDSource(ids sexp.IDSource) Option {
	return func(o *options) { o.ids = ids }
}

// WithClock sets the clock used for the generator_version stamp.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{ids: sexp.NewUUID, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Generate builds the footprint described by params using the family
// matching its package type.
func Generate(params *part.FootprintParams, opts ...Option) (*Result, error) {
	if params == nil || params.Package == nil {
		return nil, fmt.Errorf("footprint: %w", part.ErrEmptyField)
	}
	fam, err := FamilyFor(params.Package.Type)
	if err != nil {
		return nil, err
	}
	return GenerateWith(fam, params, opts...)
}

// GenerateWith runs the pipeline with an explicit family: pads, silkscreen,
// courtyard, fabrication outline, text labels, exposed pad, then text.
// Nothing is serialised when any step fails.
func GenerateWith(fam Family, params *part.FootprintParams, opts ...Option) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("footprint %q: %w", params.Name, err)
	}
	o := buildOptions(opts)

	var g Geometry
	pads, err := fam.Pads(params)
	if err != nil {
		return nil, fmt.Errorf("footprint %q: %w", params.Name, err)
	}
	g.Pads = pads

	silk, marks := fam.Silkscreen(params)
	g.Lines = append(g.Lines, silk...)
	g.Circles = append(g.Circles, marks...)

	courtyard, lines := courtyardOutline(params, g.Pads)
	g.Lines = append(g.Lines, lines...)
	g.Lines = append(g.Lines, fabOutline(params)...)
	g.Texts = labels(params)

	if tp := params.ThermalPad(); tp != nil {
		g.Pads = append(g.Pads, exposedPad(tp)...)
	}

	return &Result{
		Text:      serialize(params, &g, o),
		Geometry:  g,
		Courtyard: courtyard,
		Family:    fam.Name(),
	}, nil
}

// courtyardOutline bounds the pads, grows the box by the margin and snaps
// it to a 0.01 mm grid.
func courtyardOutline(p *part.FootprintParams, pads []Pad) (sexp.BoundingBox, []Line) {
	bb := padExtent(pads)
	if bb.IsEmpty() {
		return bb, nil
	}
	bb = bb.Inflate(p.CourtyardMargin).Snap(courtyardGrid)
	w := p.CourtyardLineWidth
	l := sexp.LayerFrontCourtyard
	return bb, []Line{
		line(bb.Min.X, bb.Min.Y, bb.Max.X, bb.Min.Y, l, w),
		line(bb.Max.X, bb.Min.Y, bb.Max.X, bb.Max.Y, l, w),
		line(bb.Max.X, bb.Max.Y, bb.Min.X, bb.Max.Y, l, w),
		line(bb.Min.X, bb.Max.Y, bb.Min.X, bb.Min.Y, l, w),
	}
}

// fabOutline draws the body with the pin-1 corner chamfered.
func fabOutline(p *part.FootprintParams) []Line {
	hw, hh := p.Package.BodyWidth/2, p.Package.BodyLength/2
	ch := math.Min(1.0, math.Min(hw*0.2, hh*0.2))
	w := p.FabLineWidth
	l := sexp.LayerFrontFab
	return []Line{
		line(-hw+ch, -hh, hw, -hh, l, w),
		line(hw, -hh, hw, hh, l, w),
		line(hw, hh, -hw, hh, l, w),
		line(-hw, hh, -hw, -hh+ch, l, w),
		line(-hw, -hh+ch, -hw+ch, -hh, l, w),
	}
}

func labels(p *part.FootprintParams) []Text {
	y := p.Package.BodyLength/2 + textOffset
	return []Text{
		{
			Kind:      TextReference,
			Text:      "REF**",
			Position:  sexp.Position{Y: -y},
			Layer:     sexp.LayerFrontSilk,
			Size:      textSize,
			Thickness: textThickness,
		},
		{
			Kind:      TextValue,
			Text:      p.Name,
			Position:  sexp.Position{Y: y},
			Layer:     sexp.LayerFrontFab,
			Size:      textSize,
			Thickness: textThickness,
		},
	}
}

// exposedPad returns the centre pad followed by its via grid. Vias are
// spaced width/(count+1) apart, leaving one spacing unit at each edge.
func exposedPad(tp *part.ThermalPad) []Pad {
	ep := Pad{
		Number: tp.Number,
		Type:   part.PadSMD,
		Shape:  part.ShapeRect,
		Size:   sexp.Size{Width: tp.Width, Height: tp.Height},
		Layers: []string{sexp.LayerFrontCopper, sexp.LayerFrontMask},
	}
	if tp.CornerRadius > 0 {
		ep.Shape = part.ShapeRoundRect
		ep.RoundRectRatio = math.Min(0.5, tp.CornerRadius/math.Min(tp.Width, tp.Height))
	}
	pads := []Pad{ep}
	if tp.TotalVias() == 0 {
		return pads
	}

	dx := tp.Width / float64(tp.ViaCountX+1)
	dy := tp.Height / float64(tp.ViaCountY+1)
	x0 := -tp.Width/2 + dx
	y0 := -tp.Height/2 + dy
	for i := 0; i < tp.ViaCountX; i++ {
		for j := 0; j < tp.ViaCountY; j++ {
			pads = append(pads, Pad{
				Number:   tp.Number,
				Type:     part.PadThruHole,
				Shape:    part.ShapeCircle,
				Position: sexp.Position{X: x0 + float64(i)*dx, Y: y0 + float64(j)*dy},
				Size:     sexp.Size{Width: tp.ViaPad, Height: tp.ViaPad},
				Layers:   []string{sexp.LayerAllCopper},
				Drill:    tp.ViaDrill,
				Heatsink: true,
			})
		}
	}
	return pads
}
