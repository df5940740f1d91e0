// Package footprint synthesises KiCad .kicad_mod footprints for gull-wing
// quad packages (QFP) and no-lead packages (QFN, DFN).
//
// Generation is a pure function of the parameters: Generate computes the
// pads, outlines and text labels from scratch and serialises them. The
// Generator type keeps the two-step CalculatePads/Generate workflow for
// callers that want to inspect pads before writing.
package footprint

import (
	"github.com/Ka-zam/KiForge/pkg/kicad/sexp"
	"github.com/Ka-zam/KiForge/pkg/part"
)

// Pad is a copper pad or a thermal via.
type Pad struct {
	Number   string
	Type     part.PadType
	Shape    part.PadShape
	Position sexp.Position
	Rotation float64
	Size     sexp.Size
	Layers   []string

	RoundRectRatio float64
	// Drill is the hole diameter, 0 for surface pads.
	Drill    float64
	Heatsink bool
}

// Bounds returns the axis-aligned extent of the pad.
func (p Pad) Bounds() sexp.BoundingBox {
	bb := sexp.NewBoundingBox()
	bb.ExpandRect(p.Position, p.Size)
	return bb
}

// Line is a straight graphic segment.
type Line struct {
	Start sexp.Position
	End   sexp.Position
	Layer string
	Width float64
}

// Circle is a graphic circle.
type Circle struct {
	Center sexp.Position
	Radius float64
	Layer  string
	Width  float64
	Filled bool
}

// Arc is a graphic arc through three points.
type Arc struct {
	Start sexp.Position
	Mid   sexp.Position
	End   sexp.Position
	Layer string
	Width float64
}

// Text kinds.
const (
	TextReference = "reference"
	TextValue     = "value"
	TextUser      = "user"
)

// Text is a footprint text label.
type Text struct {
	Kind      string
	Text      string
	Position  sexp.Position
	Layer     string
	Size      float64
	Thickness float64
	Hidden    bool
}

// Geometry holds every drawable element of one footprint.
type Geometry struct {
	Pads    []Pad
	Lines   []Line
	Circles []Circle
	Arcs    []Arc
	Texts   []Text
}

// PadsNumbered returns the pads with the given number, in order.
func (g *Geometry) PadsNumbered(number string) []Pad {
	var out []Pad
	for _, p := range g.Pads {
		if p.Number == number {
			out = append(out, p)
		}
	}
	return out
}

// LinesOn returns the lines drawn on layer.
func (g *Geometry) LinesOn(layer string) []Line {
	var out []Line
	for _, l := range g.Lines {
		if l.Layer == layer {
			out = append(out, l)
		}
	}
	return out
}

func padExtent(pads []Pad) sexp.BoundingBox {
	bb := sexp.NewBoundingBox()
	for _, p := range pads {
		bb.ExpandBox(p.Bounds())
	}
	return bb
}

func line(x1, y1, x2, y2 float64, layer string, width float64) Line {
	return Line{
		Start: sexp.Position{X: x1, Y: y1},
		End:   sexp.Position{X: x2, Y: y2},
		Layer: layer,
		Width: width,
	}
}
