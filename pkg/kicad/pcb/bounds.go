package pcb

import (
	"math"

	"github.com/Ka-zam/KiForge/pkg/kicad/sexp"
)

// GetBoundingBox returns the extent of the footprint's pads and graphics.
// Rotated pads use their axis-aligned envelope.
func (fp *Footprint) GetBoundingBox() BoundingBox {
	bbox := NewBoundingBox()

	for _, pad := range fp.Pads {
		w, h := pad.Size.Width, pad.Size.Height
		if a := math.Mod(math.Abs(float64(pad.Position.Angle)), 180); a == 90 {
			w, h = h, w
		}
		bbox.ExpandRect(pad.Position.Position, Size{Width: w, Height: h})
	}

	for _, line := range fp.Graphics.Lines {
		bbox.Expand(line.Start)
		bbox.Expand(line.End)
	}
	for _, circle := range fp.Graphics.Circles {
		r := circle.Radius()
		bbox.Expand(Position{X: circle.Center.X - r, Y: circle.Center.Y - r})
		bbox.Expand(Position{X: circle.Center.X + r, Y: circle.Center.Y + r})
	}
	for _, arc := range fp.Graphics.Arcs {
		// Approximate: the three defining points only.
		bbox.Expand(arc.Start)
		bbox.Expand(arc.Mid)
		bbox.Expand(arc.End)
	}
	for _, rect := range fp.Graphics.Rects {
		bbox.Expand(rect.Start)
		bbox.Expand(rect.End)
	}

	return bbox
}

// LayerBoundingBox returns the extent of the lines drawn on layer.
func (fp *Footprint) LayerBoundingBox(layer string) BoundingBox {
	bbox := NewBoundingBox()
	for _, line := range fp.Graphics.Lines {
		if line.Layer == layer {
			bbox.Expand(line.Start)
			bbox.Expand(line.End)
		}
	}
	return bbox
}

// PadsOn returns the pads present on layer.
func (fp *Footprint) PadsOn(layer string) []Pad {
	var out []Pad
	for _, p := range fp.Pads {
		if p.Layers.Contains(layer) {
			out = append(out, p)
		}
	}
	return out
}

// PadByNumber returns the first pad with the given number.
func (fp *Footprint) PadByNumber(number string) (Pad, bool) {
	for _, p := range fp.Pads {
		if p.Number == number {
			return p, true
		}
	}
	return Pad{}, false
}

// NewBoundingBox creates an empty bounding box.
var NewBoundingBox = sexp.NewBoundingBox
