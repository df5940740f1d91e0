// Package pcb reads KiCad footprint library files (.kicad_mod).
package pcb

import (
	"github.com/Ka-zam/KiForge/pkg/kicad/sexp"
)

// Shared types (aliases to sexp package)
type Position = sexp.Position
type Angle = sexp.Angle
type PositionAngle = sexp.PositionAngle
type Size = sexp.Size
type Stroke = sexp.Stroke
type Fill = sexp.Fill
type BoundingBox = sexp.BoundingBox
type UUID = sexp.UUID

// LayerSet represents a set of layers
type LayerSet []string

// Contains reports whether the set names layer. Wildcards such as "*.Cu"
// match every layer with the same suffix.
func (ls LayerSet) Contains(layer string) bool {
	for _, l := range ls {
		if l == layer {
			return true
		}
		if len(l) > 1 && l[0] == '*' && len(layer) >= len(l)-1 && layer[len(layer)-(len(l)-1):] == l[1:] {
			return true
		}
	}
	return false
}

// Footprint is one parsed library footprint.
type Footprint struct {
	Name        string
	Library     string
	Layer       string
	Description string
	Tags        string
	Attr        string
	sexp.Header

	Texts    []Text
	Graphics Graphics
	Pads     []Pad
	Models   []Model
}

// Pad represents a pad or thermal via of a footprint.
type Pad struct {
	Number         string
	Type           string // thru_hole, smd, connect, np_thru_hole
	Shape          string // circle, rect, oval, roundrect, trapezoid, custom
	Position       PositionAngle
	Size           Size
	Drill          float64
	Layers         LayerSet
	RoundRectRatio float64
	Properties     []string
	UUID           UUID
}

// IsHeatsink reports whether the pad carries the heatsink fabrication
// property.
func (p Pad) IsHeatsink() bool {
	for _, prop := range p.Properties {
		if prop == sexp.HeatsinkPadTag {
			return true
		}
	}
	return false
}

// Graphics holds the fp_* drawing primitives of a footprint.
type Graphics struct {
	Lines   []sexp.GrLine
	Circles []sexp.GrCircle
	Arcs    []sexp.GrArc
	Rects   []sexp.GrRect
}

// Len returns the number of primitives.
func (g Graphics) Len() int {
	return len(g.Lines) + len(g.Circles) + len(g.Arcs) + len(g.Rects)
}

// Text is an fp_text label.
type Text struct {
	Kind     string // reference, value, user
	Text     string
	Position PositionAngle
	Layer    string
	Hidden   bool
	Effects  sexp.Effects
}

// Model is a 3D model reference.
type Model struct {
	Path     string
	Offset   [3]float64
	Scale    [3]float64
	Rotation [3]float64
}
