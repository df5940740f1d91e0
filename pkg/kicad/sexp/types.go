// Package sexp holds the pieces shared by the footprint and symbol
// generators and by the readers: value types, layer and keyword literals,
// number formatting, the document Writer, and navigation helpers over
// parsed trees.
package sexp

import "math"

// Position is a 2D coordinate in millimetres. KiCad's Y axis points down.
type Position struct {
	X float64
	Y float64
}

// Angle is a rotation in degrees.
type Angle float64

// PositionAngle combines position with rotation
type PositionAngle struct {
	Position
	Angle Angle
}

// Size represents dimensions in millimetres.
type Size struct {
	Width  float64
	Height float64
}

// Stroke defines line appearance
type Stroke struct {
	Width float64
	Type  string // solid, default, dash...
}

// Fill defines area fill
type Fill struct {
	Type string // none, solid, background, outline
}

// BoundingBox represents a rectangular boundary
type BoundingBox struct {
	Min Position // top-left corner
	Max Position // bottom-right corner
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Position{X: math.Inf(1), Y: math.Inf(1)},
		Max: Position{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// IsEmpty checks if the bounding box is empty
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Contains checks if a position is within the bounding box
func (bb BoundingBox) Contains(pos Position) bool {
	return pos.X >= bb.Min.X && pos.X <= bb.Max.X &&
		pos.Y >= bb.Min.Y && pos.Y <= bb.Max.Y
}

// Expand expands the bounding box to include a position
func (bb *BoundingBox) Expand(pos Position) {
	bb.Min.X = math.Min(bb.Min.X, pos.X)
	bb.Min.Y = math.Min(bb.Min.Y, pos.Y)
	bb.Max.X = math.Max(bb.Max.X, pos.X)
	bb.Max.Y = math.Max(bb.Max.Y, pos.Y)
}

// ExpandRect includes the axis-aligned rectangle of size s centred at c.
func (bb *BoundingBox) ExpandRect(c Position, s Size) {
	bb.Expand(Position{X: c.X - s.Width/2, Y: c.Y - s.Height/2})
	bb.Expand(Position{X: c.X + s.Width/2, Y: c.Y + s.Height/2})
}

// ExpandBox expands to include another bounding box
func (bb *BoundingBox) ExpandBox(other BoundingBox) {
	if !other.IsEmpty() {
		bb.Expand(other.Min)
		bb.Expand(other.Max)
	}
}

// Inflate returns the box grown by margin on every side.
func (bb BoundingBox) Inflate(margin float64) BoundingBox {
	if bb.IsEmpty() {
		return bb
	}
	return BoundingBox{
		Min: Position{X: bb.Min.X - margin, Y: bb.Min.Y - margin},
		Max: Position{X: bb.Max.X + margin, Y: bb.Max.Y + margin},
	}
}

// Snap rounds every edge to the nearest multiple of grid.
func (bb BoundingBox) Snap(grid float64) BoundingBox {
	if bb.IsEmpty() {
		return bb
	}
	return BoundingBox{
		Min: Position{X: RoundTo(bb.Min.X, grid), Y: RoundTo(bb.Min.Y, grid)},
		Max: Position{X: RoundTo(bb.Max.X, grid), Y: RoundTo(bb.Max.Y, grid)},
	}
}

// Width returns the width of the bounding box
func (bb BoundingBox) Width() float64 {
	return bb.Max.X - bb.Min.X
}

// Height returns the height of the bounding box
func (bb BoundingBox) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the center point of the bounding box
func (bb BoundingBox) Center() Position {
	return Position{
		X: (bb.Min.X + bb.Max.X) / 2.0,
		Y: (bb.Min.Y + bb.Max.Y) / 2.0,
	}
}

// RoundTo rounds v to the nearest multiple of grid.
func RoundTo(v, grid float64) float64 {
	return math.Round(v/grid) * grid
}

// UUID is the per-element identifier written by KiCad 6 and later.
type UUID string

// Effects represents text effects
type Effects struct {
	Font    Font
	Justify Justify
	Hide    bool
}

// Font represents font properties
type Font struct {
	Size      Size
	Thickness float64
	Bold      bool
	Italic    bool
}

// Justify represents text justification
type Justify struct {
	Horizontal string // left, center, right
	Vertical   string // top, center, bottom
	Mirror     bool
}

// Property represents a key-value property of a symbol or footprint.
type Property struct {
	Key      string
	Value    string
	Position PositionAngle
	Effects  Effects
}

// GrLine represents a line graphic element
type GrLine struct {
	Start  Position
	End    Position
	Stroke Stroke
	Layer  string
	UUID   UUID
}

// GrCircle is defined by its center and a point on the circumference.
type GrCircle struct {
	Center Position
	End    Position
	Stroke Stroke
	Fill   Fill
	Layer  string
	UUID   UUID
}

// Radius returns the distance from center to the circumference point.
func (c GrCircle) Radius() float64 {
	return math.Hypot(c.End.X-c.Center.X, c.End.Y-c.Center.Y)
}

// GrArc is defined by three points on the arc.
type GrArc struct {
	Start  Position
	Mid    Position
	End    Position
	Stroke Stroke
	Layer  string
	UUID   UUID
}

// GrRect represents a rectangle graphic element
type GrRect struct {
	Start  Position
	End    Position
	Stroke Stroke
	Fill   Fill
}

// GrText represents a free text graphic element
type GrText struct {
	Text     string
	Position PositionAngle
	Effects  Effects
}
