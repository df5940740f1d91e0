package footprint

import (
	"fmt"

	"github.com/Ka-zam/KiForge/pkg/kicad/sexp"
	"github.com/Ka-zam/KiForge/pkg/part"
)

// Family places the signal pads and draws the silkscreen of one package
// shape. QFP and QFN are the only implementations.
type Family interface {
	Name() string
	Pads(p *part.FootprintParams) ([]Pad, error)
	Silkscreen(p *part.FootprintParams) ([]Line, []Circle)
}

// FamilyFor returns the family generating footprints for t.
func FamilyFor(t part.PackageType) (Family, error) {
	switch t {
	case part.QFP, part.LQFP, part.TQFP, part.VQFP:
		return QFP{}, nil
	case part.QFN, part.VQFN, part.WQFN, part.DFN:
		return QFN{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFamily, t)
}

// Pin-1 marker dot.
const (
	markerRadius = 0.2
	markerGap    = 0.5
)

func signalPad(p *part.FootprintParams, number int, x, y float64, vertical bool) Pad {
	size := sexp.Size{Width: p.Pad.Width, Height: p.Pad.Height}
	if vertical {
		size.Width, size.Height = size.Height, size.Width
	}
	return Pad{
		Number:         fmt.Sprint(number),
		Type:           p.PadType,
		Shape:          p.Pad.Shape,
		Position:       sexp.Position{X: x, Y: y},
		Size:           size,
		Layers:         padLayers(p.PadType),
		RoundRectRatio: p.Pad.CornerRatio,
	}
}

func padLayers(t part.PadType) []string {
	switch t {
	case part.PadThruHole, part.PadNPThruHole:
		return []string{sexp.LayerAllCopper, sexp.LayerAllMask}
	case part.PadConnect:
		return []string{sexp.LayerFrontCopper, sexp.LayerFrontMask}
	}
	return sexp.SMDPadLayers()
}

// placeQuad lays out pps pads per side counter-clockwise from the top of
// the left side. Top and bottom pads are rotated by swapping their size.
func placeQuad(p *part.FootprintParams, pps int) []Pad {
	pitch := p.Package.Pitch
	start := -float64(pps-1) * pitch / 2
	fwd := func(i int) float64 { return start + float64(i)*pitch }
	rev := func(i int) float64 { return fwd(pps - 1 - i) }
	cx, cy := p.PadCenterX, p.PadCenterY

	pads := make([]Pad, 0, 4*pps)
	for i := 0; i < pps; i++ {
		pads = append(pads, signalPad(p, len(pads)+1, -cx, fwd(i), false))
	}
	for i := 0; i < pps; i++ {
		pads = append(pads, signalPad(p, len(pads)+1, fwd(i), cy, true))
	}
	for i := 0; i < pps; i++ {
		pads = append(pads, signalPad(p, len(pads)+1, cx, rev(i), false))
	}
	for i := 0; i < pps; i++ {
		pads = append(pads, signalPad(p, len(pads)+1, rev(i), -cy, true))
	}
	return pads
}

// placeDual lays out pps pads down the left side and back up the right.
func placeDual(p *part.FootprintParams, pps int) []Pad {
	pitch := p.Package.Pitch
	start := -float64(pps-1) * pitch / 2
	cx := p.PadCenterX

	pads := make([]Pad, 0, 2*pps)
	for i := 0; i < pps; i++ {
		pads = append(pads, signalPad(p, len(pads)+1, -cx, start+float64(i)*pitch, false))
	}
	for i := 0; i < pps; i++ {
		pads = append(pads, signalPad(p, len(pads)+1, cx, start+float64(pps-1-i)*pitch, false))
	}
	return pads
}

func quadPinsPerSide(pkg *part.Package) (int, error) {
	pps, ok := pkg.PinsPerSide()
	if !ok || pps == 0 {
		return 0, fmt.Errorf("%w: %s with %d pins", ErrNoPinsPerSide, pkg.Type, pkg.PinCount)
	}
	if n := pkg.SignalPins(); n%4 != 0 {
		return 0, &part.ValidationError{Field: "quad pin count", Value: n, Err: part.ErrPinCount}
	}
	return pps, nil
}
