package footprint

import (
	"fmt"
	"math"

	"github.com/Ka-zam/KiForge/pkg/kicad/sexp"
	"github.com/Ka-zam/KiForge/pkg/part"
)

// QFN places no-lead terminals on four sides (QFN, VQFN, WQFN) or on the
// left and right sides only (DFN).
type QFN struct{}

func (QFN) Name() string { return "qfn" }

// Pads returns the signal pads. The exposed pad is added by the pipeline.
func (QFN) Pads(p *part.FootprintParams) ([]Pad, error) {
	pkg := p.Package
	if pkg.IsDual() {
		pps, _ := pkg.PinsPerRow()
		if pps == 0 {
			return nil, fmt.Errorf("%w: %s with %d pins", ErrNoPinsPerSide, pkg.Type, pkg.PinCount)
		}
		if n := pkg.SignalPins(); n%2 != 0 {
			return nil, &part.ValidationError{Field: "dual pin count", Value: n, Err: part.ErrPinCount}
		}
		return placeDual(p, pps), nil
	}
	pps, err := quadPinsPerSide(pkg)
	if err != nil {
		return nil, err
	}
	return placeQuad(p, pps), nil
}

// Silkscreen draws corner marks only, since the terminals sit at the body
// edge, plus a dot outside pin 1.
func (QFN) Silkscreen(p *part.FootprintParams) ([]Line, []Circle) {
	pkg := p.Package
	w := p.SilkscreenLineWidth
	hw, hh := pkg.BodyWidth/2, pkg.BodyLength/2
	c := math.Min(1.0, hw*0.3)
	silk := sexp.LayerFrontSilk

	lines := []Line{
		line(-hw, -hh+c, -hw, -hh, silk, w),
		line(-hw, -hh, -hw+c, -hh, silk, w),
		line(hw-c, -hh, hw, -hh, silk, w),
		line(hw, -hh, hw, -hh+c, silk, w),
		line(hw, hh-c, hw, hh, silk, w),
		line(hw, hh, hw-c, hh, silk, w),
		line(-hw+c, hh, -hw, hh, silk, w),
		line(-hw, hh, -hw, hh-c, silk, w),
	}

	pps, ok := pkg.PinsPerSide()
	if !ok {
		pps, ok = pkg.PinsPerRow()
	}
	if !ok || pps == 0 {
		pps = 1
	}
	arrayHalf := float64(pps-1)*pkg.Pitch/2 + p.Pad.Height/2 + p.SilkscreenMargin
	marker := Circle{
		Center: sexp.Position{X: -hw - markerGap, Y: -arrayHalf},
		Radius: markerRadius,
		Layer:  silk,
		Width:  w,
		Filled: true,
	}
	return lines, []Circle{marker}
}
