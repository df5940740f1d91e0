package footprint

import (
	"github.com/Ka-zam/KiForge/pkg/kicad/sexp"
	"github.com/Ka-zam/KiForge/pkg/part"
)

// QFP places gull-wing pads on four sides (QFP, LQFP, TQFP, VQFP).
type QFP struct{}

func (QFP) Name() string { return "qfp" }

// Pads returns the signal pads numbered 1..N counter-clockwise.
func (QFP) Pads(p *part.FootprintParams) ([]Pad, error) {
	pps, err := quadPinsPerSide(p.Package)
	if err != nil {
		return nil, err
	}
	return placeQuad(p, pps), nil
}

// Silkscreen draws the body corners up to the clearance around the pad
// rows, plus a dot outside pin 1. A side whose pad row is wider than the
// body gets no corner segment.
func (QFP) Silkscreen(p *part.FootprintParams) ([]Line, []Circle) {
	pkg := p.Package
	w := p.SilkscreenLineWidth
	silk := sexp.LayerFrontSilk
	hw, hh := pkg.BodyWidth/2, pkg.BodyLength/2

	pps, ok := pkg.PinsPerSide()
	if !ok || pps == 0 {
		pps = 1
	}
	arrayHalf := float64(pps-1)*pkg.Pitch/2 + p.Pad.Height/2 + p.SilkscreenMargin

	var lines []Line
	if hw > arrayHalf {
		lines = append(lines,
			line(-hw, -hh, -arrayHalf, -hh, silk, w),
			line(arrayHalf, -hh, hw, -hh, silk, w),
			line(-hw, hh, -arrayHalf, hh, silk, w),
			line(arrayHalf, hh, hw, hh, silk, w),
		)
	}
	if hh > arrayHalf {
		lines = append(lines,
			line(-hw, -hh, -hw, -arrayHalf, silk, w),
			line(-hw, arrayHalf, -hw, hh, silk, w),
			line(hw, -hh, hw, -arrayHalf, silk, w),
			line(hw, arrayHalf, hw, hh, silk, w),
		)
	}

	marker := Circle{
		Center: sexp.Position{X: -p.PadCenterX - p.Pad.Width/2 - markerGap, Y: -arrayHalf},
		Radius: markerRadius,
		Layer:  silk,
		Width:  w,
		Filled: true,
	}
	return lines, []Circle{marker}
}
