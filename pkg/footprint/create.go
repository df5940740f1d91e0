package footprint

import (
	"fmt"
	"math"
	"strings"

	"github.com/Ka-zam/KiForge/pkg/part"
)

// QFPOptions are the raw package figures for CreateQFP. Zero values take
// the documented defaults.
type QFPOptions struct {
	Pins       int
	Pitch      float64
	BodyWidth  float64
	BodyLength float64 // defaults to BodyWidth
	// LeadSpan is the tip-to-tip lead distance; defaults to the larger
	// body side plus 2 mm.
	LeadSpan   float64
	BodyHeight float64 // defaults to 1.4
	LeadWidth  float64 // defaults to 0.6 × pitch
	Variant    string  // QFP, LQFP, TQFP or VQFP; anything else is LQFP

	// Params are applied to the footprint parameters, after the computed
	// name, description and tags.
	Params []part.ParamOption
}

// QFNOptions are the raw package figures for CreateQFN.
type QFNOptions struct {
	Pins           int // signal pins, without the exposed pad
	Pitch          float64
	BodyWidth      float64
	BodyLength     float64 // defaults to BodyWidth
	BodyHeight     float64 // defaults to 0.9
	TerminalLength float64 // defaults to 0.4
	TerminalWidth  float64 // defaults to 0.55 × pitch
	ThermalPadSize float64 // defaults to 0.6 × the smaller body side

	// ThermalPadLength is the pad's Y size; defaults to ThermalPadSize.
	ThermalPadLength float64
	Variant          string // QFN, VQFN, WQFN or DFN

	Params []part.ParamOption
}

// Derived pad figures.
const (
	qfpPadExtension = 0.5
	qfpPadWidth     = 0.55
	qfpLeadWidth    = 0.6
	qfpBodyHeight   = 1.4

	qfnBodyHeight     = 0.9
	qfnTerminalLength = 0.4
	qfnTerminalWidth  = 0.55
	qfnThermalRatio   = 0.6
	qfnPadExtension   = 0.3
	qfnSolderFillet   = 0.15
)

func checkPins(pins, sides int, family part.PackageType) error {
	if pins <= 0 {
		return &part.ValidationError{Field: "pin count", Value: pins, Err: part.ErrOutOfRange}
	}
	if pins%sides != 0 {
		return &part.ValidationError{
			Field: fmt.Sprintf("%s pin count", family),
			Value: pins,
			Err:   fmt.Errorf("%w (%d sides)", part.ErrPinCount, sides),
		}
	}
	return nil
}

func qfpVariant(v string) part.PackageType {
	switch t := part.PackageType(strings.ToUpper(strings.TrimSpace(v))); t {
	case part.QFP, part.LQFP, part.TQFP, part.VQFP:
		return t
	}
	return part.LQFP
}

// NewQFPParams validates the figures and derives the footprint parameters.
func NewQFPParams(o QFPOptions) (*part.FootprintParams, error) {
	typ := qfpVariant(o.Variant)
	if err := checkPins(o.Pins, 4, typ); err != nil {
		return nil, err
	}
	if o.BodyLength == 0 {
		o.BodyLength = o.BodyWidth
	}
	if o.LeadSpan == 0 {
		o.LeadSpan = math.Max(o.BodyWidth, o.BodyLength) + 2
	}
	if o.BodyHeight == 0 {
		o.BodyHeight = qfpBodyHeight
	}
	if o.LeadWidth == 0 {
		o.LeadWidth = o.Pitch * qfpLeadWidth
	}

	pkg, err := part.NewPackage(part.Package{
		Type:       typ,
		Name:       fmt.Sprintf("%s-%d", typ, o.Pins),
		PinCount:   o.Pins,
		Pitch:      o.Pitch,
		BodyWidth:  o.BodyWidth,
		BodyLength: o.BodyLength,
		BodyHeight: o.BodyHeight,
		LeadWidth:  o.LeadWidth,
		LeadSpan:   o.LeadSpan,
	})
	if err != nil {
		return nil, err
	}

	padLen := (o.LeadSpan-o.BodyWidth)/2 + qfpPadExtension
	pad, err := part.NewPadDimensions(padLen, o.Pitch*qfpPadWidth)
	if err != nil {
		return nil, err
	}
	center := o.BodyWidth/2 + padLen/2

	w, l, pitch := part.FormatDim(o.BodyWidth), part.FormatDim(o.BodyLength), part.FormatDim(o.Pitch)
	name := fmt.Sprintf("%s-%d_%sx%smm_P%smm", typ, o.Pins, w, l, pitch)
	opts := []part.ParamOption{
		part.WithFootprintDescription(fmt.Sprintf("%s, %d Pin, %sx%smm body, %smm pitch", typ, o.Pins, w, l, pitch)),
		part.WithTags(string(typ), "QFP", fmt.Sprintf("%d-pin", o.Pins)),
	}
	return part.NewFootprintParams(name, pkg, pad, center, center, append(opts, o.Params...)...)
}

// CreateQFP generates a gull-wing quad footprint from raw figures.
func CreateQFP(o QFPOptions, opts ...Option) (string, error) {
	params, err := NewQFPParams(o)
	if err != nil {
		return "", err
	}
	res, err := GenerateWith(QFP{}, params, opts...)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func qfnVariant(v string) part.PackageType {
	switch t := part.PackageType(strings.ToUpper(strings.TrimSpace(v))); t {
	case part.DFN, part.VQFN, part.WQFN:
		return t
	}
	return part.QFN
}

// NewQFNParams validates the figures and derives the footprint parameters,
// including a default exposed pad with a 3x3 via grid.
func NewQFNParams(o QFNOptions) (*part.FootprintParams, error) {
	typ := qfnVariant(o.Variant)
	sides := 4
	if typ == part.DFN {
		sides = 2
	}
	if err := checkPins(o.Pins, sides, typ); err != nil {
		return nil, err
	}
	if o.BodyLength == 0 {
		o.BodyLength = o.BodyWidth
	}
	if o.BodyHeight == 0 {
		o.BodyHeight = qfnBodyHeight
	}
	if o.TerminalLength == 0 {
		o.TerminalLength = qfnTerminalLength
	}
	if o.TerminalWidth == 0 {
		o.TerminalWidth = o.Pitch * qfnTerminalWidth
	}
	if o.ThermalPadSize == 0 {
		o.ThermalPadSize = math.Round(math.Min(o.BodyWidth, o.BodyLength)*qfnThermalRatio*100) / 100
	}
	if o.ThermalPadLength == 0 {
		o.ThermalPadLength = o.ThermalPadSize
	}

	tp, err := part.NewThermalPad(o.ThermalPadSize, o.ThermalPadLength)
	if err != nil {
		return nil, err
	}
	pkg, err := part.NewPackage(part.Package{
		Type:       typ,
		Name:       fmt.Sprintf("%s-%d", typ, o.Pins),
		PinCount:   o.Pins + 1,
		Pitch:      o.Pitch,
		BodyWidth:  o.BodyWidth,
		BodyLength: o.BodyLength,
		BodyHeight: o.BodyHeight,
		LeadLength: o.TerminalLength,
		LeadWidth:  o.TerminalWidth,
		ThermalPad: tp,
	})
	if err != nil {
		return nil, err
	}

	pad, err := part.NewPadDimensions(o.TerminalLength+qfnPadExtension, o.TerminalWidth)
	if err != nil {
		return nil, err
	}
	centerX := o.BodyWidth/2 - o.TerminalLength/2 + qfnSolderFillet
	centerY := o.BodyLength/2 - o.TerminalLength/2 + qfnSolderFillet

	w, l, pitch := part.FormatDim(o.BodyWidth), part.FormatDim(o.BodyLength), part.FormatDim(o.Pitch)
	epw, epl := part.FormatDim(o.ThermalPadSize), part.FormatDim(o.ThermalPadLength)
	name := fmt.Sprintf("%s-%d-1EP_%sx%smm_P%smm_EP%sx%smm", typ, o.Pins, w, l, pitch, epw, epl)
	opts := []part.ParamOption{
		part.WithFootprintDescription(fmt.Sprintf("%s, %d Pin, %sx%smm body, %smm pitch, %sx%smm exposed pad", typ, o.Pins, w, l, pitch, epw, epl)),
		part.WithTags(string(typ), "QFN", "DFN", fmt.Sprintf("%d-pin", o.Pins), "EP"),
	}
	return part.NewFootprintParams(name, pkg, pad, centerX, centerY, append(opts, o.Params...)...)
}

// CreateQFN generates a no-lead footprint from raw figures.
func CreateQFN(o QFNOptions, opts ...Option) (string, error) {
	params, err := NewQFNParams(o)
	if err != nil {
		return "", err
	}
	res, err := GenerateWith(QFN{}, params, opts...)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
