package part

import (
	"fmt"
	"strings"
)

// ElectricalType tags a pin for electrical rule checking.
type ElectricalType string

const (
	Input         ElectricalType = "input"
	Output        ElectricalType = "output"
	Bidirectional ElectricalType = "bidirectional"
	TriState      ElectricalType = "tri_state"
	Passive       ElectricalType = "passive"
	Free          ElectricalType = "free"
	Unspecified   ElectricalType = "unspecified"
	PowerIn       ElectricalType = "power_in"
	PowerOut      ElectricalType = "power_out"
	OpenCollector ElectricalType = "open_collector"
	OpenEmitter   ElectricalType = "open_emitter"
	NoConnect     ElectricalType = "no_connect"
)

var electricalTypes = []ElectricalType{
	Input, Output, Bidirectional, TriState, Passive, Free, Unspecified,
	PowerIn, PowerOut, OpenCollector, OpenEmitter, NoConnect,
}

// ElectricalTypes lists every defined electrical type.
func ElectricalTypes() []ElectricalType {
	return append([]ElectricalType(nil), electricalTypes...)
}

func (t ElectricalType) String() string { return string(t) }

// Valid reports whether t is a defined electrical type.
func (t ElectricalType) Valid() bool {
	for _, v := range electricalTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ParseElectricalType parses the KiCad keyword of an electrical type.
func ParseElectricalType(s string) (ElectricalType, error) {
	t := ElectricalType(s)
	if !t.Valid() {
		return "", invalid("electrical type", s, ErrUnknownValue)
	}
	return t, nil
}

// GraphicStyle is the drawing style of a symbol pin.
type GraphicStyle string

const (
	StyleLine          GraphicStyle = "line"
	StyleInverted      GraphicStyle = "inverted"
	StyleClock         GraphicStyle = "clock"
	StyleInvertedClock GraphicStyle = "inverted_clock"
	StyleInputLow      GraphicStyle = "input_low"
	StyleClockLow      GraphicStyle = "clock_low"
	StyleOutputLow     GraphicStyle = "output_low"
	StyleEdgeClockHigh GraphicStyle = "edge_clock_high"
	StyleNonLogic      GraphicStyle = "non_logic"
)

var graphicStyles = []GraphicStyle{
	StyleLine, StyleInverted, StyleClock, StyleInvertedClock, StyleInputLow,
	StyleClockLow, StyleOutputLow, StyleEdgeClockHigh, StyleNonLogic,
}

func (s GraphicStyle) String() string { return string(s) }

// Valid reports whether s is a defined graphic style.
func (s GraphicStyle) Valid() bool {
	for _, v := range graphicStyles {
		if v == s {
			return true
		}
	}
	return false
}

// Orientation is the direction a symbol pin points, in degrees.
type Orientation int

const (
	OrientRight Orientation = 0
	OrientUp    Orientation = 90
	OrientLeft  Orientation = 180
	OrientDown  Orientation = 270
)

func (o Orientation) String() string { return fmt.Sprint(int(o)) }

// PackageType is an IC package family.
type PackageType string

const (
	QFP    PackageType = "QFP"
	LQFP   PackageType = "LQFP"
	TQFP   PackageType = "TQFP"
	VQFP   PackageType = "VQFP"
	QFN    PackageType = "QFN"
	VQFN   PackageType = "VQFN"
	WQFN   PackageType = "WQFN"
	DFN    PackageType = "DFN"
	BGA    PackageType = "BGA"
	FBGA   PackageType = "FBGA"
	TFBGA  PackageType = "TFBGA"
	UFBGA  PackageType = "UFBGA"
	WLCSP  PackageType = "WLCSP"
	DSBGA  PackageType = "DSBGA"
	SOIC   PackageType = "SOIC"
	SOP    PackageType = "SOP"
	SSOP   PackageType = "SSOP"
	TSSOP  PackageType = "TSSOP"
	MSOP   PackageType = "MSOP"
	DIP    PackageType = "DIP"
	SOT    PackageType = "SOT"
	SOT23  PackageType = "SOT-23"
	SOT223 PackageType = "SOT-223"
	TO     PackageType = "TO"
	SC70   PackageType = "SC-70"
)

var packageTypes = []PackageType{
	QFP, LQFP, TQFP, VQFP, QFN, VQFN, WQFN, DFN,
	BGA, FBGA, TFBGA, UFBGA, WLCSP, DSBGA,
	SOIC, SOP, SSOP, TSSOP, MSOP, DIP, SOT, SOT23, SOT223, TO, SC70,
}

func (t PackageType) String() string { return string(t) }

// Valid reports whether t is a defined package family.
func (t PackageType) Valid() bool {
	for _, v := range packageTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ParsePackageType parses a family name such as "LQFP" or "sot-23".
func ParsePackageType(s string) (PackageType, error) {
	for _, v := range packageTypes {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, nil
		}
	}
	return "", invalid("package type", s, ErrUnknownValue)
}

func (t PackageType) in(set ...PackageType) bool {
	for _, v := range set {
		if v == t {
			return true
		}
	}
	return false
}

// IsLeaded reports families with external gull-wing or through-hole leads.
func (t PackageType) IsLeaded() bool {
	return t.in(QFP, LQFP, TQFP, VQFP, SOIC, SOP, SSOP, TSSOP, MSOP, DIP)
}

// IsLeadless reports the no-lead families.
func (t PackageType) IsLeadless() bool { return t.in(QFN, VQFN, WQFN, DFN) }

// IsBGA reports the ball-grid families.
func (t PackageType) IsBGA() bool { return t.in(BGA, FBGA, TFBGA, UFBGA, WLCSP, DSBGA) }

// IsQuad reports families with pins on four sides.
func (t PackageType) IsQuad() bool { return t.in(QFP, LQFP, TQFP, VQFP, QFN, VQFN, WQFN) }

// IsDual reports families with pins on two sides.
func (t PackageType) IsDual() bool { return t.in(DFN, SOIC, SOP, SSOP, TSSOP, MSOP, DIP) }

// Sides returns the number of package sides carrying pins, or 0 for
// families without a side layout.
func (t PackageType) Sides() int {
	switch {
	case t.IsQuad():
		return 4
	case t.IsDual():
		return 2
	}
	return 0
}

// PadShape is a KiCad pad shape keyword.
type PadShape string

const (
	ShapeRect      PadShape = "rect"
	ShapeRoundRect PadShape = "roundrect"
	ShapeOval      PadShape = "oval"
	ShapeCircle    PadShape = "circle"
	ShapeTrapezoid PadShape = "trapezoid"
	ShapeCustom    PadShape = "custom"
)

func (s PadShape) String() string { return string(s) }

// Valid reports whether s is a defined pad shape.
func (s PadShape) Valid() bool {
	switch s {
	case ShapeRect, ShapeRoundRect, ShapeOval, ShapeCircle, ShapeTrapezoid, ShapeCustom:
		return true
	}
	return false
}

// PadType is a KiCad pad type keyword.
type PadType string

const (
	PadSMD        PadType = "smd"
	PadThruHole   PadType = "thru_hole"
	PadNPThruHole PadType = "np_thru_hole"
	PadConnect    PadType = "connect"
)

func (t PadType) String() string { return string(t) }

// Valid reports whether t is a defined pad type.
func (t PadType) Valid() bool {
	switch t {
	case PadSMD, PadThruHole, PadNPThruHole, PadConnect:
		return true
	}
	return false
}

// GroupCategory is the logical role of a pin group.
type GroupCategory string

const (
	CategoryPower         GroupCategory = "power"
	CategoryGround        GroupCategory = "ground"
	CategoryInput         GroupCategory = "input"
	CategoryOutput        GroupCategory = "output"
	CategoryBidirectional GroupCategory = "bidirectional"
	CategoryControl       GroupCategory = "control"
	CategoryClock         GroupCategory = "clock"
	CategoryAnalog        GroupCategory = "analog"
	CategoryCommunication GroupCategory = "communication"
	CategoryDebug         GroupCategory = "debug"
	CategoryNC            GroupCategory = "nc"
	CategoryOther         GroupCategory = "other"

	// FPGA-specific groups.
	CategoryConfig GroupCategory = "config"
	CategoryJTAG   GroupCategory = "jtag"
	CategoryIOBank GroupCategory = "io_bank"
	CategorySerDes GroupCategory = "serdes"
	CategoryDPHY   GroupCategory = "dphy"
	CategoryADC    GroupCategory = "adc"
)

// BallPattern describes how a ball grid is populated.
type BallPattern string

const (
	BallsFull          BallPattern = "full"
	BallsPerimeter     BallPattern = "perimeter"
	BallsStaggered     BallPattern = "staggered"
	BallsDepopCenter   BallPattern = "depop_center"
	BallsCustomPattern BallPattern = "custom"
)
