package sexp

// File format constants written into every generated document header.
const (
	FormatVersion = 20241229
	GeneratorName = "kiforge"
)

// Board layer names used by generated footprints.
const (
	LayerFrontCopper    = "F.Cu"
	LayerFrontPaste     = "F.Paste"
	LayerFrontMask      = "F.Mask"
	LayerFrontSilk      = "F.SilkS"
	LayerFrontCourtyard = "F.CrtYd"
	LayerFrontFab       = "F.Fab"
	LayerAllCopper      = "*.Cu"
	LayerAllMask        = "*.Mask"
)

// Stroke and fill keywords.
const (
	StrokeSolid   = "solid"
	StrokeDefault = "default"

	FillNone       = "none"
	FillSolid      = "solid"
	FillBackground = "background"
)

// Library documents are recognised by their root keyword.
const (
	RootFootprint  = "footprint"
	RootSymbolLib  = "kicad_symbol_lib"
	HeatsinkPadTag = "pad_prop_heatsink"
)

// SMDPadLayers is the default layer stack of a surface-mount pad.
func SMDPadLayers() []string {
	return []string{LayerFrontCopper, LayerFrontPaste, LayerFrontMask}
}
