package pcb

import (
	"fmt"

	"github.com/Ka-zam/KiForge/pkg/kicad/sexp"
	"github.com/Ka-zam/KiForge/pkg/kicad/sexp/kicadsexp"
)

// parsePad extracts a pad definition from a footprint
// Expected format: (pad "number" type shape (at x y [angle]) (size w h) (layers ...) ...)
func parsePad(node kicadsexp.Sexp) (*Pad, error) {
	if node.IsLeaf() {
		return nil, fmt.Errorf("expected pad list, got leaf")
	}

	pad := &Pad{}

	number, err := sexp.GetString(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad number: %w", err)
	}
	pad.Number = number

	// Parse pad type (third element: thru_hole, smd, connect, np_thru_hole)
	if pad.Type, err = sexp.GetString(node, 2); err != nil {
		return nil, fmt.Errorf("failed to parse pad type: %w", err)
	}
	// Parse pad shape (fourth element: circle, rect, oval, roundrect, trapezoid, custom)
	if pad.Shape, err = sexp.GetString(node, 3); err != nil {
		return nil, fmt.Errorf("failed to parse pad shape: %w", err)
	}

	atNode, found := sexp.FindNode(node, "at")
	if !found {
		return nil, fmt.Errorf("pad %s: missing required 'at' position", number)
	}
	if pad.Position, err = sexp.GetPosition(atNode); err != nil {
		return nil, fmt.Errorf("pad %s: %w", number, err)
	}

	sizeNode, found := sexp.FindNode(node, "size")
	if !found {
		return nil, fmt.Errorf("pad %s: missing required 'size' field", number)
	}
	size, err := sexp.GetPositionXY(sizeNode)
	if err != nil {
		return nil, fmt.Errorf("pad %s: failed to parse size: %w", number, err)
	}
	pad.Size = Size{Width: size.X, Height: size.Y}

	// Drill is (drill d) or (drill oval w h); the first number is kept.
	if drillNode, found := sexp.FindNode(node, "drill"); found {
		for i := 1; i < len(sexp.Items(drillNode)); i++ {
			if v, err := sexp.GetFloat(drillNode, i); err == nil {
				pad.Drill = v
				break
			}
		}
	}

	layersNode, found := sexp.FindNode(node, "layers")
	if !found {
		return nil, fmt.Errorf("pad %s: missing required 'layers' field", number)
	}
	for _, item := range sexp.GetListItems(layersNode) {
		if name, ok := kicadsexp.AtomValue(item); ok && name != "" {
			pad.Layers = append(pad.Layers, name)
		}
	}

	if ratio, ok := sexp.GetChildFloat(node, "roundrect_rratio"); ok {
		pad.RoundRectRatio = ratio
	}
	for _, propNode := range sexp.FindAllNodes(node, "property") {
		if v, err := sexp.GetString(propNode, 1); err == nil {
			pad.Properties = append(pad.Properties, v)
		}
	}
	pad.UUID, _ = sexp.GetUUID(node)

	return pad, nil
}

// parseText extracts (fp_text kind "text" (at x y) (layer "L" [hide]) (effects ...))
func parseText(node kicadsexp.Sexp) (*Text, error) {
	kind, err := sexp.GetString(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text kind: %w", err)
	}
	value, err := sexp.GetString(node, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text value: %w", err)
	}
	text := &Text{Kind: kind, Text: value, Hidden: sexp.HasSymbol(node, "hide")}

	if atNode, found := sexp.FindNode(node, "at"); found {
		if text.Position, err = sexp.GetPosition(atNode); err != nil {
			return nil, err
		}
	}
	if layerNode, found := sexp.FindNode(node, "layer"); found {
		text.Layer, _ = sexp.GetString(layerNode, 1)
		text.Hidden = text.Hidden || sexp.HasSymbol(layerNode, "hide")
	}
	if effectsNode, found := sexp.FindNode(node, "effects"); found {
		if text.Effects, err = sexp.GetEffects(effectsNode); err != nil {
			return nil, err
		}
		text.Hidden = text.Hidden || text.Effects.Hide
	}
	return text, nil
}

func parseModel(node kicadsexp.Sexp) Model {
	m := Model{Scale: [3]float64{1, 1, 1}}
	m.Path, _ = sexp.GetString(node, 1)
	read := func(key string, dst *[3]float64) {
		outer, ok := sexp.FindNode(node, key)
		if !ok {
			return
		}
		xyz, ok := sexp.FindNode(outer, "xyz")
		if !ok {
			return
		}
		for i := range dst {
			if v, err := sexp.GetFloat(xyz, i+1); err == nil {
				dst[i] = v
			}
		}
	}
	read("offset", &m.Offset)
	read("scale", &m.Scale)
	read("rotate", &m.Rotation)
	return m
}
