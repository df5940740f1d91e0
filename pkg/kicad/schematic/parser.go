package schematic

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Ka-zam/KiForge/pkg/kicad/sexp"
	"github.com/Ka-zam/KiForge/pkg/kicad/sexp/kicadsexp"
)

// ParseFile reads and parses a symbol library file.
func ParseFile(filename string) (*SymbolLib, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseSymbolLib(file)
}

// ParseSymbolLib reads a symbol library from an io.Reader.
func ParseSymbolLib(r io.Reader) (*SymbolLib, error) {
	sexps, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}
	if len(sexps) == 0 {
		return nil, fmt.Errorf("empty file or no valid s-expressions found")
	}

	root := sexps[0]
	rootName, err := sexp.GetNodeName(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get root node name: %w", err)
	}
	if rootName != sexp.RootSymbolLib {
		return nil, fmt.Errorf("not a KiCad symbol library: expected '%s', got '%s'", sexp.RootSymbolLib, rootName)
	}

	header, err := sexp.ParseHeader(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	lib := &SymbolLib{Header: header}

	for _, symNode := range sexp.FindAllNodes(root, "symbol") {
		sym, err := parseLibSymbol(symNode)
		if err != nil {
			return nil, err
		}
		lib.Symbols = append(lib.Symbols, sym)
	}
	return lib, nil
}

// parseLibSymbol parses a single library symbol definition
func parseLibSymbol(node kicadsexp.Sexp) (LibSymbol, error) {
	sym := LibSymbol{
		InBom:   true,
		OnBoard: true,
	}

	name, err := sexp.GetString(node, 1)
	if err != nil {
		return sym, fmt.Errorf("symbol name: %w", err)
	}
	sym.Name = name

	for _, pn := range sexp.FindAllNodes(node, "property") {
		prop, err := sexp.GetProperty(pn)
		if err != nil {
			return sym, fmt.Errorf("symbol %q: %w", name, err)
		}
		sym.Properties = append(sym.Properties, prop)
	}

	if pnNode, found := sexp.FindNode(node, "pin_numbers"); found {
		sym.PinNumbersHidden = hidden(pnNode)
	}
	if pnNode, found := sexp.FindNode(node, "pin_names"); found {
		sym.PinNamesHidden = hidden(pnNode)
		sym.PinNameOffset, _ = sexp.GetChildFloat(pnNode, "offset")
	}
	if v, ok := sexp.GetChildString(node, "exclude_from_sim"); ok {
		sym.ExcludeFromSim = v == "yes"
	}
	if v, ok := sexp.GetChildString(node, "in_bom"); ok {
		sym.InBom = v == "yes"
	}
	if v, ok := sexp.GetChildString(node, "on_board"); ok {
		sym.OnBoard = v == "yes"
	}

	// Nested symbol units hold the graphics and pins.
	for _, unitNode := range sexp.FindAllNodes(node, "symbol") {
		unit, err := parseSymbolUnit(unitNode, name)
		if err != nil {
			return sym, err
		}
		sym.Units = append(sym.Units, unit)
	}

	return sym, nil
}

// parseSymbolUnit parses a nested "PARENT_unit_style" block.
func parseSymbolUnit(node kicadsexp.Sexp, parent string) (SymbolUnit, error) {
	unit := SymbolUnit{}

	name, err := sexp.GetString(node, 1)
	if err != nil {
		return unit, fmt.Errorf("unit name: %w", err)
	}
	unit.Name = name
	unit.Unit, unit.Style, err = splitUnitName(name, parent)
	if err != nil {
		return unit, err
	}

	for _, rn := range sexp.FindAllNodes(node, "rectangle") {
		unit.Graphics = append(unit.Graphics, parseRectangle(rn))
	}
	for _, cn := range sexp.FindAllNodes(node, "circle") {
		unit.Graphics = append(unit.Graphics, parseCircle(cn))
	}
	for _, an := range sexp.FindAllNodes(node, "arc") {
		unit.Graphics = append(unit.Graphics, parseArc(an))
	}
	for _, pn := range sexp.FindAllNodes(node, "polyline") {
		unit.Graphics = append(unit.Graphics, parseGraphicPolyline(pn))
	}

	for _, tn := range sexp.FindAllNodes(node, "text") {
		text, err := parseText(tn)
		if err != nil {
			return unit, fmt.Errorf("unit %q: %w", name, err)
		}
		unit.Texts = append(unit.Texts, text)
	}

	for _, pn := range sexp.FindAllNodes(node, "pin") {
		pin, err := parsePin(pn)
		if err != nil {
			return unit, fmt.Errorf("unit %q: %w", name, err)
		}
		unit.Pins = append(unit.Pins, pin)
	}

	return unit, nil
}

// splitUnitName extracts unit and style from "PARENT_unit_style".
func splitUnitName(name, parent string) (int, int, error) {
	rest, ok := strings.CutPrefix(name, parent+"_")
	if !ok {
		return 0, 0, fmt.Errorf("unit %q does not belong to symbol %q", name, parent)
	}
	u, s, ok := strings.Cut(rest, "_")
	if !ok {
		return 0, 0, fmt.Errorf("unit %q: expected NAME_unit_style", name)
	}
	unit, err := strconv.Atoi(u)
	if err != nil {
		return 0, 0, fmt.Errorf("unit %q: %w", name, err)
	}
	style, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, fmt.Errorf("unit %q: %w", name, err)
	}
	return unit, style, nil
}

// parsePin parses (pin type style (at x y angle) (length l) (name ..) (number ..) ...)
func parsePin(node kicadsexp.Sexp) (Pin, error) {
	pin := Pin{}

	pin.Type, _ = sexp.GetString(node, 1)
	pin.Style, _ = sexp.GetString(node, 2)

	atNode, found := sexp.FindNode(node, "at")
	if !found {
		return pin, fmt.Errorf("pin without position")
	}
	pos, err := sexp.GetPosition(atNode)
	if err != nil {
		return pin, err
	}
	pin.Position = pos.Position
	pin.Angle = pos.Angle

	pin.Length, _ = sexp.GetChildFloat(node, "length")

	if nameNode, found := sexp.FindNode(node, "name"); found {
		pin.Name.Name, _ = sexp.GetString(nameNode, 1)
		if effectsNode, found := sexp.FindNode(nameNode, "effects"); found {
			pin.Name.Effects, _ = sexp.GetEffects(effectsNode)
		}
	}

	numNode, found := sexp.FindNode(node, "number")
	if !found {
		return pin, fmt.Errorf("pin without number")
	}
	pin.Number.Number, _ = sexp.GetString(numNode, 1)
	if effectsNode, found := sexp.FindNode(numNode, "effects"); found {
		pin.Number.Effects, _ = sexp.GetEffects(effectsNode)
	}

	pin.Hide = hidden(node)

	for _, altNode := range sexp.FindAllNodes(node, "alternate") {
		alt := AltPin{}
		alt.Name, _ = sexp.GetString(altNode, 1)
		alt.Type, _ = sexp.GetString(altNode, 2)
		alt.Style, _ = sexp.GetString(altNode, 3)
		pin.Alternates = append(pin.Alternates, alt)
	}

	return pin, nil
}

func parseText(node kicadsexp.Sexp) (SymText, error) {
	text := SymText{}
	var err error
	if text.Text, err = sexp.GetString(node, 1); err != nil {
		return text, err
	}
	if atNode, found := sexp.FindNode(node, "at"); found {
		if text.Position, err = sexp.GetPosition(atNode); err != nil {
			return text, err
		}
	}
	if effectsNode, found := sexp.FindNode(node, "effects"); found {
		text.Effects, _ = sexp.GetEffects(effectsNode)
	}
	return text, nil
}

// hidden accepts both the bare hide flag and (hide yes).
func hidden(node kicadsexp.Sexp) bool {
	if sexp.HasSymbol(node, "hide") {
		return true
	}
	v, ok := sexp.GetChildString(node, "hide")
	return ok && v == "yes"
}

// parseRectangle parses a rectangle graphic element
func parseRectangle(node kicadsexp.Sexp) SymGraphic {
	graphic := SymGraphic{Type: "rectangle"}
	graphic.Start, _ = sexp.GetChildPosition(node, "start")
	graphic.End, _ = sexp.GetChildPosition(node, "end")
	readStyle(node, &graphic)
	return graphic
}

// parseCircle parses a circle graphic element
func parseCircle(node kicadsexp.Sexp) SymGraphic {
	graphic := SymGraphic{Type: "circle"}
	graphic.Center, _ = sexp.GetChildPosition(node, "center")
	graphic.Radius, _ = sexp.GetChildFloat(node, "radius")
	readStyle(node, &graphic)
	return graphic
}

// parseArc parses an arc graphic element
func parseArc(node kicadsexp.Sexp) SymGraphic {
	graphic := SymGraphic{Type: "arc"}
	graphic.Start, _ = sexp.GetChildPosition(node, "start")
	graphic.Mid, _ = sexp.GetChildPosition(node, "mid")
	graphic.End, _ = sexp.GetChildPosition(node, "end")
	readStyle(node, &graphic)
	return graphic
}

// parseGraphicPolyline parses a polyline graphic element
func parseGraphicPolyline(node kicadsexp.Sexp) SymGraphic {
	graphic := SymGraphic{Type: "polyline"}
	if ptsNode, found := sexp.FindNode(node, "pts"); found {
		for _, xy := range sexp.FindAllNodes(ptsNode, "xy") {
			if pos, err := sexp.GetPositionXY(xy); err == nil {
				graphic.Points = append(graphic.Points, pos)
			}
		}
	}
	readStyle(node, &graphic)
	return graphic
}

func readStyle(node kicadsexp.Sexp, g *SymGraphic) {
	if strokeNode, found := sexp.FindNode(node, "stroke"); found {
		g.Stroke, _ = sexp.GetStroke(strokeNode)
	}
	if fillNode, found := sexp.FindNode(node, "fill"); found {
		g.Fill, _ = sexp.GetFill(fillNode)
	}
}
