package sexp

import (
	"fmt"
	"strconv"

	"github.com/Ka-zam/KiForge/pkg/kicad/sexp/kicadsexp"
)

// S-expression navigation helpers

// Items returns the elements of a list node, or nil for atoms.
func Items(s kicadsexp.Sexp) []kicadsexp.Sexp {
	if l, ok := s.(*kicadsexp.List); ok {
		return l.Items()
	}
	return nil
}

// FindNode returns the first child list whose head is key.
// Example: FindNode(pad, "at") finds (at 1 2) inside (pad ... (at 1 2) ...)
func FindNode(s kicadsexp.Sexp, key string) (kicadsexp.Sexp, bool) {
	for _, item := range Items(s) {
		if name, err := GetNodeName(item); err == nil && !item.IsLeaf() && name == key {
			return item, true
		}
	}
	return nil, false
}

// FindAllNodes returns every child list whose head is key.
func FindAllNodes(s kicadsexp.Sexp, key string) []kicadsexp.Sexp {
	var results []kicadsexp.Sexp
	for _, item := range Items(s) {
		if item.IsLeaf() {
			continue
		}
		if name, err := GetNodeName(item); err == nil && name == key {
			results = append(results, item)
		}
	}
	return results
}

// GetListItems returns all items in a list except the head.
// Example: GetListItems((layers "F.Cu" "F.Mask")) returns ["F.Cu", "F.Mask"]
func GetListItems(s kicadsexp.Sexp) []kicadsexp.Sexp {
	items := Items(s)
	if len(items) <= 1 {
		return nil
	}
	return items[1:]
}

// GetString extracts the atom at index. Quoted and bare atoms are both
// accepted. Index 0 is the key.
func GetString(s kicadsexp.Sexp, index int) (string, error) {
	items := Items(s)
	if items == nil {
		return "", fmt.Errorf("expected list, got %v", s)
	}
	if index < 0 || index >= len(items) {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, len(items))
	}
	v, ok := kicadsexp.AtomValue(items[index])
	if !ok {
		return "", fmt.Errorf("expected atom at index %d, got %T", index, items[index])
	}
	return v, nil
}

// GetFloat extracts a float64 value at the given index
func GetFloat(s kicadsexp.Sexp, index int) (float64, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}
	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}
	return val, nil
}

// GetInt extracts an int value at the given index
func GetInt(s kicadsexp.Sexp, index int) (int, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}
	return val, nil
}

// GetChildString returns the first value of child node key, e.g. the name
// in (layer "F.Cu").
func GetChildString(s kicadsexp.Sexp, key string) (string, bool) {
	node, ok := FindNode(s, key)
	if !ok {
		return "", false
	}
	v, err := GetString(node, 1)
	return v, err == nil
}

// GetChildFloat returns the first numeric value of child node key.
func GetChildFloat(s kicadsexp.Sexp, key string) (float64, bool) {
	node, ok := FindNode(s, key)
	if !ok {
		return 0, false
	}
	v, err := GetFloat(node, 1)
	return v, err == nil
}

// GetPosition extracts a PositionAngle from an (at X Y [angle]) node.
// Library files store millimetres and degrees.
func GetPosition(s kicadsexp.Sexp) (PositionAngle, error) {
	key, err := GetNodeName(s)
	if err != nil {
		return PositionAngle{}, err
	}
	if key != "at" {
		return PositionAngle{}, fmt.Errorf("expected 'at', got %q", key)
	}

	pos, err := GetPositionXY(s)
	if err != nil {
		return PositionAngle{}, err
	}

	result := PositionAngle{Position: pos}
	if angle, err := GetFloat(s, 3); err == nil {
		result.Angle = Angle(angle)
	}
	return result, nil
}

// GetPositionXY extracts X,Y from (start X Y), (end X Y), (center X Y)...
func GetPositionXY(s kicadsexp.Sexp) (Position, error) {
	x, err := GetFloat(s, 1)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse X: %w", err)
	}
	y, err := GetFloat(s, 2)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse Y: %w", err)
	}
	return Position{X: x, Y: y}, nil
}

// GetChildPosition reads the (key X Y) child of s.
func GetChildPosition(s kicadsexp.Sexp, key string) (Position, error) {
	node, ok := FindNode(s, key)
	if !ok {
		return Position{}, fmt.Errorf("missing (%s ...)", key)
	}
	return GetPositionXY(node)
}

// GetStroke extracts stroke properties from a (stroke (width W) (type T)) node.
func GetStroke(s kicadsexp.Sexp) (Stroke, error) {
	stroke := Stroke{Type: StrokeDefault}
	if s.IsLeaf() {
		return stroke, fmt.Errorf("expected (stroke ...) list")
	}
	if w, ok := GetChildFloat(s, "width"); ok {
		stroke.Width = w
	}
	if t, ok := GetChildString(s, "type"); ok {
		stroke.Type = t
	}
	return stroke, nil
}

// GetFill extracts fill properties. Both (fill solid) and (fill (type
// solid)) spellings are accepted.
func GetFill(s kicadsexp.Sexp) (Fill, error) {
	fill := Fill{Type: FillNone}
	if s.IsLeaf() {
		return fill, fmt.Errorf("expected (fill ...) list")
	}
	if t, ok := GetChildString(s, "type"); ok {
		fill.Type = t
		return fill, nil
	}
	if v, err := GetString(s, 1); err == nil {
		fill.Type = v
	}
	return fill, nil
}

// HasSymbol checks if a list contains a specific bare symbol
func HasSymbol(s kicadsexp.Sexp, symbol string) bool {
	for _, item := range Items(s) {
		if sym, ok := item.(kicadsexp.Symbol); ok && string(sym) == symbol {
			return true
		}
	}
	return false
}

// GetNodeName returns the head symbol of a list (the node type).
func GetNodeName(s kicadsexp.Sexp) (string, error) {
	if s == nil {
		return "", fmt.Errorf("nil node")
	}
	if sym, ok := s.Head().(kicadsexp.Symbol); ok {
		return string(sym), nil
	}
	return "", fmt.Errorf("expected symbol at head of list")
}

// GetUUID extracts the (uuid ...) child of s.
func GetUUID(s kicadsexp.Sexp) (UUID, error) {
	v, ok := GetChildString(s, "uuid")
	if !ok {
		return "", fmt.Errorf("missing (uuid ...)")
	}
	return UUID(v), nil
}

// GetEffects extracts text effects from an (effects ...) node
func GetEffects(s kicadsexp.Sexp) (Effects, error) {
	effects := Effects{}
	if s.IsLeaf() {
		return effects, fmt.Errorf("expected (effects ...) list")
	}

	if fontNode, ok := FindNode(s, "font"); ok {
		effects.Font = GetFont(fontNode)
	}
	if justifyNode, ok := FindNode(s, "justify"); ok {
		effects.Justify = GetJustify(justifyNode)
	}
	effects.Hide = HasSymbol(s, "hide")
	if v, ok := GetChildString(s, "hide"); ok && v == "yes" {
		effects.Hide = true
	}
	return effects, nil
}

// GetFont extracts font properties from a (font ...) node
func GetFont(s kicadsexp.Sexp) Font {
	font := Font{}
	if sizeNode, ok := FindNode(s, "size"); ok {
		w, _ := GetFloat(sizeNode, 1)
		h, _ := GetFloat(sizeNode, 2)
		font.Size = Size{Width: w, Height: h}
	}
	if t, ok := GetChildFloat(s, "thickness"); ok {
		font.Thickness = t
	}
	font.Bold = HasSymbol(s, "bold")
	font.Italic = HasSymbol(s, "italic")
	return font
}

// GetJustify extracts justification from a (justify ...) node
func GetJustify(s kicadsexp.Sexp) Justify {
	justify := Justify{Horizontal: "center", Vertical: "center"}
	for _, item := range GetListItems(s) {
		sym, ok := item.(kicadsexp.Symbol)
		if !ok {
			continue
		}
		switch string(sym) {
		case "left", "right":
			justify.Horizontal = string(sym)
		case "top", "bottom":
			justify.Vertical = string(sym)
		case "mirror":
			justify.Mirror = true
		}
	}
	return justify
}

// GetProperty extracts a (property "key" "value" (at ...) (effects ...)) node.
func GetProperty(s kicadsexp.Sexp) (Property, error) {
	prop := Property{}
	key, err := GetString(s, 1)
	if err != nil {
		return prop, fmt.Errorf("failed to parse property key: %w", err)
	}
	prop.Key = key
	prop.Value, _ = GetString(s, 2)

	if atNode, ok := FindNode(s, "at"); ok {
		if pos, err := GetPosition(atNode); err == nil {
			prop.Position = pos
		}
	}
	if effectsNode, ok := FindNode(s, "effects"); ok {
		if effects, err := GetEffects(effectsNode); err == nil {
			prop.Effects = effects
		}
	}
	return prop, nil
}

// MinSupportedVersion is the oldest file format accepted by the readers
// (KiCad 6.0).
const MinSupportedVersion = 20211014

// Header is the version block shared by footprint and symbol files.
type Header struct {
	Version          int
	Generator        string
	GeneratorVersion string
}

// ParseHeader reads (version N) and the generator from a document root.
// Older files name the tool in (host tool build).
func ParseHeader(root kicadsexp.Sexp) (Header, error) {
	h := Header{Generator: "unknown"}
	versionNode, found := FindNode(root, "version")
	if !found {
		return h, fmt.Errorf("missing required 'version' field")
	}
	ver, err := GetInt(versionNode, 1)
	if err != nil {
		return h, fmt.Errorf("failed to parse version: %w", err)
	}
	if ver < MinSupportedVersion {
		return h, fmt.Errorf("unsupported KiCad version: %d (minimum required: %d / KiCad 6.0)", ver, MinSupportedVersion)
	}
	h.Version = ver

	if hostNode, found := FindNode(root, "host"); found {
		if tool, err := GetString(hostNode, 1); err == nil {
			h.Generator = tool
		}
	} else if gen, ok := GetChildString(root, "generator"); ok {
		h.Generator = gen
	}
	h.GeneratorVersion, _ = GetChildString(root, "generator_version")
	return h, nil
}
