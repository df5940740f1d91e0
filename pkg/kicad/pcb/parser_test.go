package pcb

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testFootprint = `(footprint "KiForge:QFN-8-1EP_2.0x2.0mm_P0.5mm_EP1.2x1.2mm"
	(version 20241229)
	(generator "kiforge")
	(generator_version "20260101")
	(layer "F.Cu")
	(descr "QFN-8, 2.0x2.0mm body")
	(tags "QFN DFN 8-pin EP")
	(attr smd)
	(fp_text reference "REF**" (at 0 -3 0) (layer "F.SilkS") (uuid "a")
		(effects (font (size 1 1) (thickness 0.15))))
	(fp_text value "QFN-8" (at 0 3 0) (layer "F.Fab") hide (uuid "b")
		(effects (font (size 1 1) (thickness 0.15))))
	(fp_line (start -1.25 -1.25) (end 1.25 -1.25) (stroke (width 0.05) (type solid)) (layer "F.CrtYd") (uuid "c"))
	(fp_line (start -1.25 1.25) (end 1.25 1.25) (stroke (width 0.05) (type solid)) (layer "F.CrtYd") (uuid "d"))
	(fp_line (start -1 -1) (end 1 -1) (width 0.1) (layer "F.Fab"))
	(fp_circle (center -1.5 -0.75) (end -1.3 -0.75) (stroke (width 0.12) (type solid)) (fill solid) (layer "F.SilkS") (uuid "e"))
	(fp_arc (start 0 -1) (mid 1 0) (end 0 1) (stroke (width 0.1) (type solid)) (layer "F.Fab") (uuid "f"))
	(pad "1" smd roundrect (at -0.95 -0.75) (size 0.6 0.28) (layers "F.Cu" "F.Paste" "F.Mask") (roundrect_rratio 0.25) (uuid "g"))
	(pad "3" smd roundrect (at -0.25 0.95 90) (size 0.6 0.28) (layers "F.Cu" "F.Paste" "F.Mask") (roundrect_rratio 0.25) (uuid "h"))
	(pad "EP" smd rect (at 0 0) (size 1.2 1.2) (layers "F.Cu" "F.Mask") (uuid "i"))
	(pad "EP" thru_hole circle (at 0 0) (size 0.5 0.5) (drill 0.3) (layers "*.Cu") (property pad_prop_heatsink) (uuid "j"))
	(model "${KICAD9_3DMODEL_DIR}/Package_DFN_QFN.3dshapes/QFN-8.wrl"
		(offset (xyz 0 0 0)) (scale (xyz 1 1 1)) (rotate (xyz 0 0 90)))
)`

func TestParseFootprint(t *testing.T) {
	fp, err := ParseFootprint(strings.NewReader(testFootprint))
	if err != nil {
		t.Fatalf("ParseFootprint failed: %v", err)
	}

	if fp.Library != "KiForge" || fp.Name != "QFN-8-1EP_2.0x2.0mm_P0.5mm_EP1.2x1.2mm" {
		t.Errorf("Unexpected name %q:%q", fp.Library, fp.Name)
	}
	if fp.Version != 20241229 || fp.Generator != "kiforge" || fp.GeneratorVersion != "20260101" {
		t.Errorf("Unexpected header %+v", fp.Header)
	}
	if fp.Layer != "F.Cu" || fp.Attr != "smd" {
		t.Errorf("Unexpected layer/attr %q %q", fp.Layer, fp.Attr)
	}
	if fp.Tags != "QFN DFN 8-pin EP" {
		t.Errorf("Unexpected tags %q", fp.Tags)
	}

	if len(fp.Texts) != 2 {
		t.Fatalf("Expected 2 texts, got %d", len(fp.Texts))
	}
	if fp.Texts[0].Kind != "reference" || fp.Texts[0].Text != "REF**" || fp.Texts[0].Layer != "F.SilkS" {
		t.Errorf("Unexpected reference text %+v", fp.Texts[0])
	}
	if fp.Texts[0].Hidden || !fp.Texts[1].Hidden {
		t.Error("Expected only the value text to be hidden")
	}
	if fp.Texts[0].Effects.Font.Thickness != 0.15 {
		t.Errorf("Expected thickness 0.15, got %v", fp.Texts[0].Effects.Font.Thickness)
	}

	if n := len(fp.Graphics.Lines); n != 3 {
		t.Errorf("Expected 3 lines, got %d", n)
	}
	if w := fp.Graphics.Lines[2].Stroke.Width; w != 0.1 {
		t.Errorf("Expected legacy width 0.1, got %v", w)
	}
	if len(fp.Graphics.Circles) != 1 || fp.Graphics.Circles[0].Fill.Type != "solid" {
		t.Errorf("Unexpected circles %+v", fp.Graphics.Circles)
	}
	if r := fp.Graphics.Circles[0].Radius(); math.Abs(r-0.2) > 1e-9 {
		t.Errorf("Expected marker radius 0.2, got %v", r)
	}
	if len(fp.Graphics.Arcs) != 1 || fp.Graphics.Arcs[0].Mid.X != 1 {
		t.Errorf("Unexpected arcs %+v", fp.Graphics.Arcs)
	}
	if fp.Graphics.Len() != 5 {
		t.Errorf("Expected 5 graphics, got %d", fp.Graphics.Len())
	}

	if len(fp.Pads) != 4 {
		t.Fatalf("Expected 4 pads, got %d", len(fp.Pads))
	}
	p1 := fp.Pads[0]
	if p1.Number != "1" || p1.Type != "smd" || p1.Shape != "roundrect" {
		t.Errorf("Unexpected pad 1 %+v", p1)
	}
	if p1.Position.X != -0.95 || p1.Position.Y != -0.75 || p1.Size.Width != 0.6 {
		t.Errorf("Unexpected pad 1 geometry %+v", p1)
	}
	if p1.RoundRectRatio != 0.25 || p1.UUID != "g" {
		t.Errorf("Unexpected pad 1 ratio/uuid %v %q", p1.RoundRectRatio, p1.UUID)
	}
	if fp.Pads[1].Position.Angle != 90 {
		t.Errorf("Expected pad 3 rotated 90, got %v", fp.Pads[1].Position.Angle)
	}

	via := fp.Pads[3]
	if via.Drill != 0.3 || !via.IsHeatsink() {
		t.Errorf("Expected heatsink via with drill 0.3, got %+v", via)
	}
	if fp.Pads[2].IsHeatsink() {
		t.Error("Exposed pad should not carry the heatsink property")
	}

	if len(fp.Models) != 1 {
		t.Fatalf("Expected 1 model, got %d", len(fp.Models))
	}
	m := fp.Models[0]
	if !strings.HasSuffix(m.Path, "QFN-8.wrl") || m.Rotation[2] != 90 || m.Scale[0] != 1 {
		t.Errorf("Unexpected model %+v", m)
	}
}

func TestPadsOn(t *testing.T) {
	fp, err := ParseFootprint(strings.NewReader(testFootprint))
	if err != nil {
		t.Fatalf("ParseFootprint failed: %v", err)
	}

	tests := []struct {
		layer string
		want  int
	}{
		{"F.Cu", 4},
		{"In1.Cu", 1},
		{"F.Paste", 2},
		{"F.Mask", 3},
		{"B.SilkS", 0},
	}
	for _, tt := range tests {
		if got := len(fp.PadsOn(tt.layer)); got != tt.want {
			t.Errorf("PadsOn(%s) = %d, want %d", tt.layer, got, tt.want)
		}
	}

	if _, ok := fp.PadByNumber("3"); !ok {
		t.Error("Expected to find pad 3")
	}
	if _, ok := fp.PadByNumber("99"); ok {
		t.Error("Did not expect pad 99")
	}
}

func TestGetBoundingBox(t *testing.T) {
	fp, err := ParseFootprint(strings.NewReader(testFootprint))
	if err != nil {
		t.Fatalf("ParseFootprint failed: %v", err)
	}

	// The marker circle at x=-1.5 r=0.2 extends past every pad and line.
	bbox := fp.GetBoundingBox()
	if math.Abs(bbox.Min.X-(-1.7)) > 1e-9 {
		t.Errorf("Expected min X -1.7, got %v", bbox.Min.X)
	}
	if bbox.Max.Y != 1.25 {
		t.Errorf("Expected max Y 1.25, got %v", bbox.Max.Y)
	}

	crt := fp.LayerBoundingBox("F.CrtYd")
	if crt.Width() != 2.5 || crt.Height() != 2.5 {
		t.Errorf("Expected 2.5x2.5 courtyard, got %vx%v", crt.Width(), crt.Height())
	}
	if !fp.LayerBoundingBox("B.CrtYd").IsEmpty() {
		t.Error("Expected empty box for unused layer")
	}
}

func TestParseFootprintErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong root", `(kicad_symbol_lib (version 20241229))`},
		{"old version", `(footprint "X" (version 20171130) (layer "F.Cu"))`},
		{"missing layer", `(footprint "X" (version 20241229))`},
		{"pad without at", `(footprint "X" (version 20241229) (layer "F.Cu") (pad "1" smd rect (size 1 1) (layers "F.Cu")))`},
		{"pad without layers", `(footprint "X" (version 20241229) (layer "F.Cu") (pad "1" smd rect (at 0 0) (size 1 1)))`},
		{"line without end", `(footprint "X" (version 20241229) (layer "F.Cu") (fp_line (start 0 0) (layer "F.SilkS")))`},
		{"unbalanced", `(footprint "X" (version 20241229)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFootprint(strings.NewReader(tt.input)); err == nil {
				t.Error("ParseFootprint() expected error, got nil")
			}
		})
	}
}

func TestParseLegacyModuleRoot(t *testing.T) {
	fp, err := ParseFootprint(strings.NewReader(`(module "SOIC-8" (version 20211014) (layer "F.Cu"))`))
	if err != nil {
		t.Fatalf("ParseFootprint failed: %v", err)
	}
	if fp.Name != "SOIC-8" || fp.Library != "" {
		t.Errorf("Unexpected name %q:%q", fp.Library, fp.Name)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.kicad_mod")
	if err := os.WriteFile(path, []byte(testFootprint), 0o644); err != nil {
		t.Fatal(err)
	}
	fp, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(fp.Pads) != 4 {
		t.Errorf("Expected 4 pads, got %d", len(fp.Pads))
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.kicad_mod")); err == nil {
		t.Error("Expected error for missing file")
	}
}
