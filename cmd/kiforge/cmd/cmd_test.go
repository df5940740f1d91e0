package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ka-zam/KiForge/pkg/kicad/pcb"
	"github.com/Ka-zam/KiForge/pkg/kicad/schematic"
)

const opampCSV = `Pin,Name,Type
1,OUTA,output
2,-INA,input
3,+INA,input
4,V-,power_in
5,+INB,input
6,-INB,input
7,OUTB,output
8,V+,power_in
`

const dfn8 = "DFN-8-1EP_3x3mm_P0.5mm_EP1.6x2.4mm"

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	root := newRootCmd(&out, &errBuf)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errBuf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseDims(t *testing.T) {
	tests := []struct {
		in      string
		w, l    float64
		wantErr bool
	}{
		{in: "7x7", w: 7, l: 7},
		{in: "5.0X6.5", w: 5, l: 6.5},
		{in: "3", w: 3, l: 3},
		{in: "10x10mm", w: 10, l: 10},
		{in: "axb", wantErr: true},
		{in: "1x2x3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, l, err := parseDims(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.l, l)
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "LM358_DR.kicad_sym", fileName("LM358/DR", ".kicad_sym"))
	assert.Equal(t, "A_B.kicad_mod", fileName("A B", ".kicad_mod"))
}

func TestFootprintCommand(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, "footprint", "lqfp", "--pins", "48", "--pitch", "0.5", "--body", "7x7", "-o", dir)
	require.NoError(t, err)

	fp, err := pcb.ParseFile(filepath.Join(dir, "LQFP-48_7.0x7.0mm_P0.5mm.kicad_mod"))
	require.NoError(t, err)
	assert.Len(t, fp.Pads, 48)
}

func TestFootprintCommandByName(t *testing.T) {
	out, _, err := run(t, "footprint", "--name", "QFN-32-1EP_5x5mm_P0.5mm_EP3.1x3.1mm", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `(footprint "QFN-32-1EP_5.0x5.0mm_P0.5mm_EP3.1x3.1mm"`)
	assert.Contains(t, out, `(pad "EP" smd`)
}

func TestFootprintCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no package", []string{"footprint"}},
		{"no body", []string{"footprint", "qfn", "--pins", "16", "--pitch", "0.5"}},
		{"unknown family", []string{"footprint", "xyz", "--pins", "16", "--pitch", "0.5", "--body", "3"}},
		{"unsupported family", []string{"footprint", "soic", "--pins", "8", "--pitch", "1.27", "--body", "4x5"}},
		{"odd pin count", []string{"footprint", "qfn", "--pins", "15", "--pitch", "0.5", "--body", "3"}},
		{"bad name", []string{"footprint", "--name", "QFN-x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, append(tt.args, "-o", t.TempDir())...)
			assert.Error(t, err)
		})
	}
}

func TestSymbolCommand(t *testing.T) {
	pins := writeFile(t, "opamp.csv", opampCSV)
	out, _, err := run(t, "symbol", pins, "--name", "LM358", "-m", "TI", "--package", dfn8, "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `(symbol "LM358"`)
	assert.Contains(t, out, `"KiForge:DFN-8-1EP_3.0x3.0mm_P0.5mm_EP1.6x2.4mm"`)
}

func TestGenerateCommand(t *testing.T) {
	pins := writeFile(t, "opamp.csv", opampCSV)
	dir := t.TempDir()
	_, _, err := run(t, "generate", pins, "--name", "LM358", "--package", dfn8, "-o", dir)
	require.NoError(t, err)

	fp, err := pcb.ParseFile(filepath.Join(dir, "DFN-8-1EP_3.0x3.0mm_P0.5mm_EP1.6x2.4mm.kicad_mod"))
	require.NoError(t, err)
	_, ok := fp.PadByNumber("EP")
	assert.True(t, ok)

	lib, err := schematic.ParseFile(filepath.Join(dir, "LM358.kicad_sym"))
	require.NoError(t, err)
	require.Len(t, lib.Symbols, 1)
	assert.Len(t, lib.Symbols[0].Pins(), 8)
	prop, ok := lib.Symbols[0].Property("Footprint")
	require.True(t, ok)
	assert.Equal(t, "KiForge:"+fp.Name, prop.Value)

	out, _, err := run(t, "check", filepath.Join(dir, "LM358.kicad_sym"), filepath.Join(dir, fp.Name+".kicad_mod"))
	require.NoError(t, err)
	assert.Contains(t, out, "1 symbols, 1 units, 8 pins")
}

func TestGenerateCommandFamily(t *testing.T) {
	pins := writeFile(t, "opamp.csv", opampCSV)
	dir := t.TempDir()
	_, _, err := run(t, "generate", pins, "--name", "LM358", "--family", "dfn", "--pitch", "0.65", "--body", "3", "-o", dir)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "DFN-8-1EP_*.kicad_mod"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestGenerateCommandPinMismatch(t *testing.T) {
	pins := writeFile(t, "opamp.csv", opampCSV)
	_, _, err := run(t, "generate", pins, "--name", "LM358", "--package", "QFN-16-1EP_3x3mm_P0.5mm", "-o", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "8 signal pins")
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "kiforge.toml", `
library = "Custom"

[symbol]
reference_prefix = "IC"
`)
	pins := writeFile(t, "opamp.csv", opampCSV)
	out, _, err := run(t, "--config", cfg, "symbol", pins, "--name", "LM358", "--package", dfn8, "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"Custom:DFN-8-1EP_3.0x3.0mm_P0.5mm_EP1.6x2.4mm"`)
	assert.Contains(t, out, "(property \"Reference\" \"IC\"")

	bad := writeFile(t, "bad.toml", "libary = \"typo\"\n")
	_, _, err = run(t, "--config", bad, "info", dfn8)
	assert.Error(t, err)
}

func TestPinsCommand(t *testing.T) {
	pins := writeFile(t, "opamp.csv", opampCSV)
	out, _, err := run(t, "pins", pins, "--name", "LM358")
	require.NoError(t, err)
	assert.Contains(t, out, "LM358")
	assert.Contains(t, out, "OUTA")
	assert.Contains(t, out, "power_in")
	assert.Contains(t, out, "8 pins")
}

func TestInfoCommand(t *testing.T) {
	out, _, err := run(t, "info", "QFN-32-1EP_5x5mm_P0.5mm_EP3.1x3.1mm")
	require.NoError(t, err)
	assert.Contains(t, out, "QFN")
	assert.Contains(t, out, "3.1 x 3.1 mm")
	assert.Contains(t, out, "KiForge:QFN-32-1EP_5.0x5.0mm_P0.5mm_EP3.1x3.1mm")

	out, _, err = run(t, "info", "SOIC-8_3.9x4.9mm_P1.27mm")
	require.NoError(t, err)
	assert.Contains(t, out, "no footprint")
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, "footprint", "qfn", "--pins", "16", "--pitch", "0.5", "--body", "3", "-o", dir)
	require.NoError(t, err)
	matches, err := filepath.Glob(filepath.Join(dir, "*.kicad_mod"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	out, _, err := run(t, "check", matches[0])
	require.NoError(t, err)
	assert.Contains(t, out, "26 pads") // 16 terminals, EP, 3x3 vias

	junk := writeFile(t, "broken.kicad_mod", "(footprint \"x\"")
	_, stderr, err := run(t, "check", matches[0], junk)
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, stderr, "broken.kicad_mod")

	_, _, err = run(t, "check", writeFile(t, "notes.txt", "hi"))
	assert.ErrorIs(t, err, errCheckFailed)
}
