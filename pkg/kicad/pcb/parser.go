package pcb

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Ka-zam/KiForge/pkg/kicad/sexp"
	"github.com/Ka-zam/KiForge/pkg/kicad/sexp/kicadsexp"
)

// ParseFile reads and parses a footprint file.
func ParseFile(filename string) (*Footprint, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseFootprint(file)
}

// ParseFootprint reads a footprint from an io.Reader.
func ParseFootprint(r io.Reader) (*Footprint, error) {
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
	// KiCad 5 and some exporters still write "module".
	if rootName != sexp.RootFootprint && rootName != "module" {
		return nil, fmt.Errorf("not a KiCad footprint file: expected 'footprint', got '%s'", rootName)
	}

	header, err := sexp.ParseHeader(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	fp, err := parseFootprint(root)
	if err != nil {
		return nil, err
	}
	fp.Header = header
	return fp, nil
}

// parseFootprint extracts a footprint definition
// Expected format: (footprint "library:name" (layer "layer") (descr ..) ...)
func parseFootprint(node kicadsexp.Sexp) (*Footprint, error) {
	fp := &Footprint{}

	fpName, err := sexp.GetString(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprint name: %w", err)
	}
	// Split library:name format
	// Example: "Package_QFP:LQFP-48_7x7mm_P0.5mm"
	if lib, name, ok := strings.Cut(fpName, ":"); ok && lib != "" {
		fp.Library, fp.Name = lib, name
	} else {
		fp.Name = fpName
	}

	layer, ok := sexp.GetChildString(node, "layer")
	if !ok {
		return nil, fmt.Errorf("missing required 'layer' field")
	}
	fp.Layer = layer
	fp.Description, _ = sexp.GetChildString(node, "descr")
	fp.Tags, _ = sexp.GetChildString(node, "tags")
	fp.Attr, _ = sexp.GetChildString(node, "attr")

	for _, textNode := range sexp.FindAllNodes(node, "fp_text") {
		text, err := parseText(textNode)
		if err != nil {
			return nil, fmt.Errorf("fp_text: %w", err)
		}
		fp.Texts = append(fp.Texts, *text)
	}

	graphics, err := parseGraphics(node)
	if err != nil {
		return nil, err
	}
	fp.Graphics = graphics

	for _, padNode := range sexp.FindAllNodes(node, "pad") {
		pad, err := parsePad(padNode)
		if err != nil {
			return nil, fmt.Errorf("pad: %w", err)
		}
		fp.Pads = append(fp.Pads, *pad)
	}

	for _, modelNode := range sexp.FindAllNodes(node, "model") {
		fp.Models = append(fp.Models, parseModel(modelNode))
	}

	return fp, nil
}
