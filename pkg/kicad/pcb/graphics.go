package pcb

import (
	"fmt"

	"github.com/Ka-zam/KiForge/pkg/kicad/sexp"
	"github.com/Ka-zam/KiForge/pkg/kicad/sexp/kicadsexp"
)

// parseGraphics collects the fp_line, fp_circle, fp_arc and fp_rect
// children of a footprint.
func parseGraphics(node kicadsexp.Sexp) (Graphics, error) {
	var g Graphics

	for _, n := range sexp.FindAllNodes(node, "fp_line") {
		line, err := parseLine(n)
		if err != nil {
			return g, fmt.Errorf("fp_line: %w", err)
		}
		g.Lines = append(g.Lines, line)
	}
	for _, n := range sexp.FindAllNodes(node, "fp_circle") {
		circle, err := parseCircle(n)
		if err != nil {
			return g, fmt.Errorf("fp_circle: %w", err)
		}
		g.Circles = append(g.Circles, circle)
	}
	for _, n := range sexp.FindAllNodes(node, "fp_arc") {
		arc, err := parseArc(n)
		if err != nil {
			return g, fmt.Errorf("fp_arc: %w", err)
		}
		g.Arcs = append(g.Arcs, arc)
	}
	for _, n := range sexp.FindAllNodes(node, "fp_rect") {
		rect, err := parseRect(n)
		if err != nil {
			return g, fmt.Errorf("fp_rect: %w", err)
		}
		g.Rects = append(g.Rects, rect)
	}
	return g, nil
}

// parseLine extracts (fp_line (start x y) (end x y) (stroke ...) (layer "L") (uuid ..))
func parseLine(node kicadsexp.Sexp) (sexp.GrLine, error) {
	var line sexp.GrLine
	var err error
	if line.Start, err = sexp.GetChildPosition(node, "start"); err != nil {
		return line, err
	}
	if line.End, err = sexp.GetChildPosition(node, "end"); err != nil {
		return line, err
	}
	line.Stroke = parseStroke(node)
	line.Layer, _ = sexp.GetChildString(node, "layer")
	line.UUID, _ = sexp.GetUUID(node)
	return line, nil
}

// parseCircle extracts (fp_circle (center x y) (end x y) ...). End is a
// point on the circumference.
func parseCircle(node kicadsexp.Sexp) (sexp.GrCircle, error) {
	var c sexp.GrCircle
	var err error
	if c.Center, err = sexp.GetChildPosition(node, "center"); err != nil {
		return c, err
	}
	if c.End, err = sexp.GetChildPosition(node, "end"); err != nil {
		return c, err
	}
	c.Stroke = parseStroke(node)
	c.Fill = parseFill(node)
	c.Layer, _ = sexp.GetChildString(node, "layer")
	c.UUID, _ = sexp.GetUUID(node)
	return c, nil
}

func parseArc(node kicadsexp.Sexp) (sexp.GrArc, error) {
	var a sexp.GrArc
	var err error
	if a.Start, err = sexp.GetChildPosition(node, "start"); err != nil {
		return a, err
	}
	if a.Mid, err = sexp.GetChildPosition(node, "mid"); err != nil {
		return a, err
	}
	if a.End, err = sexp.GetChildPosition(node, "end"); err != nil {
		return a, err
	}
	a.Stroke = parseStroke(node)
	a.Layer, _ = sexp.GetChildString(node, "layer")
	a.UUID, _ = sexp.GetUUID(node)
	return a, nil
}

func parseRect(node kicadsexp.Sexp) (sexp.GrRect, error) {
	var r sexp.GrRect
	var err error
	if r.Start, err = sexp.GetChildPosition(node, "start"); err != nil {
		return r, err
	}
	if r.End, err = sexp.GetChildPosition(node, "end"); err != nil {
		return r, err
	}
	r.Stroke = parseStroke(node)
	r.Fill = parseFill(node)
	return r, nil
}

// parseStroke reads (stroke (width w) (type t)), falling back to the
// KiCad 6 bare (width w) form.
func parseStroke(node kicadsexp.Sexp) sexp.Stroke {
	if strokeNode, ok := sexp.FindNode(node, "stroke"); ok {
		if s, err := sexp.GetStroke(strokeNode); err == nil {
			return s
		}
	}
	w, _ := sexp.GetChildFloat(node, "width")
	return sexp.Stroke{Width: w, Type: sexp.StrokeSolid}
}

func parseFill(node kicadsexp.Sexp) sexp.Fill {
	if fillNode, ok := sexp.FindNode(node, "fill"); ok {
		if f, err := sexp.GetFill(fillNode); err == nil {
			return f
		}
	}
	return sexp.Fill{Type: sexp.FillNone}
}
