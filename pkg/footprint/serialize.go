package footprint

import (
	"strings"

	"github.com/Ka-zam/KiForge/pkg/kicad/sexp"
	"github.com/Ka-zam/KiForge/pkg/part"
)

func serialize(p *part.FootprintParams, g *Geometry, o options) string {
	w := sexp.NewWriter(sexp.FootprintPrecision)
	w.Open(sexp.RootFootprint, sexp.Str(p.Name))
	w.Node("version", sexp.FormatVersion)
	w.Node("generator", sexp.Str(sexp.GeneratorName))
	w.Node("generator_version", sexp.Str(o.now().Format("20060102")))
	w.Node("layer", sexp.Str(sexp.LayerFrontCopper))
	if p.Description != "" {
		w.Node("descr", sexp.Str(p.Description))
	}
	if len(p.Tags) > 0 {
		w.Node("tags", sexp.Str(strings.Join(p.Tags, " ")))
	}
	switch p.PadType {
	case part.PadSMD:
		w.Node("attr", "smd")
	case part.PadThruHole:
		w.Node("attr", "through_hole")
	}

	for _, t := range g.Texts {
		writeText(w, t, o.ids())
	}
	for _, l := range g.Lines {
		w.Open("fp_line")
		w.Node("start", l.Start.X, l.Start.Y)
		w.Node("end", l.End.X, l.End.Y)
		writeStroke(w, l.Width)
		w.Node("layer", sexp.Str(l.Layer))
		w.Node("uuid", o.ids())
		w.Close()
	}
	for _, c := range g.Circles {
		w.Open("fp_circle")
		w.Node("center", c.Center.X, c.Center.Y)
		w.Node("end", c.Center.X+c.Radius, c.Center.Y)
		writeStroke(w, c.Width)
		fill := sexp.FillNone
		if c.Filled {
			fill = sexp.FillSolid
		}
		w.Node("fill", fill)
		w.Node("layer", sexp.Str(c.Layer))
		w.Node("uuid", o.ids())
		w.Close()
	}
	for _, a := range g.Arcs {
		w.Open("fp_arc")
		w.Node("start", a.Start.X, a.Start.Y)
		w.Node("mid", a.Mid.X, a.Mid.Y)
		w.Node("end", a.End.X, a.End.Y)
		writeStroke(w, a.Width)
		w.Node("layer", sexp.Str(a.Layer))
		w.Node("uuid", o.ids())
		w.Close()
	}
	for _, pad := range g.Pads {
		writePad(w, pad, o.ids())
	}
	if m := p.Model; m != nil && m.Path != "" {
		w.Open("model", sexp.Str(m.Path))
		w.Node("offset", xyz(m.Offset))
		w.Node("scale", xyz(m.Scale))
		w.Node("rotate", xyz(m.Rotation))
		w.Close()
	}
	w.Close()
	return w.String()
}

func writeStroke(w *sexp.Writer, width float64) {
	w.Node("stroke", sexp.E("width", sexp.Num(width)), sexp.E("type", sexp.StrokeSolid))
}

func writeText(w *sexp.Writer, t Text, id sexp.UUID) {
	w.Open("fp_text", t.Kind, sexp.Str(t.Text))
	w.Node("at", t.Position.X, t.Position.Y)
	if t.Hidden {
		w.Node("layer", sexp.Str(t.Layer), "hide")
	} else {
		w.Node("layer", sexp.Str(t.Layer))
	}
	w.Open("effects")
	w.Open("font")
	w.Node("size", sexp.Num(t.Size), sexp.Num(t.Size))
	w.Node("thickness", sexp.Num(t.Thickness))
	w.Close()
	w.Close()
	w.Node("uuid", id)
	w.Close()
}

func writePad(w *sexp.Writer, p Pad, id sexp.UUID) {
	w.Open("pad", sexp.Str(p.Number), p.Type, p.Shape)
	if p.Rotation != 0 {
		w.Node("at", p.Position.X, p.Position.Y, sexp.Num(p.Rotation))
	} else {
		w.Node("at", p.Position.X, p.Position.Y)
	}
	w.Node("size", p.Size.Width, p.Size.Height)
	if p.Drill > 0 {
		w.Node("drill", p.Drill)
	}
	layers := make([]any, len(p.Layers))
	for i, l := range p.Layers {
		layers[i] = sexp.Str(l)
	}
	w.Node("layers", layers...)
	if p.Shape == part.ShapeRoundRect {
		w.Node("roundrect_rratio", sexp.Num(p.RoundRectRatio))
	}
	if p.Heatsink {
		w.Node("property", sexp.HeatsinkPadTag)
	}
	w.Node("uuid", id)
	w.Close()
}

func xyz(v part.Vec3) sexp.Expr {
	return sexp.E("xyz", sexp.Num(v.X), sexp.Num(v.Y), sexp.Num(v.Z))
}
