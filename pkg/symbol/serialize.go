package symbol

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Ka-zam/KiForge/pkg/kicad/sexp"
	"github.com/Ka-zam/KiForge/pkg/part"
)

const pinNameOffset = 1.016

func serialize(c *part.Component, layouts []UnitLayout, o options) string {
	w := sexp.NewWriter(sexp.SymbolPrecision)
	w.Open(sexp.RootSymbolLib)
	w.Node("version", sexp.FormatVersion)
	w.Node("generator", sexp.Str(sexp.GeneratorName))
	w.Node("generator_version", sexp.Str(o.now().Format("20060102")))

	multi := len(layouts) > 1
	w.Open("symbol", sexp.Str(c.Name))
	if multi {
		w.Node("pin_numbers", "hide")
		w.Node("pin_names", sexp.E("offset", sexp.Num(pinNameOffset)))
	}
	w.Node("exclude_from_sim", false)
	w.Node("in_bom", true)
	w.Node("on_board", true)

	first := UnitLayout{Width: MinBody, Height: MinBody}
	if len(layouts) > 0 {
		first = layouts[0]
	}
	writeProperties(w, c, first, o.library)

	if multi {
		for i := range layouts {
			u := &layouts[i]
			w.Open("symbol", sexp.Str(subSymbol(c.Name, u.Unit, 0)))
			writeBody(w, u)
			w.Open("text", sexp.Str(u.Name))
			w.Node("at", sexp.Num(0), u.Height/2-FontSize, 0)
			w.Node("effects", font())
			w.Close()
			w.Close()
			writePins(w, c.Name, u)
		}
	} else {
		w.Open("symbol", sexp.Str(subSymbol(c.Name, 0, 1)))
		writeBody(w, &first)
		w.Close()
		for i := range layouts {
			writePins(w, c.Name, &layouts[i])
		}
	}

	w.Close()
	w.Close()
	return w.String()
}

func subSymbol(name string, unit, style int) string {
	return fmt.Sprintf("%s_%d_%d", name, unit, style)
}

func writeProperties(w *sexp.Writer, c *part.Component, u UnitLayout, library string) {
	x := -u.Width / 2
	y := u.Height/2 + FontSize

	writeProperty(w, "Reference", c.ReferencePrefix, x, y, false, true)
	writeProperty(w, "Value", c.Name, x, y-PinSpacing, false, true)

	footprint := ""
	if pkg := c.PrimaryPackage(); pkg != nil {
		footprint = library + ":" + pkg.IPCName()
	}
	writeProperty(w, "Footprint", footprint, 0, 0, true, false)
	writeProperty(w, "Datasheet", c.DatasheetURL, 0, 0, true, false)
	writeProperty(w, "Description", c.Description, 0, 0, true, false)

	if len(c.Keywords) > 0 {
		writeProperty(w, "ki_keywords", strings.Join(c.Keywords, " "), 0, 0, true, false)
	}
	keys := make([]string, 0, len(c.Properties))
	for k := range c.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeProperty(w, k, c.Properties[k], 0, 0, true, false)
	}
}

func writeProperty(w *sexp.Writer, key, value string, x, y float64, hidden, left bool) {
	w.Open("property", sexp.Str(key), sexp.Str(value))
	if x == 0 && y == 0 {
		w.Node("at", 0, 0, 0)
	} else {
		w.Node("at", x, y, 0)
	}
	args := []any{font()}
	if left {
		args = append(args, sexp.E("justify", "left"))
	}
	if hidden {
		args = append(args, "hide")
	}
	w.Node("effects", args...)
	w.Close()
}

func font() sexp.Expr {
	return sexp.E("font", sexp.E("size", sexp.Num(FontSize), sexp.Num(FontSize)))
}

func writeBody(w *sexp.Writer, u *UnitLayout) {
	body := u.Body()
	w.Open("rectangle")
	w.Node("start", body.Min.X, body.Max.Y)
	w.Node("end", body.Max.X, body.Min.Y)
	w.Node("stroke", sexp.E("width", sexp.Num(LineWidth)), sexp.E("type", sexp.StrokeDefault))
	w.Node("fill", sexp.E("type", sexp.FillBackground))
	w.Close()
}

func writePins(w *sexp.Writer, name string, u *UnitLayout) {
	w.Open("symbol", sexp.Str(subSymbol(name, u.Unit, 1)))
	for _, p := range u.Pins() {
		writePin(w, p)
	}
	w.Close()
}

func writePin(w *sexp.Writer, pp PlacedPin) {
	p := pp.Pin
	w.Open("pin", p.Type, p.Style)
	w.Node("at", pp.Position.X, pp.Position.Y, pp.Orientation())
	w.Node("length", sexp.Num(PinLength))
	if p.Hidden {
		w.Node("hide", true)
	}
	w.Node("name", sexp.Str(p.Name), sexp.E("effects", font()))
	w.Node("number", sexp.Str(p.Number), sexp.E("effects", font()))
	for _, alt := range p.Alternates {
		w.Node("alternate", sexp.Str(alt), p.Type, p.Style)
	}
	w.Close()
}
