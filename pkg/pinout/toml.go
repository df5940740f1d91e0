package pinout

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/Ka-zam/KiForge/pkg/designator"
	"github.com/Ka-zam/KiForge/pkg/part"
)

// componentFile is the TOML component description:
//
//	[component]
//	name = "STM32G031K8"
//	package = "LQFP-32_7x7mm_P0.8mm"
//
//	[component.units]
//	1 = "MCU"
//
//	[[pins]]
//	number = "1"
//	name = "VDD"
//	type = "power_in"
type componentFile struct {
	Component struct {
		Name         string            `toml:"name"`
		Manufacturer string            `toml:"manufacturer"`
		Description  string            `toml:"description"`
		Datasheet    string            `toml:"datasheet"`
		Keywords     []string          `toml:"keywords"`
		Reference    string            `toml:"reference"`
		Package      string            `toml:"package"`
		Units        map[string]string `toml:"units"`
		Properties   map[string]string `toml:"properties"`
	} `toml:"component"`
	Pins []pinRecord `toml:"pins"`
}

type pinRecord struct {
	Number      string   `toml:"number"`
	Name        string   `toml:"name"`
	Type        string   `toml:"type"`
	Style       string   `toml:"style"`
	Unit        int      `toml:"unit"`
	Alternates  []string `toml:"alternates"`
	Description string   `toml:"description"`
	Hidden      bool     `toml:"hidden"`
}

// TOML reads a component file: identity, optional package designator and
// the pin list. Missing types and styles are inferred from the names.
type TOML struct{}

func (TOML) Format() Format                { return FormatTOML }
func (TOML) Supports(filename string) bool { return hasExt(filename, ".toml") }

func (TOML) Read(r io.Reader, _ Options) (*Pinout, error) {
	var f componentFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("toml: unknown key %s", undecoded[0])
	}

	pins := make([]part.Pin, 0, len(f.Pins))
	for i, rec := range f.Pins {
		p, err := rec.pin()
		if err != nil {
			return nil, fmt.Errorf("pins[%d]: %w", i, err)
		}
		pins = append(pins, p)
	}
	if len(pins) == 0 {
		return nil, ErrNoPins
	}

	c := f.Component
	out := &Pinout{Format: FormatTOML, Name: c.Name, Pins: pins, Groups: groupByCategory(pins)}
	if len(c.Units) > 0 {
		out.UnitNames = make(map[int]string, len(c.Units))
		for k, v := range c.Units {
			u, err := strconv.Atoi(k)
			if err != nil || u < 1 {
				return nil, fmt.Errorf("component.units %q: %w", k, part.ErrInvalidUnit)
			}
			out.UnitNames[u] = v
		}
	}

	if c.Manufacturer != "" {
		out.Options = append(out.Options, part.WithManufacturer(c.Manufacturer))
	}
	if c.Description != "" {
		out.Options = append(out.Options, part.WithComponentDescription(c.Description))
	}
	if c.Datasheet != "" {
		out.Options = append(out.Options, part.WithDatasheet(c.Datasheet))
	}
	if len(c.Keywords) > 0 {
		out.Options = append(out.Options, part.WithKeywords(c.Keywords...))
	}
	if c.Reference != "" {
		out.Options = append(out.Options, part.WithReferencePrefix(c.Reference))
	}
	keys := make([]string, 0, len(c.Properties))
	for k := range c.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out.Options = append(out.Options, part.WithProperty(k, c.Properties[k]))
	}
	if c.Package != "" {
		d, err := designator.Parse(c.Package)
		if err != nil {
			return nil, fmt.Errorf("component.package: %w", err)
		}
		pkg, err := d.Part()
		if err != nil {
			return nil, fmt.Errorf("component.package: %w", err)
		}
		out.Options = append(out.Options, part.WithPackages(0, pkg))
	}
	return out, nil
}

func (rec pinRecord) pin() (part.Pin, error) {
	typ := InferType(rec.Name)
	if rec.Type != "" {
		t, ok := ParseType(rec.Type)
		if !ok {
			return part.Pin{}, &part.ValidationError{Field: "pin " + rec.Number + " type", Value: rec.Type, Err: part.ErrUnknownValue}
		}
		typ = t
	}
	style := InferStyle(rec.Name)
	if rec.Style != "" {
		style = part.GraphicStyle(rec.Style)
	}

	opts := []part.PinOption{part.WithStyle(style)}
	if rec.Unit != 0 {
		opts = append(opts, part.WithUnit(rec.Unit))
	}
	if len(rec.Alternates) > 0 {
		opts = append(opts, part.WithAlternates(rec.Alternates...))
	}
	if rec.Description != "" {
		opts = append(opts, part.WithDescription(rec.Description))
	}
	if rec.Hidden {
		opts = append(opts, part.Hidden())
	}
	return part.NewPin(rec.Number, rec.Name, typ, opts...)
}
