// Package pinout loads component pin lists from datasheet tables (CSV and
// XLSX), TOML component files, BSDL files and FPGA vendor pinout CSVs.
package pinout

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ka-zam/KiForge/pkg/part"
)

// Format names a pin source.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatTOML Format = "toml"
	FormatBSDL Format = "bsdl"
	FormatFPGA Format = "fpga"
)

// Errors returned by the readers.
var (
	ErrMissingColumn     = errors.New("missing column")
	ErrUnsupportedFormat = errors.New("unsupported pinout format")
	ErrNoPins            = errors.New("no pins found")
)

// Options configures a read. Fields a format does not use are ignored.
type Options struct {
	Format Format

	// Sheet selects the XLSX worksheet; empty means the first.
	Sheet string

	// PackageColumn selects the FPGA package column holding ball numbers;
	// empty means the first package column.
	PackageColumn string

	// PinMap selects the BSDL PIN_MAP_STRING constant; empty means the
	// PHYSICAL_PIN_MAP default.
	PinMap string
}

// Pinout is what a source yields: pins plus whatever identity the file
// carried.
type Pinout struct {
	Format Format
	Name   string // component name, when the file names one
	Pins   []part.Pin
	Groups []part.PinGroup

	UnitNames map[int]string

	// Options carries component fields read from the file, such as the
	// manufacturer of a TOML component.
	Options []part.ComponentOption
}

// Component builds a validated component. A non-empty name overrides the
// one read from the file; opts are applied after the file's own options.
func (p *Pinout) Component(name string, opts ...part.ComponentOption) (*part.Component, error) {
	if name == "" {
		name = p.Name
	}
	all := make([]part.ComponentOption, 0, len(p.Options)+len(opts)+2)
	all = append(all, p.Options...)
	if len(p.UnitNames) > 0 {
		all = append(all, part.WithUnitNames(p.UnitNames))
	}
	if len(p.Groups) > 0 {
		all = append(all, part.WithGroups(p.Groups...))
	}
	all = append(all, opts...)
	return part.NewComponent(name, p.Pins, all...)
}

// Source reads one pinout format.
type Source interface {
	Format() Format
	// Supports reports whether the source claims filename by extension.
	Supports(filename string) bool
	Read(r io.Reader, opts Options) (*Pinout, error)
}

// Sources lists the built-in readers in detection order. The FPGA reader
// claims no extension and must be selected explicitly.
func Sources() []Source {
	return []Source{CSV{}, XLSX{}, TOML{}, BSDL{}, FPGA{}}
}

// Detect returns the source for format, or the first source that claims
// path when format is empty.
func Detect(path string, format Format) (Source, error) {
	name := filepath.Base(path)
	for _, s := range Sources() {
		if format != "" {
			if s.Format() == format {
				return s, nil
			}
			continue
		}
		if s.Supports(name) {
			return s, nil
		}
	}
	if format != "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// Load opens path and reads it with the detected source.
func Load(path string, opts Options) (*Pinout, error) {
	src, err := Detect(path, opts.Format)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := src.Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// groupByCategory collects pins into one group per inferred category, in
// first-seen order.
func groupByCategory(pins []part.Pin) []part.PinGroup {
	index := map[part.GroupCategory]int{}
	var groups []part.PinGroup
	for _, p := range pins {
		cat := InferCategory(p.Name, p.Type)
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, part.PinGroup{Name: string(cat), Category: cat, SortOrder: i})
		}
		groups[i].Pins = append(groups[i].Pins, p)
	}
	return groups
}
