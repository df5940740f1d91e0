// Package config holds the kiforge settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Ka-zam/KiForge/pkg/part"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "kiforge.toml"

// Config controls output naming and the footprint drawing rules.
type Config struct {
	// Library is the footprint library nickname used in symbol Footprint
	// properties and footprint full names.
	Library   string          `toml:"library"`
	OutputDir string          `toml:"output_dir"`
	Footprint FootprintConfig `toml:"footprint"`
	Symbol    SymbolConfig    `toml:"symbol"`
}

// FootprintConfig are the drawing rules applied to every footprint.
type FootprintConfig struct {
	CourtyardMargin     float64 `toml:"courtyard_margin"`
	CourtyardLineWidth  float64 `toml:"courtyard_line_width"`
	SilkscreenMargin    float64 `toml:"silkscreen_margin"`
	SilkscreenLineWidth float64 `toml:"silkscreen_line_width"`
	FabLineWidth        float64 `toml:"fab_line_width"`
	CornerRatio         float64 `toml:"corner_ratio"`

	ThermalVias [2]int  `toml:"thermal_vias"`
	ViaDrill    float64 `toml:"via_drill"`
	ViaPad      float64 `toml:"via_pad"`
}

// SymbolConfig are symbol defaults.
type SymbolConfig struct {
	ReferencePrefix string `toml:"reference_prefix"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Library:   part.DefaultLibrary,
		OutputDir: ".",
		Footprint: FootprintConfig{
			CourtyardMargin:     part.DefaultCourtyardMargin,
			CourtyardLineWidth:  part.DefaultCourtyardLineWidth,
			SilkscreenMargin:    part.DefaultSilkscreenMargin,
			SilkscreenLineWidth: part.DefaultSilkscreenLineWidth,
			FabLineWidth:        part.DefaultFabLineWidth,
			CornerRatio:         part.DefaultCornerRatio,
			ThermalVias:         [2]int{part.DefaultViaCount, part.DefaultViaCount},
			ViaDrill:            part.DefaultViaDrill,
			ViaPad:              part.DefaultViaPad,
		},
		Symbol: SymbolConfig{ReferencePrefix: part.DefaultReferencePrefix},
	}
}

// Load reads path over the defaults. An empty path tries DefaultFile and
// falls back to the defaults when it does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Library) == "" {
		return &part.ValidationError{Field: "library", Value: c.Library, Err: part.ErrEmptyField}
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return &part.ValidationError{Field: "output_dir", Value: c.OutputDir, Err: part.ErrEmptyField}
	}
	if strings.TrimSpace(c.Symbol.ReferencePrefix) == "" {
		return &part.ValidationError{Field: "symbol.reference_prefix", Value: c.Symbol.ReferencePrefix, Err: part.ErrEmptyField}
	}
	return c.Footprint.Validate()
}

// Validate checks the drawing rules.
func (f FootprintConfig) Validate() error {
	for _, d := range []struct {
		field string
		v     float64
	}{
		{"footprint.courtyard_margin", f.CourtyardMargin},
		{"footprint.courtyard_line_width", f.CourtyardLineWidth},
		{"footprint.silkscreen_margin", f.SilkscreenMargin},
		{"footprint.silkscreen_line_width", f.SilkscreenLineWidth},
		{"footprint.fab_line_width", f.FabLineWidth},
		{"footprint.via_drill", f.ViaDrill},
		{"footprint.via_pad", f.ViaPad},
	} {
		if !(d.v > 0) {
			return &part.ValidationError{Field: d.field, Value: d.v, Err: part.ErrInvalidDimension}
		}
	}
	if f.CornerRatio < 0 || f.CornerRatio > 0.5 {
		return &part.ValidationError{Field: "footprint.corner_ratio", Value: f.CornerRatio, Err: part.ErrRatioRange}
	}
	if f.ThermalVias[0] < 0 || f.ThermalVias[1] < 0 {
		return &part.ValidationError{Field: "footprint.thermal_vias", Value: f.ThermalVias, Err: part.ErrOutOfRange}
	}
	if f.ViaPad <= f.ViaDrill {
		return &part.ValidationError{Field: "footprint.via_pad", Value: f.ViaPad, Err: part.ErrInvalidDimension}
	}
	return nil
}

// ParamOptions turns the drawing rules into footprint parameter options.
func (f FootprintConfig) ParamOptions() []part.ParamOption {
	return []part.ParamOption{
		part.WithCourtyard(f.CourtyardMargin, f.CourtyardLineWidth),
		part.WithSilkscreen(f.SilkscreenMargin, f.SilkscreenLineWidth),
		part.WithFabLineWidth(f.FabLineWidth),
		part.WithCornerRatio(f.CornerRatio),
		part.WithThermalVias(f.ThermalVias[0], f.ThermalVias[1], f.ViaDrill, f.ViaPad),
	}
}
