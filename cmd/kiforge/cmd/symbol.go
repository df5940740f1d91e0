package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Ka-zam/KiForge/pkg/designator"
	"github.com/Ka-zam/KiForge/pkg/part"
	"github.com/Ka-zam/KiForge/pkg/pinout"
	"github.com/Ka-zam/KiForge/pkg/symbol"
)

// sourceFlags select and tune the pinout reader.
type sourceFlags struct {
	format        string
	sheet         string
	packageColumn string
	pinMap        string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "", "pinout format: csv, xlsx, toml, bsdl or fpga (default from extension)")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "XLSX worksheet name")
	cmd.Flags().StringVar(&f.packageColumn, "package-column", "", "FPGA package column holding ball numbers")
	cmd.Flags().StringVar(&f.pinMap, "pin-map", "", "BSDL PIN_MAP_STRING constant")
}

func (f *sourceFlags) options() pinout.Options {
	return pinout.Options{
		Format:        pinout.Format(f.format),
		Sheet:         f.sheet,
		PackageColumn: f.packageColumn,
		PinMap:        f.pinMap,
	}
}

// componentFlags override fields read from the pinout.
type componentFlags struct {
	name         string
	manufacturer string
	description  string
	datasheet    string
}

func (f *componentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "component name (default from the pinout file)")
	cmd.Flags().StringVarP(&f.manufacturer, "manufacturer", "m", "", "manufacturer")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "component description")
	cmd.Flags().StringVar(&f.datasheet, "datasheet", "", "datasheet URL")
}

// readPinout loads path. The configured reference prefix goes first so
// the file and the flags can override it.
func (a *app) readPinout(cmd *cobra.Command, path string, src sourceFlags) (*pinout.Pinout, error) {
	p, err := pinout.Load(path, src.options())
	if err != nil {
		return nil, err
	}
	loggerFromContext(cmd.Context()).Debug("loaded pinout",
		"path", path, "format", p.Format, "pins", len(p.Pins), "groups", len(p.Groups))

	p.Options = append([]part.ComponentOption{part.WithReferencePrefix(a.cfg.Symbol.ReferencePrefix)}, p.Options...)
	return p, nil
}

// component builds the part from p with the flag overrides applied.
func (cf componentFlags) component(p *pinout.Pinout, extra ...part.ComponentOption) (*part.Component, error) {
	var opts []part.ComponentOption
	if cf.manufacturer != "" {
		opts = append(opts, part.WithManufacturer(cf.manufacturer))
	}
	if cf.description != "" {
		opts = append(opts, part.WithComponentDescription(cf.description))
	}
	if cf.datasheet != "" {
		opts = append(opts, part.WithDatasheet(cf.datasheet))
	}
	return p.Component(cf.name, append(opts, extra...)...)
}

func newSymbolCmd(a *app) *cobra.Command {
	var (
		src     sourceFlags
		comp    componentFlags
		pkgName string
		outDir  string
	)
	cmd := &cobra.Command{
		Use:   "symbol <pinout>",
		Short: "Generate a schematic symbol from a pinout file",
		Long: `Generate a KiCad symbol library from a pinout file.

Pins are grouped by function. Parts with pins spread over several units, such
as FPGA pinouts, become multi-unit symbols.

Examples:
  kiforge symbol ldo.toml
  kiforge symbol pins.csv --name TPS7A02 --package DFN-4-1EP_1x1mm_P0.65mm
  kiforge symbol lfe5u.csv --format fpga --package-column CABGA256`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var extra []part.ComponentOption
			if pkgName != "" {
				d, err := designator.Parse(pkgName)
				if err != nil {
					return err
				}
				pkg, err := d.Part()
				if err != nil {
					return err
				}
				extra = append(extra, part.WithPackages(0, pkg))
			}

			p, err := a.readPinout(cmd, args[0], src)
			if err != nil {
				return err
			}
			c, err := comp.component(p, extra...)
			if err != nil {
				return err
			}
			text, err := symbol.Generate(c, symbol.WithFootprintLibrary(a.cfg.Library))
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("generated symbol", "name", c.Name, "pins", c.PinCount(), "units", len(c.Units()))

			_, err = writeOutput(cmd.Context(), cmd.OutOrStdout(), a.outputDir(outDir), fileName(c.Name, ".kicad_sym"), text)
			return err
		},
	}
	src.register(cmd)
	comp.register(cmd)
	cmd.Flags().StringVar(&pkgName, "package", "", "package name used for the Footprint property")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", `output directory, "-" for stdout`)
	return cmd
}
