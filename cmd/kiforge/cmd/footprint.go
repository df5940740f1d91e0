package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ka-zam/KiForge/pkg/designator"
	"github.com/Ka-zam/KiForge/pkg/footprint"
	"github.com/Ka-zam/KiForge/pkg/part"
)

// packageFlags describe a package either by name or by figures.
type packageFlags struct {
	name       string
	pins       int
	pitch      float64
	body       string
	height     float64
	leadSpan   float64
	thermalPad string
}

func (f *packageFlags) register(cmd *cobra.Command, nameFlag string) {
	cmd.Flags().StringVar(&f.name, nameFlag, "", "package name, e.g. QFN-32-1EP_5x5mm_P0.5mm_EP3.1x3.1mm")
	cmd.Flags().IntVar(&f.pins, "pins", 0, "signal pin count, without the exposed pad")
	cmd.Flags().Float64Var(&f.pitch, "pitch", 0, "pin pitch in mm")
	cmd.Flags().StringVar(&f.body, "body", "", "body size WxL in mm")
	cmd.Flags().Float64Var(&f.height, "height", 0, "body height in mm")
	cmd.Flags().Float64Var(&f.leadSpan, "lead-span", 0, "QFP tip-to-tip lead span in mm")
	cmd.Flags().StringVar(&f.thermalPad, "thermal-pad", "", "QFN/DFN exposed pad WxL in mm")
}

var errNoPackage = errors.New("a package family or name is required")

// params derives the footprint parameters. family is used when no package
// name was given; pins falls back to defaultPins when the flag is unset.
func (a *app) params(f packageFlags, family string, defaultPins int) (*part.FootprintParams, error) {
	extra := append(a.cfg.Footprint.ParamOptions(), part.WithLibrary(a.cfg.Library))

	if f.name != "" {
		d, err := designator.Parse(f.name)
		if err != nil {
			return nil, err
		}
		if d.Family.IsLeadless() {
			o, err := d.QFN()
			if err != nil {
				return nil, err
			}
			o.Params = extra
			return footprint.NewQFNParams(o)
		}
		o, err := d.QFP()
		if err != nil {
			return nil, err
		}
		o.LeadSpan = f.leadSpan
		o.Params = extra
		return footprint.NewQFPParams(o)
	}

	if family == "" {
		return nil, errNoPackage
	}
	typ, err := part.ParsePackageType(family)
	if err != nil {
		return nil, err
	}
	pins := f.pins
	if pins == 0 {
		pins = defaultPins
	}
	if f.body == "" {
		return nil, fmt.Errorf("--body is required with a package family")
	}
	w, l, err := parseDims(f.body)
	if err != nil {
		return nil, err
	}

	switch {
	case typ.IsLeadless():
		o := footprint.QFNOptions{
			Pins: pins, Pitch: f.pitch, BodyWidth: w, BodyLength: l, BodyHeight: f.height,
			Variant: string(typ), Params: extra,
		}
		if f.thermalPad != "" {
			if o.ThermalPadSize, o.ThermalPadLength, err = parseDims(f.thermalPad); err != nil {
				return nil, err
			}
		}
		return footprint.NewQFNParams(o)
	case typ.IsQuad():
		return footprint.NewQFPParams(footprint.QFPOptions{
			Pins: pins, Pitch: f.pitch, BodyWidth: w, BodyLength: l, BodyHeight: f.height,
			LeadSpan: f.leadSpan, Variant: string(typ), Params: extra,
		})
	}
	return nil, fmt.Errorf("%s: %w", typ, footprint.ErrUnsupportedFamily)
}

func newFootprintCmd(a *app) *cobra.Command {
	var (
		pkg    packageFlags
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "footprint [family]",
		Short: "Generate a QFP, QFN or DFN footprint",
		Long: `Generate a footprint from a package family and its figures, or from a
package name carrying them.

Examples:
  kiforge footprint lqfp --pins 64 --pitch 0.5 --body 10x10
  kiforge footprint qfn --pins 32 --pitch 0.5 --body 5x5 --thermal-pad 3.1x3.1
  kiforge footprint --name DFN-8-1EP_3x3mm_P0.5mm_EP1.6x2.4mm -o -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			family := ""
			if len(args) == 1 {
				family = args[0]
			}
			params, err := a.params(pkg, family, 0)
			if err != nil {
				return err
			}
			res, err := footprint.Generate(params)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			logger.Debug("generated pads", "count", len(res.Geometry.Pads), "family", res.Family)
			logger.Debug("courtyard",
				"width", res.Courtyard.Max.X-res.Courtyard.Min.X,
				"height", res.Courtyard.Max.Y-res.Courtyard.Min.Y)

			_, err = writeOutput(cmd.Context(), cmd.OutOrStdout(), a.outputDir(outDir), fileName(params.Name, ".kicad_mod"), res.Text)
			return err
		},
	}
	pkg.register(cmd, "name")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", `output directory, "-" for stdout`)
	return cmd
}
