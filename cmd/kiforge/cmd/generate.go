package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ka-zam/KiForge/pkg/footprint"
	"github.com/Ka-zam/KiForge/pkg/part"
	"github.com/Ka-zam/KiForge/pkg/symbol"
)

// signalPins counts the pins that need a footprint terminal.
func signalPins(pins []part.Pin) int {
	n := 0
	for _, p := range pins {
		if p.Number != part.DefaultEPNumber {
			n++
		}
	}
	return n
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		src    sourceFlags
		comp   componentFlags
		pkg    packageFlags
		family string
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "generate <pinout>",
		Short: "Generate a matching symbol and footprint",
		Long: `Generate a symbol and its footprint in one run. The symbol's Footprint
property names the generated footprint.

The package is given by name, or by family and figures. With a family the pin
count defaults to the pinout's signal pins (pins other than EP).

Examples:
  kiforge generate ldo.toml --package DFN-6-1EP_2x2mm_P0.65mm_EP1x1.6mm
  kiforge generate mcu.csv --family lqfp --pitch 0.5 --body 7x7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			p, err := a.readPinout(cmd, args[0], src)
			if err != nil {
				return err
			}
			signals := signalPins(p.Pins)
			params, err := a.params(pkg, family, signals)
			if err != nil {
				return err
			}
			if got := params.Package.SignalPins(); got != signals {
				return fmt.Errorf("pinout has %d signal pins, package %s has %d", signals, params.Name, got)
			}
			c, err := comp.component(p, part.WithPackages(0, params.Package))
			if err != nil {
				return err
			}

			fp, err := footprint.Generate(params)
			if err != nil {
				return err
			}
			sym, err := symbol.Generate(c, symbol.WithFootprintLibrary(params.Library))
			if err != nil {
				return err
			}

			dir := a.outputDir(outDir)
			if _, err := writeOutput(cmd.Context(), cmd.OutOrStdout(), dir, fileName(params.Name, ".kicad_mod"), fp.Text); err != nil {
				return err
			}
			if _, err := writeOutput(cmd.Context(), cmd.OutOrStdout(), dir, fileName(c.Name, ".kicad_sym"), sym); err != nil {
				return err
			}
			logger.Info("generated", "component", c.Name, "footprint", params.FullName(), "pads", len(fp.Geometry.Pads))
			return nil
		},
	}
	src.register(cmd)
	comp.register(cmd)
	pkg.register(cmd, "package")
	cmd.Flags().StringVar(&family, "family", "", "package family when no package name is given")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", `output directory, "-" for stdout`)
	return cmd
}
