// Package cmd implements the kiforge command line.
//
// Commands:
//   - footprint: generate a QFP/QFN/DFN footprint from figures or a name
//   - symbol: generate a symbol from a pinout file
//   - generate: footprint and symbol together
//   - pins: print a pinout as a table
//   - info: decode a package name
//   - check: read generated files back
//
// Every command logs through charmbracelet/log; --verbose switches to
// debug level.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Ka-zam/KiForge/internal/config"
)

var version = "0.1.0"

// app is the state shared by all subcommands of one invocation.
type app struct {
	configPath string
	verbose    bool
	cfg        *config.Config
}

// Execute runs the command line with os.Args.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "kiforge",
		Short: "Generate KiCad footprints and symbols",
		Long: `kiforge generates KiCad 8/9 footprints (.kicad_mod) for QFP, QFN and DFN
packages and schematic symbols (.kicad_sym) from pinout tables.

Examples:
  kiforge footprint lqfp --pins 48 --pitch 0.5 --body 7x7
  kiforge footprint --name QFN-32-1EP_5x5mm_P0.5mm_EP3.1x3.1mm
  kiforge symbol stm32.csv --name STM32G031K8
  kiforge generate ecp5.csv --format fpga --package-column CABGA256 --package QFN-32-1EP_5x5mm_P0.5mm
  kiforge check out/*.kicad_mod --cross`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if a.verbose {
				level = log.DebugLevel
			}
			logger := newLogger(stderr, level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logger.Debug("loaded config", "library", cfg.Library, "output", cfg.OutputDir)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "settings file (default ./"+config.DefaultFile+" if present)")

	root.AddCommand(
		newFootprintCmd(a),
		newSymbolCmd(a),
		newGenerateCmd(a),
		newPinsCmd(a),
		newInfoCmd(a),
		newCheckCmd(a),
	)
	return root
}
