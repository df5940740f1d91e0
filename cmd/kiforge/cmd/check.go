package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chewxy "github.com/chewxy/sexp"
	"github.com/spf13/cobra"

	"github.com/Ka-zam/KiForge/pkg/kicad/pcb"
	"github.com/Ka-zam/KiForge/pkg/kicad/schematic"
	"github.com/Ka-zam/KiForge/pkg/kicad/sexp/kicadsexp"
)

var errCheckFailed = errors.New("check failed")

func newCheckCmd(_ *app) *cobra.Command {
	var cross bool
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Read generated footprints and symbols back",
		Long: `Parse .kicad_mod and .kicad_sym files and summarize their contents.

With --cross the text is also read by a second, independent s-expression
parser, which must accept it as a single list.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				summary, err := checkFile(path, cross)
				if err != nil {
					failed++
					logger.Error("check", "path", path, "err", err)
					fmt.Fprintln(out, styleError.Render("✗ ")+path)
					continue
				}
				fmt.Fprintln(out, styleSuccess.Render("✓ ")+path+" "+styleDim.Render(summary))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files: %w", failed, len(args), errCheckFailed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&cross, "cross", false, "cross-check with a second s-expression parser")
	return cmd
}

func checkFile(path string, cross bool) (string, error) {
	var summary string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".kicad_mod":
		fp, err := pcb.ParseFile(path)
		if err != nil {
			return "", err
		}
		summary = fmt.Sprintf("footprint %s: %d pads, %d graphics, %d texts", fp.Name, len(fp.Pads), fp.Graphics.Len(), len(fp.Texts))
	case ".kicad_sym":
		lib, err := schematic.ParseFile(path)
		if err != nil {
			return "", err
		}
		pins, units := 0, 0
		for i := range lib.Symbols {
			pins += len(lib.Symbols[i].Pins())
			units += len(lib.Symbols[i].UnitNumbers())
		}
		summary = fmt.Sprintf("%d symbols, %d units, %d pins", len(lib.Symbols), units, pins)
	default:
		return "", fmt.Errorf("%s: not a .kicad_mod or .kicad_sym file", path)
	}

	if cross {
		ours, theirs, err := crossCheck(path)
		if err != nil {
			return "", err
		}
		summary += fmt.Sprintf(", cross-checked (%d/%d leaves)", ours, theirs)
	}
	return summary, nil
}

// crossCheck parses path with both readers. Each must yield a single
// top-level list; the counts reported by both are returned.
func crossCheck(path string) (ours, theirs int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}
	a, err := kicadsexp.ParseString(string(data))
	if err != nil {
		return 0, 0, err
	}
	b, err := chewxy.ParseString(string(data))
	if err != nil {
		return 0, 0, fmt.Errorf("cross parser: %w", err)
	}
	if len(a) != 1 || len(b) != 1 || a[0].IsLeaf() || b[0].IsLeaf() {
		return 0, 0, fmt.Errorf("cross parser: want one top-level list, got %d and %d expressions", len(a), len(b))
	}
	return a[0].LeafCount(), b[0].LeafCount(), nil
}
