package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ka-zam/KiForge/pkg/designator"
	"github.com/Ka-zam/KiForge/pkg/footprint"
	"github.com/Ka-zam/KiForge/pkg/part"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <package>",
		Short: "Decode a package name",
		Long: `Decode an IPC-style package name and show the figures it carries,
plus the pads and courtyard of the footprint it would generate.

Example:
  kiforge info QFN-32-1EP_5x5mm_P0.5mm_EP3.1x3.1mm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := designator.Parse(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styleTitle.Render(d.String()))
			fmt.Fprintln(out, field("family", d.Family))
			fmt.Fprintln(out, field("pins", d.Pins))
			fmt.Fprintln(out, field("body", part.FormatDim(d.BodyW)+" x "+part.FormatDim(d.BodyL)+" mm"))
			if d.BodyH > 0 {
				fmt.Fprintln(out, field("height", part.FormatDim(d.BodyH)+" mm"))
			}
			fmt.Fprintln(out, field("pitch", part.FormatDim(d.Pitch)+" mm"))
			if d.HasExposedPad() {
				ep := "default size"
				if d.EPW > 0 {
					ep = part.FormatDim(d.EPW) + " x " + part.FormatDim(d.EPL) + " mm"
				}
				fmt.Fprintln(out, field("exposed pad", ep))
			}
			if len(d.Suffixes) > 0 {
				fmt.Fprintln(out, field("suffixes", strings.Join(d.Suffixes, ", ")))
			}

			params, err := a.params(packageFlags{name: args[0]}, "", 0)
			if err != nil {
				// Decodable but not generated, e.g. SOIC.
				fmt.Fprintln(out, styleWarning.Render("no footprint: "+err.Error()))
				return nil
			}
			res, err := footprint.Generate(params)
			if err != nil {
				return err
			}
			cy := res.Courtyard
			fmt.Fprintln(out, field("footprint", params.FullName()))
			fmt.Fprintln(out, field("pads", len(res.Geometry.Pads)))
			fmt.Fprintln(out, field("courtyard", part.FormatDim(cy.Max.X-cy.Min.X)+" x "+part.FormatDim(cy.Max.Y-cy.Min.Y)+" mm"))
			return nil
		},
	}
}
