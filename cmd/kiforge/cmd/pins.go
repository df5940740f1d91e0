package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newPinsCmd(a *app) *cobra.Command {
	var (
		src  sourceFlags
		comp componentFlags
	)
	cmd := &cobra.Command{
		Use:   "pins <pinout>",
		Short: "Print the pins read from a pinout file",
		Long: `Read a pinout file and print its pins as a table, with the electrical
type and graphic style each pin will get on the symbol.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.readPinout(cmd, args[0], src)
			if err != nil {
				return err
			}
			c, err := comp.component(p)
			if err != nil {
				return err
			}

			t := newTable(5, "Number", "Name", "Type", "Style", "Unit", "Alternates")
			for _, pin := range c.Pins {
				t.Row(pin.Number, pin.Name, string(pin.Type), string(pin.Style),
					strconv.Itoa(pin.Unit), strings.Join(pin.Alternates, ", "))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styleTitle.Render(c.Name))
			fmt.Fprintln(out, t)
			units := c.Units()
			summary := fmt.Sprintf("%d pins, %d groups, %d units", c.PinCount(), len(c.Groups), len(units))
			if c.IsMultiUnit() {
				names := make([]string, 0, len(units))
				for _, u := range units {
					names = append(names, c.UnitName(u))
				}
				summary += " (" + strings.Join(names, ", ") + ")"
			}
			fmt.Fprintln(out, styleDim.Render(summary))
			return nil
		},
	}
	src.register(cmd)
	comp.register(cmd)
	return cmd
}
