package pinout

import (
	"fmt"
	"io"

	"github.com/Ka-zam/KiForge/pkg/bsdl"
	"github.com/Ka-zam/KiForge/pkg/idcode"
	"github.com/Ka-zam/KiForge/pkg/part"
)

// BSDL reads the port list and package pin map of a boundary-scan
// description. Ports absent from the selected pin map are left out. A
// fixed IDCODE manufacturer field names the manufacturer.
type BSDL struct{}

func (BSDL) Format() Format { return FormatBSDL }
func (BSDL) Supports(filename string) bool {
	return hasExt(filename, ".bsd", ".bsdl", ".bsm")
}

func (BSDL) Read(r io.Reader, opts Options) (*Pinout, error) {
	file, err := bsdl.Parse(r)
	if err != nil {
		return nil, err
	}
	e := file.Entity

	bound, err := e.PortPins(opts.PinMap)
	if err != nil {
		return nil, err
	}
	pins := make([]part.Pin, 0, len(bound))
	for _, b := range bound {
		p, err := part.NewPin(b.Pin, b.Name, modeType(b.Mode, b.Name), part.WithStyle(InferStyle(b.Name)))
		if err != nil {
			return nil, fmt.Errorf("bsdl port %s: %w", b.Name, err)
		}
		pins = append(pins, p)
	}
	if len(pins) == 0 {
		return nil, ErrNoPins
	}

	out := &Pinout{Format: FormatBSDL, Name: e.Name, Pins: pins, Groups: groupByCategory(pins)}
	if id := e.GetDeviceInfo().IDCode; id != "" {
		out.Options = append(out.Options, part.WithProperty("IDCODE", id))
		if code, err := idcode.ParsePattern(id); err == nil {
			if m, ok := code.Manufacturer(); ok {
				out.Options = append(out.Options, part.WithManufacturer(m.Name))
			}
		}
	}
	return out, nil
}

// modeType maps a port mode to an electrical type. Linkage ports are
// power inputs when named like a rail and passive otherwise.
func modeType(mode, name string) part.ElectricalType {
	switch mode {
	case "in":
		return part.Input
	case "out", "buffer":
		return part.Output
	case "inout":
		return part.Bidirectional
	case "linkage":
		if part.GroundPatterns.Match(name) || part.SupplyPatterns.Match(name) {
			return part.PowerIn
		}
		return part.Passive
	}
	return part.Unspecified
}
