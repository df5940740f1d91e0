package pinout

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/Ka-zam/KiForge/pkg/part"
)

// FPGA symbol units.
const (
	UnitPower     = 1
	UnitConfig    = 2
	UnitJTAG      = 3
	UnitBankStart = 4
)

// Special-function banks and the units they map to.
var specialBanks = map[string]int{
	"60": UnitBankStart + 8,  // DPHY0
	"61": UnitBankStart + 9,  // DPHY1
	"70": UnitBankStart + 10, // ADC
	"80": UnitBankStart + 11, // SerDes
}

// FPGAUnitNames returns the label of every FPGA unit.
func FPGAUnitNames() map[int]string {
	names := map[int]string{
		UnitPower:  "Power",
		UnitConfig: "Config",
		UnitJTAG:   "JTAG",
	}
	for b := 0; b <= 7; b++ {
		names[UnitBankStart+b] = fmt.Sprintf("Bank %d", b)
	}
	names[specialBanks["60"]] = "DPHY0"
	names[specialBanks["61"]] = "DPHY1"
	names[specialBanks["70"]] = "ADC"
	names[specialBanks["80"]] = "SerDes"
	return names
}

// FPGA reads a Lattice style pinout CSV: PADN, Pin/Ball Function, BANK,
// Dual Function, LVDS, HIGHSPEED and DQS columns followed by one ball
// column per package. Pins are assigned to units by function and bank.
type FPGA struct{}

func (FPGA) Format() Format          { return FormatFPGA }
func (FPGA) Supports(_ string) bool { return false }

// fpgaRow is one pin of the selected package.
type fpgaRow struct {
	number   string
	name     string
	bank     string
	dual     string
	lvds     string
	isTrueOf bool
}

func (FPGA) Read(r io.Reader, opts Options) (*Pinout, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "#") || strings.HasPrefix(t, `"#`) || strings.Trim(t, ",") == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNoPins
	}

	cr := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("fpga csv: %w", err)
	}

	header := records[0]
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	index := func(names ...string) int {
		for _, n := range names {
			if i, ok := col[n]; ok {
				return i
			}
		}
		return -1
	}

	var packages []string
	dqs := index("DQS")
	if dqs < 0 {
		dqs = len(header)
	}
	for i := dqs + 1; i < len(header); i++ {
		if h := strings.TrimSpace(header[i]); h != "" {
			packages = append(packages, h)
		}
	}
	pkgCol := -1
	switch {
	case opts.PackageColumn != "":
		pkgCol = index(opts.PackageColumn)
		if pkgCol < 0 {
			return nil, fmt.Errorf("%w: package %q (available: %s)", ErrMissingColumn, opts.PackageColumn, strings.Join(packages, ", "))
		}
	case len(packages) > 0:
		pkgCol = col[packages[0]]
	default:
		return nil, fmt.Errorf("%w: no package columns after DQS", ErrMissingColumn)
	}

	funcCol := index("Pin/Ball Function", "Pin/Ball Funcion")
	if funcCol < 0 {
		funcCol = 1
	}
	bankCol, dualCol, lvdsCol := index("BANK"), index("Dual Function"), index("LVDS")

	var rows []fpgaRow
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		name := dashless(cell(rec, funcCol))
		number := dashless(cell(rec, pkgCol))
		if name == "" || number == "" {
			continue
		}
		row := fpgaRow{
			number: number,
			name:   name,
			bank:   dashless(cell(rec, bankCol)),
			dual:   dashless(cell(rec, dualCol)),
		}
		row.lvds, row.isTrueOf = parseLVDS(cell(rec, lvdsCol))
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrNoPins
	}

	pins := make([]part.Pin, 0, len(rows))
	groups := map[int]*part.PinGroup{}
	var order []int
	for _, row := range rows {
		typ := fpgaType(row.name)
		unit, cat := classifyFPGA(row, typ)

		pinOpts := []part.PinOption{part.WithUnit(unit)}
		upper := strings.ToUpper(row.name)
		if strings.HasPrefix(upper, "CLK") || strings.HasPrefix(upper, "TCK") {
			pinOpts = append(pinOpts, part.WithStyle(part.StyleClock))
		}
		if row.dual != "" {
			pinOpts = append(pinOpts, part.WithAlternates(row.dual))
		}
		if row.lvds != "" {
			polarity := "complement"
			if row.isTrueOf {
				polarity = "true"
			}
			pinOpts = append(pinOpts, part.WithDescription(fmt.Sprintf("LVDS %s of %s", polarity, row.lvds)))
		}
		p, err := part.NewPin(row.number, row.name, typ, pinOpts...)
		if err != nil {
			return nil, fmt.Errorf("fpga pin %s: %w", row.number, err)
		}
		pins = append(pins, p)

		g, ok := groups[unit]
		if !ok {
			g = &part.PinGroup{Category: cat, Unit: unit}
			groups[unit] = g
			order = append(order, unit)
		}
		g.Pins = append(g.Pins, p)
	}

	all := FPGAUnitNames()
	names := map[int]string{}
	var pinGroups []part.PinGroup
	for i, u := range order {
		names[u] = all[u]
		g := groups[u]
		g.Name = all[u]
		g.SortOrder = i
		pinGroups = append(pinGroups, *g)
	}
	return &Pinout{Format: FormatFPGA, Pins: pins, Groups: pinGroups, UnitNames: names}, nil
}

func dashless(s string) string {
	if s == "-" {
		return ""
	}
	return s
}

// parseLVDS reads True_OF_<partner> and Comp_OF_<partner>.
func parseLVDS(s string) (partner string, isTrue bool) {
	switch {
	case strings.HasPrefix(s, "True_OF_"):
		return s[len("True_OF_"):], true
	case strings.HasPrefix(s, "Comp_OF_"):
		return s[len("Comp_OF_"):], false
	}
	return "", false
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// fpgaType infers the electrical type of an FPGA ball function.
func fpgaType(name string) part.ElectricalType {
	n := strings.ToUpper(name)
	switch {
	case hasAnyPrefix(n, "VCC", "VBAT", "VSS", "GND"):
		return part.PowerIn
	case n == "NC" || n == "N/C":
		return part.NoConnect
	case n == "DONE" || n == "TDO":
		return part.Output
	case n == "PROGRAMN" || n == "INITN" || n == "JTAG_EN":
		return part.Input
	case n == "TCK" || n == "TMS" || n == "TDI":
		return part.Input
	case containsAny(n, "CLK", "OSC"):
		return part.Input
	case strings.HasPrefix(n, "ADC_"):
		return part.Input
	}
	// General I/O (PL12A, PB4B), SerDes and DPHY lanes.
	return part.Bidirectional
}

var (
	jtagPins   = []string{"TCK", "TDI", "TDO", "TMS", "TRST", "JTAG_EN"}
	jtagDual   = []string{"TCK", "TDI", "TDO", "TMS", "TRST"}
	configPins = []string{"DONE", "PROGRAMN", "INITN", "CCLK", "CFG", "CRESETB"}
	configDual = []string{"MCLK", "MISO", "MOSI", "MCSN", "MSDO", "SCLK", "SSI", "SSO", "SCSN"}
)

func oneOf(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

// classifyFPGA assigns a unit: rails and no-connects to Power, then JTAG,
// configuration, special banks and the numbered I/O banks.
func classifyFPGA(row fpgaRow, typ part.ElectricalType) (int, part.GroupCategory) {
	n := strings.ToUpper(row.name)
	dual := strings.ToUpper(row.dual)
	switch {
	case hasAnyPrefix(n, "VCC", "VBAT") || typ == part.PowerIn:
		if containsAny(n, "GND", "VSS") {
			return UnitPower, part.CategoryGround
		}
		return UnitPower, part.CategoryPower
	case containsAny(n, "GND", "VSS"):
		return UnitPower, part.CategoryGround
	case n == "NC" || n == "N/C" || typ == part.NoConnect:
		return UnitPower, part.CategoryNC
	case oneOf(n, jtagPins) || containsAny(dual, jtagDual...):
		return UnitJTAG, part.CategoryJTAG
	case oneOf(n, configPins) || containsAny(dual, configDual...):
		return UnitConfig, part.CategoryConfig
	case row.bank == "80" || strings.HasPrefix(n, "SD"):
		return specialBanks["80"], part.CategorySerDes
	case row.bank == "60" || row.bank == "61" || strings.HasPrefix(n, "DPHY"):
		bank := row.bank
		if bank != "61" {
			bank = "60"
		}
		return specialBanks[bank], part.CategoryDPHY
	case row.bank == "70" || strings.HasPrefix(n, "ADC"):
		return specialBanks["70"], part.CategoryADC
	}
	if len(row.bank) == 1 && row.bank[0] >= '0' && row.bank[0] <= '7' {
		return UnitBankStart + int(row.bank[0]-'0'), part.CategoryIOBank
	}
	return UnitPower, part.CategoryOther
}
