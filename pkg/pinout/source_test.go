package pinout_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ka-zam/KiForge/pkg/part"
	"github.com/Ka-zam/KiForge/pkg/pinout"
)

const ldoTOML = `
[component]
name = "TPS7A02"
manufacturer = "Texas Instruments"
description = "200mA LDO"
keywords = ["ldo", "regulator"]
package = "QFN-16-1EP_3x3mm_P0.5mm_EP1.7x1.7mm"

[component.units]
1 = "Supply"
2 = "Output"

[component.properties]
MPN = "TPS7A0218PDQNR"

[[pins]]
number = "1"
name = "VIN"
type = "power_in"

[[pins]]
number = "2"
name = "~SHDN"

[[pins]]
number = "3"
name = "VOUT"
type = "power_out"
unit = 2
description = "Regulated output"

[[pins]]
number = "4"
name = "GND"
hidden = true

[[pins]]
number = "5"
name = "FB"
style = "clock"
alternates = ["SENSE"]
`

func TestTOMLRead(t *testing.T) {
	p, err := pinout.TOML{}.Read(strings.NewReader(ldoTOML), pinout.Options{})
	require.NoError(t, err)
	assert.Equal(t, "TPS7A02", p.Name)
	require.Len(t, p.Pins, 5)

	assert.Equal(t, part.PowerIn, p.Pins[0].Type)
	assert.Equal(t, part.StyleInverted, p.Pins[1].Style)
	assert.Equal(t, part.Unspecified, p.Pins[1].Type)
	assert.Equal(t, 2, p.Pins[2].Unit)
	assert.Equal(t, "Regulated output", p.Pins[2].Description)
	assert.Equal(t, part.PowerIn, p.Pins[3].Type)
	assert.True(t, p.Pins[3].Hidden)
	assert.Equal(t, part.StyleClock, p.Pins[4].Style)
	assert.Equal(t, []string{"SENSE"}, p.Pins[4].Alternates)
	assert.Equal(t, map[int]string{1: "Supply", 2: "Output"}, p.UnitNames)

	c, err := p.Component("")
	require.NoError(t, err)
	assert.Equal(t, "Texas Instruments", c.Manufacturer)
	assert.Equal(t, "200mA LDO", c.Description)
	assert.Equal(t, []string{"ldo", "regulator"}, c.Keywords)
	assert.Equal(t, "TPS7A0218PDQNR", c.Properties["MPN"])
	assert.Equal(t, "Output", c.UnitName(2))
	assert.True(t, c.IsMultiUnit())

	pkg := c.PrimaryPackage()
	require.NotNil(t, pkg)
	assert.Equal(t, part.QFN, pkg.Type)
	assert.Equal(t, 17, pkg.PinCount)
	assert.Equal(t, "QFN-16-1EP_3.0x3.0mm_P0.5mm_EP1.7x1.7mm", pkg.Name)
}

func TestTOMLErrors(t *testing.T) {
	pins := "\n[[pins]]\nnumber = \"1\"\nname = \"A\"\n"
	cases := map[string]struct {
		src  string
		want error
	}{
		"unknown key":  {src: "[component]\nname = \"X\"\ncolour = \"red\"\n" + pins},
		"bad type":     {src: "[[pins]]\nnumber = \"1\"\nname = \"A\"\ntype = \"weird\"\n", want: part.ErrUnknownValue},
		"bad unit key": {src: "[component.units]\nzero = \"x\"\n" + pins, want: part.ErrInvalidUnit},
		"no pins":      {src: "[component]\nname = \"X\"\n", want: pinout.ErrNoPins},
		"bad package":  {src: "[component]\npackage = \"QFN\"\n" + pins},
		"syntax":       {src: "[component\n"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := pinout.TOML{}.Read(strings.NewReader(tc.src), pinout.Options{})
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

const mcuBSDL = `
entity SAMPLE_MCU is
	generic (PHYSICAL_PIN_MAP : string := "QFN32");

	port (
		PA0, PA1 : inout bit;
		NRST     : in bit;
		SWO      : out bit;
		D        : buffer bit_vector (2 downto 0);
		VDD      : linkage bit;
		VSS      : linkage bit_vector (1 to 2);
		TEST     : linkage bit
	);

	use STD_1149_1_2001.all;

	attribute PIN_MAP of SAMPLE_MCU : entity is PHYSICAL_PIN_MAP;

	constant LQFP48 : PIN_MAP_STRING :=
		"PA0 : 10, PA1 : 11, NRST : 7, SWO : 39," &
		"D : (20, 21, 22), VDD : 1, VSS : (24, 48), TEST : 30";

	constant QFN32 : PIN_MAP_STRING :=
		"PA0 : 6, PA1 : 7, NRST : 4, D : (12, 13, 14)," &
		"VDD : 1, VSS : (16, 33), TEST : 20";

	attribute IDCODE_REGISTER of SAMPLE_MCU : entity is
		"0001" & "0110010000010000" & "00000100000" & "1";
end SAMPLE_MCU;
`

func TestBSDLRead(t *testing.T) {
	p, err := pinout.BSDL{}.Read(strings.NewReader(mcuBSDL), pinout.Options{})
	require.NoError(t, err)
	assert.Equal(t, "SAMPLE_MCU", p.Name)
	require.Len(t, p.Pins, 10)

	byName := map[string]part.Pin{}
	for _, pin := range p.Pins {
		byName[pin.Name] = pin
	}
	assert.Equal(t, "6", byName["PA0"].Number)
	assert.Equal(t, part.Bidirectional, byName["PA0"].Type)
	assert.Equal(t, part.Input, byName["NRST"].Type)
	assert.Equal(t, part.StyleInverted, byName["NRST"].Style)
	assert.Equal(t, part.Output, byName["D(2)"].Type)
	assert.Equal(t, "12", byName["D(2)"].Number)
	assert.Equal(t, part.PowerIn, byName["VDD"].Type)
	assert.Equal(t, part.PowerIn, byName["VSS(2)"].Type)
	assert.Equal(t, "33", byName["VSS(2)"].Number)
	assert.Equal(t, part.Passive, byName["TEST"].Type)
	assert.NotContains(t, byName, "SWO")

	c, err := p.Component("")
	require.NoError(t, err)
	assert.Equal(t, "00010110010000010000000001000001", c.Properties["IDCODE"])
	assert.Equal(t, "STMicroelectronics", c.Manufacturer)
}

func TestBSDLPinMap(t *testing.T) {
	p, err := pinout.BSDL{}.Read(strings.NewReader(mcuBSDL), pinout.Options{PinMap: "LQFP48"})
	require.NoError(t, err)
	require.Len(t, p.Pins, 11)

	_, err = pinout.BSDL{}.Read(strings.NewReader(mcuBSDL), pinout.Options{PinMap: "BGA64"})
	assert.Error(t, err)

	_, err = pinout.BSDL{}.Read(strings.NewReader("entity X is"), pinout.Options{})
	assert.Error(t, err)
}

const latticeCSV = `# Pinout for a small FPGA
PADN,Pin/Ball Function,BANK,Dual Function,LVDS,HIGHSPEED,DQS,CABGA256,CSFBGA121
,,,,,,,,
1,VCC,-,-,-,-,-,F6,E5
2,GND,-,-,-,-,-,A1,A2
3,PB4A,0,-,True_OF_PB4B,-,-,C3,B2
4,PB4B,0,-,Comp_OF_PB4A,-,-,C4,-
5,PR8A,3,MOSI,-,-,-,D5,C4
6,TCK,-,-,-,-,-,E1,D1
7,DONE,1,-,-,-,-,E2,D2
8,PCLKT1_0,1,-,-,-,-,F1,E1
9,SD_REFCLKP,80,-,-,-,-,G1,F1
10,NC,-,-,-,-,-,H1,-
`

func TestFPGARead(t *testing.T) {
	p, err := pinout.FPGA{}.Read(strings.NewReader(latticeCSV), pinout.Options{})
	require.NoError(t, err)
	require.Len(t, p.Pins, 10)

	byName := map[string]part.Pin{}
	for _, pin := range p.Pins {
		byName[pin.Name] = pin
	}
	cases := []struct {
		name   string
		number string
		typ    part.ElectricalType
		unit   int
	}{
		{"VCC", "F6", part.PowerIn, pinout.UnitPower},
		{"GND", "A1", part.PowerIn, pinout.UnitPower},
		{"PB4A", "C3", part.Bidirectional, pinout.UnitBankStart},
		{"PR8A", "D5", part.Bidirectional, pinout.UnitConfig},
		{"TCK", "E1", part.Input, pinout.UnitJTAG},
		{"DONE", "E2", part.Output, pinout.UnitConfig},
		{"PCLKT1_0", "F1", part.Input, pinout.UnitBankStart + 1},
		{"SD_REFCLKP", "G1", part.Input, 15},
		{"NC", "H1", part.NoConnect, pinout.UnitPower},
	}
	for _, tc := range cases {
		pin := byName[tc.name]
		assert.Equal(t, tc.number, pin.Number, tc.name)
		assert.Equal(t, tc.typ, pin.Type, tc.name)
		assert.Equal(t, tc.unit, pin.Unit, tc.name)
	}

	assert.Equal(t, "LVDS true of PB4B", byName["PB4A"].Description)
	assert.Equal(t, "LVDS complement of PB4A", byName["PB4B"].Description)
	assert.Equal(t, []string{"MOSI"}, byName["PR8A"].Alternates)
	assert.Equal(t, part.StyleClock, byName["TCK"].Style)

	assert.Equal(t, map[int]string{
		1: "Power", 2: "Config", 3: "JTAG", 4: "Bank 0", 5: "Bank 1", 15: "SerDes",
	}, p.UnitNames)
	require.Len(t, p.Groups, 6)
	assert.Equal(t, part.CategoryPower, p.Groups[0].Category)
	assert.Equal(t, "Bank 0", p.Groups[1].Name)
	assert.Len(t, p.Groups[0].Pins, 3)

	c, err := p.Component("LFE5U")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 15}, c.Units())
	assert.Equal(t, "SerDes", c.UnitName(15))
}

func TestFPGAPackageColumn(t *testing.T) {
	p, err := pinout.FPGA{}.Read(strings.NewReader(latticeCSV), pinout.Options{PackageColumn: "CSFBGA121"})
	require.NoError(t, err)
	assert.Len(t, p.Pins, 8)
	for _, pin := range p.Pins {
		assert.NotEqual(t, "PB4B", pin.Name)
	}

	_, err = pinout.FPGA{}.Read(strings.NewReader(latticeCSV), pinout.Options{PackageColumn: "QFN72"})
	assert.ErrorIs(t, err, pinout.ErrMissingColumn)
	assert.Contains(t, err.Error(), "CABGA256, CSFBGA121")

	_, err = pinout.FPGA{}.Read(strings.NewReader("# only comments\n,,,\n"), pinout.Options{})
	assert.ErrorIs(t, err, pinout.ErrNoPins)
}

func TestFPGAUnitNames(t *testing.T) {
	names := pinout.FPGAUnitNames()
	assert.Equal(t, "Bank 7", names[pinout.UnitBankStart+7])
	assert.Equal(t, "DPHY0", names[12])
	assert.Equal(t, "DPHY1", names[13])
	assert.Equal(t, "ADC", names[14])
}

func TestDetect(t *testing.T) {
	cases := map[string]pinout.Format{
		"pins.CSV":     pinout.FormatCSV,
		"dir/pins.tsv": pinout.FormatCSV,
		"book.xlsx":    pinout.FormatXLSX,
		"part.toml":    pinout.FormatTOML,
		"stm32.bsd":    pinout.FormatBSDL,
		"lattice.bsdl": pinout.FormatBSDL,
	}
	for path, want := range cases {
		src, err := pinout.Detect(path, "")
		require.NoError(t, err, path)
		assert.Equal(t, want, src.Format(), path)
	}

	src, err := pinout.Detect("ecp5.csv", pinout.FormatFPGA)
	require.NoError(t, err)
	assert.Equal(t, pinout.FormatFPGA, src.Format())

	_, err = pinout.Detect("datasheet.pdf", "")
	assert.ErrorIs(t, err, pinout.ErrUnsupportedFormat)
	_, err = pinout.Detect("pins.csv", "yaml")
	assert.ErrorIs(t, err, pinout.ErrUnsupportedFormat)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "LM358.csv")
	require.NoError(t, os.WriteFile(path, []byte("Pin,Name\n1,OUTA\n2,INA-\n8,VCC\n4,GND\n"), 0o644))

	p, err := pinout.Load(path, pinout.Options{})
	require.NoError(t, err)
	assert.Equal(t, "LM358", p.Name)
	assert.Len(t, p.Pins, 4)

	c, err := p.Component("", part.WithReferencePrefix("IC"))
	require.NoError(t, err)
	assert.Equal(t, "LM358", c.Name)
	assert.Equal(t, "IC", c.ReferencePrefix)
	assert.NotEmpty(t, c.Groups)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("Pin,Foo\n1,x\n"), 0o644))
	_, err = pinout.Load(bad, pinout.Options{})
	assert.ErrorIs(t, err, pinout.ErrMissingColumn)
	assert.Contains(t, err.Error(), "bad.csv")

	_, err = pinout.Load(filepath.Join(dir, "missing.csv"), pinout.Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestComponentDuplicatePins(t *testing.T) {
	p := readCSV(t, "Pin,Name\n1,A\n1,B\n")
	_, err := p.Component("DUP")
	assert.ErrorIs(t, err, part.ErrDuplicatePin)
}
