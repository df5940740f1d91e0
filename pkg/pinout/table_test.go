package pinout_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Ka-zam/KiForge/pkg/part"
	"github.com/Ka-zam/KiForge/pkg/pinout"
)

const mcuCSV = `Pin,Name,Type,Description,Alternate Function
1,VDD,pwr,Supply,
2,PA0,I/O,,"UART_TX, TIM2_CH1"

3,NRST,,Reset input,
4,GND,g,,
`

func readCSV(t *testing.T, src string) *pinout.Pinout {
	t.Helper()
	p, err := pinout.CSV{}.Read(strings.NewReader(src), pinout.Options{})
	require.NoError(t, err)
	return p
}

func TestCSVRead(t *testing.T) {
	p := readCSV(t, mcuCSV)
	assert.Equal(t, pinout.FormatCSV, p.Format)
	require.Len(t, p.Pins, 4)

	vdd := p.Pins[0]
	assert.Equal(t, "1", vdd.Number)
	assert.Equal(t, part.PowerIn, vdd.Type)
	assert.Equal(t, "Supply", vdd.Description)

	pa0 := p.Pins[1]
	assert.Equal(t, part.Bidirectional, pa0.Type)
	assert.Equal(t, []string{"UART_TX", "TIM2_CH1"}, pa0.Alternates)

	nrst := p.Pins[2]
	assert.Equal(t, part.Input, nrst.Type)
	assert.Equal(t, part.StyleInverted, nrst.Style)
	assert.Equal(t, "Reset input", nrst.Description)

	assert.Equal(t, part.PowerIn, p.Pins[3].Type)

	require.Len(t, p.Groups, 4)
	assert.Equal(t, part.CategoryPower, p.Groups[0].Category)
	assert.Equal(t, part.CategoryGround, p.Groups[3].Category)
}

func TestCSVDelimiters(t *testing.T) {
	p := readCSV(t, "Pin Number;Pin Name;Direction\n1;A0;in\n2;OUT;o\n")
	require.Len(t, p.Pins, 2)
	assert.Equal(t, "A0", p.Pins[0].Name)
	assert.Equal(t, part.Input, p.Pins[0].Type)
	assert.Equal(t, part.Output, p.Pins[1].Type)

	p = readCSV(t, "Ball\tSignal\tUnit\nA1\t VCC\t2\n")
	require.Len(t, p.Pins, 1)
	assert.Equal(t, "A1", p.Pins[0].Number)
	assert.Equal(t, "VCC", p.Pins[0].Name)
	assert.Equal(t, 2, p.Pins[0].Unit)
}

func TestCSVHeaderMatching(t *testing.T) {
	// "io" must not claim the description column.
	p := readCSV(t, "No.,Signal,Pin Description\n5,EN,Enable\n")
	require.Len(t, p.Pins, 1)
	assert.Equal(t, "Enable", p.Pins[0].Description)
	assert.Equal(t, part.Unspecified, p.Pins[0].Type)
}

func TestCSVErrors(t *testing.T) {
	_, err := pinout.CSV{}.Read(strings.NewReader("Pin,Foo\n1,x\n"), pinout.Options{})
	assert.ErrorIs(t, err, pinout.ErrMissingColumn)

	_, err = pinout.CSV{}.Read(strings.NewReader("Pin,Name\n"), pinout.Options{})
	assert.ErrorIs(t, err, pinout.ErrNoPins)

	_, err = pinout.CSV{}.Read(strings.NewReader(""), pinout.Options{})
	assert.ErrorIs(t, err, pinout.ErrNoPins)

	_, err = pinout.CSV{}.Read(strings.NewReader("Pin,Name,Unit\n1,A,x\n"), pinout.Options{})
	assert.ErrorIs(t, err, part.ErrInvalidUnit)
	assert.Contains(t, err.Error(), "row 2")
}

func TestCSVUnitColumn(t *testing.T) {
	for _, unit := range []string{"0", "-1", "2abc"} {
		t.Run(unit, func(t *testing.T) {
			_, err := pinout.CSV{}.Read(strings.NewReader("Pin,Name,Unit\n1,A,"+unit+"\n"), pinout.Options{})
			assert.ErrorIs(t, err, part.ErrInvalidUnit)
		})
	}

	// Rows before the header still count.
	_, err := pinout.CSV{}.Read(strings.NewReader(",,\nPin,Name,Unit\n1,A,1\n2,B,0\n"), pinout.Options{})
	require.ErrorIs(t, err, part.ErrInvalidUnit)
	assert.Contains(t, err.Error(), "row 4")
}

func xlsxData(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestXLSXRead(t *testing.T) {
	data := xlsxData(t, "Sheet1", [][]any{
		{"Pin #", "Pin Name", "I/O"},
		{1, "VCC", "P"},
		{2, "DATA", "I/O"},
	})
	p, err := pinout.XLSX{}.Read(strings.NewReader(string(data)), pinout.Options{})
	require.NoError(t, err)
	assert.Equal(t, pinout.FormatXLSX, p.Format)
	require.Len(t, p.Pins, 2)
	assert.Equal(t, "1", p.Pins[0].Number)
	assert.Equal(t, part.PowerIn, p.Pins[0].Type)
	assert.Equal(t, part.Bidirectional, p.Pins[1].Type)
}

func TestXLSXSheet(t *testing.T) {
	data := xlsxData(t, "Pins", [][]any{
		{"Number", "Name"},
		{"A1", "GND"},
	})
	p, err := pinout.XLSX{}.Read(strings.NewReader(string(data)), pinout.Options{Sheet: "Pins"})
	require.NoError(t, err)
	require.Len(t, p.Pins, 1)
	assert.Equal(t, "A1", p.Pins[0].Number)

	_, err = pinout.XLSX{}.Read(strings.NewReader(string(data)), pinout.Options{Sheet: "Missing"})
	assert.Error(t, err)

	_, err = pinout.XLSX{}.Read(strings.NewReader("not a zip"), pinout.Options{})
	assert.Error(t, err)
}
