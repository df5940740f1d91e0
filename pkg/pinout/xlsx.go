package pinout

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSX reads a pin table from a worksheet, with the same header rules as
// CSV.
type XLSX struct{}

func (XLSX) Format() Format                { return FormatXLSX }
func (XLSX) Supports(filename string) bool { return hasExt(filename, ".xlsx", ".xlsm") }

func (XLSX) Read(r io.Reader, opts Options) (*Pinout, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoPins
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx sheet %q: %w", sheet, err)
	}
	p, err := readTable(rows)
	if err != nil {
		return nil, fmt.Errorf("xlsx sheet %q: %w", sheet, err)
	}
	p.Format = FormatXLSX
	return p, nil
}
