package pinout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Ka-zam/KiForge/pkg/part"
)

// Header aliases, most specific first.
var (
	numberColumns    = []string{"pin", "pin_number", "pin_num", "number", "num", "#", "pin#", "no", "no.", "ball"}
	nameColumns      = []string{"name", "pin_name", "signal", "function", "symbol", "label"}
	typeColumns      = []string{"type", "pin_type", "electrical_type", "io", "i/o", "direction", "dir"}
	descColumns      = []string{"description", "desc", "comment", "notes", "function_description"}
	alternateColumns = []string{"alternate", "alt", "alt_function", "alternate_function", "alt_functions"}
	unitColumns      = []string{"unit", "symbol_unit"}
)

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

// columns maps each field to its header index, -1 when absent.
type columns struct {
	number, name, typ, desc, alternate, unit int
}

// findColumn returns the first header equal to an alias, else the first
// header containing an alias of three or more characters. Headers already
// taken are skipped.
func findColumn(headers []string, aliases []string, taken map[int]bool) int {
	for _, a := range aliases {
		for i, h := range headers {
			if !taken[i] && h == a {
				return i
			}
		}
	}
	for _, a := range aliases {
		if len(a) < 3 {
			continue
		}
		for i, h := range headers {
			if !taken[i] && strings.Contains(h, a) {
				return i
			}
		}
	}
	return -1
}

func detectColumns(header []string) (columns, error) {
	norm := make([]string, len(header))
	for i, h := range header {
		norm[i] = normalizeHeader(h)
	}
	taken := map[int]bool{}
	pick := func(aliases []string) int {
		i := findColumn(norm, aliases, taken)
		if i >= 0 {
			taken[i] = true
		}
		return i
	}

	var c columns
	if c.number = pick(numberColumns); c.number < 0 {
		return c, fmt.Errorf("%w: pin number (one of %s)", ErrMissingColumn, strings.Join(numberColumns, ", "))
	}
	if c.name = pick(nameColumns); c.name < 0 {
		return c, fmt.Errorf("%w: pin name (one of %s)", ErrMissingColumn, strings.Join(nameColumns, ", "))
	}
	c.typ = pick(typeColumns)
	c.desc = pick(descColumns)
	c.alternate = pick(alternateColumns)
	c.unit = pick(unitColumns)
	return c, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// splitAlternates splits "UART_TX, SPI_MOSI; TIM1" into names.
func splitAlternates(s string) []string {
	var out []string
	for _, a := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// readTable turns spreadsheet rows into pins. The first non-blank row is
// the header. Rows missing a number or name are skipped.
func readTable(rows [][]string) (*Pinout, error) {
	header := 0
	for header < len(rows) && blank(rows[header]) {
		header++
	}
	if header == len(rows) {
		return nil, ErrNoPins
	}
	cols, err := detectColumns(rows[header])
	if err != nil {
		return nil, err
	}

	var pins []part.Pin
	for i := header + 1; i < len(rows); i++ {
		row, line := rows[i], i+1
		if blank(row) {
			continue
		}
		number, name := cell(row, cols.number), cell(row, cols.name)
		if number == "" || name == "" {
			continue
		}
		opts := []part.PinOption{part.WithStyle(InferStyle(name))}
		if d := cell(row, cols.desc); d != "" {
			opts = append(opts, part.WithDescription(d))
		}
		if alts := splitAlternates(cell(row, cols.alternate)); len(alts) > 0 {
			opts = append(opts, part.WithAlternates(alts...))
		}
		if u := cell(row, cols.unit); u != "" {
			unit, err := strconv.Atoi(u)
			if err != nil || unit < 1 {
				return nil, fmt.Errorf("row %d: unit %q: %w", line, u, part.ErrInvalidUnit)
			}
			opts = append(opts, part.WithUnit(unit))
		}
		p, err := part.NewPin(number, name, ResolveType(cell(row, cols.typ), name), opts...)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		pins = append(pins, p)
	}
	if len(pins) == 0 {
		return nil, ErrNoPins
	}
	return &Pinout{Pins: pins, Groups: groupByCategory(pins)}, nil
}
