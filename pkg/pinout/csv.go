package pinout

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSV reads datasheet pin tables. The delimiter is sniffed from the header
// line among comma, semicolon and tab.
type CSV struct{}

func (CSV) Format() Format                { return FormatCSV }
func (CSV) Supports(filename string) bool { return hasExt(filename, ".csv", ".tsv", ".txt") }

func (CSV) Read(r io.Reader, _ Options) (*Pinout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	p, err := readTable(rows)
	if err != nil {
		return nil, err
	}
	p.Format = FormatCSV
	return p, nil
}

// sniffDelimiter picks the candidate occurring most often on the first
// non-blank line, defaulting to a comma.
func sniffDelimiter(data []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		best, count := ',', 0
		for _, d := range []rune{',', ';', '\t'} {
			if n := strings.Count(line, string(d)); n > count {
				best, count = d, n
			}
		}
		return best
	}
	return ','
}
