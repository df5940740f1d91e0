package idcode

import (
	"errors"
	"testing"
)

func TestParseIDCode(t *testing.T) {
	id := ParseIDCode(0x41111043)
	if id.Version != 4 || id.PartNumber != 0x1111 || id.ManufacturerCode != 0x021 || !id.HasIDCode {
		t.Errorf("ParseIDCode(0x41111043) = %+v", id)
	}
}

func TestParsePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		raw     uint32
		maker   string
		wantErr error
	}{
		{
			name:    "stm32",
			pattern: "0001 0110010000010000 00000100000 1",
			raw:     0x16410041,
			maker:   "STMicroelectronics",
		},
		{
			name:    "version wildcard",
			pattern: "XXXX_0000000100100101_00001001001_1",
			raw:     0x00125093,
			maker:   "Xilinx",
		},
		{
			name:    "short",
			pattern: "0101",
			wantErr: ErrPatternLength,
		},
		{
			name:    "manufacturer wildcard",
			pattern: "0000000000000000000000000000XXX1",
			wantErr: ErrWildcard,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParsePattern(tt.pattern)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if id.Raw != tt.raw {
				t.Errorf("Raw = %#08x, want %#08x", id.Raw, tt.raw)
			}
			m, ok := id.Manufacturer()
			if !ok || m.Name != tt.maker {
				t.Errorf("Manufacturer() = %q, %v; want %q", m.Name, ok, tt.maker)
			}
		})
	}
}

func TestParsePatternBadBit(t *testing.T) {
	if _, err := ParsePattern("0000000000000000000000000000002 1"); err == nil {
		t.Error("expected error for digit 2")
	}
}

func TestLookupManufacturerUnknown(t *testing.T) {
	m, ok := LookupManufacturer(0x7FF)
	if ok {
		t.Fatal("0x7FF should not be listed")
	}
	if m.Name != "Unknown (0x7FF)" {
		t.Errorf("Name = %q", m.Name)
	}
}
