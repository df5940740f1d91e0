// Package idcode decodes IEEE 1149.1 IDCODE values and names their JEP106
// manufacturer.
package idcode

// IDCode represents a parsed IEEE 1149.1 JTAG IDCODE
type IDCode struct {
	Raw              uint32 // full IDCODE
	Version          uint8  // [31:28]
	PartNumber       uint16 // [27:12]
	ManufacturerCode uint16 // [11:1] JEP106, bank and ID
	HasIDCode        bool   // bit 0 == 1
}

// Manufacturer is a JEP106 entry.
type Manufacturer struct {
	Code         uint16
	Name         string // "Texas Instruments"
	Abbreviation string // "TI"
}
