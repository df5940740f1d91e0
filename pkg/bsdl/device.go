package bsdl

import "strings"

// DeviceInfo is the identification block of an entity.
type DeviceInfo struct {
	IDCode            string // 32 bits, may contain X wildcards
	UserCode          string
	InstructionLength int
	BoundaryLength    int
}

// Attribute returns the specification of the named attribute, or nil.
func (e *Entity) Attribute(name string) *AttributeSpec {
	for _, attr := range e.GetAttributes() {
		if attr.Spec != nil && strings.EqualFold(attr.Spec.Name, name) {
			return attr.Spec
		}
	}
	return nil
}

// GetDeviceInfo collects the IDCODE, USERCODE and register lengths.
func (e *Entity) GetDeviceInfo() DeviceInfo {
	var info DeviceInfo
	if a := e.Attribute("IDCODE_REGISTER"); a != nil {
		info.IDCode = a.Is.GetConcatenatedString()
	}
	if a := e.Attribute("USERCODE_REGISTER"); a != nil {
		info.UserCode = a.Is.GetConcatenatedString()
	}
	if a := e.Attribute("INSTRUCTION_LENGTH"); a != nil {
		info.InstructionLength, _ = a.Is.GetInteger()
	}
	if a := e.Attribute("BOUNDARY_LENGTH"); a != nil {
		info.BoundaryLength, _ = a.Is.GetInteger()
	}
	return info
}
