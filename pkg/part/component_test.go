package part_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ka-zam/KiForge/pkg/part"
)

func samplePins() []part.Pin {
	return []part.Pin{
		part.MustPin("1", "VCC", part.PowerIn),
		part.MustPin("2", "GND", part.PowerIn),
		part.MustPin("3", "IN1", part.Input),
		part.MustPin("4", "OUT1", part.Output),
		part.MustPin("5", "NC", part.NoConnect),
		part.MustPin("6", "SDA", part.Bidirectional, part.WithUnit(2)),
	}
}

func TestNewComponent(t *testing.T) {
	c, err := part.NewComponent("  MCU1 ", samplePins(),
		part.WithManufacturer("Acme"),
		part.WithDatasheet("https://example.com/mcu1.pdf"),
		part.WithUnitNames(map[int]string{2: "I2C"}),
	)
	require.NoError(t, err)
	assert.Equal(t, "MCU1", c.Name)
	assert.Equal(t, "U", c.ReferencePrefix)
	assert.Equal(t, 6, c.PinCount())
	assert.Equal(t, 2, c.SymbolUnits)
	assert.Equal(t, []int{1, 2}, c.Units())
	assert.True(t, c.IsMultiUnit())
	assert.Equal(t, "Unit 1", c.UnitName(1))
	assert.Equal(t, "I2C", c.UnitName(2))
}

func TestNewComponentDuplicatePins(t *testing.T) {
	pins := append(samplePins(), part.MustPin("3", "IN2", part.Input), part.MustPin("1", "VDD", part.PowerIn))
	_, err := part.NewComponent("X", pins)
	require.Error(t, err)
	assert.ErrorIs(t, err, part.ErrDuplicatePin)
	assert.Contains(t, err.Error(), "3, 1")
}

func TestNewComponentTrimsPinNumbers(t *testing.T) {
	raw := part.Pin{Number: " 1 ", Name: "GND", Type: part.PowerIn, Style: part.StyleLine, Unit: 1}
	_, err := part.NewComponent("X", []part.Pin{part.MustPin("1", "VCC", part.PowerIn), raw})
	require.ErrorIs(t, err, part.ErrDuplicatePin)

	raw.Number = " 2\t"
	c, err := part.NewComponent("X", []part.Pin{part.MustPin("1", "VCC", part.PowerIn), raw})
	require.NoError(t, err)
	assert.Equal(t, "2", c.Pins[1].Number)
	_, ok := c.PinByNumber("2")
	assert.True(t, ok)

	c.Pins[1].Number = " 2"
	assert.ErrorIs(t, c.Validate(), part.ErrUntrimmed)
}

func TestNewComponentPrimaryPackageRange(t *testing.T) {
	pkg, err := part.NewPackage(part.Package{
		Type: part.LQFP, PinCount: 48, Pitch: 0.5,
		BodyWidth: 7, BodyLength: 7, BodyHeight: 1.4,
	})
	require.NoError(t, err)

	_, err = part.NewComponent("Y", nil, part.WithPackages(3))
	assert.ErrorIs(t, err, part.ErrOutOfRange)

	_, err = part.NewComponent("Y", nil, part.WithPackages(1, pkg))
	assert.ErrorIs(t, err, part.ErrOutOfRange)

	c, err := part.NewComponent("Y", nil, part.WithPackages(0, pkg))
	require.NoError(t, err)
	assert.Same(t, pkg, c.PrimaryPackage())
}

func TestNewComponentEmptyPins(t *testing.T) {
	c, err := part.NewComponent("EMPTY", nil)
	require.NoError(t, err)
	assert.Empty(t, c.Units())
	assert.Equal(t, 1, c.SymbolUnits)
	assert.Nil(t, c.PrimaryPackage())
}

func TestNewComponentValidation(t *testing.T) {
	_, err := part.NewComponent("", nil)
	assert.ErrorIs(t, err, part.ErrEmptyField)

	_, err = part.NewComponent("X", nil, part.WithReferencePrefix(""))
	assert.ErrorIs(t, err, part.ErrEmptyField)

	_, err = part.NewComponent("X", []part.Pin{{Number: "1", Name: "A", Type: part.Input, Style: part.StyleLine}})
	assert.ErrorIs(t, err, part.ErrInvalidUnit)
}

func TestComponentQueries(t *testing.T) {
	pkg := qfn32(t)
	c, err := part.NewComponent("MCU1", samplePins(), part.WithPackages(0, pkg))
	require.NoError(t, err)

	assert.Same(t, pkg, c.PrimaryPackage())
	assert.Len(t, c.PinsByType(part.PowerIn), 2)
	assert.Len(t, c.PinsByUnit(2), 1)
	assert.Len(t, c.PowerPins(), 2)
	assert.Len(t, c.GroundPins(), 1)
	assert.Len(t, c.NCPins(), 1)

	p, ok := c.PinByNumber("4")
	require.True(t, ok)
	assert.Equal(t, "OUT1", p.Name)

	p, ok = c.PinByName("sda")
	require.True(t, ok)
	assert.Equal(t, "6", p.Number)

	_, ok = c.PinByName("missing")
	assert.False(t, ok)
}

func TestComponentPinsAreCopied(t *testing.T) {
	pins := samplePins()
	c, err := part.NewComponent("X", pins)
	require.NoError(t, err)
	pins[0].Name = "CHANGED"
	assert.Equal(t, "VCC", c.Pins[0].Name)
}
