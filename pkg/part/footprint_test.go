package part_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ka-zam/KiForge/pkg/part"
)

func TestNewPadDimensions(t *testing.T) {
	d, err := part.NewPadDimensions(1.5, 0.3)
	require.NoError(t, err)
	assert.Equal(t, part.ShapeRoundRect, d.Shape)
	assert.InDelta(t, 0.25, d.CornerRatio, 1e-9)

	d.CornerRatio = 0.6
	assert.ErrorIs(t, d.Validate(), part.ErrRatioRange)

	_, err = part.NewPadDimensions(-1, 0.3)
	assert.ErrorIs(t, err, part.ErrInvalidDimension)
}

func TestNewFootprintParamsDefaults(t *testing.T) {
	pkg := qfn32(t)
	pad, err := part.NewPadDimensions(0.7, 0.275)
	require.NoError(t, err)

	p, err := part.NewFootprintParams("QFN-32", pkg, pad, 2.45, 2.45)
	require.NoError(t, err)
	assert.Equal(t, "KiForge:QFN-32", p.FullName())
	assert.Equal(t, part.PadSMD, p.PadType)
	assert.InDelta(t, 0.25, p.CourtyardMargin, 1e-9)
	assert.InDelta(t, 0.12, p.SilkscreenLineWidth, 1e-9)
	assert.Same(t, pkg.ThermalPad, p.ThermalPad())
	assert.True(t, p.HasThermalPad())
}

func TestThermalPadOverrideTakesPrecedence(t *testing.T) {
	pkg := qfn32(t)
	pad, _ := part.NewPadDimensions(0.7, 0.275)
	override, err := part.NewThermalPad(2, 2)
	require.NoError(t, err)

	p, err := part.NewFootprintParams("X", pkg, pad, 2.45, 2.45, part.WithThermalPadOverride(override))
	require.NoError(t, err)
	assert.Same(t, override, p.ThermalPad())

	lqfp, _ := part.NewPackage(part.Package{
		Type: part.LQFP, PinCount: 48, Pitch: 0.5,
		BodyWidth: 7, BodyLength: 7, BodyHeight: 1.4,
	})
	p, err = part.NewFootprintParams("Y", lqfp, pad, 4.25, 4.25)
	require.NoError(t, err)
	assert.Nil(t, p.ThermalPad())
	assert.False(t, p.HasThermalPad())
}

func TestWithThermalVias(t *testing.T) {
	pkg := qfn32(t)
	pad, _ := part.NewPadDimensions(0.7, 0.275)

	p, err := part.NewFootprintParams("X", pkg, pad, 2.45, 2.45,
		part.WithThermalVias(4, 2, 0.25, 0.45), part.WithCornerRatio(0.1))
	require.NoError(t, err)
	tp := p.ThermalPad()
	require.NotNil(t, tp)
	assert.Equal(t, 8, tp.TotalVias())
	assert.InDelta(t, 3.1, tp.Width, 1e-9)
	assert.InDelta(t, 0.25, tp.ViaDrill, 1e-9)
	assert.InDelta(t, 0.1, p.Pad.CornerRatio, 1e-9)
	assert.Equal(t, 3, pkg.ThermalPad.ViaCountX, "package pad must not change")

	_, err = part.NewFootprintParams("X", pkg, pad, 2.45, 2.45, part.WithThermalVias(3, 3, 0, 0.5))
	assert.ErrorIs(t, err, part.ErrInvalidDimension)
}

func TestNewFootprintParamsDivisibility(t *testing.T) {
	pad, _ := part.NewPadDimensions(1.5, 0.3)
	tests := []struct {
		name  string
		typ   part.PackageType
		pins  int
		valid bool
	}{
		{"quad 48", part.LQFP, 48, true},
		{"quad 30", part.LQFP, 30, false},
		{"qfn 30", part.QFN, 30, false},
		{"dfn 10", part.DFN, 10, true},
		{"dfn 9", part.DFN, 9, false},
		{"sot-23 3", part.SOT23, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := part.NewPackage(part.Package{
				Type: tt.typ, PinCount: tt.pins, Pitch: 0.5,
				BodyWidth: 7, BodyLength: 7, BodyHeight: 1,
			})
			require.NoError(t, err)
			_, err = part.NewFootprintParams("X", pkg, pad, 4, 4)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, part.ErrPinCount)
			}
		})
	}
}

func TestNewFootprintParamsValidation(t *testing.T) {
	pkg := qfn32(t)
	pad, _ := part.NewPadDimensions(0.7, 0.275)

	_, err := part.NewFootprintParams(" ", pkg, pad, 2, 2)
	assert.ErrorIs(t, err, part.ErrEmptyField)

	_, err = part.NewFootprintParams("X", nil, pad, 2, 2)
	assert.ErrorIs(t, err, part.ErrEmptyField)

	_, err = part.NewFootprintParams("X", pkg, pad, 2, 2, part.WithCourtyard(0, 0.05))
	assert.ErrorIs(t, err, part.ErrInvalidDimension)

	_, err = part.NewFootprintParams("X", pkg, pad, 2, 2, part.WithPadType("glued"))
	assert.ErrorIs(t, err, part.ErrUnknownValue)
}

func TestNewModel3D(t *testing.T) {
	m := part.NewModel3D("${KICAD9_3DMODEL_DIR}/Package_QFP.3dshapes/LQFP-48.step")
	assert.Equal(t, part.Vec3{X: 1, Y: 1, Z: 1}, m.Scale)
	assert.Equal(t, part.Vec3{}, m.Offset)
}
