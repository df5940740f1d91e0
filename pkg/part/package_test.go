package part_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ka-zam/KiForge/pkg/part"
)

func qfn32(t *testing.T) *part.Package {
	t.Helper()
	tp, err := part.NewThermalPad(3.1, 3.1)
	require.NoError(t, err)
	pkg, err := part.NewPackage(part.Package{
		Type:       part.QFN,
		PinCount:   33,
		Pitch:      0.5,
		BodyWidth:  5,
		BodyLength: 5,
		BodyHeight: 0.9,
		ThermalPad: tp,
	})
	require.NoError(t, err)
	return pkg
}

func TestThermalPadDefaults(t *testing.T) {
	tp, err := part.NewThermalPad(3, 2)
	require.NoError(t, err)
	assert.Equal(t, "EP", tp.Number)
	assert.Equal(t, 3, tp.ViaCountX)
	assert.Equal(t, 9, tp.TotalVias())
	assert.InDelta(t, 6.0, tp.Area(), 1e-9)
	assert.InDelta(t, 0.3, tp.ViaDrill, 1e-9)
}

func TestThermalPadValidation(t *testing.T) {
	_, err := part.NewThermalPad(0, 3)
	assert.ErrorIs(t, err, part.ErrInvalidDimension)

	tp, err := part.NewThermalPad(3, 3)
	require.NoError(t, err)
	tp.PasteCoverage = 1.5
	assert.ErrorIs(t, tp.Validate(), part.ErrRatioRange)

	tp.PasteCoverage = 0.5
	tp.ViaCountY = -1
	assert.ErrorIs(t, tp.Validate(), part.ErrOutOfRange)

	tp.ViaCountY = 0
	assert.NoError(t, tp.Validate())
	assert.Equal(t, 0, tp.TotalVias())
}

func TestPackageFamilyPredicates(t *testing.T) {
	tests := []struct {
		typ                               part.PackageType
		leaded, leadless, bga, quad, dual bool
	}{
		{part.LQFP, true, false, false, true, false},
		{part.QFN, false, true, false, true, false},
		{part.DFN, false, true, false, false, true},
		{part.SOIC, true, false, false, false, true},
		{part.WLCSP, false, false, true, false, false},
		{part.SOT23, false, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.leaded, tt.typ.IsLeaded())
			assert.Equal(t, tt.leadless, tt.typ.IsLeadless())
			assert.Equal(t, tt.bga, tt.typ.IsBGA())
			assert.Equal(t, tt.quad, tt.typ.IsQuad())
			assert.Equal(t, tt.dual, tt.typ.IsDual())
		})
	}
}

func TestPinsPerSide(t *testing.T) {
	pkg := qfn32(t)
	n, ok := pkg.PinsPerSide()
	require.True(t, ok)
	assert.Equal(t, 8, n)

	_, ok = pkg.PinsPerRow()
	assert.False(t, ok)

	dfn, err := part.NewPackage(part.Package{
		Type: part.DFN, PinCount: 8, Pitch: 0.5,
		BodyWidth: 3, BodyLength: 3, BodyHeight: 0.9,
	})
	require.NoError(t, err)
	rows, ok := dfn.PinsPerRow()
	require.True(t, ok)
	assert.Equal(t, 4, rows)
	_, ok = dfn.PinsPerSide()
	assert.False(t, ok)
}

func TestIPCName(t *testing.T) {
	pkg := qfn32(t)
	assert.Equal(t, "QFN-32-1EP_5.0x5.0mm_P0.5mm_EP3.1x3.1mm", pkg.IPCName())
	assert.Equal(t, pkg.IPCName(), pkg.Name, "empty name defaults to the IPC name")

	lqfp, err := part.NewPackage(part.Package{
		Type: part.LQFP, Name: "LQFP-48", PinCount: 48, Pitch: 0.5,
		BodyWidth: 7, BodyLength: 7, BodyHeight: 1.4,
	})
	require.NoError(t, err)
	assert.Equal(t, "LQFP-48_7.0x7.0mm_P0.5mm", lqfp.IPCName())
	assert.Equal(t, "LQFP-48", lqfp.Name)
}

func TestPackageValidation(t *testing.T) {
	base := part.Package{
		Type: part.LQFP, PinCount: 48, Pitch: 0.5,
		BodyWidth: 7, BodyLength: 7, BodyHeight: 1.4,
	}

	bad := base
	bad.Pitch = 0
	_, err := part.NewPackage(bad)
	assert.ErrorIs(t, err, part.ErrInvalidDimension)

	bad = base
	bad.Type = "PLCC"
	_, err = part.NewPackage(bad)
	assert.ErrorIs(t, err, part.ErrUnknownValue)

	bad = base
	bad.LeadSpan = -1
	_, err = part.NewPackage(bad)
	assert.ErrorIs(t, err, part.ErrInvalidDimension)

	for _, v := range []float64{math.Inf(1), math.NaN()} {
		bad = base
		bad.BodyWidth = v
		_, err = part.NewPackage(bad)
		assert.ErrorIs(t, err, part.ErrInvalidDimension)

		bad = base
		bad.LeadSpan = v
		_, err = part.NewPackage(bad)
		assert.ErrorIs(t, err, part.ErrInvalidDimension)
	}

	_, err = part.NewPadDimensions(math.Inf(1), 0.3)
	assert.ErrorIs(t, err, part.ErrInvalidDimension)

	// Divisibility is checked when footprint parameters are built.
	bad = base
	bad.PinCount = 30
	_, err = part.NewPackage(bad)
	assert.NoError(t, err)
}

func TestParsePackageType(t *testing.T) {
	typ, err := part.ParsePackageType(" sot-23 ")
	require.NoError(t, err)
	assert.Equal(t, part.SOT23, typ)

	_, err = part.ParsePackageType("PLCC")
	assert.ErrorIs(t, err, part.ErrUnknownValue)
}

func TestFormatDim(t *testing.T) {
	assert.Equal(t, "5.0", part.FormatDim(5))
	assert.Equal(t, "0.65", part.FormatDim(0.65))
	assert.Equal(t, "3.1", part.FormatDim(3.1))
	assert.Equal(t, "12.0", part.FormatDim(12))
	assert.Equal(t, "4.2", part.FormatDim(7*0.6))
}

func TestRowLetter(t *testing.T) {
	want := []string{"A", "B", "C", "D", "E", "F", "G", "H", "J", "K", "L", "M", "N", "P", "R", "T", "U", "V", "W", "Y"}
	for i, w := range want {
		assert.Equal(t, w, part.RowLetter(i), "row %d", i)
	}
	assert.Equal(t, "AA", part.RowLetter(20))
	assert.Equal(t, "AB", part.RowLetter(21))
	assert.Equal(t, "BA", part.RowLetter(40))
	assert.Equal(t, "", part.RowLetter(-1))
}
