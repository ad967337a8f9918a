package unitconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	code "github.com/labsuite/chemmanager/pkg/common/code"
	model "github.com/labsuite/chemmanager/pkg/model"
)

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func unit(id int64, name string) *model.Unit {
	u := &model.Unit{Name: name}
	u.ID = id
	return u
}

func derivedUnit(id int64, name string, factor float64, std *model.Unit) *model.Unit {
	u := unit(id, name)
	u.EqualsStandard = f64(factor)
	u.EqualsStandardUnitID = i64(std.ID)
	u.EqualsStandardUnit = std
	return u
}

func TestConvertIdentity(t *testing.T) {
	kg := unit(1, "kg")
	got, err := Convert(2.5, kg, kg)
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)
}

func TestConvertViaStandard(t *testing.T) {
	kg := unit(1, "kg")
	g := derivedUnit(2, "g", 1000, kg)
	mg := derivedUnit(3, "mg", 1e6, kg)

	got, err := Convert(500, g, kg)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-9)

	got, err = Convert(500, g, mg)
	require.NoError(t, err)
	assert.InDelta(t, 500000, got, 1e-6)

	got, err = Convert(0.25, kg, g)
	require.NoError(t, err)
	assert.InDelta(t, 250, got, 1e-9)
}

func TestConvertRoundTrip(t *testing.T) {
	l := unit(4, "L")
	ml := derivedUnit(5, "mL", 1000, l)

	mid, err := Convert(3.21, ml, l)
	require.NoError(t, err)
	back, err := Convert(mid, l, ml)
	require.NoError(t, err)
	assert.InDelta(t, 3.21, back, 1e-9)
}

func TestConvertUnrelatedStandards(t *testing.T) {
	kg := unit(1, "kg")
	l := unit(4, "L")
	g := derivedUnit(2, "g", 1000, kg)
	ml := derivedUnit(5, "mL", 1000, l)

	_, err := Convert(1, g, ml)
	require.Error(t, err)
	assert.Equal(t, code.ConversionUnsupported, code.From(err))

	_, err = Convert(1, kg, l)
	require.Error(t, err)
	assert.Equal(t, code.ConversionUnsupported, code.From(err))
}

func TestConvertMultiHopChain(t *testing.T) {
	kg := unit(1, "kg")
	g := derivedUnit(2, "g", 1000, kg)
	// grain references g, which is itself derived; the single-hop
	// contract refuses the chain instead of silently compounding.
	grain := derivedUnit(6, "grain", 15.43, g)

	_, err := Convert(1, grain, kg)
	require.Error(t, err)
	assert.Equal(t, code.ConversionUnsupported, code.From(err))
}

func TestConvertBrokenFactor(t *testing.T) {
	kg := unit(1, "kg")
	bad := unit(7, "bad")
	bad.EqualsStandardUnitID = i64(kg.ID)
	bad.EqualsStandardUnit = kg

	_, err := Convert(1, bad, kg)
	require.Error(t, err)
	assert.Equal(t, code.ConversionUnsupported, code.From(err))
}

func TestConvertUnsavedUnits(t *testing.T) {
	// Two distinct units that were never persisted must not pass for
	// related just because both lack an id.
	a := &model.Unit{Name: "a"}
	b := &model.Unit{Name: "b"}

	_, err := Convert(1, a, b)
	require.Error(t, err)
	assert.Equal(t, code.ConversionUnsupported, code.From(err))

	// The same instance still converts to itself.
	got, err := Convert(2, a, a)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)
}

func TestConvertNilUnit(t *testing.T) {
	kg := unit(1, "kg")
	_, err := Convert(1, nil, kg)
	assert.Equal(t, code.UnitNotFound, code.From(err))
}
