package algebra_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/dimensional/algebra"
)

func TestQuantity_AddRequiresSameDimension(t *testing.T) {
	r := newTestRegistry(t)
	l := algebra.Of(1.0, unit(t, r, "si", length))
	m := algebra.Of(1.0, unit(t, r, "si", mass))

	// WHEN: Adding a length to a mass
	_, err := l.Add(m)

	// THEN: The error carries both dimensions
	var ide *algebra.IncompatibleDimensionsError
	require.True(t, errors.As(err, &ide))
	assert.True(t, ide.From.Equal(length))
	assert.True(t, ide.To.Equal(mass))

	_, err = l.Sub(m)
	assert.ErrorIs(t, err, algebra.ErrIncompatibleDimensions)
}

func TestQuantity_AddRequiresSameSystem(t *testing.T) {
	r := newTestRegistry(t)
	m := algebra.Of(1.0, unit(t, r, "si", length))
	cm := algebra.Of(1.0, unit(t, r, "cgs", length))

	_, err := m.Add(cm)
	var ume *algebra.UnitMismatchError
	require.True(t, errors.As(err, &ume))
	assert.ErrorIs(t, err, algebra.ErrUnitMismatch)

	// AND: Converting first makes the sum valid
	converted, err := cm.ConvertWith(r, m.Unit())
	require.NoError(t, err)
	sum, err := m.Add(converted)
	require.NoError(t, err)
	assert.InDelta(t, 1.01, sum.Value(), 1e-12)
}

func TestQuantity_MulComposesDimensions(t *testing.T) {
	r := newTestRegistry(t)
	l := algebra.Of(2.0, unit(t, r, "si", length))
	m := algebra.Of(3.0, unit(t, r, "si", mass))

	p, err := l.Mul(m)
	require.NoError(t, err)
	assert.Equal(t, 6.0, p.Value())
	assert.Equal(t, "L·M", p.Unit().Dimension().String())
	assert.Equal(t, "6 L·M [si]", p.String())

	q, err := p.Div(m)
	require.NoError(t, err)
	assert.True(t, q.Unit().Equal(l.Unit()))
	assert.Equal(t, 2.0, q.Value())
}

func TestQuantity_MulAcrossSystems(t *testing.T) {
	r := newTestRegistry(t)
	km := algebra.Of(3.0, baseUnit(t, r, kilometer))
	g := algebra.Of(2.0, baseUnit(t, r, gram))

	p, err := km.Mul(g)
	require.NoError(t, err)
	assert.Equal(t, "{L=7,M=6}", p.Unit().System().String())

	_, err = km.Div(algebra.Of(1.0, baseUnit(t, r, meter)))
	assert.ErrorIs(t, err, algebra.ErrConflictingBaseUnit)
}

func TestQuantity_PowAndRoot(t *testing.T) {
	r := newTestRegistry(t)
	side := algebra.Of(3.0, unit(t, r, "si", length))

	area := side.Pow(algebra.Int(2))
	assert.Equal(t, 9.0, area.Value())
	assert.Equal(t, "L^2", area.Unit().Dimension().String())

	back, err := area.Root(2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, back.Value())
	assert.True(t, back.Unit().Equal(side.Unit()))

	cube, err := algebra.Of(-27.0, unit(t, r, "si", algebra.Power(length, algebra.Int(3)))).Root(3)
	require.NoError(t, err)
	assert.InDelta(t, -3.0, cube.Value(), 1e-12)

	// A negative degree inverts the unit
	perLength, err := algebra.Of(-27.0, unit(t, r, "si", algebra.Power(length, algebra.Int(3)))).Root(-3)
	require.NoError(t, err)
	assert.InDelta(t, -1.0/3, perLength.Value(), 1e-12)
	assert.Equal(t, "L^-1", perLength.Unit().Dimension().String())

	quarter, err := algebra.Of(16.0, unit(t, r, "si", algebra.Power(length, algebra.Int(-2)))).Root(-2)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, quarter.Value(), 1e-12)
	assert.True(t, quarter.Unit().Equal(side.Unit()))

	_, err = area.Root(0)
	assert.ErrorIs(t, err, algebra.ErrInvalidExponent)
}

func TestQuantity_ScalarResults(t *testing.T) {
	r := newTestRegistry(t)
	a := algebra.Of(2.0, unit(t, r, "si", length))
	b := algebra.Of(4.0, unit(t, r, "si", length))

	ratio, err := a.Div(b)
	require.NoError(t, err)
	assert.Equal(t, 0.5, ratio.Value())
	assert.True(t, ratio.Unit().IsDimensionless())

	assert.Equal(t, -2.0, a.Neg().Value())
	assert.Equal(t, 5.0, a.Scale(2.5).Value())
	assert.Equal(t, float32(2), algebra.Cast[float32](a).Value())
}

func TestQuantity_ConvertDifference(t *testing.T) {
	r := newTestRegistry(t)
	c := algebra.Of(10.0, unit(t, r, "celsius", temperature))
	f := unit(t, r, "fahrenheit", temperature)

	// WHEN: 10 degrees is a reading
	reading, err := c.ConvertWith(r, f)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, reading.Value(), 1e-9)

	// WHEN: 10 degrees is a rise
	rise, err := c.ConvertDifferenceWith(r, f)
	require.NoError(t, err)
	assert.InDelta(t, 18.0, rise.Value(), 1e-9)
	assert.True(t, rise.Unit().Equal(f))
}

func TestQuantity_GallonRoundTrip(t *testing.T) {
	// GIVEN: Liquid volume as its own dimension with two gallons
	r := algebra.NewRegistry()
	b := algebra.NewBatch(r)
	b.Dimension(algebra.FirstUserDimension, "liquid_volume", "V")
	b.Root(1, algebra.FirstUserDimension, "imperial_gallon", "gal (imp)")
	b.Root(2, algebra.FirstUserDimension, "us_gallon", "gal (US)")
	b.System("imperial-liquid", 1)
	b.System("us-liquid", 2)
	b.Rule(1, 2, "1.2009499255", "", true)
	require.NoError(t, b.Err())

	volume := algebra.Base(algebra.FirstUserDimension)
	imperial := unit(t, r, "imperial-liquid", volume)
	us := unit(t, r, "us-liquid", volume)

	// WHEN: Converting there and back
	out, err := algebra.Of(10.0, imperial).ConvertWith(r, us)
	require.NoError(t, err)
	back, err := out.ConvertWith(r, imperial)
	require.NoError(t, err)

	// THEN: The value survives within tolerance
	assert.InDelta(t, 12.009499255, out.Value(), 1e-9)
	assert.InDelta(t, 10.0, back.Value(), 1e-9)
}

func TestDecimalQuantity_ExactConversion(t *testing.T) {
	r := newTestRegistry(t)
	km := baseUnit(t, r, kilometer)
	m := baseUnit(t, r, meter)

	q, err := algebra.NewDecimalFromString("1.5", km)
	require.NoError(t, err)

	out, err := q.ConvertWith(r, m)
	require.NoError(t, err)
	assert.Equal(t, "1500", out.Value.String())
	assert.Equal(t, 1500.0, out.Float().Value())

	_, err = algebra.NewDecimalFromString("abc", km)
	assert.Error(t, err)
}

func TestDecimalQuantity_Arithmetic(t *testing.T) {
	r := newTestRegistry(t)
	m := unit(t, r, "si", length)

	a := algebra.NewDecimal(decimal.RequireFromString("0.1"), m)
	b := algebra.NewDecimal(decimal.RequireFromString("0.2"), m)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "0.3", sum.Value.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.IsNegative())

	prod, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, "0.02", prod.Value.String())
	assert.Equal(t, "L^2", prod.Unit.Dimension().String())

	_, err = a.Div(algebra.NewDecimal(decimal.Zero, m))
	assert.Error(t, err)

	_, err = a.Add(algebra.NewDecimal(decimal.NewFromInt(1), unit(t, r, "si", mass)))
	assert.ErrorIs(t, err, algebra.ErrIncompatibleDimensions)
}
