package algebra_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/dimensional/algebra"
)

var (
	meterUnit      = algebra.BaseUnit{ID: meter, Dimension: algebra.Length, Name: "meter", Scale: decimal.NewFromInt(1)}
	kilogramUnit   = algebra.BaseUnit{ID: kilogram, Dimension: algebra.Mass, Name: "kilogram", Scale: decimal.NewFromInt(1)}
	secondUnit     = algebra.BaseUnit{ID: second, Dimension: algebra.Time, Name: "second", Scale: decimal.NewFromInt(1)}
	centimeterUnit = algebra.BaseUnit{ID: centimeter, Dimension: algebra.Length, Name: "centimeter", Parent: meter, Scale: decimal.RequireFromString("0.01")}
)

func TestUnion_OrderIndependent(t *testing.T) {
	a, err := algebra.Heterogeneous(meterUnit, kilogramUnit, secondUnit)
	require.NoError(t, err)
	b, err := algebra.Heterogeneous(secondUnit, meterUnit, kilogramUnit)
	require.NoError(t, err)

	assert.True(t, algebra.SameSystem(a, b))
	assert.False(t, a.IsHomogeneous())
	assert.Equal(t, "{L=1,M=2,T=3}", a.String())

	id, ok := a.UnitFor(algebra.Mass)
	assert.True(t, ok)
	assert.Equal(t, kilogram, id)
	_, ok = a.UnitFor(algebra.Temperature)
	assert.False(t, ok)
}

func TestUnion_SharedDimensionMustAgree(t *testing.T) {
	// GIVEN: Two systems that both bind length
	withMeter := algebra.SystemOf(meterUnit)
	withCentimeter := algebra.SystemOf(centimeterUnit)

	// WHEN: Same base unit
	s, err := algebra.Union(withMeter, algebra.SystemOf(meterUnit))
	require.NoError(t, err)
	assert.Len(t, s.Bindings(), 1)

	// WHEN: Different base units
	_, err = algebra.Union(withMeter, withCentimeter)

	// THEN: The conflict names the dimension and both units
	var cbe *algebra.ConflictingBaseUnitError
	require.True(t, errors.As(err, &cbe))
	assert.Equal(t, algebra.Length, cbe.Dimension)
	assert.Equal(t, meter, cbe.Existing)
	assert.Equal(t, centimeter, cbe.Conflicting)
	assert.ErrorIs(t, err, algebra.ErrConflictingBaseUnit)
}

func TestSystem_HomogeneousNeverEqualsHeterogeneous(t *testing.T) {
	r := newTestRegistry(t)
	si := r.MustSystem("si")
	same, err := algebra.Heterogeneous(meterUnit, kilogramUnit, secondUnit)
	require.NoError(t, err)

	assert.True(t, si.IsHomogeneous())
	assert.Equal(t, algebra.SystemTag("si"), si.Tag())
	assert.False(t, algebra.SameSystem(si, same))
	assert.True(t, si.Equal(r.MustSystem("si")))
	assert.False(t, si.Equal(r.MustSystem("cgs")))
}

func TestUnit_ComposeUnionsSystems(t *testing.T) {
	r := newTestRegistry(t)
	m := baseUnit(t, r, meter)
	s := baseUnit(t, r, second)

	speed, err := m.Div(s)
	require.NoError(t, err)
	assert.Equal(t, "L·T^-1", speed.Dimension().String())
	assert.Equal(t, "{L=1,T=3}", speed.System().String())

	// Squaring keeps the same base units
	area := m.Pow(algebra.Int(2))
	assert.Equal(t, "L^2", area.Dimension().String())
	assert.True(t, algebra.SameSystem(area.System(), m.System()))

	// Dividing back out cancels to a bare scalar
	ratio, err := m.Div(m)
	require.NoError(t, err)
	assert.True(t, ratio.Equal(algebra.Scalar))
}

func TestUnit_ConflictIsCheckedBeforeCancellation(t *testing.T) {
	r := newTestRegistry(t)

	// WHEN: meter / centimeter, which would cancel to a dimensionless value
	_, err := baseUnit(t, r, meter).Div(baseUnit(t, r, centimeter))

	// THEN: Refused rather than silently losing the factor of 100
	assert.ErrorIs(t, err, algebra.ErrConflictingBaseUnit)
}

func TestUnit_HomogeneousTimesHeterogeneous(t *testing.T) {
	r := newTestRegistry(t)
	siLength := unit(t, r, "si", length)

	u, err := siLength.Mul(baseUnit(t, r, kelvin))
	require.NoError(t, err)
	assert.False(t, u.System().IsHomogeneous())
	assert.Equal(t, "{L=1,Θ=4}", u.System().String())

	_, err = siLength.Mul(baseUnit(t, r, kilometer))
	assert.ErrorIs(t, err, algebra.ErrConflictingBaseUnit)
}

func TestNewUnit_UnboundDimension(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Unit("si", algebra.Base(algebra.Current))
	assert.ErrorIs(t, err, algebra.ErrUnboundDimension)

	_, err = algebra.NewUnit(force, algebra.SystemOf(meterUnit))
	assert.ErrorIs(t, err, algebra.ErrUnboundDimension)

	// Dimensionless never needs a binding
	u, err := algebra.NewUnit(algebra.Dimensionless(), algebra.System{})
	require.NoError(t, err)
	assert.Equal(t, "1", u.String())
}

func TestNewUnit_PrunesHeterogeneousSystem(t *testing.T) {
	sys, err := algebra.Heterogeneous(meterUnit, kilogramUnit, secondUnit)
	require.NoError(t, err)

	u, err := algebra.NewUnit(length, sys)
	require.NoError(t, err)

	assert.True(t, u.Equal(algebra.UnitOf(meterUnit)))
}
