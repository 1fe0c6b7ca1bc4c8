package algebra_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/dimensional/algebra"
)

func TestRegistry_IdenticalRedeclarationIsAccepted(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.DeclareRootUnit(meter, algebra.Length, "meter", "m")
	assert.NoError(t, err)
	_, err = r.DeclareScaledUnit(centimeter, meter, decimal.RequireFromString("0.010"), "centimeter", "cm")
	assert.NoError(t, err, "0.010 and 0.01 are the same scale")
	_, err = r.DeclareSystem("si", kelvin, second, kilogram, meter)
	assert.NoError(t, err)
	assert.NoError(t, r.DeclareDerivedDimension("force", force))
	assert.NoError(t, r.DeclareRule(algebra.Affine(celsius, kelvin,
		decimal.NewFromInt(1), decimal.RequireFromString("273.15"), true)))

	assert.Len(t, r.BaseUnits(), 10)
	assert.Len(t, r.Systems(), 5)
	assert.Len(t, r.Rules(), 2)
}

func TestRegistry_ConflictingRedeclaration(t *testing.T) {
	tests := []struct {
		name    string
		declare func(r *algebra.Registry) error
		kind    string
	}{
		{
			name: "unit renamed",
			declare: func(r *algebra.Registry) error {
				_, err := r.DeclareRootUnit(meter, algebra.Length, "metre", "m")
				return err
			},
			kind: "unit",
		},
		{
			name: "system rebound",
			declare: func(r *algebra.Registry) error {
				_, err := r.DeclareSystem("si", centimeter, kilogram, second, kelvin)
				return err
			},
			kind: "system",
		},
		{
			name: "derived redefined",
			declare: func(r *algebra.Registry) error {
				return r.DeclareDerivedDimension("force", algebra.Base(algebra.Mass))
			},
			kind: "derived",
		},
		{
			name: "rule rescaled",
			declare: func(r *algebra.Registry) error {
				return r.DeclareRule(algebra.Affine(celsius, kelvin,
					decimal.NewFromInt(1), decimal.RequireFromString("273"), true))
			},
			kind: "rule",
		},
		{
			name: "dimension name reused",
			declare: func(r *algebra.Registry) error {
				return r.DeclareBaseDimension(algebra.FirstUserDimension, "length", "X")
			},
			kind: "dimension",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.declare(newTestRegistry(t))

			var dre *algebra.DuplicateRegistrationError
			require.True(t, errors.As(err, &dre), "got %v", err)
			assert.Equal(t, tt.kind, dre.Kind)
			assert.True(t, algebra.IsRegistrationError(err))
		})
	}
}

func TestRegistry_MalformedDeclarations(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.DeclareScaledUnit(99, 98, decimal.NewFromInt(2), "orphan", "o")
	assert.ErrorIs(t, err, algebra.ErrUnknownBaseUnit)
	assert.True(t, algebra.IsNotFound(err))

	_, err = r.DeclareRootUnit(50, algebra.FirstUserDimension, "widget", "w")
	assert.ErrorIs(t, err, algebra.ErrUnknownDimension)

	_, err = r.DeclareScaledUnit(51, meter, decimal.Zero, "nothing", "n")
	assert.ErrorIs(t, err, algebra.ErrInvalidRule)

	err = r.DeclareRule(algebra.Multiplicative(meter, kilogram, decimal.NewFromInt(2)))
	assert.ErrorIs(t, err, algebra.ErrInvalidRule, "crosses dimensions")

	err = r.DeclareRule(algebra.Multiplicative(meter, meter, decimal.NewFromInt(2)))
	assert.ErrorIs(t, err, algebra.ErrInvalidRule, "self loop")

	err = r.DeclareRule(algebra.Multiplicative(meter, centimeter, decimal.Zero))
	assert.ErrorIs(t, err, algebra.ErrInvalidRule, "zero scale")

	_, err = r.DeclareSystem("broken", meter, centimeter)
	assert.ErrorIs(t, err, algebra.ErrConflictingBaseUnit)

	_, err = r.DeclareSystem("")
	assert.ErrorIs(t, err, algebra.ErrInvalidRule)
}

func TestRegistry_SealedRejectsDeclarations(t *testing.T) {
	r := newTestRegistry(t)
	assert.False(t, r.Sealed())

	// WHEN: The first resolution between different systems runs
	_, err := r.Resolve(unit(t, r, "cgs", length), unit(t, r, "si", length))
	require.NoError(t, err)

	// THEN: The registry is sealed and every declaration kind fails
	assert.True(t, r.Sealed())
	_, err = r.DeclareRootUnit(200, algebra.Length, "league", "lea")
	assert.ErrorIs(t, err, algebra.ErrRegistrySealed)
	_, err = r.DeclareSystem("late", meter)
	assert.ErrorIs(t, err, algebra.ErrRegistrySealed)
	assert.ErrorIs(t, r.DeclareDerivedDimension("area", algebra.Power(length, algebra.Int(2))), algebra.ErrRegistrySealed)
	assert.ErrorIs(t, r.DeclareNamedUnit("late", algebra.Scalar), algebra.ErrRegistrySealed)
	assert.ErrorIs(t, r.DeclareBaseDimension(algebra.FirstUserDimension, "late", "Z"), algebra.ErrRegistrySealed)

	// Seal is idempotent
	r.Seal()
	assert.True(t, r.Sealed())
}

func TestRegistry_UserDimension(t *testing.T) {
	r := algebra.NewRegistry()
	b := algebra.NewBatch(r)
	b.Dimension(algebra.FirstUserDimension, "bitterness", "B")
	b.Root(9000, algebra.FirstUserDimension, "ibu", "IBU")
	b.Scaled(9001, 9000, "0.1", "decibu", "dIBU")
	b.System("brewing", 9000)
	require.NoError(t, b.Err())

	info, ok := r.LookupDimension("bitterness")
	require.True(t, ok)
	assert.Equal(t, algebra.FirstUserDimension, info.Dimension)
	assert.Len(t, r.Dimensions(), 10)
	assert.Equal(t, "bitterness", r.Dimensions()[9].Name)

	f, err := r.ResolveBase(9001, 9000)
	require.NoError(t, err)
	assert.Equal(t, "0.1", f.ExactScale().String())
}

func TestRegistry_Lookups(t *testing.T) {
	r := newTestRegistry(t)
	b := algebra.NewBatch(r)
	b.Named("newton", force, "si")
	b.Named("dyne", force, "cgs")
	require.NoError(t, b.Err())

	u, ok := r.BaseUnitByName("cm")
	require.True(t, ok)
	assert.Equal(t, centimeter, u.ID)
	assert.True(t, u.IsScaled())

	_, ok = r.BaseUnitByName("furlong")
	assert.False(t, ok)

	v, ok := r.DerivedDimension("force")
	require.True(t, ok)
	assert.True(t, v.Equal(force))
	assert.Len(t, r.DerivedDimensions(), 1)

	newton, ok := r.NamedUnit("newton")
	require.True(t, ok)
	assert.Equal(t, algebra.SystemTag("si"), newton.System().Tag())
	assert.Equal(t, []string{"dyne", "newton"}, r.NamedUnits())

	_, err := r.System("imperial")
	assert.ErrorIs(t, err, algebra.ErrUnknownSystem)
	assert.Panics(t, func() { r.MustSystem("imperial") })
}
