package algebra_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/dimensional/algebra"
)

func TestVector_ConstructionPathsAgree(t *testing.T) {
	// GIVEN: Force built three different ways
	composed := algebra.Multiply(
		algebra.Base(algebra.Mass),
		algebra.Divide(algebra.Base(algebra.Length), algebra.Power(algebra.Base(algebra.Time), algebra.Int(2))),
	)
	unordered := algebra.NewVector(
		algebra.T(algebra.Time, -2),
		algebra.T(algebra.Mass, 1),
		algebra.T(algebra.Length, 1),
	)

	// THEN: All three are the same canonical vector
	assert.True(t, composed.Equal(force))
	assert.True(t, unordered.Equal(force))
	assert.Equal(t, force.Key(), composed.Key())
	assert.Equal(t, "L·M·T^-2", force.String())
}

func TestVector_CanonicalizeIsIdempotent(t *testing.T) {
	v := algebra.NewVector(algebra.T(algebra.Time, -1), algebra.T(algebra.Length, 2), algebra.T(algebra.Time, -1))

	assert.True(t, v.Canonical().Equal(v))
	assert.True(t, v.Canonical().Canonical().Equal(v))
	assert.Equal(t, 2, v.Len())
	assert.True(t, v.Exponent(algebra.Time).Equal(algebra.Int(-2)))
}

func TestVector_ZeroExponentsVanish(t *testing.T) {
	v := algebra.NewVector(algebra.T(algebra.Length, 1), algebra.T(algebra.Length, -1))
	assert.True(t, v.IsDimensionless())

	ratio := algebra.Divide(force, force)
	assert.True(t, ratio.IsDimensionless())
	assert.Equal(t, "1", ratio.String())

	assert.True(t, algebra.Power(force, algebra.Int(0)).IsDimensionless())
	assert.True(t, algebra.Multiply(algebra.Dimensionless(), force).Equal(force))
}

func TestVector_Laws(t *testing.T) {
	a := force
	b := algebra.NewVector(algebra.T(algebra.Length, 2), algebra.T(algebra.Temperature, -1))
	c := algebra.Base(algebra.Current)

	assert.True(t, algebra.Multiply(a, b).Equal(algebra.Multiply(b, a)), "commutative")
	assert.True(t,
		algebra.Multiply(algebra.Multiply(a, b), c).Equal(algebra.Multiply(a, algebra.Multiply(b, c))),
		"associative")
	assert.True(t, algebra.Multiply(a, algebra.Negate(a)).IsDimensionless(), "inverse")
	assert.True(t,
		algebra.Power(algebra.Multiply(a, b), algebra.Int(3)).Equal(
			algebra.Multiply(algebra.Power(a, algebra.Int(3)), algebra.Power(b, algebra.Int(3)))),
		"power distributes")
}

func TestVector_RootKeepsExactFractions(t *testing.T) {
	area := algebra.Power(algebra.Base(algebra.Length), algebra.Int(2))

	side, err := algebra.Root(area, 2)
	require.NoError(t, err)
	assert.True(t, side.Equal(algebra.Base(algebra.Length)))

	half, err := algebra.Root(algebra.Base(algebra.Length), 2)
	require.NoError(t, err)
	assert.True(t, half.Exponent(algebra.Length).Equal(algebra.R(1, 2)))
	assert.Equal(t, "L^1/2", half.String())

	// Squaring the square root returns to length
	assert.True(t, half.Pow(algebra.Int(2)).Equal(algebra.Base(algebra.Length)))

	_, err = algebra.Root(area, 0)
	assert.ErrorIs(t, err, algebra.ErrInvalidExponent)
}

func TestVector_RootUndoesPower(t *testing.T) {
	vectors := map[string]algebra.DimensionVector{
		"length":        algebra.Base(algebra.Length),
		"force":         force,
		"sqrt mass":     algebra.NewVector(algebra.Term{Dim: algebra.Mass, Exp: algebra.R(1, 2)}),
		"gas constant":  algebra.NewVector(algebra.T(algebra.Length, 2), algebra.T(algebra.Time, -2), algebra.T(algebra.Temperature, -1)),
		"dimensionless": algebra.Dimensionless(),
	}
	for name, v := range vectors {
		for _, n := range []int{-3, -2, -1, 1, 2, 3} {
			got, err := algebra.Root(algebra.Power(v, algebra.Int(int64(n))), n)
			require.NoError(t, err, "%s n=%d", name, n)
			assert.True(t, got.Equal(v), "%s n=%d: got %s", name, n, got)
		}
	}

	// A negative degree is the root of the reciprocal
	inv, err := algebra.Root(algebra.Power(length, algebra.Int(2)), -2)
	require.NoError(t, err)
	assert.Equal(t, "L^-1", inv.String())
}

func TestVector_LargeFractionalExponents(t *testing.T) {
	// GIVEN: Two exponents whose denominators only fit after reduction
	tiny, err := algebra.Root(algebra.Base(algebra.Length), 1<<32)
	require.NoError(t, err)

	// WHEN: They are multiplied
	got := algebra.Multiply(tiny, tiny)

	// THEN: The sum is reduced over the common denominator
	assert.Equal(t, "L^1/2147483648", got.String())

	// AND: A sum that really does not fit is reported, not wrapped
	a, err := algebra.Root(algebra.Base(algebra.Length), 4294967291)
	require.NoError(t, err)
	b, err := algebra.Root(algebra.Base(algebra.Length), 4294967279)
	require.NoError(t, err)
	_, err = algebra.CheckedMultiply(a, b)
	assert.ErrorIs(t, err, algebra.ErrInvalidExponent)
	assert.Panics(t, func() { algebra.Multiply(a, b) })

	_, err = algebra.CheckedPower(a, algebra.R(1, 4294967279))
	assert.ErrorIs(t, err, algebra.ErrInvalidExponent)
	_, err = algebra.CheckedDerive(algebra.Term{Dim: algebra.Length, Exp: algebra.R(1, 4294967291)}, algebra.Term{Dim: algebra.Length, Exp: algebra.R(1, 4294967279)})
	assert.ErrorIs(t, err, algebra.ErrInvalidExponent)
}

func TestExponent_Overflow(t *testing.T) {
	big1, big2 := algebra.Int(4294967291), algebra.Int(4294967279)

	_, err := big1.Mul(big2)
	assert.ErrorIs(t, err, algebra.ErrInvalidExponent)
	_, err = algebra.R(1, 4294967291).Add(algebra.R(1, 4294967279))
	assert.ErrorIs(t, err, algebra.ErrInvalidExponent)
	_, err = big1.Div(algebra.Int(0))
	assert.ErrorIs(t, err, algebra.ErrInvalidExponent)

	// Cross-reduction keeps products small when the result is small
	p, err := algebra.R(4294967291, 4294967279).Mul(algebra.R(4294967279, 4294967291))
	require.NoError(t, err)
	assert.True(t, p.IsOne())
	q, err := algebra.R(1, 1<<40).Div(algebra.R(1, 1<<39))
	require.NoError(t, err)
	assert.True(t, q.Equal(algebra.R(1, 2)))

	// Cmp falls back to exact big arithmetic
	assert.Equal(t, 1, algebra.R(4294967291, 4294967279).Cmp(algebra.R(4294967279, 4294967291)))
	assert.Equal(t, -1, algebra.R(4294967279, 4294967291).Cmp(algebra.R(4294967291, 4294967279)))

	_, err = algebra.ParseExponent("-9223372036854775808")
	assert.ErrorIs(t, err, algebra.ErrInvalidExponent)
}

func TestExponent_Int(t *testing.T) {
	n, err := algebra.R(6, 3).Int()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = algebra.R(1, 2).Int()
	var nie *algebra.NonIntegralDimensionError
	require.True(t, errors.As(err, &nie))
	assert.True(t, nie.Exponent.Equal(algebra.R(1, 2)))
	assert.ErrorIs(t, err, algebra.ErrNonIntegralDimension)
}

func TestVector_IntegerTerms(t *testing.T) {
	terms, err := force.IntegerTerms()
	require.NoError(t, err)
	assert.Equal(t, []algebra.IntTerm{
		{Dim: algebra.Length, Exp: 1},
		{Dim: algebra.Mass, Exp: 1},
		{Dim: algebra.Time, Exp: -2},
	}, terms)

	half, _ := algebra.Root(algebra.Base(algebra.Mass), 2)
	_, err = half.IntegerTerms()
	var nie *algebra.NonIntegralDimensionError
	require.True(t, errors.As(err, &nie))
	assert.Equal(t, algebra.Mass, nie.Dimension)
}

func TestVector_TermsIsACopy(t *testing.T) {
	terms := force.Terms()
	terms[0].Exp = algebra.Int(7)

	assert.True(t, force.Exponent(algebra.Length).Equal(algebra.Int(1)))
}

func TestExponent(t *testing.T) {
	assert.True(t, algebra.R(2, 4).Equal(algebra.R(1, 2)))
	assert.True(t, algebra.R(1, -2).Equal(algebra.R(-1, 2)))
	assert.True(t, algebra.R(0, 5).IsZero())
	assert.True(t, algebra.R(6, 3).IsInteger())
	assert.Equal(t, -1, algebra.R(1, 3).Cmp(algebra.R(1, 2)))
	sum, err := algebra.R(1, 3).Add(algebra.R(1, 6))
	require.NoError(t, err)
	assert.True(t, sum.Equal(algebra.R(1, 2)))
	assert.Equal(t, "-3/4", algebra.R(3, -4).String())

	e, err := algebra.ParseExponent("-2")
	require.NoError(t, err)
	assert.True(t, e.Equal(algebra.Int(-2)))

	e, err = algebra.ParseExponent("3/6")
	require.NoError(t, err)
	assert.True(t, e.Equal(algebra.R(1, 2)))

	_, err = algebra.ParseExponent("1/0")
	assert.ErrorIs(t, err, algebra.ErrInvalidExponent)
	_, err = algebra.ParseExponent("x")
	assert.ErrorIs(t, err, algebra.ErrInvalidExponent)
}

func TestBaseDimension_Names(t *testing.T) {
	assert.Equal(t, "length", algebra.Length.String())
	assert.Equal(t, "Θ", algebra.Temperature.Symbol())
	assert.Len(t, algebra.BuiltinDimensions(), 9)
	assert.False(t, algebra.FirstUserDimension.IsBuiltin())
	assert.Equal(t, "D100", algebra.FirstUserDimension.Symbol())
}
