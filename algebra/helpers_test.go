package algebra_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/warp/dimensional/algebra"
)

// =============================================================================
// TEST HELPERS
// =============================================================================
// A small catalog shaped like the built-in one, with its own IDs so tests
// do not depend on the metric package.

const (
	meter algebra.BaseUnitID = iota + 1
	kilogram
	second
	kelvin
	centimeter
	gram
	kilometer
	celsius
	fahrenheit
	rankine
)

var (
	force = algebra.Derive(
		algebra.T(algebra.Length, 1),
		algebra.T(algebra.Mass, 1),
		algebra.T(algebra.Time, -2),
	)
	length      = algebra.Base(algebra.Length)
	mass        = algebra.Base(algebra.Mass)
	temperature = algebra.Base(algebra.Temperature)
)

func newTestRegistry(t *testing.T) *algebra.Registry {
	t.Helper()
	r := algebra.NewRegistry()
	b := algebra.NewBatch(r)

	b.Root(meter, algebra.Length, "meter", "m")
	b.Root(kilogram, algebra.Mass, "kilogram", "kg")
	b.Root(second, algebra.Time, "second", "s")
	b.Root(kelvin, algebra.Temperature, "kelvin", "K")
	b.Scaled(centimeter, meter, "0.01", "centimeter", "cm")
	b.Scaled(gram, kilogram, "0.001", "gram", "g")
	b.Scaled(kilometer, meter, "1000", "kilometer", "km")
	b.Root(celsius, algebra.Temperature, "celsius", "°C")
	b.Root(fahrenheit, algebra.Temperature, "fahrenheit", "°F")
	b.Root(rankine, algebra.Temperature, "rankine", "°R")

	b.Rule(celsius, kelvin, "1", "273.15", true)
	b.Rule(celsius, fahrenheit, "1.8", "32", true)

	b.System("si", meter, kilogram, second, kelvin)
	b.System("cgs", centimeter, gram, second, kelvin)
	b.System("celsius", meter, kilogram, second, celsius)
	b.System("fahrenheit", meter, kilogram, second, fahrenheit)
	b.System("rankine", meter, kilogram, second, rankine)
	b.Derived("force", force)

	require.NoError(t, b.Err())
	return r
}

func unit(t *testing.T, r *algebra.Registry, tag algebra.SystemTag, v algebra.DimensionVector) algebra.Unit {
	t.Helper()
	u, err := r.Unit(tag, v)
	require.NoError(t, err)
	return u
}

func baseUnit(t *testing.T, r *algebra.Registry, id algebra.BaseUnitID) algebra.Unit {
	t.Helper()
	u, err := r.BaseUnit(id)
	require.NoError(t, err)
	return algebra.UnitOf(u)
}
