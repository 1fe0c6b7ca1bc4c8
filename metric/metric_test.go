package metric_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/dimensional/algebra"
	"github.com/warp/dimensional/metric"
)

func base(d algebra.BaseDimension) algebra.DimensionVector { return algebra.Base(d) }

func TestDerivedDimensions_MatchTheirFormulas(t *testing.T) {
	length, mass, time := base(algebra.Length), base(algebra.Mass), base(algebra.Time)
	tests := []struct {
		name    string
		got     algebra.DimensionVector
		formula algebra.DimensionVector
	}{
		{"area", metric.Area, algebra.Multiply(length, length)},
		{"volume", metric.Volume, algebra.Multiply(metric.Area, length)},
		{"velocity", metric.Velocity, algebra.Divide(length, time)},
		{"acceleration", metric.Acceleration, algebra.Divide(metric.Velocity, time)},
		{"force", metric.Force, algebra.Multiply(mass, metric.Acceleration)},
		{"energy", metric.Energy, algebra.Multiply(metric.Force, length)},
		{"power", metric.Power, algebra.Divide(metric.Energy, time)},
		{"pressure", metric.Pressure, algebra.Divide(metric.Force, metric.Area)},
		{"frequency", metric.Frequency, algebra.Negate(time)},
		{"momentum", metric.Momentum, algebra.Multiply(mass, metric.Velocity)},
		{"density", metric.Density, algebra.Divide(mass, metric.Volume)},
		{"charge", metric.Charge, algebra.Multiply(base(algebra.Current), time)},
		{"voltage", metric.Voltage, algebra.Divide(metric.Power, base(algebra.Current))},
		{"specific gas constant", metric.SpecificGasConstant,
			algebra.Divide(metric.Energy, algebra.Multiply(mass, base(algebra.Temperature)))},
		{"angular velocity", metric.AngularVelocity, algebra.Divide(base(algebra.PlaneAngle), time)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.got.Equal(tt.formula), "%s != %s", tt.got, tt.formula)
		})
	}
}

func TestRegister_IsIdempotent(t *testing.T) {
	r := algebra.NewRegistry()
	require.NoError(t, metric.Register(r))
	require.NoError(t, metric.Register(r))

	v, ok := r.DerivedDimension("specific_gas_constant")
	require.True(t, ok)
	assert.True(t, v.Equal(metric.SpecificGasConstant))
	assert.Contains(t, r.NamedUnits(), "kilometer_per_hour")
}

func TestConversions(t *testing.T) {
	tests := []struct {
		name string
		from algebra.Quantity[float64]
		to   algebra.Unit
		want float64
	}{
		{"newton to dyne", metric.Newtons(3), metric.Dyne, 300000},
		{"joule to erg", metric.Joules(1), metric.Erg, 1e7},
		{"kilometer to meter", metric.Kilometers(1.5), metric.Meter, 1500},
		{"hour to second", metric.Hours(2), metric.Second, 7200},
		{"gram to kilogram", metric.Grams(250), metric.Kilogram, 0.25},
		{"celsius to kelvin", metric.DegreesCelsius(100), metric.Kelvin, 373.15},
		{"kelvin to celsius", metric.Kelvins(0), metric.DegreeCelsius, -273.15},
		{"degrees to radians", metric.Degs(180), metric.Radian, math.Pi},
		{"kilometers per hour", algebra.Of(36.0, metric.KilometerPerHour), metric.MeterPerSecond, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.ConvertTo(tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Value(), 1e-9)
			assert.True(t, got.Unit().Equal(tt.to))
		})
	}
}

func TestConversions_Angles(t *testing.T) {
	revolution, ok := algebra.Default.NamedUnit("revolution")
	require.True(t, ok)

	deg, err := algebra.Of(1.0, revolution).ConvertTo(metric.Degree)
	require.NoError(t, err)
	assert.InDelta(t, 360.0, deg.Value(), 1e-9)

	gradian, ok := algebra.Default.NamedUnit("gradian")
	require.True(t, ok)
	g, err := metric.Degs(90).ConvertTo(gradian)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, g.Value(), 1e-9)
}

func TestConversions_Refused(t *testing.T) {
	_, err := metric.Meters(1).ConvertTo(metric.Kilogram)
	assert.ErrorIs(t, err, algebra.ErrIncompatibleDimensions)

	// Celsius squared has no meaningful conversion
	_, err = metric.DegreesCelsius(10).Pow(algebra.Int(2)).ConvertTo(metric.Kelvin.Pow(algebra.Int(2)))
	assert.ErrorIs(t, err, algebra.ErrInvalidAffineComposition)

	_, err = metric.Meters(1).Add(metric.Centimeters(1))
	assert.ErrorIs(t, err, algebra.ErrUnitMismatch)
}

func TestConversions_TemperatureDifference(t *testing.T) {
	rise, err := metric.DegreesCelsius(10).ConvertDifference(metric.Kelvin)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, rise.Value(), 1e-12)
}
