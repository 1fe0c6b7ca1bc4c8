package customary_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/dimensional/algebra"
	"github.com/warp/dimensional/customary"
	"github.com/warp/dimensional/metric"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		name  string
		from  algebra.Quantity[float64]
		to    algebra.Unit
		want  float64
		delta float64
	}{
		{"foot to meter", customary.Feet(1), metric.Meter, 0.3048, 1e-12},
		{"inch to centimeter", customary.Inches(1), metric.Centimeter, 2.54, 1e-12},
		{"mile to kilometer", customary.Miles(1), metric.Kilometer, 1.609344, 1e-12},
		{"pound to kilogram", customary.Pounds(1), metric.Kilogram, 0.45359237, 1e-12},
		{"slug to pound", customary.Slugs(1), customary.Pound, 32.17404855, 1e-6},
		{"freezing fahrenheit to kelvin", customary.DegreesFahrenheit(32), metric.Kelvin, 273.15, 1e-9},
		{"boiling fahrenheit to celsius", customary.DegreesFahrenheit(212), metric.DegreeCelsius, 100, 1e-9},
		{"celsius to rankine", metric.DegreesCelsius(0), customary.DegreeRankine, 491.67, 1e-9},
		{"rankine to kelvin", algebra.Of(491.67, customary.DegreeRankine), metric.Kelvin, 273.15, 1e-9},
		{"mph to km/h", algebra.Of(60.0, customary.MilePerHour), metric.KilometerPerHour, 96.56064, 1e-9},
		{"pound-force to newton", algebra.Of(1.0, customary.PoundForce), metric.Newton, 4.4482216152605, 1e-9},
		{"pound-force to poundal", algebra.Of(1.0, customary.PoundForce), customary.Poundal, 32.17404855, 1e-6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.ConvertTo(tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Value(), tt.delta)
		})
	}
}

func TestFootToMeterIsExact(t *testing.T) {
	q := algebra.NewDecimal(decimal.NewFromInt(1), customary.Foot)

	got, err := q.ConvertTo(metric.Meter)
	require.NoError(t, err)

	assert.Equal(t, "0.3048", got.Value.String())
}

func TestGallons(t *testing.T) {
	assert.Equal(t, 231.0, customary.USGallons(1).Value())
	assert.True(t, customary.USGallons(1).Unit().Equal(customary.CubicInch))

	liters, err := customary.USGallons(1).ConvertTo(metric.CubicMeter)
	require.NoError(t, err)
	assert.InDelta(t, 0.003785411784, liters.Value(), 1e-15)

	// One imperial gallon is about 1.2 US gallons
	ratio := customary.ImperialGallons(1).Value() / customary.USGallons(1).Value()
	assert.InDelta(t, 1.20095, ratio, 1e-12)
}

func TestMixedSystemsMustConvertFirst(t *testing.T) {
	_, err := customary.Feet(1).Add(metric.Meters(1))
	assert.ErrorIs(t, err, algebra.ErrUnitMismatch)

	// Multiplying across systems is always allowed
	p, err := customary.Feet(2).Mul(metric.Kilograms(3))
	require.NoError(t, err)
	assert.Equal(t, 6.0, p.Value())
	assert.False(t, p.Unit().System().IsHomogeneous())
}

func TestRegister_DeclaresMetricFirst(t *testing.T) {
	r := algebra.NewRegistry()
	require.NoError(t, customary.Register(r))
	require.NoError(t, customary.Register(r))

	foot, err := r.BaseUnit(customary.FootID)
	require.NoError(t, err)
	assert.Equal(t, customary.InchID, foot.Parent)

	_, ok := r.NamedUnit("newton")
	assert.True(t, ok)
	_, ok = r.NamedUnit("pound_force")
	assert.True(t, ok)
}
