/*
Package metric provides the SI, CGS and angular catalogs: base units,
metric prefixes, temperature scales, derived dimensions and named units.

PURPOSE:
  The algebra package knows nothing about meters or grams. This package
  declares them, the same way any other catalog would, and registers them
  into algebra.Default on init so that application code can write:

    f := metric.Newtons(3)
    d, _ := f.ConvertTo(metric.Dyne) // 300000 dyn

SYSTEMS:
  si:         m, kg, s, A, K, mol, cd, rad, sr
  cgs:        cm, g, s and SI for the rest
  celsius:    SI with °C for temperature
  degree:     SI with degrees for plane angle
  gradian:    SI with gradians for plane angle
  revolution: SI with revolutions for plane angle

SCALED UNITS:
  Every scaled unit is declared as an exact decimal multiple of its parent:

    centimeter = 0.01 meter      gram   = 0.001 kilogram
    kilometer  = 1000 meter      minute = 60 second
    degree     = π/180 radian    hour   = 60 minute

TEMPERATURE:
  °C -> K is the affine rule x + 273.15, marked reversible. Temperature
  differences convert with Quantity.ConvertDifference.

SEE ALSO:
  - register.go:   Declarations
  - dimensions.go: Derived dimensions
  - customary/:    Imperial and US customary catalogs
*/
package metric

import "github.com/warp/dimensional/algebra"

// =============================================================================
// BASE UNIT IDS - stable ordinals, 100-199
// =============================================================================

const (
	MeterID     algebra.BaseUnitID = 100
	KilogramID  algebra.BaseUnitID = 101
	SecondID    algebra.BaseUnitID = 102
	AmpereID    algebra.BaseUnitID = 103
	KelvinID    algebra.BaseUnitID = 104
	MoleID      algebra.BaseUnitID = 105
	CandelaID   algebra.BaseUnitID = 106
	RadianID    algebra.BaseUnitID = 107
	SteradianID algebra.BaseUnitID = 108

	CentimeterID  algebra.BaseUnitID = 110
	GramID        algebra.BaseUnitID = 111
	MillimeterID  algebra.BaseUnitID = 112
	KilometerID   algebra.BaseUnitID = 113
	MilligramID   algebra.BaseUnitID = 114
	MillisecondID algebra.BaseUnitID = 115
	MinuteID      algebra.BaseUnitID = 116
	HourID        algebra.BaseUnitID = 117
	CelsiusID     algebra.BaseUnitID = 118
	DegreeID      algebra.BaseUnitID = 119
	GradianID     algebra.BaseUnitID = 120
	RevolutionID  algebra.BaseUnitID = 121
)

// System tags.
const (
	TagSI         algebra.SystemTag = "si"
	TagCGS        algebra.SystemTag = "cgs"
	TagCelsius    algebra.SystemTag = "celsius"
	TagDegree     algebra.SystemTag = "degree"
	TagGradian    algebra.SystemTag = "gradian"
	TagRevolution algebra.SystemTag = "revolution"
)

// Exact angle scales, π/180 and π/200 to 33 places.
const (
	degreeScale  = "0.017453292519943295769236907684886"
	gradianScale = "0.015707963267948966192313216916398"
)

// Systems and units of algebra.Default, set by init.
var (
	SI, CGS, Celsius, Degrees, Gradians, Revolutions algebra.System

	Meter, Kilogram, Second, Kelvin, Radian algebra.Unit
	Centimeter, Gram, DegreeCelsius, Degree    algebra.Unit
	Kilometer, Hour, KilometerPerHour          algebra.Unit

	Newton, Dyne, Joule, Erg, Watt, Pascal, Hertz algebra.Unit
	SquareMeter, CubicMeter, MeterPerSecond       algebra.Unit
)
