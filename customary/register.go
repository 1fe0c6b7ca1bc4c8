package customary

import (
	"fmt"

	"github.com/warp/dimensional/algebra"
	"github.com/warp/dimensional/metric"
)

func init() {
	algebra.Must(Register(algebra.Default))
	r := algebra.Default

	Imperial = r.MustSystem(TagImperial)
	US = r.MustSystem(TagUS)

	Foot = algebra.MustUnit(algebra.Base(algebra.Length), Imperial)
	Pound = algebra.MustUnit(algebra.Base(algebra.Mass), Imperial)
	Slug = algebra.MustUnit(algebra.Base(algebra.Mass), US)
	DegreeFahrenheit = algebra.MustUnit(algebra.Base(algebra.Temperature), Imperial)
	Poundal = algebra.MustUnit(metric.Force, Imperial)
	PoundForce = algebra.MustUnit(metric.Force, US)

	Inch = named(r, "inch")
	Yard = named(r, "yard")
	Mile = named(r, "mile")
	Ounce = named(r, "ounce")
	DegreeRankine = named(r, "rankine")
	CubicInch = named(r, "cubic_inch")
	MilePerHour = named(r, "mile_per_hour")
}

// Register declares the customary catalog into r, declaring the metric
// catalog first.
func Register(r *algebra.Registry) error {
	if err := metric.Register(r); err != nil {
		return err
	}

	b := algebra.NewBatch(r)
	b.Scaled(InchID, metric.MeterID, "0.0254", "inch", "in")
	b.Scaled(FootID, InchID, "12", "foot", "ft")
	b.Scaled(YardID, FootID, "3", "yard", "yd")
	b.Scaled(MileID, FootID, "5280", "mile", "mi")
	b.Scaled(PoundID, metric.KilogramID, "0.45359237", "pound", "lb")
	b.Scaled(OunceID, PoundID, "0.0625", "ounce", "oz")
	b.Scaled(SlugID, metric.KilogramID, "14.59390293720636", "slug", "slug")

	b.Root(FahrenheitID, algebra.Temperature, "fahrenheit", "°F")
	b.Root(RankineID, algebra.Temperature, "rankine", "°R")
	b.Rule(metric.CelsiusID, FahrenheitID, "1.8", "32", true)
	b.Rule(FahrenheitID, RankineID, "1", "459.67", true)
	b.Rule(metric.KelvinID, RankineID, "1.8", "", true)

	others := []algebra.BaseUnitID{metric.SecondID, metric.AmpereID, FahrenheitID, metric.MoleID, metric.CandelaID, metric.RadianID, metric.SteradianID}
	b.System(TagImperial, append([]algebra.BaseUnitID{FootID, PoundID}, others...)...)
	b.System(TagUS, append([]algebra.BaseUnitID{FootID, SlugID}, others...)...)

	b.Named("foot", algebra.Base(algebra.Length), TagImperial)
	b.Named("pound", algebra.Base(algebra.Mass), TagImperial)
	b.Named("slug", algebra.Base(algebra.Mass), TagUS)
	b.Named("fahrenheit", algebra.Base(algebra.Temperature), TagImperial)
	b.Named("poundal", metric.Force, TagImperial)
	b.Named("pound_force", metric.Force, TagUS)
	b.Named("square_foot", metric.Area, TagImperial)
	b.Named("cubic_foot", metric.Volume, TagImperial)
	b.Named("foot_per_second", metric.Velocity, TagImperial)
	if err := b.Err(); err != nil {
		return err
	}

	single := make(map[algebra.BaseUnitID]algebra.Unit)
	for _, id := range []algebra.BaseUnitID{InchID, YardID, MileID, OunceID, RankineID, metric.HourID} {
		u, err := r.BaseUnit(id)
		if err != nil {
			return err
		}
		single[id] = algebra.UnitOf(u)
	}
	mph, err := single[MileID].Div(single[metric.HourID])
	if err != nil {
		return fmt.Errorf("mile per hour: %w", err)
	}

	b.NamedUnit("inch", single[InchID])
	b.NamedUnit("yard", single[YardID])
	b.NamedUnit("mile", single[MileID])
	b.NamedUnit("ounce", single[OunceID])
	b.NamedUnit("rankine", single[RankineID])
	b.NamedUnit("cubic_inch", single[InchID].Pow(algebra.Int(3)))
	b.NamedUnit("mile_per_hour", mph)
	return b.Err()
}

func named(r *algebra.Registry, name string) algebra.Unit {
	u, ok := r.NamedUnit(name)
	if !ok {
		panic("customary: named unit not registered: " + name)
	}
	return u
}

// =============================================================================
// QUANTITY CONSTRUCTORS
// =============================================================================

func Feet(v float64) algebra.Quantity[float64]   { return algebra.Of(v, Foot) }
func Inches(v float64) algebra.Quantity[float64] { return algebra.Of(v, Inch) }
func Miles(v float64) algebra.Quantity[float64]  { return algebra.Of(v, Mile) }
func Pounds(v float64) algebra.Quantity[float64] { return algebra.Of(v, Pound) }
func Slugs(v float64) algebra.Quantity[float64]  { return algebra.Of(v, Slug) }
func DegreesFahrenheit(v float64) algebra.Quantity[float64] {
	return algebra.Of(v, DegreeFahrenheit)
}

// USGallons returns v US gallons as cubic inches.
func USGallons(v float64) algebra.Quantity[float64] {
	return algebra.Of(v*usGallonCubicInches, CubicInch)
}

// ImperialGallons returns v imperial gallons as cubic inches.
func ImperialGallons(v float64) algebra.Quantity[float64] {
	return algebra.Of(v*imperialGallonCubicInches, CubicInch)
}
