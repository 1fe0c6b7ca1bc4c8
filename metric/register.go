package metric

import "github.com/warp/dimensional/algebra"

// Register all metric declarations with the default registry.
func init() {
	algebra.Must(Register(algebra.Default))
	r := algebra.Default

	SI = r.MustSystem(TagSI)
	CGS = r.MustSystem(TagCGS)
	Celsius = r.MustSystem(TagCelsius)
	Degrees = r.MustSystem(TagDegree)
	Gradians = r.MustSystem(TagGradian)
	Revolutions = r.MustSystem(TagRevolution)

	Meter = algebra.MustUnit(algebra.Base(algebra.Length), SI)
	Kilogram = algebra.MustUnit(algebra.Base(algebra.Mass), SI)
	Second = algebra.MustUnit(algebra.Base(algebra.Time), SI)
	Kelvin = algebra.MustUnit(algebra.Base(algebra.Temperature), SI)
	Radian = algebra.MustUnit(algebra.Base(algebra.PlaneAngle), SI)
	Centimeter = algebra.MustUnit(algebra.Base(algebra.Length), CGS)
	Gram = algebra.MustUnit(algebra.Base(algebra.Mass), CGS)
	DegreeCelsius = algebra.MustUnit(algebra.Base(algebra.Temperature), Celsius)
	Degree = algebra.MustUnit(algebra.Base(algebra.PlaneAngle), Degrees)

	Kilometer = mustNamed(r, "kilometer")
	Hour = mustNamed(r, "hour")
	KilometerPerHour = mustNamed(r, "kilometer_per_hour")

	Newton = algebra.MustUnit(Force, SI)
	Dyne = algebra.MustUnit(Force, CGS)
	Joule = algebra.MustUnit(Energy, SI)
	Erg = algebra.MustUnit(Energy, CGS)
	Watt = algebra.MustUnit(Power, SI)
	Pascal = algebra.MustUnit(Pressure, SI)
	Hertz = algebra.MustUnit(Frequency, SI)
	SquareMeter = algebra.MustUnit(Area, SI)
	CubicMeter = algebra.MustUnit(Volume, SI)
	MeterPerSecond = algebra.MustUnit(Velocity, SI)
}

// Register declares the metric catalog into r. It is idempotent, so other
// catalogs can call it to make sure their parents exist.
func Register(r *algebra.Registry) error {
	b := algebra.NewBatch(r)

	// SI base units
	b.Root(MeterID, algebra.Length, "meter", "m")
	b.Root(KilogramID, algebra.Mass, "kilogram", "kg")
	b.Root(SecondID, algebra.Time, "second", "s")
	b.Root(AmpereID, algebra.Current, "ampere", "A")
	b.Root(KelvinID, algebra.Temperature, "kelvin", "K")
	b.Root(MoleID, algebra.Amount, "mole", "mol")
	b.Root(CandelaID, algebra.LuminousIntensity, "candela", "cd")
	b.Root(RadianID, algebra.PlaneAngle, "radian", "rad")
	b.Root(SteradianID, algebra.SolidAngle, "steradian", "sr")

	// Prefixed and customary-metric units
	b.Scaled(CentimeterID, MeterID, "0.01", "centimeter", "cm")
	b.Scaled(GramID, KilogramID, "0.001", "gram", "g")
	b.Scaled(MillimeterID, MeterID, "0.001", "millimeter", "mm")
	b.Scaled(KilometerID, MeterID, "1000", "kilometer", "km")
	b.Scaled(MilligramID, GramID, "0.001", "milligram", "mg")
	b.Scaled(MillisecondID, SecondID, "0.001", "millisecond", "ms")
	b.Scaled(MinuteID, SecondID, "60", "minute", "min")
	b.Scaled(HourID, MinuteID, "60", "hour", "h")
	b.Scaled(DegreeID, RadianID, degreeScale, "degree", "°")
	b.Scaled(GradianID, RadianID, gradianScale, "gradian", "gon")
	b.Scaled(RevolutionID, DegreeID, "360", "revolution", "rev")

	// Celsius is its own root: it is offset from kelvin, not scaled
	b.Root(CelsiusID, algebra.Temperature, "celsius", "°C")
	b.Rule(CelsiusID, KelvinID, "1", "273.15", true)

	b.System(TagSI, MeterID, KilogramID, SecondID, AmpereID, KelvinID, MoleID, CandelaID, RadianID, SteradianID)
	b.System(TagCGS, CentimeterID, GramID, SecondID, AmpereID, KelvinID, MoleID, CandelaID, RadianID, SteradianID)
	b.System(TagCelsius, MeterID, KilogramID, SecondID, AmpereID, CelsiusID, MoleID, CandelaID, RadianID, SteradianID)
	b.System(TagDegree, MeterID, KilogramID, SecondID, AmpereID, KelvinID, MoleID, CandelaID, DegreeID, SteradianID)
	b.System(TagGradian, MeterID, KilogramID, SecondID, AmpereID, KelvinID, MoleID, CandelaID, GradianID, SteradianID)
	b.System(TagRevolution, MeterID, KilogramID, SecondID, AmpereID, KelvinID, MoleID, CandelaID, RevolutionID, SteradianID)

	for _, d := range derivedDimensions {
		b.Derived(d.name, d.dim)
	}

	b.Named("meter", algebra.Base(algebra.Length), TagSI)
	b.Named("centimeter", algebra.Base(algebra.Length), TagCGS)
	b.Named("kilogram", algebra.Base(algebra.Mass), TagSI)
	b.Named("gram", algebra.Base(algebra.Mass), TagCGS)
	b.Named("second", algebra.Base(algebra.Time), TagSI)
	b.Named("kelvin", algebra.Base(algebra.Temperature), TagSI)
	b.Named("celsius", algebra.Base(algebra.Temperature), TagCelsius)
	b.Named("radian", algebra.Base(algebra.PlaneAngle), TagSI)
	b.Named("degree", algebra.Base(algebra.PlaneAngle), TagDegree)
	b.Named("gradian", algebra.Base(algebra.PlaneAngle), TagGradian)
	b.Named("revolution", algebra.Base(algebra.PlaneAngle), TagRevolution)
	b.Named("square_meter", Area, TagSI)
	b.Named("cubic_meter", Volume, TagSI)
	b.Named("meter_per_second", Velocity, TagSI)
	b.Named("newton", Force, TagSI)
	b.Named("dyne", Force, TagCGS)
	b.Named("joule", Energy, TagSI)
	b.Named("erg", Energy, TagCGS)
	b.Named("watt", Power, TagSI)
	b.Named("pascal", Pressure, TagSI)
	b.Named("hertz", Frequency, TagSI)
	b.Named("radian_per_second", AngularVelocity, TagSI)
	b.Named("degree_per_second", AngularVelocity, TagDegree)
	if err := b.Err(); err != nil {
		return err
	}
	return registerScaled(r)
}

// registerScaled names units built from single scaled base units, which
// live in heterogeneous systems rather than a declared tag.
func registerScaled(r *algebra.Registry) error {
	units := make(map[algebra.BaseUnitID]algebra.Unit)
	for _, id := range []algebra.BaseUnitID{MillimeterID, KilometerID, MilligramID, MillisecondID, MinuteID, HourID} {
		u, err := r.BaseUnit(id)
		if err != nil {
			return err
		}
		units[id] = algebra.UnitOf(u)
	}
	kmh, err := units[KilometerID].Div(units[HourID])
	if err != nil {
		return err
	}

	b := algebra.NewBatch(r)
	b.NamedUnit("millimeter", units[MillimeterID])
	b.NamedUnit("kilometer", units[KilometerID])
	b.NamedUnit("milligram", units[MilligramID])
	b.NamedUnit("millisecond", units[MillisecondID])
	b.NamedUnit("minute", units[MinuteID])
	b.NamedUnit("hour", units[HourID])
	b.NamedUnit("kilometer_per_hour", kmh)
	return b.Err()
}

func mustNamed(r *algebra.Registry, name string) algebra.Unit {
	u, ok := r.NamedUnit(name)
	if !ok {
		panic("metric: named unit not registered: " + name)
	}
	return u
}
