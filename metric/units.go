package metric

import "github.com/warp/dimensional/algebra"

// Quantity constructors for the common metric units.

func Meters(v float64) algebra.Quantity[float64]         { return algebra.Of(v, Meter) }
func Centimeters(v float64) algebra.Quantity[float64]    { return algebra.Of(v, Centimeter) }
func Kilometers(v float64) algebra.Quantity[float64]     { return algebra.Of(v, Kilometer) }
func Kilograms(v float64) algebra.Quantity[float64]      { return algebra.Of(v, Kilogram) }
func Grams(v float64) algebra.Quantity[float64]          { return algebra.Of(v, Gram) }
func Seconds(v float64) algebra.Quantity[float64]        { return algebra.Of(v, Second) }
func Hours(v float64) algebra.Quantity[float64]          { return algebra.Of(v, Hour) }
func Kelvins(v float64) algebra.Quantity[float64]        { return algebra.Of(v, Kelvin) }
func DegreesCelsius(v float64) algebra.Quantity[float64] { return algebra.Of(v, DegreeCelsius) }
func Radians(v float64) algebra.Quantity[float64]        { return algebra.Of(v, Radian) }
func Degs(v float64) algebra.Quantity[float64]           { return algebra.Of(v, Degree) }
func Newtons(v float64) algebra.Quantity[float64]        { return algebra.Of(v, Newton) }
func Dynes(v float64) algebra.Quantity[float64]          { return algebra.Of(v, Dyne) }
func Joules(v float64) algebra.Quantity[float64]         { return algebra.Of(v, Joule) }
