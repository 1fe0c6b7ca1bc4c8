/*
Package customary provides the imperial and US customary catalogs.

PURPOSE:
  Demonstrates that the algebra handles systems beyond metric with the
  same machinery. Every unit here is declared as an exact scaled
  derivation of a metric unit, so conversions to SI come out of the
  derivation chain without any per-pair rule:

    inch  = 0.0254 meter        pound = 0.45359237 kilogram
    foot  = 12 inch             ounce = 0.0625 pound
    yard  = 3 foot              slug  = 14.59390293720636 kilogram
    mile  = 5280 foot

SYSTEMS:
  imperial: ft, lb, s, °F (force unit: poundal)
  us:       ft, slug, s, °F (force unit: pound-force)

TEMPERATURE:
  °C -> °F   x × 1.8 + 32      reversible
  °F -> °R   x + 459.67        reversible
  K  -> °R   x × 1.8           reversible

  °F -> K is a chain of two offset rules and resolves. °R -> K is a single
  scale-only rule. Anything that has to mix the two kinds in one chain is
  refused by the resolver.

VOLUMES:
  Gallons are volumes, not base units: USGallons and ImperialGallons
  return quantities in cubic inches (231 and 277.41945 per gallon).

SEE ALSO:
  - metric/: Parent units
*/
package customary

import "github.com/warp/dimensional/algebra"

// =============================================================================
// BASE UNIT IDS - stable ordinals, 200-299
// =============================================================================

const (
	InchID       algebra.BaseUnitID = 200
	FootID       algebra.BaseUnitID = 201
	YardID       algebra.BaseUnitID = 202
	MileID       algebra.BaseUnitID = 203
	PoundID      algebra.BaseUnitID = 204
	OunceID      algebra.BaseUnitID = 205
	SlugID       algebra.BaseUnitID = 206
	FahrenheitID algebra.BaseUnitID = 207
	RankineID    algebra.BaseUnitID = 208
)

const (
	TagImperial algebra.SystemTag = "imperial"
	TagUS       algebra.SystemTag = "us"
)

// Cubic inches per gallon.
const (
	usGallonCubicInches       = 231.0
	imperialGallonCubicInches = 277.41945
)

// Systems and units of algebra.Default, set by init.
var (
	Imperial, US algebra.System

	Foot, Inch, Yard, Mile, Pound, Ounce, Slug algebra.Unit
	DegreeFahrenheit, DegreeRankine           algebra.Unit
	Poundal, PoundForce, CubicInch, MilePerHour algebra.Unit
)
