/*
Package algebra provides the dimensional algebra and the conversion resolver.

PURPOSE:
  Values carry a physical dimension (length, mass, time and products of
  them) and a unit system (SI, CGS, imperial ...). Adding a length to a mass
  is refused, multiplying them yields a length·mass, and converting between
  systems multiplies by a factor that is resolved once and cached.

KEY CONCEPTS:
  - BaseDimension:   Ordinal naming a primitive dimension (length, mass ...)
  - Exponent:        Exact rational power (roots never lose precision)
  - DimensionVector: Canonical sorted base-dimension/exponent list
  - BaseUnit:        Unit of exactly one base dimension, possibly scaled
  - System:          Homogeneous (one tag) or heterogeneous (per dimension)
  - Unit:            DimensionVector + System
  - Registry:        Declared dimensions, units, systems and rules
  - Quantity:        Numeric value bound to a Unit

DESIGN PRINCIPLES:
  1. Canonical form: two compositions with the same net exponents are equal
  2. Immutability: descriptors never change after construction
  3. Explicit conversion: nothing converts implicitly at a call site
  4. Fail fast: no best-effort conversions, every refusal is an error

USAGE:
  force := algebra.Derive(algebra.T(algebra.Mass, 1), algebra.T(algebra.Length, 1), algebra.T(algebra.Time, -2))
  newton := algebra.MustUnit(force, registry.MustSystem("si"))
  dyne := algebra.MustUnit(force, registry.MustSystem("cgs"))
  f, err := registry.Resolve(dyne, newton) // f.Scale() == 1e-5

SEE ALSO:
  - vector.go:   Dimension algebra
  - system.go:   Unit systems
  - resolver.go: Conversion factor resolution
  - quantity.go: Quantity arithmetic
*/
package algebra

import "fmt"

// =============================================================================
// BASE DIMENSIONS
// =============================================================================

// BaseDimension is the stable ordinal of a primitive physical dimension.
// Ordering by ordinal is the canonical order of dimension vectors.
type BaseDimension int

const (
	Length BaseDimension = iota + 1
	Mass
	Time
	Current
	Temperature
	Amount
	LuminousIntensity
	PlaneAngle
	SolidAngle
)

// FirstUserDimension is the lowest ordinal free for user declared dimensions.
const FirstUserDimension BaseDimension = 100

// DimensionInfo is the metadata declared with a base dimension.
type DimensionInfo struct {
	Dimension BaseDimension
	Name      string
	Symbol    string
}

var builtinDimensions = []DimensionInfo{
	{Length, "length", "L"},
	{Mass, "mass", "M"},
	{Time, "time", "T"},
	{Current, "current", "I"},
	{Temperature, "temperature", "Θ"},
	{Amount, "amount", "N"},
	{LuminousIntensity, "luminous_intensity", "J"},
	{PlaneAngle, "plane_angle", "A"},
	{SolidAngle, "solid_angle", "S"},
}

// BuiltinDimensions returns the predefined base dimensions in ordinal order.
func BuiltinDimensions() []DimensionInfo {
	out := make([]DimensionInfo, len(builtinDimensions))
	copy(out, builtinDimensions)
	return out
}

func (d BaseDimension) IsBuiltin() bool {
	return d >= Length && d <= SolidAngle
}

func (d BaseDimension) String() string {
	if d.IsBuiltin() {
		return builtinDimensions[d-1].Name
	}
	return fmt.Sprintf("dim(%d)", int(d))
}

// Symbol returns the conventional dimension symbol, or "D<n>" for user dimensions.
func (d BaseDimension) Symbol() string {
	if d.IsBuiltin() {
		return builtinDimensions[d-1].Symbol
	}
	return fmt.Sprintf("D%d", int(d))
}
