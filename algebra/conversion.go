/*
conversion.go - Conversion rules and conversion factors

PURPOSE:
  A ConversionRule is a declared directed edge between two base units of
  the same base dimension:

    to = from × Scale + Offset

  Rules are declared once, registered globally and never modified.

REVERSIBILITY:
  A multiplicative rule (Offset == 0) is reversible by simple inversion
  unless declared otherwise. An affine rule (temperature scales) is only
  inverted when it is explicitly marked Reversible; otherwise the dedicated
  inverse rule has to be declared.

EXACTNESS:
  Scales and offsets are declared as decimals and composed exactly along a
  conversion path. Only inversion divides, at divisionPrecision digits. The
  float64 form is computed once per factor, so applying a factor is a
  single multiply-add.

SEE ALSO:
  - graph.go:    Edges derived from rules and scaled units
  - resolver.go: Composes factors along paths and across dimensions
*/
package algebra

import (
	"math"

	"github.com/shopspring/decimal"
)

// divisionPrecision is the number of decimal places kept when inverting a scale.
const divisionPrecision = 30

// =============================================================================
// CONVERSION RULE
// =============================================================================

type ConversionRule struct {
	From       BaseUnitID
	To         BaseUnitID
	Scale      decimal.Decimal
	Offset     decimal.Decimal
	Reversible bool
}

// Multiplicative returns a reversible scale-only rule.
func Multiplicative(from, to BaseUnitID, scale decimal.Decimal) ConversionRule {
	return ConversionRule{From: from, To: to, Scale: scale, Reversible: true}
}

// Affine returns a scale-and-offset rule. Pass reversible to let the
// resolver invert it instead of requiring the dedicated inverse rule.
func Affine(from, to BaseUnitID, scale, offset decimal.Decimal, reversible bool) ConversionRule {
	return ConversionRule{From: from, To: to, Scale: scale, Offset: offset, Reversible: reversible}
}

func (r ConversionRule) IsAffine() bool { return !r.Offset.IsZero() }

func (r ConversionRule) Factor() ConversionFactor {
	return newFactor(r.Scale, r.Offset)
}

func (r ConversionRule) same(o ConversionRule) bool {
	return r.From == o.From && r.To == o.To &&
		r.Scale.Equal(o.Scale) && r.Offset.Equal(o.Offset) &&
		r.Reversible == o.Reversible
}

// =============================================================================
// CONVERSION FACTOR
// =============================================================================

// ConversionFactor maps a value x to x × Scale + Offset.
type ConversionFactor struct {
	scale, offset decimal.Decimal
	s, o          float64
}

var one = decimal.NewFromInt(1)

// Identity is the factor of identical units.
func Identity() ConversionFactor {
	return newFactor(one, decimal.Zero)
}

func newFactor(scale, offset decimal.Decimal) ConversionFactor {
	return ConversionFactor{
		scale:  scale,
		offset: offset,
		s:      scale.InexactFloat64(),
		o:      offset.InexactFloat64(),
	}
}

func (f ConversionFactor) Scale() float64               { return f.s }
func (f ConversionFactor) Offset() float64              { return f.o }
func (f ConversionFactor) ExactScale() decimal.Decimal  { return f.scale }
func (f ConversionFactor) ExactOffset() decimal.Decimal { return f.offset }
func (f ConversionFactor) IsAffine() bool               { return !f.offset.IsZero() }

func (f ConversionFactor) IsIdentity() bool {
	return f.scale.Equal(one) && f.offset.IsZero()
}

func (f ConversionFactor) Apply(x float64) float64 {
	return x*f.s + f.o
}

func (f ConversionFactor) ApplyInverse(x float64) float64 {
	return (x - f.o) / f.s
}

// ApplyDecimal converts an exact value with the exact factor.
func (f ConversionFactor) ApplyDecimal(x decimal.Decimal) decimal.Decimal {
	return x.Mul(f.scale).Add(f.offset)
}

// Inverse returns the factor converting back.
func (f ConversionFactor) Inverse() ConversionFactor {
	inv := one.DivRound(f.scale, divisionPrecision)
	return newFactor(inv, f.offset.Neg().Mul(inv))
}

// Then returns the factor applying f first and g second.
func (f ConversionFactor) Then(g ConversionFactor) ConversionFactor {
	return newFactor(g.scale.Mul(f.scale), g.scale.Mul(f.offset).Add(g.offset))
}

// Pow raises a multiplicative factor to e. Offsets do not distribute over
// exponentiation, so an affine factor only accepts e == 1.
func (f ConversionFactor) Pow(e Exponent) (ConversionFactor, error) {
	if e.IsOne() {
		return f, nil
	}
	if f.IsAffine() {
		return ConversionFactor{}, &InvalidAffineCompositionError{
			Exponent: e,
			Reason:   "affine conversion raised to a non-unit power",
		}
	}
	if n, err := e.Int(); err == nil {
		return newFactor(powInt(f.scale, n), decimal.Zero), nil
	}
	return newFactor(decimal.NewFromFloat(math.Pow(f.s, e.Float64())), decimal.Zero), nil
}

// Times multiplies two multiplicative factors.
func (f ConversionFactor) Times(g ConversionFactor) ConversionFactor {
	return newFactor(f.scale.Mul(g.scale), decimal.Zero)
}

func powInt(d decimal.Decimal, n int64) decimal.Decimal {
	neg := n < 0
	if neg {
		n = -n
	}
	result := one
	base := d
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	if neg {
		return one.DivRound(result, divisionPrecision)
	}
	return result
}
