/*
vector.go - Dimension vectors and their algebra

PURPOSE:
  A DimensionVector is the canonical description of a physical dimension:
  a list of (BaseDimension, Exponent) terms sorted by ordinal, with no
  duplicate dimensions and no zero exponents. The empty vector is the
  dimensionless value.

CANONICAL FORM:
  Every constructor and every operation returns a canonical vector, so
  structural equality is dimensional equality:

    Multiply(Mass, Divide(Length, Power(Time, 2)))
      == Derive(T(Length,1), T(Mass,1), T(Time,-2))
      == NewVector(T(Time,-2), T(Mass,1), T(Length,1))

  This is the property everything else relies on. Exponents are exact
  rationals; there is never a floating-point comparison of exponents.

OPERATIONS:
  Multiply: merge by ordinal, add exponents, drop zeros
  Divide:   Multiply by the negated vector
  Power:    scale every exponent (n = 0 gives dimensionless)
  Root:     divide every exponent by a non-zero integer

OVERFLOW:
  Exponents are int64 fractions. Multiply, Divide, Power, Derive and
  NewVector panic when an exponent would not fit; they are meant for
  vectors written in code. CheckedMultiply, CheckedDivide, CheckedPower and
  CheckedDerive return ErrInvalidExponent instead and are what input from
  users goes through.

SEE ALSO:
  - exponent.go: Rational exponents
  - unit.go:     Units pair a vector with a system
*/
package algebra

import (
	"fmt"
	"sort"
	"strings"
)

// Term is one base dimension raised to an exponent.
type Term struct {
	Dim BaseDimension
	Exp Exponent
}

// T is shorthand for an integral term.
func T(dim BaseDimension, n int64) Term {
	return Term{Dim: dim, Exp: Int(n)}
}

// IntTerm is a term whose exponent is known to be integral.
type IntTerm struct {
	Dim BaseDimension
	Exp int64
}

// DimensionVector is immutable: the terms slice is never exposed or mutated.
type DimensionVector struct {
	terms []Term
}

// Dimensionless returns the empty vector.
func Dimensionless() DimensionVector { return DimensionVector{} }

// Base returns the vector of a single base dimension at exponent 1.
func Base(dim BaseDimension) DimensionVector {
	return DimensionVector{terms: []Term{{Dim: dim, Exp: Int(1)}}}
}

// NewVector builds the canonical vector for terms given in any order.
// Repeated dimensions are summed.
func NewVector(terms ...Term) DimensionVector {
	if len(terms) == 0 {
		return DimensionVector{}
	}
	sorted := make([]Term, len(terms))
	copy(sorted, terms)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Dim < sorted[j].Dim })

	out := make([]Term, 0, len(sorted))
	for _, t := range sorted {
		if n := len(out); n > 0 && out[n-1].Dim == t.Dim {
			out[n-1].Exp = mustExp(out[n-1].Exp.Add(t.Exp))
			continue
		}
		out = append(out, Term{Dim: t.Dim, Exp: R(t.Exp.Num(), t.Exp.Den())})
	}
	return DimensionVector{terms: dropZeros(out)}
}

// Derive composes a derived dimension by repeated multiplication of its terms.
func Derive(terms ...Term) DimensionVector {
	return must(CheckedDerive(terms...))
}

func CheckedDerive(terms ...Term) (DimensionVector, error) {
	v := Dimensionless()
	for _, t := range terms {
		p, err := CheckedPower(Base(t.Dim), t.Exp)
		if err != nil {
			return DimensionVector{}, err
		}
		if v, err = CheckedMultiply(v, p); err != nil {
			return DimensionVector{}, err
		}
	}
	return v, nil
}

// =============================================================================
// COMPOSITION
// =============================================================================

// Multiply merges two canonical vectors, summing shared exponents.
func Multiply(a, b DimensionVector) DimensionVector {
	return must(CheckedMultiply(a, b))
}

func CheckedMultiply(a, b DimensionVector) (DimensionVector, error) {
	if len(a.terms) == 0 {
		return b, nil
	}
	if len(b.terms) == 0 {
		return a, nil
	}
	out := make([]Term, 0, len(a.terms)+len(b.terms))
	i, j := 0, 0
	for i < len(a.terms) && j < len(b.terms) {
		at, bt := a.terms[i], b.terms[j]
		switch {
		case at.Dim < bt.Dim:
			out = append(out, at)
			i++
		case at.Dim > bt.Dim:
			out = append(out, bt)
			j++
		default:
			sum, err := at.Exp.Add(bt.Exp)
			if err != nil {
				return DimensionVector{}, fmt.Errorf("%s: %w", at.Dim, err)
			}
			if !sum.IsZero() {
				out = append(out, Term{Dim: at.Dim, Exp: sum})
			}
			i++
			j++
		}
	}
	out = append(out, a.terms[i:]...)
	out = append(out, b.terms[j:]...)
	return DimensionVector{terms: out}, nil
}

// Negate flips the sign of every exponent.
func Negate(a DimensionVector) DimensionVector {
	out := make([]Term, len(a.terms))
	for i, t := range a.terms {
		out[i] = Term{Dim: t.Dim, Exp: t.Exp.Neg()}
	}
	return DimensionVector{terms: out}
}

func Divide(a, b DimensionVector) DimensionVector {
	return Multiply(a, Negate(b))
}

func CheckedDivide(a, b DimensionVector) (DimensionVector, error) {
	return CheckedMultiply(a, Negate(b))
}

// Power multiplies every exponent by n. A zero power is dimensionless.
func Power(a DimensionVector, n Exponent) DimensionVector {
	return must(CheckedPower(a, n))
}

func CheckedPower(a DimensionVector, n Exponent) (DimensionVector, error) {
	if n.IsZero() {
		return DimensionVector{}, nil
	}
	out := make([]Term, len(a.terms))
	for i, t := range a.terms {
		e, err := t.Exp.Mul(n)
		if err != nil {
			return DimensionVector{}, fmt.Errorf("%s: %w", t.Dim, err)
		}
		out[i] = Term{Dim: t.Dim, Exp: e}
	}
	return DimensionVector{terms: out}, nil
}

// Root divides every exponent by n, keeping exact fractions. A negative n
// takes the root of the reciprocal, so Root(Power(a, n), n) == a for any
// n != 0.
func Root(a DimensionVector, n int) (DimensionVector, error) {
	if n == 0 {
		return DimensionVector{}, fmt.Errorf("%w: zero root degree", ErrInvalidExponent)
	}
	out := make([]Term, len(a.terms))
	for i, t := range a.terms {
		e, err := t.Exp.Div(Int(int64(n)))
		if err != nil {
			return DimensionVector{}, fmt.Errorf("%s: %w", t.Dim, err)
		}
		out[i] = Term{Dim: t.Dim, Exp: e}
	}
	return DimensionVector{terms: out}, nil
}

func must(v DimensionVector, err error) DimensionVector {
	if err != nil {
		panic(err)
	}
	return v
}

func mustExp(e Exponent, err error) Exponent {
	if err != nil {
		panic(err)
	}
	return e
}

func (v DimensionVector) Mul(o DimensionVector) DimensionVector { return Multiply(v, o) }
func (v DimensionVector) Div(o DimensionVector) DimensionVector { return Divide(v, o) }
func (v DimensionVector) Pow(n Exponent) DimensionVector        { return Power(v, n) }

// =============================================================================
// INSPECTION
// =============================================================================

// Equal is exact structural equality of canonical vectors.
func (v DimensionVector) Equal(o DimensionVector) bool {
	if len(v.terms) != len(o.terms) {
		return false
	}
	for i := range v.terms {
		if v.terms[i].Dim != o.terms[i].Dim || !v.terms[i].Exp.Equal(o.terms[i].Exp) {
			return false
		}
	}
	return true
}

func (v DimensionVector) IsDimensionless() bool { return len(v.terms) == 0 }
func (v DimensionVector) Len() int              { return len(v.terms) }

// Terms returns a copy of the canonical terms.
func (v DimensionVector) Terms() []Term {
	out := make([]Term, len(v.terms))
	copy(out, v.terms)
	return out
}

// Exponent returns the exponent of dim, zero when absent.
func (v DimensionVector) Exponent(dim BaseDimension) Exponent {
	i := sort.Search(len(v.terms), func(i int) bool { return v.terms[i].Dim >= dim })
	if i < len(v.terms) && v.terms[i].Dim == dim {
		return v.terms[i].Exp
	}
	return Int(0)
}

func (v DimensionVector) Dimensions() []BaseDimension {
	out := make([]BaseDimension, len(v.terms))
	for i, t := range v.terms {
		out[i] = t.Dim
	}
	return out
}

// Canonical re-normalizes the vector. It is a no-op on any vector produced
// by this package.
func (v DimensionVector) Canonical() DimensionVector {
	return NewVector(v.terms...)
}

// IntegerTerms returns the terms with integral exponents, failing on the
// first fractional one. Use it where only integer powers are representable.
func (v DimensionVector) IntegerTerms() ([]IntTerm, error) {
	out := make([]IntTerm, len(v.terms))
	for i, t := range v.terms {
		n, err := t.Exp.Int()
		if err != nil {
			return nil, &NonIntegralDimensionError{Dimension: t.Dim, Exponent: t.Exp}
		}
		out[i] = IntTerm{Dim: t.Dim, Exp: n}
	}
	return out, nil
}

// Key is a canonical string usable as a map key, e.g. "1:1,2:1,3:-2".
func (v DimensionVector) Key() string {
	var b strings.Builder
	for i, t := range v.terms {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(itoa(int64(t.Dim)))
		b.WriteByte(':')
		b.WriteString(t.Exp.String())
	}
	return b.String()
}

// String renders the vector with dimension symbols, e.g. "L·M·T^-2".
func (v DimensionVector) String() string {
	if len(v.terms) == 0 {
		return "1"
	}
	parts := make([]string, len(v.terms))
	for i, t := range v.terms {
		if t.Exp.IsOne() {
			parts[i] = t.Dim.Symbol()
		} else {
			parts[i] = t.Dim.Symbol() + "^" + t.Exp.String()
		}
	}
	return strings.Join(parts, "·")
}

func dropZeros(terms []Term) []Term {
	out := terms[:0]
	for _, t := range terms {
		if !t.Exp.IsZero() {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func itoa(n int64) string {
	return Int(n).String()
}
