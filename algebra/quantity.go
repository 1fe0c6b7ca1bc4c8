/*
quantity.go - Numeric values bound to a unit

PURPOSE:
  A Quantity is a value and the Unit it is measured in. Quantities are
  values: every operation returns a new Quantity and the unit of an
  existing one never changes.

ARITHMETIC RULES:
  Add, Sub:  units must be identical. Different dimensions fail with
             IncompatibleDimensionsError; same dimension in a different
             system fails with UnitMismatchError. Convert first.
  Mul, Div:  always dimensionally valid. The result unit may be a
             heterogeneous system nobody declared (feet × slugs). The only
             failure is two operands binding one dimension to different
             base units.
  Pow, Root: the system is carried through unchanged.

NUMERIC TYPES:
  A Quantity tree uses one numeric type. Cast converts the number
  explicitly; it never touches the unit.

SEE ALSO:
  - decimal.go:  Exact decimal counterpart
  - resolver.go: Factors used by ConvertTo
*/
package algebra

import (
	"fmt"
	"math"
)

// Number is the set of value types a Quantity can carry.
type Number interface {
	~float32 | ~float64
}

type Quantity[T Number] struct {
	value T
	unit  Unit
}

// Of binds v to u.
func Of[T Number](v T, u Unit) Quantity[T] {
	return Quantity[T]{value: v, unit: u}
}

// Cast converts the numeric representation explicitly. The unit is kept.
func Cast[U, T Number](q Quantity[T]) Quantity[U] {
	return Quantity[U]{value: U(q.value), unit: q.unit}
}

func (q Quantity[T]) Value() T   { return q.value }
func (q Quantity[T]) Unit() Unit { return q.unit }

func (q Quantity[T]) Add(o Quantity[T]) (Quantity[T], error) {
	if err := sameUnit(q.unit, o.unit); err != nil {
		return Quantity[T]{}, err
	}
	return Quantity[T]{value: q.value + o.value, unit: q.unit}, nil
}

func (q Quantity[T]) Sub(o Quantity[T]) (Quantity[T], error) {
	if err := sameUnit(q.unit, o.unit); err != nil {
		return Quantity[T]{}, err
	}
	return Quantity[T]{value: q.value - o.value, unit: q.unit}, nil
}

func (q Quantity[T]) Mul(o Quantity[T]) (Quantity[T], error) {
	u, err := q.unit.Mul(o.unit)
	if err != nil {
		return Quantity[T]{}, err
	}
	return Quantity[T]{value: q.value * o.value, unit: u}, nil
}

func (q Quantity[T]) Div(o Quantity[T]) (Quantity[T], error) {
	u, err := q.unit.Div(o.unit)
	if err != nil {
		return Quantity[T]{}, err
	}
	return Quantity[T]{value: q.value / o.value, unit: u}, nil
}

// Scale multiplies by a dimensionless factor.
func (q Quantity[T]) Scale(k T) Quantity[T] {
	return Quantity[T]{value: q.value * k, unit: q.unit}
}

func (q Quantity[T]) Neg() Quantity[T] {
	return Quantity[T]{value: -q.value, unit: q.unit}
}

func (q Quantity[T]) Pow(n Exponent) Quantity[T] {
	return Quantity[T]{
		value: T(math.Pow(float64(q.value), n.Float64())),
		unit:  q.unit.Pow(n),
	}
}

// Root takes the n-th root; a negative n is the root of the reciprocal.
// Odd roots of negative values stay real.
func (q Quantity[T]) Root(n int) (Quantity[T], error) {
	u, err := q.unit.Root(n)
	if err != nil {
		return Quantity[T]{}, err
	}
	v := float64(q.value)
	var r float64
	switch {
	case n == 2:
		r = math.Sqrt(v)
	case n == 3:
		r = math.Cbrt(v)
	case v < 0 && n%2 != 0:
		r = -math.Pow(-v, 1/float64(n))
	default:
		r = math.Pow(v, 1/float64(n))
	}
	return Quantity[T]{value: T(r), unit: u}, nil
}

// ConvertTo converts with the Default registry.
func (q Quantity[T]) ConvertTo(target Unit) (Quantity[T], error) {
	return q.ConvertWith(Default, target)
}

// ConvertWith applies value × scale + offset from the factor r resolves.
func (q Quantity[T]) ConvertWith(r *Registry, target Unit) (Quantity[T], error) {
	f, err := r.Resolve(q.unit, target)
	if err != nil {
		return Quantity[T]{}, err
	}
	return Quantity[T]{value: T(f.Apply(float64(q.value))), unit: target}, nil
}

// ConvertDifference converts an interval: only the scale applies, so a
// 10 °C rise is an 18 °F rise.
func (q Quantity[T]) ConvertDifference(target Unit) (Quantity[T], error) {
	return q.ConvertDifferenceWith(Default, target)
}

func (q Quantity[T]) ConvertDifferenceWith(r *Registry, target Unit) (Quantity[T], error) {
	f, err := r.Resolve(q.unit, target)
	if err != nil {
		return Quantity[T]{}, err
	}
	return Quantity[T]{value: T(float64(q.value) * f.Scale()), unit: target}, nil
}

func (q Quantity[T]) String() string {
	return fmt.Sprintf("%g %s", float64(q.value), q.unit)
}

func sameUnit(a, b Unit) error {
	if !a.dim.Equal(b.dim) {
		return &IncompatibleDimensionsError{From: a.dim, To: b.dim}
	}
	if !SameSystem(a.sys, b.sys) {
		return &UnitMismatchError{Left: a, Right: b}
	}
	return nil
}
