package algebra

import "fmt"

// =============================================================================
// UNIT - What physical quantity, measured how
// =============================================================================

// Unit pairs a canonical DimensionVector with the System that measures it.
//
// Units are canonical too: a heterogeneous system is pruned to the
// dimensions present in the vector and a dimensionless unit carries no
// system at all, so two units describing the same measurement are Equal.
type Unit struct {
	dim DimensionVector
	sys System
}

// Scalar is the dimensionless unit.
var Scalar = Unit{}

// NewUnit binds dim to sys. Every dimension of dim must be bound by sys.
func NewUnit(dim DimensionVector, sys System) (Unit, error) {
	if dim.IsDimensionless() {
		return Unit{}, nil
	}
	if d, ok := sys.covers(dim); !ok {
		return Unit{}, fmt.Errorf("%w: %s in system %s", ErrUnboundDimension, d, sys)
	}
	if !sys.IsHomogeneous() {
		sys = sys.restrict(dim)
	}
	return Unit{dim: dim, sys: sys}, nil
}

// MustUnit is NewUnit for package-level catalog constants. It panics on error.
func MustUnit(dim DimensionVector, sys System) Unit {
	u, err := NewUnit(dim, sys)
	if err != nil {
		panic(err)
	}
	return u
}

// UnitOf is the unit of a single base unit at exponent 1.
func UnitOf(u BaseUnit) Unit {
	return Unit{dim: Base(u.Dimension), sys: SystemOf(u)}
}

func (u Unit) Dimension() DimensionVector { return u.dim }
func (u Unit) System() System             { return u.sys }
func (u Unit) IsDimensionless() bool      { return u.dim.IsDimensionless() }

// Convertible reports whether the canonical dimensions are equal.
func (u Unit) Convertible(o Unit) bool { return u.dim.Equal(o.dim) }

// Equal reports identical units: same dimension, same system.
func (u Unit) Equal(o Unit) bool {
	return u.dim.Equal(o.dim) && SameSystem(u.sys, o.sys)
}

// Mul composes dimensions by multiplication and systems by union. It fails
// only when both units bind a shared dimension to different base units.
func (u Unit) Mul(o Unit) (Unit, error) {
	dim, err := CheckedMultiply(u.dim, o.dim)
	if err != nil {
		return Unit{}, err
	}
	return compose(u, o, dim)
}

// Div composes dimensions by division and systems by union.
func (u Unit) Div(o Unit) (Unit, error) {
	dim, err := CheckedDivide(u.dim, o.dim)
	if err != nil {
		return Unit{}, err
	}
	return compose(u, o, dim)
}

// Pow raises the dimension; the system names the same base units. It
// panics when an exponent overflows, see CheckedPow.
func (u Unit) Pow(n Exponent) Unit {
	p, err := u.CheckedPow(n)
	if err != nil {
		panic(err)
	}
	return p
}

func (u Unit) CheckedPow(n Exponent) (Unit, error) {
	dim, err := CheckedPower(u.dim, n)
	if err != nil {
		return Unit{}, err
	}
	if dim.IsDimensionless() {
		return Unit{}, nil
	}
	return Unit{dim: dim, sys: u.sys}, nil
}

func (u Unit) Root(n int) (Unit, error) {
	dim, err := Root(u.dim, n)
	if err != nil {
		return Unit{}, err
	}
	if dim.IsDimensionless() {
		return Unit{}, nil
	}
	return Unit{dim: dim, sys: u.sys}, nil
}

func (u Unit) String() string {
	if u.dim.IsDimensionless() {
		return "1"
	}
	return fmt.Sprintf("%s [%s]", u.dim, u.sys)
}

// compose picks the system of a product or quotient. The conflict check runs
// on the operands' own dimensions before cancellation, so m/cm is refused
// instead of silently becoming a bare 1.
func compose(a, b Unit, dim DimensionVector) (Unit, error) {
	var sys System
	switch {
	case a.dim.IsDimensionless():
		sys = b.sys
	case b.dim.IsDimensionless():
		sys = a.sys
	case SameSystem(a.sys, b.sys):
		sys = a.sys
	default:
		var err error
		sys, err = Union(a.sys.restrict(a.dim), b.sys.restrict(b.dim))
		if err != nil {
			return Unit{}, err
		}
	}
	if dim.IsDimensionless() {
		return Unit{}, nil
	}
	if !sys.IsHomogeneous() {
		sys = sys.restrict(dim)
	}
	return Unit{dim: dim, sys: sys}, nil
}
