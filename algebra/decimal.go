package algebra

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DECIMAL QUANTITY - Exact counterpart of Quantity
// =============================================================================

// DecimalQuantity is a decimal value bound to a Unit. Conversions use the
// exact declared scales, so 1 ft converts to exactly 0.3048 m.
type DecimalQuantity struct {
	Value decimal.Decimal
	Unit  Unit
}

func NewDecimal(v decimal.Decimal, u Unit) DecimalQuantity {
	return DecimalQuantity{Value: v, Unit: u}
}

// NewDecimalFromString parses v, e.g. "12.5".
func NewDecimalFromString(v string, u Unit) (DecimalQuantity, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return DecimalQuantity{}, fmt.Errorf("parse quantity value %q: %w", v, err)
	}
	return DecimalQuantity{Value: d, Unit: u}, nil
}

func (q DecimalQuantity) IsZero() bool     { return q.Value.IsZero() }
func (q DecimalQuantity) IsNegative() bool { return q.Value.IsNegative() }
func (q DecimalQuantity) Neg() DecimalQuantity {
	return DecimalQuantity{Value: q.Value.Neg(), Unit: q.Unit}
}

func (q DecimalQuantity) Scale(k decimal.Decimal) DecimalQuantity {
	return DecimalQuantity{Value: q.Value.Mul(k), Unit: q.Unit}
}

func (q DecimalQuantity) Add(o DecimalQuantity) (DecimalQuantity, error) {
	if err := sameUnit(q.Unit, o.Unit); err != nil {
		return DecimalQuantity{}, err
	}
	return DecimalQuantity{Value: q.Value.Add(o.Value), Unit: q.Unit}, nil
}

func (q DecimalQuantity) Sub(o DecimalQuantity) (DecimalQuantity, error) {
	if err := sameUnit(q.Unit, o.Unit); err != nil {
		return DecimalQuantity{}, err
	}
	return DecimalQuantity{Value: q.Value.Sub(o.Value), Unit: q.Unit}, nil
}

func (q DecimalQuantity) Mul(o DecimalQuantity) (DecimalQuantity, error) {
	u, err := q.Unit.Mul(o.Unit)
	if err != nil {
		return DecimalQuantity{}, err
	}
	return DecimalQuantity{Value: q.Value.Mul(o.Value), Unit: u}, nil
}

// Div rounds to divisionPrecision places.
func (q DecimalQuantity) Div(o DecimalQuantity) (DecimalQuantity, error) {
	if o.Value.IsZero() {
		return DecimalQuantity{}, fmt.Errorf("divide %s by zero", q)
	}
	u, err := q.Unit.Div(o.Unit)
	if err != nil {
		return DecimalQuantity{}, err
	}
	return DecimalQuantity{Value: q.Value.DivRound(o.Value, divisionPrecision), Unit: u}, nil
}

// ConvertWith applies the exact factor r resolves.
func (q DecimalQuantity) ConvertWith(r *Registry, target Unit) (DecimalQuantity, error) {
	f, err := r.Resolve(q.Unit, target)
	if err != nil {
		return DecimalQuantity{}, err
	}
	return DecimalQuantity{Value: f.ApplyDecimal(q.Value), Unit: target}, nil
}

func (q DecimalQuantity) ConvertTo(target Unit) (DecimalQuantity, error) {
	return q.ConvertWith(Default, target)
}

// Float converts to a float64 Quantity.
func (q DecimalQuantity) Float() Quantity[float64] {
	return Of(q.Value.InexactFloat64(), q.Unit)
}

func (q DecimalQuantity) String() string {
	return fmt.Sprintf("%s %s", q.Value.String(), q.Unit)
}
