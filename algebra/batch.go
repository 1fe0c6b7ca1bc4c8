package algebra

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Batch declares a sequence of catalog entries and keeps the first error.
// Later calls after a failure are no-ops, so a catalog reads as a flat list:
//
//	b := algebra.NewBatch(r)
//	b.Root(MeterID, algebra.Length, "meter", "m")
//	b.Scaled(CentimeterID, MeterID, "0.01", "centimeter", "cm")
//	if err := b.Err(); err != nil { ... }
type Batch struct {
	r   *Registry
	err error
}

func NewBatch(r *Registry) *Batch { return &Batch{r: r} }

func (b *Batch) Err() error { return b.err }

func (b *Batch) Dimension(d BaseDimension, name, symbol string) {
	if b.err == nil {
		b.err = b.r.DeclareBaseDimension(d, name, symbol)
	}
}

func (b *Batch) Root(id BaseUnitID, dim BaseDimension, name, symbol string) {
	if b.err == nil {
		_, b.err = b.r.DeclareRootUnit(id, dim, name, symbol)
	}
}

// Scaled declares 1 unit = scale × parent, scale given as an exact decimal string.
func (b *Batch) Scaled(id, parent BaseUnitID, scale, name, symbol string) {
	if b.err != nil {
		return
	}
	s, err := decimal.NewFromString(scale)
	if err != nil {
		b.err = fmt.Errorf("%w: scale %q of %s: %v", ErrInvalidRule, scale, name, err)
		return
	}
	_, b.err = b.r.DeclareScaledUnit(id, parent, s, name, symbol)
}

func (b *Batch) System(tag SystemTag, ids ...BaseUnitID) {
	if b.err == nil {
		_, b.err = b.r.DeclareSystem(tag, ids...)
	}
}

func (b *Batch) Derived(name string, v DimensionVector) {
	if b.err == nil {
		b.err = b.r.DeclareDerivedDimension(name, v)
	}
}

// Rule declares from -> to with exact decimal strings. An empty offset is zero.
func (b *Batch) Rule(from, to BaseUnitID, scale, offset string, reversible bool) {
	if b.err != nil {
		return
	}
	s, err := decimal.NewFromString(scale)
	if err != nil {
		b.err = fmt.Errorf("%w: rule scale %q: %v", ErrInvalidRule, scale, err)
		return
	}
	o := decimal.Zero
	if offset != "" {
		if o, err = decimal.NewFromString(offset); err != nil {
			b.err = fmt.Errorf("%w: rule offset %q: %v", ErrInvalidRule, offset, err)
			return
		}
	}
	b.err = b.r.DeclareRule(ConversionRule{From: from, To: to, Scale: s, Offset: o, Reversible: reversible})
}

// Named binds dimension to the system tag and declares the unit under name.
func (b *Batch) Named(name string, dimension DimensionVector, tag SystemTag) {
	if b.err != nil {
		return
	}
	u, err := b.r.Unit(tag, dimension)
	if err != nil {
		b.err = fmt.Errorf("named unit %s: %w", name, err)
		return
	}
	b.err = b.r.DeclareNamedUnit(name, u)
}

// NamedUnit declares an already composed unit under name.
func (b *Batch) NamedUnit(name string, u Unit) {
	if b.err == nil {
		b.err = b.r.DeclareNamedUnit(name, u)
	}
}
