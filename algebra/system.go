/*
system.go - Base units and unit systems

PURPOSE:
  A System says which base unit measures each base dimension.

  Homogeneous: a single tag ("si", "cgs") applied uniformly. The registry
  snapshots the tag's per-dimension base units into the System value so
  the value can be used without going back to the registry.

  Heterogeneous: an explicit list of per-dimension choices, sorted by
  dimension ordinal, at most one per dimension. Built by union-ing single
  dimension systems; two heterogeneous systems with the same choices are
  equal regardless of the order they were assembled in.

UNION RULE:
  Union(a, b) covers the union of both dimension sets. A dimension bound in
  both must be bound to the same base unit, otherwise the union fails with
  ConflictingBaseUnitError.

SEE ALSO:
  - unit.go:     Units compose systems when they multiply
  - registry.go: Declares base units and homogeneous systems
*/
package algebra

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// BASE UNITS
// =============================================================================

// BaseUnitID is the stable ordinal of a base unit. Lower IDs win ties.
type BaseUnitID int

// BaseUnit is a unit of exactly one base dimension.
//
// A scaled unit names its Parent and the exact Scale such that
// 1 unit = Scale × Parent. Root units have Parent == 0.
type BaseUnit struct {
	ID        BaseUnitID
	Dimension BaseDimension
	Name      string
	Symbol    string
	Parent    BaseUnitID
	Scale     decimal.Decimal
}

func (u BaseUnit) IsScaled() bool { return u.Parent != 0 }

func (u BaseUnit) same(o BaseUnit) bool {
	return u.ID == o.ID && u.Dimension == o.Dimension &&
		u.Name == o.Name && u.Symbol == o.Symbol &&
		u.Parent == o.Parent && u.Scale.Equal(o.Scale)
}

// =============================================================================
// SYSTEMS
// =============================================================================

// SystemTag names a homogeneous system.
type SystemTag string

// Binding is one per-dimension choice of a system.
type Binding struct {
	Dimension BaseDimension
	Unit      BaseUnitID
}

// System is an immutable value. The zero value is the empty heterogeneous
// system, the system of dimensionless units.
type System struct {
	tag      SystemTag
	bindings []Binding // sorted by Dimension
}

func newHomogeneous(tag SystemTag, bindings []Binding) System {
	return System{tag: tag, bindings: sortedBindings(bindings)}
}

// SystemOf returns the single-dimension heterogeneous system of u.
func SystemOf(u BaseUnit) System {
	return System{bindings: []Binding{{Dimension: u.Dimension, Unit: u.ID}}}
}

// Heterogeneous unions the single-dimension systems of units.
func Heterogeneous(units ...BaseUnit) (System, error) {
	var s System
	for _, u := range units {
		var err error
		if s, err = Union(s, SystemOf(u)); err != nil {
			return System{}, err
		}
	}
	return s, nil
}

func (s System) Tag() SystemTag      { return s.tag }
func (s System) IsHomogeneous() bool { return s.tag != "" }
func (s System) IsEmpty() bool       { return s.tag == "" && len(s.bindings) == 0 }

// Bindings returns a copy of the per-dimension choices.
func (s System) Bindings() []Binding {
	out := make([]Binding, len(s.bindings))
	copy(out, s.bindings)
	return out
}

// UnitFor returns the base unit the system uses for dim.
func (s System) UnitFor(dim BaseDimension) (BaseUnitID, bool) {
	i := sort.Search(len(s.bindings), func(i int) bool { return s.bindings[i].Dimension >= dim })
	if i < len(s.bindings) && s.bindings[i].Dimension == dim {
		return s.bindings[i].Unit, true
	}
	return 0, false
}

// SameSystem is tag equality for homogeneous systems and binding equality
// for heterogeneous ones. A homogeneous system never equals a heterogeneous one.
func SameSystem(a, b System) bool {
	if a.tag != b.tag {
		return false
	}
	if a.tag != "" {
		return true
	}
	if len(a.bindings) != len(b.bindings) {
		return false
	}
	for i := range a.bindings {
		if a.bindings[i] != b.bindings[i] {
			return false
		}
	}
	return true
}

func (s System) Equal(o System) bool { return SameSystem(s, o) }

// Union combines two systems into a heterogeneous system covering both
// dimension sets.
func Union(a, b System) (System, error) {
	out := make([]Binding, 0, len(a.bindings)+len(b.bindings))
	i, j := 0, 0
	for i < len(a.bindings) && j < len(b.bindings) {
		ab, bb := a.bindings[i], b.bindings[j]
		switch {
		case ab.Dimension < bb.Dimension:
			out = append(out, ab)
			i++
		case ab.Dimension > bb.Dimension:
			out = append(out, bb)
			j++
		default:
			if ab.Unit != bb.Unit {
				return System{}, &ConflictingBaseUnitError{
					Dimension:   ab.Dimension,
					Existing:    ab.Unit,
					Conflicting: bb.Unit,
				}
			}
			out = append(out, ab)
			i++
			j++
		}
	}
	out = append(out, a.bindings[i:]...)
	out = append(out, b.bindings[j:]...)
	return System{bindings: out}, nil
}

// restrict returns the heterogeneous system holding only the dimensions of v.
func (s System) restrict(v DimensionVector) System {
	out := make([]Binding, 0, v.Len())
	for _, d := range v.Dimensions() {
		if u, ok := s.UnitFor(d); ok {
			out = append(out, Binding{Dimension: d, Unit: u})
		}
	}
	return System{bindings: out}
}

// covers reports the first dimension of v the system leaves unbound.
func (s System) covers(v DimensionVector) (BaseDimension, bool) {
	for _, d := range v.Dimensions() {
		if _, ok := s.UnitFor(d); !ok {
			return d, false
		}
	}
	return 0, true
}

func (s System) String() string {
	if s.tag != "" {
		return string(s.tag)
	}
	parts := make([]string, len(s.bindings))
	for i, b := range s.bindings {
		parts[i] = b.Dimension.Symbol() + "=" + itoa(int64(b.Unit))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func sortedBindings(in []Binding) []Binding {
	out := make([]Binding, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i].Dimension < out[j].Dimension })
	return out
}
