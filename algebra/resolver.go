/*
resolver.go - Conversion factor resolution

PURPOSE:
  Resolve finds the factor converting a value from one unit to another of
  the same dimension.

ALGORITHM:
  1. Unequal dimension vectors: IncompatibleDimensionsError
  2. Dimensionless or identical systems: identity
  3. For each term of the vector, find the base units the two systems use
     for that dimension and resolve them over the conversion graph
  4. A single term at exponent 1 may be affine (0 °C -> 273.15 K)
  5. Otherwise every per-dimension factor must be multiplicative; each is
     raised to its exponent and the results are multiplied. The first
     failure is returned, nothing is skipped.

GRAPH SEARCH:
  Base unit to base unit is a breadth-first search over declared rules,
  scaled-unit derivations and the implied inverses of reversible rules.
  The shortest chain wins and ties go to declaration order. Paths are
  searched in three passes, each composed hop by hop with Then:

    multiplicative edges only -> use it
    affine edges only         -> use it
    any edges                 -> use it (millicelsius -> celsius -> kelvin)
    nothing                   -> MissingConversionRuleError

  A chain mixing offsets and scales is exact at exponent 1. It is the
  callers raising or multiplying the result that must refuse offsets,
  which Resolve does with InvalidAffineCompositionError.

  Results are memoized per base unit pair once the registry is sealed.

EXAMPLE:
  dyne -> newton, force = L·M·T^-2
    L: cm -> m   0.01^1
    M: g  -> kg  0.001^1
    T: s  -> s   1^-2
    scale = 1e-5
*/
package algebra

import "fmt"

type resolved struct {
	factor ConversionFactor
	err    error
}

// Resolve returns the factor converting values in from into values in to.
// The first call seals the registry.
func (r *Registry) Resolve(from, to Unit) (ConversionFactor, error) {
	if !from.dim.Equal(to.dim) {
		return ConversionFactor{}, &IncompatibleDimensionsError{From: from.dim, To: to.dim}
	}
	if from.dim.IsDimensionless() || SameSystem(from.sys, to.sys) {
		return Identity(), nil
	}
	r.Seal()

	if len(from.dim.terms) == 1 {
		t := from.dim.terms[0]
		f, a, b, err := r.resolveTerm(from.sys, to.sys, t.Dim)
		if err != nil {
			return ConversionFactor{}, err
		}
		if f.IsAffine() && !t.Exp.IsOne() {
			return ConversionFactor{}, &InvalidAffineCompositionError{
				From: a, To: b, Exponent: t.Exp,
				Reason: "offset conversion raised to a non-unit power",
			}
		}
		return f.Pow(t.Exp)
	}

	total := Identity()
	for _, t := range from.dim.terms {
		f, a, b, err := r.resolveTerm(from.sys, to.sys, t.Dim)
		if err != nil {
			return ConversionFactor{}, err
		}
		if f.IsAffine() {
			return ConversionFactor{}, &InvalidAffineCompositionError{
				From: a, To: b, Exponent: t.Exp,
				Reason: "offset conversion inside a composed dimension",
			}
		}
		p, err := f.Pow(t.Exp)
		if err != nil {
			return ConversionFactor{}, err
		}
		total = total.Times(p)
	}
	return total, nil
}

// ResolveBase returns the factor between two base units of the same dimension.
func (r *Registry) ResolveBase(from, to BaseUnitID) (ConversionFactor, error) {
	r.Seal()
	a, err := r.BaseUnit(from)
	if err != nil {
		return ConversionFactor{}, err
	}
	b, err := r.BaseUnit(to)
	if err != nil {
		return ConversionFactor{}, err
	}
	if a.Dimension != b.Dimension {
		return ConversionFactor{}, &IncompatibleDimensionsError{From: Base(a.Dimension), To: Base(b.Dimension)}
	}
	return r.resolveBase(a.Dimension, from, to)
}

func (r *Registry) resolveTerm(from, to System, dim BaseDimension) (ConversionFactor, BaseUnitID, BaseUnitID, error) {
	a, ok := from.UnitFor(dim)
	if !ok {
		return ConversionFactor{}, 0, 0, fmt.Errorf("%w: %s in system %s", ErrUnboundDimension, dim, from)
	}
	b, ok := to.UnitFor(dim)
	if !ok {
		return ConversionFactor{}, 0, 0, fmt.Errorf("%w: %s in system %s", ErrUnboundDimension, dim, to)
	}
	f, err := r.resolveBase(dim, a, b)
	return f, a, b, err
}

func (r *Registry) resolveBase(dim BaseDimension, from, to BaseUnitID) (ConversionFactor, error) {
	if from == to {
		return Identity(), nil
	}
	key := rulePair{from, to}
	if v, ok := r.memo.Load(key); ok {
		res := v.(resolved)
		return res.factor, res.err
	}
	f, err := r.search(dim, from, to)
	r.memo.Store(key, resolved{factor: f, err: err})
	return f, err
}

func (r *Registry) search(dim BaseDimension, from, to BaseUnitID) (ConversionFactor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	multiplicative := view{g: r.graph, keep: func(e edge) bool { return !e.affine() }}
	if path, ok := multiplicative.shortestPath(from, to); ok {
		return composePath(path), nil
	}
	affine := view{g: r.graph, keep: edge.affine}
	if path, ok := affine.shortestPath(from, to); ok {
		return composePath(path), nil
	}
	if path, ok := (view{g: r.graph}).shortestPath(from, to); ok {
		return composePath(path), nil
	}
	return ConversionFactor{}, &MissingConversionRuleError{Dimension: dim, From: from, To: to}
}
