/*
registry.go - Declared dimensions, units, systems and conversion rules

PURPOSE:
  The Registry is the single shared mutable structure of the algebra. It
  is populated once during initialization, then sealed, then only read.

LIFECYCLE:
  1. Catalog packages declare into Default from init(), or a program
     builds its own Registry and applies catalog documents at startup
  2. The first Resolve seals the registry (or the program calls Seal)
  3. Declarations after sealing fail with ErrRegistrySealed

  Re-declaring identical data is idempotent, so two catalog packages can
  both declare the SI base units. Conflicting data for the same key fails
  with DuplicateRegistrationError.

USAGE:
  r := algebra.NewRegistry()
  m, _ := r.DeclareRootUnit(1, algebra.Length, "meter", "m")
  cm, _ := r.DeclareScaledUnit(2, m.ID, decimal.RequireFromString("0.01"), "centimeter", "cm")
  si, _ := r.DeclareSystem("si", m.ID)
  cgs, _ := r.DeclareSystem("cgs", cm.ID)

SEE ALSO:
  - resolver.go: Read side of the registry
  - metric/register.go: Built-in SI and CGS declarations
*/
package algebra

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

type rulePair struct {
	from, to BaseUnitID
}

// Registry holds catalog declarations. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	sealed atomic.Bool

	dimensions  map[BaseDimension]DimensionInfo
	units       map[BaseUnitID]BaseUnit
	unitOrder   []BaseUnitID
	systems     map[SystemTag]System
	systemOrder []SystemTag
	derived     map[string]DimensionVector
	named       map[string]Unit
	rules       map[rulePair]ConversionRule
	ruleOrder   []rulePair

	graph *conversionGraph
	seq   int

	memo sync.Map // rulePair -> resolved
}

// NewRegistry returns a registry holding the built-in base dimensions.
func NewRegistry() *Registry {
	r := &Registry{
		dimensions: make(map[BaseDimension]DimensionInfo),
		units:      make(map[BaseUnitID]BaseUnit),
		systems:    make(map[SystemTag]System),
		derived:    make(map[string]DimensionVector),
		named:      make(map[string]Unit),
		rules:      make(map[rulePair]ConversionRule),
		graph:      newConversionGraph(),
	}
	for _, d := range builtinDimensions {
		r.dimensions[d.Dimension] = d
	}
	return r
}

// Default is the process-wide registry the built-in catalogs declare into.
var Default = NewRegistry()

// Must panics if err is non-nil. Catalog init functions use it.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Seal stops accepting declarations. It is idempotent.
func (r *Registry) Seal() {
	if r.sealed.Load() {
		return
	}
	r.mu.Lock()
	r.sealed.Store(true)
	r.mu.Unlock()
}

func (r *Registry) Sealed() bool { return r.sealed.Load() }

// =============================================================================
// DECLARATIONS
// =============================================================================

// DeclareBaseDimension adds a primitive dimension with an unused ordinal.
func (r *Registry) DeclareBaseDimension(d BaseDimension, name, symbol string) error {
	if d <= 0 || name == "" {
		return fmt.Errorf("%w: dimension %d needs a positive ordinal and a name", ErrInvalidRule, d)
	}
	info := DimensionInfo{Dimension: d, Name: name, Symbol: symbol}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return ErrRegistrySealed
	}
	if existing, ok := r.dimensions[d]; ok {
		if existing == info {
			return nil
		}
		return &DuplicateRegistrationError{Kind: "dimension", Key: fmt.Sprintf("%d", d)}
	}
	for _, existing := range r.dimensions {
		if existing.Name == name {
			return &DuplicateRegistrationError{Kind: "dimension", Key: name}
		}
	}
	r.dimensions[d] = info
	return nil
}

// DeclareBaseUnit adds a root unit (Parent == 0) or a scaled derivation of
// an already declared unit of the same dimension.
func (r *Registry) DeclareBaseUnit(u BaseUnit) error {
	if u.ID <= 0 || u.Name == "" {
		return fmt.Errorf("%w: unit %d needs a positive id and a name", ErrInvalidRule, u.ID)
	}
	if !u.IsScaled() {
		u.Scale = one
	} else if !u.Scale.IsPositive() {
		return fmt.Errorf("%w: unit %s has non-positive scale %s", ErrInvalidRule, u.Name, u.Scale)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return ErrRegistrySealed
	}
	if _, ok := r.dimensions[u.Dimension]; !ok {
		return fmt.Errorf("%w: %d (unit %s)", ErrUnknownDimension, u.Dimension, u.Name)
	}
	if existing, ok := r.units[u.ID]; ok {
		if existing.same(u) {
			return nil
		}
		return &DuplicateRegistrationError{Kind: "unit", Key: fmt.Sprintf("%d (%s)", u.ID, u.Name)}
	}
	if u.IsScaled() {
		if u.Parent == u.ID {
			return fmt.Errorf("%w: unit %s derives from itself", ErrInvalidRule, u.Name)
		}
		parent, ok := r.units[u.Parent]
		if !ok {
			return fmt.Errorf("%w: parent %d of %s", ErrUnknownBaseUnit, u.Parent, u.Name)
		}
		if parent.Dimension != u.Dimension {
			return fmt.Errorf("%w: %s (%s) cannot derive from %s (%s)",
				ErrInvalidRule, u.Name, u.Dimension, parent.Name, parent.Dimension)
		}
	}

	r.units[u.ID] = u
	r.unitOrder = append(r.unitOrder, u.ID)
	if u.IsScaled() {
		r.seq++
		r.graph.addDerivation(u, r.seq)
	}
	return nil
}

// DeclareRootUnit declares an unscaled unit of dim.
func (r *Registry) DeclareRootUnit(id BaseUnitID, dim BaseDimension, name, symbol string) (BaseUnit, error) {
	u := BaseUnit{ID: id, Dimension: dim, Name: name, Symbol: symbol, Scale: one}
	return u, r.DeclareBaseUnit(u)
}

// DeclareScaledUnit declares 1 unit = scale × parent. The dimension is the parent's.
func (r *Registry) DeclareScaledUnit(id, parent BaseUnitID, scale decimal.Decimal, name, symbol string) (BaseUnit, error) {
	p, err := r.BaseUnit(parent)
	if err != nil {
		return BaseUnit{}, err
	}
	u := BaseUnit{ID: id, Dimension: p.Dimension, Name: name, Symbol: symbol, Parent: parent, Scale: scale}
	return u, r.DeclareBaseUnit(u)
}

// DeclareSystem declares a homogeneous system binding one unit per dimension.
func (r *Registry) DeclareSystem(tag SystemTag, ids ...BaseUnitID) (System, error) {
	if tag == "" {
		return System{}, fmt.Errorf("%w: empty system tag", ErrInvalidRule)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return System{}, ErrRegistrySealed
	}
	bindings := make([]Binding, 0, len(ids))
	seen := make(map[BaseDimension]BaseUnitID, len(ids))
	for _, id := range ids {
		u, ok := r.units[id]
		if !ok {
			return System{}, fmt.Errorf("%w: %d in system %s", ErrUnknownBaseUnit, id, tag)
		}
		if prev, dup := seen[u.Dimension]; dup {
			return System{}, &ConflictingBaseUnitError{Dimension: u.Dimension, Existing: prev, Conflicting: id}
		}
		seen[u.Dimension] = id
		bindings = append(bindings, Binding{Dimension: u.Dimension, Unit: id})
	}
	sys := newHomogeneous(tag, bindings)

	if existing, ok := r.systems[tag]; ok {
		if bindingsEqual(existing.bindings, sys.bindings) {
			return existing, nil
		}
		return System{}, &DuplicateRegistrationError{Kind: "system", Key: string(tag)}
	}
	r.systems[tag] = sys
	r.systemOrder = append(r.systemOrder, tag)
	return sys, nil
}

// DeclareDerivedDimension names a composed vector, e.g. "force".
func (r *Registry) DeclareDerivedDimension(name string, v DimensionVector) error {
	if name == "" {
		return fmt.Errorf("%w: empty derived dimension name", ErrInvalidRule)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return ErrRegistrySealed
	}
	for _, d := range v.Dimensions() {
		if _, ok := r.dimensions[d]; !ok {
			return fmt.Errorf("%w: %d in derived dimension %s", ErrUnknownDimension, d, name)
		}
	}
	if existing, ok := r.derived[name]; ok {
		if existing.Equal(v) {
			return nil
		}
		return &DuplicateRegistrationError{Kind: "derived", Key: name}
	}
	r.derived[name] = v
	return nil
}

// DeclareRule adds a directed conversion between two base units of the
// same dimension.
func (r *Registry) DeclareRule(rule ConversionRule) error {
	if rule.From == rule.To {
		return fmt.Errorf("%w: rule from unit %d to itself", ErrInvalidRule, rule.From)
	}
	if rule.Scale.IsZero() {
		return fmt.Errorf("%w: rule %d -> %d has zero scale", ErrInvalidRule, rule.From, rule.To)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return ErrRegistrySealed
	}
	from, ok := r.units[rule.From]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBaseUnit, rule.From)
	}
	to, ok := r.units[rule.To]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBaseUnit, rule.To)
	}
	if from.Dimension != to.Dimension {
		return fmt.Errorf("%w: rule %s -> %s crosses dimensions", ErrInvalidRule, from.Name, to.Name)
	}

	key := rulePair{rule.From, rule.To}
	if existing, ok := r.rules[key]; ok {
		if existing.same(rule) {
			return nil
		}
		return &DuplicateRegistrationError{Kind: "rule", Key: fmt.Sprintf("%s -> %s", from.Name, to.Name)}
	}
	r.rules[key] = rule
	r.ruleOrder = append(r.ruleOrder, key)
	r.seq++
	r.graph.addRule(rule, r.seq)
	return nil
}

// DeclareNamedUnit lets collaborators address a composed unit by name.
func (r *Registry) DeclareNamedUnit(name string, u Unit) error {
	if name == "" {
		return fmt.Errorf("%w: empty unit name", ErrInvalidRule)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return ErrRegistrySealed
	}
	if existing, ok := r.named[name]; ok {
		if existing.Equal(u) {
			return nil
		}
		return &DuplicateRegistrationError{Kind: "named", Key: name}
	}
	r.named[name] = u
	return nil
}

// =============================================================================
// LOOKUPS
// =============================================================================

func (r *Registry) System(tag SystemTag) (System, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.systems[tag]
	if !ok {
		return System{}, fmt.Errorf("%w: %s", ErrUnknownSystem, tag)
	}
	return s, nil
}

// MustSystem is System for catalog constants and tests. It panics on error.
func (r *Registry) MustSystem(tag SystemTag) System {
	s, err := r.System(tag)
	if err != nil {
		panic(err)
	}
	return s
}

// Unit binds v to the system declared as tag.
func (r *Registry) Unit(tag SystemTag, v DimensionVector) (Unit, error) {
	s, err := r.System(tag)
	if err != nil {
		return Unit{}, err
	}
	return NewUnit(v, s)
}

func (r *Registry) BaseUnit(id BaseUnitID) (BaseUnit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.units[id]
	if !ok {
		return BaseUnit{}, fmt.Errorf("%w: %d", ErrUnknownBaseUnit, id)
	}
	return u, nil
}

// BaseUnitByName finds a base unit by name or symbol.
func (r *Registry) BaseUnitByName(name string) (BaseUnit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.unitOrder {
		if u := r.units[id]; u.Name == name || u.Symbol == name {
			return u, true
		}
	}
	return BaseUnit{}, false
}

// BaseUnits returns every declared base unit in declaration order.
func (r *Registry) BaseUnits() []BaseUnit {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]BaseUnit, len(r.unitOrder))
	for i, id := range r.unitOrder {
		out[i] = r.units[id]
	}
	return out
}

// Systems returns every declared homogeneous system in declaration order.
func (r *Registry) Systems() []System {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]System, len(r.systemOrder))
	for i, tag := range r.systemOrder {
		out[i] = r.systems[tag]
	}
	return out
}

// Rules returns every declared rule in declaration order.
func (r *Registry) Rules() []ConversionRule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ConversionRule, len(r.ruleOrder))
	for i, key := range r.ruleOrder {
		out[i] = r.rules[key]
	}
	return out
}

// Dimensions returns every declared base dimension in ordinal order.
func (r *Registry) Dimensions() []DimensionInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]DimensionInfo, 0, len(r.dimensions))
	for _, d := range r.dimensions {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dimension < out[j].Dimension })
	return out
}

// LookupDimension finds a base dimension by name or symbol.
func (r *Registry) LookupDimension(name string) (DimensionInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.dimensions {
		if d.Name == name || d.Symbol == name {
			return d, true
		}
	}
	return DimensionInfo{}, false
}

func (r *Registry) DerivedDimension(name string) (DimensionVector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.derived[name]
	return v, ok
}

// DerivedDimensions returns a copy of the named derived dimensions.
func (r *Registry) DerivedDimensions() map[string]DimensionVector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]DimensionVector, len(r.derived))
	for k, v := range r.derived {
		out[k] = v
	}
	return out
}

func (r *Registry) NamedUnit(name string) (Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.named[name]
	return u, ok
}

// NamedUnits returns the declared unit names, sorted.
func (r *Registry) NamedUnits() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.named))
	for name := range r.named {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func bindingsEqual(a, b []Binding) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
