/*
Package factory converts catalog documents (JSON or YAML) into registry
declarations.

PURPOSE:
  The built-in catalogs are Go code. Everything else (a lab's custom
  units, a shipping company's gallons) comes as a document that is stored,
  loaded at startup and applied to the registry before it is sealed.

DOCUMENT SCHEMA (YAML shown, JSON uses the same keys):
  name: brewing
  dimensions:
    - {ordinal: 100, name: bitterness, symbol: B}
  units:
    - {id: 1000, name: ibu, symbol: IBU, dimension: bitterness}
    - {id: 1001, name: decibu, symbol: dIBU, parent: ibu, scale: "0.1"}
  systems:
    - {tag: brew, units: [meter, kilogram, second, ibu]}
  derived:
    - name: bitterness_rate
      terms: [{dimension: bitterness, exponent: "1"}, {dimension: time, exponent: "-1"}]
  rules:
    - {from: celsius, to: kelvin, scale: "1", offset: "273.15", reversible: true}
  named:
    - {name: ibu_per_second, dimension: bitterness_rate, system: brew}

ORDERING:
  A scaled unit needs its parent declared first. Units are ordered by a
  stable topological sort of their parent links, so documents can list
  them in any order. A parent cycle is rejected.

REFERENCES:
  Dimensions are referenced by name or symbol, units by name or symbol.
  References may point into the registry (e.g. "meter" from the metric
  catalog) or into the same document.

USAGE:
  loader := factory.NewLoader(registry, logger)
  doc, err := loader.LoadFile("catalogs/brewing.yaml")

SEE ALSO:
  - algebra/registry.go: Declarations applied here
  - store/sqlite:        Stores documents
*/
package factory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gopkg.in/yaml.v3"

	"github.com/warp/dimensional/algebra"
)

// Document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// =============================================================================
// DOCUMENT SCHEMA TYPES
// =============================================================================

// Document is a catalog of declarations.
type Document struct {
	Name       string          `json:"name" yaml:"name"`
	Dimensions []DimensionJSON `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	Units      []UnitJSON      `json:"units,omitempty" yaml:"units,omitempty"`
	Systems    []SystemJSON    `json:"systems,omitempty" yaml:"systems,omitempty"`
	Derived    []DerivedJSON   `json:"derived,omitempty" yaml:"derived,omitempty"`
	Rules      []RuleJSON      `json:"rules,omitempty" yaml:"rules,omitempty"`
	Named      []NamedJSON     `json:"named,omitempty" yaml:"named,omitempty"`
}

type DimensionJSON struct {
	Ordinal int    `json:"ordinal" yaml:"ordinal"`
	Name    string `json:"name" yaml:"name"`
	Symbol  string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
}

// UnitJSON is a root unit (dimension set) or a scaled unit (parent and scale set).
type UnitJSON struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Symbol    string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Dimension string `json:"dimension,omitempty" yaml:"dimension,omitempty"`
	Parent    string `json:"parent,omitempty" yaml:"parent,omitempty"`
	Scale     string `json:"scale,omitempty" yaml:"scale,omitempty"` // exact decimal
}

type SystemJSON struct {
	Tag   string   `json:"tag" yaml:"tag"`
	Units []string `json:"units" yaml:"units"`
}

type TermJSON struct {
	Dimension string `json:"dimension" yaml:"dimension"`
	Exponent  string `json:"exponent" yaml:"exponent"` // "2", "-1", "1/2"
}

type DerivedJSON struct {
	Name  string     `json:"name" yaml:"name"`
	Terms []TermJSON `json:"terms" yaml:"terms"`
}

// RuleJSON omits Reversible to get the default: multiplicative rules are
// reversible, affine rules are not.
type RuleJSON struct {
	From       string `json:"from" yaml:"from"`
	To         string `json:"to" yaml:"to"`
	Scale      string `json:"scale" yaml:"scale"`
	Offset     string `json:"offset,omitempty" yaml:"offset,omitempty"`
	Reversible *bool  `json:"reversible,omitempty" yaml:"reversible,omitempty"`
}

// NamedJSON names a unit. The dimension is a derived dimension name, a base
// dimension name, or explicit terms. The system is a declared tag, or a
// list of base units forming a heterogeneous system.
type NamedJSON struct {
	Name      string     `json:"name" yaml:"name"`
	Dimension string     `json:"dimension,omitempty" yaml:"dimension,omitempty"`
	Terms     []TermJSON `json:"terms,omitempty" yaml:"terms,omitempty"`
	System    string     `json:"system,omitempty" yaml:"system,omitempty"`
	Units     []string   `json:"units,omitempty" yaml:"units,omitempty"`
}

// =============================================================================
// PARSING
// =============================================================================

// Parse decodes a document in the given format.
func Parse(data []byte, format string) (Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return Document{}, fmt.Errorf("failed to parse catalog JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Document{}, fmt.Errorf("failed to parse catalog YAML: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("unknown catalog format: %q", format)
	}
	return doc, nil
}

// Marshal encodes a document in the given format.
func Marshal(doc Document, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unknown catalog format: %q", format)
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("cannot infer catalog format of %s", path)
	}
}

// =============================================================================
// LOADER
// =============================================================================

// Loader applies documents to a registry.
type Loader struct {
	Registry *algebra.Registry
	Logger   *slog.Logger
}

func NewLoader(r *algebra.Registry, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{Registry: r, Logger: logger}
}

// LoadFile reads, parses and applies a document.
func (l *Loader) LoadFile(path string) (Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := l.Apply(doc); err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadRecord parses and applies a stored document.
func (l *Loader) LoadRecord(rec algebra.CatalogRecord) (Document, error) {
	doc, err := Parse(rec.Body, rec.Format)
	if err != nil {
		return Document{}, fmt.Errorf("catalog %s: %w", rec.Name, err)
	}
	if err := l.Apply(doc); err != nil {
		return Document{}, fmt.Errorf("catalog %s v%d: %w", rec.Name, rec.Version, err)
	}
	return doc, nil
}

// LoadStore applies every stored catalog in creation order and returns how
// many were applied.
func (l *Loader) LoadStore(ctx context.Context, store algebra.CatalogStore) (int, error) {
	recs, err := store.ListCatalogs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list catalogs: %w", err)
	}
	for _, rec := range recs {
		if _, err := l.LoadRecord(rec); err != nil {
			return 0, err
		}
	}
	return len(recs), nil
}

// Apply declares every entry of doc. Declarations run in dependency order:
// dimensions, units, systems, derived dimensions, rules, named units.
func (l *Loader) Apply(doc Document) error {
	r := l.Registry
	b := algebra.NewBatch(r)

	for _, d := range doc.Dimensions {
		b.Dimension(algebra.BaseDimension(d.Ordinal), d.Name, d.Symbol)
	}
	if err := b.Err(); err != nil {
		return err
	}

	units, err := orderUnits(doc.Units)
	if err != nil {
		return err
	}
	for _, u := range units {
		if err := l.declareUnit(u); err != nil {
			return fmt.Errorf("unit %s: %w", u.Name, err)
		}
	}

	for _, s := range doc.Systems {
		ids := make([]algebra.BaseUnitID, len(s.Units))
		for i, name := range s.Units {
			bu, err := l.baseUnit(name)
			if err != nil {
				return fmt.Errorf("system %s: %w", s.Tag, err)
			}
			ids[i] = bu.ID
		}
		b.System(algebra.SystemTag(s.Tag), ids...)
	}

	for _, d := range doc.Derived {
		v, err := l.vector(d.Terms)
		if err != nil {
			return fmt.Errorf("derived dimension %s: %w", d.Name, err)
		}
		b.Derived(d.Name, v)
	}
	if err := b.Err(); err != nil {
		return err
	}

	for _, rj := range doc.Rules {
		rule, err := l.rule(rj)
		if err != nil {
			return fmt.Errorf("rule %s -> %s: %w", rj.From, rj.To, err)
		}
		if err := r.DeclareRule(rule); err != nil {
			return fmt.Errorf("rule %s -> %s: %w", rj.From, rj.To, err)
		}
	}

	for _, nj := range doc.Named {
		u, err := l.namedUnit(nj)
		if err != nil {
			return fmt.Errorf("named unit %s: %w", nj.Name, err)
		}
		b.NamedUnit(nj.Name, u)
	}
	if err := b.Err(); err != nil {
		return err
	}

	l.Logger.Info("catalog applied",
		"catalog", doc.Name,
		"dimensions", len(doc.Dimensions),
		"units", len(doc.Units),
		"systems", len(doc.Systems),
		"rules", len(doc.Rules),
		"named", len(doc.Named))
	return nil
}

// orderUnits sorts units so that every parent declared in the document
// comes before its children. Ties keep ascending ID order.
func orderUnits(units []UnitJSON) ([]UnitJSON, error) {
	byID := make(map[int64]UnitJSON, len(units))
	byName := make(map[string]int64, len(units))
	g := simple.NewDirectedGraph()
	for _, u := range units {
		id := int64(u.ID)
		if id <= 0 {
			return nil, fmt.Errorf("unit %s: id must be positive", u.Name)
		}
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("unit %s: id %d used twice in document", u.Name, id)
		}
		byID[id] = u
		byName[u.Name] = id
		if u.Symbol != "" {
			byName[u.Symbol] = id
		}
		g.AddNode(simple.Node(id))
	}
	for _, u := range units {
		if u.Parent == "" {
			continue
		}
		if pid, ok := byName[u.Parent]; ok {
			if pid == int64(u.ID) {
				return nil, fmt.Errorf("unit %s: derives from itself", u.Name)
			}
			g.SetEdge(g.NewEdge(simple.Node(pid), simple.Node(int64(u.ID))))
		}
	}

	sorted, err := topo.SortStabilized(g, func(nodes []graph.Node) {
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
	})
	if err != nil {
		return nil, fmt.Errorf("unit derivations form a cycle: %w", err)
	}
	out := make([]UnitJSON, len(sorted))
	for i, n := range sorted {
		out[i] = byID[n.ID()]
	}
	return out, nil
}

func (l *Loader) declareUnit(u UnitJSON) error {
	id := algebra.BaseUnitID(u.ID)
	if u.Parent == "" {
		d, ok := l.Registry.LookupDimension(u.Dimension)
		if !ok {
			return fmt.Errorf("%w: %q", algebra.ErrUnknownDimension, u.Dimension)
		}
		_, err := l.Registry.DeclareRootUnit(id, d.Dimension, u.Name, u.Symbol)
		return err
	}
	parent, err := l.baseUnit(u.Parent)
	if err != nil {
		return err
	}
	if u.Dimension != "" {
		if d, ok := l.Registry.LookupDimension(u.Dimension); !ok || d.Dimension != parent.Dimension {
			return fmt.Errorf("%w: dimension %q does not match parent %s", algebra.ErrInvalidRule, u.Dimension, parent.Name)
		}
	}
	scale, err := decimal.NewFromString(u.Scale)
	if err != nil {
		return fmt.Errorf("%w: scale %q: %v", algebra.ErrInvalidRule, u.Scale, err)
	}
	_, err = l.Registry.DeclareScaledUnit(id, parent.ID, scale, u.Name, u.Symbol)
	return err
}

func (l *Loader) baseUnit(name string) (algebra.BaseUnit, error) {
	u, ok := l.Registry.BaseUnitByName(name)
	if !ok {
		return algebra.BaseUnit{}, fmt.Errorf("%w: %q", algebra.ErrUnknownBaseUnit, name)
	}
	return u, nil
}

func (l *Loader) vector(terms []TermJSON) (algebra.DimensionVector, error) {
	out := make([]algebra.Term, 0, len(terms))
	for _, t := range terms {
		d, ok := l.Registry.LookupDimension(t.Dimension)
		if !ok {
			return algebra.DimensionVector{}, fmt.Errorf("%w: %q", algebra.ErrUnknownDimension, t.Dimension)
		}
		exp := algebra.Int(1)
		if t.Exponent != "" {
			var err error
			if exp, err = algebra.ParseExponent(t.Exponent); err != nil {
				return algebra.DimensionVector{}, err
			}
		}
		out = append(out, algebra.Term{Dim: d.Dimension, Exp: exp})
	}
	return algebra.CheckedDerive(out...)
}

func (l *Loader) rule(rj RuleJSON) (algebra.ConversionRule, error) {
	from, err := l.baseUnit(rj.From)
	if err != nil {
		return algebra.ConversionRule{}, err
	}
	to, err := l.baseUnit(rj.To)
	if err != nil {
		return algebra.ConversionRule{}, err
	}
	scale, err := decimal.NewFromString(rj.Scale)
	if err != nil {
		return algebra.ConversionRule{}, fmt.Errorf("%w: scale %q: %v", algebra.ErrInvalidRule, rj.Scale, err)
	}
	offset := decimal.Zero
	if rj.Offset != "" {
		if offset, err = decimal.NewFromString(rj.Offset); err != nil {
			return algebra.ConversionRule{}, fmt.Errorf("%w: offset %q: %v", algebra.ErrInvalidRule, rj.Offset, err)
		}
	}
	reversible := offset.IsZero()
	if rj.Reversible != nil {
		reversible = *rj.Reversible
	}
	return algebra.ConversionRule{From: from.ID, To: to.ID, Scale: scale, Offset: offset, Reversible: reversible}, nil
}

func (l *Loader) namedUnit(nj NamedJSON) (algebra.Unit, error) {
	var v algebra.DimensionVector
	switch {
	case nj.Dimension != "":
		if dv, ok := l.Registry.DerivedDimension(nj.Dimension); ok {
			v = dv
		} else if d, ok := l.Registry.LookupDimension(nj.Dimension); ok {
			v = algebra.Base(d.Dimension)
		} else {
			return algebra.Unit{}, fmt.Errorf("%w: %q", algebra.ErrUnknownDimension, nj.Dimension)
		}
	default:
		var err error
		if v, err = l.vector(nj.Terms); err != nil {
			return algebra.Unit{}, err
		}
	}

	if nj.System != "" {
		return l.Registry.Unit(algebra.SystemTag(nj.System), v)
	}
	units := make([]algebra.BaseUnit, len(nj.Units))
	for i, name := range nj.Units {
		u, err := l.baseUnit(name)
		if err != nil {
			return algebra.Unit{}, err
		}
		units[i] = u
	}
	sys, err := algebra.Heterogeneous(units...)
	if err != nil {
		return algebra.Unit{}, err
	}
	return algebra.NewUnit(v, sys)
}
