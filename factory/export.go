package factory

import (
	"sort"

	"github.com/warp/dimensional/algebra"
)

// ToDocument exports the declarations of r as a document. Applying the
// result to a fresh registry reproduces r's catalog.
func ToDocument(r *algebra.Registry, name string) Document {
	doc := Document{Name: name}

	for _, d := range r.Dimensions() {
		if d.Dimension.IsBuiltin() {
			continue
		}
		doc.Dimensions = append(doc.Dimensions, DimensionJSON{
			Ordinal: int(d.Dimension),
			Name:    d.Name,
			Symbol:  d.Symbol,
		})
	}

	units := r.BaseUnits()
	unitName := make(map[algebra.BaseUnitID]string, len(units))
	for _, u := range units {
		unitName[u.ID] = u.Name
	}
	for _, u := range units {
		uj := UnitJSON{ID: int(u.ID), Name: u.Name, Symbol: u.Symbol}
		if u.IsScaled() {
			uj.Parent = unitName[u.Parent]
			uj.Scale = u.Scale.String()
		} else {
			uj.Dimension = u.Dimension.String()
			if d, ok := dimensionName(r, u.Dimension); ok {
				uj.Dimension = d
			}
		}
		doc.Units = append(doc.Units, uj)
	}

	for _, s := range r.Systems() {
		sj := SystemJSON{Tag: string(s.Tag())}
		for _, b := range s.Bindings() {
			sj.Units = append(sj.Units, unitName[b.Unit])
		}
		doc.Systems = append(doc.Systems, sj)
	}

	derived := r.DerivedDimensions()
	names := make([]string, 0, len(derived))
	for n := range derived {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		doc.Derived = append(doc.Derived, DerivedJSON{Name: n, Terms: terms(r, derived[n])})
	}

	for _, rule := range r.Rules() {
		rev := rule.Reversible
		rj := RuleJSON{
			From:       unitName[rule.From],
			To:         unitName[rule.To],
			Scale:      rule.Scale.String(),
			Reversible: &rev,
		}
		if rule.IsAffine() {
			rj.Offset = rule.Offset.String()
		}
		doc.Rules = append(doc.Rules, rj)
	}

	for _, n := range r.NamedUnits() {
		u, _ := r.NamedUnit(n)
		nj := NamedJSON{Name: n, Terms: terms(r, u.Dimension())}
		if sys := u.System(); sys.IsHomogeneous() {
			nj.System = string(sys.Tag())
		} else {
			for _, b := range sys.Bindings() {
				nj.Units = append(nj.Units, unitName[b.Unit])
			}
		}
		doc.Named = append(doc.Named, nj)
	}
	return doc
}

func terms(r *algebra.Registry, v algebra.DimensionVector) []TermJSON {
	out := make([]TermJSON, 0, v.Len())
	for _, t := range v.Terms() {
		name := t.Dim.String()
		if n, ok := dimensionName(r, t.Dim); ok {
			name = n
		}
		out = append(out, TermJSON{Dimension: name, Exponent: t.Exp.String()})
	}
	return out
}

func dimensionName(r *algebra.Registry, d algebra.BaseDimension) (string, bool) {
	for _, info := range r.Dimensions() {
		if info.Dimension == d {
			return info.Name, true
		}
	}
	return "", false
}
