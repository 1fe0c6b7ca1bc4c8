package api

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/warp/dimensional/algebra"
)

var errBadRequest = errors.New("bad request")

// ParseUnit reads a unit expression such as "newton", "kilogram*meter/second^2"
// or "meter^(1/2)". Every name is a named unit, or a base unit's name or
// symbol. Each "/" divides by the factor that follows it only.
func ParseUnit(r *algebra.Registry, expr string) (algebra.Unit, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || expr == "1" {
		return algebra.Scalar, nil
	}

	result := algebra.Scalar
	divide := false
	rest := expr
	for {
		name, exp, tail, err := nextFactor(rest)
		if err != nil {
			return algebra.Unit{}, fmt.Errorf("%w: %s in %q", errBadRequest, err, expr)
		}
		u, err := lookupUnit(r, name)
		if err != nil {
			return algebra.Unit{}, err
		}
		if u, err = u.CheckedPow(exp); err != nil {
			return algebra.Unit{}, err
		}
		if divide {
			result, err = result.Div(u)
		} else {
			result, err = result.Mul(u)
		}
		if err != nil {
			return algebra.Unit{}, err
		}

		tail = strings.TrimSpace(tail)
		if tail == "" {
			return result, nil
		}
		switch tail[0] {
		case '*':
			divide = false
		case '/':
			divide = true
		default:
			return algebra.Unit{}, fmt.Errorf("%w: unexpected %q in %q", errBadRequest, tail[:1], expr)
		}
		rest = tail[1:]
	}
}

// nextFactor splits "name[^exp]" off the front of s.
func nextFactor(s string) (string, algebra.Exponent, string, error) {
	s = strings.TrimSpace(s)
	end := strings.IndexAny(s, "*/^ ")
	if end < 0 {
		end = len(s)
	}
	name := s[:end]
	if name == "" {
		return "", algebra.Exponent{}, "", errors.New("missing unit name")
	}
	tail := strings.TrimLeftFunc(s[end:], unicode.IsSpace)
	if !strings.HasPrefix(tail, "^") {
		return name, algebra.Int(1), tail, nil
	}

	tail = strings.TrimSpace(tail[1:])
	var raw string
	if strings.HasPrefix(tail, "(") {
		closing := strings.IndexByte(tail, ')')
		if closing < 0 {
			return "", algebra.Exponent{}, "", errors.New("unclosed exponent")
		}
		raw, tail = tail[1:closing], tail[closing+1:]
	} else {
		end := strings.IndexAny(tail, "*/ ")
		if end < 0 {
			end = len(tail)
		}
		raw, tail = tail[:end], tail[end:]
	}
	exp, err := algebra.ParseExponent(strings.TrimSpace(raw))
	if err != nil {
		return "", algebra.Exponent{}, "", err
	}
	return name, exp, tail, nil
}

func lookupUnit(r *algebra.Registry, name string) (algebra.Unit, error) {
	if u, ok := r.NamedUnit(name); ok {
		return u, nil
	}
	if bu, ok := r.BaseUnitByName(name); ok {
		return algebra.UnitOf(bu), nil
	}
	return algebra.Unit{}, fmt.Errorf("%w: %q", algebra.ErrUnknownBaseUnit, name)
}

// statusFor maps an error to its HTTP status and a short message.
func statusFor(err error) (int, string) {
	switch {
	case err == nil:
		return 200, ""
	case algebra.IsNotFound(err):
		return 404, "Not found"
	case errors.Is(err, algebra.ErrMissingConversionRule):
		return 422, "No conversion rule"
	case errors.Is(err, algebra.ErrIncompatibleDimensions),
		errors.Is(err, algebra.ErrUnitMismatch),
		errors.Is(err, algebra.ErrInvalidAffineComposition),
		errors.Is(err, algebra.ErrConflictingBaseUnit),
		errors.Is(err, algebra.ErrUnboundDimension),
		errors.Is(err, algebra.ErrInvalidExponent),
		errors.Is(err, algebra.ErrNonIntegralDimension),
		errors.Is(err, errBadRequest):
		return 400, "Invalid request"
	default:
		return 500, "Internal error"
	}
}

// dimensionNames maps every declared dimension to its name, so user
// dimensions render as declared rather than as ordinals.
func dimensionNames(r *algebra.Registry) map[algebra.BaseDimension]string {
	names := make(map[algebra.BaseDimension]string)
	for _, d := range r.Dimensions() {
		names[d.Dimension] = d.Name
	}
	return names
}

func termsDTO(v algebra.DimensionVector, names map[algebra.BaseDimension]string) []TermDTO {
	out := make([]TermDTO, 0, v.Len())
	for _, t := range v.Terms() {
		name, ok := names[t.Dim]
		if !ok {
			name = t.Dim.String()
		}
		out = append(out, TermDTO{Dimension: name, Exponent: t.Exp.String()})
	}
	return out
}

func unitDTO(name string, u algebra.Unit, names map[algebra.BaseDimension]string) UnitDTO {
	dto := UnitDTO{
		Name:      name,
		Dimension: u.Dimension().String(),
		Terms:     termsDTO(u.Dimension(), names),
	}
	if sys := u.System(); sys.IsHomogeneous() {
		dto.System = string(sys.Tag())
	} else if !sys.IsEmpty() {
		dto.System = sys.String()
	}
	return dto
}

func factorDTO(f algebra.ConversionFactor) FactorDTO {
	return FactorDTO{
		Scale:       f.Scale(),
		Offset:      f.Offset(),
		ExactScale:  f.ExactScale().String(),
		ExactOffset: f.ExactOffset().String(),
		Affine:      f.IsAffine(),
	}
}
