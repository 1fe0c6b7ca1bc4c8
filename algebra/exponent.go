package algebra

import (
	"fmt"
	"math"
	"math/big"
)

// =============================================================================
// EXPONENT - Exact rational power of a base dimension
// =============================================================================

// Exponent is an exact fraction in lowest terms with a positive denominator.
// The sign lives on the numerator. The zero value is 0/1.
type Exponent struct {
	num int64
	den int64 // 0 is read as 1 so that Exponent{} is a valid zero
}

// R returns num/den reduced to lowest terms. It panics on a zero denominator,
// like big.NewRat.
func R(num, den int64) Exponent {
	if den == 0 {
		panic("algebra: exponent with zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	if num == 0 {
		return Exponent{num: 0, den: 1}
	}
	if g := gcd(abs64(num), den); g > 1 {
		num /= g
		den /= g
	}
	return Exponent{num: num, den: den}
}

// Int returns the integral exponent n/1.
func Int(n int64) Exponent { return Exponent{num: n, den: 1} }

func (e Exponent) Num() int64 { return e.num }

func (e Exponent) Den() int64 {
	if e.den == 0 {
		return 1
	}
	return e.den
}

func (e Exponent) IsZero() bool    { return e.num == 0 }
func (e Exponent) IsInteger() bool { return e.Den() == 1 }
func (e Exponent) IsOne() bool     { return e.num == 1 && e.Den() == 1 }

func (e Exponent) Equal(o Exponent) bool {
	return e.num == o.num && e.Den() == o.Den()
}

// Cmp returns -1, 0 or +1 like big.Rat.Cmp.
func (e Exponent) Cmp(o Exponent) int {
	l, ok1 := mul64(e.num, o.Den())
	r, ok2 := mul64(o.num, e.Den())
	if !ok1 || !ok2 {
		return e.rat().Cmp(o.rat())
	}
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func (e Exponent) rat() *big.Rat { return big.NewRat(e.num, e.Den()) }

func (e Exponent) Neg() Exponent { return Exponent{num: -e.num, den: e.Den()} }

// Add, Sub, Mul and Div are exact. They fail with ErrInvalidExponent when
// the reduced result does not fit in int64.

func (e Exponent) Add(o Exponent) (Exponent, error) {
	ed, od := e.Den(), o.Den()
	g := gcd(ed, od)
	l, ok1 := mul64(e.num, od/g)
	r, ok2 := mul64(o.num, ed/g)
	num, ok3 := add64(l, r)
	den, ok4 := mul64(ed/g, od)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Exponent{}, overflow(e, "+", o)
	}
	return R(num, den), nil
}

func (e Exponent) Sub(o Exponent) (Exponent, error) { return e.Add(o.Neg()) }

func (e Exponent) Mul(o Exponent) (Exponent, error) {
	if e.IsZero() || o.IsZero() {
		return Exponent{num: 0, den: 1}, nil
	}
	// Cross-reduce first so that products stay as small as the result.
	g1 := gcd(abs64(e.num), o.Den())
	g2 := gcd(abs64(o.num), e.Den())
	num, ok1 := mul64(e.num/g1, o.num/g2)
	den, ok2 := mul64(e.Den()/g2, o.Den()/g1)
	if !ok1 || !ok2 {
		return Exponent{}, overflow(e, "*", o)
	}
	return R(num, den), nil
}

func (e Exponent) Div(o Exponent) (Exponent, error) {
	if o.IsZero() {
		return Exponent{}, fmt.Errorf("%w: division of %s by zero", ErrInvalidExponent, e)
	}
	num, den := o.Den(), o.num
	if den < 0 {
		num, den = -num, -den
	}
	return e.Mul(Exponent{num: num, den: den})
}

// Int returns the integral value, or a NonIntegralDimensionError when the
// exponent is fractional. The error carries no dimension; callers that know
// it fill it in.
func (e Exponent) Int() (int64, error) {
	if !e.IsInteger() {
		return 0, &NonIntegralDimensionError{Exponent: e}
	}
	return e.num, nil
}

func (e Exponent) Float64() float64 {
	return float64(e.num) / float64(e.Den())
}

func (e Exponent) String() string {
	if e.IsInteger() {
		return fmt.Sprintf("%d", e.num)
	}
	return fmt.Sprintf("%d/%d", e.num, e.Den())
}

// ParseExponent reads "2", "-3" or "1/2".
func ParseExponent(s string) (Exponent, error) {
	var num, den int64
	if n, err := fmt.Sscanf(s, "%d/%d", &num, &den); err == nil && n == 2 {
		if den == 0 {
			return Exponent{}, fmt.Errorf("%w: zero denominator in %q", ErrInvalidExponent, s)
		}
		if num == math.MinInt64 || den == math.MinInt64 {
			return Exponent{}, fmt.Errorf("%w: %q out of range", ErrInvalidExponent, s)
		}
		return R(num, den), nil
	}
	if _, err := fmt.Sscanf(s, "%d", &num); err != nil {
		return Exponent{}, fmt.Errorf("%w: %q", ErrInvalidExponent, s)
	}
	if num == math.MinInt64 {
		return Exponent{}, fmt.Errorf("%w: %q out of range", ErrInvalidExponent, s)
	}
	return Int(num), nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(n int64) int64 {
	if n < 0 {
		if n == math.MinInt64 {
			panic("algebra: exponent overflow")
		}
		return -n
	}
	return n
}

// mul64 and add64 report false when the result overflows. MinInt64 counts
// as an overflow so that every result can be negated.
func mul64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c == math.MinInt64 || c/b != a {
		return 0, false
	}
	return c, true
}

func add64(a, b int64) (int64, bool) {
	c := a + b
	if c == math.MinInt64 || (a > 0 && b > 0 && c < 0) || (a < 0 && b < 0 && c >= 0) {
		return 0, false
	}
	return c, true
}

func overflow(a Exponent, op string, b Exponent) error {
	return fmt.Errorf("%w: %s %s %s overflows int64", ErrInvalidExponent, a, op, b)
}
