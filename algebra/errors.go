/*
errors.go - Centralized error types for the dimensional algebra

PURPOSE:
  All error types in one place for consistency and discoverability.
  Every failure is detected deterministically at the point of composition
  or resolution. There is no partial success and no best-effort fallback:
  the caller always gets an error it can inspect.

ERROR CATEGORIES:
  1. Algebra errors      - incompatible dimensions, non-integral exponents
  2. System errors       - conflicting base units, unbound dimensions
  3. Conversion errors   - missing rules, invalid affine compositions
  4. Registration errors - duplicates with conflicting data, sealed registry
  5. Store errors        - missing catalogs, duplicate history records

USAGE:
  Callers match sentinels with errors.Is and pull context with errors.As:

    if errors.Is(err, algebra.ErrIncompatibleDimensions) {
        var ide *algebra.IncompatibleDimensionsError
        errors.As(err, &ide)
        log.Printf("cannot convert %s to %s", ide.From, ide.To)
    }

SEE ALSO:
  - resolver.go: Produces the conversion errors
  - registry.go: Produces the registration errors
*/
package algebra

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrIncompatibleDimensions is returned when a conversion or an addition
	// is attempted between unequal canonical dimension vectors.
	ErrIncompatibleDimensions = errors.New("algebra: incompatible dimensions")

	// ErrConflictingBaseUnit is returned when two systems are combined and
	// they bind the same base dimension to different base units.
	ErrConflictingBaseUnit = errors.New("algebra: conflicting base unit")

	// ErrMissingConversionRule is returned when no conversion path exists
	// between two base units of the same dimension.
	ErrMissingConversionRule = errors.New("algebra: missing conversion rule")

	// ErrInvalidAffineComposition is returned when an offset-bearing
	// conversion would be raised to a power, mixed with other dimensions,
	// or chained with multiplicative conversions.
	ErrInvalidAffineComposition = errors.New("algebra: invalid affine composition")

	// ErrNonIntegralDimension is returned when an integral exponent is
	// required and the dimension carries a fractional one.
	ErrNonIntegralDimension = errors.New("algebra: non-integral dimension")

	// ErrDuplicateRegistration is returned when the same key is declared
	// twice with different data. Identical re-declarations are accepted.
	ErrDuplicateRegistration = errors.New("algebra: duplicate registration")

	// ErrRegistrySealed is returned when a declaration arrives after the
	// registry started serving resolutions.
	ErrRegistrySealed = errors.New("algebra: registry sealed")

	// ErrUnknownBaseUnit is returned when a base unit ID was never declared.
	ErrUnknownBaseUnit = errors.New("algebra: unknown base unit")

	// ErrUnknownDimension is returned when a base dimension was never declared.
	ErrUnknownDimension = errors.New("algebra: unknown base dimension")

	// ErrUnknownSystem is returned when a system tag was never declared.
	ErrUnknownSystem = errors.New("algebra: unknown system")

	// ErrUnboundDimension is returned when a unit is built from a system
	// that has no base unit for one of the vector's dimensions.
	ErrUnboundDimension = errors.New("algebra: dimension not bound by system")

	// ErrUnitMismatch is returned when two quantities share a dimension but
	// are measured in different systems. Convert explicitly first.
	ErrUnitMismatch = errors.New("algebra: unit mismatch")

	// ErrInvalidExponent is returned for a zero root degree and for exponents
	// that cannot be parsed or do not fit in int64.
	ErrInvalidExponent = errors.New("algebra: invalid exponent")

	// ErrInvalidRule is returned when a declaration is malformed: zero scale,
	// self loop, or units of different dimensions.
	ErrInvalidRule = errors.New("algebra: invalid declaration")

	// ErrCatalogNotFound is returned by a CatalogStore for an unknown catalog.
	ErrCatalogNotFound = errors.New("algebra: catalog not found")

	// ErrDuplicateRecordID is returned when a history record ID was already appended.
	ErrDuplicateRecordID = errors.New("algebra: duplicate record id")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// IncompatibleDimensionsError reports the two vectors that failed to match.
type IncompatibleDimensionsError struct {
	From DimensionVector
	To   DimensionVector
}

func (e *IncompatibleDimensionsError) Error() string {
	return fmt.Sprintf("incompatible dimensions: %s vs %s", e.From, e.To)
}

func (e *IncompatibleDimensionsError) Unwrap() error {
	return ErrIncompatibleDimensions
}

// ConflictingBaseUnitError reports the dimension bound twice.
type ConflictingBaseUnitError struct {
	Dimension   BaseDimension
	Existing    BaseUnitID
	Conflicting BaseUnitID
}

func (e *ConflictingBaseUnitError) Error() string {
	return fmt.Sprintf("conflicting base unit for %s: %d vs %d",
		e.Dimension, e.Existing, e.Conflicting)
}

func (e *ConflictingBaseUnitError) Unwrap() error {
	return ErrConflictingBaseUnit
}

// MissingConversionRuleError reports the unreachable pair.
type MissingConversionRuleError struct {
	Dimension BaseDimension
	From      BaseUnitID
	To        BaseUnitID
}

func (e *MissingConversionRuleError) Error() string {
	return fmt.Sprintf("no conversion path for %s from unit %d to unit %d",
		e.Dimension, e.From, e.To)
}

func (e *MissingConversionRuleError) Unwrap() error {
	return ErrMissingConversionRule
}

// InvalidAffineCompositionError reports why an affine conversion was refused.
type InvalidAffineCompositionError struct {
	From     BaseUnitID
	To       BaseUnitID
	Exponent Exponent
	Reason   string
}

func (e *InvalidAffineCompositionError) Error() string {
	return fmt.Sprintf("invalid affine composition from unit %d to unit %d (exponent %s): %s",
		e.From, e.To, e.Exponent, e.Reason)
}

func (e *InvalidAffineCompositionError) Unwrap() error {
	return ErrInvalidAffineComposition
}

// NonIntegralDimensionError reports the first fractional exponent found.
type NonIntegralDimensionError struct {
	Dimension BaseDimension
	Exponent  Exponent
}

func (e *NonIntegralDimensionError) Error() string {
	return fmt.Sprintf("non-integral exponent %s for %s", e.Exponent, e.Dimension)
}

func (e *NonIntegralDimensionError) Unwrap() error {
	return ErrNonIntegralDimension
}

// DuplicateRegistrationError reports a conflicting re-declaration.
type DuplicateRegistrationError struct {
	Kind string // "dimension", "unit", "system", "derived", "rule", "named"
	Key  string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("duplicate %s registration with conflicting data: %s", e.Kind, e.Key)
}

func (e *DuplicateRegistrationError) Unwrap() error {
	return ErrDuplicateRegistration
}

// UnitMismatchError reports two units with equal dimensions but different systems.
type UnitMismatchError struct {
	Left  Unit
	Right Unit
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("unit mismatch: %s vs %s (convert explicitly first)", e.Left, e.Right)
}

func (e *UnitMismatchError) Unwrap() error {
	return ErrUnitMismatch
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRegistrationError returns true if the error came from declaring catalog data.
func IsRegistrationError(err error) bool {
	return errors.Is(err, ErrDuplicateRegistration) ||
		errors.Is(err, ErrRegistrySealed) ||
		errors.Is(err, ErrInvalidRule) ||
		errors.Is(err, ErrUnknownDimension)
}

// IsConversionError returns true if the error came from resolving a conversion.
func IsConversionError(err error) bool {
	return errors.Is(err, ErrIncompatibleDimensions) ||
		errors.Is(err, ErrMissingConversionRule) ||
		errors.Is(err, ErrInvalidAffineComposition)
}

// IsNotFound returns true if the error indicates an undeclared reference.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownBaseUnit) ||
		errors.Is(err, ErrUnknownSystem) ||
		errors.Is(err, ErrUnknownDimension) ||
		errors.Is(err, ErrCatalogNotFound)
}
