/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the algebra types, which keep their fields private, from the external
  API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

UNIT EXPRESSIONS:
  Requests name units with expressions parsed by ParseUnit (format.go):
    "newton"                    named unit
    "kg"                        base unit symbol
    "kilogram*meter/second^2"   product and quotient
    "meter^(1/2)"               fractional exponent

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/catalog.go: Catalog document schema
*/
package api

// =============================================================================
// REGISTRY VIEWS
// =============================================================================

// DimensionDTO is a base dimension.
type DimensionDTO struct {
	Ordinal int    `json:"ordinal"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	Builtin bool   `json:"builtin"`
}

// DerivedDTO is a named derived dimension.
type DerivedDTO struct {
	Name      string    `json:"name"`
	Dimension string    `json:"dimension"`
	Terms     []TermDTO `json:"terms"`
}

// DimensionsResponse lists base and derived dimensions.
type DimensionsResponse struct {
	Base    []DimensionDTO `json:"base"`
	Derived []DerivedDTO   `json:"derived"`
}

// TermDTO is one (dimension, exponent) pair.
type TermDTO struct {
	Dimension string `json:"dimension"`
	Exponent  string `json:"exponent"`
}

// BaseUnitDTO is a declared base unit.
type BaseUnitDTO struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Dimension string `json:"dimension"`
	Parent    string `json:"parent,omitempty"`
	Scale     string `json:"scale,omitempty"`
}

// UnitDTO is a named unit.
type UnitDTO struct {
	Name      string    `json:"name"`
	Dimension string    `json:"dimension"`
	Terms     []TermDTO `json:"terms"`
	System    string    `json:"system,omitempty"`
}

// UnitsResponse lists base units and named units.
type UnitsResponse struct {
	Base  []BaseUnitDTO `json:"base"`
	Named []UnitDTO     `json:"named"`
}

// SystemDTO is a declared system.
type SystemDTO struct {
	Tag      string       `json:"tag"`
	Bindings []BindingDTO `json:"bindings"`
}

// BindingDTO maps a base dimension to a base unit.
type BindingDTO struct {
	Dimension string `json:"dimension"`
	Unit      string `json:"unit"`
}

// =============================================================================
// CONVERSION
// =============================================================================

// ResolveRequest asks for the factor between two units.
type ResolveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FactorDTO is a conversion factor: y = scale × x + offset.
type FactorDTO struct {
	Scale       float64 `json:"scale"`
	Offset      float64 `json:"offset"`
	ExactScale  string  `json:"exact_scale"`
	ExactOffset string  `json:"exact_offset"`
	Affine      bool    `json:"affine"`
}

// ResolveResponse is the factor with both units echoed back.
type ResolveResponse struct {
	From   UnitDTO   `json:"from"`
	To     UnitDTO   `json:"to"`
	Factor FactorDTO `json:"factor"`
}

// ConvertRequest converts a value. Difference converts an interval,
// applying the scale only.
type ConvertRequest struct {
	ID         string  `json:"id,omitempty"` // defaults to the request ID
	Value      float64 `json:"value"`
	From       string  `json:"from"`
	To         string  `json:"to"`
	Difference bool    `json:"difference,omitempty"`
}

// ConvertResponse is the converted value.
type ConvertResponse struct {
	ID     string    `json:"id"`
	Input  float64   `json:"input"`
	Output float64   `json:"output"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	Factor FactorDTO `json:"factor"`
}

// ConversionDTO is a history record.
type ConversionDTO struct {
	ID     string  `json:"id"`
	At     string  `json:"at"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Input  float64 `json:"input"`
	Output float64 `json:"output"`
	Scale  string  `json:"scale"`
	Offset string  `json:"offset"`
}

// =============================================================================
// CATALOGS
// =============================================================================

// CatalogDTO is a stored catalog document.
type CatalogDTO struct {
	Name      string `json:"name"`
	Format    string `json:"format"`
	Version   int    `json:"version"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Body      string `json:"body,omitempty"`
}

// SaveCatalogRequest stores a document. Format is "json" or "yaml".
type SaveCatalogRequest struct {
	Format string `json:"format"`
	Body   string `json:"body"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO is a worked example.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ScenarioResult is the outcome of running a scenario.
type ScenarioResult struct {
	ID     string   `json:"id"`
	Steps  []string `json:"steps"`
	Result string   `json:"result,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}
