/*
handlers.go - HTTP API handlers for the dimensional analysis engine

PURPOSE:
  Exposes the sealed registry via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the algebra package.

ENDPOINTS:
  Registry (read-only):
    GET    /api/dimensions         Base and derived dimensions
    GET    /api/units              Base units and named units
    GET    /api/units/{name}       One unit expression
    GET    /api/systems            Declared systems

  Conversion:
    POST   /api/resolve            Factor between two units
    POST   /api/convert            Convert a value (recorded in history)
    GET    /api/history?limit=N    Conversions served, newest first

  Catalogs:
    GET    /api/catalogs           Stored documents
    POST   /api/catalogs           Store a document (applied on restart)
    GET    /api/catalogs/{name}    One document with its body
    DELETE /api/catalogs/{name}    Remove a document

  Scenarios:
    GET    /api/scenarios          Worked examples
    POST   /api/scenarios/{id}/run Run one against the registry

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Registry: Sealed on the first resolve, read-only afterwards
  - History:  Append-only conversion log
  - Catalogs: Catalog documents

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Incompatible dimensions, affine misuse, malformed expression
  - 404: Unknown unit, system, dimension or catalog
  - 422: Same dimension but no conversion rule
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - format.go: Unit expression parsing and error mapping
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/warp/dimensional/algebra"
	"github.com/warp/dimensional/factory"
)

const defaultHistoryLimit = 50

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Registry *algebra.Registry
	History  algebra.HistoryStore
	Catalogs algebra.CatalogStore
	Logger   *slog.Logger

	metrics *metrics
}

// NewHandler creates a new handler. A nil logger uses slog.Default.
func NewHandler(r *algebra.Registry, history algebra.HistoryStore, catalogs algebra.CatalogStore, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Registry: r,
		History:  history,
		Catalogs: catalogs,
		Logger:   logger,
		metrics:  newMetrics(),
	}
}

// =============================================================================
// REGISTRY HANDLERS
// =============================================================================

// ListDimensions returns base and derived dimensions.
func (h *Handler) ListDimensions(w http.ResponseWriter, r *http.Request) {
	names := dimensionNames(h.Registry)
	resp := DimensionsResponse{Base: []DimensionDTO{}, Derived: []DerivedDTO{}}

	for _, d := range h.Registry.Dimensions() {
		resp.Base = append(resp.Base, DimensionDTO{
			Ordinal: int(d.Dimension),
			Name:    d.Name,
			Symbol:  d.Symbol,
			Builtin: d.Dimension.IsBuiltin(),
		})
	}

	derived := h.Registry.DerivedDimensions()
	keys := make([]string, 0, len(derived))
	for k := range derived {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		resp.Derived = append(resp.Derived, DerivedDTO{
			Name:      k,
			Dimension: derived[k].String(),
			Terms:     termsDTO(derived[k], names),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListUnits returns base units and named units.
func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	names := dimensionNames(h.Registry)
	resp := UnitsResponse{Base: []BaseUnitDTO{}, Named: []UnitDTO{}}

	units := h.Registry.BaseUnits()
	unitName := make(map[algebra.BaseUnitID]string, len(units))
	for _, u := range units {
		unitName[u.ID] = u.Name
	}
	for _, u := range units {
		dto := BaseUnitDTO{
			ID:        int(u.ID),
			Name:      u.Name,
			Symbol:    u.Symbol,
			Dimension: names[u.Dimension],
		}
		if u.IsScaled() {
			dto.Parent = unitName[u.Parent]
			dto.Scale = u.Scale.String()
		}
		resp.Base = append(resp.Base, dto)
	}

	for _, name := range h.Registry.NamedUnits() {
		u, _ := h.Registry.NamedUnit(name)
		resp.Named = append(resp.Named, unitDTO(name, u, names))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetUnit parses a unit expression and describes it.
// GET /api/units/{name}
func (h *Handler) GetUnit(w http.ResponseWriter, r *http.Request) {
	// chi matches on the raw path when it holds escapes such as %2F.
	expr, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid unit expression", err)
		return
	}
	u, err := ParseUnit(h.Registry, expr)
	if err != nil {
		writeAlgebraError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, unitDTO(expr, u, dimensionNames(h.Registry)))
}

// ListSystems returns declared systems with their bindings.
func (h *Handler) ListSystems(w http.ResponseWriter, r *http.Request) {
	names := dimensionNames(h.Registry)
	unitName := make(map[algebra.BaseUnitID]string)
	for _, u := range h.Registry.BaseUnits() {
		unitName[u.ID] = u.Name
	}

	dtos := []SystemDTO{}
	for _, s := range h.Registry.Systems() {
		dto := SystemDTO{Tag: string(s.Tag())}
		for _, b := range s.Bindings() {
			dto.Bindings = append(dto.Bindings, BindingDTO{
				Dimension: names[b.Dimension],
				Unit:      unitName[b.Unit],
			})
		}
		dtos = append(dtos, dto)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// CONVERSION HANDLERS
// =============================================================================

// Resolve returns the factor between two units.
// POST /api/resolve
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	from, to, f, err := h.resolve(req.From, req.To)
	if err != nil {
		writeAlgebraError(w, err)
		return
	}
	names := dimensionNames(h.Registry)
	writeJSON(w, http.StatusOK, ResolveResponse{
		From:   unitDTO(req.From, from, names),
		To:     unitDTO(req.To, to, names),
		Factor: factorDTO(f),
	})
}

// Convert converts a value and records it in the history.
// POST /api/convert
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	_, _, f, err := h.resolve(req.From, req.To)
	h.metrics.conversions.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		writeAlgebraError(w, err)
		return
	}

	output := f.Apply(req.Value)
	if req.Difference {
		output = req.Value * f.Scale()
	}

	id := req.ID
	if id == "" {
		id = middleware.GetReqID(ctx)
	}
	if h.History != nil {
		rec := algebra.ConversionRecord{
			ID:     id,
			At:     time.Now(),
			From:   req.From,
			To:     req.To,
			Input:  req.Value,
			Output: output,
			Scale:  f.ExactScale().String(),
			Offset: f.ExactOffset().String(),
		}
		// A replayed ID already has its record.
		if err := h.History.AppendConversion(ctx, rec); err != nil && !errors.Is(err, algebra.ErrDuplicateRecordID) {
			h.Logger.Warn("failed to record conversion", "id", id, "err", err)
		}
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		ID:     id,
		Input:  req.Value,
		Output: output,
		From:   req.From,
		To:     req.To,
		Factor: factorDTO(f),
	})
}

func (h *Handler) resolve(fromExpr, toExpr string) (algebra.Unit, algebra.Unit, algebra.ConversionFactor, error) {
	from, err := ParseUnit(h.Registry, fromExpr)
	if err != nil {
		return algebra.Unit{}, algebra.Unit{}, algebra.ConversionFactor{}, err
	}
	to, err := ParseUnit(h.Registry, toExpr)
	if err != nil {
		return algebra.Unit{}, algebra.Unit{}, algebra.ConversionFactor{}, err
	}

	start := time.Now()
	f, err := h.Registry.Resolve(from, to)
	h.metrics.resolve.Observe(time.Since(start).Seconds())
	if err != nil {
		h.Logger.Debug("resolve failed", "from", fromExpr, "to", toExpr, "err", err)
	}
	return from, to, f, err
}

// ListHistory returns recent conversions, newest first.
// GET /api/history?limit=N
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	if h.History == nil {
		writeJSON(w, http.StatusOK, []ConversionDTO{})
		return
	}

	limit := defaultHistoryLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	records, err := h.History.RecentConversions(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list history", err)
		return
	}

	dtos := make([]ConversionDTO, len(records))
	for i, rec := range records {
		dtos[i] = ConversionDTO{
			ID:     rec.ID,
			At:     rec.At.UTC().Format(time.RFC3339),
			From:   rec.From,
			To:     rec.To,
			Input:  rec.Input,
			Output: rec.Output,
			Scale:  rec.Scale,
			Offset: rec.Offset,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// CATALOG HANDLERS
// =============================================================================

// ListCatalogs returns stored catalog documents without their bodies.
func (h *Handler) ListCatalogs(w http.ResponseWriter, r *http.Request) {
	records, err := h.Catalogs.ListCatalogs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list catalogs", err)
		return
	}

	dtos := make([]CatalogDTO, len(records))
	for i, rec := range records {
		dtos[i] = toCatalogDTO(rec, false)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCatalog returns one catalog with its body.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Catalogs.GetCatalog(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeAlgebraError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCatalogDTO(rec, true))
}

// SaveCatalog stores a catalog document after checking it parses. The
// registry is sealed, so the document takes effect on the next restart.
// POST /api/catalogs
func (h *Handler) SaveCatalog(w http.ResponseWriter, r *http.Request) {
	var req SaveCatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Format == "" {
		req.Format = factory.FormatJSON
	}

	doc, err := factory.Parse([]byte(req.Body), req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid catalog document", err)
		return
	}
	if doc.Name == "" {
		writeError(w, http.StatusBadRequest, "Catalog name is required", nil)
		return
	}

	rec, err := h.Catalogs.SaveCatalog(r.Context(), algebra.CatalogRecord{
		ID:     doc.Name,
		Name:   doc.Name,
		Format: req.Format,
		Body:   []byte(req.Body),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save catalog", err)
		return
	}
	h.Logger.Info("catalog stored", "name", rec.Name, "version", rec.Version)
	writeJSON(w, http.StatusCreated, toCatalogDTO(rec, false))
}

// DeleteCatalog removes a stored catalog.
func (h *Handler) DeleteCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalogs.DeleteCatalog(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeAlgebraError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toCatalogDTO(rec algebra.CatalogRecord, withBody bool) CatalogDTO {
	dto := CatalogDTO{
		Name:      rec.Name,
		Format:    rec.Format,
		Version:   rec.Version,
		CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: rec.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if withBody {
		dto.Body = string(rec.Body)
	}
	return dto
}

// Health reports liveness and whether the registry is sealed.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"sealed": h.Registry.Sealed(),
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeAlgebraError picks the status from the error kind.
func writeAlgebraError(w http.ResponseWriter, err error) {
	status, message := statusFor(err)
	writeError(w, status, message, err)
}
