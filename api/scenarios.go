/*
scenarios.go - Worked examples runnable over HTTP

PURPOSE:
  Each scenario exercises one property of the engine end to end and
  reports its steps. They double as a smoke test for a running server.

AVAILABLE SCENARIOS:
  dyne-newton:        1 dyne = 1e-5 newton, composed from per-dimension scales
  celsius-kelvin:     0 °C -> 273.15 K and back
  length-plus-mass:   adding fails, multiplying yields L·M
  gallon-round-trip:  user-declared units with a registered factor

HOW SCENARIOS WORK:
  The first three resolve against the server's registry and need the
  built-in catalogs. gallon-round-trip declares units, so it runs on a
  scratch registry and never touches the sealed one.

USAGE VIA API:
  POST /api/scenarios/celsius-kelvin/run

SEE ALSO:
  - handlers.go: Registry and conversion handlers
*/
package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/dimensional/algebra"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "dyne-newton",
		Name:        "Dyne to Newton",
		Description: "CGS force to SI force: 0.01 (length) x 0.001 (mass) = 1e-5",
	},
	{
		ID:          "celsius-kelvin",
		Name:        "Celsius to Kelvin",
		Description: "Affine conversion: 0 °C is 273.15 K, and back",
	},
	{
		ID:          "length-plus-mass",
		Name:        "Length plus Mass",
		Description: "Addition across dimensions fails, multiplication succeeds",
	},
	{
		ID:          "gallon-round-trip",
		Name:        "Gallon Round Trip",
		Description: "Imperial to US gallons by a registered factor, then back",
	},
}

type scenarioFunc func(h *Handler, res *ScenarioResult) error

var scenarioRunners = map[string]scenarioFunc{
	"dyne-newton":       runDyneNewton,
	"celsius-kelvin":    runCelsiusKelvin,
	"length-plus-mass":  runLengthPlusMass,
	"gallon-round-trip": runGallonRoundTrip,
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// RunScenario runs one scenario and reports its steps.
// POST /api/scenarios/{id}/run
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, ok := scenarioRunners[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown scenario", fmt.Errorf("scenario %q", id))
		return
	}

	res := ScenarioResult{ID: id, Steps: []string{}}
	if err := run(h, &res); err != nil {
		res.Error = err.Error()
		h.Logger.Warn("scenario failed", "id", id, "err", err)
		status, _ := statusFor(err)
		writeJSON(w, status, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (res *ScenarioResult) step(format string, args ...any) {
	res.Steps = append(res.Steps, fmt.Sprintf(format, args...))
}

// =============================================================================
// SCENARIO RUNNERS
// =============================================================================

func runDyneNewton(h *Handler, res *ScenarioResult) error {
	dyne, err := ParseUnit(h.Registry, "dyne")
	if err != nil {
		return err
	}
	newton, err := ParseUnit(h.Registry, "newton")
	if err != nil {
		return err
	}
	res.step("dyne = %s, newton = %s", dyne, newton)

	f, err := h.Registry.Resolve(dyne, newton)
	if err != nil {
		return err
	}
	res.step("factor scale = %s", f.ExactScale())
	res.Result = fmt.Sprintf("1 dyne = %g newton", f.Apply(1))
	return nil
}

func runCelsiusKelvin(h *Handler, res *ScenarioResult) error {
	celsius, err := ParseUnit(h.Registry, "celsius")
	if err != nil {
		return err
	}
	kelvin, err := ParseUnit(h.Registry, "kelvin")
	if err != nil {
		return err
	}

	warm, err := algebra.Of(0.0, celsius).ConvertWith(h.Registry, kelvin)
	if err != nil {
		return err
	}
	res.step("0 °C -> %g K", warm.Value())

	back, err := warm.ConvertWith(h.Registry, celsius)
	if err != nil {
		return err
	}
	res.step("%g K -> %g °C", warm.Value(), back.Value())
	res.Result = fmt.Sprintf("%g K", warm.Value())
	return nil
}

func runLengthPlusMass(h *Handler, res *ScenarioResult) error {
	meter, err := ParseUnit(h.Registry, "meter")
	if err != nil {
		return err
	}
	kilogram, err := ParseUnit(h.Registry, "kilogram")
	if err != nil {
		return err
	}
	length := algebra.Of(2.0, meter)
	mass := algebra.Of(3.0, kilogram)

	if _, err := length.Add(mass); errors.Is(err, algebra.ErrIncompatibleDimensions) {
		res.step("2 m + 3 kg: %v", err)
	} else {
		return fmt.Errorf("adding length to mass did not fail: %v", err)
	}

	product, err := length.Mul(mass)
	if err != nil {
		return err
	}
	res.step("2 m x 3 kg = %s", product)
	res.Result = product.Unit().Dimension().String()
	return nil
}

func runGallonRoundTrip(h *Handler, res *ScenarioResult) error {
	r := algebra.NewRegistry()
	const liquid algebra.BaseDimension = algebra.FirstUserDimension

	b := algebra.NewBatch(r)
	b.Dimension(liquid, "liquid_volume", "V")
	b.Root(1, liquid, "imperial_gallon", "gal (imp)")
	b.Root(2, liquid, "us_gallon", "gal (US)")
	b.System("imperial-liquid", 1)
	b.System("us-liquid", 2)
	b.Rule(1, 2, "1.2009499255", "", true)
	if err := b.Err(); err != nil {
		return err
	}

	imperial := algebra.MustUnit(algebra.Base(liquid), r.MustSystem("imperial-liquid"))
	us := algebra.MustUnit(algebra.Base(liquid), r.MustSystem("us-liquid"))

	there, err := algebra.Of(10.0, imperial).ConvertWith(r, us)
	if err != nil {
		return err
	}
	res.step("10 imperial gallons -> %.10g US gallons", there.Value())

	back, err := there.ConvertWith(r, imperial)
	if err != nil {
		return err
	}
	res.step("%.10g US gallons -> %.10g imperial gallons", there.Value(), back.Value())

	if math.Abs(back.Value()-10) > 1e-9 {
		return fmt.Errorf("round trip drifted to %v", back.Value())
	}
	f, err := r.Resolve(imperial, us)
	if err != nil {
		return err
	}
	res.Result = fmt.Sprintf("scale %s, inverse %s", f.ExactScale(), f.Inverse().ExactScale().Round(10).String())
	return nil
}
