package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListScenarios(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/scenarios", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]ScenarioDTO](t, rec)
	require.Len(t, list, len(scenarioRunners))
	for _, sc := range list {
		assert.Contains(t, scenarioRunners, sc.ID, "every listed scenario must be runnable")
	}
}

func TestRunScenario(t *testing.T) {
	tests := []struct {
		id     string
		result string
	}{
		{"dyne-newton", "1 dyne = 1e-05 newton"},
		{"celsius-kelvin", "273.15 K"},
		{"length-plus-mass", "L·M"},
		{"gallon-round-trip", "scale 1.2009499255"},
	}

	s := newTestServer(t)
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/scenarios/"+tc.id+"/run", nil)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			res := decode[ScenarioResult](t, rec)
			assert.Empty(t, res.Error)
			assert.Contains(t, res.Result, tc.result)
			assert.NotEmpty(t, res.Steps)
		})
	}
}

func TestRunScenario_Unknown(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/scenarios/nope/run", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
