package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frontrange/dccost/internal/engine"
	"github.com/frontrange/dccost/internal/refdata"
)

// newTestMux builds the API against real reference tables in a temp
// dir with the clock pinned to 2025.
func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	dir := t.TempDir()
	now := func() time.Time { return time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC) }

	err := refdata.EnsureElectricityData(context.Background(), refdata.RefreshConfig{
		DataDir: dir,
		Now:     now,
	}, zerolog.Nop())
	require.NoError(t, err)

	tables, err := refdata.NewTables(dir, zerolog.Nop())
	require.NoError(t, err)

	eng := engine.New(tables, zerolog.Nop(), engine.WithClock(now))
	return NewMux(eng, zerolog.Nop())
}

func postEstimate(t *testing.T, mux *http.ServeMux, body EstimateRequest) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/estimate", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandleEstimate(t *testing.T) {
	mux := newTestMux(t)

	rec := postEstimate(t, mux, EstimateRequest{
		Capacity:      "20MW",
		Rating:        "Tier III",
		ProjectName:   "Front Range One",
		InflationRate: 0.03,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp EstimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, "Front Range One", resp.ProjectName)
	assert.Equal(t, 318.0, resp.Construction.TotalUSDM)
	assert.Equal(t, 2025, resp.Forecast.BaseYear)
	assert.NotEmpty(t, resp.TCO.Entries)
	assert.NotEmpty(t, resp.Charts.Construction.Components)
}

func TestHandleEstimate_Errors(t *testing.T) {
	mux := newTestMux(t)

	tests := []struct {
		name        string
		req         EstimateRequest
		wantStatus  int
		wantKind    string
		wantMessage string
	}{
		{
			name:        "invalid capacity token",
			req:         EstimateRequest{Capacity: "XYZ", Rating: "Tier III", InflationRate: 0.03},
			wantStatus:  http.StatusBadRequest,
			wantKind:    "invalid_capacity_format",
			wantMessage: "XYZ",
		},
		{
			name:        "invalid rating",
			req:         EstimateRequest{Capacity: "20MW", Rating: "Tier V", InflationRate: 0.03},
			wantStatus:  http.StatusBadRequest,
			wantKind:    "invalid_rating",
			wantMessage: "Tier V",
		},
		{
			name:       "inflation out of range",
			req:        EstimateRequest{Capacity: "20MW", Rating: "Tier III", InflationRate: 1.2},
			wantStatus: http.StatusBadRequest,
			wantKind:   "invalid_inflation_rate",
		},
		{
			name:        "capacity outside reference set",
			req:         EstimateRequest{Capacity: "50MW", Rating: "Tier III", InflationRate: 0.03},
			wantStatus:  http.StatusUnprocessableEntity,
			wantKind:    "unsupported_capacity",
			wantMessage: "50MW",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postEstimate(t, mux, tt.req)

			require.Equal(t, tt.wantStatus, rec.Code)

			var resp struct {
				RequestID string `json:"request_id"`
				Error     string `json:"error"`
				Kind      string `json:"kind"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantKind, resp.Kind)
			assert.NotEmpty(t, resp.RequestID)
			if tt.wantMessage != "" {
				assert.Contains(t, resp.Error, tt.wantMessage)
			}
		})
	}
}

func TestHandleEstimate_MethodNotAllowed(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/estimate", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthz(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
