// Package api exposes the cost projection engine over HTTP. The
// surface is a thin adapter: it validates nothing the engine does not
// validate itself, and maps engine errors onto status codes.
package api

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/frontrange/dccost/internal/engine"
	"github.com/frontrange/dccost/internal/metrics"
	"github.com/frontrange/dccost/internal/refdata"
	"github.com/frontrange/dccost/internal/render"
)

// EstimateRequest is the POST /v1/estimate body.
type EstimateRequest struct {
	Capacity      string  `json:"capacity"`
	Rating        string  `json:"rating"`
	ProjectName   string  `json:"project_name"`
	InflationRate float64 `json:"inflation_rate"`
}

// EstimateResponse carries the three result sets plus their chart
// payloads.
type EstimateResponse struct {
	RequestID    string                       `json:"request_id"`
	ProjectName  string                       `json:"project_name,omitempty"`
	Construction engine.ConstructionBreakdown `json:"construction"`
	Forecast     engine.OperatingForecast     `json:"forecast"`
	TCO          engine.TCOBreakdown          `json:"tco"`
	Charts       render.Charts                `json:"charts"`
}

type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
	Kind      string `json:"kind"`
}

// Handler serves the estimate API.
type Handler struct {
	engine *engine.Engine
	logger zerolog.Logger
}

// NewMux builds the HTTP mux: the estimate endpoint plus health and
// metrics.
func NewMux(eng *engine.Engine, logger zerolog.Logger) *http.ServeMux {
	h := &Handler{
		engine: eng,
		logger: logger.With().Str("component", "api").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/estimate", h.handleEstimate)
	mux.HandleFunc("/healthz", handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) handleEstimate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		metrics.RequestsTotal.WithLabelValues("/v1/estimate").Inc()
		metrics.RequestDurationSeconds.WithLabelValues("/v1/estimate").Observe(time.Since(start).Seconds())
	}()

	requestID := uuid.NewString()

	if r.Method != http.MethodPost {
		h.writeError(w, requestID, http.StatusMethodNotAllowed, "method_not_allowed",
			errors.New("POST required"))
		return
	}

	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, requestID, http.StatusBadRequest, "bad_request", err)
		return
	}

	rating, err := engine.ParseRating(req.Rating)
	if err != nil {
		h.writeError(w, requestID, http.StatusBadRequest, errorKind(err), err)
		return
	}

	report, err := h.engine.ComputeCosts(req.Capacity, rating, req.InflationRate)
	if err != nil {
		h.writeError(w, requestID, statusFor(err), errorKind(err), err)
		return
	}

	h.logger.Info().
		Str("request_id", requestID).
		Str("capacity", report.Capacity).
		Str("rating", report.Rating).
		Str("project", req.ProjectName).
		Dur("elapsed", time.Since(start)).
		Msg("estimate computed")

	h.writeJSON(w, http.StatusOK, EstimateResponse{
		RequestID:    requestID,
		ProjectName:  req.ProjectName,
		Construction: report.Construction,
		Forecast:     report.Forecast,
		TCO:          report.TCO,
		Charts:       render.Build(report),
	})
}

// statusFor maps engine errors onto HTTP status codes: malformed input
// is 400, a request for data outside the reference set is 422, and a
// broken reference file is 500.
func statusFor(err error) int {
	var (
		capErr       *engine.InvalidCapacityFormatError
		ratingErr    *engine.InvalidRatingError
		inflationErr *engine.InvalidInflationRateError
		rateErr      *engine.MissingElectricityRateError
		capacityErr  *refdata.UnsupportedCapacityError
		fileErr      *refdata.DataFileError
	)
	switch {
	case errors.As(err, &capErr), errors.As(err, &ratingErr), errors.As(err, &inflationErr):
		return http.StatusBadRequest
	case errors.As(err, &rateErr), errors.As(err, &capacityErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fileErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// errorKind names the error category for metrics and clients.
func errorKind(err error) string {
	var (
		capErr       *engine.InvalidCapacityFormatError
		ratingErr    *engine.InvalidRatingError
		inflationErr *engine.InvalidInflationRateError
		rateErr      *engine.MissingElectricityRateError
		capacityErr  *refdata.UnsupportedCapacityError
		fileErr      *refdata.DataFileError
	)
	switch {
	case errors.As(err, &capErr):
		return "invalid_capacity_format"
	case errors.As(err, &ratingErr):
		return "invalid_rating"
	case errors.As(err, &inflationErr):
		return "invalid_inflation_rate"
	case errors.As(err, &rateErr):
		return "missing_electricity_rate"
	case errors.As(err, &capacityErr):
		return "unsupported_capacity"
	case errors.As(err, &fileErr):
		return "data_file_error"
	default:
		return "internal"
	}
}

func (h *Handler) writeError(w http.ResponseWriter, requestID string, status int, kind string, err error) {
	metrics.EstimateErrorsTotal.WithLabelValues(kind).Inc()
	h.logger.Warn().
		Str("request_id", requestID).
		Str("kind", kind).
		Int("status", status).
		Err(err).
		Msg("estimate failed")
	h.writeJSON(w, status, errorResponse{RequestID: requestID, Error: err.Error(), Kind: kind})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}
