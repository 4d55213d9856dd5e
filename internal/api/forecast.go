// Package api exposes the read-side HTTP endpoints of the dashboard backend.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	httpadapter "hydro-telemetry/internal/adapter/http"
	"hydro-telemetry/internal/domain"
	"hydro-telemetry/internal/forecast"
	"hydro-telemetry/internal/observability"
)

// historyWindow is how many recent observations feed the extrapolation:
// 120 rows, roughly the last 30 hours at the loggers' dump cadence.
const historyWindow = 120

// HistorySource loads recent weather observations, newest first.
type HistorySource interface {
	RecentAWS(ctx context.Context, stationID string, limit int) ([]domain.AWSRecord, error)
}

// Handler serves the forecast endpoints.
type Handler struct {
	store   HistorySource
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewRouter builds the API router.
func NewRouter(store HistorySource, logger *slog.Logger, metrics *observability.Metrics) *mux.Router {
	h := &Handler{store: store, logger: logger, metrics: metrics}

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/forecast/{stationId}", h.Forecast).Methods(http.MethodGet)
	return r
}

// ForecastResponse is the 12-hour forecast payload: one 48-point series per
// parameter at 15-minute intervals.
type ForecastResponse struct {
	Station       string    `json:"station"`
	ForecastHours int       `json:"forecastHours"`
	Interval      string    `json:"interval"`
	Temperature   []float64 `json:"temperature"`
	Humidity      []float64 `json:"humidity"`
	Pressure      []float64 `json:"pressure"`
	WindSpeed     []float64 `json:"windspeed"`
	Rain          []float64 `json:"rain"`
}

// Forecast handles GET /api/v1/forecast/{stationId}.
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stationID := mux.Vars(r)["stationId"]

	rows, err := h.store.RecentAWS(r.Context(), stationID, historyWindow)
	if err != nil {
		h.logger.Error("forecast history query failed", "station", stationID, "error", err)
		h.observe("error", start)
		httpadapter.WriteJSON(w, http.StatusInternalServerError,
			map[string]string{"error": "Server error while generating forecast."})
		return
	}
	if len(rows) == 0 {
		h.observe("not_found", start)
		httpadapter.WriteJSON(w, http.StatusNotFound,
			map[string]string{"error": "No data found for this station."})
		return
	}

	// Oldest to newest for the extrapolator.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	resp := ForecastResponse{
		Station:       stationID,
		ForecastHours: 12,
		Interval:      "15 minutes",
		Temperature:   forecast.Forecast(series(rows, func(r domain.AWSRecord) *float64 { return r.Temperature }), forecast.DefaultSteps),
		Humidity:      forecast.Forecast(series(rows, func(r domain.AWSRecord) *float64 { return r.RelativeHumidity }), forecast.DefaultSteps),
		Pressure:      forecast.Forecast(series(rows, func(r domain.AWSRecord) *float64 { return r.Pressure }), forecast.DefaultSteps),
		WindSpeed:     forecast.Forecast(series(rows, func(r domain.AWSRecord) *float64 { return r.WindSpeed }), forecast.DefaultSteps),
		Rain:          forecast.Forecast(series(rows, func(r domain.AWSRecord) *float64 { return r.Rain }), forecast.DefaultSteps),
	}

	h.observe("ok", start)
	httpadapter.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) observe(status string, start time.Time) {
	h.metrics.ForecastRequests.WithLabelValues(status).Inc()
	h.metrics.ForecastDuration.Observe(time.Since(start).Seconds())
}

// series extracts one parameter as a scalar series. NULL readings enter the
// series as zero; the extrapolator has no notion of gaps.
func series(rows []domain.AWSRecord, pick func(domain.AWSRecord) *float64) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		if v := pick(r); v != nil {
			out[i] = *v
		}
	}
	return out
}
