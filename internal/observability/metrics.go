package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the ingestion pipeline and the
// forecast API.
type Metrics struct {
	PollsTotal     *prometheus.CounterVec // labels: station
	FilesProcessed *prometheus.CounterVec // labels: station
	RowsInserted   *prometheus.CounterVec // labels: station
	WatchErrors    *prometheus.CounterVec // labels: station
	ParseErrors    *prometheus.CounterVec // labels: station
	InsertErrors   *prometheus.CounterVec // labels: station
	PollDuration   prometheus.Histogram
	PollerRunning  prometheus.Gauge

	ForecastRequests *prometheus.CounterVec // labels: status={ok,not_found,error}
	ForecastDuration prometheus.Histogram
}

// NewMetrics creates and registers all collectors with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PollsTotal,
		m.FilesProcessed,
		m.RowsInserted,
		m.WatchErrors,
		m.ParseErrors,
		m.InsertErrors,
		m.PollDuration,
		m.PollerRunning,
		m.ForecastRequests,
		m.ForecastDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so parallel
// tests do not trip "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PollsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hydro",
			Name:      "polls_total",
			Help:      "Completed poll ticks per station.",
		}, []string{"station"}),
		FilesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hydro",
			Name:      "files_processed_total",
			Help:      "New CSV files ingested per station.",
		}, []string{"station"}),
		RowsInserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hydro",
			Name:      "rows_inserted_total",
			Help:      "Observation rows written to the store per station.",
		}, []string{"station"}),
		WatchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hydro",
			Name:      "watch_errors_total",
			Help:      "Directory scans or file reads that failed.",
		}, []string{"station"}),
		ParseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hydro",
			Name:      "parse_errors_total",
			Help:      "Files rejected by the parser (missing header row).",
		}, []string{"station"}),
		InsertErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hydro",
			Name:      "insert_errors_total",
			Help:      "Batch inserts that failed; data for the cycle is dropped.",
		}, []string{"station"}),
		PollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hydro",
			Name:      "poll_duration_seconds",
			Help:      "Duration of a complete poll-parse-insert tick.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		PollerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hydro",
			Name:      "poller_running",
			Help:      "1 when the station pollers are active, 0 when shut down.",
		}),
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hydro",
			Name:      "forecast_requests_total",
			Help:      "Forecast API requests by outcome.",
		}, []string{"status"}),
		ForecastDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hydro",
			Name:      "forecast_duration_seconds",
			Help:      "Forecast request duration including the history query.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}
