package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydro-telemetry/internal/domain"
	"hydro-telemetry/internal/forecast"
	"hydro-telemetry/internal/observability"
)

type fakeHistory struct {
	rows    []domain.AWSRecord
	err     error
	station string
	limit   int
}

func (f *fakeHistory) RecentAWS(_ context.Context, stationID string, limit int) ([]domain.AWSRecord, error) {
	f.station = stationID
	f.limit = limit
	return f.rows, f.err
}

func newTestRouter(hist *fakeHistory) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(hist, logger, observability.NewMetricsForTesting())
}

// newestFirst builds n weather rows the way the store returns them: newest
// first, temperature rising toward the present.
func newestFirst(n int) []domain.AWSRecord {
	rows := make([]domain.AWSRecord, n)
	for i := range rows {
		rows[i] = domain.AWSRecord{
			StationID:        "ST015",
			Temperature:      domain.Float(float64(n - i)),
			RelativeHumidity: domain.Float(50),
			Pressure:         domain.Float(655),
			WindSpeed:        domain.Float(3),
			Rain:             nil,
		}
	}
	return rows
}

func TestForecastEndpoint(t *testing.T) {
	hist := &fakeHistory{rows: newestFirst(40)}
	srv := httptest.NewServer(newTestRouter(hist))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/v1/forecast/ST015")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))

	var body ForecastResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))

	t.Run("queries the station from the path", func(t *testing.T) {
		assert.Equal(t, "ST015", hist.station)
		assert.Equal(t, historyWindow, hist.limit)
	})

	t.Run("payload shape", func(t *testing.T) {
		assert.Equal(t, "ST015", body.Station)
		assert.Equal(t, 12, body.ForecastHours)
		assert.Equal(t, "15 minutes", body.Interval)
		assert.Len(t, body.Temperature, forecast.DefaultSteps)
		assert.Len(t, body.Humidity, forecast.DefaultSteps)
		assert.Len(t, body.Pressure, forecast.DefaultSteps)
		assert.Len(t, body.WindSpeed, forecast.DefaultSteps)
		assert.Len(t, body.Rain, forecast.DefaultSteps)
	})

	t.Run("series is reversed before extrapolation", func(t *testing.T) {
		// Rows arrive newest first with temperature n..1; reversed that is the
		// rising series 1..40, which trends upward from 40.
		assert.Equal(t, 43.0, body.Temperature[0])
		assert.Equal(t, 46.0, body.Temperature[1])
	})

	t.Run("null readings enter the series as zero", func(t *testing.T) {
		// Rain is NULL throughout, a constant zero series: flat forecast.
		for _, v := range body.Rain {
			assert.Zero(t, v)
		}
	})
}

func TestForecastEndpoint_NoData(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(&fakeHistory{}))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/v1/forecast/ST999")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusNotFound, res.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "No data found for this station.", body["error"])
}

func TestForecastEndpoint_QueryError(t *testing.T) {
	hist := &fakeHistory{err: errors.New("driver: bad connection")}
	srv := httptest.NewServer(newTestRouter(hist))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/v1/forecast/ST015")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "Server error while generating forecast.", body["error"])
}

func TestForecastEndpoint_ShortHistory(t *testing.T) {
	// Under ten observations the forecast is a flat line of the most recent
	// reading.
	hist := &fakeHistory{rows: []domain.AWSRecord{
		{StationID: "ST015", Temperature: domain.Float(9.5)},
		{StationID: "ST015", Temperature: domain.Float(8.0)},
	}}
	srv := httptest.NewServer(newTestRouter(hist))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/v1/forecast/ST015")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body ForecastResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Len(t, body.Temperature, forecast.DefaultSteps)
	for _, v := range body.Temperature {
		assert.Equal(t, 9.5, v)
	}
}

func TestForecastEndpoint_MethodNotAllowed(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(&fakeHistory{rows: newestFirst(5)}))
	defer srv.Close()

	res, err := http.Post(srv.URL+"/api/v1/forecast/ST015", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
