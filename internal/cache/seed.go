package cache

import (
	"context"
	"log/slog"

	"hydro-telemetry/internal/station"
)

// HistoryReader supplies the most recent non-null, non-zero historical value
// of a parameter for a station, or nil when no such row exists.
type HistoryReader interface {
	LastNonZero(ctx context.Context, stationID, param string) (*float64, error)
}

// SeedFromHistory warms the cache from historical storage at startup. Lookup
// failures are logged and skipped: an unreachable database must not prevent
// the pollers from starting, the first fresh observation simply becomes the
// new baseline.
func SeedFromHistory(ctx context.Context, store Store, hist HistoryReader, stations []station.Config, logger *slog.Logger) {
	for _, st := range stations {
		for _, param := range st.SeedParams {
			v, err := hist.LastNonZero(ctx, st.StationID, param)
			if err != nil {
				logger.Warn("cache seed lookup failed",
					"station", st.Key(), "parameter", param, "error", err)
				continue
			}
			store.Seed(st.StationID, param, v)
			if v != nil {
				logger.Info("cache seeded",
					"station", st.Key(), "parameter", param, "value", *v)
			}
		}
	}
}
