package parser

import (
	"strings"

	"hydro-telemetry/internal/cache"
	"hydro-telemetry/internal/domain"
	"hydro-telemetry/internal/station"
)

// ParseEWSColumnFile decodes every row of a fixed-column gauge file, in file
// order, threading the stale-value cache forward row by row: a fresh non-zero
// value is emitted and becomes the new cached value, a zero or unparseable
// token emits the previous cached value instead. This full substitution
// policy covers discharge too, unlike the triplet variant, because this
// firmware reports zero on radar dropouts rather than omitting the channel.
func ParseEWSColumnFile(cfg station.Config, store cache.Store, content string) []domain.EWSRecord {
	records := make([]domain.EWSRecord, 0, 8)
	for _, line := range splitLines(strings.TrimSpace(content)) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, parseColumnLine(cfg, store, SplitFields(line)))
	}
	return records
}

func parseColumnLine(cfg station.Config, store cache.Store, parts []string) domain.EWSRecord {
	layout := cfg.Columns

	cached := func(param string) *float64 {
		col, ok := layout.Cached[param]
		if !ok {
			return nil
		}
		if v := floatAt(parts, col); v != nil && *v != 0 {
			store.Set(cfg.StationID, param, *v)
		}
		return store.Get(cfg.StationID, param)
	}

	raw := func(param string) *float64 {
		col, ok := layout.Raw[param]
		if !ok {
			return nil
		}
		return floatAt(parts, col)
	}

	flowDirection := layout.FlowDirection

	return domain.EWSRecord{
		StationID:          cfg.StationID,
		DeviceID:           cfg.DeviceID,
		UID:                cfg.UID,
		Timestamp:          domain.Now(),
		SurfaceVelocity:    cached(domain.ParamSurfaceVelocity),
		AvgSurfaceVelocity: cached(domain.ParamAvgSurfaceVelocity),
		TiltAngle:          cached(domain.ParamTiltAngle),
		SNR:                cached(domain.ParamSNR),
		WaterDischarge:     cached(domain.ParamWaterDischarge),
		WaterDistSensor:    raw(domain.ParamWaterDistSensor),
		WaterLevel:         raw(domain.ParamWaterLevel),
		FlowDirection:      &flowDirection,
	}
}
