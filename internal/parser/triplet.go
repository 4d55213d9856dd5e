package parser

import (
	"strings"

	"hydro-telemetry/internal/cache"
	"hydro-telemetry/internal/domain"
	"hydro-telemetry/internal/station"
)

// tripletToken is one interpreted token of an index/flag/value row.
type tripletToken struct {
	// pair is true when the token opens a valid "<index> <flag> <value>"
	// triplet; index and value then carry the decoded pair.
	pair  bool
	index int
	value float64
	raw   string
}

// scanTriplets walks a tokenized row and tags every position that opens a
// valid index/flag/value triplet. The scan advances one token at a time, not
// three: the logger interleaves triplets with free-standing values, and a
// value token with an integer prefix may itself open the next candidate.
func scanTriplets(parts []string, flag string) []tripletToken {
	tokens := make([]tripletToken, len(parts))
	for i, p := range parts {
		tokens[i] = tripletToken{raw: p}
		idx, ok := parseIntPrefix(p)
		if !ok {
			continue
		}
		if tokenAt(parts, i+1) != flag {
			continue
		}
		val := ParseFloatToken(tokenAt(parts, i+2))
		if val == nil {
			continue
		}
		tokens[i] = tripletToken{pair: true, index: idx, value: *val, raw: p}
	}
	return tokens
}

// pairValues collapses a token stream into index -> value. Later pairs for
// the same index overwrite earlier ones.
func pairValues(tokens []tripletToken) map[int]float64 {
	values := make(map[int]float64)
	for _, t := range tokens {
		if t.pair {
			values[t.index] = t.value
		}
	}
	return values
}

// ParseEWSTripletFile decodes every row of an index/flag/value gauge file.
// Discharge and the other pair parameters are taken exactly as the CSV gives
// them, including zero: on this hardware a zero discharge is a real physical
// reading, distinguishable from "not reported" only by the triplet being
// absent. The parameters listed in the layout's Substituted set are the
// exception: their zero or absent readings are noise and are replaced by the
// cached last-known-good value. The cache is read-only here; it is seeded
// from history at startup.
func ParseEWSTripletFile(cfg station.Config, store cache.Store, content string) []domain.EWSRecord {
	records := make([]domain.EWSRecord, 0, 8)
	for _, line := range splitLines(strings.TrimSpace(content)) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, parseTripletLine(cfg, store, SplitFields(line)))
	}
	return records
}

func parseTripletLine(cfg station.Config, store cache.Store, parts []string) domain.EWSRecord {
	layout := cfg.Triplet
	values := pairValues(scanTriplets(parts, layout.Flag))

	substituted := make(map[string]bool, len(layout.Substituted))
	for _, p := range layout.Substituted {
		substituted[p] = true
	}

	pairVal := func(param string) *float64 {
		idx, ok := layout.Pairs[param]
		if !ok {
			return nil
		}
		v, present := values[idx]
		if substituted[param] {
			if present && v != 0 {
				return &v
			}
			return store.Get(cfg.StationID, param)
		}
		if !present {
			return nil
		}
		return &v
	}

	auxVal := func(param string) *float64 {
		col, ok := layout.Aux[param]
		if !ok {
			return nil
		}
		return floatAt(parts, col)
	}

	return domain.EWSRecord{
		StationID:           cfg.StationID,
		DeviceID:            cfg.DeviceID,
		UID:                 cfg.UID,
		Timestamp:           domain.Now(),
		SurfaceVelocity:     floatAt(parts, layout.SurfaceVelocityCol),
		AvgSurfaceVelocity:  pairVal(domain.ParamAvgSurfaceVelocity),
		WaterDistSensor:     pairVal(domain.ParamWaterDistSensor),
		WaterLevel:          pairVal(domain.ParamWaterLevel),
		WaterDischarge:      pairVal(domain.ParamWaterDischarge),
		TiltAngle:           pairVal(domain.ParamTiltAngle),
		FlowDirection:       pairVal(domain.ParamFlowDirection),
		SNR:                 nil,
		InternalTemperature: auxVal(domain.ParamInternalTemperature),
		ChargeCurrent:       auxVal(domain.ParamChargeCurrent),
		ObservedCurrent:     auxVal(domain.ParamObservedCurrent),
		BatteryVoltage:      auxVal(domain.ParamBatteryVoltage),
		SolarPanelTracking:  auxVal(domain.ParamSolarPanelTracking),
	}
}
