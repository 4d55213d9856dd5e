package parser

import (
	"errors"
	"fmt"
	"strings"

	"hydro-telemetry/internal/domain"
	"hydro-telemetry/internal/station"
)

// headerToken identifies the AWS header row, matched case-insensitively
// anywhere in the line.
const headerToken = "date time"

// ErrNoHeader is returned when a file contains no recognizable header row.
// It is the only condition that rejects an entire AWS file.
var ErrNoHeader = errors.New("no header row found")

// ParseAWSFile decodes the latest observation from a weather-station file.
// Only the last data row is read: these dashboard stations want the freshest
// reading, and earlier rows in the same dump are deliberately ignored.
// Returns (nil, nil) when the file has a header but no data rows.
func ParseAWSFile(cfg station.Config, content string) (*domain.AWSRecord, error) {
	lines := make([]string, 0, 16)
	for _, l := range splitLines(strings.TrimSpace(content)) {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}

	headerIndex := -1
	for i, l := range lines {
		if strings.Contains(strings.ToLower(l), headerToken) {
			headerIndex = i
			break
		}
	}
	if headerIndex == -1 {
		return nil, fmt.Errorf("station %s: %w", cfg.Key(), ErrNoHeader)
	}

	dataLines := lines[headerIndex+1:]
	if len(dataLines) == 0 {
		return nil, nil
	}

	headers := SplitFields(lines[headerIndex])
	values := SplitFields(dataLines[len(dataLines)-1])

	getVal := func(param string) *float64 {
		candidates := cfg.AWS.Fields[param]
		resolved := make([]*float64, 0, len(candidates))
		for _, name := range candidates {
			idx := ResolveColumn(headers, name)
			if idx == -1 {
				resolved = append(resolved, nil)
				continue
			}
			resolved = append(resolved, floatAt(values, idx))
		}
		return coalesceValues(resolved...)
	}

	ts, ok := parseLoggerTimestamp(tokenAt(values, 0))
	if !ok {
		ts = domain.Now()
	}

	return &domain.AWSRecord{
		DeviceID:         cfg.DeviceID,
		StationID:        cfg.StationID,
		ServicesID:       cfg.ServicesID,
		UID:              cfg.UID,
		EventStateID:     domain.EventStateInstant,
		Timestamp:        ts,
		PIR:              getVal(domain.ParamPIR),
		AvgPIR:           getVal(domain.ParamAvgPIR),
		WindSpeed:        getVal(domain.ParamWindSpeed),
		WindDirection:    getVal(domain.ParamWindDirection),
		Rain:             getVal(domain.ParamRain),
		Temperature:      getVal(domain.ParamTemperature),
		RelativeHumidity: getVal(domain.ParamRelativeHumidity),
		Pressure:         getVal(domain.ParamPressure),
		BucketWeight:     getVal(domain.ParamBucketWeight),
		Precipitation:    getVal(domain.ParamPrecipitation),
	}, nil
}
