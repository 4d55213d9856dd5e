// Package forecast produces the dashboard's short-horizon extrapolation of a
// scalar sensor series. It is deliberately lightweight: a single trend is
// estimated from two moving averages and held constant across the horizon.
package forecast

import "math"

const (
	// DefaultSteps covers 12 hours of 15-minute intervals.
	DefaultSteps = 48
	// shortWindow is the fast moving average: the last 2 hours of readings.
	shortWindow = 8
	// longWindow is the slow moving average: the last 8 hours of readings.
	longWindow = 32
	// damping smooths the short/long divergence into a per-step trend.
	damping = 0.25
	// minSeriesLen is the history below which the forecast degenerates to a
	// flat line of the last observed value.
	minSeriesLen = 10
)

// Forecast extrapolates a series for steps future points. With fewer than
// minSeriesLen observations it returns a flat line of the last value (zero
// for an empty series); otherwise each point advances by a fixed trend of
// (shortAvg - longAvg) * damping. Values are rounded to 2 decimal places.
// Inputs are assumed numerically clean; coercion happens upstream.
func Forecast(series []float64, steps int) []float64 {
	out := make([]float64, 0, steps)

	if len(series) < minSeriesLen {
		last := 0.0
		if len(series) > 0 {
			last = series[len(series)-1]
		}
		for i := 0; i < steps; i++ {
			out = append(out, last)
		}
		return out
	}

	last := series[len(series)-1]

	maShort, ok := movingAverage(series, shortWindow)
	if !ok {
		maShort = last
	}
	maLong, ok := movingAverage(series, longWindow)
	if !ok {
		maLong = last
	}

	trend := (maShort - maLong) * damping

	value := last
	for i := 0; i < steps; i++ {
		value += trend
		out = append(out, round2(value))
	}
	return out
}

// movingAverage averages the last size points; false when the series is
// shorter than the window.
func movingAverage(series []float64, size int) (float64, bool) {
	if len(series) < size {
		return 0, false
	}
	sum := 0.0
	for _, v := range series[len(series)-size:] {
		sum += v
	}
	return sum / float64(size), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
