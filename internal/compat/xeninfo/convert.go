package xeninfo

import (
	"math"
	"strconv"
)

// Round rounds half up, so -2.5 gives -2.
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// FahrenheitToCelsius converts and rounds to a whole degree.
func FahrenheitToCelsius(f float64) float64 {
	return Round((f - 32) * (5.0 / 9.0))
}

// MilesToKilometres converts speeds and distances alike.
func MilesToKilometres(miles float64) float64 {
	return Round(miles * 1.609344)
}

// InHgToHPa converts inches of mercury to hectopascals.
func InHgToHPa(inHg float64) float64 {
	return Round(inHg / 0.02953)
}

// metricUnit reports whether unit names the metric unit. An empty unit falls
// back to the snapshot-wide flag.
func metricUnit(unit, metric string, isMetric bool) bool {
	if unit == "" {
		return isMetric
	}
	return unit == metric
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
