// Package units formats distances, durations and paces for display under
// the metric or imperial unit system.
package units

import "fmt"

const (
	metersPerMile = 1609.34
	metersPerKm   = 1000.0
	kmPerMile     = 1.60934
)

// FormatDistance formats a distance in meters as kilometers or miles.
// Values below 10 units get two decimal places, larger values one.
func FormatDistance(meters float64, imperial bool) string {
	unit := "km"
	div := metersPerKm
	if imperial {
		unit = "mi"
		div = metersPerMile
	}

	v := meters / div
	if v < 10 {
		return fmt.Sprintf("%.2f %s", v, unit)
	}
	return fmt.Sprintf("%.1f %s", v, unit)
}

// FormatDuration formats a duration in seconds as H:MM:SS, or M:SS when
// under an hour. Fractional seconds are floored, never rounded up.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	mins := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// FormatPace formats a pace in seconds per kilometer as "M:SS min/km" (or
// min/mi when imperial). The 0 sentinel meaning "pace undefined" renders
// as "-".
func FormatPace(secPerKm float64, imperial bool) string {
	if secPerKm == 0 {
		return "-"
	}

	perUnit := secPerKm
	unit := "km"
	if imperial {
		perUnit = secPerKm * kmPerMile
		unit = "mi"
	}

	mins := int(perUnit) / 60
	secs := int(perUnit) % 60
	return fmt.Sprintf("%d:%02d min/%s", mins, secs, unit)
}
