package geometrics

import (
	"fmt"
	"math"
)

// NotAvailable is shown in place of a value the caller does not have.
const NotAvailable = "N/A"

const (
	secondsPerMinute = 60
	minutesPerHour   = 60
	metersPerKm      = 1000
)

// FormatDistance renders meters as "<n> m" below one kilometer and "<n.nn> km" otherwise.
// NaN and infinities render as NotAvailable.
func FormatDistance(d float64) string {
	if !finite(d) {
		return NotAvailable
	}
	if d < metersPerKm {
		return fmt.Sprintf("%d m", int64(math.Round(d)))
	}
	return fmt.Sprintf("%.2f km", d/metersPerKm)
}

// FormatDuration renders seconds as "<s> seconds", "<m> min <s> sec" or "<h> hr <m> min".
// NaN and infinities render as NotAvailable.
func FormatDuration(s float64) string {
	if !finite(s) {
		return NotAvailable
	}
	if s < secondsPerMinute {
		return fmt.Sprintf("%d seconds", int64(math.Round(s)))
	}

	minutes := int64(math.Floor(s / secondsPerMinute))
	if minutes < minutesPerHour {
		remaining := int64(math.Round(math.Mod(s, secondsPerMinute)))
		return fmt.Sprintf("%d min %d sec", minutes, remaining)
	}

	return fmt.Sprintf("%d hr %d min", minutes/minutesPerHour, minutes%minutesPerHour)
}

// FormatExecutionTime renders milliseconds with microsecond precision.
func FormatExecutionTime(ms float64) string {
	if !finite(ms) {
		return NotAvailable
	}
	return fmt.Sprintf("%.3f ms", ms)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
