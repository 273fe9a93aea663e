// package physics converts flight-time measurements into jump heights and
// formats durations for display.
//
// A body leaving the ground and landing at the same height spends half its
// flight time rising, so the peak height follows from h = g·(t/2)²/2, or
// equivalently g·t²/8.
package physics

import (
	"fmt"
	"math"
)

// Gravity is standard gravity in m/s².
const Gravity = 9.80665

// HeightFromFlightTime converts a flight time in seconds into a jump height
// in centimeters.
//
// The function is pure and defined for all real inputs. A zero or negative
// flight time has no physical meaning; callers must treat that case as
// "no result" rather than a zero-centimeter jump.
func HeightFromFlightTime(seconds float64) float64 {
	return Gravity * seconds * seconds / 8 * 100
}

// FormatDuration renders a duration in seconds as "MM:SS.mmm".
//
// Every component is floor-truncated, never rounded: 61.9996s renders as
// "01:01.999". Truncation is part of the display contract because the
// formatted value is what users copy and share.
func FormatDuration(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}

	// The nanosecond epsilon absorbs float representation error (65.05s is
	// stored as 65.049999…) without disturbing genuine sub-millisecond
	// digits, so 61.9996 still truncates to .999.
	totalMillis := int64(math.Floor(seconds*1000 + 1e-6))
	minutes := totalMillis / 60000
	secs := (totalMillis % 60000) / 1000
	millis := totalMillis % 1000

	return fmt.Sprintf("%02d:%02d.%03d", minutes, secs, millis)
}
