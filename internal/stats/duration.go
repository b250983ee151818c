package stats

import "fmt"

// FormatDuration renders whole seconds as days:hours:minutes:seconds,
// e.g. 360 -> "0:00:06:00". Negative input is rendered with a leading sign.
func FormatDuration(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	days := seconds / 86400
	hours := seconds % 86400 / 3600
	minutes := seconds % 3600 / 60
	secs := seconds % 60
	return fmt.Sprintf("%s%d:%02d:%02d:%02d", sign, days, hours, minutes, secs)
}
