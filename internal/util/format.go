package util

import (
	"fmt"
)

// FormatCallDuration renders the duration suffix appended to call headers,
// e.g. " (42s)". Zero duration yields an empty string so headers stay clean.
func FormatCallDuration(seconds float64) string {
	if seconds == 0 {
		return ""
	}
	return fmt.Sprintf(" (%.0fs)", seconds)
}
