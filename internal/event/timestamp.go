package event

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTimestamp renders seconds as "H:MM:SS", or "M:SS" under one hour.
// Fractional seconds are truncated, matching the timestamp index format.
func FormatTimestamp(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int(sec)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// ParseTimestamp is the inverse of FormatTimestamp: "H:MM:SS" or "M:SS"
// back to whole seconds.
func ParseTimestamp(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", s)
		}
		total = total*60 + n
	}
	return total, nil
}
