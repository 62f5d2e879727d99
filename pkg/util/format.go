package util

import (
	"fmt"
	"strings"
)

// OrDash substitutes "-" for an empty table cell value.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// JoinOrDash renders items as a comma-separated cell, "-" when there are
// none.
func JoinOrDash(items ...string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// FormatBytes renders a byte count with a human-readable unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n) / unit
	for _, suffix := range []string{"KB", "MB", "GB", "TB", "PB"} {
		if v < unit {
			return fmt.Sprintf("%.1f %s", v, suffix)
		}
		v /= unit
	}
	return fmt.Sprintf("%.1f EB", v)
}
