// Package format provides the shared display formatting helpers used by
// the overlay drivers and the TUI.
package format

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Bytes renders a byte count as a compact IEC string ("12 MiB").
func Bytes(n uint64) string {
	return humanize.IBytes(n)
}

// BytesPerSecond renders a byte rate ("1.5 MiB/s").
func BytesPerSecond(n float64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n)) + "/s"
}

// Count renders a large integer with thousands separators.
func Count(n uint64) string {
	return humanize.Comma(int64(n))
}

// Millis renders a duration measured in milliseconds ("16.67 ms").
func Millis(ms float64) string {
	return fmt.Sprintf("%.2f ms", ms)
}

// FPS renders a frames-per-second value ("59.9 FPS").
func FPS(v float64) string {
	return fmt.Sprintf("%.1f FPS", v)
}

// Duration renders a time.Duration as a concise human string.
// Returns strings like "1s", "5m 30s", "2h 15m", "3d 4h".
func Duration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	if d < time.Second {
		return "0s"
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// TruncateWithEllipsis truncates a string to maxWidth runes, appending
// "..." when something was cut. Below 4 runes the string is
// hard-truncated without the suffix.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}
	if maxWidth < 4 {
		return string(runes[:maxWidth])
	}
	return string(runes[:maxWidth-3]) + "..."
}
