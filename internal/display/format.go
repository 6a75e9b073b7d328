package display

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatBytes returns a human-readable IEC size (e.g. "512 B", "1.5 KiB",
// "700 MiB"). Negative values are formatted with a leading minus.
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatBitrateLabel returns a short label for bitrate in kbps (e.g. "1200 kbps").
// Non-positive values mean the encoder picks the rate.
func FormatBitrateLabel(kbps int64) string {
	if kbps <= 0 {
		return "encoder default"
	}
	if kbps < 1000 {
		return fmt.Sprintf("%d kbps", kbps)
	}
	return fmt.Sprintf("%.1f Mbps", float64(kbps)/1000)
}

// FormatGeometry returns "WxH" for a pixel size.
func FormatGeometry(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

// FormatThroughput returns frames per second of wall time, e.g. "42.5 frames/s".
func FormatThroughput(frames int, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f frames/s", float64(frames)/elapsed.Seconds())
}
