// Package utils holds small display helpers shared by the CLI and the
// status endpoint.
package utils

import "fmt"

// FormatBytes renders a byte count for humans, e.g. "2.4 MB".
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for rest := n / unit; rest >= unit; rest /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatFileSize renders an object size as reported by a listing. Listing
// sizes are int64; a negative size means the store never reported one.
func FormatFileSize(size int64) string {
	if size < 0 {
		return "0 B"
	}
	return FormatBytes(uint64(size))
}
