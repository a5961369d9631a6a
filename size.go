package torrentinfo

import "fmt"

const (
	kib = 1 << (10 * (iota + 1))
	mib
	gib
	tib
)

// FormatSize renders a byte count with binary units. Counts below 1024 are shown as whole bytes,
// everything else with two decimals.
func FormatSize(n int64) string {
	switch {
	case n < kib:
		return fmt.Sprintf("%d bytes", n)
	case n < mib:
		return fmt.Sprintf("%.2f KB", float64(n)/kib)
	case n < gib:
		return fmt.Sprintf("%.2f MB", float64(n)/mib)
	case n < tib:
		return fmt.Sprintf("%.2f GB", float64(n)/gib)
	default:
		return fmt.Sprintf("%.2f TB", float64(n)/tib)
	}
}
