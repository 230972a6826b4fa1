package utils

import "fmt"

// FormatBillNo formats a bill number from the per-day counter, e.g.
// FormatBillNo("DWL", "20261024", 17) -> "DWL-20261024-0017".
func FormatBillNo(prefix, dateCompact string, counter int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, dateCompact, counter)
}
