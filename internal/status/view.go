package status

import (
	"fmt"
	"strings"

	"github.com/lakshaymaurya-felt/macmole/internal/core"
)

// barWidth is the number of cells in a usage bar.
const barWidth = 30

// usageBar renders pct as a fixed-width bar of filled and empty cells.
func usageBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// RenderSnapshot formats one snapshot as a single line.
func RenderSnapshot(label string, s DiskSnapshot) string {
	return fmt.Sprintf("%-7s %s %5.1f%%  %s used of %s, %s free",
		label,
		usageBar(s.UsedPercent, barWidth),
		s.UsedPercent,
		core.FormatSize(int64(s.Used)),
		core.FormatSize(int64(s.Total)),
		core.FormatSize(int64(s.Free)))
}

// RenderComparison returns the before/after lines and the reclaimed total.
func RenderComparison(before, after DiskSnapshot) []string {
	return []string{
		fmt.Sprintf("Disk usage of %s", before.Path),
		RenderSnapshot("Before", before),
		RenderSnapshot("After", after),
		fmt.Sprintf("Free space gained: %s", core.FormatSize(Reclaimed(before, after))),
	}
}
