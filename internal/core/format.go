package core

import (
	"github.com/dustin/go-humanize"
)

// EmptySize is what FormatSize reports for missing or empty locations.
const EmptySize = "0B"

// FormatSize renders a byte count in binary units, e.g. "1.5 KiB" or "3.2 GiB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return EmptySize
	}
	return humanize.IBytes(uint64(bytes))
}
