package status

import (
	"github.com/cockroachdb/errors"
	"github.com/shirou/gopsutil/v4/disk"
)

// DefaultVolume is the volume whose usage is reported around a cleanup.
const DefaultVolume = "/"

// DiskSnapshot is the usage of one volume at a point in time.
type DiskSnapshot struct {
	Path        string
	Total       uint64
	Free        uint64
	Used        uint64
	UsedPercent float64
}

// UsageFunc reports usage for a mount path. disk.Usage satisfies it.
type UsageFunc func(path string) (*disk.UsageStat, error)

// Probe takes disk snapshots.
type Probe struct {
	usage UsageFunc
}

// NewProbe returns a Probe backed by gopsutil.
func NewProbe() *Probe {
	return &Probe{usage: disk.Usage}
}

// NewProbeWith returns a Probe using a custom usage source.
func NewProbeWith(usage UsageFunc) *Probe {
	return &Probe{usage: usage}
}

// Snapshot reads the current usage of path.
func (p *Probe) Snapshot(path string) (DiskSnapshot, error) {
	stat, err := p.usage(path)
	if err != nil {
		return DiskSnapshot{}, errors.Wrapf(err, "disk usage of %s", path)
	}
	return DiskSnapshot{
		Path:        path,
		Total:       stat.Total,
		Free:        stat.Free,
		Used:        stat.Used,
		UsedPercent: stat.UsedPercent,
	}, nil
}

// Reclaimed returns how many bytes of free space appeared between before
// and after. Space consumed by other processes in between can make the
// difference negative, which is reported as zero.
func Reclaimed(before, after DiskSnapshot) int64 {
	if after.Free <= before.Free {
		return 0
	}
	return int64(after.Free - before.Free)
}
