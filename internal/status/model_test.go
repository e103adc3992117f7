package status

import (
	"errors"
	"strings"
	"testing"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gib = 1 << 30

func fixedUsage(free uint64) UsageFunc {
	return func(path string) (*disk.UsageStat, error) {
		total := uint64(100 * gib)
		return &disk.UsageStat{
			Path:        path,
			Total:       total,
			Free:        free,
			Used:        total - free,
			UsedPercent: float64(total-free) / float64(total) * 100,
		}, nil
	}
}

func TestSnapshot(t *testing.T) {
	s, err := NewProbeWith(fixedUsage(25 * gib)).Snapshot("/")
	require.NoError(t, err)

	assert.Equal(t, "/", s.Path)
	assert.Equal(t, uint64(100*gib), s.Total)
	assert.Equal(t, uint64(75*gib), s.Used)
	assert.InDelta(t, 75.0, s.UsedPercent, 0.001)
}

func TestSnapshot_Error(t *testing.T) {
	probe := NewProbeWith(func(string) (*disk.UsageStat, error) {
		return nil, errors.New("no such volume")
	})

	_, err := probe.Snapshot("/Volumes/Gone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/Volumes/Gone")
}

func TestReclaimed(t *testing.T) {
	before := DiskSnapshot{Free: 10 * gib}
	assert.Equal(t, int64(2*gib), Reclaimed(before, DiskSnapshot{Free: 12 * gib}))
	assert.Zero(t, Reclaimed(before, DiskSnapshot{Free: 9 * gib}))
}

func TestRenderComparison(t *testing.T) {
	probe := NewProbeWith(fixedUsage(25 * gib))
	before, err := probe.Snapshot("/")
	require.NoError(t, err)
	after := before
	after.Free += gib
	after.Used -= gib
	after.UsedPercent = 74

	lines := RenderComparison(before, after)
	require.Len(t, lines, 4)
	assert.Equal(t, "Disk usage of /", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Before "))
	assert.Contains(t, lines[1], " 75.0%")
	assert.Contains(t, lines[1], "75 GiB used of 100 GiB, 25 GiB free")
	assert.Contains(t, lines[2], "26 GiB free")
	assert.Equal(t, "Free space gained: 1.0 GiB", lines[3])
}

func TestUsageBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", 10), usageBar(-5, 10))
	assert.Equal(t, strings.Repeat("█", 5)+strings.Repeat("░", 5), usageBar(50, 10))
	assert.Equal(t, strings.Repeat("█", 10), usageBar(150, 10))
}
