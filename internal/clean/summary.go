package clean

import (
	"fmt"
	"strings"

	"github.com/lakshaymaurya-felt/macmole/internal/core"
)

// Status is the terminal state of one task.
type Status int

const (
	Completed Status = iota
	SkippedByUser
	SkippedToolMissing
	Failed
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case SkippedByUser:
		return "skipped"
	case SkippedToolMissing:
		return "tool-missing"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Outcome records what happened to one task.
type Outcome struct {
	TaskID int
	Name   string
	Status Status

	// Reason is set for Failed and SkippedToolMissing.
	Reason error

	// SizeBefore is how many bytes the task was about to delete, measured
	// across all targets before deletion.
	SizeBefore int64
}

// Summary collects outcomes in catalog order.
type Summary struct {
	Outcomes []Outcome
}

// Statuses returns the status of every processed task in order.
func (s Summary) Statuses() []Status {
	out := make([]Status, len(s.Outcomes))
	for i, o := range s.Outcomes {
		out[i] = o.Status
	}
	return out
}

// Count returns how many tasks ended in status st.
func (s Summary) Count(st Status) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == st {
			n++
		}
	}
	return n
}

// Measured returns the total size completed tasks measured before deleting.
func (s Summary) Measured() int64 {
	var total int64
	for _, o := range s.Outcomes {
		if o.Status == Completed {
			total += o.SizeBefore
		}
	}
	return total
}

func (s Summary) names(st Status) []string {
	var names []string
	for _, o := range s.Outcomes {
		if o.Status == st {
			names = append(names, o.Name)
		}
	}
	return names
}

// Lines renders the human-readable banner body.
func (s Summary) Lines() []string {
	list := func(names []string) string {
		if len(names) == 0 {
			return "none"
		}
		return strings.Join(names, ", ")
	}

	return []string{
		fmt.Sprintf("Cleaned (%d):  %s", s.Count(Completed), list(s.names(Completed))),
		fmt.Sprintf("Skipped (%d):  %s", s.Count(SkippedByUser), list(s.names(SkippedByUser))),
		fmt.Sprintf("No tool (%d):  %s", s.Count(SkippedToolMissing), list(s.names(SkippedToolMissing))),
		fmt.Sprintf("Failed  (%d):  %s", s.Count(Failed), list(s.names(Failed))),
		fmt.Sprintf("Measured before cleanup: %s", core.FormatSize(s.Measured())),
	}
}
