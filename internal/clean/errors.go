package clean

import (
	"io/fs"

	"github.com/cockroachdb/errors"
)

// Failure classes. Every one except ErrFatalIO is handled at the task
// boundary and recorded in the task's Outcome.
var (
	ErrToolNotFound          = errors.New("tool not found")
	ErrTargetNotFound        = errors.New("target not found")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrExternalCommandFailed = errors.New("external command failed")
	ErrProtectedPath         = errors.New("refusing to clean protected path")
	ErrFatalIO               = errors.New("interactive input unavailable")
)

// Hints attached to permission failures. Locations under the home
// directory are guarded by macOS privacy controls rather than ownership.
const (
	sudoHint           = "re-run with sudo to clean locations owned by root"
	fullDiskAccessHint = "grant your terminal Full Disk Access in System Settings > Privacy & Security " +
		"and run again; sudo does not lift this restriction"
)

// classify marks filesystem errors with the matching failure class while
// keeping the original message and cause. hint is attached to permission
// failures.
func classify(err error, hint string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return errors.Mark(err, ErrTargetNotFound)
	case errors.Is(err, fs.ErrPermission):
		return errors.WithHint(errors.Mark(err, ErrPermissionDenied), hint)
	}
	return err
}

// Kind returns the failure class of err, or nil when err is nil or
// unclassified.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		ErrFatalIO,
		ErrToolNotFound,
		ErrProtectedPath,
		ErrPermissionDenied,
		ErrTargetNotFound,
		ErrExternalCommandFailed,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}
