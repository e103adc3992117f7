package core

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
	"golang.org/x/sys/unix"
)

// IsDarwin reports whether the binary runs on macOS, the only platform the
// cleanup catalog knows the layout of.
func IsDarwin() bool {
	return runtime.GOOS == "darwin"
}

// IsElevated reports whether the process runs with root privileges.
func IsElevated() bool {
	return unix.Geteuid() == 0
}

// PlatformString returns a human-readable platform description.
// Examples: "macOS 14.5 (arm64)", "ubuntu 24.04 (amd64)"
func PlatformString() string {
	platform, _, version, err := host.PlatformInformation()
	if err != nil || platform == "" {
		return fmt.Sprintf("%s (%s)", runtime.GOOS, runtime.GOARCH)
	}

	name := platform
	if IsDarwin() || strings.EqualFold(platform, "darwin") {
		name = "macOS"
	}
	if version == "" {
		return fmt.Sprintf("%s (%s)", name, runtime.GOARCH)
	}
	return fmt.Sprintf("%s %s (%s)", name, version, runtime.GOARCH)
}
