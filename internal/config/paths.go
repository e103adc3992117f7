package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Paths holds every filesystem location the cleanup catalog touches.
// All user locations hang off Home; system locations are fixed.
type Paths struct {
	// Home is the invoking user's home directory.
	Home string

	// Library is ~/Library.
	Library string

	// Caches is the user application-cache root (~/Library/Caches).
	Caches string

	// Logs is the user application-log root (~/Library/Logs).
	Logs string

	// Trash is the user's trash directory (~/.Trash).
	Trash string

	// Downloads is the user's downloads directory.
	Downloads string

	// UserTemp is the per-user temporary directory ($TMPDIR).
	UserTemp string

	SystemCaches string
	SystemLogs   string
	SystemVarTmp string
	SystemTmp    string
}

// System locations shared by every user.
const (
	systemCaches = "/Library/Caches"
	systemLogs   = "/Library/Logs"
	systemVarTmp = "/private/var/tmp"
	systemTmp    = "/private/tmp"
)

// userTemp returns $TMPDIR, falling back to the OS default.
func userTemp() string {
	if t := os.Getenv("TMPDIR"); t != "" {
		return filepath.Clean(t)
	}
	return filepath.Clean(os.TempDir())
}

// downloads returns the user's download directory, falling back to
// ~/Downloads when the platform reports none.
func downloads(home string) string {
	if d := xdg.UserDirs.Download; d != "" {
		return d
	}
	return filepath.Join(home, "Downloads")
}

// ResolvePaths builds Paths for the current user.
func ResolvePaths() Paths {
	home := xdg.Home
	return NewPaths(home, userTemp(), downloads(home))
}

// NewPaths builds Paths rooted at the given home, temp and downloads
// directories.
func NewPaths(home, tempDir, downloadsDir string) Paths {
	library := filepath.Join(home, "Library")
	if downloadsDir == "" {
		downloadsDir = filepath.Join(home, "Downloads")
	}

	return Paths{
		Home:         home,
		Library:      library,
		Caches:       filepath.Join(library, "Caches"),
		Logs:         filepath.Join(library, "Logs"),
		Trash:        filepath.Join(home, ".Trash"),
		Downloads:    downloadsDir,
		UserTemp:     tempDir,
		SystemCaches: systemCaches,
		SystemLogs:   systemLogs,
		SystemVarTmp: systemVarTmp,
		SystemTmp:    systemTmp,
	}
}

// SystemRoots returns the non-home locations cleanup may touch. The
// per-user temp root is the parent of $TMPDIR, which also holds the
// per-user cache directory "C"; a $TMPDIR directly below / stands alone.
func (p Paths) SystemRoots() []string {
	temp := p.UserTemp
	if parent := filepath.Dir(temp); parent != "/" && parent != "." {
		temp = parent
	}
	return []string{p.SystemCaches, p.SystemLogs, p.SystemVarTmp, p.SystemTmp, temp}
}

// AllowedRoots returns every directory a cleanup target may lie under.
func (p Paths) AllowedRoots() []string {
	return append([]string{p.Home}, p.SystemRoots()...)
}

// GetNeverDeletePaths returns directories whose own contents must never be
// erased wholesale, even though cleanup works below them.
func (p Paths) GetNeverDeletePaths() []string {
	return []string{
		"/",
		"/System",
		"/Library",
		"/Applications",
		"/Users",
		"/private",
		"/private/var",
		p.Home,
		p.Library,
		filepath.Join(p.Library, "Mail"),
		filepath.Join(p.Library, "Containers"),
		filepath.Join(p.Library, "Developer"),
	}
}
