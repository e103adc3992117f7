package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaths(t *testing.T) {
	p := NewPaths("/Users/alex", "/var/folders/xy/T", "")

	assert.Equal(t, "/Users/alex/Library", p.Library)
	assert.Equal(t, "/Users/alex/Library/Caches", p.Caches)
	assert.Equal(t, "/Users/alex/Library/Logs", p.Logs)
	assert.Equal(t, "/Users/alex/.Trash", p.Trash)
	assert.Equal(t, "/Users/alex/Downloads", p.Downloads)
	assert.Equal(t, "/var/folders/xy/T", p.UserTemp)
	assert.Equal(t, "/Library/Caches", p.SystemCaches)
	assert.Equal(t, "/private/tmp", p.SystemTmp)
}

func TestNewPaths_CustomDownloads(t *testing.T) {
	p := NewPaths("/Users/alex", "/tmp", "/Volumes/Data/Downloads")
	assert.Equal(t, "/Volumes/Data/Downloads", p.Downloads)
}

func TestUserTemp_FromEnv(t *testing.T) {
	t.Setenv("TMPDIR", "/var/folders/ab/cd/T/")
	assert.Equal(t, filepath.Clean("/var/folders/ab/cd/T"), userTemp())
}

func TestNeverDeletePaths_IncludeHomeAndRoot(t *testing.T) {
	p := NewPaths("/Users/alex", "/tmp", "")
	never := p.GetNeverDeletePaths()

	assert.Contains(t, never, "/")
	assert.Contains(t, never, "/Users/alex")
	assert.Contains(t, never, "/Users/alex/Library")
	assert.NotContains(t, never, p.Caches)
}

func TestAllowedRoots(t *testing.T) {
	p := NewPaths("/Users/alex", "/var/folders/xy/abc123/T", "")
	assert.Equal(t, []string{
		"/Users/alex",
		"/Library/Caches",
		"/Library/Logs",
		"/private/var/tmp",
		"/private/tmp",
		"/var/folders/xy/abc123",
	}, p.AllowedRoots())

	// A temp dir directly below / never widens the roots to /.
	p = NewPaths("/Users/alex", "/tmp", "")
	assert.NotContains(t, p.AllowedRoots(), "/")
	assert.Contains(t, p.AllowedRoots(), "/tmp")
}
