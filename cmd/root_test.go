package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/macmole/internal/clean"
)

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "mm", rootCmd.Use)
	assert.Equal(t, "Free up disk space on your Mac", rootCmd.Short)
	assert.Contains(t, rootCmd.Long, `Answer "y" or "yes"`)
	assert.Empty(t, rootCmd.Commands())
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_RejectsArguments(t *testing.T) {
	assert.Error(t, rootCmd.Args(rootCmd, []string{"extra"}))
	assert.NoError(t, rootCmd.Args(rootCmd, nil))
}

func TestSetVersionInfo(t *testing.T) {
	original := []string{appVersion, appCommit, appDate}
	defer SetVersionInfo(original[0], original[1], original[2])

	SetVersionInfo("1.2.3", "abc123", "2026-01-02")
	assert.Equal(t, "1.2.3 (abc123) built 2026-01-02", rootCmd.Version)
}

func TestRootCmd_ClosedInputAbortsBeforeAnyTask(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{})
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, clean.ErrFatalIO, clean.Kind(err))
	assert.True(t, Reported(err))

	s := out.String()
	assert.Contains(t, s, "[1/24] User caches")
	assert.Contains(t, s, "Clear user application caches? (y/n): ")
	assert.NotContains(t, s, "[2/24]")
	assert.NotContains(t, s, "Cleanup complete")
	assert.Equal(t, 1, strings.Count(s, "[ERROR]"))
}

func TestReported(t *testing.T) {
	assert.False(t, Reported(errors.New("MM_LOG_LEVEL: unknown level")))
	assert.False(t, Reported(context.Canceled))
	assert.True(t, Reported(errors.Mark(errors.New("input closed"), clean.ErrFatalIO)))
}
