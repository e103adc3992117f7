package core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Success(t *testing.T) {
	r := NewExecRunner()

	res, err := r.Run(context.Background(), []string{"sh", "-c", "echo cleaned"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "cleaned", res.Output)
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	r := NewExecRunner()

	res, err := r.Run(context.Background(), []string{"sh", "-c", "echo boom >&2; exit 3"})
	require.Error(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "exit code 3: boom", err.Error())
}

func TestExecRunner_LaunchFailure(t *testing.T) {
	r := NewExecRunner()

	res, err := r.Run(context.Background(), []string{"definitely-not-a-real-binary-xyz"})
	require.Error(t, err)
	assert.Equal(t, -1, res.ExitCode)
	assert.Contains(t, err.Error(), "launch failed")
}

func TestExecRunner_EmptyCommand(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), nil)
	assert.EqualError(t, err, "command is empty")
}

func TestExecRunner_LookPath(t *testing.T) {
	r := NewExecRunner()

	path, err := r.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = r.LookPath("definitely-not-a-real-binary-xyz")
	assert.Error(t, err)
}

func TestTruncateOutput(t *testing.T) {
	assert.Equal(t, "short", TruncateOutput("  short \n"))

	long := strings.Repeat("x", 250)
	got := TruncateOutput(long)
	assert.Len(t, got, maxOutputLen+3)
	assert.True(t, strings.HasSuffix(got, "..."))

	// A multi-byte rune straddling the cut point is dropped, not split.
	multi := strings.Repeat("a", maxOutputLen-1) + "é" + "tail"
	got = TruncateOutput(multi)
	assert.Equal(t, strings.Repeat("a", maxOutputLen-1)+"...", got)
}
