package core

import (
	"context"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// maxOutputLen caps how much command output is carried in an error message.
const maxOutputLen = 200

// CommandResult is what an external command left behind.
type CommandResult struct {
	ExitCode int
	Output   string
}

// Runner locates and runs external executables.
//
//go:generate go run go.uber.org/mock/mockgen@latest -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE
type Runner interface {
	// LookPath returns the absolute path of the named executable.
	LookPath(name string) (string, error)

	// Run executes argv and waits for it to exit. A non-nil error means the
	// command could not be launched or exited non-zero.
	Run(ctx context.Context, argv []string) (CommandResult, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by real subprocesses.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run implements Runner. Stdout and stderr are captured together. No
// timeout is applied; only ctx cancellation stops the child.
func (r *ExecRunner) Run(ctx context.Context, argv []string) (CommandResult, error) {
	if len(argv) == 0 {
		return CommandResult{ExitCode: -1}, errors.New("command is empty")
	}

	// Execute the command directly, never through a shell.
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	output, err := cmd.CombinedOutput()
	result := CommandResult{Output: strings.TrimSpace(string(output))}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, errors.Wrap(ctxErr, "command interrupted")
		}
		return result, describeExitError(err, result)
	}
	return result, nil
}

// describeExitError wraps an exec error with the exit code and a
// truncated copy of the command output.
func describeExitError(err error, result CommandResult) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out := TruncateOutput(result.Output)
		if out != "" {
			return errors.Newf("exit code %d: %s", result.ExitCode, out)
		}
		return errors.Newf("exit code %d", result.ExitCode)
	}

	return errors.Wrap(err, "launch failed")
}

// TruncateOutput trims s to maxOutputLen bytes on a valid UTF-8 boundary,
// appending an ellipsis when anything was cut.
func TruncateOutput(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxOutputLen {
		return s
	}
	s = s[:maxOutputLen]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s + "..."
}
