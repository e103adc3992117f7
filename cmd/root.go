package cmd

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/macmole/internal/clean"
)

var (
	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
	rootCmd.Version = versionString()
}

func versionString() string {
	return fmt.Sprintf("%s (%s) built %s", appVersion, appCommit, appDate)
}

var rootCmd = &cobra.Command{
	Use:   "mm",
	Short: "Free up disk space on your Mac",
	Long: `MacMole - Free up disk space on your Mac.

Walks a fixed list of caches, logs, temporary files and tool caches,
shows how much each one holds and asks before deleting anything.
Answer "y" or "yes" to clean an entry; anything else skips it.

Environment:
  MM_DEBUG=1                    show detailed operation logs
  MM_LOG_LEVEL=<level>          debug, info, warn or error
  MM_DOWNLOADS_MIN_AGE_DAYS=<n> age threshold for old installers (default 30)
  NO_COLOR=1                    plain output`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return runClean(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// Reported reports whether err was already printed on the console, so the
// caller only has to set the exit code.
func Reported(err error) bool {
	return errors.Is(err, clean.ErrFatalIO)
}

func init() {
	rootCmd.Version = versionString()
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
