package cmd

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/lakshaymaurya-felt/macmole/internal/clean"
	"github.com/lakshaymaurya-felt/macmole/internal/config"
	"github.com/lakshaymaurya-felt/macmole/internal/core"
	"github.com/lakshaymaurya-felt/macmole/internal/status"
	"github.com/lakshaymaurya-felt/macmole/internal/ui"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newLogger builds the stderr logger used for debug output.
func newLogger(w io.Writer, settings config.Settings) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           settings.Level(),
		Prefix:          "mm",
		ReportTimestamp: settings.Debug,
	})
}

// runClean walks the full catalog interactively and reports disk usage
// around it.
func runClean(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	logger := newLogger(errOut, settings)
	console := ui.NewConsole(in, out, !settings.NoColor && isTerminal(out))

	if !core.IsDarwin() {
		console.Warn("Running on %s; cleanup locations assume macOS", runtime.GOOS)
	}
	console.Info("Platform: %s", core.PlatformString())
	if core.IsElevated() {
		console.Info("Running as root")
	}

	paths := config.ResolvePaths()
	logger.Debug("resolved paths", "home", paths.Home, "temp", paths.UserTemp, "downloads", paths.Downloads)
	catalog := clean.DefaultCatalog(paths, settings.DownloadsMinAgeDays)

	probe := status.NewProbe()
	before, beforeErr := probe.Snapshot(status.DefaultVolume)
	if beforeErr != nil {
		logger.Warn("cannot read disk usage", "err", beforeErr)
	} else {
		console.Plain(status.RenderSnapshot("Disk", before))
	}

	files := core.OSFiles()
	engine := clean.NewEngine(console, files, core.NewExecRunner(),
		clean.WithLogger(logger),
		clean.WithElevated(core.IsElevated()),
		clean.WithProtectedPaths(paths.GetNeverDeletePaths()),
		clean.WithAllowedRoots(paths.AllowedRoots()),
		clean.WithHome(paths.Home),
	)

	summary, err := engine.Run(ctx, catalog)
	for _, w := range files.Warnings() {
		logger.Debug("skipped while sizing", "detail", w)
	}
	if err != nil {
		return err
	}
	logger.Debug("catalog finished",
		"completed", summary.Count(clean.Completed),
		"skipped", summary.Count(clean.SkippedByUser),
		"failed", summary.Count(clean.Failed))

	if beforeErr != nil {
		return nil
	}
	after, err := probe.Snapshot(status.DefaultVolume)
	if err != nil {
		logger.Warn("cannot read disk usage", "err", err)
		return nil
	}
	console.Banner("Disk space", status.RenderComparison(before, after))
	return nil
}
