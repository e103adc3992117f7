package clean

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/lakshaymaurya-felt/macmole/internal/core"
)

// Console is the interactive channel the engine talks through.
type Console interface {
	Announce(index, total int, description string)
	Ask(question string) (string, error)
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Banner(title string, lines []string)
}

// FileSystem measures and deletes cleanup targets.
type FileSystem interface {
	Resolve(pattern string) ([]string, error)
	SizeOf(path string) (int64, error)
	SizeMatching(dir, pattern string, minAgeDays int) (int64, error)
	EraseContents(dir string) error
	DeleteMatching(dir, pattern string, minAgeDays int) ([]string, error)
}

// Engine walks a catalog, asking before every task.
type Engine struct {
	console   Console
	files     FileSystem
	runner    core.Runner
	logger    *log.Logger
	elevated  bool
	protected map[string]bool
	roots     []string
	home      string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithElevated tells the engine whether it already runs as root. Elevated
// commands are prefixed with sudo otherwise.
func WithElevated(elevated bool) Option {
	return func(e *Engine) {
		e.elevated = elevated
	}
}

// WithProtectedPaths lists directories that must never be erased even if
// a task resolves to them.
func WithProtectedPaths(paths []string) Option {
	return func(e *Engine) {
		for _, p := range paths {
			e.protected[filepath.Clean(p)] = true
		}
	}
}

// WithAllowedRoots confines every target to the given directories. Targets
// outside all of them are refused.
func WithAllowedRoots(roots []string) Option {
	return func(e *Engine) {
		for _, r := range roots {
			e.roots = append(e.roots, filepath.Clean(r))
		}
	}
}

// WithHome sets the user's home directory. Permission failures below it
// point at Full Disk Access instead of sudo.
func WithHome(home string) Option {
	return func(e *Engine) {
		if home != "" {
			e.home = filepath.Clean(home)
		}
	}
}

// NewEngine creates an Engine.
func NewEngine(console Console, files FileSystem, runner core.Runner, opts ...Option) *Engine {
	e := &Engine{
		console:   console,
		files:     files,
		runner:    runner,
		logger:    log.Default(),
		protected: map[string]bool{"/": true},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsAffirmative reports whether answer grants consent. Only "y" and "yes"
// count, in any case; everything else declines.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// Run executes the catalog in order and prints a summary banner. The
// returned error is non-nil only when the console cannot be read or ctx is
// cancelled; the summary then holds the tasks finished so far. A console
// failure has already been printed as an error line when Run returns.
func (e *Engine) Run(ctx context.Context, catalog Catalog) (Summary, error) {
	var summary Summary
	tasks := catalog.Tasks()

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return summary, errors.Wrap(err, "cleanup interrupted")
		}

		outcome, err := e.runTask(ctx, task, len(tasks))
		if err != nil {
			e.console.Error("%v", err)
			return summary, err
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	e.console.Banner("Cleanup complete", summary.Lines())
	return summary, nil
}

// runTask drives one task through announce, confirm, tool-check, measure,
// execute and report. Only a console failure is returned as an error.
func (e *Engine) runTask(ctx context.Context, task Task, total int) (Outcome, error) {
	outcome := Outcome{TaskID: task.ID, Name: task.Name}
	logger := e.logger.With("task", task.Name, "id", task.ID)

	e.console.Announce(task.ID, total, task.Name)

	answer, err := e.console.Ask(task.question())
	if err != nil {
		return outcome, errors.Mark(errors.Wrap(err, "read confirmation"), ErrFatalIO)
	}
	if !IsAffirmative(answer) {
		logger.Debug("declined", "answer", answer)
		e.console.Info("Skipped %s", task.Name)
		outcome.Status = SkippedByUser
		return outcome, nil
	}

	if task.RequiresTool != "" {
		if _, err := e.runner.LookPath(task.RequiresTool); err != nil {
			logger.Debug("tool missing", "tool", task.RequiresTool, "err", err)
			e.console.Warn("%s not found, skipping %s", task.RequiresTool, task.Name)
			outcome.Status = SkippedToolMissing
			outcome.Reason = errors.Wrapf(ErrToolNotFound, "%s", task.RequiresTool)
			return outcome, nil
		}
	}

	err = e.execute(ctx, task, &outcome, logger)
	if err != nil {
		e.report(task, err)
		outcome.Status = Failed
		outcome.Reason = err
		return outcome, nil
	}

	e.console.Success("%s cleaned", task.Name)
	outcome.Status = Completed
	return outcome, nil
}

// execute resolves and checks targets, measures them and applies the
// strategy.
func (e *Engine) execute(ctx context.Context, task Task, outcome *Outcome, logger *log.Logger) error {
	targets, err := e.resolveTargets(ctx, task)
	if err != nil {
		return err
	}
	logger.Debug("resolved targets", "targets", targets)

	if task.Strategy.touchesFilesystem() {
		if len(targets) == 0 {
			if task.Strategy.Kind == EmptyTrash {
				return nil
			}
			return errors.Mark(errors.Newf("no match for %s", strings.Join(task.Targets, ", ")), ErrTargetNotFound)
		}
		for _, t := range targets {
			if err := e.checkTarget(t); err != nil {
				return err
			}
		}

		outcome.SizeBefore = e.measure(task, targets, logger)
		e.console.Info("Current size: %s", core.FormatSize(outcome.SizeBefore))
	}

	switch task.Strategy.Kind {
	case EraseDirectoryContents:
		return e.eachTarget(targets, logger, func(dir string) error {
			return e.files.EraseContents(dir)
		})

	case DeleteMatchingFiles:
		return e.eachTarget(targets, logger, func(dir string) error {
			removed, err := e.files.DeleteMatching(dir, task.Strategy.Pattern, task.Strategy.MinAgeDays)
			if len(removed) > 0 {
				e.console.Info("Removed %d file(s) from %s", len(removed), dir)
			}
			return err
		})

	case EmptyTrash:
		for _, dir := range targets {
			err := classify(e.files.EraseContents(dir), e.permissionHint(dir))
			if errors.Is(err, ErrTargetNotFound) {
				// No trash directory means nothing to empty.
				logger.Debug("trash missing", "target", dir)
				continue
			}
			if err != nil {
				return err
			}
		}
		return nil

	case InvokeExternalCommand:
		argv, err := e.commandLine(task, task.Strategy.Argv)
		if err != nil {
			return err
		}
		return e.invoke(ctx, argv, logger)
	}

	return errors.Newf("unknown strategy %s", task.Strategy.Kind)
}

// eachTarget applies fn to every target. Missing targets are tolerated as
// long as at least one exists; the task fails with the first other error
// after all targets were attempted.
func (e *Engine) eachTarget(targets []string, logger *log.Logger, fn func(string) error) error {
	var missing []string
	var result error

	for _, t := range targets {
		err := classify(fn(t), e.permissionHint(t))
		switch {
		case err == nil:
			logger.Debug("cleaned", "target", t)
		case errors.Is(err, ErrTargetNotFound):
			logger.Debug("target missing", "target", t)
			missing = append(missing, t)
		default:
			logger.Debug("clean failed", "target", t, "err", err)
			if result == nil {
				result = err
			}
		}
	}

	if result != nil {
		return result
	}
	if len(missing) == len(targets) {
		return errors.Mark(errors.Newf("%s does not exist", strings.Join(missing, ", ")), ErrTargetNotFound)
	}
	return nil
}

// checkTarget refuses protected paths and paths outside the allowed roots.
func (e *Engine) checkTarget(target string) error {
	target = filepath.Clean(target)
	if e.protected[target] {
		return errors.Wrapf(ErrProtectedPath, "%s", target)
	}
	if len(e.roots) == 0 {
		return nil
	}
	for _, root := range e.roots {
		if within(target, root) {
			return nil
		}
	}
	return errors.Wrapf(ErrProtectedPath, "%s is outside the cleanup locations", target)
}

// within reports whether path is root or lies below it.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, "../")
}

// measure sums what the task would delete across all targets. For
// DeleteMatchingFiles only eligible files count.
func (e *Engine) measure(task Task, targets []string, logger *log.Logger) int64 {
	var total int64
	for _, t := range targets {
		var size int64
		var err error
		if task.Strategy.Kind == DeleteMatchingFiles {
			size, err = e.files.SizeMatching(t, task.Strategy.Pattern, task.Strategy.MinAgeDays)
		} else {
			size, err = e.files.SizeOf(t)
		}
		if err != nil {
			logger.Debug("measure failed", "target", t, "err", err)
		}
		total += size
	}
	return total
}

// permissionHint picks the advice for a permission failure on target.
func (e *Engine) permissionHint(target string) string {
	if e.home != "" && within(filepath.Clean(target), e.home) {
		return fullDiskAccessHint
	}
	return sudoHint
}

// resolveTargets expands glob targets, or asks TargetCommand for the path.
// Every glob match is a target; other targets are taken literally.
func (e *Engine) resolveTargets(ctx context.Context, task Task) ([]string, error) {
	if len(task.TargetCommand) > 0 {
		res, err := e.runner.Run(ctx, task.TargetCommand)
		if err != nil {
			return nil, errors.Mark(
				errors.Wrapf(err, "%s", strings.Join(task.TargetCommand, " ")),
				ErrExternalCommandFailed)
		}
		path := strings.TrimSpace(strings.SplitN(res.Output, "\n", 2)[0])
		if path == "" {
			return nil, errors.Mark(
				errors.Newf("%s printed no path", strings.Join(task.TargetCommand, " ")),
				ErrTargetNotFound)
		}
		return []string{path}, nil
	}

	if !task.GlobTargets {
		targets := make([]string, len(task.Targets))
		for i, t := range task.Targets {
			targets[i] = filepath.Clean(t)
		}
		return targets, nil
	}

	var targets []string
	for _, pattern := range task.Targets {
		matches, err := e.files.Resolve(pattern)
		if err != nil {
			return nil, err
		}
		targets = append(targets, matches...)
	}
	return targets, nil
}

// commandLine prefixes argv with sudo for elevated tasks when the process
// is not already root.
func (e *Engine) commandLine(task Task, argv []string) ([]string, error) {
	if !task.RequiresElevatedPrivilege || e.elevated {
		return argv, nil
	}
	if _, err := e.runner.LookPath("sudo"); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(ErrPermissionDenied, "%s needs root and sudo is unavailable", argv[0]),
			sudoHint)
	}
	return append([]string{"sudo"}, argv...), nil
}

func (e *Engine) invoke(ctx context.Context, argv []string, logger *log.Logger) error {
	logger.Debug("running", "argv", argv)
	res, err := e.runner.Run(ctx, argv)
	if res.Output != "" {
		logger.Debug("command output", "output", res.Output)
	}
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "%s", strings.Join(argv, " ")), ErrExternalCommandFailed)
	}
	return nil
}

// report prints one warning line naming the task and the reason, plus any
// hint attached to the error.
func (e *Engine) report(task Task, err error) {
	switch {
	case errors.Is(err, ErrTargetNotFound):
		e.console.Warn("%s: nothing to clean (%v)", task.Name, err)
	default:
		e.console.Warn("%s: %v", task.Name, err)
	}
	for _, hint := range errors.GetAllHints(err) {
		e.console.Info("Hint: %s", hint)
	}
}
