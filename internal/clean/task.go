package clean

import (
	"fmt"
	"strings"
)

// StrategyKind identifies how a task removes data.
type StrategyKind int

const (
	// EraseDirectoryContents removes everything inside each target and
	// keeps the directory itself.
	EraseDirectoryContents StrategyKind = iota

	// DeleteMatchingFiles removes files matching a pattern that are older
	// than a threshold.
	DeleteMatchingFiles

	// InvokeExternalCommand runs a tool that does its own cleanup.
	InvokeExternalCommand

	// EmptyTrash removes every entry in the trash.
	EmptyTrash
)

var strategyNames = map[StrategyKind]string{
	EraseDirectoryContents: "erase-contents",
	DeleteMatchingFiles:    "delete-matching",
	InvokeExternalCommand:  "external-command",
	EmptyTrash:             "empty-trash",
}

func (k StrategyKind) String() string {
	if name, ok := strategyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", int(k))
}

// Strategy is the removal algorithm of a task together with its parameters.
type Strategy struct {
	Kind StrategyKind

	// Pattern and MinAgeDays apply to DeleteMatchingFiles.
	Pattern    string
	MinAgeDays int

	// Argv applies to InvokeExternalCommand.
	Argv []string
}

// EraseContents returns an EraseDirectoryContents strategy.
func EraseContents() Strategy {
	return Strategy{Kind: EraseDirectoryContents}
}

// DeleteMatching returns a DeleteMatchingFiles strategy.
func DeleteMatching(pattern string, minAgeDays int) Strategy {
	return Strategy{Kind: DeleteMatchingFiles, Pattern: pattern, MinAgeDays: minAgeDays}
}

// Invoke returns an InvokeExternalCommand strategy.
func Invoke(argv ...string) Strategy {
	return Strategy{Kind: InvokeExternalCommand, Argv: argv}
}

// Trash returns an EmptyTrash strategy.
func Trash() Strategy {
	return Strategy{Kind: EmptyTrash}
}

// touchesFilesystem reports whether the strategy deletes paths directly.
func (s Strategy) touchesFilesystem() bool {
	return s.Kind != InvokeExternalCommand
}

// Task is one entry of the cleanup catalog.
type Task struct {
	// ID is the 1-based position in the catalog.
	ID int

	// Name is a short category label used in headers, status lines and
	// the summary.
	Name string

	// Description is the imperative consent prompt, e.g. "Empty the Trash".
	Description string

	// Targets are literal paths, primary target first.
	Targets []string

	// GlobTargets marks Targets as glob patterns. Every match is a target;
	// literal segments must be quoted with core.QuoteGlob.
	GlobTargets bool

	// TargetCommand, when set, is run to discover the target directory.
	// Its first output line is used as the only target.
	TargetCommand []string

	// RequiresTool names an executable that must be on PATH.
	RequiresTool string

	// RequiresElevatedPrivilege marks tasks expected to need root.
	RequiresElevatedPrivilege bool

	Strategy Strategy
}

func (t Task) clone() Task {
	t.Targets = append([]string(nil), t.Targets...)
	t.TargetCommand = append([]string(nil), t.TargetCommand...)
	t.Strategy.Argv = append([]string(nil), t.Strategy.Argv...)
	return t
}

func (t Task) String() string {
	return fmt.Sprintf("#%d %s (%s)", t.ID, t.Name, t.Strategy.Kind)
}

// question is the consent prompt for the task. Descriptions are phrased
// as actions ("Empty the Trash").
func (t Task) question() string {
	d := strings.TrimSpace(t.Description)
	if d == "" {
		return fmt.Sprintf("Run cleanup task #%d?", t.ID)
	}
	return strings.TrimSuffix(d, ".") + "?"
}

// Catalog is the fixed, ordered list of tasks. It is built once and never
// modified.
type Catalog struct {
	tasks []Task
}

// NewCatalog numbers tasks in the given order and freezes the list.
func NewCatalog(tasks ...Task) Catalog {
	frozen := make([]Task, len(tasks))
	for i, t := range tasks {
		t.ID = i + 1
		frozen[i] = t.clone()
	}
	return Catalog{tasks: frozen}
}

// Len returns the number of tasks.
func (c Catalog) Len() int {
	return len(c.tasks)
}

// Tasks returns a copy of the tasks in prompt order.
func (c Catalog) Tasks() []Task {
	out := make([]Task, len(c.tasks))
	for i, t := range c.tasks {
		out[i] = t.clone()
	}
	return out
}
