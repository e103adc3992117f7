package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/macmole/internal/config"
)

func testPaths() config.Paths {
	return config.NewPaths("/Users/alex", "/var/folders/xy/abc123/T", "")
}

func TestDefaultCatalog_OrderAndIDs(t *testing.T) {
	c := DefaultCatalog(testPaths(), 30)
	tasks := c.Tasks()
	require.Equal(t, 24, c.Len())

	for i, task := range tasks {
		assert.Equal(t, i+1, task.ID)
		assert.NotEmpty(t, task.Name)
		assert.NotEmpty(t, task.Description)
	}

	// Rebuilding yields the same order.
	again := DefaultCatalog(testPaths(), 30).Tasks()
	for i := range tasks {
		assert.Equal(t, tasks[i].Name, again[i].Name)
	}

	assert.Equal(t, "User caches", tasks[0].Name)
	assert.Equal(t, "Trash", tasks[17].Name)
	assert.Equal(t, EmptyTrash, tasks[17].Strategy.Kind)
	assert.Equal(t, "Memory purge", tasks[23].Name)
}

func TestDefaultCatalog_TargetsStayInAllowedRoots(t *testing.T) {
	p := testPaths()
	engine := NewEngine(nil, nil, nil, WithAllowedRoots(p.AllowedRoots()))

	for _, task := range DefaultCatalog(p, 30).Tasks() {
		for _, target := range task.Targets {
			assert.NoError(t, engine.checkTarget(target), "%s target %s", task.Name, target)
		}
	}
}

func TestDefaultCatalog_StrategiesAreComplete(t *testing.T) {
	for _, task := range DefaultCatalog(testPaths(), 45).Tasks() {
		switch task.Strategy.Kind {
		case InvokeExternalCommand:
			assert.NotEmpty(t, task.Strategy.Argv, task.Name)
			assert.NotEmpty(t, task.RequiresTool, task.Name)
			assert.Equal(t, task.RequiresTool, task.Strategy.Argv[0], task.Name)
		case DeleteMatchingFiles:
			assert.NotEmpty(t, task.Strategy.Pattern, task.Name)
		default:
			assert.True(t, len(task.Targets) > 0 || len(task.TargetCommand) > 0, task.Name)
		}
	}
}

func TestDefaultCatalog_DownloadsThreshold(t *testing.T) {
	for _, task := range DefaultCatalog(testPaths(), 45).Tasks() {
		if task.Name == "Old installers" {
			assert.Equal(t, 45, task.Strategy.MinAgeDays)
			assert.Equal(t, "*.{dmg,pkg}", task.Strategy.Pattern)
			assert.Equal(t, []string{"/Users/alex/Downloads"}, task.Targets)
			return
		}
	}
	t.Fatal("old installers task missing")
}

func TestDefaultCatalog_OnlyMailTargetsAreGlobs(t *testing.T) {
	p := config.NewPaths("/Users/a[b]", "/var/folders/xy/abc123/T", "")
	for _, task := range DefaultCatalog(p, 30).Tasks() {
		if task.Name == "Mail index" {
			assert.True(t, task.GlobTargets)
			assert.Equal(t, []string{"/Users/a[[]b]/Library/Mail/V*/MailData"}, task.Targets)
			continue
		}
		assert.False(t, task.GlobTargets, task.Name)
	}
}

func TestCatalog_IsImmutable(t *testing.T) {
	targets := []string{"/a"}
	c := NewCatalog(Task{Name: "A", Targets: targets, Strategy: Invoke("x", "y")})

	targets[0] = "/mutated"
	got := c.Tasks()
	got[0].Name = "changed"
	got[0].Strategy.Argv[0] = "changed"

	again := c.Tasks()
	assert.Equal(t, "A", again[0].Name)
	assert.Equal(t, []string{"/a"}, again[0].Targets)
	assert.Equal(t, []string{"x", "y"}, again[0].Strategy.Argv)
	assert.Equal(t, 1, again[0].ID)
}

func TestTaskQuestion(t *testing.T) {
	assert.Equal(t, "Empty the Trash?", Task{Description: "Empty the Trash"}.question())
	assert.Equal(t, "Run cleanup task #4?", Task{ID: 4}.question())
}

func TestStrategyKindString(t *testing.T) {
	assert.Equal(t, "erase-contents", EraseDirectoryContents.String())
	assert.Equal(t, "empty-trash", EmptyTrash.String())
	assert.Equal(t, "strategy(9)", StrategyKind(9).String())
	assert.Equal(t, "#2 Trash (empty-trash)", Task{ID: 2, Name: "Trash", Strategy: Trash()}.String())
}
