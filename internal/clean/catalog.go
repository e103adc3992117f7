package clean

import (
	"path/filepath"

	"github.com/lakshaymaurya-felt/macmole/internal/config"
	"github.com/lakshaymaurya-felt/macmole/internal/core"
)

// DefaultCatalog returns every cleanup task, in prompt order, with paths
// resolved against p.
func DefaultCatalog(p config.Paths, downloadsMinAgeDays int) Catalog {
	developer := filepath.Join(p.Library, "Developer")

	return NewCatalog(
		// ── Application caches and logs ─────────────────────────
		Task{
			Name:        "User caches",
			Description: "Clear user application caches",
			Targets:     []string{p.Caches},
			Strategy:    EraseContents(),
		},
		Task{
			Name:                      "System caches",
			Description:               "Clear system application caches",
			Targets:                   []string{p.SystemCaches},
			RequiresElevatedPrivilege: true,
			Strategy:                  EraseContents(),
		},
		Task{
			Name:        "User logs",
			Description: "Clear user application logs",
			Targets:     []string{p.Logs},
			Strategy:    EraseContents(),
		},
		Task{
			Name:                      "System logs",
			Description:               "Clear system logs",
			Targets:                   []string{p.SystemLogs},
			RequiresElevatedPrivilege: true,
			Strategy:                  EraseContents(),
		},

		// ── Browsers ────────────────────────────────────────────
		Task{
			Name:        "Safari cache",
			Description: "Clear the Safari cache",
			Targets:     []string{filepath.Join(p.Caches, "com.apple.Safari")},
			Strategy:    EraseContents(),
		},
		Task{
			Name:        "Chrome cache",
			Description: "Clear the Google Chrome cache",
			Targets:     []string{filepath.Join(p.Caches, "Google", "Chrome")},
			Strategy:    EraseContents(),
		},
		Task{
			Name:        "Firefox cache",
			Description: "Clear the Firefox cache",
			Targets:     []string{filepath.Join(p.Caches, "Firefox", "Profiles")},
			Strategy:    EraseContents(),
		},

		// ── Apple apps ──────────────────────────────────────────
		Task{
			Name:        "Mail index",
			Description: "Remove the Mail envelope index (Mail rebuilds it on launch)",
			Targets:     []string{filepath.Join(core.QuoteGlob(p.Library), "Mail", "V*", "MailData")},
			GlobTargets: true,
			Strategy:    DeleteMatching("Envelope Index*", 0),
		},
		Task{
			Name:        "Photos cache",
			Description: "Clear the Photos analysis cache",
			Targets: []string{
				filepath.Join(p.Library, "Containers", "com.apple.photoanalysisd", "Data", "Library", "Caches"),
			},
			Strategy: EraseContents(),
		},

		// ── Developer tools ─────────────────────────────────────
		Task{
			Name:        "Xcode data",
			Description: "Clear Xcode derived data, archives and simulator caches",
			Targets: []string{
				filepath.Join(developer, "Xcode", "DerivedData"),
				filepath.Join(developer, "Xcode", "Archives"),
				filepath.Join(developer, "CoreSimulator", "Caches"),
			},
			Strategy: EraseContents(),
		},
		Task{
			Name:         "Homebrew cleanup",
			Description:  "Run Homebrew cleanup",
			RequiresTool: "brew",
			Strategy:     Invoke("brew", "cleanup", "-s"),
		},
		Task{
			Name:         "Homebrew autoremove",
			Description:  "Remove unused Homebrew dependencies",
			RequiresTool: "brew",
			Strategy:     Invoke("brew", "autoremove"),
		},
		Task{
			Name:          "Homebrew cache",
			Description:   "Clear the Homebrew download cache",
			RequiresTool:  "brew",
			TargetCommand: []string{"brew", "--cache"},
			Strategy:      EraseContents(),
		},
		Task{
			Name:         "npm cache",
			Description:  "Clean the npm cache",
			RequiresTool: "npm",
			Strategy:     Invoke("npm", "cache", "clean", "--force"),
		},
		Task{
			Name:         "Yarn cache",
			Description:  "Clean the Yarn cache",
			RequiresTool: "yarn",
			Strategy:     Invoke("yarn", "cache", "clean"),
		},
		Task{
			Name:         "pip cache",
			Description:  "Purge the pip cache",
			RequiresTool: "pip3",
			Strategy:     Invoke("pip3", "cache", "purge"),
		},
		Task{
			Name:         "Docker data",
			Description:  "Prune unused Docker images, containers and networks",
			RequiresTool: "docker",
			Strategy:     Invoke("docker", "system", "prune", "-af"),
		},

		// ── Trash and temporary files ───────────────────────────
		Task{
			Name:        "Trash",
			Description: "Empty the Trash",
			Targets:     []string{p.Trash},
			Strategy:    Trash(),
		},
		Task{
			Name:        "User temp",
			Description: "Clear user temporary files",
			Targets:     []string{p.UserTemp},
			Strategy:    EraseContents(),
		},
		Task{
			Name:                      "System temp",
			Description:               "Clear system temporary files",
			Targets:                   []string{p.SystemVarTmp, p.SystemTmp},
			RequiresElevatedPrivilege: true,
			Strategy:                  EraseContents(),
		},
		Task{
			Name:        "Old installers",
			Description: "Delete disk images and installer packages in Downloads",
			Targets:     []string{p.Downloads},
			Strategy:    DeleteMatching("*.{dmg,pkg}", downloadsMinAgeDays),
		},
		Task{
			Name:        "Quick Look cache",
			Description: "Clear the Quick Look thumbnail cache",
			Targets: []string{
				filepath.Join(filepath.Dir(p.UserTemp), "C", "com.apple.QuickLook.thumbnailcache"),
			},
			Strategy: EraseContents(),
		},

		// ── System maintenance ──────────────────────────────────
		Task{
			Name:                      "Spotlight index",
			Description:               "Rebuild the Spotlight index",
			RequiresTool:              "mdutil",
			RequiresElevatedPrivilege: true,
			Strategy:                  Invoke("mdutil", "-E", "/"),
		},
		Task{
			Name:                      "Memory purge",
			Description:               "Purge inactive memory",
			RequiresTool:              "purge",
			RequiresElevatedPrivilege: true,
			Strategy:                  Invoke("purge"),
		},
	)
}
