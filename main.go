package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lakshaymaurya-felt/macmole/cmd"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)

	// SIGINT keeps its default behaviour so an interrupt at a prompt ends the
	// process immediately.
	if err := cmd.Execute(context.Background()); err != nil {
		if !cmd.Reported(err) {
			log.Error("mm stopped", "err", err)
		}
		os.Exit(1)
	}
}
