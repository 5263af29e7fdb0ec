// Package main is the entry point for the rnt launcher.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rntlauncher/rnt/cmd"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	versionString := fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	cmd.SetVersion(versionString)
	os.Exit(cmd.Execute(context.Background()))
}
