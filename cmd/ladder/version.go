package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.abhg.dev/ladder/internal/render"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// versionFlag prints the version and exits, the standard kong
// "eager flag with a side effect" pattern.
type versionFlag bool

func (versionFlag) BeforeApply(app *kong.Kong) error {
	render.Version(app.Stdout, version) //nolint:errcheck // best-effort on a flag that's about to exit
	app.Exit(0)
	return nil
}

type versionCmd struct{}

func (*versionCmd) Run(_ context.Context) error {
	return render.Version(os.Stdout, version)
}
