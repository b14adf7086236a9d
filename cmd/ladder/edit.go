package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"go.abhg.dev/ladder/internal/log"
)

type editCmd struct{}

func (*editCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	editor := firstNonEmpty(
		os.Getenv("GIT_MACHETE_EDITOR"),
		os.Getenv("GIT_EDITOR"),
		os.Getenv("EDITOR"),
		os.Getenv("VISUAL"),
		"vi",
	)

	cmd := exec.CommandContext(ctx, editor, app.LayoutPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", editor, err)
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
