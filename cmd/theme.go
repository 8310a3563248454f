package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/cinelist/internal/palette"
	"github.com/desertthunder/cinelist/internal/shared"
	"github.com/urfave/cli/v3"
)

type paletteEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Palette lists the selectable color tags.
func (r *Runner) Palette(ctx context.Context, cmd *cli.Command) error {
	schemes := palette.All()

	if cmd.Bool("json") {
		entries := make([]paletteEntry, len(schemes))
		for i, s := range schemes {
			entries[i] = paletteEntry{ID: s.ID, Name: s.Name, Hex: s.Hex}
		}
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	for _, s := range schemes {
		r.writePlain("%s %-8s %s\n", s.Fill.Render(" "), s.ID, s.Hex)
	}
	return nil
}

// Theme prints the persisted theme.
func (r *Runner) Theme(ctx context.Context, cmd *cli.Command) error {
	theme, db, err := r.openTheme(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	return r.writePlain("%s\n", theme.Name())
}

// ThemeToggle flips between the dark and light themes.
func (r *Runner) ThemeToggle(ctx context.Context, cmd *cli.Command) error {
	theme, db, err := r.openTheme(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := theme.Toggle(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ Theme set to %s\n", theme.Name())
}

// ThemeSet selects a theme by name.
func (r *Runner) ThemeSet(ctx context.Context, cmd *cli.Command) error {
	name := strings.ToLower(strings.TrimSpace(cmd.StringArg("name")))
	if name == "" {
		return fmt.Errorf("%w: name", shared.ErrMissingArgument)
	}

	theme, db, err := r.openTheme(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := theme.Set(ctx, name); err != nil {
		return err
	}
	return r.writePlain("✓ Theme set to %s\n", theme.Name())
}
