package main

import (
	"context"

	"github.com/desertthunder/cinelist/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Export writes the watch list to a file in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	if err := r.fetchLibrary(ctx); err != nil {
		return err
	}

	export := formatter.NewLibraryExport(r.library.Movies())
	path, err := formatter.WriteExport(export, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("exported watch list", "format", format, "movies", len(export.Movies))
	r.writePlain("✓ Exported %d movies to %s\n", len(export.Movies), path)
	return nil
}
