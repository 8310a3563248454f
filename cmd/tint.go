package main

import (
	"context"

	"github.com/desertthunder/cinelist/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Tint backfills color tags for movies without one by sampling their posters.
func (r *Runner) Tint(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.TintOpts{
		Workers:   cmd.Int("workers"),
		RateLimit: cmd.Float("rate"),
		Overwrite: cmd.Bool("overwrite"),
		DryRun:    cmd.Bool("dry-run"),
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchLibrary:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.SamplePosters:
				r.writePlain("🎨 %s\n", update.Message)
			case tasks.WriteColors:
				r.writePlain("  %s\n", update.Message)
			}
		}
	}()

	tinter := tasks.NewTinter(r.library, r.extractor, r.logger)
	result, err := tinter.Run(ctx, progressCh, opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlainHeader("Tint Summary")
	r.writePlain("Movies:  %d\n", result.Total)
	if opts.DryRun {
		r.writePlain("Sampled: %d\n", result.Tinted)
	} else {
		r.writePlain("Tinted:  %d\n", result.Tinted)
	}
	r.writePlain("Skipped: %d\n", result.Skipped)
	r.writePlain("Failed:  %d\n", result.Failed)

	if result.Failed > 0 {
		r.writePlainln("Failed:")
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s (%s): %v\n", res.Title, res.IMDbID, res.Error)
			}
		}
	}
	return nil
}
