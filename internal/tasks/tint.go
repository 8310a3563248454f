package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cinelist/internal/artwork"
	"github.com/desertthunder/cinelist/internal/models"
	"github.com/desertthunder/cinelist/internal/shared"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/time/rate"
)

// ErrNoColor is recorded for posters that yielded no color.
var ErrNoColor = errors.New("no color could be sampled")

// Library is the part of stores.Library the backfill needs.
type Library interface {
	FetchMyMovies(ctx context.Context)
	Movies() []models.StoredMovie
	Find(imdbID string) (models.StoredMovie, bool)
	UpdateMovieData(ctx context.Context, imdbID string, update models.MovieUpdate)
}

// Sampler is satisfied by artwork.Extractor.
type Sampler interface {
	Extract(ctx context.Context, posterURL string) string
}

// TintOpts contains configuration for a color backfill.
type TintOpts struct {
	Workers   int     // Concurrent samplers (default: 3, max: 10)
	RateLimit float64 // Poster downloads per second (default: 2)
	Overwrite bool    // Resample movies that already have a color
	DryRun    bool    // Sample without writing colors back
}

// MovieTintResult is the outcome for one movie.
type MovieTintResult struct {
	IMDbID  string
	Title   string
	Color   string
	Success bool
	Error   error
}

// TintResult summarizes a backfill.
type TintResult struct {
	Total   int // Movies in the library
	Tinted  int // Colors written (or sampled, for a dry run)
	Skipped int // Movies without a poster, or already colored
	Failed  int
	Results []MovieTintResult
}

// Tinter backfills movie colors from their posters.
type Tinter struct {
	library Library
	sampler Sampler
	logger  *log.Logger
}

func NewTinter(library Library, sampler Sampler, logger *log.Logger) *Tinter {
	if logger == nil {
		logger = log.Default()
	}
	return &Tinter{library: library, sampler: sampler, logger: logger}
}

// Candidates returns the movies a backfill would sample.
func Candidates(movies []models.StoredMovie, overwrite bool) []models.StoredMovie {
	var out []models.StoredMovie
	for _, m := range movies {
		if !artwork.HasPoster(m.PosterPath) {
			continue
		}
		if m.ColorID() != "" && !overwrite {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Run refetches the library and backfills colors with a rate-limited worker pool.
func (t *Tinter) Run(ctx context.Context, prog chan<- ProgressUpdate, opts TintOpts) (*TintResult, error) {
	if t.library == nil || t.sampler == nil {
		return nil, fmt.Errorf("%w: tinter not initialized", shared.ErrServiceUnavailable)
	}

	if opts.Workers <= 0 {
		opts.Workers = 3
	}
	if opts.Workers > 10 {
		opts.Workers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	sendProgress(prog, fetchLibraryUpdate())
	t.library.FetchMyMovies(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	movies := t.library.Movies()
	candidates := Candidates(movies, opts.Overwrite)
	result := &TintResult{
		Total:   len(movies),
		Skipped: len(movies) - len(candidates),
		Results: make([]MovieTintResult, 0, len(candidates)),
	}
	sendProgress(prog, foundCandidatesUpdate(len(candidates), len(movies)))

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	p := pool.New().WithMaxGoroutines(opts.Workers)

	var mu sync.Mutex
	completed := 0
	record := func(res MovieTintResult) {
		mu.Lock()
		defer mu.Unlock()
		completed++
		result.Results = append(result.Results, res)
		switch {
		case !res.Success:
			result.Failed++
			sendProgress(prog, tintFailedUpdate(completed, len(candidates), res))
		case opts.DryRun:
			result.Tinted++
			sendProgress(prog, sampledUpdate(completed, len(candidates), res))
		default:
			result.Tinted++
			sendProgress(prog, tintedUpdate(completed, len(candidates), res))
		}
	}

	for _, movie := range candidates {
		p.Go(func() {
			if err := limiter.Wait(ctx); err != nil {
				record(MovieTintResult{IMDbID: movie.IMDbID, Title: movie.Title, Error: err})
				return
			}
			record(t.tint(ctx, movie, opts.DryRun))
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if !opts.DryRun && result.Tinted > 0 {
		t.verify(ctx, result)
	}
	return result, nil
}

// verify refetches once all writes have finished and demotes results whose color did not stick.
// Per-movie refetches race each other, so only this final read is authoritative.
func (t *Tinter) verify(ctx context.Context, result *TintResult) {
	t.library.FetchMyMovies(ctx)
	for i, res := range result.Results {
		if !res.Success {
			continue
		}
		if updated, ok := t.library.Find(res.IMDbID); !ok || updated.ColorID() != res.Color {
			result.Results[i].Success = false
			result.Results[i].Error = fmt.Errorf("%w: color was not saved", shared.ErrAPIRequest)
			result.Tinted--
			result.Failed++
		}
	}
}

func (t *Tinter) tint(ctx context.Context, movie models.StoredMovie, dryRun bool) MovieTintResult {
	res := MovieTintResult{IMDbID: movie.IMDbID, Title: movie.Title}

	color := t.sampler.Extract(ctx, movie.Poster())
	if color == "" {
		res.Error = ErrNoColor
		t.logger.Warn("could not sample poster", "imdb_id", movie.IMDbID, "poster", movie.Poster())
		return res
	}
	res.Color = color

	if dryRun {
		res.Success = true
		return res
	}

	t.library.UpdateMovieData(ctx, movie.IMDbID, models.WithColor(color))
	res.Success = true
	t.logger.Debug("tinted movie", "imdb_id", movie.IMDbID, "color", color)
	return res
}
