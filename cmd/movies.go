package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/cinelist/internal/artwork"
	"github.com/desertthunder/cinelist/internal/models"
	"github.com/desertthunder/cinelist/internal/palette"
	"github.com/desertthunder/cinelist/internal/shared"
	"github.com/desertthunder/cinelist/internal/stores"
	"github.com/urfave/cli/v3"
)

// fetchLibrary refreshes the library. An empty result is confirmed with a direct
// list call so an unreachable API is reported instead of printed as an empty list.
func (r *Runner) fetchLibrary(ctx context.Context) error {
	r.library.FetchMyMovies(ctx)
	if len(r.library.Movies()) > 0 {
		return nil
	}
	if _, err := r.client.ListMovies(ctx); err != nil {
		return fmt.Errorf("failed to fetch watch list: %w", err)
	}
	return nil
}

// List prints the watch list, optionally filtered by status.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	var filter models.Status
	if s := cmd.String("status"); s != "" {
		status, err := models.ParseStatus(s)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}
		filter = status
	}

	if err := r.fetchLibrary(ctx); err != nil {
		return err
	}

	movies := []models.StoredMovie{}
	for _, m := range r.library.Movies() {
		if filter == "" || m.Status == filter {
			movies = append(movies, m)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Watch List (%d)", len(movies)))
	if len(movies) == 0 {
		r.writePlain("No movies.\n")
		return nil
	}
	for _, m := range movies {
		r.writePlain("%s\n", formatStored(m))
	}
	return nil
}

// Stats prints aggregate counts for the watch list.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	if err := r.fetchLibrary(ctx); err != nil {
		return err
	}

	stats := r.library.Stats()
	if cmd.Bool("json") {
		return r.writeJSON(stats, cmd.Bool("pretty"))
	}

	r.writePlain("Total:    %d\n", stats.Total)
	r.writePlain("Watched:  %d\n", stats.Watched)
	r.writePlain("To watch: %d\n", stats.ToWatch)
	return nil
}

// Search queries the movie database and marks results already in the list.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	r.library.FetchMyMovies(ctx)
	results, err := r.runSearch(ctx, query)
	if err != nil {
		return err
	}
	results = stores.AnnotateInList(results, r.library)

	var colors []string
	if cmd.Bool("sample") {
		posters := make([]string, len(results))
		for i, m := range results {
			posters[i] = m.Poster
		}
		colors = r.extractor.ExtractAll(ctx, posters)
	}

	if cmd.Bool("json") {
		if colors == nil {
			return r.writeJSON(results, cmd.Bool("pretty"))
		}
		sampled := make([]sampledResult, len(results))
		for i, m := range results {
			sampled[i] = sampledResult{SearchResultMovie: m, Color: colors[i]}
		}
		return r.writeJSON(sampled, cmd.Bool("pretty"))
	}

	if len(results) == 0 {
		r.writePlain("No results for %q\n", query)
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q (%d)", query, len(results)))
	for i, m := range results {
		n := models.Normalize(models.FromSearch(m))
		marker := " "
		if m.InList {
			marker = "✓"
		}
		line := fmt.Sprintf("%s %s  %s%s", marker, n.IMDbID, n.Title, yearSuffix(n))
		if colors != nil && colors[i] != "" {
			line += "  " + colors[i]
		}
		r.writePlain("%s\n", line)
	}
	return nil
}

// sampledResult is a search hit with its poster's dominant color.
type sampledResult struct {
	models.SearchResultMovie
	Color string `json:"color,omitempty"`
}

func (r *Runner) runSearch(ctx context.Context, query string) ([]models.SearchResultMovie, error) {
	r.search.SetQuery(query)
	r.search.SearchMovies(ctx)

	if r.search.State() == stores.SearchFailed {
		return nil, fmt.Errorf("%w: search for %q failed", shared.ErrAPIRequest, query)
	}
	return r.search.Results(), nil
}

// Add finds a movie through search and adds it to the watch list.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	imdbID := strings.TrimSpace(cmd.StringArg("imdb_id"))
	if imdbID == "" {
		return fmt.Errorf("%w: imdb_id", shared.ErrMissingArgument)
	}

	status, err := models.ParseStatus(cmd.String("status"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	var color *string
	if c := cmd.String("color"); c != "" {
		if err := validateColor(c); err != nil {
			return err
		}
		color = &c
	}

	if err := r.fetchLibrary(ctx); err != nil {
		return err
	}
	if r.library.Contains(imdbID) {
		return fmt.Errorf("%w: %s is already in the watch list", shared.ErrInvalidArgument, imdbID)
	}

	query := cmd.String("query")
	if query == "" {
		query = imdbID
	}
	results, err := r.runSearch(ctx, query)
	if err != nil {
		return err
	}

	var candidate *models.SearchResultMovie
	for i := range results {
		if results[i].IMDbID == imdbID {
			candidate = &results[i]
			break
		}
	}
	if candidate == nil {
		return fmt.Errorf("%w: %s not in results for %q", shared.ErrMovieNotFound, imdbID, query)
	}

	if color == nil && cmd.Bool("sample") {
		if sampled := r.extractor.Extract(ctx, candidate.Poster); sampled != "" {
			color = &sampled
		} else {
			r.logger.Warn("could not sample poster color", "imdb_id", imdbID)
		}
	}

	r.search.SelectColor(imdbID, derefColor(color))
	r.library.AddMovie(ctx, *candidate, status, color)
	if !r.library.Contains(imdbID) {
		return fmt.Errorf("%w: %s was not added", shared.ErrAPIRequest, imdbID)
	}

	r.writePlain("✓ Added %s (%s)\n", candidate.Title, status)
	return nil
}

// Update changes the status or color of a listed movie.
func (r *Runner) Update(ctx context.Context, cmd *cli.Command) error {
	imdbID := strings.TrimSpace(cmd.StringArg("imdb_id"))
	if imdbID == "" {
		return fmt.Errorf("%w: imdb_id", shared.ErrMissingArgument)
	}

	if err := r.fetchLibrary(ctx); err != nil {
		return err
	}
	movie, ok := r.library.Find(imdbID)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrMovieNotFound, imdbID)
	}

	var update models.MovieUpdate
	switch {
	case cmd.Bool("toggle") && cmd.String("status") != "":
		return fmt.Errorf("%w: cannot specify both --status and --toggle", shared.ErrInvalidArgument)
	case cmd.Bool("toggle"):
		next := movie.Status.Toggle()
		update.Status = &next
	case cmd.String("status") != "":
		status, err := models.ParseStatus(cmd.String("status"))
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}
		update.Status = &status
	}

	switch {
	case cmd.Bool("cycle-color") && cmd.IsSet("color"):
		return fmt.Errorf("%w: cannot specify both --color and --cycle-color", shared.ErrInvalidArgument)
	case cmd.Bool("cycle-color"):
		next := palette.Next(movie.ColorID())
		update.Color = &next
	case cmd.IsSet("color"):
		c := cmd.String("color")
		if c != "" {
			if err := validateColor(c); err != nil {
				return err
			}
		}
		update.Color = &c
	}

	if update.Empty() {
		return fmt.Errorf("%w: one of --status, --toggle, --color or --cycle-color", shared.ErrMissingArgument)
	}

	r.library.UpdateMovieData(ctx, imdbID, update)

	updated, ok := r.library.Find(imdbID)
	if !ok || (update.Status != nil && updated.Status != *update.Status) ||
		(update.Color != nil && updated.ColorID() != *update.Color) {
		return fmt.Errorf("%w: %s was not updated", shared.ErrAPIRequest, imdbID)
	}

	r.writePlain("✓ Updated %s\n", formatStored(updated))
	return nil
}

// Delete removes a movie from the watch list.
func (r *Runner) Delete(ctx context.Context, cmd *cli.Command) error {
	imdbID := strings.TrimSpace(cmd.StringArg("imdb_id"))
	if imdbID == "" {
		return fmt.Errorf("%w: imdb_id", shared.ErrMissingArgument)
	}

	if err := r.fetchLibrary(ctx); err != nil {
		return err
	}
	movie, ok := r.library.Find(imdbID)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrMovieNotFound, imdbID)
	}

	r.library.DeleteMovie(ctx, imdbID)
	if r.library.Contains(imdbID) {
		return fmt.Errorf("%w: %s was not deleted", shared.ErrAPIRequest, imdbID)
	}

	r.writePlain("✓ Removed %s\n", movie.Title)
	return nil
}

// Open shows a movie's poster in the system browser.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	imdbID := strings.TrimSpace(cmd.StringArg("imdb_id"))
	if imdbID == "" {
		return fmt.Errorf("%w: imdb_id", shared.ErrMissingArgument)
	}

	if err := r.fetchLibrary(ctx); err != nil {
		return err
	}
	movie, ok := r.library.Find(imdbID)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrMovieNotFound, imdbID)
	}

	url := artwork.PosterURL(movie.PosterPath)
	if cmd.Bool("print") {
		return r.writePlain("%s\n", url)
	}

	r.logger.Info("opening poster", "imdb_id", imdbID, "url", url)
	return shared.OpenBrowser(url)
}

func validateColor(c string) error {
	if _, ok := palette.Lookup(c); ok {
		return nil
	}
	if _, ok := palette.RGBToHex(c); ok {
		return nil
	}
	return fmt.Errorf("%w: color %q (want one of %s or rgb(r, g, b))",
		shared.ErrInvalidFlag, c, strings.Join(palette.IDs(), ", "))
}

func derefColor(c *string) string {
	if c == nil {
		return ""
	}
	return *c
}

func formatStored(m models.StoredMovie) string {
	n := models.Normalize(models.FromStored(m))
	marker := "[ ]"
	if n.Status == models.StatusWatched {
		marker = "[x]"
	}

	line := fmt.Sprintf("%s %s  %s%s", marker, n.IMDbID, n.Title, yearSuffix(n))
	if c := derefColor(n.Color); c != "" {
		line += "  " + palette.ColorClass(c).Name
	}
	return line
}

func yearSuffix(n models.NormalizedMovie) string {
	if n.Year == nil {
		return ""
	}
	return " (" + *n.Year + ")"
}
