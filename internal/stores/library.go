package stores

import (
	"context"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cinelist/internal/models"
	"github.com/desertthunder/cinelist/internal/services"
)

// Library mirrors the stored watch-list.
//
// The list is only ever replaced wholesale by a successful fetch. Every mutation is followed by a
// refetch whether or not it succeeded. Concurrent refetches race and the last response to land wins.
type Library struct {
	client services.MovieClient
	logger *log.Logger
	events broadcaster

	mu       sync.RWMutex
	movies   []models.StoredMovie
	inflight int
}

// NewLibrary creates an empty library. Call [Library.FetchMyMovies] to populate it.
func NewLibrary(client services.MovieClient, logger *log.Logger) *Library {
	if logger == nil {
		logger = log.Default()
	}
	return &Library{client: client, logger: logger, movies: []models.StoredMovie{}}
}

// Subscribe returns a channel of change events and a func to stop receiving them.
func (l *Library) Subscribe() (<-chan Event, func()) {
	return l.events.subscribe()
}

// Movies returns a copy of the list in server order.
func (l *Library) Movies() []models.StoredMovie {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.movies)
}

// Loading reports whether any fetch is in flight. It is advisory only.
func (l *Library) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inflight > 0
}

// Contains reports whether imdbID is in the list.
func (l *Library) Contains(imdbID string) bool {
	_, ok := l.Find(imdbID)
	return ok
}

// Find returns the stored movie with imdbID.
func (l *Library) Find(imdbID string) (models.StoredMovie, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := slices.IndexFunc(l.movies, func(m models.StoredMovie) bool { return m.IMDbID == imdbID })
	if i < 0 {
		return models.StoredMovie{}, false
	}
	return l.movies[i], true
}

// Stats folds the current list. It is recomputed on every call.
func (l *Library) Stats() models.Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return models.ComputeStats(l.movies)
}

// FetchMyMovies replaces the list with the server's. On failure the list is left unchanged.
func (l *Library) FetchMyMovies(ctx context.Context) {
	l.beginLoading()
	defer l.endLoading()

	movies, err := l.client.ListMovies(ctx)
	if err != nil {
		l.logger.Error("failed to fetch movies", "error", err)
		return
	}

	l.mu.Lock()
	l.movies = movies
	l.mu.Unlock()

	l.logger.Debug("fetched movies", "count", len(movies))
	l.events.notify(EventMoviesChanged)
}

// AddMovie adds a search hit to the list with status (to-watch when empty) and an optional color,
// then refetches.
func (l *Library) AddMovie(ctx context.Context, candidate models.SearchResultMovie, status models.Status, color *string) {
	body := models.NewMovieCreate(candidate, status, color)
	if err := l.client.CreateMovie(ctx, body); err != nil {
		l.logger.Error("failed to add movie", "imdb_id", candidate.IMDbID, "error", err)
	} else {
		l.logger.Info("added movie", "imdb_id", candidate.IMDbID, "title", candidate.Title)
	}
	l.FetchMyMovies(ctx)
}

// UpdateMovieData sends the supplied fields of update, then refetches.
func (l *Library) UpdateMovieData(ctx context.Context, imdbID string, update models.MovieUpdate) {
	if err := l.client.UpdateMovie(ctx, imdbID, update); err != nil {
		l.logger.Error("failed to update movie", "imdb_id", imdbID, "error", err)
	}
	l.FetchMyMovies(ctx)
}

// DeleteMovie removes imdbID, then refetches.
func (l *Library) DeleteMovie(ctx context.Context, imdbID string) {
	if err := l.client.DeleteMovie(ctx, imdbID); err != nil {
		l.logger.Error("failed to delete movie", "imdb_id", imdbID, "error", err)
	}
	l.FetchMyMovies(ctx)
}

func (l *Library) beginLoading() {
	l.mu.Lock()
	l.inflight++
	changed := l.inflight == 1
	l.mu.Unlock()
	if changed {
		l.events.notify(EventLoadingChanged)
	}
}

func (l *Library) endLoading() {
	l.mu.Lock()
	l.inflight--
	changed := l.inflight == 0
	l.mu.Unlock()
	if changed {
		l.events.notify(EventLoadingChanged)
	}
}
