// package services defines interface MovieClient for the watch-list HTTP API
package services

import (
	"context"

	"github.com/desertthunder/cinelist/internal/models"
)

// MovieClient is the remote surface the stores synchronize against.
type MovieClient interface {
	// ListMovies returns the stored list in server order.
	ListMovies(ctx context.Context) ([]models.StoredMovie, error)

	// CreateMovie adds a movie. The created record is not returned; callers refetch.
	CreateMovie(ctx context.Context, movie models.MovieCreate) error

	// UpdateMovie sends only the supplied fields of update.
	UpdateMovie(ctx context.Context, imdbID string, update models.MovieUpdate) error

	// DeleteMovie removes a movie by IMDb id.
	DeleteMovie(ctx context.Context, imdbID string) error

	// Search queries the movie database. A response without results yields an empty slice.
	Search(ctx context.Context, query string) ([]models.SearchResultMovie, error)
}
