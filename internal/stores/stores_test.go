package stores

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/cinelist/internal/models"
	"github.com/desertthunder/cinelist/internal/services"
	"github.com/desertthunder/cinelist/internal/shared"
	tu "github.com/desertthunder/cinelist/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLibrary(t *testing.T) (*Library, *tu.MovieAPI, *bytes.Buffer) {
	t.Helper()
	api := tu.NewMovieAPI(t)
	var buf bytes.Buffer
	lib := NewLibrary(services.NewMovieService(api.BaseURL(), nil), shared.NewLogger(&buf))
	return lib, api, &buf
}

func newSearch(t *testing.T) (*Search, *tu.MovieAPI, *bytes.Buffer) {
	t.Helper()
	api := tu.NewMovieAPI(t)
	var buf bytes.Buffer
	s := NewSearch(services.NewMovieService(api.BaseURL(), nil), shared.NewLogger(&buf))
	return s, api, &buf
}

func stored(id string, status models.Status) models.StoredMovie {
	return models.StoredMovie{IMDbID: id, Title: "Movie " + id, Status: status}
}

func waitFor(t *testing.T, ch <-chan Event, want Event) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-ch:
			require.True(t, ok, "channel closed before %s", want)
			if e == want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s event", want)
		}
	}
}

func TestLibrary(t *testing.T) {
	ctx := context.Background()

	t.Run("Starts Empty", func(t *testing.T) {
		lib, _, _ := newLibrary(t)
		assert.Empty(t, lib.Movies())
		assert.False(t, lib.Loading())
		assert.Equal(t, models.Stats{}, lib.Stats())
	})

	t.Run("FetchMyMovies", func(t *testing.T) {
		t.Run("Replaces List In Server Order", func(t *testing.T) {
			lib, api, _ := newLibrary(t)
			api.Seed(stored("tt2", models.StatusWatched), stored("tt1", models.StatusToWatch))

			lib.FetchMyMovies(ctx)

			movies := lib.Movies()
			require.Len(t, movies, 2)
			assert.Equal(t, "tt2", movies[0].IMDbID)
			assert.Equal(t, "tt1", movies[1].IMDbID)
			assert.False(t, lib.Loading())
		})

		t.Run("Idempotent", func(t *testing.T) {
			lib, api, _ := newLibrary(t)
			api.Seed(stored("tt1", models.StatusWatched), stored("tt2", models.StatusToWatch))

			lib.FetchMyMovies(ctx)
			first := lib.Movies()
			lib.FetchMyMovies(ctx)

			assert.Equal(t, first, lib.Movies())
			assert.Equal(t, 2, api.Hits(tu.RouteList))
		})

		t.Run("Failure Keeps Previous List", func(t *testing.T) {
			lib, api, buf := newLibrary(t)
			api.Seed(stored("tt1", models.StatusWatched))
			lib.FetchMyMovies(ctx)

			api.Fail(tu.RouteList, http.StatusInternalServerError)
			lib.FetchMyMovies(ctx)

			require.Len(t, lib.Movies(), 1)
			assert.Equal(t, "tt1", lib.Movies()[0].IMDbID)
			assert.False(t, lib.Loading())
			assert.Contains(t, buf.String(), "failed to fetch movies")
		})

		t.Run("Movies Returns Copy", func(t *testing.T) {
			lib, api, _ := newLibrary(t)
			api.Seed(stored("tt1", models.StatusToWatch))
			lib.FetchMyMovies(ctx)

			movies := lib.Movies()
			movies[0].Title = "mutated"
			assert.Equal(t, "Movie tt1", lib.Movies()[0].Title)
		})
	})

	t.Run("Stats", func(t *testing.T) {
		lib, api, _ := newLibrary(t)
		api.Seed(stored("tt1", models.StatusWatched), stored("tt2", models.StatusToWatch), stored("tt3", models.StatusWatched))
		lib.FetchMyMovies(ctx)

		assert.Equal(t, models.Stats{Total: 3, Watched: 2, ToWatch: 1}, lib.Stats())

		lib.UpdateMovieData(ctx, "tt2", models.WithStatus(models.StatusWatched))
		assert.Equal(t, models.Stats{Total: 3, Watched: 3, ToWatch: 0}, lib.Stats())
	})

	t.Run("AddMovie", func(t *testing.T) {
		t.Run("End To End", func(t *testing.T) {
			lib, api, _ := newLibrary(t)

			lib.AddMovie(ctx, models.SearchResultMovie{IMDbID: "tt1", Title: "A", Poster: "N/A", Year: "2000"}, "", nil)

			bodies := api.CreateBodies()
			require.Len(t, bodies, 1)
			assert.Contains(t, bodies[0], `"poster_path":null`)
			assert.Contains(t, bodies[0], `"status":"to-watch"`)
			assert.True(t, lib.Contains("tt1"))

			movie, ok := lib.Find("tt1")
			require.True(t, ok)
			assert.Equal(t, models.StatusToWatch, movie.Status)
		})

		t.Run("With Status And Color", func(t *testing.T) {
			lib, _, _ := newLibrary(t)
			color := "rojo"

			lib.AddMovie(ctx, models.SearchResultMovie{IMDbID: "tt9", Title: "Z", Poster: "https://img/z.jpg", Plot: "plot"}, models.StatusWatched, &color)

			movie, ok := lib.Find("tt9")
			require.True(t, ok)
			assert.Equal(t, models.StatusWatched, movie.Status)
			assert.Equal(t, "rojo", movie.ColorID())
			assert.Equal(t, "https://img/z.jpg", movie.Poster())
		})

		t.Run("Failure Still Refetches", func(t *testing.T) {
			lib, api, buf := newLibrary(t)
			api.Seed(stored("tt1", models.StatusToWatch))
			api.Fail(tu.RouteCreate, http.StatusInternalServerError)

			lib.AddMovie(ctx, models.SearchResultMovie{IMDbID: "tt2", Title: "B"}, "", nil)

			assert.Equal(t, 1, api.Hits(tu.RouteList))
			assert.True(t, lib.Contains("tt1"))
			assert.False(t, lib.Contains("tt2"))
			assert.Contains(t, buf.String(), "failed to add movie")
		})
	})

	t.Run("UpdateMovieData", func(t *testing.T) {
		lib, api, _ := newLibrary(t)
		api.Seed(stored("tt1", models.StatusToWatch))
		lib.FetchMyMovies(ctx)

		lib.UpdateMovieData(ctx, "tt1", models.WithColor("morado"))

		movie, ok := lib.Find("tt1")
		require.True(t, ok)
		assert.Equal(t, "morado", movie.ColorID())
		assert.Equal(t, models.StatusToWatch, movie.Status)
		assert.Equal(t, []string{"color=morado"}, api.PatchQueries())
	})

	t.Run("DeleteMovie", func(t *testing.T) {
		t.Run("Removes And Refetches", func(t *testing.T) {
			lib, api, _ := newLibrary(t)
			api.Seed(stored("tt1", models.StatusToWatch), stored("tt2", models.StatusToWatch))
			lib.FetchMyMovies(ctx)

			lib.DeleteMovie(ctx, "tt1")

			assert.False(t, lib.Contains("tt1"))
			assert.True(t, lib.Contains("tt2"))
		})

		t.Run("Missing Movie Logs", func(t *testing.T) {
			lib, _, buf := newLibrary(t)
			lib.DeleteMovie(ctx, "tt404")
			assert.Contains(t, buf.String(), "failed to delete movie")
		})
	})

	// Update and delete of the same movie are not serialized. Which refetch lands last is not
	// deterministic, so only the set of possible outcomes is asserted.
	t.Run("Concurrent Update And Delete", func(t *testing.T) {
		lib, api, _ := newLibrary(t)
		api.Seed(stored("tt1", models.StatusToWatch))
		lib.FetchMyMovies(ctx)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			lib.UpdateMovieData(ctx, "tt1", models.WithStatus(models.StatusWatched))
		}()
		go func() {
			defer wg.Done()
			lib.DeleteMovie(ctx, "tt1")
		}()
		wg.Wait()

		assert.Empty(t, api.Movies())
		if movie, ok := lib.Find("tt1"); ok {
			assert.Equal(t, models.StatusWatched, movie.Status)
		}

		lib.FetchMyMovies(ctx)
		assert.Empty(t, lib.Movies())
	})

	t.Run("Subscribe", func(t *testing.T) {
		t.Run("Receives Movies Changed", func(t *testing.T) {
			lib, api, _ := newLibrary(t)
			api.Seed(stored("tt1", models.StatusToWatch))

			events, cancel := lib.Subscribe()
			defer cancel()

			lib.FetchMyMovies(ctx)
			waitFor(t, events, EventMoviesChanged)
		})

		t.Run("Failure Emits No Movies Changed", func(t *testing.T) {
			lib, api, _ := newLibrary(t)
			api.Fail(tu.RouteList, http.StatusBadGateway)

			events, cancel := lib.Subscribe()
			defer cancel()

			lib.FetchMyMovies(ctx)
			assert.Equal(t, EventLoadingChanged, <-events)
			assert.Equal(t, EventLoadingChanged, <-events)
			select {
			case e := <-events:
				t.Errorf("expected no further events, got %s", e)
			default:
			}
		})

		t.Run("Cancel Closes Channel", func(t *testing.T) {
			lib, _, _ := newLibrary(t)
			events, cancel := lib.Subscribe()
			cancel()
			cancel()

			_, ok := <-events
			assert.False(t, ok)
		})

		t.Run("Slow Subscriber Does Not Block", func(t *testing.T) {
			lib, api, _ := newLibrary(t)
			api.Seed(stored("tt1", models.StatusToWatch))

			_, cancel := lib.Subscribe()
			defer cancel()

			for range subscriberBuffer * 2 {
				lib.FetchMyMovies(ctx)
			}
			assert.True(t, lib.Contains("tt1"))
		})
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	matrix := []models.SearchResultMovie{
		{IMDbID: "tt0133093", Title: "The Matrix", Year: "1999", Poster: "N/A"},
		{IMDbID: "tt0234215", Title: "The Matrix Reloaded", Year: "2003", Poster: "N/A"},
	}

	t.Run("Empty Query Is No-op", func(t *testing.T) {
		s, api, _ := newSearch(t)

		s.SearchMovies(ctx)
		s.SetQuery("   ")
		s.SearchMovies(ctx)

		assert.Equal(t, 0, api.TotalHits())
		assert.Equal(t, SearchIdle, s.State())
	})

	t.Run("Loaded", func(t *testing.T) {
		s, api, _ := newSearch(t)
		api.SetSearch("matrix", matrix)

		s.SetQuery("matrix")
		s.SearchMovies(ctx)

		assert.Equal(t, SearchLoaded, s.State())
		assert.Len(t, s.Results(), 2)
		assert.False(t, s.Loading())
	})

	t.Run("Empty", func(t *testing.T) {
		s, _, buf := newSearch(t)

		s.SetQuery("qwertyuiop")
		s.SearchMovies(ctx)

		assert.Equal(t, SearchEmpty, s.State())
		assert.Empty(t, s.Results())
		assert.Contains(t, buf.String(), "no results")
	})

	t.Run("Success Resets Selections", func(t *testing.T) {
		s, api, _ := newSearch(t)
		api.SetSearch("matrix", matrix)

		s.SetQuery("matrix")
		s.SearchMovies(ctx)
		s.SelectColor("tt0133093", "rojo")
		s.SearchMovies(ctx)

		assert.Empty(t, s.Selections())
	})

	t.Run("Failure Keeps Previous Results", func(t *testing.T) {
		s, api, buf := newSearch(t)
		api.SetSearch("matrix", matrix)

		s.SetQuery("matrix")
		s.SearchMovies(ctx)
		s.SelectColor("tt0133093", "morado")

		api.Fail(tu.RouteSearch, http.StatusServiceUnavailable)
		s.SetQuery("heat")
		s.SearchMovies(ctx)

		assert.Equal(t, SearchFailed, s.State())
		assert.Equal(t, matrix, s.Results())
		color, ok := s.Selection("tt0133093")
		assert.True(t, ok)
		assert.Equal(t, "morado", color)
		assert.Contains(t, buf.String(), "search failed")
	})

	t.Run("ClearSearch", func(t *testing.T) {
		s, api, _ := newSearch(t)
		api.SetSearch("matrix", matrix)

		s.SetQuery("matrix")
		s.SearchMovies(ctx)
		s.SelectColor("tt0133093", "rojo")
		hits := api.TotalHits()

		s.ClearSearch()

		assert.Equal(t, "", s.Query())
		assert.Empty(t, s.Results())
		assert.Empty(t, s.Selections())
		assert.Equal(t, SearchIdle, s.State())
		assert.Equal(t, hits, api.TotalHits())
	})

	t.Run("Selections", func(t *testing.T) {
		s, _, _ := newSearch(t)

		s.SelectColor("tt1", "rojo")
		s.SelectColor("tt2", "morado")
		s.SelectColor("tt2", "")

		assert.Equal(t, map[string]string{"tt1": "rojo"}, s.Selections())
		_, ok := s.Selection("tt2")
		assert.False(t, ok)

		copied := s.Selections()
		copied["tt3"] = "rojo"
		_, ok = s.Selection("tt3")
		assert.False(t, ok)
	})

	t.Run("Subscribe", func(t *testing.T) {
		s, api, _ := newSearch(t)
		api.SetSearch("matrix", matrix)

		events, cancel := s.Subscribe()
		defer cancel()

		s.SetQuery("matrix")
		waitFor(t, events, EventQueryChanged)
		s.SearchMovies(ctx)
		waitFor(t, events, EventResultsChanged)
	})
}

type memberSet map[string]bool

func (m memberSet) Contains(id string) bool { return m[id] }

func TestAnnotateInList(t *testing.T) {
	results := []models.SearchResultMovie{{IMDbID: "tt1"}, {IMDbID: "tt2"}}

	annotated := AnnotateInList(results, memberSet{"tt2": true})

	assert.False(t, annotated[0].InList)
	assert.True(t, annotated[1].InList)
	assert.False(t, results[1].InList, "input must not be modified")

	t.Run("With Library", func(t *testing.T) {
		lib, api, _ := newLibrary(t)
		api.Seed(stored("tt1", models.StatusWatched))
		lib.FetchMyMovies(context.Background())

		annotated := AnnotateInList(results, lib)
		assert.True(t, annotated[0].InList)
		assert.False(t, annotated[1].InList)
	})
}
