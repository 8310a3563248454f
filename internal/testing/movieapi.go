package testing

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/cinelist/internal/models"
)

// Route identifies one endpoint of [MovieAPI].
type Route string

const (
	RouteList   Route = "list"
	RouteCreate Route = "create"
	RouteUpdate Route = "update"
	RouteDelete Route = "delete"
	RouteSearch Route = "search"
)

// MovieAPI is an in-memory watch-list server backed by httptest.
//
// Create bodies are recorded raw so tests can assert on null fields.
type MovieAPI struct {
	Server *httptest.Server

	mu         sync.Mutex
	movies     []models.StoredMovie
	search     map[string][]models.SearchResultMovie
	failures   map[Route]int
	hits       map[Route]int
	creates    [][]byte
	patches    []string
	requestIDs []string
	nextID     int
}

// NewMovieAPI starts a server closed at test cleanup. Its API root is [MovieAPI.BaseURL].
func NewMovieAPI(t *testing.T) *MovieAPI {
	t.Helper()
	api := &MovieAPI{
		search:   map[string][]models.SearchResultMovie{},
		failures: map[Route]int{},
		hits:     map[Route]int{},
		nextID:   1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/movies", api.handle(RouteList, api.list))
	mux.HandleFunc("POST /api/movies", api.handle(RouteCreate, api.create))
	mux.HandleFunc("PATCH /api/movies/{id}", api.handle(RouteUpdate, api.update))
	mux.HandleFunc("DELETE /api/movies/{id}", api.handle(RouteDelete, api.remove))
	mux.HandleFunc("GET /api/search", api.handle(RouteSearch, api.find))

	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Server.Close)
	return api
}

// BaseURL is the API root to configure clients with.
func (a *MovieAPI) BaseURL() string {
	return a.Server.URL + "/api"
}

// Seed replaces the stored list.
func (a *MovieAPI) Seed(movies ...models.StoredMovie) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.movies = slices.Clone(movies)
}

// SetSearch registers results for a query. A nil slice makes the response omit "Search".
func (a *MovieAPI) SetSearch(query string, results []models.SearchResultMovie) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.search[query] = results
}

// Fail makes route respond with status until cleared with status 0.
func (a *MovieAPI) Fail(route Route, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if status == 0 {
		delete(a.failures, route)
		return
	}
	a.failures[route] = status
}

// Hits reports how many requests route has served, failures included.
func (a *MovieAPI) Hits(route Route) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits[route]
}

// TotalHits reports requests across all routes.
func (a *MovieAPI) TotalHits() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	total := 0
	for _, n := range a.hits {
		total += n
	}
	return total
}

// CreateBodies returns the raw POST bodies received so far.
func (a *MovieAPI) CreateBodies() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	bodies := make([]string, len(a.creates))
	for i, b := range a.creates {
		bodies[i] = string(b)
	}
	return bodies
}

// PatchQueries returns the raw query strings of PATCH requests.
func (a *MovieAPI) PatchQueries() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.patches)
}

// RequestIDs returns the X-Request-ID header of every request.
func (a *MovieAPI) RequestIDs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.requestIDs)
}

// Movies returns the server-side list.
func (a *MovieAPI) Movies() []models.StoredMovie {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.movies)
}

func (a *MovieAPI) handle(route Route, next func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.hits[route]++
		a.requestIDs = append(a.requestIDs, r.Header.Get("X-Request-ID"))
		status, failing := a.failures[route]
		a.mu.Unlock()

		if failing {
			http.Error(w, `{"detail":"forced failure"}`, status)
			return
		}
		next(w, r)
	}
}

func (a *MovieAPI) list(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	movies := slices.Clone(a.movies)
	a.mu.Unlock()
	if movies == nil {
		movies = []models.StoredMovie{}
	}
	writeJSON(w, http.StatusOK, movies)
}

func (a *MovieAPI) create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var in models.MovieCreate
	if err := json.Unmarshal(body, &in); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.creates = append(a.creates, body)

	if slices.ContainsFunc(a.movies, func(m models.StoredMovie) bool { return m.IMDbID == in.IMDbID }) {
		http.Error(w, `{"detail":"Movie already in list"}`, http.StatusBadRequest)
		return
	}

	id := a.nextID
	a.nextID++
	stored := models.StoredMovie{
		ID:          &id,
		IMDbID:      in.IMDbID,
		Title:       in.Title,
		PosterPath:  in.PosterPath,
		ReleaseYear: in.ReleaseYear,
		Status:      in.Status,
		Color:       in.Color,
		Actors:      in.Actors,
		Description: in.Description,
	}
	a.movies = append(a.movies, stored)
	writeJSON(w, http.StatusOK, stored)
}

func (a *MovieAPI) update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	a.mu.Lock()
	defer a.mu.Unlock()
	a.patches = append(a.patches, r.URL.RawQuery)

	i := slices.IndexFunc(a.movies, func(m models.StoredMovie) bool { return m.IMDbID == id })
	if i < 0 {
		http.Error(w, `{"detail":"Movie not found"}`, http.StatusNotFound)
		return
	}

	q := r.URL.Query()
	if q.Has("status") {
		a.movies[i].Status = models.Status(q.Get("status"))
	}
	if q.Has("color") {
		color := q.Get("color")
		a.movies[i].Color = &color
	}
	writeJSON(w, http.StatusOK, a.movies[i])
}

func (a *MovieAPI) remove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	a.mu.Lock()
	defer a.mu.Unlock()

	i := slices.IndexFunc(a.movies, func(m models.StoredMovie) bool { return m.IMDbID == id })
	if i < 0 {
		http.Error(w, `{"detail":"Movie not found"}`, http.StatusNotFound)
		return
	}
	a.movies = slices.Delete(a.movies, i, i+1)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Movie deleted"})
}

func (a *MovieAPI) find(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))

	a.mu.Lock()
	results, ok := a.search[query]
	a.mu.Unlock()

	if !ok || results == nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": "Movie not found!"})
		return
	}
	writeJSON(w, http.StatusOK, models.SearchResponse{Search: results})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
