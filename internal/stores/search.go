package stores

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cinelist/internal/models"
	"github.com/desertthunder/cinelist/internal/services"
)

// SearchState distinguishes "never searched", "found nothing" and "request failed", which all
// leave Results empty or unchanged.
type SearchState int

const (
	SearchIdle SearchState = iota
	SearchLoaded
	SearchEmpty
	SearchFailed
)

func (s SearchState) String() string {
	switch s {
	case SearchIdle:
		return "idle"
	case SearchLoaded:
		return "loaded"
	case SearchEmpty:
		return "empty"
	case SearchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Membership is satisfied by [Library].
type Membership interface {
	Contains(imdbID string) bool
}

// Search holds the current query, its results and per-result color selections.
type Search struct {
	client services.MovieClient
	logger *log.Logger
	events broadcaster

	mu         sync.RWMutex
	query      string
	results    []models.SearchResultMovie
	selections map[string]string
	state      SearchState
	inflight   int
}

func NewSearch(client services.MovieClient, logger *log.Logger) *Search {
	if logger == nil {
		logger = log.Default()
	}
	return &Search{
		client:     client,
		logger:     logger,
		results:    []models.SearchResultMovie{},
		selections: map[string]string{},
	}
}

// Subscribe returns a channel of change events and a func to stop receiving them.
func (s *Search) Subscribe() (<-chan Event, func()) {
	return s.events.subscribe()
}

func (s *Search) SetQuery(q string) {
	s.mu.Lock()
	s.query = q
	s.mu.Unlock()
	s.events.notify(EventQueryChanged)
}

func (s *Search) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Results returns a copy of the current results.
func (s *Search) Results() []models.SearchResultMovie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.results)
}

func (s *Search) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

func (s *Search) State() SearchState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SelectColor records color for a result. An empty color clears the selection.
func (s *Search) SelectColor(imdbID, color string) {
	s.mu.Lock()
	if color == "" {
		delete(s.selections, imdbID)
	} else {
		s.selections[imdbID] = color
	}
	s.mu.Unlock()
	s.events.notify(EventSelectionChanged)
}

// Selection returns the color selected for a result, if any.
func (s *Search) Selection(imdbID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.selections[imdbID]
	return c, ok
}

// Selections returns a copy of all selections.
func (s *Search) Selections() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.selections)
}

// SearchMovies runs the current query. An empty query is a no-op.
//
// On success results are replaced and selections reset. On failure the previous results and
// selections are kept and the state becomes [SearchFailed].
func (s *Search) SearchMovies(ctx context.Context) {
	query := strings.TrimSpace(s.Query())
	if query == "" {
		return
	}

	s.setInflight(1)
	defer s.setInflight(-1)

	results, err := s.client.Search(ctx, query)
	if err != nil {
		s.logger.Error("search failed", "query", query, "error", err)
		s.mu.Lock()
		s.state = SearchFailed
		s.mu.Unlock()
		s.events.notify(EventResultsChanged)
		return
	}

	s.mu.Lock()
	s.results = results
	s.selections = map[string]string{}
	if len(results) == 0 {
		s.state = SearchEmpty
	} else {
		s.state = SearchLoaded
	}
	s.mu.Unlock()

	if len(results) == 0 {
		s.logger.Warn("search returned no results", "query", query)
	}
	s.events.notify(EventResultsChanged)
	s.events.notify(EventSelectionChanged)
}

// ClearSearch resets query, results and selections without any I/O.
func (s *Search) ClearSearch() {
	s.mu.Lock()
	s.query = ""
	s.results = []models.SearchResultMovie{}
	s.selections = map[string]string{}
	s.state = SearchIdle
	s.mu.Unlock()

	s.events.notify(EventQueryChanged)
	s.events.notify(EventResultsChanged)
	s.events.notify(EventSelectionChanged)
}

func (s *Search) setInflight(delta int) {
	s.mu.Lock()
	before := s.inflight > 0
	s.inflight += delta
	after := s.inflight > 0
	s.mu.Unlock()
	if before != after {
		s.events.notify(EventLoadingChanged)
	}
}

// AnnotateInList returns a copy of results with InList set from library.
func AnnotateInList(results []models.SearchResultMovie, library Membership) []models.SearchResultMovie {
	annotated := slices.Clone(results)
	for i := range annotated {
		annotated[i].InList = library.Contains(annotated[i].IMDbID)
	}
	return annotated
}
