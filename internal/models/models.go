package models

import (
	"fmt"
	"strings"
)

// Status is the watch state of a stored movie.
type Status string

const (
	StatusToWatch Status = "to-watch"
	StatusWatched Status = "watched"
)

// NoData is the sentinel the movie database uses for a missing poster or year.
const NoData = "N/A"

// Valid reports whether s is one of the two known statuses.
func (s Status) Valid() bool {
	return s == StatusToWatch || s == StatusWatched
}

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == StatusWatched {
		return StatusToWatch
	}
	return StatusWatched
}

// ParseStatus accepts "to-watch"/"towatch"/"todo" and "watched"/"seen", case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "to-watch", "towatch", "todo":
		return StatusToWatch, nil
	case "watched", "seen":
		return StatusWatched, nil
	default:
		return "", fmt.Errorf("unknown status %q (want %q or %q)", s, StatusToWatch, StatusWatched)
	}
}

// StoredMovie is a movie persisted by the watch-list API and mirrored in the local library.
//
// IMDbID is unique within a list. Nullable fields are pointers so that JSON null round-trips.
type StoredMovie struct {
	ID           *int    `json:"id,omitempty"`
	IMDbID       string  `json:"imdb_id"`
	Title        string  `json:"title"`
	PosterPath   *string `json:"poster_path"`
	ReleaseYear  *string `json:"release_year"`
	Status       Status  `json:"status"`
	Color        *string `json:"color,omitempty"`
	Actors       *string `json:"actors,omitempty"`
	Description  *string `json:"description,omitempty"`
	IsFavorite   *bool   `json:"is_favorite,omitempty"`
	Rating       *string `json:"rating,omitempty"`
	PersonalNote *string `json:"personal_note,omitempty"`
}

// ColorID returns the color tag or "" when none is set.
func (m StoredMovie) ColorID() string {
	if m.Color == nil {
		return ""
	}
	return *m.Color
}

// Poster returns the poster path or "" when none is set.
func (m StoredMovie) Poster() string {
	if m.PosterPath == nil {
		return ""
	}
	return *m.PosterPath
}

// SearchResultMovie is a hit returned by the movie-database search.
//
// InList is computed by the client against the library and is never serialized.
type SearchResultMovie struct {
	IMDbID      string `json:"imdbID"`
	Title       string `json:"Title"`
	Poster      string `json:"Poster"`
	Year        string `json:"Year"`
	Actors      string `json:"Actors,omitempty"`
	Plot        string `json:"Plot,omitempty"`
	Description string `json:"description,omitempty"`
	InList      bool   `json:"-"`
}

// Synopsis returns Plot, falling back to Description.
func (m SearchResultMovie) Synopsis() string {
	if m.Plot != "" {
		return m.Plot
	}
	return m.Description
}

// SearchResponse is the body of GET /search. Search is absent when nothing matched.
type SearchResponse struct {
	Search []SearchResultMovie `json:"Search"`
	Error  string              `json:"error,omitempty"`
}

// Stats holds aggregate counts over a library.
type Stats struct {
	Total   int `json:"total"`
	Watched int `json:"watched"`
	ToWatch int `json:"toWatch"`
}

// ComputeStats folds movies into [Stats]. ToWatch is derived as Total - Watched.
func ComputeStats(movies []StoredMovie) Stats {
	watched := 0
	for _, m := range movies {
		if m.Status == StatusWatched {
			watched++
		}
	}
	return Stats{Total: len(movies), Watched: watched, ToWatch: len(movies) - watched}
}

// StringPtr returns nil for "" and a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
