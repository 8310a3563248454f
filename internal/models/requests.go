package models

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// MovieCreate is the body of POST /movies.
//
// PosterPath, ReleaseYear and Color are always sent, as null when unset.
type MovieCreate struct {
	IMDbID      string  `json:"imdb_id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	PosterPath  *string `json:"poster_path"`
	ReleaseYear *string `json:"release_year"`
	Status      Status  `json:"status" validate:"required,oneof=to-watch watched"`
	Color       *string `json:"color"`
	Actors      *string `json:"actors,omitempty"`
	Description *string `json:"description,omitempty"`
}

// NewMovieCreate maps a search hit into the create body.
//
// The "N/A" poster sentinel becomes null, the description falls back from Plot to description,
// and an empty status defaults to [StatusToWatch].
func NewMovieCreate(candidate SearchResultMovie, status Status, color *string) MovieCreate {
	if status == "" {
		status = StatusToWatch
	}

	var poster *string
	if candidate.Poster != NoData {
		poster = StringPtr(candidate.Poster)
	}

	return MovieCreate{
		IMDbID:      candidate.IMDbID,
		Title:       candidate.Title,
		PosterPath:  poster,
		ReleaseYear: StringPtr(candidate.Year),
		Status:      status,
		Color:       color,
		Actors:      StringPtr(candidate.Actors),
		Description: StringPtr(candidate.Synopsis()),
	}
}

// Validate checks required fields and the status enum.
func (c MovieCreate) Validate(ctx context.Context) error {
	if err := validate.StructCtx(ctx, c); err != nil {
		return fmt.Errorf("invalid movie: %w", err)
	}
	return nil
}

// MovieUpdate is a partial update: nil fields are left untouched server-side.
type MovieUpdate struct {
	Status *Status `validate:"omitempty,oneof=to-watch watched"`
	Color  *string
}

// Empty reports whether no field was supplied.
func (u MovieUpdate) Empty() bool {
	return u.Status == nil && u.Color == nil
}

// Validate checks the status enum when a status is supplied.
func (u MovieUpdate) Validate(ctx context.Context) error {
	if err := validate.StructCtx(ctx, u); err != nil {
		return fmt.Errorf("invalid update: %w", err)
	}
	return nil
}

// Query encodes the supplied fields as PATCH query parameters.
func (u MovieUpdate) Query() url.Values {
	v := url.Values{}
	if u.Status != nil {
		v.Set("status", string(*u.Status))
	}
	if u.Color != nil {
		v.Set("color", *u.Color)
	}
	return v
}

// WithStatus returns an update that only sets status.
func WithStatus(s Status) MovieUpdate {
	return MovieUpdate{Status: &s}
}

// WithColor returns an update that only sets color.
func WithColor(color string) MovieUpdate {
	return MovieUpdate{Color: &color}
}
