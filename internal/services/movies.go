package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/cinelist/internal/models"
	"github.com/desertthunder/cinelist/internal/shared"
)

const defaultBaseURL string = "http://127.0.0.1:8000/api"

// MovieService implements [MovieClient] over HTTP.
type MovieService struct {
	baseURL    string
	httpClient *http.Client
}

// NewMovieService creates a client rooted at baseURL. Trailing slashes are trimmed.
func NewMovieService(baseURL string, client *http.Client) *MovieService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &MovieService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// BaseURL returns the API root.
func (s *MovieService) BaseURL() string {
	return s.baseURL
}

func (s *MovieService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	apiURL := s.baseURL + endpoint

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode body: %v", shared.ErrInvalidInput, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", shared.GenerateID())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", shared.ErrAPIRequest, method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := errorDetail(resp.Body)
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s %s: %s", shared.ErrMovieNotFound, method, endpoint, detail)
		}
		if detail != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, detail)
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrDecodeResponse, err)
		}
	}

	return nil
}

// errorDetail pulls "detail" out of an error body, falling back to the trimmed text.
func errorDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}

	var errResp struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Detail != "" {
		return errResp.Detail
	}
	return strings.TrimSpace(string(data))
}

// ListMovies retrieves the stored list.
//
// Calls GET /movies.
func (s *MovieService) ListMovies(ctx context.Context) ([]models.StoredMovie, error) {
	var movies []models.StoredMovie
	if err := s.doRequest(ctx, http.MethodGet, "/movies", nil, &movies); err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []models.StoredMovie{}
	}
	return movies, nil
}

// CreateMovie validates and posts movie.
//
// Calls POST /movies. The response body is discarded.
func (s *MovieService) CreateMovie(ctx context.Context, movie models.MovieCreate) error {
	if err := movie.Validate(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return s.doRequest(ctx, http.MethodPost, "/movies", movie, nil)
}

// UpdateMovie patches status and/or color.
//
// Calls PATCH /movies/{imdb_id}?status=&color= with only the supplied fields.
func (s *MovieService) UpdateMovie(ctx context.Context, imdbID string, update models.MovieUpdate) error {
	if imdbID == "" {
		return fmt.Errorf("%w: empty imdb id", shared.ErrInvalidInput)
	}
	if err := update.Validate(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	endpoint := "/movies/" + url.PathEscape(imdbID)
	if q := update.Query().Encode(); q != "" {
		endpoint += "?" + q
	}
	return s.doRequest(ctx, http.MethodPatch, endpoint, nil, nil)
}

// DeleteMovie removes a movie.
//
// Calls DELETE /movies/{imdb_id}.
func (s *MovieService) DeleteMovie(ctx context.Context, imdbID string) error {
	if imdbID == "" {
		return fmt.Errorf("%w: empty imdb id", shared.ErrInvalidInput)
	}
	return s.doRequest(ctx, http.MethodDelete, "/movies/"+url.PathEscape(imdbID), nil, nil)
}

// Search queries the movie database through the API.
//
// Calls GET /search?query=. A body without "Search" (including {"error": ...}) is an empty result.
func (s *MovieService) Search(ctx context.Context, query string) ([]models.SearchResultMovie, error) {
	params := url.Values{}
	params.Set("query", query)

	var resp models.SearchResponse
	if err := s.doRequest(ctx, http.MethodGet, "/search?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Search == nil {
		return []models.SearchResultMovie{}, nil
	}
	return resp.Search, nil
}

var _ MovieClient = (*MovieService)(nil)
