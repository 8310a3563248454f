package artwork

import "github.com/desertthunder/cinelist/internal/models"

// Placeholder is shown for movies without a poster.
const Placeholder = "https://via.placeholder.com/500x750?text=Sin+Poster"

// PosterURL returns path, or [Placeholder] when path is nil, empty or "N/A".
func PosterURL(path *string) string {
	if path == nil {
		return Placeholder
	}
	return ResolvePoster(*path)
}

// ResolvePoster is [PosterURL] for a non-nullable value.
func ResolvePoster(path string) string {
	if path == "" || path == models.NoData {
		return Placeholder
	}
	return path
}

// HasPoster reports whether path resolves to something other than the placeholder.
func HasPoster(path *string) bool {
	return PosterURL(path) != Placeholder
}
