package models

// Kind discriminates the two record shapes a [Movie] can hold.
type Kind int

const (
	KindStored Kind = iota
	KindSearch
)

func (k Kind) String() string {
	switch k {
	case KindStored:
		return "stored"
	case KindSearch:
		return "search"
	default:
		return "unknown"
	}
}

const (
	NoCast        = "Cast unavailable"
	NoDescription = "No description available."
)

// Movie holds exactly one of a stored record or a search hit.
type Movie struct {
	Kind   Kind
	Stored StoredMovie
	Search SearchResultMovie
}

// FromStored wraps a stored record.
func FromStored(m StoredMovie) Movie {
	return Movie{Kind: KindStored, Stored: m}
}

// FromSearch wraps a search hit.
func FromSearch(m SearchResultMovie) Movie {
	return Movie{Kind: KindSearch, Search: m}
}

// NormalizedMovie is the display projection shared by both record shapes.
//
// Poster and Year are nil when absent; the movie-database "N/A" sentinel counts as absent.
type NormalizedMovie struct {
	IMDbID      string
	Title       string
	Poster      *string
	Year        *string
	Actors      string
	Description string
	Status      Status
	Color       *string
	IsFavorite  bool
	Rating      *string
	Stored      bool
}

// Normalize projects m into its display shape. It is pure.
func Normalize(m Movie) NormalizedMovie {
	switch m.Kind {
	case KindSearch:
		s := m.Search
		return NormalizedMovie{
			IMDbID:      s.IMDbID,
			Title:       s.Title,
			Poster:      present(s.Poster),
			Year:        present(s.Year),
			Actors:      orDefault(s.Actors, NoCast),
			Description: orDefault(s.Synopsis(), NoDescription),
		}
	default:
		s := m.Stored
		n := NormalizedMovie{
			IMDbID:      s.IMDbID,
			Title:       s.Title,
			Poster:      presentPtr(s.PosterPath),
			Year:        presentPtr(s.ReleaseYear),
			Actors:      orDefault(deref(s.Actors), NoCast),
			Description: orDefault(deref(s.Description), NoDescription),
			Status:      s.Status,
			Color:       s.Color,
			Rating:      s.Rating,
			Stored:      true,
		}
		if s.IsFavorite != nil {
			n.IsFavorite = *s.IsFavorite
		}
		return n
	}
}

// YearLabel returns the year or "" when absent.
func (n NormalizedMovie) YearLabel() string {
	return deref(n.Year)
}

func present(s string) *string {
	if s == "" || s == NoData {
		return nil
	}
	return &s
}

func presentPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return present(*s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
