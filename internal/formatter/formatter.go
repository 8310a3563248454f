// package formatter provides functions to export the watch-list to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/desertthunder/cinelist/internal/artwork"
	"github.com/desertthunder/cinelist/internal/models"
	"github.com/desertthunder/cinelist/internal/shared"
)

// Format is an export file format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
)

// ParseFormat accepts json, csv, markdown/md and txt/text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unsupported format %q (use json, csv, markdown, txt)", shared.ErrInvalidFlag, s)
	}
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	default:
		return string(f)
	}
}

// LibraryExport is a snapshot of the watch-list.
type LibraryExport struct {
	ExportedAt time.Time            `json:"exported_at"`
	Stats      models.Stats         `json:"stats"`
	Movies     []models.StoredMovie `json:"movies"`
}

// NewLibraryExport snapshots movies with their stats.
func NewLibraryExport(movies []models.StoredMovie) *LibraryExport {
	if movies == nil {
		movies = []models.StoredMovie{}
	}
	return &LibraryExport{
		ExportedAt: time.Now().UTC(),
		Stats:      models.ComputeStats(movies),
		Movies:     movies,
	}
}

// Export renders export in format.
func Export(export *LibraryExport, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return shared.MarshalJSON(export, true)
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	case FormatText:
		return ExportToText(export)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, format)
	}
}

// ExportToCSV converts a LibraryExport to CSV format with columns: IMDb ID, Title, Year, Status, Color, Favorite, Poster
func ExportToCSV(export *LibraryExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"IMDb ID", "Title", "Year", "Status", "Color", "Favorite", "Poster"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range export.Movies {
		n := models.Normalize(models.FromStored(movie))
		record := []string{
			movie.IMDbID,
			movie.Title,
			n.YearLabel(),
			string(movie.Status),
			movie.ColorID(),
			fmt.Sprintf("%t", n.IsFavorite),
			artwork.PosterURL(movie.PosterPath),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a LibraryExport to Markdown grouped by status, with poster links
func ExportToMarkdown(export *LibraryExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Watch List\n\n")
	buf.WriteString(fmt.Sprintf("**Total**: %d\n", export.Stats.Total))
	buf.WriteString(fmt.Sprintf("**Watched**: %d\n", export.Stats.Watched))
	buf.WriteString(fmt.Sprintf("**To Watch**: %d\n\n", export.Stats.ToWatch))

	for _, section := range []struct {
		title  string
		status models.Status
	}{
		{"To Watch", models.StatusToWatch},
		{"Watched", models.StatusWatched},
	} {
		buf.WriteString(fmt.Sprintf("## %s\n\n", section.title))
		i := 0
		for _, movie := range export.Movies {
			if section.status == models.StatusWatched && movie.Status != models.StatusWatched {
				continue
			}
			if section.status == models.StatusToWatch && movie.Status == models.StatusWatched {
				continue
			}
			i++
			n := models.Normalize(models.FromStored(movie))
			buf.WriteString(fmt.Sprintf("%d. [%s](%s)%s", i, movie.Title, artwork.PosterURL(movie.PosterPath), yearSuffix(n)))
			if color := movie.ColorID(); color != "" {
				buf.WriteString(fmt.Sprintf(" `%s`", color))
			}
			buf.WriteString("\n")
		}
		if i == 0 {
			buf.WriteString("_None_\n")
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a LibraryExport to plain text format
func ExportToText(export *LibraryExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Movies: %d (watched %d, to watch %d)\n\n",
		export.Stats.Total, export.Stats.Watched, export.Stats.ToWatch))

	for i, movie := range export.Movies {
		n := models.Normalize(models.FromStored(movie))
		mark := " "
		if movie.Status == models.StatusWatched {
			mark = "x"
		}
		buf.WriteString(fmt.Sprintf("%d. [%s] %s%s\n", i+1, mark, movie.Title, yearSuffix(n)))
	}

	return buf.Bytes(), nil
}

func yearSuffix(n models.NormalizedMovie) string {
	if y := n.YearLabel(); y != "" {
		return fmt.Sprintf(" (%s)", y)
	}
	return ""
}

// WriteExport renders export and writes it to path.
//
// Defaults to cinelist_export.{ext} as the filename.
func WriteExport(export *LibraryExport, format Format, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("cinelist_export.%s", format.Extension())
	}

	data, err := Export(export, format)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
