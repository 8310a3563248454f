package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/cinelist/internal/models"
	"github.com/desertthunder/cinelist/internal/palette"
)

var (
	_ list.Item = movieItem{}
	_ list.Item = resultItem{}
)

const swatch = "●"

// movieItem wraps [models.StoredMovie] to implement [list.Item].
type movieItem struct {
	movie models.StoredMovie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string {
	n := models.Normalize(models.FromStored(i.movie))
	return fmt.Sprintf("%s %s%s", palette.ColorClass(i.movie.ColorID()).Text.Render(swatch), n.Title, yearSuffix(n))
}
func (i movieItem) Description() string {
	n := models.Normalize(models.FromStored(i.movie))
	status := "to watch"
	if n.Status == models.StatusWatched {
		status = "✓ watched"
	}
	return fmt.Sprintf("%s • %s", status, n.Actors)
}

// resultItem wraps [models.SearchResultMovie] to implement [list.Item].
type resultItem struct {
	movie     models.SearchResultMovie
	selection string
}

func (i resultItem) FilterValue() string { return i.movie.Title }
func (i resultItem) Title() string {
	n := models.Normalize(models.FromSearch(i.movie))
	var b strings.Builder
	if i.selection != "" {
		b.WriteString(palette.ColorClass(i.selection).Text.Render(swatch))
		b.WriteString(" ")
	}
	b.WriteString(n.Title)
	b.WriteString(yearSuffix(n))
	if i.movie.InList {
		b.WriteString(" ")
		b.WriteString(styles.ok.Render("[in list]"))
	}
	return b.String()
}
func (i resultItem) Description() string {
	return models.Normalize(models.FromSearch(i.movie)).Description
}

func yearSuffix(n models.NormalizedMovie) string {
	if y := n.YearLabel(); y != "" {
		return fmt.Sprintf(" (%s)", y)
	}
	return ""
}
