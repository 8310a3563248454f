package ui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/cinelist/internal/models"
	"github.com/desertthunder/cinelist/internal/preferences"
	"github.com/desertthunder/cinelist/internal/services"
	"github.com/desertthunder/cinelist/internal/shared"
	"github.com/desertthunder/cinelist/internal/stores"
	tu "github.com/desertthunder/cinelist/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupModel(t *testing.T) (*Model, *tu.MovieAPI) {
	t.Helper()
	ctx := context.Background()

	api := tu.NewMovieAPI(t)
	logger := shared.NewLogger(io.Discard)
	client := services.NewMovieService(api.BaseURL(), nil)
	theme, err := preferences.NewTheme(ctx, preferences.NewMemoryStore(), func(bool) {})
	require.NoError(t, err)

	m := NewModel(ctx, stores.NewLibrary(client, logger), stores.NewSearch(client, logger), theme, nil)
	t.Cleanup(m.Close)
	return m, api
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadLibrary(t *testing.T, m *Model) {
	t.Helper()
	m.fetchLibrary()()
	m.Update(storeChangedMsg(sourceLibrary, stores.EventMoviesChanged, false))
}

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func seed(api *tu.MovieAPI) {
	year := "1999"
	api.Seed(
		models.StoredMovie{IMDbID: "tt0133093", Title: "The Matrix", ReleaseYear: &year, Status: models.StatusToWatch},
		models.StoredMovie{IMDbID: "tt0113277", Title: "Heat", Status: models.StatusWatched},
	)
}

func TestLibraryView(t *testing.T) {
	t.Run("Refresh From Store", func(t *testing.T) {
		m, api := setupModel(t)
		seed(api)

		loadLibrary(t, m)

		assert.Len(t, m.libraryList.Items(), 2)
		assert.Contains(t, m.libraryList.Title, "2 total")
		assert.Contains(t, m.libraryList.Title, "1 watched")
	})

	t.Run("Toggle Watched", func(t *testing.T) {
		m, api := setupModel(t)
		seed(api)
		loadLibrary(t, m)

		_, cmd := m.Update(keyMsg("w"))
		run(t, cmd)

		assert.Equal(t, models.StatusWatched, api.Movies()[0].Status)
		assert.Equal(t, []string{"status=watched"}, api.PatchQueries())
	})

	t.Run("Cycle Color", func(t *testing.T) {
		m, api := setupModel(t)
		seed(api)
		loadLibrary(t, m)

		_, cmd := m.Update(keyMsg("c"))
		run(t, cmd)

		assert.Equal(t, "rojo", api.Movies()[0].ColorID())
	})

	t.Run("Delete", func(t *testing.T) {
		m, api := setupModel(t)
		seed(api)
		loadLibrary(t, m)

		_, cmd := m.Update(keyMsg("x"))
		msg := run(t, cmd)
		m.Update(msg)

		assert.Len(t, api.Movies(), 1)
		assert.Contains(t, m.status, "Deleted The Matrix")
	})

	t.Run("Theme Toggle", func(t *testing.T) {
		m, _ := setupModel(t)

		m.Update(keyMsg("t"))

		assert.False(t, m.theme.Dark())
		assert.Contains(t, m.status, "light")
	})

	t.Run("Quit", func(t *testing.T) {
		m, _ := setupModel(t)

		_, cmd := m.Update(keyMsg("q"))
		assert.IsType(t, tea.QuitMsg{}, run(t, cmd))
	})

	t.Run("Closed Subscription Stops Listening", func(t *testing.T) {
		m, _ := setupModel(t)

		_, cmd := m.Update(storeChangedMsg(sourceLibrary, 0, true))
		assert.Nil(t, cmd)
	})

	t.Run("View", func(t *testing.T) {
		m, api := setupModel(t)
		seed(api)
		loadLibrary(t, m)
		m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

		assert.Contains(t, m.View(), "The Matrix")
	})
}

func TestSearchView(t *testing.T) {
	matrix := []models.SearchResultMovie{{IMDbID: "tt0133093", Title: "The Matrix", Year: "1999", Poster: "N/A"}}

	search := func(t *testing.T, m *Model, query string) {
		t.Helper()
		m.Update(keyMsg("s"))
		require.Equal(t, SearchView, m.view)
		require.True(t, m.input.Focused())

		m.input.SetValue(query)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		run(t, cmd)
		m.Update(storeChangedMsg(sourceSearch, stores.EventResultsChanged, false))
	}

	t.Run("Search And Add With Color", func(t *testing.T) {
		m, api := setupModel(t)
		api.SetSearch("matrix", matrix)

		search(t, m, "matrix")
		assert.Len(t, m.resultList.Items(), 1)
		assert.Equal(t, `Results for "matrix"`, m.resultList.Title)

		require.False(t, m.input.Focused(), "submitting moves focus to the results")

		m.Update(keyMsg("c"))
		color, ok := m.search.Selection("tt0133093")
		require.True(t, ok)
		assert.Equal(t, "rojo", color)

		_, cmd := m.Update(keyMsg("a"))
		m.Update(run(t, cmd))

		bodies := api.CreateBodies()
		require.Len(t, bodies, 1)
		assert.Contains(t, bodies[0], `"color":"rojo"`)
		assert.Contains(t, bodies[0], `"poster_path":null`)
		assert.True(t, m.library.Contains("tt0133093"))
		assert.Contains(t, m.status, "Added The Matrix")
	})

	t.Run("Marks Results In List", func(t *testing.T) {
		m, api := setupModel(t)
		seed(api)
		api.SetSearch("matrix", matrix)
		loadLibrary(t, m)

		search(t, m, "matrix")

		item, ok := m.resultList.Items()[0].(resultItem)
		require.True(t, ok)
		assert.True(t, item.movie.InList)
		assert.Contains(t, item.Title(), "[in list]")
	})

	t.Run("Tab Toggles Focus", func(t *testing.T) {
		m, _ := setupModel(t)
		search(t, m, "matrix")

		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.True(t, m.input.Focused())
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.False(t, m.input.Focused())
	})

	t.Run("Empty Results", func(t *testing.T) {
		m, _ := setupModel(t)

		search(t, m, "nothing here")

		assert.Empty(t, m.resultList.Items())
		assert.Equal(t, `No results for "nothing here"`, m.resultList.Title)
	})

	t.Run("Esc Clears Search", func(t *testing.T) {
		m, api := setupModel(t)
		api.SetSearch("matrix", matrix)
		search(t, m, "matrix")

		m.Update(tea.KeyMsg{Type: tea.KeyEsc})

		assert.Equal(t, LibraryView, m.view)
		assert.Equal(t, "", m.search.Query())
		assert.Equal(t, stores.SearchIdle, m.search.State())
		assert.Equal(t, "", m.input.Value())
	})

	t.Run("Color Sampled", func(t *testing.T) {
		m, _ := setupModel(t)

		m.Update(colorSampledMsg("tt1", "rgb(10, 20, 30)"))
		color, ok := m.search.Selection("tt1")
		assert.True(t, ok)
		assert.Equal(t, "rgb(10, 20, 30)", color)

		m.Update(colorSampledMsg("tt2", ""))
		_, ok = m.search.Selection("tt2")
		assert.False(t, ok)
		assert.Contains(t, m.status, "No color")
	})

	t.Run("Sample Without Extractor", func(t *testing.T) {
		m, _ := setupModel(t)

		msg := m.samplePoster(models.SearchResultMovie{IMDbID: "tt1", Poster: "https://img/x.jpg"})()
		sampled, ok := msg.(Msg)
		require.True(t, ok)
		assert.Equal(t, MsgColorSampled, sampled.kind)
		assert.Equal(t, "", sampled.data.(colorSample).color)
	})
}

func TestItems(t *testing.T) {
	year := "1999"
	movie := movieItem{movie: models.StoredMovie{IMDbID: "tt1", Title: "The Matrix", ReleaseYear: &year, Status: models.StatusWatched}}

	assert.Contains(t, movie.Title(), "The Matrix (1999)")
	assert.Contains(t, movie.Description(), "watched")
	assert.Contains(t, movie.Description(), models.NoCast)
	assert.Equal(t, "The Matrix", movie.FilterValue())

	result := resultItem{movie: models.SearchResultMovie{IMDbID: "tt2", Title: "Heat", Year: "N/A"}}
	assert.True(t, strings.HasSuffix(result.Title(), "Heat"))
	assert.Equal(t, models.NoDescription, result.Description())
}
