package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/cinelist/internal/artwork"
	"github.com/desertthunder/cinelist/internal/models"
	"github.com/desertthunder/cinelist/internal/palette"
	"github.com/desertthunder/cinelist/internal/preferences"
	"github.com/desertthunder/cinelist/internal/stores"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LibraryView ViewState = iota
	SearchView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	library      *stores.Library
	search       *stores.Search
	theme        *preferences.Theme
	extractor    *artwork.Extractor
	libEvents    <-chan stores.Event
	searchEvents <-chan stores.Event
	unsubscribe  []func()
	width        int
	height       int
	libraryList  list.Model
	resultList   list.Model
	input        textinput.Model
	status       string
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model subscribed to both stores. Call [Model.Close] when the program exits.
func NewModel(ctx context.Context, library *stores.Library, search *stores.Search, theme *preferences.Theme, extractor *artwork.Extractor) *Model {
	input := textinput.New()
	input.Placeholder = "Search movies..."
	input.CharLimit = 120

	libraryList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	libraryList.Title = "Watch List"
	resultList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	resultList.Title = "Search"
	resultList.SetFilteringEnabled(false)

	m := &Model{
		ctx:         ctx,
		view:        LibraryView,
		library:     library,
		search:      search,
		theme:       theme,
		extractor:   extractor,
		libraryList: libraryList,
		resultList:  resultList,
		input:       input,
		help:        help.New(),
		keys:        newKeyMap(),
	}

	var cancelLib, cancelSearch func()
	m.libEvents, cancelLib = library.Subscribe()
	m.searchEvents, cancelSearch = search.Subscribe()
	m.unsubscribe = []func(){cancelLib, cancelSearch}
	return m
}

// Close stops receiving store events.
func (m *Model) Close() {
	for _, cancel := range m.unsubscribe {
		cancel()
	}
}

// Init fetches the library and starts listening for store events.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchLibrary(),
		waitForEvent(m.libEvents, sourceLibrary),
		waitForEvent(m.searchEvents, sourceSearch),
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.libraryList.SetSize(msg.Width-4, msg.Height-6)
		m.resultList.SetSize(msg.Width-4, msg.Height-9)
		m.input.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LibraryView:
			return m.handleLibraryKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgStoreChanged:
		change := msg.data.(storeChange)
		if change.closed {
			return m, nil
		}
		cmds := []tea.Cmd{m.refreshResults()}
		if change.source == sourceLibrary {
			cmds = append(cmds, m.refreshLibrary(), waitForEvent(m.libEvents, sourceLibrary))
		} else {
			cmds = append(cmds, waitForEvent(m.searchEvents, sourceSearch))
		}
		return m, tea.Batch(cmds...)

	case MsgColorSampled:
		sample := msg.data.(colorSample)
		if sample.color == "" {
			m.status = styles.warn.Render("No color could be sampled from that poster")
			return m, nil
		}
		m.search.SelectColor(sample.imdbID, sample.color)
		m.status = fmt.Sprintf("Sampled %s", palette.ColorClass(sample.color).Text.Render(sample.color))
		return m, nil

	case MsgStatus:
		m.status = msg.data.(string)
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case LibraryView:
		body = m.renderLibrary()
	case SearchView:
		body = m.renderSearch()
	}
	if m.status != "" {
		body = fmt.Sprintf("%s\n%s", body, m.status)
	}
	return body
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.libraryList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		m.input.SetValue(m.search.Query())
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.refresh):
		m.status = ""
		return m, m.fetchLibrary()
	case key.Matches(msg, m.keys.theme):
		return m, m.toggleTheme()
	}

	if item, ok := m.libraryList.SelectedItem().(movieItem); ok {
		movie := item.movie
		switch {
		case key.Matches(msg, m.keys.watched):
			return m, m.updateMovie(movie, models.WithStatus(movie.Status.Toggle()))
		case key.Matches(msg, m.keys.color):
			return m, m.updateMovie(movie, models.WithColor(palette.Next(movie.ColorID())))
		case key.Matches(msg, m.keys.remove):
			return m, m.deleteMovie(movie)
		}
	}

	return m.updateLists(msg)
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.search.ClearSearch()
		m.input.Reset()
		m.input.Blur()
		m.view = LibraryView
		m.status = ""
		return m, nil
	case "tab":
		if m.input.Focused() {
			m.input.Blur()
			return m, nil
		}
		return m, m.input.Focus()
	}

	if m.input.Focused() {
		if msg.Type == tea.KeyEnter {
			m.search.SetQuery(m.input.Value())
			m.input.Blur()
			return m, m.runSearch()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.theme):
		return m, m.toggleTheme()
	}

	if item, ok := m.resultList.SelectedItem().(resultItem); ok {
		movie := item.movie
		switch {
		case key.Matches(msg, m.keys.color):
			m.search.SelectColor(movie.IMDbID, palette.Next(item.selection))
			return m, nil
		case key.Matches(msg, m.keys.sample):
			m.status = "Sampling poster..."
			return m, m.samplePoster(movie)
		case key.Matches(msg, m.keys.watched):
			return m, m.addMovie(movie, models.StatusWatched)
		case key.Matches(msg, m.keys.add):
			return m, m.addMovie(movie, models.StatusToWatch)
		}
	}

	return m.updateLists(msg)
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LibraryView:
		m.libraryList, cmd = m.libraryList.Update(msg)
	case SearchView:
		if m.input.Focused() {
			m.input, cmd = m.input.Update(msg)
		} else {
			m.resultList, cmd = m.resultList.Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) refreshLibrary() tea.Cmd {
	movies := m.library.Movies()
	items := make([]list.Item, len(movies))
	for i, movie := range movies {
		items[i] = movieItem{movie: movie}
	}

	stats := m.library.Stats()
	m.libraryList.Title = fmt.Sprintf("Watch List • %d total • %d watched • %d to watch", stats.Total, stats.Watched, stats.ToWatch)
	if m.library.Loading() {
		m.libraryList.Title += " • loading"
	}
	return m.libraryList.SetItems(items)
}

func (m *Model) refreshResults() tea.Cmd {
	results := stores.AnnotateInList(m.search.Results(), m.library)
	selections := m.search.Selections()
	items := make([]list.Item, len(results))
	for i, movie := range results {
		items[i] = resultItem{movie: movie, selection: selections[movie.IMDbID]}
	}

	query := m.search.Query()
	switch m.search.State() {
	case stores.SearchLoaded:
		m.resultList.Title = fmt.Sprintf("Results for %q", query)
	case stores.SearchEmpty:
		m.resultList.Title = fmt.Sprintf("No results for %q", query)
	case stores.SearchFailed:
		m.resultList.Title = "Search failed, showing previous results"
	default:
		m.resultList.Title = "Search"
	}
	if m.search.Loading() {
		m.resultList.Title += " • searching"
	}
	return m.resultList.SetItems(items)
}

func waitForEvent(events <-chan stores.Event, src source) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		return storeChangedMsg(src, e, !ok)
	}
}

func (m *Model) fetchLibrary() tea.Cmd {
	return func() tea.Msg {
		m.library.FetchMyMovies(m.ctx)
		return nil
	}
}

func (m *Model) runSearch() tea.Cmd {
	return func() tea.Msg {
		m.search.SearchMovies(m.ctx)
		return nil
	}
}

func (m *Model) updateMovie(movie models.StoredMovie, update models.MovieUpdate) tea.Cmd {
	return func() tea.Msg {
		m.library.UpdateMovieData(m.ctx, movie.IMDbID, update)
		return nil
	}
}

func (m *Model) deleteMovie(movie models.StoredMovie) tea.Cmd {
	return func() tea.Msg {
		m.library.DeleteMovie(m.ctx, movie.IMDbID)
		if m.library.Contains(movie.IMDbID) {
			return statusMsg(styles.err.Render(fmt.Sprintf("Could not delete %s", movie.Title)))
		}
		return statusMsg(fmt.Sprintf("Deleted %s", movie.Title))
	}
}

func (m *Model) addMovie(movie models.SearchResultMovie, status models.Status) tea.Cmd {
	var color *string
	if c, ok := m.search.Selection(movie.IMDbID); ok {
		color = &c
	}
	return func() tea.Msg {
		m.library.AddMovie(m.ctx, movie, status, color)
		if !m.library.Contains(movie.IMDbID) {
			return statusMsg(styles.err.Render(fmt.Sprintf("Could not add %s", movie.Title)))
		}
		return statusMsg(styles.ok.Render(fmt.Sprintf("✓ Added %s", movie.Title)))
	}
}

func (m *Model) samplePoster(movie models.SearchResultMovie) tea.Cmd {
	return func() tea.Msg {
		if m.extractor == nil {
			return colorSampledMsg(movie.IMDbID, "")
		}
		return colorSampledMsg(movie.IMDbID, <-m.extractor.ExtractAsync(m.ctx, movie.Poster))
	}
}

func (m *Model) toggleTheme() tea.Cmd {
	if m.theme == nil {
		return nil
	}
	if err := m.theme.Toggle(m.ctx); err != nil {
		m.status = styles.err.Render(fmt.Sprintf("Theme not saved: %v", err))
	} else {
		m.status = fmt.Sprintf("Theme: %s", m.theme.Name())
	}
	return tea.Batch(m.refreshLibrary(), m.refreshResults())
}

func (m *Model) renderLibrary() string {
	helpKeys := []key.Binding{m.keys.search, m.keys.watched, m.keys.color, m.keys.remove, m.keys.refresh, m.keys.theme, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.libraryList.View(), helpView)
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Search")
	helpKeys := []key.Binding{m.keys.submit, m.keys.focus, m.keys.back}
	if !m.input.Focused() {
		helpKeys = []key.Binding{m.keys.add, m.keys.watched, m.keys.color, m.keys.sample, m.keys.focus, m.keys.back}
	}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, m.input.View(), m.resultList.View(), helpView)
}
