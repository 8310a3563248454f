// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has two views over the client-side stores:
//  1. [LibraryView] : Browse the watch-list, toggle watched, cycle color tags, delete
//  2. [SearchView] : Query the movie database, pick a color per result, add results to the list
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Store operations run as commands; the view never mutates its lists directly. Instead the model subscribes
// to [stores.Library] and [stores.Search] events and rebuilds its lists from the store getters whenever one arrives.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
// The theme toggle flips [preferences.Theme], which switches lipgloss adaptive colors immediately.
package ui
