package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/cinelist/internal/stores"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgStoreChanged MsgKind = iota
	MsgColorSampled
	MsgStatus
)

// source identifies which store emitted an event.
type source int

const (
	sourceLibrary source = iota
	sourceSearch
)

type storeChange struct {
	source source
	event  stores.Event
	closed bool
}

type colorSample struct {
	imdbID string
	color  string
}

// storeChangedMsg is the constructor for [MsgStoreChanged]
func storeChangedMsg(src source, event stores.Event, closed bool) Msg {
	return Msg{kind: MsgStoreChanged, data: storeChange{source: src, event: event, closed: closed}}
}

// colorSampledMsg is the constructor for [MsgColorSampled]
func colorSampledMsg(imdbID, color string) Msg {
	return Msg{kind: MsgColorSampled, data: colorSample{imdbID: imdbID, color: color}}
}

// statusMsg is the constructor for [MsgStatus]
func statusMsg(text string) Msg {
	return Msg{kind: MsgStatus, data: text}
}
