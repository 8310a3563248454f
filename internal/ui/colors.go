package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette(
	lipgloss.AdaptiveColor{Light: "#5B3CC4", Dark: "#7D56F4"},
	lipgloss.AdaptiveColor{Light: "#037A4D", Dark: "#04B575"},
	lipgloss.AdaptiveColor{Light: "#C00000", Dark: "#FF5F5F"},
	lipgloss.AdaptiveColor{Light: "#B35C00", Dark: "#FFA500"},
	lipgloss.AdaptiveColor{Light: "#7A7A7A", Dark: "#626262"},
)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

// NewPalette builds a stylesheet from adaptive colors, so the active theme decides which variant renders.
func NewPalette(t, s, e, w, h lipgloss.AdaptiveColor) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fg)
}

func NewBold(fg lipgloss.TerminalColor) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg lipgloss.TerminalColor) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
