// Package palette holds the fixed set of color tags a movie can carry and their terminal styles.
package palette

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColorScheme is a selectable color tag and its presentation attributes.
type ColorScheme struct {
	ID     string
	Name   string
	Hex    string
	Fill   lipgloss.Style // solid swatch
	Ring   lipgloss.Style // highlight for the selected swatch
	Border lipgloss.Style // card border
	Text   lipgloss.Style
}

const neutralHex = "#64748B"

var schemes = []ColorScheme{
	newScheme("rojo", "Rojo", "#EF4444"),
	newScheme("morado", "Morado", "#A855F7"),
}

var neutral = newScheme("", "None", neutralHex)

func newScheme(id, name, hex string) ColorScheme {
	c := lipgloss.Color(hex)
	return ColorScheme{
		ID:     id,
		Name:   name,
		Hex:    hex,
		Fill:   lipgloss.NewStyle().Background(c).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1),
		Ring:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c),
		Border: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(c),
		Text:   lipgloss.NewStyle().Foreground(c),
	}
}

// All returns the schemes in display order.
func All() []ColorScheme {
	return slices.Clone(schemes)
}

// IDs returns every scheme id in display order.
func IDs() []string {
	ids := make([]string, len(schemes))
	for i, s := range schemes {
		ids[i] = s.ID
	}
	return ids
}

// Lookup finds a scheme by id.
func Lookup(id string) (ColorScheme, bool) {
	i := slices.IndexFunc(schemes, func(s ColorScheme) bool { return s.ID == id })
	if i < 0 {
		return ColorScheme{}, false
	}
	return schemes[i], true
}

// Neutral is the presentation used for untagged movies and unknown ids.
func Neutral() ColorScheme {
	return neutral
}

// ColorClass returns the scheme for color, which may be a palette id or a sampled
// "rgb(r, g, b)" value. Anything else, including the server default "slate", is neutral.
func ColorClass(color string) ColorScheme {
	if s, ok := Lookup(color); ok {
		return s
	}
	if hex, ok := RGBToHex(color); ok {
		return newScheme(color, color, hex)
	}
	return neutral
}

// Next returns the id after current in display order, wrapping to "" (no color) after the last.
func Next(current string) string {
	i := slices.IndexFunc(schemes, func(s ColorScheme) bool { return s.ID == current })
	switch {
	case i < 0:
		return schemes[0].ID
	case i == len(schemes)-1:
		return ""
	default:
		return schemes[i+1].ID
	}
}

// RGBToHex converts "rgb(r, g, b)" into "#RRGGBB".
func RGBToHex(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "rgb(") || !strings.HasSuffix(s, ")") {
		return "", false
	}

	var r, g, b int
	inner := strings.ReplaceAll(s[4:len(s)-1], " ", "")
	if n, err := fmt.Sscanf(inner, "%d,%d,%d", &r, &g, &b); err != nil || n != 3 {
		return "", false
	}
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			return "", false
		}
	}
	return fmt.Sprintf("#%02X%02X%02X", r, g, b), true
}
