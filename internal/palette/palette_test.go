package palette

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	rojo, ok := Lookup("rojo")
	require.True(t, ok)
	assert.Equal(t, "#EF4444", rojo.Hex)
	assert.Equal(t, lipgloss.Color("#EF4444"), rojo.Text.GetForeground())
	assert.Equal(t, lipgloss.Color("#EF4444"), rojo.Fill.GetBackground())

	_, ok = Lookup("slate")
	assert.False(t, ok)

	assert.Equal(t, []string{"rojo", "morado"}, IDs())
	assert.Len(t, All(), 2)
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].ID = "changed"
	_, ok := Lookup("rojo")
	assert.True(t, ok)
}

func TestColorClass(t *testing.T) {
	t.Run("Palette ID", func(t *testing.T) {
		assert.Equal(t, "morado", ColorClass("morado").ID)
	})

	t.Run("Unknown Is Neutral", func(t *testing.T) {
		for _, id := range []string{"", "slate", "verde"} {
			assert.Equal(t, Neutral().Hex, ColorClass(id).Hex, id)
		}
	})

	t.Run("Sampled RGB", func(t *testing.T) {
		c := ColorClass("rgb(255, 0, 0)")
		assert.Equal(t, "#FF0000", c.Hex)
		assert.Equal(t, lipgloss.Color("#FF0000"), c.Text.GetForeground())
	})
}

func TestNext(t *testing.T) {
	assert.Equal(t, "rojo", Next(""))
	assert.Equal(t, "morado", Next("rojo"))
	assert.Equal(t, "", Next("morado"))
	assert.Equal(t, "rojo", Next("rgb(1, 2, 3)"))
}

func TestRGBToHex(t *testing.T) {
	for in, want := range map[string]string{
		"rgb(255, 0, 0)":   "#FF0000",
		"rgb(16,32,48)":    "#102030",
		" rgb(0, 0, 255) ": "#0000FF",
	} {
		got, ok := RGBToHex(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "rojo", "rgb(256, 0, 0)", "rgb(1, 2)", "rgba(1, 2, 3, 4)", "rgb(a, b, c)"} {
		_, ok := RGBToHex(in)
		assert.False(t, ok, in)
	}
}
