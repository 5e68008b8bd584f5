package lumen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelLayout_Size(t *testing.T) {
	atlas := testAtlas(t)

	p := &Panel{
		Options:  []string{"New Game", "Options", "Quit"},
		FontSize: float32(atlas.FontSize()),
	}
	uniform := panelLayout(atlas, p)

	// Sized to the widest option and the line count.
	wantW, _ := atlas.MeasureText("New Game", 1)
	assert.InDelta(t, wantW, uniform.Size.X(), 1e-3)
	assert.InDelta(t, 3*atlas.LineHeight(1), uniform.Size.Y(), 1e-3)
}

func TestPanelLayout_FontSizeScales(t *testing.T) {
	atlas := testAtlas(t)

	p := &Panel{Options: []string{"Quit"}, FontSize: float32(atlas.FontSize())}
	base := panelLayout(atlas, p)

	p.FontSize = 2 * float32(atlas.FontSize())
	doubled := panelLayout(atlas, p)

	assert.InDelta(t, 2*base.Size.X(), doubled.Size.X(), 1e-2)
	assert.InDelta(t, 2*base.Size.Y(), doubled.Size.Y(), 1e-2)
}

func TestPanelLayout_SelectionRange(t *testing.T) {
	atlas := testAtlas(t)

	tests := []struct {
		name     string
		count    int
		selected int
		want     mgl32.Vec2
	}{
		{"first of three", 3, 0, mgl32.Vec2{0, 1.0 / 3}},
		{"middle of three", 3, 1, mgl32.Vec2{1.0 / 3, 2.0 / 3}},
		{"last of three", 3, 2, mgl32.Vec2{2.0 / 3, 1}},
		{"only option", 1, 0, mgl32.Vec2{0, 1}},
		{"clamped high", 3, 7, mgl32.Vec2{2.0 / 3, 1}},
		{"clamped low", 3, -2, mgl32.Vec2{0, 1.0 / 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := make([]string, tt.count)
			for i := range options {
				options[i] = "option"
			}
			uniform := panelLayout(atlas, &Panel{Options: options, Selected: tt.selected})

			assert.InDelta(t, tt.want.X(), uniform.SelectionRange.X(), 1e-6)
			assert.InDelta(t, tt.want.Y(), uniform.SelectionRange.Y(), 1e-6)
		})
	}
}

func TestPanelLayout_Empty(t *testing.T) {
	atlas := testAtlas(t)

	uniform := panelLayout(atlas, &Panel{})

	assert.Equal(t, mgl32.Vec4{}, uniform.Size)
	assert.Equal(t, mgl32.Vec4{}, uniform.SelectionRange)
}

func TestPanelLayout_Colors(t *testing.T) {
	atlas := testAtlas(t)

	menu := mgl32.Vec4{0.1, 0.2, 0.3, 0.4}
	selection := mgl32.Vec4{0.5, 0.6, 0.7, 0.8}
	uniform := panelLayout(atlas, &Panel{
		Options:        []string{"a"},
		MenuColor:      menu,
		SelectionColor: selection,
	})

	require.Equal(t, menu, uniform.MenuColor)
	require.Equal(t, selection, uniform.SelectionColor)
}
