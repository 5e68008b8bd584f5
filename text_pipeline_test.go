package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen2d/lumen/shade"
)

func TestBuildGlyphInstances_SingleLine(t *testing.T) {
	atlas := testAtlas(t)
	ink := shade.PackRGBA(255, 0, 0, 255)

	instances := BuildGlyphInstances(atlas, "AB", ink, 1)
	require.Len(t, instances, 2)

	a, _ := atlas.Glyph('A')
	b, _ := atlas.Glyph('B')

	assert.Equal(t, a.UVStart, instances[0].UVStart)
	assert.Equal(t, a.UVEnd, instances[0].UVEnd)
	assert.Equal(t, b.UVStart, instances[1].UVStart)
	assert.Equal(t, ink, instances[0].Color)
	assert.Equal(t, ink, instances[1].Color)

	// The second glyph's center sits one advance to the right of the first.
	gap := instances[1].Pos.X() - instances[0].Pos.X()
	wantGap := a.Advance + (b.Offset.X()+b.Size.X()/2) - (a.Offset.X()+a.Size.X()/2)
	assert.InDelta(t, wantGap, gap, 1e-4)

	// Glyph quads hang below the block origin.
	assert.True(t, instances[0].Pos.Y() < 0)
}

func TestBuildGlyphInstances_Newlines(t *testing.T) {
	atlas := testAtlas(t)
	ink := shade.PackRGBA(255, 255, 255, 255)

	instances := BuildGlyphInstances(atlas, "A\nA", ink, 1)
	require.Len(t, instances, 2)

	// Same column, one line apart, lines stacking downward.
	assert.InDelta(t, instances[0].Pos.X(), instances[1].Pos.X(), 1e-4)
	assert.InDelta(t, atlas.LineHeight(1), instances[0].Pos.Y()-instances[1].Pos.Y(), 1e-4)
}

func TestBuildGlyphInstances_Scale(t *testing.T) {
	atlas := testAtlas(t)
	ink := shade.PackRGBA(0, 0, 0, 255)

	one := BuildGlyphInstances(atlas, "Hi", ink, 1)
	two := BuildGlyphInstances(atlas, "Hi", ink, 2)
	require.Len(t, two, len(one))

	for i := range one {
		assert.InDelta(t, 2*one[i].Size.X(), two[i].Size.X(), 1e-4)
		assert.InDelta(t, 2*one[i].Size.Y(), two[i].Size.Y(), 1e-4)
		assert.InDelta(t, 2*one[i].Pos.X(), two[i].Pos.X(), 1e-3)
		assert.InDelta(t, 2*one[i].Pos.Y(), two[i].Pos.Y(), 1e-3)
		// UVs are atlas coordinates and do not scale.
		assert.Equal(t, one[i].UVStart, two[i].UVStart)
		assert.Equal(t, one[i].UVEnd, two[i].UVEnd)
	}
}

func TestBuildGlyphInstances_SkipsMissingRunes(t *testing.T) {
	atlas := testAtlas(t)
	ink := shade.PackRGBA(0, 0, 0, 255)

	with := BuildGlyphInstances(atlas, "AéB", ink, 1)
	without := BuildGlyphInstances(atlas, "AB", ink, 1)

	require.Len(t, with, 2)
	// The missing rune contributes no advance either.
	assert.Equal(t, without[1].Pos, with[1].Pos)
}

func TestBuildGlyphInstances_Empty(t *testing.T) {
	atlas := testAtlas(t)

	assert.Empty(t, BuildGlyphInstances(atlas, "", shade.PackRGBA(0, 0, 0, 255), 1))
	assert.Empty(t, BuildGlyphInstances(atlas, "\n\n", shade.PackRGBA(0, 0, 0, 255), 1))
}
