package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSizesCanvasFromRootViewport(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg" width="40" height="20"><rect width="40" height="20" fill="red"/></svg>`
	img, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	b := img.Bounds()
	assert.Equal(t, 40, b.Dx())
	assert.Equal(t, 20, b.Dy())
}

func TestDecodeFallsBackToDefaultCanvasSizeWithoutExplicitDimensions(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg"><circle cx="5" cy="5" r="5"/></svg>`
	img, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	b := img.Bounds()
	assert.Equal(t, defaultCanvasSize, b.Dx())
	assert.Equal(t, defaultCanvasSize, b.Dy())
}

func TestDecodeConfigMatchesDecodeDimensions(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg" width="12" height="8"></svg>`
	cfg, err := DecodeConfig(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Width)
	assert.Equal(t, 8, cfg.Height)
}

func TestSVGImageScaleRerendersAtNewFactor(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"></svg>`
	img, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	sv, ok := img.(*SVGImage)
	require.True(t, ok)

	scaled, err := sv.Scale(2)
	require.NoError(t, err)
	b := scaled.Bounds()
	assert.Equal(t, 20, b.Dx())
	assert.Equal(t, 20, b.Dy())
}
