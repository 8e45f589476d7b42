package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneToken(t *testing.T, src string) Token {
	t.Helper()
	tok := NewTokenizerString(src)
	return tok.Next()
}

func TestLengthParserPixels(t *testing.T) {
	l, err := ParseLength(oneToken(t, "10px"), LengthOptions{})
	require.NoError(t, err)
	assert.Equal(t, Length{Value: 10, Unit: UnitPx}, l)
}

func TestLengthParserZeroIsAlwaysUnitless(t *testing.T) {
	l, err := ParseLength(oneToken(t, "0"), LengthOptions{})
	require.NoError(t, err)
	assert.Equal(t, Length{Value: 0, Unit: UnitNone}, l)
}

func TestLengthParserInvalidUnit(t *testing.T) {
	_, err := ParseLength(oneToken(t, "1pp"), LengthOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid unit")

	l, err := ParseLength(oneToken(t, "1pp"), LengthOptions{AllowUserUnits: true})
	require.NoError(t, err)
	assert.Equal(t, Length{Value: 1, Unit: UnitNone}, l)
}

func TestLengthParserNegativeVmin(t *testing.T) {
	l, err := ParseLength(oneToken(t, "-17Vmin"), LengthOptions{})
	require.NoError(t, err)
	assert.Equal(t, float64(-17), l.Value)
	assert.Equal(t, UnitVmin, l.Unit)
}

func TestToPixelsAbsoluteUnits(t *testing.T) {
	vb := Viewbox{Width: 100, Height: 100}
	fm := FontMetrics{FontSize: 16, RootFontSize: 16, ExUnitInEm: 0.5, ChUnitInEm: 0.5}

	assert.InDelta(t, 96.0, Length{Value: 1, Unit: UnitIn}.ToPixels(vb, fm, ExtentX), 1e-9)
	assert.InDelta(t, 1.0, Length{Value: 1, Unit: UnitPx}.ToPixels(vb, fm, ExtentX), 1e-9)
	assert.InDelta(t, 16.0, Length{Value: 1, Unit: UnitEm}.ToPixels(vb, fm, ExtentX), 1e-9)
	assert.InDelta(t, 50.0, Length{Value: 50, Unit: UnitPercent}.ToPixels(vb, fm, ExtentX), 1e-9)
}
