package svg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathCommandsMoveAndLine(t *testing.T) {
	cmds, err := ParsePathCommands("M 1 2 L 3 4 5 6")
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	m, ok := cmds[0].(*MoveTo)
	require.True(t, ok)
	assert.True(t, m.IsAbsolute)
	assert.Equal(t, []Point{{X: 1, Y: 2}}, m.Points)

	l, ok := cmds[1].(*LineTo)
	require.True(t, ok)
	assert.Equal(t, []Point{{X: 3, Y: 4}, {X: 5, Y: 6}}, l.Points)
}

func TestParsePathCommandsClosePath(t *testing.T) {
	cmds, err := ParsePathCommands("M0 0 L1 1 Z")
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	_, ok := cmds[2].(*ClosePath)
	assert.True(t, ok)
}

func TestParsePathCommandsHorizontalAndVerticalLine(t *testing.T) {
	cmds, err := ParsePathCommands("M0 0 H10 V20")
	require.NoError(t, err)
	require.Len(t, cmds, 3)

	h, ok := cmds[1].(*LineTo)
	require.True(t, ok)
	assert.Equal(t, 10.0, h.Points[0].X)
	assert.True(t, math.IsNaN(h.Points[0].Y), "horizontal lineto carries NaN for Y")

	v, ok := cmds[2].(*LineTo)
	require.True(t, ok)
	assert.Equal(t, 20.0, v.Points[0].Y)
}

func TestParsePathCommandsCubicBezier(t *testing.T) {
	cmds, err := ParsePathCommands("M0 0 C 1 1 2 2 3 3")
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	c, ok := cmds[1].(*CubicBezier)
	require.True(t, ok)
	require.Len(t, c.Coordinates, 1)
	assert.Equal(t, 1.0, c.Coordinates[0].X1)
	assert.Equal(t, 2.0, c.Coordinates[0].X2)
	assert.Equal(t, 3.0, c.Coordinates[0].X)
}

func TestParsePathCommandsSmoothCubicBezier(t *testing.T) {
	cmds, err := ParsePathCommands("M0 0 S 1 1 2 2")
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	c, ok := cmds[1].(*CubicBezier)
	require.True(t, ok)
	assert.True(t, c.IsSmooth)
	require.Len(t, c.Coordinates, 1)
	assert.Equal(t, 1.0, c.Coordinates[0].X2)
	assert.Equal(t, 2.0, c.Coordinates[0].X)
}

func TestParsePathCommandsRelativeCoordinatesAllowNegativeSigns(t *testing.T) {
	cmds, err := ParsePathCommands("m0 0 l-5-5")
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	l, ok := cmds[1].(*LineTo)
	require.True(t, ok)
	assert.False(t, l.IsAbsolute)
	assert.Equal(t, Point{X: -5, Y: -5}, l.Points[0])
}

func TestParsePathCommandsEllipticalArc(t *testing.T) {
	cmds, err := ParsePathCommands("M0 0 A 5 5 0 1 0 10 10")
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	a, ok := cmds[1].(*EllipticalArc)
	require.True(t, ok)
	require.Len(t, a.Coordinates, 1)
	assert.Equal(t, 5.0, a.Coordinates[0].Rx)
	assert.True(t, a.Coordinates[0].LargeArc)
	assert.False(t, a.Coordinates[0].Sweep)
	assert.Equal(t, Point{X: 10, Y: 10}, a.Coordinates[0].Point)
}

func TestParsePathCommandsEllipticalArcRejectsBadFlag(t *testing.T) {
	_, err := ParsePathCommands("M0 0 A 5 5 0 2 0 10 10")
	assert.Error(t, err)
}

func TestParsePathCommandsEmptyStringYieldsNoCommands(t *testing.T) {
	cmds, err := ParsePathCommands("")
	require.NoError(t, err)
	assert.Empty(t, cmds)
}
