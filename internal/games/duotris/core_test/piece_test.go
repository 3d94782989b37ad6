package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/duotris/internal/games/duotris/core"
)

func TestRotateClockwiseRoundTrip(t *testing.T) {
	for k := range core.KindCount {
		t.Run(k.String(), func(t *testing.T) {
			base := k.BaseShape()
			s := base
			for range 4 {
				s = core.RotateClockwise(s)
			}
			assert.True(t, base.Equal(s))
		})
	}
}

func TestRotateClockwiseSwapsDimensions(t *testing.T) {
	s := core.Shape{
		{true, false, false},
		{true, true, true},
	}
	r := core.RotateClockwise(s)

	require.Equal(t, 3, r.Height())
	require.Equal(t, 2, r.Width())
	expected := core.Shape{
		{true, true},
		{true, false},
		{true, false},
	}
	assert.True(t, expected.Equal(r), "got %v", r)
	assert.True(t, s.Equal(core.Shape{{true, false, false}, {true, true, true}}), "input untouched")
}

func TestRotateClockwisePanics(t *testing.T) {
	assert.Panics(t, func() { core.RotateClockwise(core.Shape{}) })
	assert.Panics(t, func() { core.RotateClockwise(core.Shape{{}}) })
	assert.Panics(t, func() {
		core.RotateClockwise(core.Shape{{true, true}, {true}})
	})
}

func TestBaseShapesHaveFourCells(t *testing.T) {
	for k := range core.KindCount {
		p := core.NewTetromino(k, 0)
		assert.Len(t, p.Cells(), 4, k.String())
		assert.NotEqual(t, core.ColorNone, p.Color, k.String())
		assert.Equal(t, 0, p.Rotation)
	}
}

func TestBaseShapeIsACopy(t *testing.T) {
	s := core.KindT.BaseShape()
	s[0][0] = true
	assert.False(t, core.KindT.BaseShape()[0][0])
}

func TestSpawnPosition(t *testing.T) {
	testCases := []struct {
		kind     core.Kind
		offset   int
		expected core.Position
	}{
		{core.KindO, -3, core.Position{X: 1, Y: 0}},
		{core.KindO, 3, core.Position{X: 7, Y: 0}},
		{core.KindI, -3, core.Position{X: 0, Y: 0}},
		{core.KindI, 3, core.Position{X: 6, Y: 0}},
		{core.KindT, -3, core.Position{X: 1, Y: 0}},
		{core.KindT, 3, core.Position{X: 7, Y: 0}},
		{core.KindT, 0, core.Position{X: 4, Y: 0}},
	}

	for _, tc := range testCases {
		pos := core.SpawnPosition(tc.kind, tc.offset)
		if pos != tc.expected {
			t.Errorf("SpawnPosition(%v, %d) = %v, expected %v", tc.kind, tc.offset, pos, tc.expected)
		}
	}
}

func TestSpawnedPiecesFitTheBoard(t *testing.T) {
	b := core.EmptyBoard()
	for _, offset := range []int{-3, 0, 3} {
		for k := range core.KindCount {
			p := core.NewTetromino(k, offset)
			assert.False(t, core.OverlapsBoard(p, p.Pos, &b), "%v at offset %d", k, offset)
		}
	}
}

func TestParseKind(t *testing.T) {
	k, ok := core.ParseKind("t")
	assert.True(t, ok)
	assert.Equal(t, core.KindT, k)

	_, ok = core.ParseKind("X")
	assert.False(t, ok)
}

func TestKindColors(t *testing.T) {
	assert.Equal(t, "#00FFFF", core.KindI.Color().String())
	assert.Equal(t, "#0000FF", core.KindJ.Color().String())
	assert.Equal(t, "#FF8000", core.KindL.Color().String())
	assert.Equal(t, "#FFFF00", core.KindO.Color().String())
	assert.Equal(t, "#00FF00", core.KindS.Color().String())
	assert.Equal(t, "#800080", core.KindT.Color().String())
	assert.Equal(t, "#FF0000", core.KindZ.Color().String())
}

func TestKicks(t *testing.T) {
	for rot := range 4 {
		for k := range core.KindCount {
			kicks := core.Kicks(k, rot)
			require.NotEmpty(t, kicks)
			assert.Equal(t, core.Offset{}, kicks[0], "%v from %d", k, rot)
		}
		assert.Len(t, core.Kicks(core.KindO, rot), 1)
		assert.Len(t, core.Kicks(core.KindT, rot), 5)
		assert.Len(t, core.Kicks(core.KindI, rot), 5)
	}

	assert.Equal(t, core.Offset{DX: -2, DY: 0}, core.Kicks(core.KindI, 0)[1])
	assert.Equal(t, core.Offset{DX: -1, DY: 1}, core.Kicks(core.KindS, 0)[2])
	assert.Equal(t, core.Kicks(core.KindJ, 1), core.Kicks(core.KindJ, 5))
}

func TestCloneIsDeep(t *testing.T) {
	p := core.NewTetromino(core.KindL, 0)
	c := p.Clone()
	c.Shape[0][0] = true
	c.Pos.X = 9
	assert.False(t, p.Shape[0][0])
	assert.NotEqual(t, 9, p.Pos.X)

	var nilPiece *core.Tetromino
	assert.Nil(t, nilPiece.Clone())
}
