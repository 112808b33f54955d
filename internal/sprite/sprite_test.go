package sprite

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sandrunner/pkg/geom"
)

type fakeTexture struct{ w, h int }

func (f fakeTexture) Size() (int, int) { return f.w, f.h }

type drawCall struct {
	src, dst geom.Rect
}

type fakeCanvas struct{ calls []drawCall }

func (c *fakeCanvas) Draw(_ Texture, src, dst geom.Rect) {
	c.calls = append(c.calls, drawCall{src, dst})
}

func TestNewAtlasRowMajor(t *testing.T) {
	// Runner sheet: 7 frames on a 3x3 grid of 300x300.
	a, err := NewAtlas(fakeTexture{300, 300}, 7, 3, 3)
	require.NoError(t, err)

	assert.Equal(t, uint32(7), a.Frames())
	assert.Equal(t, geom.Size{W: 100, H: 100}, a.CellSize())
	assert.Equal(t, geom.NewRect(0, 0, 100, 100), a.Cell(0))
	assert.Equal(t, geom.NewRect(200, 0, 100, 100), a.Cell(2))
	assert.Equal(t, geom.NewRect(0, 100, 100, 100), a.Cell(3))
	assert.Equal(t, geom.NewRect(0, 200, 100, 100), a.Cell(6))
}

func TestAtlasCellPeriodic(t *testing.T) {
	a, err := NewAtlas(fakeTexture{300, 300}, 7, 3, 3)
	require.NoError(t, err)

	for _, frame := range []uint32{0, 6, 7, 13, 700, 7001, math.MaxUint32} {
		assert.Equal(t, a.Cell(frame%7), a.Cell(frame), "frame %d", frame)
	}
}

func TestNewAtlasRejectsBadGrid(t *testing.T) {
	tests := []struct {
		name                  string
		tex                   Texture
		frames, rows, columns uint32
	}{
		{"nil texture", nil, 1, 1, 1},
		{"zero frames", fakeTexture{10, 10}, 0, 1, 1},
		{"zero rows", fakeTexture{10, 10}, 1, 0, 1},
		{"zero columns", fakeTexture{10, 10}, 1, 1, 0},
		{"too many frames", fakeTexture{10, 10}, 5, 2, 2},
		{"image smaller than grid", fakeTexture{2, 2}, 1, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAtlas(tt.tex, tt.frames, tt.rows, tt.columns)
			assert.ErrorIs(t, err, ErrInvalidGrid)
		})
	}
}

func TestAtlasRenderStretchesIntoDestination(t *testing.T) {
	a, err := NewAtlas(fakeTexture{200, 80}, 1, 1, 1)
	require.NoError(t, err)

	var c fakeCanvas
	dst := geom.NewRect(540, 400, 80, 80)
	a.Render(&c, 12, dst)

	require.Len(t, c.calls, 1)
	assert.Equal(t, geom.NewRect(0, 0, 200, 80), c.calls[0].src)
	assert.Equal(t, dst, c.calls[0].dst)
}

func TestNewClockTicksPerFrame(t *testing.T) {
	c, err := NewClock(7, 60, 15)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), c.TicksPerFrame())

	_, err = NewClock(7, 60, 0)
	assert.ErrorIs(t, err, ErrZeroRate)

	// Animation faster than the simulation truncates to zero.
	_, err = NewClock(7, 10, 60)
	assert.ErrorIs(t, err, ErrZeroRate)

	_, err = NewClock(0, 60, 15)
	assert.ErrorIs(t, err, ErrZeroRate)
}

func TestClockAdvance(t *testing.T) {
	for _, tc := range []struct {
		count, sim, anim uint32
		renders          int
	}{
		{7, 60, 15, 0},
		{7, 60, 15, 3},
		{7, 60, 15, 4},
		{7, 60, 15, 29},
		{7, 60, 15, 1000},
		{1, 60, 1, 500},
		{3, 60, 60, 10},
	} {
		c, err := NewClock(tc.count, tc.sim, tc.anim)
		require.NoError(t, err)
		for i := 0; i < tc.renders; i++ {
			c.Advance()
		}
		k := int(tc.sim / tc.anim)
		want := uint32((tc.renders / k) % int(tc.count))
		assert.Equal(t, want, c.Frame(), "count=%d k=%d renders=%d", tc.count, k, tc.renders)
	}
}

func TestClockWrapsAtCounterOverflow(t *testing.T) {
	c, err := NewClock(4, 60, 60)
	require.NoError(t, err)
	c.current = math.MaxUint32

	assert.Equal(t, uint32(math.MaxUint32%4), c.Frame())
	c.Advance()
	assert.Equal(t, uint32(0), c.Counter())
	assert.Equal(t, uint32(0), c.Frame())
}
