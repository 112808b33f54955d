// Package sprite implements sprite atlases and render-driven animation clocks.
package sprite

import (
	"errors"
	"fmt"

	"github.com/Faultbox/sandrunner/pkg/geom"
)

// ErrInvalidGrid is returned when an atlas grid cannot be partitioned.
var ErrInvalidGrid = errors.New("invalid atlas grid")

// Texture is a loaded image owned by a rendering backend.
// The atlas only needs its pixel size; the handle itself is opaque.
type Texture interface {
	Size() (w, h int)
}

// Canvas receives sprite copies. Backends implement it.
type Canvas interface {
	// Draw copies the src region of tex into dst, scaling as needed.
	Draw(tex Texture, src, dst geom.Rect)
}

// Atlas is a texture partitioned into equally sized animation frames.
type Atlas struct {
	texture Texture
	cells   []geom.Rect
}

// NewAtlas partitions tex into a rows x columns grid and keeps the first
// frames cells in row-major order.
func NewAtlas(tex Texture, frames, rows, columns uint32) (*Atlas, error) {
	if tex == nil {
		return nil, fmt.Errorf("%w: nil texture", ErrInvalidGrid)
	}
	if frames == 0 || rows == 0 || columns == 0 {
		return nil, fmt.Errorf("%w: frames=%d rows=%d columns=%d", ErrInvalidGrid, frames, rows, columns)
	}
	if frames > rows*columns {
		return nil, fmt.Errorf("%w: %d frames do not fit a %dx%d grid", ErrInvalidGrid, frames, rows, columns)
	}

	width, height := tex.Size()
	cellW := width / int(columns)
	cellH := height / int(rows)
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("%w: %dx%d image is too small for a %dx%d grid", ErrInvalidGrid, width, height, rows, columns)
	}

	return &Atlas{
		texture: tex,
		cells:   Cells(frames, columns, cellW, cellH),
	}, nil
}

// Cells lays out frames cells of cellW x cellH in row-major order.
func Cells(frames, columns uint32, cellW, cellH int) []geom.Rect {
	cells := make([]geom.Rect, frames)
	for i := uint32(0); i < frames; i++ {
		col := int(i % columns)
		row := int(i / columns)
		cells[i] = geom.NewRect(col*cellW, row*cellH, cellW, cellH)
	}
	return cells
}

// Frames returns the number of frames in the atlas.
func (a *Atlas) Frames() uint32 {
	return uint32(len(a.cells))
}

// Texture returns the backing texture.
func (a *Atlas) Texture() Texture {
	return a.texture
}

// Cell returns the sub-region for frame. Any index is valid; it wraps
// modulo the frame count.
func (a *Atlas) Cell(frame uint32) geom.Rect {
	return a.cells[frame%uint32(len(a.cells))]
}

// CellSize returns the size of one frame.
func (a *Atlas) CellSize() geom.Size {
	c := a.cells[0]
	return geom.Size{W: c.W, H: c.H}
}

// Render copies the cell for frame into dst on canvas.
func (a *Atlas) Render(canvas Canvas, frame uint32, dst geom.Rect) {
	canvas.Draw(a.texture, a.Cell(frame), dst)
}
