// Package geom provides integer 2D geometry for sprite placement and collision.
package geom

// Rect is an axis-aligned rectangle in pixel space.
// It is used both for world placement and for atlas sub-regions.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle at (x, y) with the given size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects reports whether r and o overlap.
// Rectangles that only share an edge do not overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Translate returns r moved by v.
func (r Rect) Translate(v Vec) Rect {
	r.X += v.DX
	r.Y += v.DY
	return r
}

// Vec is an integer displacement, in pixels per tick when used as a velocity.
type Vec struct {
	DX, DY int
}

// Size is a width and height pair, used for the visible screen area.
type Size struct {
	W, H int
}
