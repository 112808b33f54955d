// Package debug provides debug visualization utilities.
package debug

import (
	"image/color"

	"github.com/Faultbox/sandrunner/internal/engine/renderer"
	"github.com/Faultbox/sandrunner/pkg/geom"
)

// Colors used for overlay outlines.
var (
	BoxColor     = color.RGBA{R: 0xFF, G: 0x20, B: 0x20, A: 0xFF}
	MarkerColor  = color.RGBA{R: 0x20, G: 0xFF, B: 0x20, A: 0xFF}
	ContactColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF}
)

// Markers are the fixed reference rectangles drawn with every overlay.
var Markers = []geom.Rect{
	geom.NewRect(10, 10, 100, 100),
	geom.NewRect(250, 250, 100, 200),
}

// Padded grows r by padding on every side.
func Padded(r geom.Rect, padding int) geom.Rect {
	return geom.NewRect(r.X-padding, r.Y-padding, r.W+2*padding, r.H+2*padding)
}

// Overlay draws bounding boxes on top of a finished scene.
type Overlay struct {
	Padding int
}

// Draw outlines every box, highlighting the ones in contact, then the fixed
// markers. It must run after the scene so outlines end up on top.
func (o Overlay) Draw(r renderer.Renderer, boxes []geom.Rect) {
	for i, b := range boxes {
		c := BoxColor
		if touching(boxes, i) {
			c = ContactColor
		}
		r.Outline(Padded(b, o.Padding), c)
	}
	for _, m := range Markers {
		r.Outline(m, MarkerColor)
	}
}

func touching(boxes []geom.Rect, i int) bool {
	for j, b := range boxes {
		if j != i && b.Intersects(boxes[i]) {
			return true
		}
	}
	return false
}
