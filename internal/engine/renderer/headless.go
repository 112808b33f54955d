package renderer

import (
	"image"
	"image/color"

	"github.com/Faultbox/sandrunner/internal/sprite"
	"github.com/Faultbox/sandrunner/pkg/geom"
)

// PlaceholderSize is the pixel size reported for textures loaded headlessly.
const PlaceholderSize = 1024

// Placeholder is a texture with a size but no pixels.
type Placeholder struct {
	Path string
	W, H int
}

// Size implements sprite.Texture.
func (p *Placeholder) Size() (int, int) {
	return p.W, p.H
}

// OpKind identifies a recorded drawing call.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpDraw
	OpOutline
	OpPresent
)

// Op is one recorded drawing call.
type Op struct {
	Kind    OpKind
	Texture sprite.Texture
	Src     geom.Rect
	Dst     geom.Rect
	Color   color.RGBA
}

// Recorder is a headless Backend that records drawing calls per frame.
// Only the most recent frame is kept.
type Recorder struct {
	ops    []Op
	last   []Op
	frames int
}

// NewRecorder creates a headless backend.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear() {
	r.ops = append(r.ops[:0], Op{Kind: OpClear})
}

func (r *Recorder) Draw(tex sprite.Texture, src, dst geom.Rect) {
	r.ops = append(r.ops, Op{Kind: OpDraw, Texture: tex, Src: src, Dst: dst})
}

func (r *Recorder) Outline(rect geom.Rect, c color.RGBA) {
	r.ops = append(r.ops, Op{Kind: OpOutline, Dst: rect, Color: c})
}

func (r *Recorder) Present() {
	r.ops = append(r.ops, Op{Kind: OpPresent})
	r.last = append(r.last[:0], r.ops...)
	r.frames++
}

// LastFrame returns the calls of the most recently presented frame.
func (r *Recorder) LastFrame() []Op {
	return r.last
}

// Frames returns how many frames were presented.
func (r *Recorder) Frames() int {
	return r.frames
}

// LoadTexture returns a placeholder without touching the file system, so
// headless runs work without assets.
func (r *Recorder) LoadTexture(path string) (sprite.Texture, error) {
	return &Placeholder{Path: path, W: PlaceholderSize, H: PlaceholderSize}, nil
}

func (r *Recorder) TextureFromImage(img *image.RGBA) (sprite.Texture, error) {
	b := img.Bounds()
	return &Placeholder{W: b.Dx(), H: b.Dy()}, nil
}

func (r *Recorder) Close() {}
