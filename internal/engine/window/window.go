// Package window is the SDL2 backend: a window with a 2D accelerated
// renderer, image textures, and keyboard input.
package window

import (
	"fmt"
	"image"
	"image/color"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/sandrunner/internal/engine/input"
	"github.com/Faultbox/sandrunner/internal/engine/texture"
	"github.com/Faultbox/sandrunner/internal/logger"
	"github.com/Faultbox/sandrunner/internal/sprite"
	"github.com/Faultbox/sandrunner/pkg/geom"
)

func init() {
	// SDL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

// Window wraps an SDL2 window and its renderer.
type Window struct {
	config   Config
	window   *sdl.Window
	renderer *sdl.Renderer
	keys     input.Latch
	textures []*Texture
	log      *zap.Logger
}

// Texture is an uploaded SDL texture.
type Texture struct {
	tex  *sdl.Texture
	w, h int
}

// Size implements sprite.Texture.
func (t *Texture) Size() (int, int) {
	return t.w, t.h
}

// New creates the window and a renderer with alpha blending enabled.
func New(cfg Config) (*Window, error) {
	w := &Window{config: cfg, log: logger.Named("window")}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.window, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.renderer, err = sdl.CreateRenderer(w.window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		w.window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	if err := w.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		w.log.Warn("failed to enable alpha blending", zap.Error(err))
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
	)

	return w, nil
}

// Close releases textures, the renderer and the window, then shuts SDL down.
func (w *Window) Close() {
	w.log.Info("closing window")

	for _, t := range w.textures {
		t.tex.Destroy()
	}
	w.textures = nil
	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.window != nil {
		w.window.Destroy()
	}

	sdl.Quit()
}

// Size returns the current window size.
func (w *Window) Size() (int, int) {
	width, height := w.window.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.window.SetTitle(title)
}

// Clear fills the frame with black.
func (w *Window) Clear() {
	_ = w.renderer.SetDrawColor(0, 0, 0, 0xFF)
	_ = w.renderer.Clear()
}

// Draw copies a region of an SDL texture onto the frame. Textures from other
// backends are ignored.
func (w *Window) Draw(tex sprite.Texture, src, dst geom.Rect) {
	t, ok := tex.(*Texture)
	if !ok {
		return
	}
	s, d := toSDL(src), toSDL(dst)
	if err := w.renderer.Copy(t.tex, &s, &d); err != nil {
		w.log.Debug("copy failed", zap.Error(err))
	}
}

// Outline draws a rectangle border.
func (w *Window) Outline(r geom.Rect, c color.RGBA) {
	_ = w.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	rect := toSDL(r)
	_ = w.renderer.DrawRect(&rect)
}

// Present flips the frame to the screen.
func (w *Window) Present() {
	w.renderer.Present()
}

// LoadTexture decodes an image file and uploads it.
func (w *Window) LoadTexture(path string) (sprite.Texture, error) {
	img, err := texture.Load(path)
	if err != nil {
		return nil, err
	}
	return w.TextureFromImage(img)
}

// TextureFromImage uploads RGBA pixels as a static texture.
func (w *Window) TextureFromImage(img *image.RGBA) (sprite.Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("empty image %v", b)
	}

	// The surface owns its pixels; C must not keep a pointer into img.Pix.
	surface, err := sdl.CreateRGBSurfaceWithFormat(0, int32(b.Dx()), int32(b.Dy()), 32, uint32(sdl.PIXELFORMAT_RGBA32))
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	copyRows(surface.Pixels(), int(surface.Pitch), img)
	defer surface.Free()

	tex, err := w.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}
	_ = tex.SetBlendMode(sdl.BLENDMODE_BLEND)

	t := &Texture{tex: tex, w: b.Dx(), h: b.Dy()}
	w.textures = append(w.textures, t)
	return t, nil
}

// copyRows copies img row by row into a buffer with the given pitch.
func copyRows(dst []byte, pitch int, img *image.RGBA) {
	b := img.Bounds()
	row := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+row]
		copy(dst[y*pitch:y*pitch+row], src)
	}
}

// Poll drains the SDL event queue and returns the held-key snapshot.
// Arrow keys steer, Space and Up jump, Q, Escape and closing the window quit.
func (w *Window) Poll() input.Buttons {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.keys.Quit()
		case *sdl.KeyboardEvent:
			held := e.Type == sdl.KEYDOWN
			switch e.Keysym.Sym {
			case sdl.K_q, sdl.K_ESCAPE:
				if !held {
					w.keys.Quit()
				}
			default:
				for _, b := range keyMap[e.Keysym.Sym] {
					w.keys.Set(b, held)
				}
			}
		}
	}
	return w.keys.Buttons()
}

var keyMap = map[sdl.Keycode][]input.Button{
	sdl.K_LEFT:  {input.ButtonLeft},
	sdl.K_RIGHT: {input.ButtonRight},
	sdl.K_UP:    {input.ButtonUp, input.ButtonJump},
	sdl.K_DOWN:  {input.ButtonDown},
	sdl.K_SPACE: {input.ButtonJump},
}

func toSDL(r geom.Rect) sdl.Rect {
	return sdl.Rect{X: int32(r.X), Y: int32(r.Y), W: int32(r.W), H: int32(r.H)}
}
