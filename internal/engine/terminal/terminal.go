// Package terminal is a tcell backend that draws the scene as coloured
// character cells. Each cell covers a fixed block of world pixels.
package terminal

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/sandrunner/internal/engine/input"
	"github.com/Faultbox/sandrunner/internal/engine/texture"
	"github.com/Faultbox/sandrunner/internal/logger"
	"github.com/Faultbox/sandrunner/internal/sprite"
	"github.com/Faultbox/sandrunner/pkg/geom"
)

// HoldTicks is how long a key press counts as held. Terminals report no
// key-up events.
const HoldTicks = 6

// Texture is a decoded image kept in memory for cell sampling.
type Texture struct {
	img *image.RGBA
}

// Size implements sprite.Texture.
func (t *Texture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Terminal implements renderer.Backend and input.Source on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	world  geom.Size
	events chan tcell.Event
	done   chan struct{} // closed by Close
	pumped chan struct{} // closed when pump returns
	once   sync.Once
	hold   [input.NumButtons]int
	quit   bool
	log    *zap.Logger
}

// Open initializes the controlling terminal.
func Open(world geom.Size) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return New(screen, world), nil
}

// New wraps an initialized screen. world is the simulation's pixel size.
func New(screen tcell.Screen, world geom.Size) *Terminal {
	screen.HideCursor()
	t := &Terminal{
		screen: screen,
		world:  world,
		events: make(chan tcell.Event, 64),
		done:   make(chan struct{}),
		pumped: make(chan struct{}),
		log:    logger.Named("terminal"),
	}
	go t.pump()
	return t
}

// pump forwards screen events until the screen is finalized. It also stops
// when Close is called while nobody drains events.
func (t *Terminal) pump() {
	defer close(t.pumped)
	defer close(t.events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// Close restores the terminal. It is safe to call more than once.
func (t *Terminal) Close() {
	t.once.Do(func() {
		close(t.done)
		t.screen.Fini()
	})
}

// CellSize returns how many world pixels one character cell covers.
func (t *Terminal) CellSize() geom.Size {
	cols, rows := t.screen.Size()
	return geom.Size{W: ceilDiv(t.world.W, cols), H: ceilDiv(t.world.H, rows)}
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 1
	}
	if n := (a + b - 1) / b; n > 0 {
		return n
	}
	return 1
}

func (t *Terminal) Clear() {
	t.screen.Clear()
}

// Draw fills every cell whose centre lies inside dst with the average colour
// of the matching src block. Mostly transparent blocks are skipped.
func (t *Terminal) Draw(tex sprite.Texture, src, dst geom.Rect) {
	tt, ok := tex.(*Texture)
	if !ok || dst.Empty() || src.Empty() {
		return
	}
	cell := t.CellSize()
	cols, rows := t.screen.Size()

	for cy := max(dst.Y/cell.H, 0); cy < rows; cy++ {
		py := cy*cell.H + cell.H/2
		if py >= dst.Bottom() {
			break
		}
		if py < dst.Y {
			continue
		}
		for cx := max(dst.X/cell.W, 0); cx < cols; cx++ {
			px := cx*cell.W + cell.W/2
			if px >= dst.Right() {
				break
			}
			if px < dst.X {
				continue
			}
			block := sourceBlock(src, dst, geom.NewRect(cx*cell.W, cy*cell.H, cell.W, cell.H))
			c := texture.Average(tt.img, block)
			if c.A < 0x80 {
				continue
			}
			t.screen.SetContent(cx, cy, ' ', nil, tcell.StyleDefault.Background(rgb(c)))
		}
	}
}

// sourceBlock maps the part of a cell inside dst back to src pixels.
func sourceBlock(src, dst, cell geom.Rect) image.Rectangle {
	x0 := max(cell.X, dst.X) - dst.X
	y0 := max(cell.Y, dst.Y) - dst.Y
	x1 := min(cell.Right(), dst.Right()) - dst.X
	y1 := min(cell.Bottom(), dst.Bottom()) - dst.Y
	r := image.Rect(
		src.X+x0*src.W/dst.W,
		src.Y+y0*src.H/dst.H,
		src.X+x1*src.W/dst.W,
		src.Y+y1*src.H/dst.H,
	)
	if r.Dx() == 0 {
		r.Max.X = r.Min.X + 1
	}
	if r.Dy() == 0 {
		r.Max.Y = r.Min.Y + 1
	}
	return r
}

// Outline draws a box with line characters, keeping the cell backgrounds.
func (t *Terminal) Outline(r geom.Rect, c color.RGBA) {
	if r.Empty() {
		return
	}
	cell := t.CellSize()
	x0, y0 := r.X/cell.W, r.Y/cell.H
	x1, y1 := (r.Right()-1)/cell.W, (r.Bottom()-1)/cell.H

	for x := x0; x <= x1; x++ {
		t.stroke(x, y0, tcell.RuneHLine, c)
		t.stroke(x, y1, tcell.RuneHLine, c)
	}
	for y := y0; y <= y1; y++ {
		t.stroke(x0, y, tcell.RuneVLine, c)
		t.stroke(x1, y, tcell.RuneVLine, c)
	}
	t.stroke(x0, y0, tcell.RuneULCorner, c)
	t.stroke(x1, y0, tcell.RuneURCorner, c)
	t.stroke(x0, y1, tcell.RuneLLCorner, c)
	t.stroke(x1, y1, tcell.RuneLRCorner, c)
}

func (t *Terminal) stroke(x, y int, ch rune, c color.RGBA) {
	cols, rows := t.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	_, _, style, _ := t.screen.GetContent(x, y)
	t.screen.SetContent(x, y, ch, nil, style.Foreground(rgb(c)))
}

func (t *Terminal) Present() {
	t.screen.Show()
}

// LoadTexture decodes an image file into memory.
func (t *Terminal) LoadTexture(path string) (sprite.Texture, error) {
	img, err := texture.Load(path)
	if err != nil {
		return nil, err
	}
	return &Texture{img: img}, nil
}

func (t *Terminal) TextureFromImage(img *image.RGBA) (sprite.Texture, error) {
	return &Texture{img: img}, nil
}

// Poll drains pending key events. A press holds its button for HoldTicks
// polls; q, Escape and Ctrl-C quit.
func (t *Terminal) Poll() input.Buttons {
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				t.quit = true
				return t.snapshot()
			}
			t.handle(ev)
		default:
			return t.snapshot()
		}
	}
}

func (t *Terminal) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.quit = true
		case tcell.KeyLeft:
			t.press(input.ButtonLeft)
		case tcell.KeyRight:
			t.press(input.ButtonRight)
		case tcell.KeyUp:
			t.press(input.ButtonUp)
			t.press(input.ButtonJump)
		case tcell.KeyDown:
			t.press(input.ButtonDown)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				t.quit = true
			case ' ':
				t.press(input.ButtonJump)
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
		cols, rows := t.screen.Size()
		t.log.Debug("resized", zap.Int("cols", cols), zap.Int("rows", rows))
	}
}

func (t *Terminal) press(b input.Button) {
	t.hold[b] = HoldTicks
}

// snapshot reports held buttons and ages every hold by one tick.
func (t *Terminal) snapshot() input.Buttons {
	out := input.Buttons{Quit: t.quit}
	for i, n := range t.hold {
		if n > 0 {
			out = out.With(input.Button(i), true)
			t.hold[i]--
		}
	}
	return out
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
