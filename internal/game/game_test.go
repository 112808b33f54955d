package game

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sandrunner/internal/config"
	"github.com/Faultbox/sandrunner/internal/engine/audio"
	"github.com/Faultbox/sandrunner/internal/engine/input"
	"github.com/Faultbox/sandrunner/internal/engine/renderer"
	"github.com/Faultbox/sandrunner/internal/game/entity"
	"github.com/Faultbox/sandrunner/internal/sprite"
	"github.com/Faultbox/sandrunner/pkg/geom"
)

// With the default layout the runner falls onto the floor at x=20 and the
// car, driving left at 5px per tick, first reaches it on tick 95.
const firstLethalTick = 95

type cueLog []audio.Cue

func (c *cueLog) PlayCue(cue audio.Cue) error {
	*c = append(*c, cue)
	return nil
}

type sleepLog []time.Duration

func (s *sleepLog) sleep(d time.Duration) {
	*s = append(*s, d)
}

func newTestGame(t *testing.T, cfg *config.Config, frames []input.Buttons) (*Game, *renderer.Recorder, *cueLog, *sleepLog) {
	t.Helper()
	rec := renderer.NewRecorder()
	cues := &cueLog{}
	sleeps := &sleepLog{}
	g, err := New(cfg, Options{
		Backend: rec,
		Input:   input.NewScript(frames...),
		Cues:    cues,
		Sleep:   sleeps.sleep,
	})
	require.NoError(t, err)
	return g, rec, cues, sleeps
}

func TestRunUntilQuit(t *testing.T) {
	g, rec, cues, sleeps := newTestGame(t, config.Default(), input.Idle(100))

	res, err := g.Run()
	require.NoError(t, err)

	assert.False(t, res.Halted)
	assert.Equal(t, uint64(100), res.Stats.Ticks)
	assert.Equal(t, uint64(1), res.Stats.Lethal, "one hit spanning several ticks")
	assert.Zero(t, res.Stats.Landings)

	assert.Equal(t, 100, rec.Frames())
	require.Len(t, *sleeps, 100)
	assert.Equal(t, 16*time.Millisecond, (*sleeps)[0])

	assert.Equal(t, cueLog{audio.CueLethal}, *cues)

	assert.Equal(t, geom.NewRect(20, 430, 50, 50), g.World().Runner().Box)
	assert.Equal(t, 540-5*100, g.World().Car().Box.X)
}

func TestHaltOnLethal(t *testing.T) {
	cfg := config.Default()
	cfg.Game.HaltOnLethal = true
	g, rec, _, sleeps := newTestGame(t, cfg, input.Idle(200))

	res, err := g.Run()
	require.NoError(t, err)

	assert.True(t, res.Halted)
	assert.Equal(t, uint64(firstLethalTick), res.Stats.Ticks)
	assert.Equal(t, uint64(1), res.Stats.Lethal)
	assert.Equal(t, firstLethalTick, rec.Frames(), "the fatal frame is still presented")
	assert.Len(t, *sleeps, firstLethalTick-1)
}

func TestFrameZOrder(t *testing.T) {
	g, rec, _, _ := newTestGame(t, config.Default(), input.Idle(1))
	_, err := g.Run()
	require.NoError(t, err)

	ops := rec.LastFrame()
	require.Len(t, ops, 5)
	assert.Equal(t, renderer.OpClear, ops[0].Kind)
	assert.Equal(t, geom.NewRect(0, 0, 640, 480), ops[1].Dst, "background first")
	assert.Equal(t, g.World().Runner().Box, ops[2].Dst, "runner before car")
	assert.Equal(t, g.World().Car().Box, ops[3].Dst)
	assert.Equal(t, renderer.OpPresent, ops[4].Kind)
}

func TestDebugOverlayDrawnLast(t *testing.T) {
	cfg := config.Default()
	cfg.Game.ShowDebug = true
	g, rec, _, _ := newTestGame(t, cfg, input.Idle(1))
	_, err := g.Run()
	require.NoError(t, err)

	ops := rec.LastFrame()
	require.Len(t, ops, 5+4)
	for _, op := range ops[4:8] {
		assert.Equal(t, renderer.OpOutline, op.Kind)
	}
	assert.Equal(t, g.World().Runner().Box, ops[4].Dst)
	assert.Equal(t, geom.NewRect(250, 250, 100, 200), ops[7].Dst)
}

func TestGeneratedBackgroundMatchesScreen(t *testing.T) {
	cfg := config.Default()
	cfg.Graphics.Width, cfg.Graphics.Height = 320, 200
	bg, err := NewBackground(cfg, renderer.NewRecorder())
	require.NoError(t, err)

	w, h := bg.Texture().Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)
	assert.Equal(t, uint32(1), bg.Frames())
}

func TestJumpInputReachesRunner(t *testing.T) {
	// Let the runner settle on the floor first.
	frames := append(input.Idle(40), input.Buttons{Jump: true})
	g, _, _, _ := newTestGame(t, config.Default(), frames)
	_, err := g.Run()
	require.NoError(t, err)

	runner := g.World().Runner()
	assert.Equal(t, 430+entity.JumpImpulse, runner.Box.Y)
	assert.Equal(t, entity.Airborne, runner.Motion.(*entity.Jump).Phase())
}

func TestDirectionalMotionFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Runner.Motion = config.MotionDirectional
	g, _, _, _ := newTestGame(t, cfg, input.Hold(input.ButtonRight, 3))
	_, err := g.Run()
	require.NoError(t, err)

	assert.Equal(t, geom.NewRect(20+3*entity.WalkSpeed, 0, 50, 50), g.World().Runner().Box)
}

type failingLoader struct {
	*renderer.Recorder
	fail string
}

func (f failingLoader) LoadTexture(path string) (sprite.Texture, error) {
	if path == f.fail {
		return nil, errors.New("no such file")
	}
	return f.Recorder.LoadTexture(path)
}

func (f failingLoader) TextureFromImage(img *image.RGBA) (sprite.Texture, error) {
	return f.Recorder.TextureFromImage(img)
}

func TestMissingAssetIsAnError(t *testing.T) {
	cfg := config.Default()
	backend := failingLoader{Recorder: renderer.NewRecorder(), fail: cfg.Car.Path}

	_, err := New(cfg, Options{Backend: backend, Input: input.NewScript()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "car sprite sheet")
}

func TestBadGridIsAnError(t *testing.T) {
	cfg := config.Default()
	cfg.Runner.Frames = 12

	_, err := NewWorld(cfg, renderer.NewRecorder())
	require.ErrorIs(t, err, sprite.ErrInvalidGrid)
}

func TestLoaderOverridesBackend(t *testing.T) {
	cfg := config.Default()
	loader := failingLoader{Recorder: renderer.NewRecorder(), fail: cfg.Runner.Path}

	_, err := New(cfg, Options{Backend: renderer.NewRecorder(), Loader: loader, Input: input.NewScript()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runner sprite sheet")
}

func TestRestingOnCarCuesOnce(t *testing.T) {
	cfg := config.Default()
	cfg.Runner.X, cfg.Runner.Y = 600, 250
	cfg.Car.VelocityX = 0
	g, _, cues, _ := newTestGame(t, cfg, input.Idle(120))

	res, err := g.Run()
	require.NoError(t, err)

	assert.Equal(t, cueLog{audio.CueLanding}, *cues)
	assert.Equal(t, uint64(1), res.Stats.Landings)
	assert.Zero(t, res.Stats.Lethal)
	assert.Equal(t, 330, g.World().Runner().Box.Y, "runner stays on the car roof")
}

func TestInvalidConfigIsAnError(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.TickRate = 0

	_, err := New(cfg, Options{Backend: renderer.NewRecorder(), Input: input.NewScript()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tick_rate")
}
