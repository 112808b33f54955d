package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sandrunner/internal/engine/renderer"
	"github.com/Faultbox/sandrunner/internal/sprite"
)

type countingLoader struct {
	*renderer.Recorder
	loads []string
}

func (c *countingLoader) LoadTexture(path string) (sprite.Texture, error) {
	c.loads = append(c.loads, path)
	return c.Recorder.LoadTexture(path)
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestResolvePrefersLastDir(t *testing.T) {
	base, mod := t.TempDir(), t.TempDir()
	touch(t, filepath.Join(base, "assets", "runner.png"))
	touch(t, filepath.Join(base, "assets", "car.png"))
	touch(t, filepath.Join(mod, "assets", "runner.png"))

	m := NewManager(renderer.NewRecorder(), base)
	m.AddDir(mod)

	got, err := m.Resolve("assets/runner.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(mod, "assets", "runner.png"), got)

	got, err = m.Resolve("assets/car.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "assets", "car.png"), got)

	_, err = m.Resolve("assets/missing.png")
	assert.True(t, errors.Is(err, ErrNotFound))

	abs := filepath.Join(base, "elsewhere.png")
	got, err = m.Resolve(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, got)
}

func TestLoadTextureCaches(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "runner.png"))

	loader := &countingLoader{Recorder: renderer.NewRecorder()}
	m := NewManager(loader, dir)

	a, err := m.LoadTexture("runner.png")
	require.NoError(t, err)
	b, err := m.LoadTexture("runner.png")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Len(t, loader.loads, 1)
	hits, misses := m.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestLoadTextureMissing(t *testing.T) {
	loader := &countingLoader{Recorder: renderer.NewRecorder()}
	m := NewManager(loader, t.TempDir())

	_, err := m.LoadTexture("nope.png")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, loader.loads)
}

func TestCacheClear(t *testing.T) {
	c := NewCache()
	c.Set("a", &renderer.Placeholder{W: 1, H: 1})
	_, ok := c.Get("a")
	assert.True(t, ok)

	c.Clear()
	_, ok = c.Get("a")
	assert.False(t, ok)
	hits, misses := c.Stats()
	assert.Equal(t, 0, hits)
	assert.Equal(t, 1, misses)
}
