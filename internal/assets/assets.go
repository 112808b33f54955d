// Package assets resolves asset paths against search directories and caches
// loaded textures.
package assets

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/Faultbox/sandrunner/internal/engine/renderer"
	"github.com/Faultbox/sandrunner/internal/sprite"
)

// ErrNotFound is returned when no search directory holds a file.
var ErrNotFound = errors.New("asset not found")

// Manager is a renderer.Loader that finds files in its directories and
// uploads each one only once.
type Manager struct {
	loader renderer.Loader
	dirs   []string
	cache  *Cache
	mu     sync.RWMutex
}

// NewManager wraps loader. Directories are searched in reverse order, so the
// last one added has the highest priority.
func NewManager(loader renderer.Loader, dirs ...string) *Manager {
	return &Manager{
		loader: loader,
		dirs:   dirs,
		cache:  NewCache(),
	}
}

// AddDir adds a search directory with the highest priority.
func (m *Manager) AddDir(dir string) {
	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()
}

// Resolve returns the first existing candidate for path. Absolute paths are
// returned unchanged.
func (m *Manager) Resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.dirs) - 1; i >= 0; i-- {
		candidate := filepath.Join(m.dirs[i], path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, path)
}

// LoadTexture resolves path and loads it through the wrapped loader, reusing
// earlier results.
func (m *Manager) LoadTexture(path string) (sprite.Texture, error) {
	resolved, err := m.Resolve(path)
	if err != nil {
		return nil, err
	}
	if tex, ok := m.cache.Get(resolved); ok {
		return tex, nil
	}

	tex, err := m.loader.LoadTexture(resolved)
	if err != nil {
		return nil, err
	}
	m.cache.Set(resolved, tex)
	return tex, nil
}

// TextureFromImage is passed through; generated images are not cached.
func (m *Manager) TextureFromImage(img *image.RGBA) (sprite.Texture, error) {
	return m.loader.TextureFromImage(img)
}

// Stats returns cache hits and misses.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Cache is a simple in-memory cache for loaded textures.
type Cache struct {
	data map[string]sprite.Texture
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]sprite.Texture),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (sprite.Texture, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tex, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return tex, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, tex sprite.Texture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = tex
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]sprite.Texture)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
