// Package renderer defines the drawing contract the game loop relies on and a
// headless implementation of it.
package renderer

import (
	"image"
	"image/color"

	"github.com/Faultbox/sandrunner/internal/sprite"
	"github.com/Faultbox/sandrunner/pkg/geom"
)

// Renderer is a frame-based 2D drawing surface.
// Color and blend configuration are the backend's business.
type Renderer interface {
	sprite.Canvas

	// Clear resets the frame buffer.
	Clear()
	// Outline draws a one-pixel rectangle border, used for debug overlays.
	Outline(r geom.Rect, c color.RGBA)
	// Present shows the finished frame.
	Present()
}

// Loader creates textures for a specific backend.
type Loader interface {
	// LoadTexture loads an image file. A failure means the asset is missing
	// or corrupt.
	LoadTexture(path string) (sprite.Texture, error)
	// TextureFromImage uploads an in-memory image.
	TextureFromImage(img *image.RGBA) (sprite.Texture, error)
}

// Backend bundles everything the loop needs from a platform.
type Backend interface {
	Renderer
	Loader
	Close()
}
