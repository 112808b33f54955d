// Package texture decodes sprite images into RGBA pixel buffers.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // PNG decoder registration
	"os"

	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
)

// Load reads and decodes an image file (PNG or BMP) into RGBA.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image %s: %w", path, err)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes image data of any registered format into RGBA.
func Decode(data []byte) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA converts img to an RGBA buffer with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Background gradient colors.
var (
	Sand     = color.RGBA{R: 0xFB, G: 0xB6, B: 0x52, A: 0xFF}
	DarkBlue = color.RGBA{R: 0x00, G: 0x90, B: 0xC4, A: 0xFF}
)

// Gradient builds a vertical gradient that blends from top at row 0 to
// bottom at the last row. Channels are mixed with integer arithmetic.
func Gradient(width, height int, top, bottom color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		c := color.RGBA{
			R: mix(bottom.R, top.R, y, height),
			G: mix(bottom.G, top.G, y, height),
			B: mix(bottom.B, top.B, y, height),
			A: 0xFF,
		}
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func mix(to, from uint8, y, height int) uint8 {
	return uint8(int(to)*y/height + int(from)*(height-y)/height)
}

// Average returns the mean color of the pixels inside r.
// It is used by backends that can only show one color per cell.
func Average(img *image.RGBA, r image.Rectangle) color.RGBA {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return color.RGBA{}
	}
	var sr, sg, sb, sa, n int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.RGBAAt(x, y)
			sr += int(c.R)
			sg += int(c.G)
			sb += int(c.B)
			sa += int(c.A)
			n++
		}
	}
	return color.RGBA{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n), A: uint8(sa / n)}
}
