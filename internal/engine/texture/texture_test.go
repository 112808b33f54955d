package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 0xFF})
		}
	}
	return img
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(30, 20)))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 20), img.Bounds())
	assert.Equal(t, color.RGBA{R: 4, G: 9, B: 7, A: 0xFF}, img.RGBAAt(4, 9))
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage(8, 4)))

	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "car.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestGradient(t *testing.T) {
	img := Gradient(4, 480, DarkBlue, Sand)

	assert.Equal(t, DarkBlue, img.RGBAAt(0, 0), "top row is the top color")
	mid := img.RGBAAt(3, 240)
	assert.Equal(t, uint8(0xFB*240/480+0x00*240/480), mid.R)
	assert.Equal(t, uint8(0xB6*240/480+0x90*240/480), mid.G)
	assert.Equal(t, uint8(0x52*240/480+0xC4*240/480), mid.B)

	last := img.RGBAAt(0, 479)
	assert.Equal(t, uint8(0xFB*479/480), last.R)
	assert.Equal(t, img.RGBAAt(0, 100), img.RGBAAt(3, 100), "rows are uniform")
}

func TestAverage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 100, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 200, A: 255})
	assert.Equal(t, color.RGBA{R: 150, A: 255}, Average(img, img.Bounds()))
	assert.Equal(t, color.RGBA{}, Average(img, image.Rect(5, 5, 6, 6)))
}
