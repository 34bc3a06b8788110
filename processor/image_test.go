package processor

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aakash/content-server/apperror"
)

func testImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeBounds(t *testing.T, data []byte) image.Rectangle {
	t.Helper()
	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds()
}

func TestResizeShrinksToFit(t *testing.T) {
	data := testImage(t, 800, 400)

	out, err := Resize(data, 320, 320, "jpg", 80)
	require.NoError(t, err)

	bounds := decodeBounds(t, out)
	assert.LessOrEqual(t, bounds.Dx(), 320)
	assert.LessOrEqual(t, bounds.Dy(), 320)
	// aspect ratio preserved: 800x400 fit into 320x320 gives 320x160
	assert.Equal(t, 320, bounds.Dx())
	assert.Equal(t, 160, bounds.Dy())
}

func TestResizeDoesNotEnlarge(t *testing.T) {
	data := testImage(t, 100, 80)

	out, err := Resize(data, 1080, 1080, "jpg", 80)
	require.NoError(t, err)

	bounds := decodeBounds(t, out)
	assert.Equal(t, 100, bounds.Dx())
	assert.Equal(t, 80, bounds.Dy())
}

func TestResizeGarbageInput(t *testing.T) {
	_, err := Resize([]byte("definitely not an image"), 320, 320, "jpg", 80)
	var procErr *apperror.ProcessingError
	require.True(t, errors.As(err, &procErr))
}

func TestResizeUnsupportedFormat(t *testing.T) {
	data := testImage(t, 10, 10)

	_, err := Resize(data, 320, 320, "webp2000", 80)
	var procErr *apperror.ProcessingError
	require.True(t, errors.As(err, &procErr))
}

func TestCompressKeepsDimensions(t *testing.T) {
	data := testImage(t, 200, 150)

	out, err := Compress(data, "jpg", 60)
	require.NoError(t, err)

	bounds := decodeBounds(t, out)
	assert.Equal(t, 200, bounds.Dx())
	assert.Equal(t, 150, bounds.Dy())
}
