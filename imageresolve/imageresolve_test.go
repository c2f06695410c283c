package imageresolve_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwpxmd/imageresolve"
)

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 128, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestResolveSmallPNGPassesThroughDimensions(t *testing.T) {
	raw := testPNG(t, 40, 20)
	entry := imageresolve.Resolve(3, raw)

	assert.Equal(t, 3, entry.ID)
	assert.Equal(t, "image/png", entry.MediaType)
	assert.NotEmpty(t, entry.Name)

	img, _, err := image.Decode(bytes.NewReader(entry.Data))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
}

func TestResolveOversizedImageIsCapped(t *testing.T) {
	raw := testPNG(t, 4096, 1024)
	entry := imageresolve.Resolve(0, raw)

	img, _, err := image.Decode(bytes.NewReader(entry.Data))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 2048)
	assert.LessOrEqual(t, img.Bounds().Dy(), 2048)
}

func TestResolveUndecodableBytesFallsBackToRaw(t *testing.T) {
	raw := []byte("not an image, just bytes")
	entry := imageresolve.Resolve(1, raw)

	assert.Equal(t, raw, entry.Data)
	assert.Equal(t, "application/octet-stream", entry.MediaType)
	assert.NotEmpty(t, entry.Name)
}

func TestResolveAssignsDistinctNames(t *testing.T) {
	raw := testPNG(t, 10, 10)
	a := imageresolve.Resolve(0, raw)
	b := imageresolve.Resolve(1, raw)
	assert.NotEqual(t, a.Name, b.Name)
}
