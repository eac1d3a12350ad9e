package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/shinji-kodama/lsb-steg/internal/model"
)

// sampleImage returns a small image with distinct pixel values so that
// ordering mistakes are visible in assertions.
func sampleImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			v := uint8(40*y + 10*x)
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v + 1, B: v + 2, A: 255})
		}
	}
	return img
}

// writeFixture encodes img with enc into dir/name and returns the path.
func writeFixture(t *testing.T, dir, name string, enc func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, enc(&buf))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// requireCLIError asserts err is a CLIError with the expected exit code.
func requireCLIError(t *testing.T, err error, code model.ExitCode) {
	t.Helper()
	require.Error(t, err)
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr), "expected *model.CLIError, got %T", err)
	assert.Equal(t, code, cliErr.Code)
}

func TestOpenImage_PNG(t *testing.T) {
	dir := t.TempDir()
	src := sampleImage()
	path := writeFixture(t, dir, "in.png", func(b *bytes.Buffer) error { return png.Encode(b, src) })

	img, err := OpenImage(path)
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, src.Pix, img.Pixels.Pix)
}

func TestOpenImage_BMP(t *testing.T) {
	dir := t.TempDir()
	src := sampleImage()
	path := writeFixture(t, dir, "in.bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, src) })

	img, err := OpenImage(path)
	require.NoError(t, err)
	assert.Equal(t, "bmp", img.Format)
	assert.Equal(t, src.Pix, img.Pixels.Pix)
}

func TestOpenImage_NotFound(t *testing.T) {
	_, err := OpenImage(filepath.Join(t.TempDir(), "image.png"))
	requireCLIError(t, err, model.ExitInputNotFound)
	assert.Contains(t, err.Error(), "an error occurred opening the image")
}

func TestOpenImage_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := OpenImage(path)
	requireCLIError(t, err, model.ExitUnsupportedImage)
	assert.Contains(t, err.Error(), "an error occurred decoding the image")
}

// TestToNRGBA_DropsAlpha verifies that translucent pixels keep their
// straight colour values and become opaque.
func TestToNRGBA_DropsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.SetNRGBA(5, 5, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	src.SetNRGBA(6, 5, color.NRGBA{R: 10, G: 20, B: 30, A: 0})

	dst := ToNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 1), dst.Bounds())
	assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, dst.NRGBAAt(0, 0))
	assert.Equal(t, uint8(255), dst.NRGBAAt(1, 0).A)
}

func TestIsPNGPath(t *testing.T) {
	assert.True(t, IsPNGPath("out.png"))
	assert.True(t, IsPNGPath("dir/OUT.PNG"))
	assert.False(t, IsPNGPath("out.jpg"))
	assert.False(t, IsPNGPath("png"))
	assert.False(t, IsPNGPath("out"))
}

func TestSaveImage_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.png")
	src := sampleImage()

	require.NoError(t, SaveImage(path, src))

	img, err := OpenImage(path)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, img.Pixels.Pix)

	// No temporary files are left next to the output.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveImage_RejectsNonPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	err := SaveImage(path, sampleImage())
	requireCLIError(t, err, model.ExitInvalidArgument)
	assert.Contains(t, err.Error(), "PNG format")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written")
}
