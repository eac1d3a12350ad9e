package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/shinji-kodama/lsb-steg/internal/model"
)

// Image is a decoded carrier together with the format it was read from.
type Image struct {
	// Pixels holds the opaque RGB data, origin at (0, 0).
	Pixels *image.NRGBA

	// Format is the name reported by the decoder, e.g. "png" or "jpeg".
	Format string
}

// OpenImage reads and decodes the image at path.
//
// Returns a CLIError with ExitInputNotFound if the file cannot be opened
// and ExitUnsupportedImage if it is not a decodable image.
func OpenImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		code := model.ExitGeneralError
		if os.IsNotExist(err) {
			code = model.ExitInputNotFound
		}
		return nil, model.WrapCLIError(code, "an error occurred opening the image", err)
	}
	defer func() { _ = f.Close() }()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitUnsupportedImage,
			fmt.Sprintf("an error occurred decoding the image %s", path), err)
	}

	return &Image{Pixels: ToNRGBA(src), Format: format}, nil
}

// ToNRGBA copies src into a new opaque NRGBA image anchored at the origin.
// Colour values are un-premultiplied and alpha is discarded.
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, _ := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			c.A = 0xff
			dst.SetNRGBA(x-b.Min.X, y-b.Min.Y, c)
		}
	}
	return dst
}

// IsPNGPath reports whether path has a .png extension (case-insensitive).
func IsPNGPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".png")
}

// SaveImage writes img to path as PNG.
//
// The path must end in .png. The file is written to a temporary sibling
// first and renamed into place, so a failed write never leaves a
// truncated image behind.
func SaveImage(path string, img image.Image) error {
	if !IsPNGPath(path) {
		return model.NewCLIError(model.ExitInvalidArgument,
			fmt.Sprintf("image must be saved with PNG format: %s", path))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "image could not be encoded as PNG", err)
	}

	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "encoded image could not be saved", err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	// Best-effort cleanup; after a successful rename the file no longer exists.
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", tmpName, path, err)
	}
	return nil
}
