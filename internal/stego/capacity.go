package stego

import (
	"image"

	"github.com/shinji-kodama/lsb-steg/internal/model"
)

// CapacityOf reports how much data img can carry at depth.
func CapacityOf(img image.Image, depth model.BitDepth) model.Capacity {
	b := img.Bounds()
	return model.NewCapacity(b.Dx(), b.Dy(), depth)
}

// Fits reports whether a secret of secretLen bytes, plus the delimiter,
// can be embedded in img at depth.
func Fits(img image.Image, secretLen int, depth model.BitDepth) bool {
	if !depth.IsValid() || secretLen < 0 {
		return false
	}
	return fitsBits(img, (secretLen+len(model.Delimiter))*8, depth)
}

// fitsBits checks ceil(bits/depth) chunks against the channel count.
func fitsBits(img image.Image, bits int, depth model.BitDepth) bool {
	d := int(depth)
	chunks := (bits + d - 1) / d
	b := img.Bounds()
	return chunks <= b.Dx()*b.Dy()*3
}
