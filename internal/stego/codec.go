package stego

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/shinji-kodama/lsb-steg/internal/bitstream"
	"github.com/shinji-kodama/lsb-steg/internal/model"
)

var (
	// ErrInvalidBitDepth is returned for depths outside 1..8.
	ErrInvalidBitDepth = errors.New("invalid bit depth")

	// ErrSecretTooLarge is returned when the payload needs more channels
	// than the carrier has.
	ErrSecretTooLarge = errors.New("the secret is too large to be encoded")

	// ErrSecretContainsDelimiter is returned when the secret would make the
	// embedded stream ambiguous: it contains four consecutive '#' or ends
	// with '#'.
	ErrSecretContainsDelimiter = errors.New("the secret would be confused with the delimiter")

	// ErrSecretNotFound is returned when no delimiter-terminated secret was
	// recovered, usually because a different bit depth was used.
	ErrSecretNotFound = errors.New("use the same amount of encoding bits for decoding the image secret")
)

var (
	delimiter       = []byte(model.Delimiter)
	delimiterPrefix = delimiter[:len(delimiter)-1]
)

// Encode embeds secret into img in place using depth low bits per channel.
func Encode(img *image.NRGBA, secret []byte, depth model.BitDepth) error {
	if err := depth.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBitDepth, err)
	}
	// Decode treats any "####" as the start of the delimiter, so the
	// secret may not contain one nor run into the delimiter with a '#'.
	if bytes.Contains(secret, delimiterPrefix) || bytes.HasSuffix(secret, delimiter[:1]) {
		return fmt.Errorf("%w: it must not contain %q or end with %q",
			ErrSecretContainsDelimiter, delimiterPrefix, delimiter[:1])
	}

	payload := make([]byte, 0, len(secret)+len(delimiter))
	payload = append(payload, secret...)
	payload = append(payload, delimiter...)

	r := bitstream.NewReader(payload)
	if !fitsBits(img, r.Len(), depth) {
		c := CapacityOf(img, depth)
		return fmt.Errorf("%w: %d bytes requested, %d available at %d bits per channel",
			ErrSecretTooLarge, len(secret), c.MaxSecretBytes, depth)
	}

	width := int(depth)
	eachChannel(img, func(c *uint8) bool {
		if r.Remaining() == 0 {
			return false
		}
		chunk, n := r.Next(width)
		*c = *c&^lowMask(n) | chunk
		return true
	})
	return nil
}

// Decode recovers a secret previously embedded with the same depth.
// The returned slice does not include the delimiter.
func Decode(img *image.NRGBA, depth model.BitDepth) ([]byte, error) {
	if err := depth.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBitDepth, err)
	}

	var a bitstream.Assembler
	width := int(depth)
	found := false

	eachChannel(img, func(c *uint8) bool {
		if a.HasSuffix(delimiter) {
			found = true
			return false
		}

		// Possibly the short final chunk of the last delimiter byte.
		if a.HasSuffix(delimiterPrefix) && width+a.Pending() >= 8 {
			short := 8 - a.Pending()
			snap := a.Snapshot()
			a.Push(*c&lowMask(short), short)
			if a.HasSuffix(delimiter) {
				found = true
				return false
			}
			a.Restore(snap)
		}

		a.Push(*c&lowMask(width), width)
		return true
	})

	if !found && !a.HasSuffix(delimiter) {
		return nil, ErrSecretNotFound
	}

	recovered := a.Bytes()
	secret := make([]byte, len(recovered)-len(delimiter))
	copy(secret, recovered)
	return secret, nil
}

// eachChannel calls fn for the R, G and B channel of every pixel in
// row-major order until fn returns false.
func eachChannel(img *image.NRGBA, fn func(c *uint8) bool) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			off := img.PixOffset(x, y)
			for i := 0; i < 3; i++ {
				if !fn(&img.Pix[off+i]) {
					return
				}
			}
		}
	}
}

// lowMask returns a byte with the n lowest bits set.
func lowMask(n int) uint8 {
	return uint8(1)<<n - 1
}
