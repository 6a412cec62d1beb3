// Package luma computes perceptual grayscale values using the BT.601 luma
// weights (0.299, 0.587, 0.114) applied directly to stored channel values.
// No gamma correction is performed.
package luma

import (
	"image"

	"github.com/disintegration/imaging"

	apperrors "github.com/Skryldev/grayscale/errors"
)

// Weights are scaled by 1000 so the weighted sum can be floored exactly.
const (
	weightR = 299
	weightG = 587
	weightB = 114
	scale   = weightR + weightG + weightB
)

// Value returns floor(0.299*r + 0.587*g + 0.114*b).
func Value(r, g, b uint8) uint8 {
	return uint8((weightR*uint32(r) + weightG*uint32(g) + weightB*uint32(b)) / scale)
}

// RawImage is a row-major RGBA pixel buffer with no row padding.
type RawImage struct {
	Pix    []byte
	Width  uint32
	Height uint32
}

// Valid reports whether len(Pix) == Width*Height*4.
func (r *RawImage) Valid() bool {
	return uint64(len(r.Pix)) == uint64(r.Width)*uint64(r.Height)*4
}

// ApplyInPlace sets R=G=B=Value(R,G,B) for every pixel, leaving alpha
// untouched. The buffer is not read at all when its length does not match
// the declared dimensions.
func ApplyInPlace(r *RawImage) error {
	if r == nil || !r.Valid() {
		return apperrors.New(apperrors.CategoryInput, "luma.apply", apperrors.ErrInvalidDimensions)
	}
	grayRGBA(r.Pix)
	return nil
}

// Transform is the buffer-mode entry point. It returns a new buffer holding
// the grayscale pixels, or a zero-length buffer when len(pix) != width*height*4.
// pix itself is never modified.
func Transform(pix []byte, width, height uint32) []byte {
	out := &RawImage{Pix: append([]byte(nil), pix...), Width: width, Height: height}
	if err := ApplyInPlace(out); err != nil {
		return []byte{}
	}
	if out.Pix == nil {
		return []byte{}
	}
	return out.Pix
}

// FromImage converts any decoded image to a single-channel 8-bit image.
// Channels are taken non-premultiplied; alpha is dropped.
func FromImage(img image.Image) *image.Gray {
	src := imaging.Clone(img)
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+b.Dx()*4]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+b.Dx()]
		for x := range d {
			d[x] = Value(s[x*4], s[x*4+1], s[x*4+2])
		}
	}
	return dst
}

// FromImageAlpha is like FromImage but keeps the source alpha, returning an
// NRGBA image with R=G=B.
func FromImageAlpha(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	grayRGBA(dst.Pix)
	return dst
}

func grayRGBA(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		v := Value(pix[i], pix[i+1], pix[i+2])
		pix[i], pix[i+1], pix[i+2] = v, v, v
	}
}
