// Package encoder provides format-specific image encoders.
package encoder

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/Skryldev/grayscale/core"
	apperrors "github.com/Skryldev/grayscale/errors"
)

// PNG encodes images to PNG format. Gray images are written as 8-bit
// grayscale PNGs, so the round trip through a PNG decoder is lossless.
type PNG struct {
	DefaultCompression core.Compression // used when EncodeOptions.Compression is empty
}

func NewPNG(defaultCompression core.Compression) *PNG {
	return &PNG{DefaultCompression: defaultCompression}
}

func (p *PNG) CanEncode(format core.Format) bool { return format == core.FormatPNG }

func (p *PNG) Encode(ctx context.Context, img *core.ImageData, opts core.EncodeOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryEncode, "png.encode", err)
	}

	src, err := sourceImage(img, "png.encode")
	if err != nil {
		return nil, err
	}

	c := opts.Compression
	if c == "" {
		c = p.DefaultCompression
	}
	enc := &png.Encoder{CompressionLevel: compressionLevel(c)}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, src); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryEncode, "png.encode", err)
	}
	return buf.Bytes(), nil
}

func compressionLevel(c core.Compression) png.CompressionLevel {
	switch c {
	case core.CompressionNone:
		return png.NoCompression
	case core.CompressionSpeed:
		return png.BestSpeed
	case core.CompressionBest:
		return png.BestCompression
	}
	return png.DefaultCompression
}

// sourceImage extracts a non-empty image from img.
func sourceImage(img *core.ImageData, op string) (image.Image, error) {
	if img == nil || img.Image == nil {
		return nil, apperrors.New(apperrors.CategoryEncode, op, apperrors.ErrEmptyInput)
	}
	if img.Image.Bounds().Empty() {
		return nil, apperrors.New(apperrors.CategoryEncode, op, apperrors.ErrInvalidDimensions)
	}
	return img.Image, nil
}

// RegisterAll registers every built-in encoder with reg.
func RegisterAll(reg core.Registry, quality int, compression core.Compression) {
	reg.RegisterEncoder(core.FormatPNG, NewPNG(compression))
	reg.RegisterEncoder(core.FormatJPEG, NewJPEG(quality))
}
