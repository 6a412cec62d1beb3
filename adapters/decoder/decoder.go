// Package decoder provides format-specific image decoders.
package decoder

import (
	"context"
	"image"
	"io"

	"github.com/Skryldev/grayscale/core"
	apperrors "github.com/Skryldev/grayscale/errors"
)

// RegisterAll registers every built-in decoder with reg.
func RegisterAll(reg core.Registry, autoOrient bool) {
	reg.RegisterDecoder(core.FormatJPEG, NewJPEG(autoOrient))
	reg.RegisterDecoder(core.FormatPNG, NewPNG())
	reg.RegisterDecoder(core.FormatGIF, NewGIF())
	reg.RegisterDecoder(core.FormatBMP, NewBMP())
	reg.RegisterDecoder(core.FormatTIFF, NewTIFF())
	reg.RegisterDecoder(core.FormatWebP, NewWebP())
}

// decodeFunc is the signature shared by the image/* and x/image decoders.
type decodeFunc func(io.Reader) (image.Image, error)

// decode runs fn and wraps the result in an ImageData tagged with format.
func decode(ctx context.Context, op string, format core.Format, r io.Reader, fn decodeFunc) (*core.ImageData, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, op, err)
	}

	img, err := fn(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, op, err)
	}
	return newImageData(img, format), nil
}

func newImageData(img image.Image, format core.Format) *core.ImageData {
	bounds := img.Bounds()
	return &core.ImageData{
		Image:  img,
		Format: format,
		Meta: core.Metadata{
			Width:      bounds.Dx(),
			Height:     bounds.Dy(),
			Format:     format,
			ColorSpace: colorSpace(img),
			HasAlpha:   hasAlpha(img),
		},
	}
}

// colorSpace returns the colour space of an image.Image.
func colorSpace(img image.Image) core.ColorSpace {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return core.ColorSpaceGray
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return core.ColorSpaceRGBA
	case *image.CMYK:
		return core.ColorSpaceCMYK
	}
	return core.ColorSpaceRGB
}

// hasAlpha reports whether any pixel is not fully opaque.
func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}
