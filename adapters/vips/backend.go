//go:build vips

// Package vips provides a libvips-backed Decoder. It needs cgo and libvips
// at build time, so it is only compiled with the "vips" build tag.
package vips

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"runtime"

	govips "github.com/davidbyttow/govips/v2/vips"

	"github.com/Skryldev/grayscale/core"
	apperrors "github.com/Skryldev/grayscale/errors"
	"github.com/Skryldev/grayscale/utils"
)

// BackendConfig configures the libvips backend.
type BackendConfig struct {
	MaxCacheSize int
	MaxWorkers   int
	ReportLeaks  bool
	AutoRotate   bool // apply the EXIF orientation before handing pixels over
}

// Backend decodes every container libvips understands (including HEIF and
// AVIF where libvips was built with them) into a Go image.Image.
// Safe for concurrent use across goroutines.
type Backend struct {
	cfg BackendConfig
}

// NewBackend initialises libvips and returns a ready Backend.
// Call Shutdown() when the process exits.
func NewBackend(cfg BackendConfig) *Backend {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = runtime.NumCPU()
	}
	govips.Startup(&govips.Config{
		ConcurrencyLevel: cfg.MaxWorkers,
		MaxCacheSize:     cfg.MaxCacheSize,
		ReportLeaks:      cfg.ReportLeaks,
	})
	return &Backend{cfg: cfg}
}

// Shutdown releases all libvips resources. Call once at process exit.
func (b *Backend) Shutdown() {
	govips.Shutdown()
}

func (b *Backend) CanDecode(f core.Format) bool {
	switch f {
	case core.FormatJPEG, core.FormatPNG, core.FormatGIF, core.FormatBMP, core.FormatTIFF, core.FormatWebP:
		return true
	}
	return false
}

func (b *Backend) Decode(ctx context.Context, r io.Reader) (*core.ImageData, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, "vips.decode", err)
	}

	buf, err := utils.DrainReader(ctx, r, 32*1024)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, "vips.decode.drain", err)
	}
	raw := utils.CloneBytes(buf.Bytes())
	utils.ReleaseBuffer(buf)

	ref, err := govips.NewImageFromBuffer(raw)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, "vips.decode", err)
	}
	defer ref.Close()

	format := vipsFormatToCore(ref.Format())
	if b.cfg.AutoRotate {
		if err := ref.AutoRotate(); err != nil {
			return nil, apperrors.Wrap(apperrors.CategoryDecode, "vips.decode.rotate", err)
		}
	}

	// Hand the pixels over losslessly through an uncompressed PNG.
	ep := govips.NewPngExportParams()
	ep.Compression = 0
	out, _, err := ref.ExportPng(ep)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, "vips.decode.export", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, "vips.decode.import", err)
	}

	bounds := img.Bounds()
	return &core.ImageData{
		Format: format,
		Image:  img,
		Meta: core.Metadata{
			Width:      bounds.Dx(),
			Height:     bounds.Dy(),
			Format:     format,
			ColorSpace: vipsInterpretationToColorSpace(ref.Interpretation()),
			HasAlpha:   ref.HasAlpha(),
		},
	}, nil
}

// RegisterVipsBackend replaces the pure-Go decoders with libvips for every
// format it supports.
func RegisterVipsBackend(reg core.Registry, b *Backend) {
	for _, f := range []core.Format{core.FormatJPEG, core.FormatPNG, core.FormatGIF, core.FormatBMP, core.FormatTIFF, core.FormatWebP} {
		reg.RegisterDecoder(f, b)
	}
}

func vipsFormatToCore(f govips.ImageType) core.Format {
	switch f {
	case govips.ImageTypeJPEG:
		return core.FormatJPEG
	case govips.ImageTypePNG:
		return core.FormatPNG
	case govips.ImageTypeGIF:
		return core.FormatGIF
	case govips.ImageTypeBMP:
		return core.FormatBMP
	case govips.ImageTypeTIFF:
		return core.FormatTIFF
	case govips.ImageTypeWEBP:
		return core.FormatWebP
	default:
		return core.FormatUnknown
	}
}

func vipsInterpretationToColorSpace(i govips.Interpretation) core.ColorSpace {
	switch i {
	case govips.InterpretationBW, govips.InterpretationGrey16:
		return core.ColorSpaceGray
	case govips.InterpretationCMYK:
		return core.ColorSpaceCMYK
	default:
		return core.ColorSpaceRGB
	}
}

var _ core.Decoder = (*Backend)(nil)
