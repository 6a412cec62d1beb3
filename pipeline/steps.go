package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/Skryldev/grayscale/core"
	apperrors "github.com/Skryldev/grayscale/errors"
	"github.com/Skryldev/grayscale/luma"
	"github.com/Skryldev/grayscale/utils"
)

// ── Load ──────────────────────────────────────────────────────────────────────

// LoadStep reads the complete contents of img.Source into memory. A failed
// read never forwards a partial buffer.
type LoadStep struct {
	MaxBytes  int64 // 0 = no limit
	ChunkSize int   // read chunk size; 0 = 32 KiB
}

func (s *LoadStep) Name() string      { return "load" }
func (s *LoadStep) Stage() core.Stage { return core.StageLoading }

func (s *LoadStep) Execute(ctx context.Context, img *core.ImageData) (*core.ImageData, error) {
	if img == nil || img.Source == nil {
		return nil, apperrors.New(apperrors.CategoryRead, s.Name(), apperrors.ErrNilHandle)
	}

	rc, err := img.Source.Open(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryRead, "load.open", err)
	}
	defer rc.Close()

	buf, err := utils.DrainReader(ctx, &utils.LimitedReader{R: rc, Max: s.MaxBytes}, s.ChunkSize)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryRead, "load.read", err)
	}
	data := utils.CloneBytes(buf.Bytes())
	utils.ReleaseBuffer(buf)

	if len(data) == 0 {
		return nil, apperrors.New(apperrors.CategoryRead, s.Name(), apperrors.ErrEmptyInput)
	}
	return &core.ImageData{
		Data:         data,
		Format:       core.Format(utils.DetectFormat(data)),
		OriginalSize: int64(len(data)),
	}, nil
}

// ── Decode ────────────────────────────────────────────────────────────────────

// DecodeStep decodes img.Data into an image.Image using the registry.
type DecodeStep struct {
	Registry  core.Registry
	MaxPixels int64 // 0 = no limit
}

func (s *DecodeStep) Name() string      { return "decode" }
func (s *DecodeStep) Stage() core.Stage { return core.StageDecoding }

func (s *DecodeStep) Execute(ctx context.Context, img *core.ImageData) (*core.ImageData, error) {
	if img == nil || len(img.Data) == 0 {
		return nil, apperrors.New(apperrors.CategoryDecode, s.Name(), apperrors.ErrEmptyInput)
	}
	format := img.Format
	if format == "" {
		format = core.Format(utils.DetectFormat(img.Data))
	}
	dec, ok := s.Registry.DecoderFor(format)
	if !ok {
		return nil, apperrors.New(apperrors.CategoryDecode, s.Name(),
			fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, format))
	}

	if s.MaxPixels > 0 {
		// Reject decompression bombs from the header alone.
		cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data))
		if err == nil && int64(cfg.Width)*int64(cfg.Height) > s.MaxPixels {
			return nil, apperrors.New(apperrors.CategoryDecode, s.Name(),
				fmt.Errorf("%w: %dx%d", apperrors.ErrTooManyPixels, cfg.Width, cfg.Height))
		}
	}

	decoded, err := dec.Decode(ctx, bytes.NewReader(img.Data))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, s.Name(), err)
	}
	decoded.OriginalSize = img.OriginalSize
	return decoded, nil
}

// ── Grayscale ─────────────────────────────────────────────────────────────────

// GrayscaleStep converts the decoded image to luma. With PreserveAlpha the
// result is an NRGBA image with R=G=B and the source alpha; otherwise it is a
// single-channel *image.Gray.
type GrayscaleStep struct {
	PreserveAlpha bool
}

func (s *GrayscaleStep) Name() string      { return "grayscale" }
func (s *GrayscaleStep) Stage() core.Stage { return core.StageTransforming }

func (s *GrayscaleStep) Execute(_ context.Context, img *core.ImageData) (*core.ImageData, error) {
	if img == nil || img.Image == nil {
		return nil, apperrors.New(apperrors.CategoryTransform, s.Name(), apperrors.ErrEmptyInput)
	}

	out := *img
	if s.PreserveAlpha && img.Meta.HasAlpha {
		out.Image = luma.FromImageAlpha(img.Image)
		out.Meta.ColorSpace = core.ColorSpaceRGBA
	} else {
		out.Image = luma.FromImage(img.Image)
		out.Meta.ColorSpace = core.ColorSpaceGray
		out.Meta.HasAlpha = false
	}
	return &out, nil
}

// ── Encode ────────────────────────────────────────────────────────────────────

// EncodeStep serialises img.Image into Format using the registry.
type EncodeStep struct {
	Registry core.Registry
	Format   core.Format // defaults to PNG
	Options  core.EncodeOptions
}

func (s *EncodeStep) Name() string      { return "encode" }
func (s *EncodeStep) Stage() core.Stage { return core.StageEncoding }

func (s *EncodeStep) Execute(ctx context.Context, img *core.ImageData) (*core.ImageData, error) {
	format := s.Format
	if format == "" {
		format = core.FormatPNG
	}
	enc, ok := s.Registry.EncoderFor(format)
	if !ok {
		return nil, apperrors.New(apperrors.CategoryEncode, s.Name(),
			fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, format))
	}

	data, err := enc.Encode(ctx, img, s.Options)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryEncode, s.Name(), err)
	}

	out := core.ImageData{
		Data:         data,
		Format:       format,
		Meta:         img.Meta,
		OriginalSize: img.OriginalSize,
	}
	out.Meta.Format = format
	out.Meta.SizeBytes = int64(len(data))
	return &out, nil
}
