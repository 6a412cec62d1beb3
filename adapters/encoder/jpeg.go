package encoder

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"

	"github.com/Skryldev/grayscale/core"
	apperrors "github.com/Skryldev/grayscale/errors"
)

// JPEG encodes images to JPEG format. JPEG has no alpha channel, so images
// with any non-opaque pixel are rejected instead of being flattened.
type JPEG struct {
	DefaultQuality int // used when EncodeOptions.Quality == 0
}

func NewJPEG(defaultQuality int) *JPEG {
	if defaultQuality <= 0 {
		defaultQuality = 85
	}
	return &JPEG{DefaultQuality: defaultQuality}
}

func (j *JPEG) CanEncode(format core.Format) bool {
	return format == core.FormatJPEG
}

func (j *JPEG) Encode(ctx context.Context, img *core.ImageData, opts core.EncodeOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryEncode, "jpeg.encode", err)
	}

	src, err := sourceImage(img, "jpeg.encode")
	if err != nil {
		return nil, err
	}
	if o, ok := src.(interface{ Opaque() bool }); ok && !o.Opaque() {
		return nil, apperrors.New(apperrors.CategoryEncode, "jpeg.encode",
			fmt.Errorf("%w: alpha channel", apperrors.ErrChannelMismatch))
	}

	quality := opts.Quality
	if quality <= 0 {
		quality = j.DefaultQuality
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryEncode, "jpeg.encode", err)
	}
	return buf.Bytes(), nil
}

