package decoder

import (
	"context"
	"image"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"

	"github.com/Skryldev/grayscale/core"
)

// JPEG decodes JPEG images. With AutoOrient set, the EXIF orientation tag is
// applied so the output is upright.
type JPEG struct {
	AutoOrient bool
}

// NewJPEG returns an initialised JPEG decoder.
func NewJPEG(autoOrient bool) *JPEG { return &JPEG{AutoOrient: autoOrient} }

func (j *JPEG) CanDecode(format core.Format) bool { return format == core.FormatJPEG }

func (j *JPEG) Decode(ctx context.Context, r io.Reader) (*core.ImageData, error) {
	fn := jpeg.Decode
	if j.AutoOrient {
		fn = func(r io.Reader) (image.Image, error) {
			return imaging.Decode(r, imaging.AutoOrientation(true))
		}
	}
	return decode(ctx, "jpeg.decode", core.FormatJPEG, r, fn)
}
