package decoder

import (
	"context"
	"io"

	"golang.org/x/image/bmp"

	"github.com/Skryldev/grayscale/core"
)

// BMP decodes BMP images using golang.org/x/image/bmp.
type BMP struct{}

func NewBMP() *BMP { return &BMP{} }

func (b *BMP) CanDecode(format core.Format) bool { return format == core.FormatBMP }

func (b *BMP) Decode(ctx context.Context, r io.Reader) (*core.ImageData, error) {
	return decode(ctx, "bmp.decode", core.FormatBMP, r, bmp.Decode)
}
