package decoder

import (
	"image"
	"image/color"
	"testing"

	"github.com/Skryldev/grayscale/core"
)

func TestHasAlpha(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)

	// Lossy WebP with an alpha chunk decodes to NYCbCrA.
	ycca := image.NewNYCbCrA(rect, image.YCbCrSubsampleRatio420)
	for i := range ycca.A {
		ycca.A[i] = 0
	}
	opaqueYCCA := image.NewNYCbCrA(rect, image.YCbCrSubsampleRatio420)
	for i := range opaqueYCCA.A {
		opaqueYCCA.A[i] = 0xff
	}
	opaqueRGBA := image.NewRGBA(rect)
	for i := 3; i < len(opaqueRGBA.Pix); i += 4 {
		opaqueRGBA.Pix[i] = 0xff
	}
	halfNRGBA := image.NewNRGBA(rect)
	halfNRGBA.SetNRGBA(1, 1, color.NRGBA{R: 9, A: 0x80})

	cases := []struct {
		name string
		img  image.Image
		want bool
	}{
		{"nycbcra transparent", ycca, true},
		{"nycbcra opaque", opaqueYCCA, false},
		{"alpha16 transparent", image.NewAlpha16(rect), true},
		{"alpha transparent", image.NewAlpha(rect), true},
		{"nrgba partial", halfNRGBA, true},
		{"rgba opaque", opaqueRGBA, false},
		{"gray", image.NewGray(rect), false},
		{"ycbcr", image.NewYCbCr(rect, image.YCbCrSubsampleRatio444), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := hasAlpha(tc.img); got != tc.want {
				t.Errorf("hasAlpha: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewImageData_NYCbCrAKeepsAlphaFlag(t *testing.T) {
	img := image.NewNYCbCrA(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio420)
	img.A[5] = 0x40
	got := newImageData(img, core.FormatWebP)
	if !got.Meta.HasAlpha {
		t.Error("Meta.HasAlpha: got false, want true")
	}
	if got.Meta.Width != 4 || got.Meta.Height != 4 {
		t.Errorf("size: got %dx%d", got.Meta.Width, got.Meta.Height)
	}
}
