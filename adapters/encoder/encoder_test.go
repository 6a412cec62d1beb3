package encoder_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/Skryldev/grayscale/adapters/encoder"
	"github.com/Skryldev/grayscale/core"
	apperrors "github.com/Skryldev/grayscale/errors"
)

func grayImage(w, h int) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = byte(i * 13)
	}
	return g
}

func TestPNG_RoundTripIsLossless(t *testing.T) {
	for _, c := range []core.Compression{core.CompressionDefault, core.CompressionNone, core.CompressionSpeed, core.CompressionBest} {
		t.Run(string(c), func(t *testing.T) {
			src := grayImage(17, 9)
			data, err := encoder.NewPNG(c).Encode(context.Background(), &core.ImageData{Image: src}, core.EncodeOptions{})
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			decoded, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode output: %v", err)
			}
			g, ok := decoded.(*image.Gray)
			if !ok {
				t.Fatalf("decoded type: got %T, want *image.Gray", decoded)
			}
			if !bytes.Equal(g.Pix, src.Pix) {
				t.Error("pixels differ after round trip")
			}
		})
	}
}

func TestPNG_EmptyImage(t *testing.T) {
	enc := encoder.NewPNG(core.CompressionDefault)
	if _, err := enc.Encode(context.Background(), &core.ImageData{}, core.EncodeOptions{}); !errors.Is(err, apperrors.ErrEmptyInput) {
		t.Errorf("nil image: got %v, want ErrEmptyInput", err)
	}
	zero := &core.ImageData{Image: image.NewGray(image.Rect(0, 0, 0, 0))}
	if _, err := enc.Encode(context.Background(), zero, core.EncodeOptions{}); !errors.Is(err, apperrors.ErrInvalidDimensions) {
		t.Errorf("empty bounds: got %v, want ErrInvalidDimensions", err)
	}
}

func TestJPEG_Gray(t *testing.T) {
	data, err := encoder.NewJPEG(90).Encode(context.Background(), &core.ImageData{Image: grayImage(8, 8)}, core.EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("output is not a JPEG: %v", err)
	}
}

func TestJPEG_RejectsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 10, B: 10, A: 100})

	_, err := encoder.NewJPEG(0).Encode(context.Background(), &core.ImageData{Image: img}, core.EncodeOptions{})
	if !errors.Is(err, apperrors.ErrChannelMismatch) {
		t.Errorf("got %v, want ErrChannelMismatch", err)
	}
	if !apperrors.IsCategory(err, apperrors.CategoryEncode) {
		t.Errorf("category: got %q", apperrors.CategoryOf(err))
	}
}

func TestRegisterAll(t *testing.T) {
	reg := core.NewRegistry()
	encoder.RegisterAll(reg, 80, core.CompressionBest)
	for _, f := range []core.Format{core.FormatPNG, core.FormatJPEG} {
		e, ok := reg.EncoderFor(f)
		if !ok || !e.CanEncode(f) {
			t.Errorf("no encoder for %s", f)
		}
	}
	if _, ok := reg.EncoderFor(core.FormatWebP); ok {
		t.Error("unexpected webp encoder")
	}
}
