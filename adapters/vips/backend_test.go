//go:build vips

package vips_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"sync"
	"testing"

	"github.com/Skryldev/grayscale/adapters/decoder"
	"github.com/Skryldev/grayscale/adapters/vips"
	"github.com/Skryldev/grayscale/core"
)

// libvips cannot be restarted after Shutdown, so every test shares one backend.
var sharedBackend = sync.OnceValue(func() *vips.Backend {
	return vips.NewBackend(vips.BackendConfig{})
})

func makeJPEG(tb testing.TB, w, h int) []byte {
	tb.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 92}); err != nil {
		tb.Fatal(err)
	}
	return buf.Bytes()
}

func TestBackend_Decode(t *testing.T) {
	backend := sharedBackend()

	got, err := backend.Decode(context.Background(), bytes.NewReader(makeJPEG(t, 64, 32)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Format != core.FormatJPEG {
		t.Errorf("format: got %s", got.Format)
	}
	if got.Meta.Width != 64 || got.Meta.Height != 32 {
		t.Errorf("dimensions: got %dx%d", got.Meta.Width, got.Meta.Height)
	}
	if _, err := backend.Decode(context.Background(), bytes.NewReader([]byte("junk"))); err == nil {
		t.Error("expected error for junk input")
	}
}

func BenchmarkDecode_Stdlib_1920x1080(b *testing.B) {
	raw := makeJPEG(b, 1920, 1080)
	dec := decoder.NewJPEG(false)

	b.ReportAllocs()
	b.SetBytes(int64(len(raw)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dec.Decode(context.Background(), bytes.NewReader(raw)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode_Vips_1920x1080(b *testing.B) {
	raw := makeJPEG(b, 1920, 1080)
	backend := sharedBackend()

	b.ReportAllocs()
	b.SetBytes(int64(len(raw)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := backend.Decode(context.Background(), bytes.NewReader(raw)); err != nil {
			b.Fatal(err)
		}
	}
}
