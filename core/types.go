package core

import (
	"context"
	"image"
	"time"
)

// Format identifies an image container format.
type Format string

const (
	FormatJPEG    Format = "jpeg"
	FormatPNG     Format = "png"
	FormatGIF     Format = "gif"
	FormatBMP     Format = "bmp"
	FormatTIFF    Format = "tiff"
	FormatWebP    Format = "webp"
	FormatUnknown Format = "unknown"
)

// ColorSpace represents the image colour model.
type ColorSpace string

const (
	ColorSpaceRGB  ColorSpace = "rgb"
	ColorSpaceRGBA ColorSpace = "rgba"
	ColorSpaceCMYK ColorSpace = "cmyk"
	ColorSpaceGray ColorSpace = "gray"
)

// Metadata describes a decoded image.
type Metadata struct {
	Width      int
	Height     int
	Format     Format
	ColorSpace ColorSpace
	HasAlpha   bool
	SizeBytes  int64
}

// ImageData is the value handed from stage to stage. Each stage receives it
// exclusively and returns a new value, dropping what the next stage does
// not need (the loader drops Source, the decoder drops Data, the encoder
// drops Image).
type ImageData struct {
	// Source is the caller's file handle; only set before loading.
	Source FileHandle

	// Encoded bytes: the loaded input, or the encoded output.
	Data   []byte
	Format Format

	// Decoded pixels; the grayscale image after the transform stage.
	Image image.Image

	Meta Metadata

	// Size of the loaded input in bytes.
	OriginalSize int64
}

// EncodeOptions carries format-specific encoding parameters.
type EncodeOptions struct {
	Quality     int         // JPEG quality 1-100; 0 = encoder default
	Compression Compression // PNG compression
}

// Compression selects a PNG compression level.
type Compression string

const (
	CompressionDefault Compression = "default"
	CompressionNone    Compression = "none"
	CompressionSpeed   Compression = "speed"
	CompressionBest    Compression = "best"
)

// Step is one stage of the file pipeline.
type Step interface {
	Name() string
	// Stage is the Completion state entered while the step runs.
	Stage() Stage
	Execute(ctx context.Context, img *ImageData) (*ImageData, error)
}

// Hook is an optional observer invoked around pipeline steps.
type Hook interface {
	BeforeStep(ctx context.Context, stepName string, img *ImageData)
	AfterStep(ctx context.Context, stepName string, img *ImageData, d time.Duration, err error)
}
