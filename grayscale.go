// Package grayscale converts images to 8-bit luminance.
//
// Two entry points are provided. TransformBuffer works synchronously on raw
// RGBA pixel buffers. Converter.Transform runs the asynchronous file pipeline
// (load, decode, grayscale, encode) and reports through a one-shot
// core.Completion that either resolves with encoded image bytes or rejects
// with a stage-tagged error such as "decode failed: ...".
package grayscale

import (
	"context"
	"io"

	"github.com/Skryldev/grayscale/adapters/decoder"
	"github.com/Skryldev/grayscale/adapters/encoder"
	"github.com/Skryldev/grayscale/adapters/source"
	"github.com/Skryldev/grayscale/config"
	"github.com/Skryldev/grayscale/core"
	"github.com/Skryldev/grayscale/luma"
	"github.com/Skryldev/grayscale/pipeline"
)

// Re-export Format constants for convenience.
const (
	JPEG = core.FormatJPEG
	PNG  = core.FormatPNG
	GIF  = core.FormatGIF
	BMP  = core.FormatBMP
	TIFF = core.FormatTIFF
	WebP = core.FormatWebP
)

// DefaultConfig returns a sensible production configuration.
func DefaultConfig() config.Config { return config.Default() }

// TransformBuffer converts a packed RGBA buffer of width×height pixels to
// grayscale and returns a new buffer of the same length with R=G=B=luma and
// alpha unchanged. The input is never modified. When len(pix) is not exactly
// width*height*4 the result is an empty, non-nil slice.
func TransformBuffer(pix []byte, width, height uint32) []byte {
	return luma.Transform(pix, width, height)
}

// Converter is the primary entry point for the file pipeline.
type Converter struct {
	inner    *core.Processor
	reg      *core.DefaultRegistry
	cfg      config.Config
	template *pipeline.Pipeline
	logger   core.Logger
	metrics  core.MetricsCollector
}

// New validates cfg and returns a Converter with every built-in decoder and
// the PNG and JPEG encoders registered.
func New(cfg config.Config) (*Converter, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	reg := core.NewRegistry()
	decoder.RegisterAll(reg, cfg.AutoOrient)
	encoder.RegisterAll(reg, cfg.DefaultQuality, core.Compression(cfg.PNGCompression))

	return &Converter{
		inner:    core.New(reg),
		reg:      reg,
		cfg:      cfg,
		template: pipeline.Grayscale(reg, cfg),
		logger:   core.NopLogger(),
	}, nil
}

// Config returns the configuration the Converter was built with.
func (c *Converter) Config() config.Config { return c.cfg }

// SetLogger attaches a structured logger.
func (c *Converter) SetLogger(l core.Logger) {
	if l == nil {
		l = core.NopLogger()
	}
	c.logger = l
	c.inner.SetLogger(l)
}

// SetMetrics attaches a metrics collector.
func (c *Converter) SetMetrics(m core.MetricsCollector) {
	c.metrics = m
	c.inner.SetMetrics(m)
}

// AddHook registers an observer for pipeline step events. Hooks must be added
// before the first Transform.
func (c *Converter) AddHook(h core.Hook) { c.inner.AddHook(h) }

// RegisterDecoder registers a custom decoder for the given format.
func (c *Converter) RegisterDecoder(f core.Format, d core.Decoder) { c.reg.RegisterDecoder(f, d) }

// RegisterEncoder registers a custom encoder for the given format.
func (c *Converter) RegisterEncoder(f core.Format, e core.Encoder) { c.reg.RegisterEncoder(f, e) }

// Transform starts converting the image behind h and returns immediately.
// The Completion resolves with the encoded grayscale image or rejects with
// the first failing stage's error. Cancelling ctx does not abort the work.
func (c *Converter) Transform(ctx context.Context, h core.FileHandle) *core.Completion {
	return c.inner.Run(ctx, h, c.template.Steps()...)
}

// Run starts a custom pipeline over h. Steps must be ordered by stage.
func (c *Converter) Run(ctx context.Context, h core.FileHandle, steps ...core.Step) *core.Completion {
	return c.inner.Run(ctx, h, steps...)
}

// ConvertBytes converts an encoded image held in memory and waits for the
// result. ctx bounds only the wait.
func (c *Converter) ConvertBytes(ctx context.Context, data []byte) ([]byte, error) {
	return c.Transform(ctx, FromBytes(data)).Wait(ctx)
}

// TransformBuffer is the package-level TransformBuffer with the invalid
// outcome reported to the Converter's logger and metrics.
func (c *Converter) TransformBuffer(pix []byte, width, height uint32) []byte {
	raw := &luma.RawImage{Pix: pix, Width: width, Height: height}
	if !raw.Valid() {
		c.logger.Warn("buffer.invalid",
			"width", width,
			"height", height,
			"len", len(pix),
		)
		if c.metrics != nil {
			c.metrics.RecordOutcome("invalid")
		}
		return []byte{}
	}
	return luma.Transform(pix, width, height)
}

// Stats returns lightweight processing statistics.
func (c *Converter) Stats() (resolved, rejected int64) {
	return c.inner.ProcessedCount(), c.inner.ErrorCount()
}

// Inner exposes the underlying core.Processor for advanced use.
func (c *Converter) Inner() *core.Processor { return c.inner }

// ── File handle constructors ──────────────────────────────────────────────────

// FromReader wraps a stream. It can be transformed once.
func FromReader(r io.Reader) core.FileHandle { return source.NewReader(r, "reader") }

// FromBytes wraps an encoded image held in memory.
func FromBytes(data []byte) core.FileHandle { return source.NewBytes(data, "bytes") }

// FromFile refers to a file on the local filesystem. It is opened lazily by
// the pipeline.
func FromFile(path string) core.FileHandle { return source.NewFile(path) }
