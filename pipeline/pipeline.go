// Package pipeline provides the file-pipeline steps and a reusable, ordered
// step template.
package pipeline

import (
	"github.com/Skryldev/grayscale/config"
	"github.com/Skryldev/grayscale/core"
)

// Pipeline is an ordered step template. It is run by core.Processor.Run
// over Steps().
type Pipeline struct {
	steps []core.Step
}

// New returns an empty Pipeline.
func New() *Pipeline { return &Pipeline{} }

// Grayscale returns the load → decode → grayscale → encode pipeline
// configured from cfg.
func Grayscale(reg core.Registry, cfg config.Config) *Pipeline {
	return New().Use(
		&LoadStep{MaxBytes: cfg.MaxImageBytes, ChunkSize: cfg.ChunkSize},
		&DecodeStep{Registry: reg, MaxPixels: cfg.MaxPixels},
		&GrayscaleStep{PreserveAlpha: cfg.PreserveAlpha},
		&EncodeStep{
			Registry: reg,
			Format:   core.Format(cfg.OutputFormat),
			Options: core.EncodeOptions{
				Quality:     cfg.DefaultQuality,
				Compression: core.Compression(cfg.PNGCompression),
			},
		},
	)
}

// Use appends a step to the pipeline.  Returns the same Pipeline for chaining.
func (p *Pipeline) Use(s ...core.Step) *Pipeline {
	p.steps = append(p.steps, s...)
	return p
}

// Steps returns a copy of the configured steps, for core.Processor.Run.
func (p *Pipeline) Steps() []core.Step {
	out := make([]core.Step, len(p.steps))
	copy(out, p.steps)
	return out
}
