package core

import (
	"context"
	"io"
)

// FileHandle is an opaque reference to caller-supplied file data. The
// pipeline borrows it for exactly one Open per invocation and closes the
// reader when done; ownership stays with the caller.
// Implementations live in adapters/source/.
type FileHandle interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	// Name is a logical name for diagnostics; it may be empty.
	Name() string
}

// Decoder converts an encoded byte stream into an in-memory ImageData.
// Implementations live in adapters/decoder/.
type Decoder interface {
	// Decode reads from r and returns a decoded ImageData.
	Decode(ctx context.Context, r io.Reader) (*ImageData, error)
	// CanDecode reports whether this decoder handles the given format hint.
	CanDecode(format Format) bool
}

// Encoder serialises an ImageData to bytes in a target format.
// Implementations live in adapters/encoder/.
type Encoder interface {
	Encode(ctx context.Context, img *ImageData, opts EncodeOptions) ([]byte, error)
	CanEncode(format Format) bool
}

// MetricsCollector receives performance observations from the pipeline.
type MetricsCollector interface {
	RecordProcessingTime(stepName string, d interface{ Seconds() float64 })
	RecordThroughput(bytes int64)
	RecordError(stepName string, category string)
	// RecordOutcome is called once per invocation with "resolved",
	// "rejected" or "invalid" (buffer mode).
	RecordOutcome(outcome string)
}

// Logger is a minimal structured logging interface. It is the diagnostic
// sink: calls are fire-and-forget and never affect the pipeline outcome.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// Registry maps Format values to Decoder/Encoder implementations.
type Registry interface {
	DecoderFor(format Format) (Decoder, bool)
	EncoderFor(format Format) (Encoder, bool)
	RegisterDecoder(format Format, d Decoder)
	RegisterEncoder(format Format, e Encoder)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger { return nopLogger{} }
