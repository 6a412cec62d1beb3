// Package source provides core.FileHandle implementations.
package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/Skryldev/grayscale/core"
	apperrors "github.com/Skryldev/grayscale/errors"
)

// Bytes is a FileHandle over an in-memory encoded image. It can be opened
// any number of times.
type Bytes struct {
	data []byte
	name string
}

// NewBytes returns a handle over data. data is read, never modified.
func NewBytes(data []byte, name string) *Bytes { return &Bytes{data: data, name: name} }

func (b *Bytes) Name() string { return b.name }

func (b *Bytes) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryRead, "bytes.open", err)
	}
	return io.NopCloser(bytes.NewReader(b.data)), nil
}

// Reader is a FileHandle over a caller-supplied stream. A stream can only be
// consumed once, so a second Open fails.
type Reader struct {
	mu     sync.Mutex
	r      io.Reader
	name   string
	opened bool
}

// NewReader wraps r. If r is an io.Closer it is closed by the pipeline after
// reading.
func NewReader(r io.Reader, name string) *Reader { return &Reader{r: r, name: name} }

func (h *Reader) Name() string { return h.name }

func (h *Reader) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryRead, "reader.open", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.r == nil {
		return nil, apperrors.New(apperrors.CategoryRead, "reader.open", apperrors.ErrNilHandle)
	}
	if h.opened {
		return nil, apperrors.New(apperrors.CategoryRead, "reader.open", errAlreadyConsumed)
	}
	h.opened = true
	if rc, ok := h.r.(io.ReadCloser); ok {
		return rc, nil
	}
	return io.NopCloser(h.r), nil
}

var errAlreadyConsumed = errors.New("stream already consumed")

var (
	_ core.FileHandle = (*Bytes)(nil)
	_ core.FileHandle = (*Reader)(nil)
)
