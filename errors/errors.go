package errors

import (
	"errors"
	"fmt"
)

// Category classifies errors by the pipeline stage that produced them.
type Category string

const (
	CategoryRead      Category = "read"
	CategoryDecode    Category = "decode"
	CategoryTransform Category = "transform"
	CategoryEncode    Category = "encode"
	CategoryInput     Category = "input"
	CategoryPipeline  Category = "pipeline"
	CategoryConfig    Category = "config"
)

// ProcessingError is the structured error type used throughout the module.
// Its message is prefixed by the stage that failed, e.g. "decode failed: ...".
type ProcessingError struct {
	Category Category
	Op       string // operation name, for logs
	Err      error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Category, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// New creates a ProcessingError.
func New(category Category, op string, err error) *ProcessingError {
	return &ProcessingError{Category: category, Op: op, Err: err}
}

// Wrap wraps an existing error with context. An error that already carries a
// category is returned unchanged so the stage tag is never doubled.
func Wrap(category Category, op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return err
	}
	return New(category, op, err)
}

// IsCategory reports whether err belongs to the given category.
func IsCategory(err error, cat Category) bool {
	return CategoryOf(err) == cat
}

// CategoryOf returns the category of err, or "" if err is not a ProcessingError.
func CategoryOf(err error) Category {
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ""
}

// Sentinel errors for common failure modes.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrEmptyInput        = errors.New("empty input")
	ErrNilHandle         = errors.New("nil file handle")
	ErrInputTooLarge     = errors.New("input exceeds size limit")
	ErrTooManyPixels     = errors.New("image exceeds pixel limit")
	ErrChannelMismatch   = errors.New("target format cannot represent pixel layout")
	ErrStageOrder        = errors.New("stage out of order")
)
