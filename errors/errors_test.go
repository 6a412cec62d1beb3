package errors_test

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/Skryldev/grayscale/errors"
)

func TestProcessingError_StagePrefix(t *testing.T) {
	cases := []struct {
		cat  apperrors.Category
		want string
	}{
		{apperrors.CategoryRead, "read failed: boom"},
		{apperrors.CategoryDecode, "decode failed: boom"},
		{apperrors.CategoryEncode, "encode failed: boom"},
	}
	for _, tc := range cases {
		err := apperrors.New(tc.cat, "op", errors.New("boom"))
		if got := err.Error(); got != tc.want {
			t.Errorf("Error(): got %q, want %q", got, tc.want)
		}
	}
}

func TestWrap_KeepsExistingCategory(t *testing.T) {
	inner := apperrors.New(apperrors.CategoryDecode, "png.decode", apperrors.ErrEmptyInput)
	wrapped := apperrors.Wrap(apperrors.CategoryPipeline, "run", fmt.Errorf("ctx: %w", inner))

	if !apperrors.IsCategory(wrapped, apperrors.CategoryDecode) {
		t.Errorf("category: got %q, want decode", apperrors.CategoryOf(wrapped))
	}
	if !errors.Is(wrapped, apperrors.ErrEmptyInput) {
		t.Error("errors.Is should reach the sentinel")
	}
}

func TestWrap_Nil(t *testing.T) {
	if err := apperrors.Wrap(apperrors.CategoryRead, "op", nil); err != nil {
		t.Errorf("Wrap(nil): got %v, want nil", err)
	}
}

func TestCategoryOf_Plain(t *testing.T) {
	if got := apperrors.CategoryOf(errors.New("x")); got != "" {
		t.Errorf("CategoryOf: got %q, want empty", got)
	}
}
