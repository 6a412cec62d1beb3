package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Skryldev/grayscale/core"
	apperrors "github.com/Skryldev/grayscale/errors"
)

// File is a FileHandle for a file on the local filesystem. When created
// through a Local root, paths cannot escape that root.
type File struct {
	root string
	path string
}

// NewFile returns a handle for the file at path.
func NewFile(path string) *File { return &File{path: path} }

func (f *File) Name() string { return f.path }

func (f *File) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryRead, "file.open", err)
	}
	if f.root == "" {
		fh, err := os.Open(f.path)
		if err != nil {
			return nil, openError(err, f.path)
		}
		return fh, nil
	}

	root, err := os.OpenRoot(f.root)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryRead, "file.open.root", err)
	}
	defer root.Close()
	fh, err := root.Open(f.path)
	if err != nil {
		return nil, openError(err, f.path)
	}
	return fh, nil
}

func openError(err error, path string) error {
	if errors.Is(err, os.ErrNotExist) {
		return apperrors.New(apperrors.CategoryRead, "file.open", fmt.Errorf("file not found: %s", path))
	}
	return apperrors.Wrap(apperrors.CategoryRead, "file.open", err)
}

// Local hands out File handles confined to a root directory.
type Local struct {
	rootDir string
}

// NewLocal creates a Local source rooted at dir, which must exist.
func NewLocal(dir string) (*Local, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("local source: stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("local source: %s is not a directory", dir)
	}
	return &Local{rootDir: dir}, nil
}

// Handle returns a FileHandle for name, relative to the root.
func (l *Local) Handle(name string) *File { return &File{root: l.rootDir, path: name} }

var _ core.FileHandle = (*File)(nil)
