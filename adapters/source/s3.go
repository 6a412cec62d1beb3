package source

import (
	"context"
	"fmt"
	"io"

	"github.com/Skryldev/grayscale/core"
	apperrors "github.com/Skryldev/grayscale/errors"
)

// S3Client is the minimal object-store interface used by S3. It lets callers
// inject an aws-sdk-go-v2 client wrapper, a MinIO client or a test double.
type S3Client interface {
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// S3 hands out handles for objects in an S3-compatible store.
type S3 struct {
	client S3Client
	bucket string
}

// NewS3 creates an S3 source. client must not be nil.
func NewS3(client S3Client, defaultBucket string) (*S3, error) {
	if client == nil {
		return nil, fmt.Errorf("s3 source: client must not be nil")
	}
	return &S3{client: client, bucket: defaultBucket}, nil
}

// Handle returns a FileHandle for key in the default bucket.
func (s *S3) Handle(key string) *Object { return s.HandleIn(s.bucket, key) }

// HandleIn returns a FileHandle for key in bucket.
func (s *S3) HandleIn(bucket, key string) *Object {
	return &Object{client: s.client, bucket: bucket, key: key}
}

// Object is a FileHandle for a single stored object.
type Object struct {
	client S3Client
	bucket string
	key    string
}

func (o *Object) Name() string { return o.bucket + "/" + o.key }

func (o *Object) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryRead, "s3.get", err)
	}
	rc, err := o.client.GetObject(ctx, o.bucket, o.key)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryRead, "s3.get", err)
	}
	return rc, nil
}

var _ core.FileHandle = (*Object)(nil)
