package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidURI is returned for malformed gs:// URIs.
var ErrInvalidURI = errors.New("invalid GCS URI")

// Store reads and writes whole tables addressed by a local path or a
// gs://bucket/object URI.
type Store interface {
	// Open returns a reader over the table at uri. The caller closes it.
	Open(ctx context.Context, uri string) (io.ReadCloser, error)

	// Put writes the table at uri. Either write succeeds and the new content
	// replaces the old one, or nothing at uri changes.
	Put(ctx context.Context, uri string, write func(io.Writer) error) error

	// UploadFile copies a local file to a bucket under the given object name.
	UploadFile(ctx context.Context, bucketName, objectName, filePath string) error
}

// IsGCSURI reports whether uri uses the gs:// scheme.
func IsGCSURI(uri string) bool {
	return strings.HasPrefix(uri, "gs://")
}

// ParseGCSURI splits gs://bucket/path/to/object into bucket and object.
func ParseGCSURI(uri string) (bucket, object string, err error) {
	if !IsGCSURI(uri) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	parts := strings.SplitN(strings.TrimPrefix(uri, "gs://"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w (no object path): %s", ErrInvalidURI, uri)
	}
	return parts[0], parts[1], nil
}
