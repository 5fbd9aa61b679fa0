package gcsuploader

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"github.com/dvloznov/sales-cleaner/internal/gcs"
)

// OpenObject opens a reader over the object at gcsURI. Closing the returned
// reader also closes the storage client.
func OpenObject(ctx context.Context, gcsURI string) (io.ReadCloser, error) {
	bucketName, objectPath, err := gcs.ParseGCSURI(gcsURI)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("OpenObject: creating storage client: %w", err)
	}

	rc, err := client.Bucket(bucketName).Object(objectPath).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("OpenObject: reading object %s/%s: %w", bucketName, objectPath, err)
	}

	return &objectReader{Reader: rc, client: client}, nil
}

type objectReader struct {
	*storage.Reader
	client *storage.Client
}

func (r *objectReader) Close() error {
	err := r.Reader.Close()
	if cerr := r.client.Close(); err == nil {
		err = cerr
	}
	return err
}
