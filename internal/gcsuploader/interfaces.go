package gcsuploader

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"

	"github.com/dvloznov/sales-cleaner/internal/gcs"
	"github.com/dvloznov/sales-cleaner/internal/table"
)

// StorageService implements gcs.Store for local paths and gs:// URIs.
type StorageService struct{}

// NewStorageService creates a new instance of StorageService.
func NewStorageService() *StorageService {
	return &StorageService{}
}

// Open implements gcs.Store.
func (s *StorageService) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if gcs.IsGCSURI(uri) {
		return OpenObject(ctx, uri)
	}
	f, err := os.Open(uri)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", uri, err)
	}
	return f, nil
}

// Put implements gcs.Store.
func (s *StorageService) Put(ctx context.Context, uri string, write func(io.Writer) error) error {
	if !gcs.IsGCSURI(uri) {
		return table.WriteFileAtomic(uri, write)
	}

	bucketName, objectName, err := gcs.ParseGCSURI(uri)
	if err != nil {
		return err
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	return PutObject(ctx, client, bucketName, objectName, write)
}

// UploadFile implements gcs.Store.
func (s *StorageService) UploadFile(ctx context.Context, bucketName, objectName, filePath string) error {
	return UploadFile(ctx, bucketName, objectName, filePath)
}

var _ gcs.Store = (*StorageService)(nil)
