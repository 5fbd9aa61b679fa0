package gcsuploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
)

// UploadFile uploads a local file to a GCS bucket under the given object name.
// It assumes Application Default Credentials are configured (gcloud auth application-default login).
func UploadFile(ctx context.Context, bucketName, objectName, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file %q: %w", filePath, err)
	}
	defer f.Close()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	return PutObject(ctx, client, bucketName, objectName, func(w io.Writer) error {
		_, err := io.Copy(w, f)
		return err
	})
}

// PutObject streams write into bucket/object. The object only becomes
// visible when Close succeeds; if write fails the upload is cancelled so no
// partial object replaces the existing one.
func PutObject(ctx context.Context, client *storage.Client, bucketName, objectName string, write func(io.Writer) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	w.ContentType = "text/csv"

	if err := write(w); err != nil {
		cancel()
		_ = w.Close()
		return fmt.Errorf("write gs://%s/%s: %w", bucketName, objectName, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload gs://%s/%s: %w", bucketName, objectName, err)
	}
	return nil
}
