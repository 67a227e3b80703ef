// Package gcs stores uploaded images as objects in a Google Cloud Storage
// bucket. References are public object URLs; the bucket's IAM policy decides
// whether they actually resolve anonymously.
package gcs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"cloud.google.com/go/storage"
)

type Store struct {
	bucket string
}

func New(bucket string) *Store {
	return &Store{bucket: bucket}
}

// Put uploads the bytes under the given object name. The client is created
// per call and closed before returning; uploads are infrequent enough that
// connection reuse buys nothing here.
func (s *Store) Put(ctx context.Context, filename string, data []byte, mimeType string) (string, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(s.bucket).Object(filename).NewWriter(ctx)
	w.ContentType = mimeType

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("copy bytes to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, filename)
	slog.InfoContext(ctx, "Image uploaded to GCS", "bucket", s.bucket, "object", filename, "bytes", len(data))
	return url, nil
}
