// Package supabase implements artifact storage on Supabase Storage.
package supabase

import (
	"bytes"
	"context"
	"fmt"

	"github.com/supabase-community/supabase-go"

	"inspection-export/internal/domain"
)

// StorageClient uploads finished artifacts into one storage bucket. It
// implements domain.StorageService.
type StorageClient struct {
	client *supabase.Client
	bucket string
	logger domain.Logger
}

// NewStorageClient connects to Supabase and targets the given bucket.
func NewStorageClient(url, key, bucket string, logger domain.Logger) (*StorageClient, error) {
	if url == "" || key == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided")
	}
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket must be provided")
	}

	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}

	logger.Info("Supabase storage client initialized", "url", url, "bucket", bucket)
	return &StorageClient{client: client, bucket: bucket, logger: logger}, nil
}

// Upload stores the artifact bytes under path in the configured bucket.
func (s *StorageClient) Upload(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.client.Storage.UploadFile(s.bucket, path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("storage upload failed for %s: %w", path, err)
	}
	return nil
}
