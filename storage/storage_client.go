package storage

import (
	"context"
	"io"

	"github.com/ziflex/lecho/v3"
)

type ObjectStorageWrapper interface {
	Upload(ctx context.Context, bucket, path string, contentType string, r io.Reader) (string, error)
	Mirror(ctx context.Context, bucket, path, srcURL string) (string, error)
	Delete(ctx context.Context, bucket string, paths ...string) error
	PublicURL(bucket, path string) string
}

func InitStorageClient(c *Config, logger *lecho.Logger, ctx context.Context) (ObjectStorageWrapper, error) {
	client := NewSupabaseClient(c)
	buckets, err := client.ListBuckets(ctx)
	if err != nil {
		return nil, err
	}
	logger.Infof("Connected to supabase storage, %d buckets visible", buckets)
	return client, nil
}
