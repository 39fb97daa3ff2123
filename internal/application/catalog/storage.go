package catalog

import (
	"context"
	"io"
	"time"
)

// ObjectStorage abstracts the bucket holding product images. The S3
// implementation lives in infrastructure/storage.
type ObjectStorage interface {
	// Put uploads an object under the given key
	Put(ctx context.Context, key, contentType string, body io.Reader) error

	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// PresignGet returns a time-limited download URL for the key
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
