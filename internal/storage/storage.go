package storage

import (
	"context"
	"time"
)

// FileStorage reads objects such as the professional catalog and hands out
// temporary links to images.
type FileStorage interface {
	GetFile(ctx context.Context, fileURL string) ([]byte, error)

	GetPresignedURL(ctx context.Context, fileURL string, expiry time.Duration) (string, error)
}

// KeyValue is a handle to named entries in client-local persistent storage.
// Get returns nil, nil when the entry does not exist.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte) error
}
