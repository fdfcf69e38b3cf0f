package storage

import (
	"context"
	"io"
	"log/slog"

	cfg "github.com/mindsync/wellness/internal/config"
)

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores a file at the given path
	Save(ctx context.Context, path string, file io.Reader) error

	// Delete removes a file at the given path
	Delete(ctx context.Context, path string) error

	// URL returns the address persisted for a stored file. Local storage
	// returns a server-relative path, S3 an absolute URL.
	URL(path string) string

	// PathFromURL reverses URL. It reports false for addresses this storage
	// did not produce.
	PathFromURL(url string) (string, bool)
}

// New picks S3-compatible storage when a bucket is configured, local disk otherwise.
func New(c *cfg.Config) (Storage, error) {
	if !c.UsesS3() {
		slog.Info("initializing local storage", "dir", c.UploadDir)
		return NewLocalStorage(c.UploadDir)
	}

	slog.Info("initializing S3 storage",
		"bucket", c.S3Bucket,
		"region", c.S3Region,
		"endpoint", c.S3Endpoint,
	)
	return NewS3Storage(S3Config{
		Region:    c.S3Region,
		Bucket:    c.S3Bucket,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
		Endpoint:  c.S3Endpoint,
		Timeout:   c.S3Timeout,
	})
}
