// Package store is the server-side port onto the S3-compatible object
// store. Handlers depend only on the interfaces here, never on the MinIO
// SDK directly, so tests can inject fakes and assert call counts.
package store

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/s3sync/s3sync/internal/models"
)

// ObjectStore exposes the listing, streaming, and presigning operations the
// backend needs. The store's namespace is flat; folder structure is derived
// from '/'-delimited keys by the listing implementation.
type ObjectStore interface {
	// List returns the objects directly under prefix plus its immediate
	// child prefixes (delimiter listing). The scope's own directory marker
	// object, when present, is included in Files.
	List(ctx context.Context, prefix string) (models.Listing, error)

	// Walk returns every object under prefix recursively, directory
	// markers excluded. Used for bundle assembly.
	Walk(ctx context.Context, prefix string) ([]models.ObjectRecord, error)

	// Reader opens a streaming handle to one object. The caller must close it.
	Reader(ctx context.Context, key string) (io.ReadCloser, error)

	// PresignGet issues a time-limited URL permitting one GET of key.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (*url.URL, error)

	// PresignPut issues a time-limited URL permitting one PUT to key.
	PresignPut(ctx context.Context, key string, ttl time.Duration) (*url.URL, error)
}

// Usage summarises the configured bucket.
type Usage struct {
	Bucket  string
	Objects uint64
	Bytes   uint64
}

// UsageReader reports storage usage for the status endpoint.
type UsageReader interface {
	Usage(ctx context.Context) (Usage, error)
}
