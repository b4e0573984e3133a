// Package transfer moves object bytes between the local machine and the
// store. Every transfer is preceded by an authorization grant for exactly
// one key and one operation; the transport then talks to the presigned URL
// directly, never to the store's credentialed API.
package transfer

import (
	"context"

	"github.com/s3sync/s3sync/internal/models"
)

// Authorizer grants single-key, single-operation transfer capabilities.
// The server-side backend client implements it.
type Authorizer interface {
	Authorize(ctx context.Context, key string, op models.Operation) (models.TransferAuthorization, error)
}
