package transfer

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/s3sync/s3sync/internal/errs"
	"github.com/s3sync/s3sync/internal/hierarchy"
	"github.com/s3sync/s3sync/internal/keyspace"
	"github.com/s3sync/s3sync/internal/models"
)

// File is a local file staged for upload.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

// UploadResult reports a completed upload. RefreshErr carries a listing
// refresh failure that followed an otherwise successful transfer; the
// upload itself still succeeded.
type UploadResult struct {
	Key        string
	Size       int64
	RefreshErr error
}

// Uploader places files into a target folder: it derives the destination
// key, obtains a write grant, pushes the bytes, then refreshes only the
// target folder's listing.
type Uploader struct {
	auth      Authorizer
	transport *Transport
	cache     *hierarchy.Cache
	log       zerolog.Logger
}

func NewUploader(auth Authorizer, transport *Transport, cache *hierarchy.Cache, log zerolog.Logger) *Uploader {
	return &Uploader{auth: auth, transport: transport, cache: cache, log: log}
}

// Upload transfers f into folder ("" for the root). A transfer or
// authorization failure aborts the upload; a failure refreshing the folder
// listing afterwards does not.
func (u *Uploader) Upload(ctx context.Context, folder string, f File) (UploadResult, error) {
	if f.Name == "" {
		return UploadResult{}, errs.New(errs.KindTransfer, "upload needs a file name")
	}
	key := keyspace.Join(folder, f.Name)

	auth, err := u.auth.Authorize(ctx, key, models.OperationWrite)
	if err != nil {
		return UploadResult{}, err
	}

	if err := u.transport.Put(ctx, auth, f.Content, f.Size, f.ContentType); err != nil {
		return UploadResult{}, err
	}

	result := UploadResult{Key: key, Size: f.Size}
	if u.cache != nil {
		if _, err := u.cache.Refresh(ctx, folder); err != nil {
			u.log.Warn().Err(err).Str("folder", folder).Msg("listing refresh after upload failed")
			result.RefreshErr = err
		}
	}
	return result, nil
}
