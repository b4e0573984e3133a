package transfer

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/s3sync/s3sync/internal/errs"
	"github.com/s3sync/s3sync/internal/models"
)

// Bundler assembles a zip archive of every object under a prefix on the
// server side and streams it back.
type Bundler interface {
	Bundle(ctx context.Context, prefix string) (io.ReadCloser, error)
}

// Downloader pulls single objects through read grants and whole folders
// through server-side bundles. A folder download is always one archive
// stream; it is never decomposed into per-object transfers, so a bundling
// failure ends the download.
type Downloader struct {
	auth      Authorizer
	transport *Transport
	bundler   Bundler
	log       zerolog.Logger
}

func NewDownloader(auth Authorizer, transport *Transport, bundler Bundler, log zerolog.Logger) *Downloader {
	return &Downloader{auth: auth, transport: transport, bundler: bundler, log: log}
}

// Object downloads the object at key into dst.
func (d *Downloader) Object(ctx context.Context, key string, dst io.Writer) (int64, error) {
	auth, err := d.auth.Authorize(ctx, key, models.OperationRead)
	if err != nil {
		return 0, err
	}
	return d.transport.Get(ctx, auth, dst)
}

// Folder downloads every object under prefix as a single zip archive
// written to dst.
func (d *Downloader) Folder(ctx context.Context, prefix string, dst io.Writer) (int64, error) {
	if prefix == "" {
		return 0, errs.New(errs.KindBundling, "folder download needs a prefix")
	}

	archive, err := d.bundler.Bundle(ctx, prefix)
	if err != nil {
		return 0, err
	}
	defer archive.Close()

	n, err := io.Copy(dst, archive)
	if err != nil {
		return n, errs.Wrap(errs.KindBundling, "archive stream interrupted", err)
	}
	d.log.Debug().Str("prefix", prefix).Int64("bytes", n).Msg("folder archive downloaded")
	return n, nil
}

// PreviewURL returns a short-lived read URL for key, suitable for handing
// to a browser or media player.
func (d *Downloader) PreviewURL(ctx context.Context, key string) (string, error) {
	auth, err := d.auth.Authorize(ctx, key, models.OperationRead)
	if err != nil {
		return "", err
	}
	return auth.URL, nil
}
