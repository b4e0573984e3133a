package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/s3sync/s3sync/internal/errs"
	"github.com/s3sync/s3sync/internal/models"
)

// Transport executes a granted transfer against its presigned URL. One
// attempt per grant: a failed transfer surfaces to the caller rather than
// retrying against a URL that may be mid-expiry.
type Transport struct {
	put    *resty.Client
	stream *resty.Client
}

// NewTransport builds a transport with no request timeout; transfers run
// for as long as the bytes take.
func NewTransport() *Transport {
	return &Transport{
		put:    resty.New(),
		stream: resty.New().SetDoNotParseResponse(true),
	}
}

// Put uploads body to the write-authorized URL in auth.
func (t *Transport) Put(ctx context.Context, auth models.TransferAuthorization, body io.Reader, size int64, contentType string) error {
	if auth.Op != models.OperationWrite {
		return errs.New(errs.KindTransfer,
			fmt.Sprintf("authorization for %q grants %s, not write", auth.Key, auth.Op))
	}

	req := t.put.R().
		SetContext(ctx).
		SetBody(body)
	if contentType != "" {
		req.SetHeader("Content-Type", contentType)
	}
	if size >= 0 {
		req.SetHeader("Content-Length", fmt.Sprintf("%d", size))
	}

	resp, err := req.Put(auth.URL)
	if err != nil {
		return errs.Wrap(errs.KindTransfer, fmt.Sprintf("upload %q failed", auth.Key), err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusNoContent {
		return errs.New(errs.KindTransfer,
			fmt.Sprintf("upload %q: store returned %d", auth.Key, resp.StatusCode()))
	}
	return nil
}

// Get downloads the read-authorized object in auth into dst and returns the
// number of bytes written.
func (t *Transport) Get(ctx context.Context, auth models.TransferAuthorization, dst io.Writer) (int64, error) {
	if auth.Op != models.OperationRead {
		return 0, errs.New(errs.KindTransfer,
			fmt.Sprintf("authorization for %q grants %s, not read", auth.Key, auth.Op))
	}

	resp, err := t.stream.R().
		SetContext(ctx).
		Get(auth.URL)
	if err != nil {
		return 0, errs.Wrap(errs.KindTransfer, fmt.Sprintf("download %q failed", auth.Key), err)
	}
	body := resp.RawBody()
	if body == nil {
		return 0, errs.New(errs.KindTransfer, fmt.Sprintf("download %q: empty response", auth.Key))
	}
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(body, 4<<10))
		return 0, errs.New(errs.KindTransfer,
			fmt.Sprintf("download %q: store returned %d", auth.Key, resp.StatusCode()))
	}

	n, err := io.Copy(dst, body)
	if err != nil {
		return n, errs.Wrap(errs.KindTransfer, fmt.Sprintf("download %q interrupted", auth.Key), err)
	}
	return n, nil
}
