// Package backend is the HTTP client for the s3sync server API. All listing,
// authorization, bundling and status calls from the CLI go through it.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/s3sync/s3sync/internal/errs"
	"github.com/s3sync/s3sync/internal/models"
)

// Status mirrors the server's storage usage report.
type Status struct {
	Bucket         string `json:"bucket"`
	Objects        uint64 `json:"objects"`
	Bytes          uint64 `json:"bytes"`
	FormattedBytes string `json:"formattedBytes"`
}

// Client talks to the s3sync server. Bundles are streamed through a second
// resty client that leaves response bodies unparsed; everything else is
// small JSON.
type Client struct {
	api    *resty.Client
	stream *resty.Client
}

// NewClient builds a client for the server at baseURL. The timeout applies
// to JSON calls only; bundle downloads run as long as the archive takes.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		api: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		stream: resty.New().
			SetBaseURL(baseURL).
			SetDoNotParseResponse(true),
	}
}

// Listing fetches the non-recursive listing for prefix ("" for the root).
func (c *Client) Listing(ctx context.Context, prefix string) (models.Listing, error) {
	resp, err := c.api.R().
		SetContext(ctx).
		SetQueryParam("prefix", prefix).
		Get("/api/objects")
	if err != nil {
		return models.Listing{}, errs.Wrap(errs.KindListing, "listing request failed", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.Listing{}, errs.New(errs.KindListing,
			fmt.Sprintf("listing %q: server returned %d", prefix, resp.StatusCode()))
	}

	var listing models.Listing
	if err := json.Unmarshal(resp.Body(), &listing); err != nil {
		return models.Listing{}, errs.Wrap(errs.KindListing, "malformed listing response", err)
	}
	return listing, nil
}

// Authorize requests a presigned transfer URL for exactly one key and one
// operation.
func (c *Client) Authorize(ctx context.Context, key string, op models.Operation) (models.TransferAuthorization, error) {
	resp, err := c.api.R().
		SetContext(ctx).
		SetQueryParam("key", key).
		SetQueryParam("op", string(op)).
		Get("/api/transfer-authorization")
	if err != nil {
		return models.TransferAuthorization{}, errs.Wrap(errs.KindAuthorization, "authorization request failed", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.TransferAuthorization{}, errs.New(errs.KindAuthorization,
			fmt.Sprintf("authorize %s %q: server returned %d", op, key, resp.StatusCode()))
	}

	var auth models.TransferAuthorization
	if err := json.Unmarshal(resp.Body(), &auth); err != nil {
		return models.TransferAuthorization{}, errs.Wrap(errs.KindAuthorization, "malformed authorization response", err)
	}
	if auth.URL == "" {
		return models.TransferAuthorization{}, errs.New(errs.KindAuthorization, "authorization response carries no URL")
	}
	if _, err := url.Parse(auth.URL); err != nil {
		return models.TransferAuthorization{}, errs.Wrap(errs.KindAuthorization, "authorization URL is invalid", err)
	}
	return auth, nil
}

// Bundle asks the server to assemble a zip archive of every object under
// prefix and returns the archive stream. The caller must close it.
func (c *Client) Bundle(ctx context.Context, prefix string) (io.ReadCloser, error) {
	resp, err := c.stream.R().
		SetContext(ctx).
		SetQueryParam("prefix", prefix).
		Post("/api/bundle")
	if err != nil {
		return nil, errs.Wrap(errs.KindBundling, "bundle request failed", err)
	}
	if resp.StatusCode() != http.StatusOK {
		body := resp.RawBody()
		if body != nil {
			io.Copy(io.Discard, io.LimitReader(body, 4<<10))
			body.Close()
		}
		return nil, errs.New(errs.KindBundling,
			fmt.Sprintf("bundle %q: server returned %d", prefix, resp.StatusCode()))
	}
	return resp.RawBody(), nil
}

// ServerStatus fetches storage usage totals from the server.
func (c *Client) ServerStatus(ctx context.Context) (Status, error) {
	resp, err := c.api.R().
		SetContext(ctx).
		Get("/api/status")
	if err != nil {
		return Status{}, errs.Wrap(errs.KindUnknown, "status request failed", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Status{}, errs.New(errs.KindUnknown,
			fmt.Sprintf("status: server returned %d", resp.StatusCode()))
	}

	var st Status
	if err := json.Unmarshal(resp.Body(), &st); err != nil {
		return Status{}, errs.Wrap(errs.KindUnknown, "malformed status response", err)
	}
	return st, nil
}
