package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/s3sync/s3sync/internal/models"
	"github.com/s3sync/s3sync/internal/store"
)

type TransferHandler struct {
	store store.ObjectStore
	ttl   time.Duration
	log   zerolog.Logger
}

func NewTransferHandler(st store.ObjectStore, ttl time.Duration, log zerolog.Logger) *TransferHandler {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TransferHandler{store: st, ttl: ttl, log: log}
}

// Authorize issues a short-lived, single-operation transfer URL for exactly
// one key. The server never hands out credentials; the presigned URL is the
// only capability the caller receives.
func (h *TransferHandler) Authorize(c echo.Context) error {
	key := c.QueryParam("key")
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Key parameter is required")
	}

	op := models.Operation(c.QueryParam("op"))
	ctx := c.Request().Context()

	var (
		u   *url.URL
		err error
	)
	switch op {
	case models.OperationRead:
		u, err = h.store.PresignGet(ctx, key, h.ttl)
	case models.OperationWrite:
		u, err = h.store.PresignPut(ctx, key, h.ttl)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "op must be read or write")
	}
	if err != nil {
		h.log.Error().Err(err).Str("key", key).Str("op", string(op)).Msg("presign failed")
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to authorize transfer")
	}

	return c.JSON(http.StatusOK, models.TransferAuthorization{
		Key:       key,
		Op:        op,
		URL:       u.String(),
		ExpiresAt: time.Now().Add(h.ttl),
	})
}
