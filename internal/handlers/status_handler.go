package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/s3sync/s3sync/internal/store"
	"github.com/s3sync/s3sync/internal/utils"
)

type StatusHandler struct {
	usage store.UsageReader
	log   zerolog.Logger
}

func NewStatusHandler(usage store.UsageReader, log zerolog.Logger) *StatusHandler {
	return &StatusHandler{usage: usage, log: log}
}

// GetStatus reports object and byte totals for the configured bucket.
func (h *StatusHandler) GetStatus(c echo.Context) error {
	usage, err := h.usage.Usage(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("usage lookup failed")
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to read storage usage")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"bucket":         usage.Bucket,
		"objects":        usage.Objects,
		"bytes":          usage.Bytes,
		"formattedBytes": utils.FormatBytes(usage.Bytes),
	})
}
