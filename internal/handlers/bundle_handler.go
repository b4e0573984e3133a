package handlers

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/s3sync/s3sync/internal/keyspace"
	"github.com/s3sync/s3sync/internal/store"
)

type BundleHandler struct {
	store store.ObjectStore
	log   zerolog.Logger
}

func NewBundleHandler(st store.ObjectStore, log zerolog.Logger) *BundleHandler {
	return &BundleHandler{store: st, log: log}
}

// Bundle streams a zip archive of every object under the requested prefix.
// Entry names are relative to the prefix; directory markers are excluded.
// A prefix with no objects is rejected so the client never receives an
// empty archive as success.
func (h *BundleHandler) Bundle(c echo.Context) error {
	prefix := c.QueryParam("prefix")
	if prefix == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Prefix parameter is required")
	}

	records, err := h.store.Walk(c.Request().Context(), prefix)
	if err != nil {
		h.log.Error().Err(err).Str("prefix", prefix).Msg("bundle walk failed")
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to list objects for bundling")
	}
	if len(records) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No files to bundle")
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/zip")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", keyspace.ArchiveName(prefix)))
	c.Response().WriteHeader(http.StatusOK)

	zipWriter := zip.NewWriter(c.Response().Writer)
	defer func() { _ = zipWriter.Close() }()

	for _, rec := range records {
		reader, err := h.store.Reader(c.Request().Context(), rec.Key)
		if err != nil {
			// Headers are already out; skip the object rather than abort
			// the whole archive.
			h.log.Warn().Err(err).Str("key", rec.Key).Msg("bundle skipping unreadable object")
			continue
		}

		entry, err := zipWriter.Create(strings.TrimPrefix(rec.Key, prefix))
		if err != nil {
			_ = reader.Close()
			return err
		}

		_, err = io.Copy(entry, reader)
		_ = reader.Close()
		if err != nil {
			return err
		}
	}

	return nil
}
