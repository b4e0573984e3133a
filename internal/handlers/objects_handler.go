// Package handlers implements the authorization backend's HTTP surface:
// listings, transfer authorizations, bundle assembly, and storage status.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/s3sync/s3sync/internal/models"
	"github.com/s3sync/s3sync/internal/store"
)

type ObjectsHandler struct {
	store store.ObjectStore
	log   zerolog.Logger
}

func NewObjectsHandler(st store.ObjectStore, log zerolog.Logger) *ObjectsHandler {
	return &ObjectsHandler{store: st, log: log}
}

// ListObjects returns the listing for one folder prefix. An empty prefix is
// the root. The response is {files: [...], folders: [...]}; the scope's own
// directory marker, when stored, is left in files for the client to hide.
func (h *ObjectsHandler) ListObjects(c echo.Context) error {
	prefix := c.QueryParam("prefix")

	listing, err := h.store.List(c.Request().Context(), prefix)
	if err != nil {
		h.log.Error().Err(err).Str("prefix", prefix).Msg("listing failed")
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to list objects")
	}

	// Keep the wire shape stable for empty scopes: arrays, never null.
	if listing.Files == nil {
		listing.Files = []models.ObjectRecord{}
	}
	if listing.Folders == nil {
		listing.Folders = []string{}
	}
	return c.JSON(http.StatusOK, listing)
}
