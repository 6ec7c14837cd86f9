package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
)

// CatalogLoader reloads the catalog and reports its state.
type CatalogLoader interface {
	Load(ctx context.Context) error
	Freshness() catalog.Freshness
}

// RefreshPublisher tells other replicas to reload.
type RefreshPublisher interface {
	Publish(ctx context.Context) error
}

// RefreshResponse is the result of an operator refresh.
type RefreshResponse struct {
	Status         string   `json:"status"`
	Version        uint64   `json:"version"`
	FailedEntities []string `json:"failed_entities"`
	Broadcast      bool     `json:"broadcast"`
	Error          string   `json:"error,omitempty"`
}

// CatalogHandler serves the operator catalog endpoints.
type CatalogHandler struct {
	loader    CatalogLoader
	publisher RefreshPublisher
	logger    *zerolog.Logger
}

// NewCatalogHandler creates the handler. publisher may be nil.
func NewCatalogHandler(loader CatalogLoader, publisher RefreshPublisher) *CatalogHandler {
	logger := log.With().Str("handler", "catalog").Logger()
	return &CatalogHandler{loader: loader, publisher: publisher, logger: &logger}
}

// Refresh reloads the catalog from its source
// @Summary Refresh catalog
// @Description Reloads every catalog entity from the source and publishes a new snapshot. Entities that fail to load keep their previous data. Other replicas are notified when a broadcast channel is configured.
// @Tags catalog
// @Produce json
// @Security InternalAPIKey
// @Success 200 {object} RefreshResponse "All entities reloaded"
// @Success 207 {object} RefreshResponse "Some entities failed"
// @Failure 502 {object} RefreshResponse "Every entity failed"
// @Failure 503 {object} RefreshResponse "Circuit breaker open"
// @Router /internal/catalog/refresh [post]
func (h *CatalogHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	err := h.loader.Load(ctx)

	resp := RefreshResponse{FailedEntities: []string{}}
	status := http.StatusOK

	switch {
	case err == nil:
		resp.Status = "ok"
	case errors.Is(err, catalog.ErrCircuitOpen):
		resp.Status = "rejected"
		status = http.StatusServiceUnavailable
	default:
		failed := catalog.FailedEntities(err)
		for _, e := range failed {
			resp.FailedEntities = append(resp.FailedEntities, e.String())
		}
		if len(failed) == len(catalog.Entities()) {
			resp.Status = "failed"
			status = http.StatusBadGateway
		} else {
			resp.Status = "partial"
			status = http.StatusMultiStatus
		}
	}
	if err != nil {
		resp.Error = err.Error()
		h.logger.Warn().Err(err).Str("status", resp.Status).Msg("Catalog refresh incomplete")
	}

	if h.publisher != nil && status != http.StatusServiceUnavailable && status != http.StatusBadGateway {
		if pubErr := h.publisher.Publish(ctx); pubErr != nil {
			h.logger.Warn().Err(pubErr).Msg("Failed to broadcast catalog refresh")
		} else {
			resp.Broadcast = true
		}
	}

	resp.Version = h.loader.Freshness().Version
	c.JSON(status, resp)
}

// Status reports the freshness of the published catalog
// @Summary Catalog status
// @Description Returns the version, age and per-entity load state of the published catalog snapshot.
// @Tags catalog
// @Produce json
// @Security InternalAPIKey
// @Success 200 {object} catalog.Freshness
// @Router /internal/catalog/status [get]
func (h *CatalogHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.loader.Freshness())
}
