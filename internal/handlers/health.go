package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/database"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string        `json:"status"`
	Database string        `json:"database"`
	Catalog  CatalogHealth `json:"catalog"`
}

// CatalogHealth summarizes the catalog snapshot
type CatalogHealth struct {
	Ready   bool   `json:"ready"`
	Stale   bool   `json:"stale"`
	Version uint64 `json:"version"`
}

// FreshnessReporter reports catalog freshness.
type FreshnessReporter interface {
	Freshness() catalog.Freshness
}

// HealthCheck returns a handler reporting database and catalog health.
// The service is unavailable until every catalog entity has loaded once.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func HealthCheck(reporter FreshnessReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := reporter.Freshness()
		response := HealthResponse{
			Status:  "ok",
			Catalog: CatalogHealth{Ready: f.Ready, Stale: f.Stale, Version: f.Version},
		}
		code := http.StatusOK

		// Check database connection
		if database.Pool() != nil {
			if err := database.Status(c.Request.Context()); err != nil {
				response.Database = "disconnected"
				response.Status = "degraded"
				code = http.StatusServiceUnavailable
			} else {
				response.Database = "connected"
			}
		} else {
			response.Database = "not configured"
		}

		if !f.Ready {
			response.Status = "starting"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, response)
	}
}
