// Package testutils provides test-only API endpoints.
// These routes are only registered when ENVIRONMENT=test.
package testutils

import (
	"github.com/labstack/echo/v4"
	"github.com/shishobooks/catalog/pkg/cache"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers test-only routes.
// These endpoints should ONLY be registered in test environments.
func RegisterRoutes(e *echo.Echo, db *bun.DB, c cache.Cache) {
	h := &handler{db, c}

	test := e.Group("/test")
	test.POST("/seed", h.seed)
	test.DELETE("/catalog", h.deleteCatalog)
}
