package authors

import (
	"github.com/labstack/echo/v4"
	"github.com/shishobooks/catalog/pkg/cache"
	"github.com/shishobooks/catalog/pkg/config"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers author routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db bun.IDB, c cache.Cache, cfg *config.Config) {
	authorService := NewService(NewRepository(db), c, cfg.CacheTTL)

	h := &handler{authorService}

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.retrieve)
	g.PATCH("/:id", h.update)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/books", h.listBooks)
}
