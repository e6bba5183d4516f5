// Package stats serves the admin dashboard aggregates.
package stats

import (
	"github.com/gin-gonic/gin"
	"github.com/inkpress/core/internal/pkg/response"
	"github.com/inkpress/core/internal/storage"
)

type Handler struct {
	store *storage.Store
}

func NewHandler(store *storage.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/stats", h.Get)
}

// Get handles GET /admin/stats.
func (h *Handler) Get(c *gin.Context) {
	response.OK(c, h.store.Stats())
}
