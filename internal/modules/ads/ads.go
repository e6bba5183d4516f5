// Package ads serves the active ad units embedded on the public site.
package ads

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ads", h.List)
}

// List handles GET /ads. Inactive units are never exposed.
func (h *Handler) List(c *gin.Context) {
	response.OK(c, h.store.ActiveAdUnits())
}
