// Package settings serves the site configuration key/value map.
package settings

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup) {
	rg.GET("/settings", h.Get)

	admin.PUT("/settings", h.Update)
}

// Get handles GET /settings?group=. Responds with the flat key→value
// map, optionally narrowed to one group.
func (h *Handler) Get(c *gin.Context) {
	response.OK(c, h.store.Settings(c.Query("group")))
}

// Update handles PUT /admin/settings. The body is a partial key→value
// map; unknown keys are created in the "general" group.
func (h *Handler) Update(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, h.store.UpdateSettings(patch))
}
