// Package tag exposes the taxonomy endpoints for post tags.
package tag

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/core/internal/pkg/response"
	"github.com/inkpress/core/internal/storage"
)

// CreateTagDTO is the request body for creating a tag.
type CreateTagDTO struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

// UpdateTagDTO is the request body for patching a tag.
type UpdateTagDTO struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

type Handler struct {
	store *storage.Store
}

func NewHandler(store *storage.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup) {
	rg.GET("/tags", h.List)

	admin.POST("/tags", h.Create)
	admin.PUT("/tags/:id", h.Update)
	admin.PATCH("/tags/:id", h.Update)
	admin.DELETE("/tags/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	response.OK(c, h.store.Tags())
}

func (h *Handler) Create(c *gin.Context) {
	var dto CreateTagDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	t, err := h.store.CreateTag(storage.CreateTag{
		Name:        dto.Name,
		Slug:        dto.Slug,
		Description: dto.Description,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			response.Conflict(c, "Tag already exists")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, t)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tag id")
		return
	}
	var dto UpdateTagDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	t, err := h.store.UpdateTag(id, storage.TagPatch{
		Name:        dto.Name,
		Slug:        dto.Slug,
		Description: dto.Description,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			response.Conflict(c, "Tag already exists")
			return
		}
		response.InternalError(c, err)
		return
	}
	if t == nil {
		response.NotFoundMsg(c, "Tag not found")
		return
	}
	response.OK(c, t)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tag id")
		return
	}
	h.store.DeleteTag(id)
	response.NoContent(c)
}
