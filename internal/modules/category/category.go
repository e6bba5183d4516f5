// Package category exposes the taxonomy endpoints for post categories.
package category

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/core/internal/pkg/response"
	"github.com/inkpress/core/internal/storage"
)

// CreateCategoryDTO is the request body for creating a category.
type CreateCategoryDTO struct {
	Name          string `json:"name" binding:"required"`
	Slug          string `json:"slug" binding:"required"`
	Description   string `json:"description"`
	FeaturedImage string `json:"featuredImage"`
	ParentID      *int   `json:"parentId"`
}

// UpdateCategoryDTO is the request body for patching a category. An
// explicit "parentId": null detaches the category from its parent,
// while omitting the key leaves it alone.
type UpdateCategoryDTO struct {
	Name          *string          `json:"name"`
	Slug          *string          `json:"slug"`
	Description   *string          `json:"description"`
	FeaturedImage *string          `json:"featuredImage"`
	ParentID      *json.RawMessage `json:"parentId"`
}

type Handler struct {
	store *storage.Store
}

func NewHandler(store *storage.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup) {
	rg.GET("/categories", h.List)
	rg.GET("/categories/:slug", h.GetBySlug)

	admin.POST("/categories", h.Create)
	admin.PUT("/categories/:id", h.Update)
	admin.PATCH("/categories/:id", h.Update)
	admin.DELETE("/categories/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	response.OK(c, h.store.Categories())
}

func (h *Handler) GetBySlug(c *gin.Context) {
	cat := h.store.CategoryBySlug(c.Param("slug"))
	if cat == nil {
		response.NotFoundMsg(c, "Category not found")
		return
	}
	response.OK(c, cat)
}

func (h *Handler) Create(c *gin.Context) {
	var dto CreateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.store.CreateCategory(storage.CreateCategory{
		Name:          dto.Name,
		Slug:          dto.Slug,
		Description:   dto.Description,
		FeaturedImage: dto.FeaturedImage,
		ParentID:      dto.ParentID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			response.Conflict(c, "Category slug already exists")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, cat)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}
	var dto UpdateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	patch := storage.CategoryPatch{
		Name:          dto.Name,
		Slug:          dto.Slug,
		Description:   dto.Description,
		FeaturedImage: dto.FeaturedImage,
	}
	if dto.ParentID != nil {
		var parent *int
		if err := json.Unmarshal(*dto.ParentID, &parent); err != nil {
			response.BadRequest(c, "invalid parentId")
			return
		}
		patch.ParentID = &parent
	}
	cat, err := h.store.UpdateCategory(id, patch)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			response.Conflict(c, "Category slug already exists")
			return
		}
		response.InternalError(c, err)
		return
	}
	if cat == nil {
		response.NotFoundMsg(c, "Category not found")
		return
	}
	response.OK(c, cat)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}
	h.store.DeleteCategory(id)
	response.NoContent(c)
}
