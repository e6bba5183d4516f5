package post

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/core/internal/middleware"
	"github.com/inkpress/core/internal/pkg/pagination"
	"github.com/inkpress/core/internal/pkg/response"
	"github.com/inkpress/core/internal/storage"
)

type Handler struct {
	svc *Service
}

func NewHandler(store *storage.Store) *Handler {
	return &Handler{svc: NewService(store)}
}

// RegisterRoutes mounts the public post endpoints on rg and the
// management endpoints on admin.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup) {
	rg.GET("/posts", h.List)
	rg.GET("/posts/:identifier", h.GetBySlug)

	admin.GET("/posts", h.AdminList)
	admin.POST("/posts", h.Create)
	admin.PUT("/posts/:id", h.Update)
	admin.PATCH("/posts/:id", h.Update)
	admin.DELETE("/posts/:id", h.Delete)
}

// List handles GET /posts. Only published posts are visible here.
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	// status is a management filter; visibility here comes from the mode
	q.Status = ""
	posts, meta := h.svc.ListPublic(q, pagination.FromContext(c))
	response.Paged(c, posts, meta)
}

// GetBySlug handles GET /posts/:identifier and counts one view.
func (h *Handler) GetBySlug(c *gin.Context) {
	p := h.svc.GetBySlug(c.Param("identifier"))
	if p == nil {
		response.NotFoundMsg(c, "Post not found")
		return
	}
	response.OK(c, p)
}

// AdminList handles GET /admin/posts. Drafts and scheduled posts are
// included unless a status filter narrows them down.
func (h *Handler) AdminList(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	posts, meta := h.svc.ListAdmin(q, pagination.FromContext(c))
	response.Paged(c, posts, meta)
}

func (h *Handler) Create(c *gin.Context) {
	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Unauthorized(c)
		return
	}
	p, err := h.svc.Create(dto, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			response.Conflict(c, "Post slug already exists")
		case errors.Is(err, storage.ErrValidation):
			response.UnprocessableEntity(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, p)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(id, dto)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			response.Conflict(c, "Post slug already exists")
		case errors.Is(err, storage.ErrValidation):
			response.UnprocessableEntity(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	if p == nil {
		response.NotFoundMsg(c, "Post not found")
		return
	}
	response.OK(c, p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	h.svc.Delete(id)
	response.NoContent(c)
}
