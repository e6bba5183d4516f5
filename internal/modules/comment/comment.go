// Package comment implements public comment submission and the admin
// moderation queue.
package comment

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/core/internal/middleware"
	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/pagination"
	"github.com/inkpress/core/internal/pkg/response"
	"github.com/inkpress/core/internal/storage"
)

// CreateCommentDTO is the request body for submitting a comment. Name
// and email are required for anonymous visitors and ignored for
// authenticated ones.
type CreateCommentDTO struct {
	Content     string `json:"content" binding:"required"`
	PostID      int    `json:"postId"  binding:"required"`
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	ParentID    *int   `json:"parentId"`
}

// ModerateDTO is the request body for moving a comment between
// moderation states.
type ModerateDTO struct {
	Status models.CommentStatus `json:"status" binding:"required"`
}

type listQuery struct {
	PostID int    `form:"postId"`
	Status string `form:"status"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
}

type Handler struct {
	store *storage.Store
}

func NewHandler(store *storage.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup) {
	rg.GET("/posts/:identifier/comments", h.ListForPost)
	rg.POST("/comments", h.Create)

	admin.GET("/comments", h.AdminList)
	admin.PUT("/comments/:id", h.Moderate)
	admin.PATCH("/comments/:id", h.Moderate)
	admin.DELETE("/comments/:id", h.Delete)
}

// ListForPost handles GET /posts/:identifier/comments. Only approved
// comments are visible.
func (h *Handler) ListForPost(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("identifier"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	response.OK(c, h.store.CommentsForPost(postID))
}

// Create handles POST /comments. Comments always enter the queue as
// pending, whoever submits them.
func (h *Handler) Create(c *gin.Context) {
	var dto CreateCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post := h.store.PostByID(dto.PostID)
	if post == nil {
		response.NotFoundMsg(c, "Post not found")
		return
	}
	if !post.IsCommentsEnabled {
		response.ForbiddenMsg(c, "Comments are disabled for this post")
		return
	}

	in := storage.CreateComment{
		Content:  dto.Content,
		PostID:   dto.PostID,
		ParentID: dto.ParentID,
	}
	if user := middleware.CurrentUser(c); user != nil {
		in.AuthorID = &user.ID
		in.AuthorName = user.Username
		in.AuthorEmail = user.Email
	} else {
		if dto.AuthorName == "" || dto.AuthorEmail == "" {
			response.BadRequest(c, "authorName and authorEmail are required")
			return
		}
		in.AuthorName = dto.AuthorName
		in.AuthorEmail = dto.AuthorEmail
	}

	response.Created(c, h.store.CreateComment(in))
}

// AdminList handles GET /admin/comments with status, post, search and
// sort filters.
func (h *Handler) AdminList(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	pq := pagination.FromContext(c)
	comments, meta := h.store.QueryComments(storage.CommentFilters{
		Page:      pq.Page,
		Limit:     pq.Limit,
		PostID:    q.PostID,
		Status:    models.CommentStatus(q.Status),
		Search:    q.Search,
		Ascending: q.Sort == "oldest",
	})
	response.Paged(c, comments, meta)
}

func (h *Handler) Moderate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}
	var dto ModerateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.store.UpdateCommentStatus(id, dto.Status)
	if err != nil {
		if errors.Is(err, storage.ErrValidation) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if cm == nil {
		response.NotFoundMsg(c, "Comment not found")
		return
	}
	response.OK(c, cm)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}
	h.store.DeleteComment(id)
	response.NoContent(c)
}
