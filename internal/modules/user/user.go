// Package user exposes the authenticated profile endpoint and the admin user
// management surface.
package user

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/core/internal/middleware"
	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/response"
	"github.com/inkpress/core/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// UpdateUserDTO is the admin/self patch body. Nil fields are untouched.
type UpdateUserDTO struct {
	Username *string      `json:"username"`
	Password *string      `json:"password"`
	Email    *string      `json:"email"`
	Name     *string      `json:"name"`
	Bio      *string      `json:"bio"`
	Avatar   *string      `json:"avatar"`
	Role     *models.Role `json:"role"`
	IsActive *bool        `json:"isActive"`
}

// PromoteDTO is the first-time-setup body for promoting a user to admin.
type PromoteDTO struct {
	Username  string `json:"username"  binding:"required"`
	SecretKey string `json:"secretKey" binding:"required"`
}

type Handler struct {
	store       *storage.Store
	setupSecret string
}

func NewHandler(store *storage.Store, setupSecret string) *Handler {
	return &Handler{store: store, setupSecret: setupSecret}
}

// RegisterRoutes mounts the profile route, the setup promote route and the
// admin user routes.
func (h *Handler) RegisterRoutes(rg, admin *gin.RouterGroup) {
	rg.GET("/profile", middleware.RequireAuth(), h.profile)
	rg.POST("/promote-to-admin", h.promote)

	users := admin.Group("/users")
	users.GET("", h.list)
	users.PUT("/:id", h.update)
	users.PATCH("/:id", h.update)
	users.DELETE("/:id", h.delete)
}

// profile GET /profile  [auth]
func (h *Handler) profile(c *gin.Context) {
	response.OK(c, middleware.CurrentUser(c))
}

// list GET /admin/users  [admin]
func (h *Handler) list(c *gin.Context) {
	response.OK(c, h.store.Users())
}

// update PUT /admin/users/:id  [admin]
func (h *Handler) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var dto UpdateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	patch := storage.UserPatch{
		Username: dto.Username,
		Email:    dto.Email,
		Name:     dto.Name,
		Bio:      dto.Bio,
		Avatar:   dto.Avatar,
		Role:     dto.Role,
		IsActive: dto.IsActive,
	}
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), bcrypt.DefaultCost)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		hashed := string(hash)
		patch.Password = &hashed
	}

	user, err := h.store.UpdateUser(id, patch)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			response.Conflict(c, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	if user == nil {
		response.NotFoundMsg(c, "User not found")
		return
	}
	response.OK(c, user)
}

// delete DELETE /admin/users/:id  [admin]
func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	h.store.DeleteUser(id)
	response.NoContent(c)
}

// promote POST /promote-to-admin
// First-time-setup escape hatch guarded by the configured setup secret.
func (h *Handler) promote(c *gin.Context) {
	var dto PromoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if h.setupSecret == "" || dto.SecretKey != h.setupSecret {
		response.Forbidden(c)
		return
	}

	user := h.store.UserByUsername(dto.Username)
	if user == nil {
		response.NotFoundMsg(c, "User not found")
		return
	}

	role := models.RoleAdmin
	updated, err := h.store.UpdateUser(user.ID, storage.UserPatch{Role: &role})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, updated)
}
