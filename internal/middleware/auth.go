package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/jwt"
	"github.com/inkpress/core/internal/pkg/response"
	"github.com/inkpress/core/internal/storage"
)

const contextKeyUser = "auth_user"

// Principal resolves the bearer token (if any) into an authenticated user and
// stores it on the context. It never blocks the request; RequireAuth and
// RequireAdmin enforce the tiers. Role and active state come from the store,
// not the token, so edits take effect on the next request.
func Principal(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			c.Next()
			return
		}
		user := store.UserByID(claims.UserID)
		if user == nil || !user.IsActive {
			c.Next()
			return
		}
		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// RequireAuth rejects unauthenticated requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects unauthenticated requests with 401 and authenticated
// non-admins with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Unauthorized(c)
			return
		}
		if user.Role != models.RoleAdmin {
			response.Forbidden(c)
			return
		}
		c.Next()
	}
}

// CurrentUser extracts the authenticated user from context, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, _ := c.Get(contextKeyUser)
	u, _ := v.(*models.User)
	return u
}

// IsAuthenticated reports whether the request carries a valid principal.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUser(c) != nil
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return normalizeToken(auth)
	}
	return normalizeToken(c.Query("token"))
}

// normalizeToken trims spaces and strips the optional Bearer prefix.
func normalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
