package app

import (
	"github.com/gin-gonic/gin"

	"github.com/inkpress/core/internal/middleware"
	"github.com/inkpress/core/internal/modules/ads"
	"github.com/inkpress/core/internal/modules/auth"
	"github.com/inkpress/core/internal/modules/category"
	"github.com/inkpress/core/internal/modules/comment"
	"github.com/inkpress/core/internal/modules/post"
	"github.com/inkpress/core/internal/modules/settings"
	"github.com/inkpress/core/internal/modules/stats"
	"github.com/inkpress/core/internal/modules/tag"
	"github.com/inkpress/core/internal/modules/user"
	"github.com/inkpress/core/internal/pkg/response"
)

// registerRoutes mounts every module under /api. Management endpoints
// live under /api/admin behind the admin guard.
func (a *App) registerRoutes() {
	api := a.Engine.Group("/api")
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin())

	auth.NewHandler(auth.NewService(a.Store)).RegisterRoutes(api)

	post.NewHandler(a.Store).RegisterRoutes(api, admin)
	category.NewHandler(a.Store).RegisterRoutes(api, admin)
	tag.NewHandler(a.Store).RegisterRoutes(api, admin)
	comment.NewHandler(a.Store).RegisterRoutes(api, admin)
	settings.NewHandler(a.Store).RegisterRoutes(api, admin)
	ads.NewHandler(a.Store).RegisterRoutes(api)
	stats.NewHandler(a.Store).RegisterRoutes(admin)

	user.NewHandler(a.Store, a.cfg.SetupSecret).RegisterRoutes(api, admin)

	a.Engine.NoRoute(func(c *gin.Context) { response.NotFound(c) })
	a.Engine.NoMethod(func(c *gin.Context) { response.MethodNotAllowed(c) })
}
