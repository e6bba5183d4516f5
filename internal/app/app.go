// Package app assembles the HTTP server: store, middleware chain and
// module routes.
package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkpress/core/internal/config"
	"github.com/inkpress/core/internal/middleware"
	"github.com/inkpress/core/internal/modules/auth"
	"github.com/inkpress/core/internal/pkg/jwt"
	"github.com/inkpress/core/internal/pkg/redis"
	"github.com/inkpress/core/internal/storage"
)

type App struct {
	Engine *gin.Engine
	Store  *storage.Store
	Redis  *redis.Client

	log *zap.Logger
	cfg *config.AppConfig
}

// New builds a fully wired application. Redis is optional: when the
// connection fails the rate limiter is skipped and everything else
// keeps working.
func New(log *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.JWTSecret != "" {
		jwt.SetSecret(cfg.JWTSecret)
	}

	store := storage.New()

	var rc *redis.Client
	if cfg.RedisURL != "" {
		var err error
		rc, err = redis.Connect(cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			rc = nil
		}
	}

	if cfg.Admin.Username != "" {
		if err := auth.NewService(store).EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Email); err != nil {
			return nil, err
		}
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(log))
	engine.Use(corsMiddleware(cfg))
	engine.Use(middleware.Principal(store))
	if rc != nil {
		engine.Use(middleware.RateLimit(rc.Raw()))
	}

	a := &App{
		Engine: engine,
		Store:  store,
		Redis:  rc,
		log:    log,
		cfg:    cfg,
	}
	a.registerRoutes()
	return a, nil
}

func corsMiddleware(cfg *config.AppConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return cors.New(c)
}
