package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/observability"
)

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

type Router struct {
	engine         *gin.Engine
	albumHandler   *handler.AlbumHandler
	photoHandler   *handler.PhotoHandler
	tagHandler     *handler.TagHandler
	accountHandler *handler.AccountHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	metrics        *observability.Metrics
	health         map[string]HealthCheck
	app            config.AppConfig
	cors           config.CORSConfig
	logger         *zap.Logger
}

type RouterConfig struct {
	AlbumHandler   *handler.AlbumHandler
	PhotoHandler   *handler.PhotoHandler
	TagHandler     *handler.TagHandler
	AccountHandler *handler.AccountHandler
	AuthMiddleware *middleware.AuthMiddleware
	// RateLimiter is optional; nil disables limiting.
	RateLimiter *middleware.RateLimiter
	Metrics     *observability.Metrics
	Health      map[string]HealthCheck
	App         config.AppConfig
	CORS        config.CORSConfig
	Logger      *zap.Logger
	Environment string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:         engine,
		albumHandler:   cfg.AlbumHandler,
		photoHandler:   cfg.PhotoHandler,
		tagHandler:     cfg.TagHandler,
		accountHandler: cfg.AccountHandler,
		authMiddleware: cfg.AuthMiddleware,
		rateLimiter:    cfg.RateLimiter,
		metrics:        cfg.Metrics,
		health:         cfg.Health,
		app:            cfg.App,
		cors:           cfg.CORS,
		logger:         cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	if len(r.cors.AllowedOrigins) > 0 {
		r.engine.Use(middleware.CORS(r.cors, r.app.Name))
	}
	if r.metrics != nil {
		r.engine.Use(middleware.Metrics(r.metrics))
	}
	// Images are already compressed and Prometheus negotiates its own encoding.
	r.engine.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/management/prometheus"}),
		gzip.WithExcludedPathsRegexs([]string{`^/api/photos/[0-9]+/(image|thumbnail)$`}),
	))
}

func (r *Router) setupRoutes() {
	management := r.engine.Group("/management")
	{
		management.GET("/health", r.healthHandler)
		management.GET("/info", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"app": gin.H{"name": r.app.Name, "version": r.app.Version}})
		})
		if r.metrics != nil {
			management.GET("/prometheus", gin.WrapH(r.metrics.Handler()))
		}
	}

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api")
	if r.rateLimiter != nil {
		api.Use(r.rateLimiter.Limit())
	}

	api.GET("/auth-info", r.accountHandler.AuthInfo)

	secured := api.Group("")
	secured.Use(r.authMiddleware.RequireAuth())
	{
		secured.GET("/account", r.accountHandler.Account)
		secured.GET("/users", r.accountHandler.Users)

		admin := secured.Group("/admin")
		admin.Use(r.authMiddleware.RequireAuthority(entity.AuthorityAdmin))
		{
			admin.GET("/users", r.accountHandler.AdminUsers)
		}

		albums := secured.Group("/albums")
		{
			albums.POST("", r.albumHandler.Create)
			albums.GET("", r.albumHandler.List)
			albums.GET("/:id", r.albumHandler.Get)
			albums.GET("/:id/photos", r.albumHandler.Photos)
			albums.PUT("/:id", r.albumHandler.Update)
			albums.PATCH("/:id", r.albumHandler.Patch)
			albums.DELETE("/:id", r.albumHandler.Delete)
		}

		photos := secured.Group("/photos")
		{
			photos.POST("", r.photoHandler.Create)
			photos.GET("", r.photoHandler.List)
			photos.GET("/:id", r.photoHandler.Get)
			photos.GET("/:id/image", r.photoHandler.Image)
			photos.GET("/:id/thumbnail", r.photoHandler.Thumbnail)
			photos.PUT("/:id", r.photoHandler.Update)
			photos.PATCH("/:id", r.photoHandler.Patch)
			photos.DELETE("/:id", r.photoHandler.Delete)
		}

		tags := secured.Group("/tags")
		{
			tags.POST("", r.tagHandler.Create)
			tags.GET("", r.tagHandler.List)
			tags.GET("/:id", r.tagHandler.Get)
			tags.GET("/:id/photos", r.tagHandler.Photos)
			tags.PUT("/:id", r.tagHandler.Update)
			tags.PATCH("/:id", r.tagHandler.Patch)
			tags.DELETE("/:id", r.tagHandler.Delete)
		}
	}
}

func (r *Router) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	components := gin.H{}
	for name, check := range r.health {
		if err := check(ctx); err != nil {
			r.logger.Warn("health check failed", zap.String("component", name), zap.Error(err))
			components[name] = gin.H{"status": "DOWN"}
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = gin.H{"status": "UP"}
	}

	overall := "UP"
	if status != http.StatusOK {
		overall = "DOWN"
	}
	c.JSON(status, gin.H{"status": overall, "components": components})
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
