package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/auth"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/cache"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/database"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/observability"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/server"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/storage"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/flickr2-backend/internal/usecase/account"
	"github.com/marcos-nsantos/flickr2-backend/internal/usecase/album"
	"github.com/marcos-nsantos/flickr2-backend/internal/usecase/photo"
	"github.com/marcos-nsantos/flickr2-backend/internal/usecase/tag"
)

//	@title						flickr2 API
//	@version					0.0.1
//	@description				Albums, photos and tags.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App.Name, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPostgresPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, cfg.Server.MigrationsPath, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Repositories
	albumRepo := postgres.NewAlbumRepo(pool)
	photoRepo := postgres.NewPhotoRepo(pool)
	tagRepo := postgres.NewTagRepo(pool)
	userRepo := postgres.NewUserRepo(pool)

	// Infrastructure services
	verifier, err := auth.NewTokenVerifier(ctx, cfg.OIDC)
	if err != nil {
		logger.Fatal("failed to create token verifier", zap.Error(err))
	}
	imageProcessor := storage.NewImageProcessor()

	var photoOpts []photo.Option
	if cfg.S3.Enabled() {
		s3Storage, err := storage.NewS3Storage(cfg.S3)
		if err != nil {
			logger.Fatal("failed to create s3 storage", zap.Error(err))
		}
		photoOpts = append(photoOpts, photo.WithMirror(s3Storage, cfg.S3.PresignExpiry))
		logger.Info("image mirror enabled", zap.String("bucket", cfg.S3.Bucket))
	}

	health := map[string]server.HealthCheck{"db": pool.Ping}

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		var limiter middleware.Limiter
		switch cfg.RateLimit.Backend {
		case config.RateLimitRedis:
			rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
			if err != nil {
				logger.Fatal("failed to connect to redis", zap.Error(err))
			}
			defer rdb.Close()
			limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimit)
			health["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		default:
			ml := middleware.NewMemoryLimiter(cfg.RateLimit)
			go ml.Cleanup(ctx)
			limiter = ml
		}
		rateLimiter = middleware.NewRateLimiter(limiter, cfg.RateLimit, logger)
	}

	// Use cases
	albumSvc := album.NewService(albumRepo)
	photoSvc := photo.NewService(photoRepo, imageProcessor, logger, photoOpts...)
	tagSvc := tag.NewService(tagRepo)
	accountSvc := account.NewService(userRepo, logger)

	// Handlers
	alerts := httputil.NewAlerts(cfg.App.Name)
	albumHandler := handler.NewAlbumHandler(albumSvc, photoSvc, alerts)
	photoHandler := handler.NewPhotoHandler(photoSvc, alerts)
	tagHandler := handler.NewTagHandler(tagSvc, photoSvc, alerts)
	accountHandler := handler.NewAccountHandler(accountSvc, alerts, cfg.OIDC.IssuerURI, cfg.OIDC.ClientID)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AlbumHandler:   albumHandler,
		PhotoHandler:   photoHandler,
		TagHandler:     tagHandler,
		AccountHandler: accountHandler,
		AuthMiddleware: middleware.NewAuthMiddleware(verifier),
		RateLimiter:    rateLimiter,
		Metrics:        observability.NewMetrics(cfg.App.Name),
		Health:         health,
		App:            cfg.App,
		CORS:           cfg.CORS,
		Logger:         logger,
		Environment:    cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.Engine(),
		Logger:       logger,
	})

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
