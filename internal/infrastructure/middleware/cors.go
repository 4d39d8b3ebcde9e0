package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/config"
)

func CORS(cfg config.CORSConfig, appName string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{"Authorization", "Link", "X-Total-Count", "X-" + appName + "-alert", "X-" + appName + "-error", "X-" + appName + "-params"},
		AllowCredentials: true,
		MaxAge:           cfg.MaxAge,
	})
}
