package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/salonkita/salonkita-api/internal/config"
)

var defaultAllowHeaders = []string{
	"Accept",
	"Authorization",
	"Content-Type",
	"X-Request-ID",
	"Origin",
	"Idempotency-Key",
}

// CORSMiddleware creates a CORS middleware from configuration. Missing
// values fall back to development defaults, and Idempotency-Key is
// always allowed because transaction creation requires it.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}
	}
	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(corsConfig.AllowHeaders) == 0 {
		corsConfig.AllowHeaders = defaultAllowHeaders
	} else if !slices.Contains(corsConfig.AllowHeaders, "Idempotency-Key") {
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Idempotency-Key")
	}

	return cors.New(corsConfig)
}
