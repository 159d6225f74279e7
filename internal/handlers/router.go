package handlers

import (
	"log/slog"
	"manzily/internal/ratelimit"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig carries what the router needs beyond the handler itself
type RouterConfig struct {
	CORSOrigins []string
	LogRequests bool
	RateLimiter *ratelimit.RateLimiter
	Logger      *slog.Logger
}

// NewRouter registers every route on a fresh gin engine
func NewRouter(h *PropertyHandler, cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.LogRequests {
		r.Use(requestLogger(logger))
	}

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowMethods: []string{"GET", "POST"},
			AllowHeaders: []string{"Origin", "Content-Type"},
		}))
	}

	r.GET("/health", healthCheck)

	api := r.Group("/api")
	{
		api.GET("/properties", h.ListProperties)
		api.GET("/properties/:id", h.GetProperty)
		api.GET("/filter", h.FilterProperties)
		api.GET("/filter/options", h.GetFilterOptions)
		api.GET("/stats", h.GetStats)

		if cfg.RateLimiter != nil {
			api.POST("/properties", ratelimit.Middleware(cfg.RateLimiter), h.CreateProperty)
			api.GET("/ratelimit/stats", ratelimit.StatsHandler(cfg.RateLimiter))
		} else {
			api.POST("/properties", h.CreateProperty)
		}
	}

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

// requestLogger logs one line per request after it completes
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
