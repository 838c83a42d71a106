// Package server exposes the resolution pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"disclosure-pipeline/internal/common/config"
	"disclosure-pipeline/internal/common/logger"
	"disclosure-pipeline/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resolver is the pipeline surface the server needs.
type Resolver interface {
	Resolve(ctx context.Context, text string, sel models.Selections, caches models.Caches) models.Outcome
}

// ResolveRequest is the body of POST /api/v1/resolve. Selections and caches
// are optional; a first turn sends only the text.
type ResolveRequest struct {
	Text       string            `json:"text" binding:"required"`
	Selections models.Selections `json:"selections"`
	Caches     models.Caches     `json:"caches"`
}

type Server struct {
	resolver Resolver
	logger   logger.Logger
}

func New(resolver Resolver, log logger.Logger) *Server {
	return &Server{
		resolver: resolver,
		logger:   log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

// Router builds the gin engine with middleware and routes mounted.
func (s *Server) Router(cfg config.ServerConfig) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestID())
	router.Use(s.requestLog())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "disclosure-pipeline"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/resolve", s.handleResolve)
	}
	return router
}

func (s *Server) handleResolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	// Resolution errors are part of the outcome contract, not transport
	// failures, so every resolved turn is a 200 with the outcome variant.
	outcome := s.resolver.Resolve(c.Request.Context(), req.Text, req.Selections, req.Caches)
	c.JSON(http.StatusOK, outcome)
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request", map[string]interface{}{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		})
	}
}
