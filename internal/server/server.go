package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-v2/assistant/config"
	"github.com/pageza/alchemorsel-v2/assistant/internal/api"
	"github.com/pageza/alchemorsel-v2/assistant/internal/middleware"
	"github.com/pageza/alchemorsel-v2/assistant/internal/toolbox"
)

// Server represents the HTTP server
type Server struct {
	router  *gin.Engine
	http    *http.Server
	logger  *zap.Logger
	limiter *middleware.RateLimiter
}

// Option configures a Server
type Option func(*Server)

// WithRateLimiter guards the dispatch endpoint with rl
func WithRateLimiter(rl *middleware.RateLimiter) Option {
	return func(s *Server) { s.limiter = rl }
}

// New creates a new server instance serving tb
func New(cfg *config.Config, tb *toolbox.Toolbox, logger *zap.Logger, opts ...Option) *Server {
	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{logger: logger}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"recipes": tb.Recipes().Len(),
		})
	})

	var dispatchMiddleware []gin.HandlerFunc
	if s.limiter != nil {
		dispatchMiddleware = append(dispatchMiddleware, s.limiter.RateLimitMiddleware())
	}
	api.NewAssistantHandler(tb, logger).RegisterRoutes(router.Group("/api/v1"), dispatchMiddleware...)

	s.router = router
	s.http = &http.Server{
		Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.http.Addr
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
