// Package server exposes a study session over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/session"
)

// Config controls the HTTP server.
type Config struct {
	// AllowOrigins lists CORS origins. Empty allows all origins.
	AllowOrigins []string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{ShutdownTimeout: 10 * time.Second}
}

// Server routes HTTP requests to one study session.
type Server struct {
	session *session.Session
	config  Config
	logger  *slog.Logger
	router  *gin.Engine
}

// New creates a Server and registers its routes.
func New(sess *session.Session, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{session: sess, config: cfg, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.Use(cors.New(s.corsConfig()))

	api := r.Group("/api")
	{
		api.GET("/health", s.health)
	}

	sess := api.Group("/session")
	{
		sess.GET("", s.getSession)
		sess.GET("/queue", s.getQueue)
		sess.GET("/stats", s.getStats)
		sess.POST("/generate", s.generate)
		sess.POST("/cards/:id/grade", s.gradeCard)
		sess.POST("/mcqs/:index/check", s.checkMCQ)
		sess.POST("/tutor", s.askTutor)
		sess.POST("/reset", s.reset)
	}
	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(s.config.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.config.AllowOrigins
	}
	return cfg
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}
