// Package server poskytuje HTTP API nad pipeline kontroly názvů.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/tonnybx78/cz-name-checker/checker"
	"github.com/tonnybx78/cz-name-checker/server/middleware"
)

// Server HTTP server kontroly názvů.
type Server struct {
	engine  *gin.Engine
	checker *checker.Checker
	logger  *slog.Logger
	port    string
}

// New sestaví server s middleware a routami.
func New(chk *checker.Checker, port string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		gzip.Gzip(gzip.DefaultCompression),
	)

	s := &Server{
		engine:  engine,
		checker: chk,
		logger:  logger,
		port:    port,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/check", s.handleCheck)
	api.POST("/generate", s.handleGenerate)
	api.POST("/export", s.handleExport)
}

// Handler vrátí http.Handler serveru, především pro testy.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run spustí server a čeká na zrušení kontextu, poté provede graceful
// shutdown. Rozběhnuté kontroly se nechávají doběhnout.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "port", s.port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
