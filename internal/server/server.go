// Package server exposes the linter over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/copycop/internal/model"
	"github.com/ppiankov/copycop/internal/worker"
)

// Linter is the part of the pipeline the service calls
type Linter interface {
	LintBytes(ctx context.Context, name string, src []byte, format string) (*model.Report, error)
	AnalyzeText(ctx context.Context, text string) ([]model.SentenceResult, error)
}

// Server is the HTTP lint service
type Server struct {
	linter  Linter
	limiter *worker.Limiter
	cfg     model.ServerConfig
	engine  *gin.Engine
	version string
}

// New builds the service and its routes
func New(linter Linter, cfg model.ServerConfig, version string) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		linter:  linter,
		limiter: worker.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		cfg:     cfg,
		engine:  gin.New(),
		version: version,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.Use(gin.Recovery())
	s.engine.GET("/healthz", s.handleHealth)

	v1 := s.engine.Group("/v1")
	v1.Use(RateLimitByIP(s.limiter), MaxBody(s.cfg.MaxBodyBytes))
	{
		v1.POST("/lint", s.handleLint)
		v1.POST("/analyze", s.handleAnalyze)
	}
}

// Handler returns the routed engine
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	prune := time.NewTicker(10 * time.Minute)
	defer prune.Stop()

	for {
		select {
		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
			}
			return nil
		case <-prune.C:
			s.limiter.Prune(time.Hour)
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		}
	}
}
