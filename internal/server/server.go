package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/config"
	"github.com/spigell/resume-matcher/internal/engine"
)

const shutdownTimeout = 10 * time.Second

// Analyzer runs an analysis. *engine.Engine satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, resume, jd string) (*engine.Result, error)
}

type Server struct {
	analyzer Analyzer
	cfg      *config.Server
	logger   *zap.Logger
	router   *gin.Engine
}

func New(analyzer Analyzer, cfg *config.Server, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	registerValidators()

	s := &Server{analyzer: analyzer, cfg: cfg, logger: logger}

	r := gin.New()
	r.Use(s.recovery(), s.logging())
	r.GET("/healthz", s.health)
	r.POST("/v1/analyze", s.analyze)
	s.router = r

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("address", s.cfg.Address))
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
