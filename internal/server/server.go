// Package server exposes the pipeline over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/abhisek/careerpath/internal/app"
	"github.com/abhisek/careerpath/internal/config"
	"github.com/abhisek/careerpath/internal/logger"
	"github.com/abhisek/careerpath/internal/metrics"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// Server routes HTTP requests to the wired services.
type Server struct {
	app    *app.App
	cfg    config.ServerConfig
	log    *logger.Logger
	engine *gin.Engine
}

// New builds the gin engine and registers every route.
func New(a *app.App, cfg config.ServerConfig, serviceName string, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	metrics.Register()

	s := &Server{
		app:    a,
		cfg:    cfg,
		log:    log.With("component", "http"),
		engine: gin.New(),
	}
	s.engine.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		requestID(),
		metrics.Middleware(),
		s.accessLog(),
	)
	s.registerRoutes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	r := s.engine
	r.GET("/healthz", s.health)
	r.GET("/metrics", metrics.Handler())

	u := r.Group("/api/v1/users/:userId")
	{
		u.PUT("/resume", s.importResume)
		u.GET("/resume", s.getResume)

		u.POST("/skill-gaps", s.generateSkillGap)
		u.GET("/skill-gaps", s.getSkillGap)

		u.POST("/learning-plan", s.generatePlan)
		u.GET("/learning-plan", s.getPlan)

		u.POST("/roadmaps", s.generateRoadmap)
		u.GET("/roadmaps", s.listRoadmaps)
		u.GET("/roadmaps/:role", s.getRoadmap)

		u.POST("/quizzes", s.recordQuiz)
		u.PUT("/progress", s.setProgress)
		u.POST("/recalculate", s.recalculate)

		u.POST("/chat", s.chat)
		u.GET("/chat", s.chatHistory)

		cr := u.Group("/career")
		cr.POST("/compare", s.compareRoles)
		cr.POST("/match", careerHandler(s, s.app.Career.Match))
		cr.POST("/risk", careerHandler(s, s.app.Career.Risk))
		cr.POST("/hiring-signal", careerHandler(s, s.app.Career.HiringSignal))
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString(requestIDKey),
		)
	}
}
