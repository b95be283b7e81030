package exampleapp

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dropletstack/provision/pkg/metrics"
	"github.com/dropletstack/provision/pkg/version"
)

// ServiceName labels health responses and metrics.
const ServiceName = "example-app"

// Config holds server settings.
type Config struct {
	Host  string
	Port  int
	Debug bool
}

// DefaultConfig matches the port range the provisioner assigns from.
func DefaultConfig() Config {
	return Config{Host: "0.0.0.0", Port: 9000}
}

// Server is the example application HTTP server.
type Server struct {
	gin    *gin.Engine
	config Config
	log    *zap.SugaredLogger
}

// NewServer builds the server with logging and recovery middleware wired.
func NewServer(log *zap.Logger, cfg Config) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		ginzap.Ginzap(log, time.RFC3339, true),
		ginzap.RecoveryWithZap(log, true),
		countRequests(),
	)

	s := &Server{
		gin:    engine,
		config: cfg,
		log:    log.Sugar(),
	}

	engine.GET("/", s.getIndex)
	engine.GET("/health", s.getHealth)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	metrics.SetAppInfo(version.Version, ServiceName)

	return s
}

// countRequests feeds the per-path request counter.
func countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		metrics.HTTPRequests.WithLabelValues(c.FullPath(), strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.Addr(),
		Handler:      s.gin,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("example application starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:  "healthy",
		Service: ServiceName,
		Uptime:  metrics.Uptime().String(),
	})
}

func (s *Server) getIndex(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, indexHTML)
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Example Application</title>
</head>
<body>
    <h1>Example Application</h1>
    <p>Reference implementation for the droplet provisioning stack.</p>
    <ul>
        <li><a href="/">/</a> &mdash; this page</li>
        <li><a href="/health">/health</a> &mdash; health check (JSON)</li>
        <li><a href="/metrics">/metrics</a> &mdash; Prometheus metrics</li>
    </ul>
    <p>Replace this application with your own: swap main.go, update start.sh,
    and tag a release.</p>
</body>
</html>
`
