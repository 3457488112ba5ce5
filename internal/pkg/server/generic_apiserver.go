// Package server provides the generic HTTP and gRPC serving scaffolding
// shared by lectern server binaries.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/lectern-ai/lectern/pkg/logger"
)

// Config holds the generic API server configuration.
type Config struct {
	Mode      string
	Address   string
	Healthz   bool
	Profiling bool
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Mode:    gin.ReleaseMode,
		Address: "127.0.0.1:11680",
		Healthz: true,
	}
}

// CompletedConfig is a Config ready to build a server from.
type CompletedConfig struct {
	*Config
}

// Complete fills in defaults derivable from other fields.
func (c *Config) Complete() CompletedConfig {
	return CompletedConfig{c}
}

// New builds a GenericAPIServer from the completed configuration.
func (c CompletedConfig) New() (*GenericAPIServer, error) {
	gin.SetMode(c.Mode)

	s := &GenericAPIServer{
		Engine:  gin.New(),
		address: c.Address,
	}

	if c.Healthz {
		s.Engine.GET("/healthz", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}
	if c.Profiling {
		pprof.Register(s.Engine)
	}

	return s, nil
}

// GenericAPIServer wraps a gin engine with lifecycle management.
type GenericAPIServer struct {
	*gin.Engine
	address string
	srv     *http.Server
}

// Run starts the HTTP server and blocks until it exits.
func (s *GenericAPIServer) Run() error {
	s.srv = &http.Server{
		Addr:    s.address,
		Handler: s.Engine,
	}

	logger.Info("[Server] HTTP API serving on %s", s.address)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server on %s: %w", s.address, err)
	}
	return nil
}

// Close shuts down the HTTP server, allowing in-flight requests to finish.
func (s *GenericAPIServer) Close() {
	if s.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		logger.Warn("[Server] HTTP shutdown error: %v", err)
	}
}
