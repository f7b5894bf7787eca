// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package api wires the gin engine, middleware, and management routes into
// the HTTP server the IDE extension talks to.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/traylinx/aicore-bridge/internal/api/handlers/management"
	"github.com/traylinx/aicore-bridge/internal/buildinfo"
	"github.com/traylinx/aicore-bridge/internal/config"
	"github.com/traylinx/aicore-bridge/internal/discovery"
)

// Server hosts the management API.
type Server struct {
	handler *management.Handler
	engine  *gin.Engine
	srv     *http.Server
}

// NewServer constructs the server with its routes registered.
func NewServer(cfg *config.Config, discoverer *discovery.Discoverer) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		handler: management.NewHandler(cfg, discoverer),
		engine:  gin.New(),
	}

	s.engine.Use(gin.Recovery())
	s.registerRoutes()

	s.srv = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": buildinfo.Version,
		})
	})

	v0 := s.engine.Group("/v0/management", s.managementAuth())
	v0.POST("/aicore/models", s.handler.DiscoverModels)
	v0.POST("/aicore/deployments", s.handler.ListDeployments)
	v0.POST("/aicore/cache/clear", s.handler.ClearCache)
}

// managementAuth enforces the management key when one is configured.
// A bridge without a key accepts local requests only, which the default
// loopback bind already guarantees.
func (s *Server) managementAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := s.handler.Config()
		if cfg.RemoteManagement.SecretKey == "" {
			c.Next()
			return
		}
		if !cfg.CheckManagementKey(c.GetHeader("X-Management-Key")) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid or missing management key",
			})
			return
		}
		c.Next()
	}
}

// OnConfigReload propagates a reloaded config to the handler layer.
func (s *Server) OnConfigReload(cfg *config.Config) {
	s.handler.OnConfigReload(cfg)
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("Management API listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}
