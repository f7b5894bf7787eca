// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package management implements the settings-panel facing HTTP handlers:
// model discovery, the deployment listing variant, and cache control.
package management

import (
	"sync"

	"github.com/traylinx/aicore-bridge/internal/aicore"
	"github.com/traylinx/aicore-bridge/internal/config"
	"github.com/traylinx/aicore-bridge/internal/discovery"
)

// Handler carries the collaborators shared by the management endpoints.
type Handler struct {
	mu          sync.RWMutex
	cfg         *config.Config
	discoverer  *discovery.Discoverer
	session     *discovery.SessionCache
	auth        *aicore.Authenticator
	deployments *aicore.DeploymentClient
}

// NewHandler creates a management handler bound to the given config and
// discoverer. The session cache lives for the server's lifetime.
func NewHandler(cfg *config.Config, discoverer *discovery.Discoverer) *Handler {
	return &Handler{
		cfg:         cfg,
		discoverer:  discoverer,
		session:     discovery.NewSessionCache(),
		auth:        aicore.NewAuthenticator(),
		deployments: aicore.NewDeploymentClient(),
	}
}

// OnConfigReload swaps the active config and invalidates the session cache,
// since default credentials may have changed out from under open sessions.
func (h *Handler) OnConfigReload(cfg *config.Config) {
	h.mu.Lock()
	h.cfg = cfg
	h.mu.Unlock()

	h.session.InvalidateAll()
}

// Config returns the currently active config.
func (h *Handler) Config() *config.Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg
}

// Session exposes the session cache for server wiring and tests.
func (h *Handler) Session() *discovery.SessionCache {
	return h.session
}

// discoveryConfig merges a request record with the configured defaults.
// Fields supplied by the settings panel win; empty fields fall back to the
// server's own AI Core settings.
func (h *Handler) discoveryConfig(req *DiscoverModelsRequest) discovery.Config {
	defaults := h.Config().AICore

	cfg := discovery.Config{
		ClientID:      req.ClientID,
		ClientSecret:  req.ClientSecret,
		TokenURL:      req.TokenURL,
		BaseURL:       req.BaseURL,
		ResourceGroup: req.ResourceGroup,
		ForceRefresh:  req.ForceRefresh,
	}
	if cfg.ClientID == "" {
		cfg.ClientID = defaults.ClientID
	}
	if cfg.ClientSecret == "" {
		cfg.ClientSecret = defaults.ClientSecret
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaults.TokenURL
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.ResourceGroup == "" {
		cfg.ResourceGroup = defaults.ResourceGroup
	}
	return cfg
}
