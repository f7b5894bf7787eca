// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package management

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/traylinx/aicore-bridge/internal/aicore"
	"github.com/traylinx/aicore-bridge/internal/discovery"
)

// DiscoverModelsRequest is the configuration record the settings panel sends
// on every (debounced) form change. Empty fields fall back to the server's
// configured defaults.
type DiscoverModelsRequest struct {
	ClientID      string `json:"clientId"`
	ClientSecret  string `json:"clientSecret"`
	TokenURL      string `json:"tokenUrl"`
	BaseURL       string `json:"baseUrl"`
	ResourceGroup string `json:"resourceGroup"`
	ForceRefresh  bool   `json:"forceRefresh"`
}

// DiscoverModelsResponse carries the flat base-model-name variant plus the
// orchestration capability flag.
type DiscoverModelsResponse struct {
	Models                 []string         `json:"models"`
	OrchestrationAvailable bool             `json:"orchestrationAvailable"`
	Source                 discovery.Source `json:"source"`
}

// DiscoverModels runs the discovery pipeline for the supplied configuration.
// POST /v0/management/aicore/models
//
// The session cache is consulted before the discoverer so that typing in the
// settings form does not re-authenticate on every keystroke; a forced refresh
// bypasses it.
func (h *Handler) DiscoverModels(c *gin.Context) {
	var req DiscoverModelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	cfg := h.discoveryConfig(&req)
	hash := discovery.ComputeConfigHash(cfg)

	if !cfg.ForceRefresh {
		if cached, ok := h.session.Get(hash); ok {
			c.JSON(http.StatusOK, resultResponse(cached))
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result := h.discoverer.Discover(ctx, cfg)
	if result.Source != discovery.SourceEmpty {
		h.session.Put(hash, result)
	}

	c.JSON(http.StatusOK, resultResponse(result))
}

func resultResponse(result *discovery.Result) *DiscoverModelsResponse {
	models := result.ModelNames
	if models == nil {
		models = []string{}
	}
	return &DiscoverModelsResponse{
		Models:                 models,
		OrchestrationAvailable: result.OrchestrationAvailable,
		Source:                 result.Source,
	}
}

// ListDeploymentsResponse carries the model-to-deployment pair variant.
type ListDeploymentsResponse struct {
	Models                 []aicore.ModelDeployment `json:"models"`
	OrchestrationAvailable bool                     `json:"orchestrationAvailable"`
}

// ListDeployments returns the {modelName, deploymentId} pair variant of
// discovery, always from a live fetch.
// POST /v0/management/aicore/deployments
func (h *Handler) ListDeployments(c *gin.Context) {
	var req DiscoverModelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	cfg := h.discoveryConfig(&req)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	// An unconfigured tenant still answers: ListModels surfaces the
	// not-configured sentinel when no token is available.
	accessToken := ""
	if cfg.Complete() {
		token, err := h.auth.Authenticate(ctx, cfg.ClientID, cfg.ClientSecret, cfg.TokenURL)
		if err != nil {
			log.WithError(err).Warn("Token exchange failed for deployment listing")
			c.JSON(http.StatusBadGateway, gin.H{"error": "auth_failed", "message": err.Error()})
			return
		}
		accessToken = token.Value
	}

	list, err := h.deployments.ListModels(ctx, accessToken, cfg.BaseURL, cfg.ResourceGroup)
	if err != nil {
		log.WithError(err).Warn("Deployment listing failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "fetch_failed", "message": err.Error()})
		return
	}

	models := list.Models
	if models == nil {
		models = []aicore.ModelDeployment{}
	}
	c.JSON(http.StatusOK, &ListDeploymentsResponse{
		Models:                 models,
		OrchestrationAvailable: list.OrchestrationAvailable,
	})
}
