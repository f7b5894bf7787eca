// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package management

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ClearCacheResponse reports the outcome of a cache clear.
type ClearCacheResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ClearCache drops the persisted discovery cache and the in-memory session
// entries, forcing the next discovery call to go live.
// POST /v0/management/aicore/cache/clear
func (h *Handler) ClearCache(c *gin.Context) {
	h.session.InvalidateAll()

	if err := h.discoverer.Cache().Clear(); err != nil {
		log.WithError(err).Error("Failed to clear discovery cache")
		c.JSON(http.StatusInternalServerError, &ClearCacheResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	log.Info("Discovery cache cleared")
	c.JSON(http.StatusOK, &ClearCacheResponse{Success: true})
}
