// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package discovery

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/traylinx/aicore-bridge/internal/constant"
	"github.com/traylinx/aicore-bridge/internal/util"
)

// SchemaVersion is the expected cache entry schema. Any structural change to
// CacheEntry, or to the config hash input, must bump this so stale entries
// hard-invalidate instead of being partially deserialized.
const SchemaVersion = "2"

// cacheFileName is fixed per provider integration.
const cacheFileName = constant.AICore + "-models.json"

// CacheEntry is the persisted result of one successful discovery.
// An entry is trusted only when both ConfigHash and SchemaVersion match the
// current request.
type CacheEntry struct {
	ModelNames             []string `json:"modelNames"`
	OrchestrationAvailable bool     `json:"orchestrationAvailable,omitempty"`
	ConfigHash             string   `json:"configHash"`
	SchemaVersion          string   `json:"schemaVersion"`
}

// Cache provides file-based caching for discovered models. Writes are full
// file replaces; concurrent writers race benignly with last-writer-wins.
type Cache struct {
	dir string
	mu  sync.RWMutex
}

// NewCache creates a new cache with the given directory.
// If the directory does not exist, it will be created.
func NewCache(dir string) (*Cache, error) {
	// Expand ~ to home directory
	if len(dir) > 0 && dir[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, dir[1:])
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Cache{dir: dir}, nil
}

// ComputeConfigHash derives the deterministic key under which discovery
// results are cached. The input covers the full credential tuple, including
// the client secret and token URL, so rotating any credential invalidates
// the cached models.
func ComputeConfigHash(cfg Config) string {
	h := sha256.New()
	for _, part := range []string{cfg.ClientID, cfg.ClientSecret, cfg.TokenURL, cfg.BaseURL, cfg.ResourceGroup} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Read returns the cached entry when it exists and both its config hash and
// schema version match. Missing, mismatched, or unreadable entries all read
// as nil; corruption is never fatal.
func (c *Cache) Read(configHash string) *CacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.filePath())
	if err != nil {
		return nil
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}

	if entry.ConfigHash != configHash || entry.SchemaVersion != SchemaVersion {
		return nil
	}

	return &entry
}

// Write persists the entry, overwriting any prior entry unconditionally.
// The write is atomic at the file level; callers treat failures as a logged
// warning since caching is an optimization, not a correctness requirement.
func (c *Cache) Write(entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := util.SecureWriteJSON(c.filePath(), entry, nil); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// Clear removes the persisted cache file.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.filePath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}

// filePath returns the fixed cache file path for the provider integration.
func (c *Cache) filePath() string {
	return filepath.Join(c.dir, cacheFileName)
}
