// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package discovery orchestrates AI Core model discovery: cache lookup,
// live fetch through the token authenticator and deployment client, model
// name normalization, and write-through caching with error fallback.
package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/traylinx/aicore-bridge/internal/aicore"
)

// Config is the immutable configuration record for one discovery call,
// supplied by the settings UI. Only a derived hash of it is ever persisted.
type Config struct {
	ClientID      string `json:"clientId"`
	ClientSecret  string `json:"clientSecret"`
	TokenURL      string `json:"tokenUrl"`
	BaseURL       string `json:"baseUrl"`
	ResourceGroup string `json:"resourceGroup"`
	ForceRefresh  bool   `json:"forceRefresh"`
}

// Complete reports whether the fields required for a live fetch are present.
func (c Config) Complete() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.BaseURL != ""
}

// Source identifies which terminal state produced a discovery result.
type Source string

const (
	// SourceFresh means the result came from a live fetch.
	SourceFresh Source = "fresh"

	// SourceCache means the result was served from the persisted cache.
	SourceCache Source = "cache"

	// SourceEmpty means neither a fetch nor the cache produced models.
	SourceEmpty Source = "empty"
)

// Result is the normalized outcome of a discovery call. Discovery never
// fails outright; the worst case is an empty result with diagnostics in
// the logs.
type Result struct {
	// ModelNames is the sorted list of base model names. Duplicates can
	// appear when two deployments share a base name with different versions.
	ModelNames []string `json:"modelNames"`

	// Models pairs versioned identifiers with deployment IDs. Populated
	// only for fresh fetches; cached results carry names only.
	Models []aicore.ModelDeployment `json:"models,omitempty"`

	// OrchestrationAvailable reports the orchestration scenario capability.
	OrchestrationAvailable bool `json:"orchestrationAvailable"`

	// Source records how the result was produced.
	Source Source `json:"source"`
}

// Authenticator exchanges client credentials for an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, clientID, clientSecret, tokenURL string) (*aicore.Token, error)
}

// ModelLister maps an authenticated tenant to its usable models.
type ModelLister interface {
	ListModels(ctx context.Context, accessToken, baseURL, resourceGroup string) (*aicore.DeploymentList, error)
}

// Discoverer sequences cache lookup, live fetch, and write-through caching.
// One call performs at most one authentication and one listing; overlapping
// calls are not coordinated and the last cache write wins.
type Discoverer struct {
	cache  *Cache
	auth   Authenticator
	lister ModelLister
}

// NewDiscoverer creates a Discoverer backed by the given cache directory.
func NewDiscoverer(cacheDir string) (*Discoverer, error) {
	cache, err := NewCache(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return &Discoverer{
		cache:  cache,
		auth:   aicore.NewAuthenticator(),
		lister: aicore.NewDeploymentClient(),
	}, nil
}

// Cache exposes the underlying cache for management operations.
func (d *Discoverer) Cache() *Cache {
	return d.cache
}

// Discover runs one discovery pass for the given configuration.
//
// An incomplete configuration short-circuits to an empty result without any
// cache or network access. Otherwise the persisted cache is consulted unless
// a forced refresh is requested, then a live fetch runs; fetch failures fall
// back to the cache regardless of the refresh flag. Errors are logged, never
// returned.
func (d *Discoverer) Discover(ctx context.Context, cfg Config) *Result {
	if !cfg.Complete() {
		log.Debug("AI Core configuration incomplete, skipping discovery")
		return &Result{Source: SourceEmpty}
	}

	hash := ComputeConfigHash(cfg)

	if !cfg.ForceRefresh {
		if entry := d.cache.Read(hash); entry != nil {
			log.WithField("count", len(entry.ModelNames)).Debug("Serving models from cache")
			return resultFromEntry(entry)
		}
	}

	token, err := d.auth.Authenticate(ctx, cfg.ClientID, cfg.ClientSecret, cfg.TokenURL)
	if err != nil {
		return d.fallback(hash, err)
	}

	list, err := d.lister.ListModels(ctx, token.Value, cfg.BaseURL, cfg.ResourceGroup)
	if err != nil {
		return d.fallback(hash, err)
	}

	names := normalizeModelNames(list.Models)

	entry := &CacheEntry{
		ModelNames:             names,
		OrchestrationAvailable: list.OrchestrationAvailable,
		ConfigHash:             hash,
		SchemaVersion:          SchemaVersion,
	}
	if err := d.cache.Write(entry); err != nil {
		// Caching is an optimization; a failed write never fails discovery.
		log.WithError(err).Warn("Failed to cache discovery results")
	}

	log.WithField("count", len(names)).Info("Discovered models from live fetch")
	return &Result{
		ModelNames:             names,
		Models:                 list.Models,
		OrchestrationAvailable: list.OrchestrationAvailable,
		Source:                 SourceFresh,
	}
}

// fallback serves the cached entry after a failed fetch, ignoring the
// force-refresh flag, and returns an empty result when nothing is cached.
func (d *Discoverer) fallback(hash string, cause error) *Result {
	log.WithError(cause).Warn("Model discovery failed, falling back to cache")

	if entry := d.cache.Read(hash); entry != nil {
		log.WithField("count", len(entry.ModelNames)).Info("Using cached models due to discovery failure")
		return resultFromEntry(entry)
	}

	return &Result{Source: SourceEmpty}
}

func resultFromEntry(entry *CacheEntry) *Result {
	return &Result{
		ModelNames:             entry.ModelNames,
		OrchestrationAvailable: entry.OrchestrationAvailable,
		Source:                 SourceCache,
	}
}

// baseModelName strips the version suffix and lowercases the identifier,
// producing the stable key shared by the settings UI and the cache.
func baseModelName(identifier string) string {
	name, _, _ := strings.Cut(identifier, ":")
	return strings.ToLower(name)
}

// normalizeModelNames maps versioned identifiers to base names sorted
// ascending. Duplicates are retained; downstream consumers deduplicate
// implicitly where needed.
func normalizeModelNames(models []aicore.ModelDeployment) []string {
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, baseModelName(m.Name))
	}
	sort.Strings(names)
	return names
}
