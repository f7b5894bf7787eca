// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package discovery

import "sync"

// SessionCache is the in-memory guard that sits above the Discoverer for
// the lifetime of one UI session. It is constructed once per server and
// invalidated explicitly when credentials change; it deliberately has no
// TTL, since a settings panel re-keys it through the config hash.
type SessionCache struct {
	mu      sync.RWMutex
	entries map[string]*Result
}

// NewSessionCache creates an empty session cache.
func NewSessionCache() *SessionCache {
	return &SessionCache{
		entries: make(map[string]*Result),
	}
}

// Get returns the session result for the given config hash, if any.
func (s *SessionCache) Get(configHash string) (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.entries[configHash]
	return result, ok
}

// Put stores the result for the given config hash.
func (s *SessionCache) Put(configHash string, result *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[configHash] = result
}

// Invalidate drops the entry for one config hash.
func (s *SessionCache) Invalidate(configHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, configHash)
}

// InvalidateAll drops every session entry. Called on credential change.
func (s *SessionCache) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*Result)
}
