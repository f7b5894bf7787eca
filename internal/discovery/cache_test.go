// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package discovery

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testConfig() Config {
	return Config{
		ClientID:      "a",
		ClientSecret:  "b",
		TokenURL:      "https://x",
		BaseURL:       "https://x",
		ResourceGroup: "rg",
	}
}

func TestCache_RoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}

	hash := ComputeConfigHash(testConfig())
	entry := &CacheEntry{
		ModelNames:             []string{"foo", "gpt-4", "gpt-4"},
		OrchestrationAvailable: true,
		ConfigHash:             hash,
		SchemaVersion:          SchemaVersion,
	}

	if err := cache.Write(entry); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got := cache.Read(hash)
	if got == nil {
		t.Fatal("Expected cache hit")
	}
	if !reflect.DeepEqual(got.ModelNames, entry.ModelNames) {
		t.Errorf("Expected %v, got %v", entry.ModelNames, got.ModelNames)
	}
	if !got.OrchestrationAvailable {
		t.Error("Expected orchestration flag to round-trip")
	}
}

func TestCache_Read_Absent(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}

	if got := cache.Read(ComputeConfigHash(testConfig())); got != nil {
		t.Errorf("Expected miss on empty cache, got %+v", got)
	}
}

func TestCache_Read_HashMismatch(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}

	entry := &CacheEntry{
		ModelNames:    []string{"foo"},
		ConfigHash:    ComputeConfigHash(testConfig()),
		SchemaVersion: SchemaVersion,
	}
	if err := cache.Write(entry); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	other := testConfig()
	other.BaseURL = "https://y"
	if got := cache.Read(ComputeConfigHash(other)); got != nil {
		t.Errorf("Expected miss for different config, got %+v", got)
	}
}

func TestCache_Read_SchemaMismatch(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}

	hash := ComputeConfigHash(testConfig())
	entry := &CacheEntry{
		ModelNames:    []string{"foo"},
		ConfigHash:    hash,
		SchemaVersion: "0",
	}
	if err := cache.Write(entry); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if got := cache.Read(hash); got != nil {
		t.Errorf("Expected miss for stale schema even with matching hash, got %+v", got)
	}
}

func TestCache_Read_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(dir)
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, cacheFileName), []byte("{not valid"), 0600); err != nil {
		t.Fatalf("Failed to seed corrupt file: %v", err)
	}

	// Corruption reads as a miss, never a failure.
	if got := cache.Read(ComputeConfigHash(testConfig())); got != nil {
		t.Errorf("Expected miss for corrupt cache, got %+v", got)
	}
}

func TestCache_Clear(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}

	hash := ComputeConfigHash(testConfig())
	if err := cache.Write(&CacheEntry{ConfigHash: hash, SchemaVersion: SchemaVersion}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := cache.Read(hash); got != nil {
		t.Errorf("Expected miss after clear, got %+v", got)
	}

	// Clearing an already empty cache is not an error.
	if err := cache.Clear(); err != nil {
		t.Errorf("Second Clear failed: %v", err)
	}
}

func TestComputeConfigHash(t *testing.T) {
	base := testConfig()

	if ComputeConfigHash(base) != ComputeConfigHash(base) {
		t.Error("Expected hash to be deterministic")
	}

	// ForceRefresh is per-call behavior, not identity.
	refreshed := base
	refreshed.ForceRefresh = true
	if ComputeConfigHash(base) != ComputeConfigHash(refreshed) {
		t.Error("Expected force-refresh flag to not affect the hash")
	}

	// Rotating any credential must produce a new key.
	rotated := base
	rotated.ClientSecret = "rotated"
	if ComputeConfigHash(base) == ComputeConfigHash(rotated) {
		t.Error("Expected secret rotation to change the hash")
	}

	moved := base
	moved.TokenURL = "https://other"
	if ComputeConfigHash(base) == ComputeConfigHash(moved) {
		t.Error("Expected token URL change to change the hash")
	}
}
