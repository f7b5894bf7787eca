// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("debug: false\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	reloaded := make(chan *Config, 1)
	w := NewWatcher(path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("debug: true\n"), 0600); err != nil {
		t.Fatalf("Failed to rewrite config: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if !cfg.Debug {
			t.Error("Expected reloaded config to have debug enabled")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for reload")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("debug: false\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	reloaded := make(chan *Config, 1)
	w := NewWatcher(path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0600); err != nil {
		t.Fatalf("Failed to write sibling file: %v", err)
	}

	select {
	case <-reloaded:
		t.Error("Expected no reload for unrelated file")
	case <-time.After(500 * time.Millisecond):
	}
}
