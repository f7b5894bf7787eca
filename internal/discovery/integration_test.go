// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/traylinx/aicore-bridge/internal/aicore"
)

// TestDiscover_EndToEnd runs the full pipeline against stub provider
// endpoints: token exchange, deployment listing, normalization, caching.
func TestDiscover_EndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "tok-123", "expires_in": 3600, "token_type": "bearer"}`))
	})
	mux.HandleFunc("/v2/lm/deployments", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("AI-Resource-Group"); got != "rg" {
			t.Errorf("Expected resource group rg, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"resources": [
				{"id": "d-1", "targetStatus": "RUNNING", "scenarioId": "foundation-models",
					"details": {"resources": {"backend_details": {"model": {"name": "Foo", "version": "1"}}}}},
				{"id": "d-2", "targetStatus": "STOPPED", "scenarioId": "foundation-models",
					"details": {"resources": {"backend_details": {"model": {"name": "Bar", "version": "2"}}}}}
			]
		}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}
	disc := &Discoverer{
		cache:  cache,
		auth:   aicore.NewAuthenticator(),
		lister: aicore.NewDeploymentClient(),
	}

	cfg := Config{
		ClientID:      "a",
		ClientSecret:  "b",
		TokenURL:      server.URL,
		BaseURL:       server.URL,
		ResourceGroup: "rg",
	}

	result := disc.Discover(context.Background(), cfg)

	if result.Source != SourceFresh {
		t.Fatalf("Expected fresh result, got %s", result.Source)
	}
	if !reflect.DeepEqual(result.ModelNames, []string{"foo"}) {
		t.Errorf("Expected [foo], got %v", result.ModelNames)
	}
	if result.OrchestrationAvailable {
		t.Error("Expected no orchestration scenario")
	}

	// A second call is answered by the cache without touching the server.
	server.Close()
	again := disc.Discover(context.Background(), cfg)
	if again.Source != SourceCache {
		t.Fatalf("Expected cached result, got %s", again.Source)
	}
	if !reflect.DeepEqual(again.ModelNames, []string{"foo"}) {
		t.Errorf("Expected [foo] from cache, got %v", again.ModelNames)
	}
}
