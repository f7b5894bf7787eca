// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package discovery

import "testing"

func TestSessionCache(t *testing.T) {
	session := NewSessionCache()

	if _, ok := session.Get("h1"); ok {
		t.Error("Expected miss on empty session cache")
	}

	session.Put("h1", &Result{ModelNames: []string{"foo"}, Source: SourceFresh})
	session.Put("h2", &Result{ModelNames: []string{"bar"}, Source: SourceFresh})

	if got, ok := session.Get("h1"); !ok || got.ModelNames[0] != "foo" {
		t.Errorf("Expected h1 hit with foo, got %+v", got)
	}

	session.Invalidate("h1")
	if _, ok := session.Get("h1"); ok {
		t.Error("Expected miss after invalidation")
	}
	if _, ok := session.Get("h2"); !ok {
		t.Error("Expected h2 to survive targeted invalidation")
	}

	session.InvalidateAll()
	if _, ok := session.Get("h2"); ok {
		t.Error("Expected miss after full invalidation")
	}
}
