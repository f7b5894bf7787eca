// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package discovery

import (
	"sort"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/traylinx/aicore-bridge/internal/aicore"
)

// TestProperty_Normalization validates the model name normalization rules
// over arbitrary identifier inputs.
func TestProperty_Normalization(t *testing.T) {
	properties := gopter.NewProperties(nil)

	identifiers := gen.SliceOf(gen.RegexMatch(`[A-Za-z0-9._-]{1,16}(:[A-Za-z0-9._-]{0,8})?`))

	properties.Property("output is sorted, lowercased, and length-preserving", prop.ForAll(
		func(names []string) bool {
			models := make([]aicore.ModelDeployment, len(names))
			for i, n := range names {
				models[i] = aicore.ModelDeployment{Name: n}
			}

			got := normalizeModelNames(models)

			if len(got) != len(names) {
				return false
			}
			if !sort.StringsAreSorted(got) {
				return false
			}
			for _, n := range got {
				if n != strings.ToLower(n) {
					return false
				}
				if strings.Contains(n, ":") {
					return false
				}
			}
			return true
		},
		identifiers,
	))

	properties.Property("normalization is idempotent", prop.ForAll(
		func(names []string) bool {
			models := make([]aicore.ModelDeployment, len(names))
			for i, n := range names {
				models[i] = aicore.ModelDeployment{Name: n}
			}

			once := normalizeModelNames(models)

			again := make([]aicore.ModelDeployment, len(once))
			for i, n := range once {
				again[i] = aicore.ModelDeployment{Name: n}
			}
			twice := normalizeModelNames(again)

			if len(once) != len(twice) {
				return false
			}
			for i := range once {
				if once[i] != twice[i] {
					return false
				}
			}
			return true
		},
		identifiers,
	))

	properties.TestingRun(t)
}
