// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package constant defines identifiers and wire-level constants shared across
// the aicore-bridge, ensuring consistent naming between the discovery core,
// the management API, and the persisted cache.
package constant

const (
	// AICore represents the SAP AI Core provider identifier.
	AICore = "aicore"

	// OAuthTokenPath is appended to the normalized token URL for the
	// client-credentials exchange.
	OAuthTokenPath = "/oauth/token"

	// DeploymentsPath is the deployment-listing endpoint relative to the
	// provider base URL.
	DeploymentsPath = "/v2/lm/deployments"

	// ResourceGroupHeader routes requests to a provider-side resource group.
	ResourceGroupHeader = "AI-Resource-Group"

	// DefaultResourceGroup is used when the caller leaves the group unset.
	DefaultResourceGroup = "default"

	// ClientHeader identifies this client to the provider.
	ClientHeader = "AI-Client-Type"

	// ClientHeaderValue is the value sent in ClientHeader.
	ClientHeaderValue = "aicore-bridge"

	// DeploymentPageSize is the $top pagination parameter for the
	// deployment listing.
	DeploymentPageSize = 10000

	// RunningStatus marks a deployment as live and usable.
	RunningStatus = "RUNNING"

	// OrchestrationScenario is the scenario ID that grants access to all
	// supported models without per-model deployments.
	OrchestrationScenario = "orchestration"

	// NotConfiguredModel is the sentinel identifier returned when no access
	// token is available. It must surface visibly in the settings UI rather
	// than being treated as an empty model list.
	NotConfiguredModel = "ai-core-not-configured"
)
