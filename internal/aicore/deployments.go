// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aicore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/traylinx/aicore-bridge/internal/constant"
)

// Deployment is a provisioned model instance within the tenant's resource
// group. Only deployments with target status RUNNING are returned by the
// client; entries without a resolvable model name or version are kept here
// and filtered when mapping to model identifiers.
type Deployment struct {
	ID           string `json:"id"`
	ModelName    string `json:"modelName"`
	ModelVersion string `json:"modelVersion"`
	TargetStatus string `json:"targetStatus"`
	ScenarioID   string `json:"scenarioId"`
}

// ModelIdentifier returns the versioned identifier "{name}:{version}".
func (d Deployment) ModelIdentifier() string {
	return d.ModelName + ":" + d.ModelVersion
}

// ModelDeployment pairs a versioned model identifier with the deployment
// that serves it.
type ModelDeployment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DeploymentList is the result of mapping running deployments to usable
// model identifiers.
type DeploymentList struct {
	// Models holds one entry per running deployment with a resolvable
	// model name and version.
	Models []ModelDeployment `json:"models"`

	// OrchestrationAvailable reports whether any running deployment belongs
	// to the orchestration scenario, which grants access to all supported
	// models without per-model deployments.
	OrchestrationAvailable bool `json:"orchestrationAvailable"`
}

// DeploymentClient lists deployments of an AI Core tenant. It is the single
// shared entry point for deployment data; both the discovery core and the
// management handlers consume it.
type DeploymentClient struct {
	client *http.Client
}

// NewDeploymentClient creates a client with a default 15-second timeout.
func NewDeploymentClient() *DeploymentClient {
	return &DeploymentClient{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ListDeployments fetches the tenant's deployments and returns those with
// target status RUNNING. Network or decode failures return a *FetchError;
// no partial results are returned.
func (c *DeploymentClient) ListDeployments(ctx context.Context, accessToken, baseURL, resourceGroup string) ([]Deployment, error) {
	if resourceGroup == "" {
		resourceGroup = constant.DefaultResourceGroup
	}

	reqURL := fmt.Sprintf("%s%s?$top=%d&$skip=0",
		strings.TrimRight(baseURL, "/"), constant.DeploymentsPath, constant.DeploymentPageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set(constant.ResourceGroupHeader, resourceGroup)
	req.Header.Set(constant.ClientHeader, constant.ClientHeaderValue)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "aicore-bridge/1.0 (model-discovery)")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("failed to perform request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Err: fmt.Errorf("server returned status: %d %s", resp.StatusCode, resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if !gjson.ValidBytes(body) {
		return nil, &FetchError{Err: fmt.Errorf("invalid JSON in deployments response")}
	}

	var deployments []Deployment
	gjson.GetBytes(body, "resources").ForEach(func(_, res gjson.Result) bool {
		if res.Get("targetStatus").String() != constant.RunningStatus {
			return true
		}
		deployments = append(deployments, Deployment{
			ID:           res.Get("id").String(),
			TargetStatus: res.Get("targetStatus").String(),
			ScenarioID:   res.Get("scenarioId").String(),
			ModelName:    res.Get("details.resources.backend_details.model.name").String(),
			ModelVersion: res.Get("details.resources.backend_details.model.version").String(),
		})
		return true
	})

	return deployments, nil
}

// ListModels maps running deployments to versioned model identifiers.
//
// When accessToken is empty the provider is not configured yet; a single
// sentinel identifier is returned without any network call so the settings
// UI shows the unconfigured state instead of an empty model list.
func (c *DeploymentClient) ListModels(ctx context.Context, accessToken, baseURL, resourceGroup string) (*DeploymentList, error) {
	if accessToken == "" {
		return &DeploymentList{
			Models: []ModelDeployment{{Name: constant.NotConfiguredModel}},
		}, nil
	}

	deployments, err := c.ListDeployments(ctx, accessToken, baseURL, resourceGroup)
	if err != nil {
		return nil, err
	}

	list := &DeploymentList{}
	for _, dep := range deployments {
		if dep.ScenarioID == constant.OrchestrationScenario {
			list.OrchestrationAvailable = true
		}
		// A deployment without a resolvable model is skipped, not an error.
		if dep.ModelName == "" || dep.ModelVersion == "" {
			continue
		}
		list.Models = append(list.Models, ModelDeployment{
			ID:   dep.ID,
			Name: dep.ModelIdentifier(),
		})
	}

	return list, nil
}
