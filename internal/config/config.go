// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config provides configuration management for the aicore-bridge
// server. It handles loading and parsing the YAML configuration file and
// provides structured access to application settings including the listen
// address, cache directory, management key, and default AI Core credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/traylinx/aicore-bridge/internal/secret"
)

// DefaultPort is used when the config file does not set one.
const DefaultPort = 8317

// Config represents the application's configuration, loaded from a YAML file.
type Config struct {
	// Host is the network host/interface on which the API server will bind.
	// Default is "127.0.0.1"; the bridge is meant to be local-only unless
	// remote management is explicitly enabled.
	Host string `yaml:"host"`

	// Port is the network port on which the API server will listen.
	Port int `yaml:"port"`

	// Debug enables or disables debug-level logging.
	Debug bool `yaml:"debug"`

	// LoggingToFile controls whether application logs are written to rotating
	// files or stdout.
	LoggingToFile bool `yaml:"logging-to-file"`

	// LogDir is the directory for rotating log files when LoggingToFile is set.
	LogDir string `yaml:"log-dir"`

	// CacheDir is the directory where discovery cache files are stored.
	CacheDir string `yaml:"cache-dir"`

	// RemoteManagement nests management-related options under 'remote-management'.
	RemoteManagement RemoteManagement `yaml:"remote-management"`

	// AICore holds default provider credentials used when the settings panel
	// does not supply its own. Values are overridden by environment variables
	// when present.
	AICore AICoreConfig `yaml:"aicore"`
}

// RemoteManagement contains management API access options.
type RemoteManagement struct {
	// SecretKey is the management key (plaintext or bcrypt hashed).
	// YAML key intentionally 'secret-key'. Plaintext values are hashed on
	// load and persisted back so the file never keeps the raw key.
	SecretKey string `yaml:"secret-key"`
}

// AICoreConfig carries the provider connection settings used as defaults for
// discovery requests.
type AICoreConfig struct {
	ClientID      string `yaml:"client-id"`
	ClientSecret  string `yaml:"client-secret"`
	TokenURL      string `yaml:"token-url"`
	BaseURL       string `yaml:"base-url"`
	ResourceGroup string `yaml:"resource-group"`
}

// LoadConfig reads the YAML file at the given path and returns the parsed
// configuration with defaults and environment overrides applied.
func LoadConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	// Hash the management key if plaintext is detected. We consider a value
	// to be already hashed if it looks like a bcrypt hash ($2a$, $2b$, or
	// $2y$ prefix).
	if cfg.RemoteManagement.SecretKey != "" && !looksLikeBcrypt(cfg.RemoteManagement.SecretKey) {
		hashed, errHash := hashSecret(cfg.RemoteManagement.SecretKey)
		if errHash != nil {
			return nil, fmt.Errorf("failed to hash management key: %w", errHash)
		}
		cfg.RemoteManagement.SecretKey = hashed

		// Persist the hashed value back to the config file to avoid
		// re-hashing on next startup. Best effort; a read-only file keeps
		// the in-memory hash.
		_ = persistNestedScalar(configFile, []string{"remote-management", "secret-key"}, hashed)
	}

	return &cfg, nil
}

// applyDefaults fills unset fields with sensible local defaults.
func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.CacheDir == "" {
		c.CacheDir = filepath.Join("~", ".aicore-bridge", "cache")
	}
	if c.LogDir == "" {
		c.LogDir = "logs"
	}
	c.AICore.TokenURL = strings.TrimSpace(c.AICore.TokenURL)
	c.AICore.BaseURL = strings.TrimSpace(c.AICore.BaseURL)
}

// applyEnvOverrides lets environment variables take precedence over the file
// for provider credentials, matching how the extension passes secrets in CI.
func (c *Config) applyEnvOverrides() {
	if v := secret.AICoreClientID(); v != "" {
		c.AICore.ClientID = v
	}
	if v := secret.AICoreClientSecret(); v != "" {
		c.AICore.ClientSecret = v
	}
	if v := secret.AICoreTokenURL(); v != "" {
		c.AICore.TokenURL = v
	}
	if v := secret.AICoreBaseURL(); v != "" {
		c.AICore.BaseURL = v
	}
	if v := secret.AICoreResourceGroup(); v != "" {
		c.AICore.ResourceGroup = v
	}
}

// CheckManagementKey verifies a presented key against the configured secret.
// Returns false when no key is configured.
func (c *Config) CheckManagementKey(presented string) bool {
	stored := c.RemoteManagement.SecretKey
	if stored == "" || presented == "" {
		return false
	}
	if looksLikeBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
	}
	return stored == presented
}

// looksLikeBcrypt returns true if the provided string appears to be a bcrypt hash.
func looksLikeBcrypt(s string) bool {
	return len(s) > 4 && (s[:4] == "$2a$" || s[:4] == "$2b$" || s[:4] == "$2y$")
}

// hashSecret hashes the given secret using bcrypt.
func hashSecret(s string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// persistNestedScalar updates a single nested scalar value in the YAML file
// while preserving comments and key ordering by editing the node tree in-place.
func persistNestedScalar(configFile string, path []string, value string) error {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return err
	}

	var original yaml.Node
	if err = yaml.Unmarshal(data, &original); err != nil {
		return err
	}
	if original.Kind != yaml.DocumentNode || len(original.Content) == 0 {
		return fmt.Errorf("invalid yaml document structure")
	}
	node := original.Content[0]
	if node == nil || node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected root mapping node")
	}

	for depth, key := range path {
		var next *yaml.Node
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				next = node.Content[i+1]
				break
			}
		}
		if next == nil {
			return fmt.Errorf("key %q not found in config", key)
		}
		if depth == len(path)-1 {
			next.SetString(value)
			break
		}
		if next.Kind != yaml.MappingNode {
			return fmt.Errorf("key %q is not a mapping", key)
		}
		node = next
	}

	out, err := yaml.Marshal(&original)
	if err != nil {
		return err
	}
	return os.WriteFile(configFile, out, 0600)
}
