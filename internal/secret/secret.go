// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package secret

import "os"

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not present.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// AI Core Client Credentials
func AICoreClientID() string {
	return GetEnv("AICORE_CLIENT_ID", "")
}

func AICoreClientSecret() string {
	return GetEnv("AICORE_CLIENT_SECRET", "")
}

// AICoreTokenURL returns the OAuth token endpoint base.
func AICoreTokenURL() string {
	return GetEnv("AICORE_TOKEN_URL", "")
}

// AICoreBaseURL returns the provider API base.
func AICoreBaseURL() string {
	return GetEnv("AICORE_BASE_URL", "")
}

// AICoreResourceGroup returns the provider resource group partition.
func AICoreResourceGroup() string {
	return GetEnv("AICORE_RESOURCE_GROUP", "")
}
