// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package aicore implements the provider-facing half of model discovery:
// the OAuth client-credentials token exchange and the deployment listing
// endpoint of an AI Core tenant.
package aicore

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/traylinx/aicore-bridge/internal/constant"
)

// Token is the short-lived bearer credential returned by the token exchange.
// It is held for the duration of one discovery call and never persisted.
type Token struct {
	// Value is the raw access token presented as a bearer credential.
	Value string

	// TokenType is typically "bearer".
	TokenType string

	// Scope lists the granted scopes as returned by the token endpoint.
	Scope string

	// JTI is the token's unique identifier, when the endpoint returns one.
	JTI string

	// ExpiresAt is the issue time plus the endpoint's expires_in window.
	ExpiresAt time.Time
}

// Authenticator exchanges client credentials for access tokens.
// A single attempt is made per call; retry policy belongs to callers.
type Authenticator struct {
	client *http.Client
}

// NewAuthenticator creates an authenticator with a default 15-second timeout.
func NewAuthenticator() *Authenticator {
	return &Authenticator{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Authenticate performs a client-credentials grant against the tenant's
// token endpoint. The token URL is normalized by stripping trailing slashes
// before the fixed OAuth token path is appended. A non-2xx response or
// network failure returns an *AuthError.
func (a *Authenticator) Authenticate(ctx context.Context, clientID, clientSecret, tokenURL string) (*Token, error) {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     strings.TrimRight(tokenURL, "/") + constant.OAuthTokenPath,
		// Credentials go in the form body, not a basic-auth header.
		AuthStyle: oauth2.AuthStyleInParams,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.client)
	tok, err := conf.Token(ctx)
	if err != nil {
		return nil, &AuthError{Err: err}
	}

	token := &Token{
		Value:     tok.AccessToken,
		TokenType: tok.TokenType,
		ExpiresAt: tok.Expiry,
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		token.Scope = scope
	}
	if jti, ok := tok.Extra("jti").(string); ok {
		token.JTI = jti
	}

	return token, nil
}
