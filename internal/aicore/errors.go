// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aicore

// AuthError indicates that the OAuth client-credentials exchange failed.
// It is surfaced to the discovery layer and never crosses the public
// discovery boundary.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e == nil || e.Err == nil {
		return "aicore auth: token exchange failed"
	}
	return "aicore auth: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FetchError indicates that the deployment listing failed, either at the
// network level or while decoding the response. No partial results accompany
// a FetchError.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	if e == nil || e.Err == nil {
		return "aicore fetch: deployment listing failed"
	}
	return "aicore fetch: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
