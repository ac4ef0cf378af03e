// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/sentinel-ops/sentinel/lib/schema"
)

// LoginResult is the credential-exchange response: the bearer token
// and the authenticated operator's identity.
type LoginResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        schema.User `json:"user"`
}

// loginRequest is the credential-exchange payload.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. A 401 means the
// credentials were rejected. Login does not attach the returned token;
// the session store decides whether and when to adopt it.
func (client *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var result LoginResult
	err := client.post(ctx, "/auth/login", loginRequest{Username: username, Password: password}, &result)
	return result, err
}

// CurrentUser resolves the identity behind the attached credential.
// A 401 means the credential is no longer valid.
func (client *Client) CurrentUser(ctx context.Context) (schema.User, error) {
	var user schema.User
	err := client.get(ctx, "/users/me", &user)
	return user, err
}
