// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package session owns the operator's credential for the lifetime of a
// console run. The Store is the only writer of the API client's bearer
// token: it adopts the token on login, restores it from disk on
// startup, and detaches it on logout or credential rejection. Views
// never touch the token; they report a 401 to the store and the store
// decides, exactly once per credential, to tear the session down.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sentinel-ops/sentinel/lib/api"
	"github.com/sentinel-ops/sentinel/lib/clock"
	"github.com/sentinel-ops/sentinel/lib/schema"
)

// Status describes where the store is in the credential lifecycle.
type Status int

const (
	// Unauthenticated means no credential is held. The console shows
	// the login form.
	Unauthenticated Status = iota
	// Authenticating means a login request is in flight.
	Authenticating
	// Authenticated means a credential is held and was accepted by the
	// service.
	Authenticated
	// Expired means a previously valid credential was rejected or
	// timed out. Distinct from Unauthenticated so the login form can
	// say why the operator is looking at it again.
	Expired
)

// ErrNoSession is returned by Restore when no saved session exists.
var ErrNoSession = errors.New("no saved session")

// ErrSessionExpired is returned by Restore when the saved token's
// expiry claim is already in the past, and by Login callers observing
// a torn-down session.
var ErrSessionExpired = errors.New("session expired")

// savedSession is the JSON structure of the session file, written on
// successful login.
type savedSession struct {
	AccessToken string      `json:"access_token"`
	Username    string      `json:"username"`
	SavedAt     schema.Time `json:"saved_at"`
}

// Config carries the dependencies for a Store.
type Config struct {
	// Client is the API client whose bearer token this store manages.
	Client *api.Client

	// Path is the location of the persisted session file. Created with
	// mode 0600 on login, removed on logout.
	Path string

	// Clock supplies the current time for the token expiry check.
	// Defaults to the real clock.
	Clock clock.Clock

	// Logger receives session lifecycle events. Defaults to
	// slog.Default.
	Logger *slog.Logger
}

// Store holds the operator's credential and identity.
type Store struct {
	client *api.Client
	path   string
	clk    clock.Clock
	logger *slog.Logger

	mu       sync.Mutex
	status   Status
	user     schema.User
	tornDown bool
}

// NewStore returns a store in the Unauthenticated state.
func NewStore(config Config) *Store {
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client: config.Client,
		path:   config.Path,
		clk:    clk,
		logger: logger,
	}
}

// Status reports the current credential lifecycle state.
func (store *Store) Status() Status {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.status
}

// User returns the authenticated operator's identity. Zero value when
// not authenticated.
func (store *Store) User() schema.User {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.user
}

// Restore loads a saved session from disk and verifies it against the
// service. It returns ErrNoSession when no session file exists, and
// ErrSessionExpired when the saved token's expiry claim is already in
// the past; in the latter case the stale file is removed. A token that
// looks current is only trusted after the service confirms it, so the
// returned identity always reflects the service's view.
func (store *Store) Restore(ctx context.Context) (schema.User, error) {
	jsonData, err := os.ReadFile(store.path)
	if errors.Is(err, os.ErrNotExist) {
		return schema.User{}, ErrNoSession
	}
	if err != nil {
		return schema.User{}, fmt.Errorf("reading session from %s: %w", store.path, err)
	}

	var saved savedSession
	if err := json.Unmarshal(jsonData, &saved); err != nil {
		return schema.User{}, fmt.Errorf("parsing session from %s: %w", store.path, err)
	}
	if saved.AccessToken == "" {
		return schema.User{}, fmt.Errorf("session file %s has empty access token", store.path)
	}

	// Peek at the expiry claim without verifying the signature: the
	// service is the authority on validity, this only avoids a probe
	// that is certain to fail.
	if expired := tokenExpired(saved.AccessToken, store.clk); expired {
		store.logger.Info("saved session expired", "username", saved.Username)
		store.removeSessionFile()
		store.setStatus(Expired)
		return schema.User{}, ErrSessionExpired
	}

	store.client.SetToken(saved.AccessToken)
	user, err := store.client.CurrentUser(ctx)
	if err != nil {
		store.client.ClearToken()
		if api.IsUnauthorized(err) {
			store.logger.Info("saved session rejected by service", "username", saved.Username)
			store.removeSessionFile()
			store.setStatus(Expired)
			return schema.User{}, ErrSessionExpired
		}
		return schema.User{}, fmt.Errorf("verifying saved session: %w", err)
	}

	store.mu.Lock()
	store.status = Authenticated
	store.user = user
	store.tornDown = false
	store.mu.Unlock()

	store.logger.Info("session restored", "username", user.Username, "role", string(user.Role))
	return user, nil
}

// Login authenticates with the service and, on success, adopts the
// returned token, persists it, and records the operator's identity.
// On rejection the store stays in its prior state and the API error is
// returned for the login form to display.
func (store *Store) Login(ctx context.Context, username, password string) (schema.User, error) {
	store.setStatus(Authenticating)

	result, err := store.client.Login(ctx, username, password)
	if err != nil {
		store.setStatus(Unauthenticated)
		return schema.User{}, err
	}

	store.client.SetToken(result.AccessToken)
	store.persist(result.AccessToken, result.User.Username)

	store.mu.Lock()
	store.status = Authenticated
	store.user = result.User
	store.tornDown = false
	store.mu.Unlock()

	store.logger.Info("logged in", "username", result.User.Username, "role", string(result.User.Role))
	return result.User, nil
}

// Logout detaches the credential from the client and removes the
// session file. Idempotent.
func (store *Store) Logout() {
	store.mu.Lock()
	wasAuthenticated := store.status == Authenticated
	store.status = Unauthenticated
	store.user = schema.User{}
	store.tornDown = false
	store.mu.Unlock()

	store.client.ClearToken()
	store.removeSessionFile()
	if wasAuthenticated {
		store.logger.Info("logged out")
	}
}

// HandleUnauthorized tears the session down in response to a 401 from
// any operation. It returns true for the first rejection of the
// current credential; concurrent in-flight requests that fail with the
// same 401 get false, so the console runs its session-expired path
// exactly once.
func (store *Store) HandleUnauthorized() bool {
	store.mu.Lock()
	if store.status != Authenticated || store.tornDown {
		store.mu.Unlock()
		return false
	}
	store.tornDown = true
	store.status = Expired
	store.user = schema.User{}
	store.mu.Unlock()

	store.client.ClearToken()
	store.removeSessionFile()
	store.logger.Warn("credential rejected by service, session torn down")
	return true
}

func (store *Store) setStatus(status Status) {
	store.mu.Lock()
	store.status = status
	store.mu.Unlock()
}

func (store *Store) persist(token, username string) {
	saved := savedSession{
		AccessToken: token,
		Username:    username,
		SavedAt:     schema.NewTime(store.clk.Now()),
	}
	jsonData, err := json.Marshal(saved)
	if err != nil {
		store.logger.Warn("marshaling session", "error", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(store.path), 0700); err != nil {
		store.logger.Warn("creating session directory", "error", err)
		return
	}
	if err := os.WriteFile(store.path, jsonData, 0600); err != nil {
		// A session that only lasts this run is degraded, not broken.
		store.logger.Warn("writing session file", "path", store.path, "error", err)
	}
}

func (store *Store) removeSessionFile() {
	if err := os.Remove(store.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		store.logger.Warn("removing session file", "path", store.path, "error", err)
	}
}

// tokenExpired reports whether the token carries an expiry claim in
// the past. Tokens that cannot be parsed or carry no expiry claim are
// treated as current and left for the service to judge.
func tokenExpired(token string, clk clock.Clock) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}
	return expiry.Before(clk.Now())
}
