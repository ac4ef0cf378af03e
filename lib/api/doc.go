// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the typed REST client for the security service.
//
// The client covers the full documented contract: credential exchange,
// identity resolution, the dashboard summary, inventory CRUD, access
// logs, and alert status transitions. Every call takes a context, and
// every authenticated request carries the current credential as a
// bearer header plus an X-Request-ID for log correlation.
//
// Non-2xx responses decode the service's error body into [*APIError],
// which preserves the status code and the service's stated reason.
// Callers branch on the [IsUnauthorized], [IsForbidden], [IsNotFound],
// and [IsValidation] predicates rather than on message text.
//
// The credential itself is owned by the session store; the client only
// holds the currently attached token (set via [Client.SetToken], read
// atomically on each request) and never persists it.
package api
