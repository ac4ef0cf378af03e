// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the wire types shared between the console and
// the security service: operators, inventory resources, security
// alerts, access log entries, and the dashboard summary.
//
// Field names and JSON tags mirror the service's REST contract exactly.
// The service owns these records; the console holds read caches that
// are replaced wholesale by each successful fetch.
//
// Enumerated fields (roles, resource types and statuses, alert
// severities and statuses, access outcomes) are typed strings with
// exhaustive switch accessors for display labels and ordering, so a
// new enum value is a compile-time-visible change at every use site
// rather than a silently-missed string case.
package schema
