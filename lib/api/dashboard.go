// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/sentinel-ops/sentinel/lib/schema"
)

// DashboardStats fetches the service-computed dashboard summary.
func (client *Client) DashboardStats(ctx context.Context) (schema.DashboardSummary, error) {
	var summary schema.DashboardSummary
	err := client.get(ctx, "/dashboard/stats", &summary)
	return summary, err
}

// HealthStatus is the service's liveness response.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health probes the service's unauthenticated health endpoint. Used by
// the --check startup flag.
func (client *Client) Health(ctx context.Context) (HealthStatus, error) {
	var status HealthStatus
	err := client.get(ctx, "/health", &status)
	return status, err
}
