// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sentinel-ops/sentinel/lib/schema"
)

// Resources fetches the full inventory collection.
func (client *Client) Resources(ctx context.Context) ([]schema.Resource, error) {
	var resources []schema.Resource
	if err := client.get(ctx, "/resources", &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// CreateResource creates an inventory record from a draft. The service
// assigns the id and creation metadata.
func (client *Client) CreateResource(ctx context.Context, draft schema.ResourceDraft) (schema.Resource, error) {
	var created schema.Resource
	err := client.post(ctx, "/resources", draft, &created)
	return created, err
}

// UpdateResource replaces an inventory record's editable fields.
func (client *Client) UpdateResource(ctx context.Context, resourceID string, draft schema.ResourceDraft) (schema.Resource, error) {
	var updated schema.Resource
	err := client.put(ctx, "/resources/"+url.PathEscape(resourceID), draft, &updated)
	return updated, err
}

// DeleteResource removes an inventory record. Irreversible from the
// console's point of view; callers confirm with the operator first.
func (client *Client) DeleteResource(ctx context.Context, resourceID string) error {
	return client.delete(ctx, "/resources/"+url.PathEscape(resourceID))
}

// AccessLogs fetches the access log collection, most recent first.
func (client *Client) AccessLogs(ctx context.Context) ([]schema.AccessLogEntry, error) {
	var entries []schema.AccessLogEntry
	if err := client.get(ctx, "/access-logs", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SecurityAlerts fetches the alert collection, most recent first.
func (client *Client) SecurityAlerts(ctx context.Context) ([]schema.SecurityAlert, error) {
	var alerts []schema.SecurityAlert
	if err := client.get(ctx, "/security-alerts", &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// UpdateAlertStatus requests an alert workflow transition. The target
// travels as a query parameter per the contract. The service is the
// sole arbiter of transition legality; on success the caller re-fetches
// the full collection rather than patching the record locally.
func (client *Client) UpdateAlertStatus(ctx context.Context, alertID string, target schema.AlertStatus) error {
	if !schema.KnownAlertStatus(target) {
		return fmt.Errorf("api: unknown alert status %q", target)
	}
	path := fmt.Sprintf("/security-alerts/%s?status=%s",
		url.PathEscape(alertID), url.QueryEscape(string(target)))
	return client.put(ctx, path, nil, nil)
}
