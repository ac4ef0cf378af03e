// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"strings"

	"github.com/sentinel-ops/sentinel/lib/schema"
)

// ResourceFilter narrows the inventory list client-side. The three
// criteria compose with AND: a record must match the text query, the
// status selection, and the type selection to stay visible. Empty
// criteria match everything, so the zero value passes every record.
type ResourceFilter struct {
	// Query is matched case-insensitively as a substring against the
	// record's name, category, location, and assignee.
	Query string

	// Status keeps only records with exactly this status when set.
	Status schema.ResourceStatus

	// Type keeps only records of exactly this type when set.
	Type schema.ResourceType
}

// Active reports whether any criterion is set.
func (filter ResourceFilter) Active() bool {
	return filter.Query != "" || filter.Status != "" || filter.Type != ""
}

// Matches reports whether the record passes every set criterion.
func (filter ResourceFilter) Matches(resource schema.Resource) bool {
	if filter.Status != "" && resource.Status != filter.Status {
		return false
	}
	if filter.Type != "" && resource.Type != filter.Type {
		return false
	}
	if filter.Query == "" {
		return true
	}

	query := strings.ToLower(filter.Query)
	for _, field := range []string{
		resource.Name,
		resource.Category,
		resource.Location,
		resource.AssignedTo,
	} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Apply returns the records that pass the filter, preserving order.
func (filter ResourceFilter) Apply(resources []schema.Resource) []schema.Resource {
	if !filter.Active() {
		return resources
	}
	var kept []schema.Resource
	for _, resource := range resources {
		if filter.Matches(resource) {
			kept = append(kept, resource)
		}
	}
	return kept
}

// CycleStatus advances the status criterion through the known
// statuses and back to unset.
func (filter *ResourceFilter) CycleStatus() {
	filter.Status = cycle(filter.Status, schema.ResourceStatuses)
}

// CycleType advances the type criterion through the known types and
// back to unset.
func (filter *ResourceFilter) CycleType() {
	filter.Type = cycle(filter.Type, schema.ResourceTypes)
}

// AlertFilter narrows the security alert feed. Like ResourceFilter,
// the criteria compose with AND and empty criteria match everything.
type AlertFilter struct {
	// Query is matched case-insensitively as a substring against the
	// alert's title, message, and location.
	Query string

	// Severity keeps only alerts of exactly this severity when set.
	Severity schema.AlertSeverity

	// Status keeps only alerts in exactly this lifecycle state when
	// set.
	Status schema.AlertStatus
}

// Active reports whether any criterion is set.
func (filter AlertFilter) Active() bool {
	return filter.Query != "" || filter.Severity != "" || filter.Status != ""
}

// Matches reports whether the alert passes every set criterion.
func (filter AlertFilter) Matches(alert schema.SecurityAlert) bool {
	if filter.Severity != "" && alert.Severity != filter.Severity {
		return false
	}
	if filter.Status != "" && alert.Status != filter.Status {
		return false
	}
	if filter.Query == "" {
		return true
	}

	query := strings.ToLower(filter.Query)
	for _, field := range []string{
		alert.Title,
		alert.Message,
		alert.Location,
	} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Apply returns the alerts that pass the filter, preserving order.
func (filter AlertFilter) Apply(alerts []schema.SecurityAlert) []schema.SecurityAlert {
	if !filter.Active() {
		return alerts
	}
	var kept []schema.SecurityAlert
	for _, alert := range alerts {
		if filter.Matches(alert) {
			kept = append(kept, alert)
		}
	}
	return kept
}

// CycleSeverity advances the severity criterion through the known
// severities and back to unset.
func (filter *AlertFilter) CycleSeverity() {
	filter.Severity = cycle(filter.Severity, schema.AlertSeverities)
}

// CycleStatus advances the status criterion through the known
// lifecycle states and back to unset.
func (filter *AlertFilter) CycleStatus() {
	filter.Status = cycle(filter.Status, schema.AlertStatuses)
}

// cycle returns the element after current in options, the first
// element when current is unset, and unset after the last element.
func cycle[T comparable](current T, options []T) T {
	var unset T
	if current == unset {
		if len(options) == 0 {
			return unset
		}
		return options[0]
	}
	for index, option := range options {
		if option == current {
			if index+1 < len(options) {
				return options[index+1]
			}
			return unset
		}
	}
	return unset
}
