// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// SecurityLevel is the service's facility-wide threat assessment,
// derived from the count of unresolved alerts.
type SecurityLevel string

const (
	SecurityNormal SecurityLevel = "NORMAL"
	SecurityHigh   SecurityLevel = "HIGH"
)

// Label returns the display form of the security level.
func (level SecurityLevel) Label() string {
	switch level {
	case SecurityNormal:
		return "NORMAL"
	case SecurityHigh:
		return "HIGH"
	default:
		return string(level)
	}
}

// DashboardStats is the counter block of the dashboard summary.
type DashboardStats struct {
	TotalResources       int           `json:"total_resources"`
	ActiveResources      int           `json:"active_resources"`
	MaintenanceResources int           `json:"maintenance_resources"`
	TotalUsers           int           `json:"total_users"`
	ActiveAlerts         int           `json:"active_alerts"`
	SecurityLevel        SecurityLevel `json:"security_level"`
}

// DashboardSummary is the service-computed snapshot rendered by the
// dashboard view. The console performs no aggregation of its own: the
// counts and both most-recent-first sequences are displayed verbatim,
// and each poll replaces the whole summary.
type DashboardSummary struct {
	Stats        DashboardStats   `json:"stats"`
	RecentAccess []AccessLogEntry `json:"recent_access"`
	ActiveAlerts []SecurityAlert  `json:"active_alerts"`
}
