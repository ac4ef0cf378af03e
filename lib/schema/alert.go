// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// AlertSeverity grades a security alert. Severities are ordered;
// compare with Rank rather than string comparison.
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// AlertSeverities lists every known severity from least to most
// severe. Used by the security view's severity filter cycle.
var AlertSeverities = []AlertSeverity{
	SeverityLow,
	SeverityMedium,
	SeverityHigh,
	SeverityCritical,
}

// Rank returns the severity's position in the ordering, 0 for low
// through 3 for critical. Unknown severities rank below low.
func (severity AlertSeverity) Rank() int {
	switch severity {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}

// Label returns the display form of the severity.
func (severity AlertSeverity) Label() string {
	switch severity {
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	case SeverityCritical:
		return "Critical"
	default:
		return string(severity)
	}
}

// AlertStatus is an alert's position in the resolution workflow:
// active → investigating → resolved, with active → resolved permitted
// directly. Resolved is terminal; the console offers no transition out
// of it, and the service rejects any such request.
type AlertStatus string

const (
	AlertActive        AlertStatus = "active"
	AlertInvestigating AlertStatus = "investigating"
	AlertResolved      AlertStatus = "resolved"
)

// AlertStatuses lists every known alert status in workflow order.
var AlertStatuses = []AlertStatus{
	AlertActive,
	AlertInvestigating,
	AlertResolved,
}

// Label returns the display form of the alert status.
func (status AlertStatus) Label() string {
	switch status {
	case AlertActive:
		return "Active"
	case AlertInvestigating:
		return "Investigating"
	case AlertResolved:
		return "Resolved"
	default:
		return string(status)
	}
}

// Terminal reports whether the status has no outgoing transitions.
func (status AlertStatus) Terminal() bool {
	return status == AlertResolved
}

// NextStatuses returns the transitions the console offers from the
// given status. The service remains the arbiter of legality; this
// only controls which controls are rendered.
func (status AlertStatus) NextStatuses() []AlertStatus {
	switch status {
	case AlertActive:
		return []AlertStatus{AlertInvestigating, AlertResolved}
	case AlertInvestigating:
		return []AlertStatus{AlertResolved}
	default:
		return nil
	}
}

// KnownAlertStatus reports whether the value is one of the statuses
// the workflow defines. Transition requests to unknown targets are
// rejected locally before any request is sent.
func KnownAlertStatus(value AlertStatus) bool {
	switch value {
	case AlertActive, AlertInvestigating, AlertResolved:
		return true
	default:
		return false
	}
}

// SecurityAlert is a single alert record as returned by the service.
type SecurityAlert struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Message    string        `json:"message"`
	Severity   AlertSeverity `json:"severity"`
	Location   string        `json:"location"`
	Status     AlertStatus   `json:"status"`
	CreatedAt  Time          `json:"created_at"`
	ResolvedAt Time          `json:"resolved_at,omitempty"`
}
