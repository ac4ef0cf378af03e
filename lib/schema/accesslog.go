// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// AccessOutcome is the result recorded for an access event.
type AccessOutcome string

const (
	AccessSuccess AccessOutcome = "success"
	AccessDenied  AccessOutcome = "denied"
	AccessWarning AccessOutcome = "warning"
)

// Label returns the display form of the outcome.
func (outcome AccessOutcome) Label() string {
	switch outcome {
	case AccessSuccess:
		return "Success"
	case AccessDenied:
		return "Denied"
	case AccessWarning:
		return "Warning"
	default:
		return string(outcome)
	}
}

// AccessLogEntry is one access event. Read-only and append-only from
// the console's perspective; the service generates these as a side
// effect of logins and inventory mutations.
type AccessLogEntry struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	UserName   string        `json:"user_name"`
	Action     string        `json:"action"`
	ResourceID string        `json:"resource_id,omitempty"`
	Location   string        `json:"location"`
	Timestamp  Time          `json:"timestamp"`
	Outcome    AccessOutcome `json:"status"`
}
