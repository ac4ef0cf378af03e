// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strings"
	"time"
)

// Time is a time.Time that tolerates the service's timestamp formats.
// The service serializes naive UTC datetimes (no offset suffix) for
// records it created, while RFC 3339 appears on fields echoed back
// from client input. Decoding accepts both; encoding always produces
// RFC 3339 UTC.
type Time struct {
	time.Time
}

// naiveLayout matches the service's offset-free UTC timestamps, with
// or without fractional seconds.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// UnmarshalJSON decodes an RFC 3339 timestamp or a naive UTC
// timestamp. A JSON null leaves the zero value (used for optional
// fields like resolved_at).
func (t *Time) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		t.Time = time.Time{}
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed
		return nil
	}
	if parsed, err := time.ParseInLocation(naiveLayout, raw, time.UTC); err == nil {
		t.Time = parsed
		return nil
	}
	return fmt.Errorf("schema: unrecognized timestamp %q", raw)
}

// MarshalJSON encodes as RFC 3339 UTC. The zero value encodes as null.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}

// NewTime wraps a time.Time.
func NewTime(value time.Time) Time { return Time{Time: value} }
