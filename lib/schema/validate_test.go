// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func completeDraft() ResourceDraft {
	return ResourceDraft{
		Name:            "Perimeter Sensors Array",
		Type:            ResourceSecurityDevice,
		Category:        "Surveillance",
		Location:        "Building Perimeter",
		Status:          ResourceActive,
		Description:     "Motion detection grid",
		AcquisitionDate: NewTime(time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC)),
	}
}

func TestValidateDraftComplete(t *testing.T) {
	if err := ValidateDraft(completeDraft()); err != nil {
		t.Fatalf("complete draft failed validation: %v", err)
	}
}

func TestValidateDraftMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		strip func(*ResourceDraft)
		want  string
	}{
		{"name", func(d *ResourceDraft) { d.Name = "" }, "name"},
		{"type", func(d *ResourceDraft) { d.Type = "" }, "type"},
		{"category", func(d *ResourceDraft) { d.Category = "" }, "category"},
		{"location", func(d *ResourceDraft) { d.Location = "" }, "location"},
		{"status", func(d *ResourceDraft) { d.Status = "" }, "status"},
		{"acquisition date", func(d *ResourceDraft) { d.AcquisitionDate = Time{} }, "acquisition date"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			draft := completeDraft()
			test.strip(&draft)

			err := ValidateDraft(draft)
			if err == nil {
				t.Fatal("draft with missing field passed validation")
			}

			var validationError *DraftValidationError
			if !errors.As(err, &validationError) {
				t.Fatalf("error type = %T, want *DraftValidationError", err)
			}
			if len(validationError.Fields) != 1 || validationError.Fields[0] != test.want {
				t.Fatalf("missing fields = %v, want [%s]", validationError.Fields, test.want)
			}
		})
	}
}

func TestValidateDraftOptionalFieldsNotRequired(t *testing.T) {
	draft := completeDraft()
	draft.AssignedTo = ""
	draft.Description = ""

	if err := ValidateDraft(draft); err != nil {
		t.Fatalf("draft without optional fields failed validation: %v", err)
	}
}

func TestValidateDraftReportsAllMissing(t *testing.T) {
	err := ValidateDraft(ResourceDraft{})
	if err == nil {
		t.Fatal("empty draft passed validation")
	}
	message := err.Error()
	for _, label := range []string{"name", "type", "category", "location", "status", "acquisition date"} {
		if !strings.Contains(message, label) {
			t.Errorf("error message %q missing field %q", message, label)
		}
	}
}
