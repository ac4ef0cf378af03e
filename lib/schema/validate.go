// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// draftValidator is shared and concurrency-safe; validator caches
// struct metadata on first use.
var draftValidator = validator.New(validator.WithRequiredStructEnabled())

// draftFieldLabels maps ResourceDraft struct fields to the labels
// shown next to the form inputs.
var draftFieldLabels = map[string]string{
	"Name":            "name",
	"Type":            "type",
	"Category":        "category",
	"Location":        "location",
	"Status":          "status",
	"AcquisitionDate": "acquisition date",
}

// DraftValidationError reports the required fields a draft is missing.
// Returned by ValidateDraft so the form can stay open with the
// operator's input intact and the missing fields called out.
type DraftValidationError struct {
	// Fields holds the display labels of the missing fields, in
	// struct declaration order.
	Fields []string
}

func (err *DraftValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(err.Fields, ", "))
}

// ValidateDraft checks that every required field of the draft is set.
// A draft that fails validation must not be sent to the service; the
// service validates again authoritatively, but the console does not
// rely on that.
func ValidateDraft(draft ResourceDraft) error {
	err := draftValidator.Struct(draft)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validating draft: %w", err)
	}

	missing := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		label := draftFieldLabels[fieldError.StructField()]
		if label == "" {
			label = fieldError.StructField()
		}
		missing = append(missing, label)
	}
	return &DraftValidationError{Fields: missing}
}
