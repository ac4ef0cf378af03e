// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents a non-2xx response from the security service.
// The service returns a JSON body with a "detail" field holding the
// stated reason; the reason is preserved verbatim so callers can
// surface why a mutation or transition was rejected rather than
// guessing.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Message is the service's stated reason, or a generic
	// status-based description if the body was not parseable.
	Message string
}

func (err *APIError) Error() string {
	return fmt.Sprintf("api: HTTP %d: %s", err.StatusCode, err.Message)
}

// errorBody mirrors the service's error response shape.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// parseAPIError builds an APIError from a non-2xx response body. The
// detail field is usually a string; request validation failures carry
// a structured list, which is flattened to its messages.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiError := &APIError{
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Detail) == 0 {
		return apiError
	}

	var message string
	if err := json.Unmarshal(parsed.Detail, &message); err == nil {
		apiError.Message = message
		return apiError
	}

	var fieldErrors []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(parsed.Detail, &fieldErrors); err == nil && len(fieldErrors) > 0 {
		messages := make([]string, 0, len(fieldErrors))
		for _, fieldError := range fieldErrors {
			messages = append(messages, fieldError.Msg)
		}
		apiError.Message = strings.Join(messages, "; ")
	}
	return apiError
}

// IsUnauthorized reports whether err is a 401 response: the credential
// is missing, invalid, or expired. This is the one signal that forces
// a client-initiated logout.
func IsUnauthorized(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403 response: the credential is
// valid but the operator lacks the capability. The console gates these
// operations proactively, so a 403 indicates clearance changed
// server-side since the identity was fetched.
func IsForbidden(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}

// IsValidation reports whether err is a 422 response: the service
// rejected the request payload.
func IsValidation(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusUnprocessableEntity
}

// Reason extracts the service's stated reason from an error. For
// APIErrors this is the detail message; for anything else, the error
// text. Used by the status bar to show why an operation failed.
func Reason(err error) string {
	var apiError *APIError
	if errors.As(err, &apiError) {
		return apiError.Message
	}
	return err.Error()
}
