// Package entity defines the wire-level structures shared by the web
// layer: the API error taxonomy and the list pagination envelope.
package entity

import "fmt"

// Page is the envelope returned by every list endpoint. Count is the
// total number of matching rows, not the page length.
type Page struct {
	Count   int64 `json:"count"`
	Results any   `json:"results"`
}

// ApiError is the typed error services hand back to controllers.
// Fields carries per-field validation messages for 400 responses;
// Detail carries the single message for 401/403/404.
type ApiError struct {
	Status int
	Fields map[string][]string
	Detail string
}

func (e *ApiError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// Validation builds a 400 error with a single field message.
func Validation(field, message string) *ApiError {
	return &ApiError{
		Status: 400,
		Fields: map[string][]string{field: {message}},
	}
}

// ValidationFields builds a 400 error from an already assembled field map.
func ValidationFields(fields map[string][]string) *ApiError {
	return &ApiError{Status: 400, Fields: fields}
}

// Unauthorized builds a 401 error (missing or invalid credentials).
func Unauthorized(detail string) *ApiError {
	if detail == "" {
		detail = "authentication credentials were not provided"
	}
	return &ApiError{Status: 401, Detail: detail}
}

// Forbidden builds a 403 error (authenticated but not allowed).
func Forbidden(detail string) *ApiError {
	if detail == "" {
		detail = "you do not have permission to perform this action"
	}
	return &ApiError{Status: 403, Detail: detail}
}

// NotFound builds a 404 error for an unresolvable path entity.
func NotFound(what string) *ApiError {
	return &ApiError{Status: 404, Detail: what + " not found"}
}
