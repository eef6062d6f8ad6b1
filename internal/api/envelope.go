package api

import (
	"errors"
	"fmt"
)

// Envelope is the tagged response shape shared by the domain endpoints:
// {status: "success"|"error", message, data?, errors?}. Error text shows up
// in either the errors or the message field depending on the endpoint, so
// ErrorMessage is the single place that shape-sniffing happens.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
	Errors  string `json:"errors,omitempty"`
}

// IsError reports whether the body is tagged as an error, regardless of the
// HTTP status it arrived with (the backend sometimes returns errors with 200)
func (e *Envelope[T]) IsError() bool {
	return e.Status == "error"
}

// ErrorMessage normalizes the error text across the errors/message fields
func (e *Envelope[T]) ErrorMessage() string {
	if e.Errors != "" {
		return e.Errors
	}
	if e.Message != "" {
		return e.Message
	}
	return "an error occurred"
}

// APIError is a normalized backend failure: the HTTP status it arrived with
// and the error text extracted from the envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// AsAPIError unwraps err to an *APIError if one is present
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
