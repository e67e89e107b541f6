package fsregister

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidResourceType indicates a resource type outside
	// firm/individual/fund; raised before any network call is made.
	ErrInvalidResourceType = errors.New(`resource type must be one of "firm", "individual" or "fund"`)
	// ErrMissingCredentials indicates an empty API username or key
	ErrMissingCredentials = errors.New("API username and key are required")
)

// RequestError represents a failed API request: either a transport-level
// failure (connection, DNS, TLS, timeout) wrapping the original cause,
// or an upstream non-2xx / empty-result outcome during a search.
type RequestError struct {
	// Message describes the failure
	Message string
	// Err is the underlying transport error, if any
	Err error
}

// Error implements the error interface
func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fsregister: request failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("fsregister: request failed: %s", e.Message)
}

// Unwrap returns the underlying transport error, if any
func (e *RequestError) Unwrap() error {
	return e.Err
}

// ResponseError indicates the API response envelope did not match the
// documented shape, e.g. a uniquely matched record without a
// "Reference Number" field. It usually means upstream contract drift.
type ResponseError struct {
	// ResourceType is the resource type that was searched
	ResourceType ResourceType
	// Name is the resource name that was searched
	Name string
	// Message describes what was wrong with the response
	Message string
}

// Error implements the error interface
func (e *ResponseError) Error() string {
	return fmt.Sprintf("fsregister: unexpected response for %s search %q: %s; "+
		"check the FS Register API developer documentation at "+
		"https://register.fca.org.uk/Developer/s/", e.ResourceType, e.Name, e.Message)
}
