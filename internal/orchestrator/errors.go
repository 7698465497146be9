package orchestrator

import (
	"fmt"
	"strings"
)

// AuthenticationError indicates the identity-server token exchange failed.
// It carries the identity server's response body for diagnosis but never the
// credential values themselves.
type AuthenticationError struct {
	// StatusCode is the HTTP status from the identity server, if the
	// exchange got that far.
	StatusCode int

	// Body is the raw response body text from the identity server.
	Body string

	// Cause is the underlying error (e.g. a network failure).
	Cause error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	msg := "authentication failed"
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s [HTTP %d]", msg, e.StatusCode)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *AuthenticationError) Unwrap() error {
	return e.Cause
}

// APIError indicates a non-2xx response from an Orchestrator API route.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Body is the raw response body text.
	Body string

	// UnsupportedQuery is set when the server rejected an OData query
	// option. Callers branch on this flag, never on the body text; the
	// classification happens in exactly one place (see newAPIError).
	UnsupportedQuery bool
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("orchestrator API error [HTTP %d]: %s", e.StatusCode, e.Body)
}

// invalidQuerySignature is the substring Orchestrator includes in the error
// message when it rejects an OData query option.
const invalidQuerySignature = "Invalid OData"

// newAPIError builds an APIError from a response, classifying rejected
// query options into the UnsupportedQuery flag.
func newAPIError(statusCode int, body string) *APIError {
	return &APIError{
		StatusCode:       statusCode,
		Body:             body,
		UnsupportedQuery: statusCode == 400 && strings.Contains(body, invalidQuerySignature),
	}
}

// NotFoundError indicates a named entity lookup found no match.
type NotFoundError struct {
	// Resource is the entity family (e.g. "queue", "release").
	Resource string

	// Name is the identifier that was not found.
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Name)
}
