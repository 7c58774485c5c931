// Package asclient error types.
//
// Purpose:
//
//	Translate non-2xx API responses into typed errors carrying the service's
//	error document (message, statuscode, plus any extra fields). HTTP client
//	errors (4xx) map to *RequestError, server errors (5xx) to *ServerError.
package asclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of an error response body is read.
const maxErrorBody = 64 * 1024

// APIError describes an error response from the Analysis Services API.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Message is the error message from the service's error document, or a
	// snippet of the raw body when the document could not be parsed.
	Message string

	// RequestID is the X-Request-Id the failed request was sent with.
	RequestID string

	// Extra holds any additional fields from the error document.
	Extra map[string]interface{}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.RequestID != "" {
		return fmt.Sprintf("status %d: %s (request id %s)", e.StatusCode, msg, e.RequestID)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, msg)
}

// RequestError is returned when the server responds with an HTTP "client
// error" (4xx) status code.
type RequestError struct {
	APIError
}

// ServerError is returned when the server responds with an HTTP "server
// error" (5xx) status code.
type ServerError struct {
	APIError
}

// IsNotFound reports whether err is a RequestError with status 404.
func IsNotFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound
}

// newResponseError builds a typed error from a non-2xx response. The error
// document is expected to be JSON of the form {"message": ..., "statuscode":
// ...}; anything else degrades to the raw body text.
func newResponseError(resp *http.Response, requestID string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := APIError{
		StatusCode: resp.StatusCode,
		RequestID:  requestID,
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err == nil {
		if msg, ok := doc["message"].(string); ok {
			apiErr.Message = msg
		}
		delete(doc, "message")
		delete(doc, "statuscode")
		if len(doc) > 0 {
			apiErr.Extra = doc
		}
	} else if s := strings.TrimSpace(string(body)); s != "" {
		apiErr.Message = s
	}

	if resp.StatusCode >= 500 {
		return &ServerError{apiErr}
	}
	return &RequestError{apiErr}
}
