// Package errors provides structured error types and recovery suggestions.
//
// Purpose:
//
//	Define consistent error types across all CLI commands with recovery
//	suggestions, clear messages and stable exit codes for scripting.
package errors

import (
	"fmt"
)

// ErrorCode represents a standardized error code.
type ErrorCode string

const (
	// ErrCodeServiceUnavailable indicates the Analysis Services API is unreachable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeAuthenticationFailed indicates authentication failure.
	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	// ErrCodeValidationFailed indicates input validation failure.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	// ErrCodeOperationFailed indicates a general operation failure.
	ErrCodeOperationFailed ErrorCode = "OPERATION_FAILED"
	// ErrCodeUsage indicates incorrect command usage.
	ErrCodeUsage ErrorCode = "USAGE_ERROR"
)

// CLIError represents a structured CLI error with recovery suggestions.
type CLIError struct {
	Code       ErrorCode
	Message    string
	Suggestion string
	Details    string

	// ExitCode is the process exit code: 1 general failure, 2 usage or
	// validation failure, 3 service unavailable.
	ExitCode int
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	msg := e.Message
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Suggestion != "" {
		msg += "\n\nSuggestion: " + e.Suggestion
	}
	return msg
}

// NewServiceUnavailableError creates an error for an unreachable API.
func NewServiceUnavailableError(endpoint string) *CLIError {
	return &CLIError{
		Code:       ErrCodeServiceUnavailable,
		Message:    "Analysis Services API is unavailable",
		Details:    fmt.Sprintf("Endpoint: %s", endpoint),
		Suggestion: fmt.Sprintf("Verify the API is reachable at %s. Check the --api-url flag, the AS_CLIENT_API_BASE_URL environment variable and network connectivity.", endpoint),
		ExitCode:   3,
	}
}

// NewAuthenticationError creates an error for authentication failures.
func NewAuthenticationError(details string) *CLIError {
	return &CLIError{
		Code:       ErrCodeAuthenticationFailed,
		Message:    "Authentication failed",
		Details:    details,
		Suggestion: "Verify your API key (SENAPS_API_KEY) or username/password are valid and authorized for this API.",
		ExitCode:   1,
	}
}

// NewValidationError creates an error for validation failures.
func NewValidationError(message, suggestion string) *CLIError {
	return &CLIError{
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		Details:    message,
		Suggestion: suggestion,
		ExitCode:   2,
	}
}

// NewOperationError creates an error for operation failures.
func NewOperationError(message, suggestion string) *CLIError {
	return &CLIError{
		Code:       ErrCodeOperationFailed,
		Message:    "Operation failed",
		Details:    message,
		Suggestion: suggestion,
		ExitCode:   1,
	}
}

// NewUsageError creates an error for incorrect usage.
func NewUsageError(message string) *CLIError {
	return &CLIError{
		Code:       ErrCodeUsage,
		Message:    "Incorrect usage",
		Details:    message,
		Suggestion: "Run with --help for usage information.",
		ExitCode:   2,
	}
}
