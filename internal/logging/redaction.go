package logging

import (
	"regexp"
	"strings"
)

// Redaction patterns for sensitive data in logs. The Analysis Services API
// carries credentials as an apikey query parameter and HTTP basic auth, so
// both forms are covered alongside generic password/secret patterns.
var (
	// APIKeyParamPattern matches apikey query parameters in URLs.
	APIKeyParamPattern = regexp.MustCompile(`(?i)(apikey=)([^&\s"']+)`)

	// BasicAuthPattern matches HTTP basic auth header values.
	BasicAuthPattern = regexp.MustCompile(`(?i)(Authorization:\s*Basic\s+)([A-Za-z0-9+/=]+)`)

	// PasswordPattern matches passwords in various formats.
	PasswordPattern = regexp.MustCompile(`(?i)(password[=:]\s*)([^\s"',}]+)`)

	// APIKeyEnvPattern matches API keys in environment variable assignments.
	APIKeyEnvPattern = regexp.MustCompile(`(?i)([A-Z_]*API_KEY[=:]\s*)([^\s"',}]+)`)

	// SecretPattern matches generic secrets in environment variables.
	SecretPattern = regexp.MustCompile(`(?i)([A-Z_]+SECRET[=:]\s*)([^\s"',}]+)`)
)

// RedactString applies redaction patterns to a string, masking sensitive data.
func RedactString(s string) string {
	if s == "" {
		return s
	}

	result := s
	result = APIKeyParamPattern.ReplaceAllString(result, `${1}***REDACTED***`)
	result = BasicAuthPattern.ReplaceAllString(result, `${1}***REDACTED***`)
	result = PasswordPattern.ReplaceAllString(result, `${1}***REDACTED***`)
	result = APIKeyEnvPattern.ReplaceAllString(result, `${1}***REDACTED***`)
	result = SecretPattern.ReplaceAllString(result, `${1}***REDACTED***`)

	return result
}

// RedactFields redacts sensitive values in a map of fields.
func RedactFields(fields map[string]interface{}) map[string]interface{} {
	if fields == nil {
		return fields
	}

	redacted := make(map[string]interface{}, len(fields))
	sensitiveKeys := []string{"password", "secret", "token", "key", "credential", "auth"}

	for k, v := range fields {
		keyLower := strings.ToLower(k)
		isSensitive := false

		for _, sensitive := range sensitiveKeys {
			if strings.Contains(keyLower, sensitive) {
				isSensitive = true
				break
			}
		}

		if isSensitive {
			redacted[k] = "***REDACTED***"
		} else {
			redacted[k] = v
		}
	}

	return redacted
}
