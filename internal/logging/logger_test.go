package logging

import (
	"context"
	"os"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				AppName:     "as-client",
				Environment: "development",
				LogLevel:    "info",
				OutputPath:  "stderr",
			},
			wantErr: false,
		},
		{
			name:    "default config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "invalid log level defaults to info",
			config: Config{
				AppName:     "as-client",
				Environment: "development",
				LogLevel:    "invalid",
				OutputPath:  "stderr",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if logger == nil && !tt.wantErr {
				t.Error("New() returned nil logger")
			}
			if logger != nil {
				logger.Sync()
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"invalid", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLogger_WithContext(t *testing.T) {
	logger, err := New(Config{
		AppName:     "as-client",
		Environment: "development",
		LogLevel:    "debug",
		OutputPath:  "stderr",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer logger.Sync()

	// Without trace context the base logger comes back unchanged.
	ctx := context.Background()
	if logger.WithContext(ctx) != logger.Logger {
		t.Error("WithContext() without a span should return the base logger")
	}

	tracer := otel.Tracer("test")
	ctx, span := tracer.Start(ctx, "test-span")
	defer span.End()

	if logger.WithContext(ctx) == nil {
		t.Error("WithContext() returned nil logger")
	}
}

func TestLogger_WithRequestID(t *testing.T) {
	logger, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer logger.Sync()

	if logger.WithRequestID("req-123") == nil {
		t.Error("WithRequestID() returned nil logger")
	}
}

func TestRedactString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{
			name:     "apikey query parameter",
			input:    "https://senaps.example.io/api/analysis/models?apikey=abcdef123456",
			contains: "apikey=***REDACTED***",
		},
		{
			name:     "basic auth header",
			input:    "Authorization: Basic dXNlcjpwYXNz",
			contains: "***REDACTED***",
		},
		{
			name:     "password assignment",
			input:    "password=secret123",
			contains: "password=***REDACTED***",
		},
		{
			name:     "api key environment variable",
			input:    "SENAPS_API_KEY=abcdef123456",
			contains: "***REDACTED***",
		},
		{
			name:     "no sensitive data",
			input:    "normal log message",
			contains: "normal log message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RedactString(tt.input)
			if !strings.Contains(result, tt.contains) {
				t.Errorf("RedactString() result = %q, should contain %q", result, tt.contains)
			}
		})
	}
}

func TestRedactString_PreservesURL(t *testing.T) {
	input := "https://senaps.example.io/api/analysis/models?apikey=abc123&limit=10"
	result := RedactString(input)

	if strings.Contains(result, "abc123") {
		t.Errorf("RedactString() leaked the api key: %q", result)
	}
	if !strings.Contains(result, "limit=10") {
		t.Errorf("RedactString() dropped non-sensitive parameters: %q", result)
	}
}

func TestRedactFields(t *testing.T) {
	fields := map[string]interface{}{
		"password": "secret123",
		"username": "user",
		"api_key":  "key123",
		"normal":   "value",
		"attempts": 3,
	}

	redacted := RedactFields(fields)

	if redacted["password"] != "***REDACTED***" {
		t.Errorf("password not redacted: %v", redacted["password"])
	}
	if redacted["api_key"] != "***REDACTED***" {
		t.Errorf("api_key not redacted: %v", redacted["api_key"])
	}
	if redacted["username"] != "user" {
		t.Errorf("username incorrectly redacted: %v", redacted["username"])
	}
	if redacted["normal"] != "value" {
		t.Errorf("normal field incorrectly modified: %v", redacted["normal"])
	}
	if redacted["attempts"] != 3 {
		t.Errorf("attempts incorrectly modified: %v", redacted["attempts"])
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := Config{Environment: "development"}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}

	cfg = Config{Environment: "production"}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
}

func TestGetOutputWriter(t *testing.T) {
	writer, err := getOutputWriter("stdout")
	if err != nil {
		t.Errorf("getOutputWriter(\"stdout\") error = %v", err)
	}
	if writer != os.Stdout {
		t.Error("getOutputWriter(\"stdout\") did not return os.Stdout")
	}

	writer, err = getOutputWriter("stderr")
	if err != nil {
		t.Errorf("getOutputWriter(\"stderr\") error = %v", err)
	}
	if writer != os.Stderr {
		t.Error("getOutputWriter(\"stderr\") did not return os.Stderr")
	}
}
