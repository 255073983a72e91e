package http

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"
)

// Logger provides structured logging for LLM API calls.
type Logger interface {
	// LogRequest logs an outgoing API request (API key redacted).
	LogRequest(ctx context.Context, req RequestLog)

	// LogResponse logs an API response with timing and token info.
	LogResponse(ctx context.Context, resp ResponseLog)

	// LogError logs an API error.
	LogError(ctx context.Context, err ErrorLog)
}

// RequestLog contains request information for logging.
type RequestLog struct {
	Provider    string
	Model       string
	PromptChars int    // Character count of prompt
	APIKey      string // Redacted to last 4 chars before emission
}

// ResponseLog contains response information for logging.
type ResponseLog struct {
	Provider     string
	Model        string
	Duration     time.Duration
	TokensIn     int
	TokensOut    int
	FinishReason string
}

// ErrorLog contains error information for logging.
type ErrorLog struct {
	Provider   string
	Model      string
	Duration   time.Duration
	Error      error
	StatusCode int
}

// SlogLogger emits LLM call logs through the application slog logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a Logger backed by the given slog logger.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

// LogRequest logs an API request at debug level.
func (l *SlogLogger) LogRequest(ctx context.Context, req RequestLog) {
	l.logger.DebugContext(ctx, "model request sent",
		"provider", req.Provider,
		"model", req.Model,
		"prompt_chars", req.PromptChars,
		"api_key", RedactAPIKey(req.APIKey),
	)
}

// LogResponse logs an API response at info level.
func (l *SlogLogger) LogResponse(ctx context.Context, resp ResponseLog) {
	l.logger.InfoContext(ctx, "model response received",
		"provider", resp.Provider,
		"model", resp.Model,
		"duration", resp.Duration,
		"tokens_in", resp.TokensIn,
		"tokens_out", resp.TokensOut,
		"finish_reason", resp.FinishReason,
	)
}

// LogError logs an API error.
func (l *SlogLogger) LogError(ctx context.Context, e ErrorLog) {
	l.logger.ErrorContext(ctx, "model call failed",
		"provider", e.Provider,
		"model", e.Model,
		"duration", e.Duration,
		"status_code", e.StatusCode,
		"error", e.Error,
	)
}

// RedactAPIKey shows only the last 4 characters of an API key with
// explicit redaction markers.
func RedactAPIKey(key string) string {
	if len(key) <= 4 {
		return "[REDACTED]"
	}
	return fmt.Sprintf("[REDACTED-%s]", key[len(key)-4:])
}

// keyQueryPattern matches API keys passed as URL query parameters, as
// the Gemini API requires.
var keyQueryPattern = regexp.MustCompile(`([?&]key=)[^&\s]+`)

// RedactURLSecrets masks API keys embedded in URLs inside the given
// text, so error messages are safe to log and to post as comments.
func RedactURLSecrets(text string) string {
	return keyQueryPattern.ReplaceAllString(text, "${1}[REDACTED]")
}
