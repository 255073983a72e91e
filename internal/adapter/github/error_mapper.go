package github

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	llmhttp "github.com/bkyoung/argus/internal/adapter/llm/http"
)

const providerName = "github"

// mapHTTPError maps GitHub API error responses to typed errors,
// reusing the shared error taxonomy so callers can classify failures
// uniformly across GitHub and model backends.
func mapHTTPError(resp *http.Response) *llmhttp.Error {
	body, _ := io.ReadAll(resp.Body)
	message := parseErrorMessage(resp.StatusCode, body)

	errType := llmhttp.ErrTypeUnknown
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		errType = llmhttp.ErrTypeAuthentication
	case http.StatusTooManyRequests:
		errType = llmhttp.ErrTypeRateLimit
	case http.StatusNotFound, http.StatusUnprocessableEntity:
		errType = llmhttp.ErrTypeInvalidRequest
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable:
		errType = llmhttp.ErrTypeServiceUnavailable
	}

	return &llmhttp.Error{
		Type:       errType,
		Message:    message,
		StatusCode: resp.StatusCode,
		Provider:   providerName,
	}
}

// parseErrorMessage extracts a user-friendly message from GitHub's
// error body, falling back to the bare status code.
func parseErrorMessage(statusCode int, body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}
