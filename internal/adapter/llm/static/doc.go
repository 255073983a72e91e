// Package static provides a mock LLM provider that returns a static,
// pre-determined review. This is useful for dry runs and for testing
// the orchestrator without making live API calls.
package static
