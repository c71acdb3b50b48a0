package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingAPIKey is a configuration failure: no provider credential was
// supplied. It is never retried; the operator has to fix the environment.
var ErrMissingAPIKey = errors.New("no AI provider API key is configured")

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrNoAnalysis       = errors.New("no analysis result available for this session")
	ErrAnalysisInFlight = errors.New("an analysis is already in progress for this session")
	ErrChatInFlight     = errors.New("a chat request is already in progress for this session")
)

// UpstreamError is a non-2xx reply from the generation endpoint. Rate-limit
// and payment failures are distinguishable so callers can message them
// differently; everything else is a generic upstream failure.
type UpstreamError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d %s: %s", e.StatusCode, e.Status, e.Body)
}

func (e *UpstreamError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func (e *UpstreamError) PaymentRequired() bool {
	return e.StatusCode == http.StatusPaymentRequired
}

// ParseError means the model returned text that does not decode as the
// expected structure. Raw keeps the full response for diagnostic logging.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing analysis response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
