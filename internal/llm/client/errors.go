package client

import (
	"errors"
	"fmt"
	"strings"
)

// Request-scoped failure classes. None is process-fatal; handlers map them to
// HTTP statuses (400, 401, 429) and everything else to 500.
var (
	// ErrNoAPIKey means no credential could be resolved for the caller.
	ErrNoAPIKey = errors.New("no API key available")
	// ErrUpstreamAuth means the completion service rejected the credential.
	ErrUpstreamAuth = errors.New("upstream authentication failed")
	// ErrRateLimited means the completion service throttled the request.
	ErrRateLimited = errors.New("upstream rate limit exceeded")
)

// Classify wraps an upstream failure so callers can branch with errors.Is.
// Providers do not share a structured error type, so this goes by status
// codes and well-known phrases in the message.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNoAPIKey) || errors.Is(err, ErrUpstreamAuth) || errors.Is(err, ErrRateLimited) {
		return err
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") ||
		strings.Contains(msg, "invalid x-api-key") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "authentication"):
		return fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	case strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate") ||
		strings.Contains(msg, "quota"):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	default:
		return err
	}
}
