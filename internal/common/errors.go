// Package common provides shared utilities used across the application.
package common

import (
	"errors"
	"fmt"

	"github.com/vndev/paywatch/internal/feed"
)

// Common application errors.
var (
	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Retry errors.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// UserError represents an error that should be shown to the user as-is.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry. Only
// transient feed failures qualify; everything else fails fast.
func IsRetryable(err error) bool {
	var feedErr *feed.Error
	if errors.As(err, &feedErr) {
		return feedErr.Retryable()
	}
	return false
}
