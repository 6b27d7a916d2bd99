// Package service defines the contracts the watcher is wired with.
package service

import (
	"context"
	"time"

	"github.com/vndev/paywatch/internal/model"
)

// TransactionSource yields one batch of history rows per call. The feed
// client is the production implementation; tests substitute fakes.
type TransactionSource interface {
	FetchHistory(ctx context.Context) ([]model.Transaction, error)
}

// VerdictSink receives classification outcomes. The console sink prints
// them; a downstream consumer could queue them instead.
type VerdictSink interface {
	// Verdict is called once per classified transaction, in feed order.
	Verdict(v model.Verdict)
	// Paid is called when a paid refNo is announced, i.e. the first time
	// it is seen within the dedup window.
	Paid(v model.Verdict)
	// FeedFailure reports a fetch cycle that produced no batch.
	FeedFailure(err error)
}

// RetryOptions configures retry behavior for operations that support it.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
