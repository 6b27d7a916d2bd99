// Package watcher drives the fetch-classify-announce cycle against the
// transaction feed.
package watcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/vndev/paywatch/internal/classify"
	"github.com/vndev/paywatch/internal/dedup"
	"github.com/vndev/paywatch/internal/model"
	"github.com/vndev/paywatch/internal/service"
)

// Config holds the loop settings.
type Config struct {
	// Interval between cycle starts. A non-positive interval makes Run
	// perform exactly one cycle with no dedup window.
	Interval time.Duration
	// DedupSize is how many announced refNos to retain; 0 uses the
	// default window.
	DedupSize int
}

// Watcher polls a transaction source, classifies every returned row
// against the expected-payments table, and announces freshly paid
// transactions to the sink. Errors inside a cycle never stop the loop;
// only context cancellation does.
type Watcher struct {
	source   service.TransactionSource
	sink     service.VerdictSink
	expected model.ExpectedPayments
	cfg      Config
}

// New wires a watcher. The expected table is treated as immutable for the
// lifetime of the run.
func New(source service.TransactionSource, sink service.VerdictSink, expected model.ExpectedPayments, cfg Config) *Watcher {
	return &Watcher{
		source:   source,
		sink:     sink,
		expected: expected,
		cfg:      cfg,
	}
}

// Run blocks until ctx is canceled, then returns nil: cancellation is the
// loop's one terminal state, not an error. With a non-positive interval it
// runs a single cycle and returns immediately.
//
// The cadence is interval-from-cycle-start: each cycle sleeps for the
// interval minus its own processing time, so a slow feed does not stretch
// the polling period unless a cycle overruns the interval entirely.
func (w *Watcher) Run(ctx context.Context) error {
	if w.cfg.Interval <= 0 {
		w.RunOnce(ctx)
		return nil
	}

	seen := dedup.New(w.cfg.DedupSize)
	slog.Info("starting watch loop",
		"interval", w.cfg.Interval,
		"dedup_window", seen.Capacity(),
		"expected_codes", len(w.expected))

	for {
		select {
		case <-ctx.Done():
			slog.Info("watch loop stopped")
			return nil
		default:
		}

		start := time.Now()
		w.cycle(ctx, seen)

		pause := w.cfg.Interval - time.Since(start)
		if pause < 0 {
			pause = 0
		}

		select {
		case <-ctx.Done():
			slog.Info("watch loop stopped")
			return nil
		case <-time.After(pause):
		}
	}
}

// RunOnce performs a single fetch-classify pass with no dedup window:
// every qualifying payment in the batch is announced. It returns the feed
// error, if any, so one-shot callers can retry transient failures.
func (w *Watcher) RunOnce(ctx context.Context) error {
	return w.cycle(ctx, nil)
}

// cycle runs one fetch and classifies the batch in feed order. A nil ring
// disables announcement suppression.
func (w *Watcher) cycle(ctx context.Context, seen *dedup.Ring) error {
	txs, err := w.source.FetchHistory(ctx)
	if err != nil {
		slog.Warn("history fetch failed", "error", err)
		w.sink.FeedFailure(err)
		return err
	}

	slog.Info("fetched transactions", "count", len(txs))

	for i := range txs {
		verdict := classify.Classify(txs[i], w.expected)
		w.sink.Verdict(verdict)
		if !verdict.Paid() {
			continue
		}
		if seen != nil {
			if seen.Contains(verdict.RefNo) {
				slog.Debug("suppressing repeat announcement", "ref_no", verdict.RefNo)
				continue
			}
			seen.Add(verdict.RefNo)
		}
		w.sink.Paid(verdict)
	}

	return nil
}
