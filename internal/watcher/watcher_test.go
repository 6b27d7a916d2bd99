package watcher

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vndev/paywatch/internal/feed"
	"github.com/vndev/paywatch/internal/model"
)

// scriptedSource replays one batch (or error) per fetch. When the script
// is exhausted it cancels the run context so the loop winds down.
type scriptedSource struct {
	cancel  context.CancelFunc
	batches [][]model.Transaction
	errs    []error
	calls   int
}

func (s *scriptedSource) FetchHistory(_ context.Context) ([]model.Transaction, error) {
	if s.calls >= len(s.batches) {
		s.cancel()
		return nil, nil
	}
	batch, err := s.batches[s.calls], s.errs[s.calls]
	s.calls++
	return batch, err
}

// recordingSink collects everything the watcher surfaces.
type recordingSink struct {
	mu       sync.Mutex
	verdicts []model.Verdict
	paid     []model.Verdict
	failures []error
}

func (s *recordingSink) Verdict(v model.Verdict) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verdicts = append(s.verdicts, v)
}

func (s *recordingSink) Paid(v model.Verdict) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paid = append(s.paid, v)
}

func (s *recordingSink) FeedFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, err)
}

func (s *recordingSink) paidRefNos() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs := make([]string, len(s.paid))
	for i, v := range s.paid {
		refs[i] = v.RefNo
	}
	return refs
}

func paidTx(refNo string) model.Transaction {
	return model.Transaction{
		RefNo:        refNo,
		DebitAmount:  "0",
		CreditAmount: "50000",
		Description:  "VNDEV AB12C3",
	}
}

var testExpected = model.ExpectedPayments{"AB12C3": 50000}

func runScripted(t *testing.T, cfg Config, batches [][]model.Transaction, errs []error) *recordingSink {
	t.Helper()
	require.Equal(t, len(batches), len(errs))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &scriptedSource{cancel: cancel, batches: batches, errs: errs}
	sink := &recordingSink{}

	done := make(chan error, 1)
	go func() {
		done <- New(source, sink, testExpected, cfg).Run(ctx)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	return sink
}

func TestRunSuppressesRepeatAnnouncements(t *testing.T) {
	sink := runScripted(t,
		Config{Interval: time.Millisecond, DedupSize: 10},
		[][]model.Transaction{
			{paidTx("FT1")},
			{paidTx("FT1")},
			{paidTx("FT1")},
		},
		[]error{nil, nil, nil},
	)

	// Three cycles classified it, one announced it.
	assert.Len(t, sink.verdicts, 3)
	assert.Equal(t, []string{"FT1"}, sink.paidRefNos())
}

func TestRunAnnouncesEvictedRefNoAgain(t *testing.T) {
	// Window of one: announcing B evicts A, so A's reappearance is fresh.
	sink := runScripted(t,
		Config{Interval: time.Millisecond, DedupSize: 1},
		[][]model.Transaction{
			{paidTx("FT-A")},
			{paidTx("FT-B")},
			{paidTx("FT-A")},
		},
		[]error{nil, nil, nil},
	)

	assert.Equal(t, []string{"FT-A", "FT-B", "FT-A"}, sink.paidRefNos())
}

func TestRunSurvivesFeedFailures(t *testing.T) {
	sink := runScripted(t,
		Config{Interval: time.Millisecond, DedupSize: 10},
		[][]model.Transaction{
			nil,
			{paidTx("FT1")},
		},
		[]error{&feed.Error{Kind: feed.KindTimeout}, nil},
	)

	assert.Len(t, sink.failures, 1)
	assert.Equal(t, []string{"FT1"}, sink.paidRefNos())
}

func TestRunRejectionsAreSurfacedNotAnnounced(t *testing.T) {
	sink := runScripted(t,
		Config{Interval: time.Millisecond, DedupSize: 10},
		[][]model.Transaction{
			{
				paidTx("FT1"),
				{RefNo: "FT2", CreditAmount: "40000", Description: "VNDEV AB12C3"},
				{RefNo: "FT3", CreditAmount: "50000", Description: "no marker here"},
			},
		},
		[]error{nil},
	)

	require.Len(t, sink.verdicts, 3)
	assert.Equal(t, model.ReasonAmountMismatch, sink.verdicts[1].Reason)
	assert.Equal(t, model.ReasonMissingToken, sink.verdicts[2].Reason)
	assert.Equal(t, []string{"FT1"}, sink.paidRefNos())
}

func TestSingleShotReportsEveryPayment(t *testing.T) {
	// Interval <= 0 means one pass and no dedup window: even the same
	// refNo appearing twice in the batch is reported twice.
	ctx := context.Background()
	source := &scriptedSource{
		cancel:  func() {},
		batches: [][]model.Transaction{{paidTx("FT1"), paidTx("FT1")}},
		errs:    []error{nil},
	}
	sink := &recordingSink{}

	err := New(source, sink, testExpected, Config{Interval: 0}).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls)
	assert.Equal(t, []string{"FT1", "FT1"}, sink.paidRefNos())
}

func TestRunOnceReturnsFeedError(t *testing.T) {
	fetchErr := &feed.Error{Kind: feed.KindTransport}
	source := &scriptedSource{
		cancel:  func() {},
		batches: [][]model.Transaction{nil},
		errs:    []error{fetchErr},
	}
	sink := &recordingSink{}

	err := New(source, sink, testExpected, Config{}).RunOnce(context.Background())
	assert.ErrorIs(t, err, fetchErr)
	assert.Len(t, sink.failures, 1)
}

func TestRunStopsPromptlyDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := &scriptedSource{
		cancel:  func() {},
		batches: [][]model.Transaction{{}},
		errs:    []error{nil},
	}
	sink := &recordingSink{}

	// A long interval forces the loop into its inter-cycle sleep.
	w := New(source, sink, testExpected, Config{Interval: time.Minute})

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	canceledAt := time.Now()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.Less(t, time.Since(canceledAt), time.Second,
			"loop must exit well before the sleep elapses")
	case <-time.After(2 * time.Second):
		t.Fatal("loop ignored cancellation during sleep")
	}
}
