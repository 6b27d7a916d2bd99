package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vndev/paywatch/internal/feed"
	"github.com/vndev/paywatch/internal/model"
)

// ConsoleSink renders verdicts and feed failures as styled status lines.
// It implements service.VerdictSink.
type ConsoleSink struct {
	writer io.Writer
}

// NewConsoleSink creates a sink writing to w, defaulting to stdout.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleSink{writer: w}
}

// Paid announces a freshly observed settled payment.
func (s *ConsoleSink) Paid(v model.Verdict) {
	s.println(FormatSuccess(fmt.Sprintf("paid: refNo=%s code=%s amount=%d", v.RefNo, v.Code, v.Amount)))
}

// Verdict prints one diagnostic line per rejected transaction. Paid
// verdicts are silent here; announcements go through Paid so dedup
// suppression applies.
func (s *ConsoleSink) Verdict(v model.Verdict) {
	if v.Paid() {
		return
	}

	switch v.Reason {
	case model.ReasonNoRefNo:
		s.println(FormatWarning("skipping transaction without refNo"))
	case model.ReasonNotInboundCredit:
		s.println(FormatInfo(fmt.Sprintf("not an inbound credit: refNo=%s debit=%d credit=%d",
			v.RefNo, v.Debit, v.Credit)))
	case model.ReasonMissingToken:
		s.println(FormatInfo(fmt.Sprintf("no payment marker in description: refNo=%s desc=%q",
			v.RefNo, v.Description)))
	case model.ReasonInvalidCode:
		s.println(FormatWarning(fmt.Sprintf("marker present but code is invalid: refNo=%s code=%q",
			v.RefNo, v.Code)))
	case model.ReasonCodeNotExpected:
		s.println(FormatWarning(fmt.Sprintf("code has no expected payment: refNo=%s code=%s credit=%d",
			v.RefNo, v.Code, v.Credit)))
	case model.ReasonAmountMismatch:
		s.println(FormatWarning(fmt.Sprintf("amount mismatch: refNo=%s code=%s expected=%d actual=%d",
			v.RefNo, v.Code, v.Expected, v.Actual)))
	case model.ReasonException:
		s.println(FormatError(fmt.Sprintf("error while processing transaction: refNo=%s error=%s",
			v.RefNo, v.Err)))
	default:
		s.println(FormatWarning(fmt.Sprintf("rejected: refNo=%s reason=%s", v.RefNo, v.Reason)))
	}
}

// FeedFailure reports a fetch cycle that produced no batch. Decode
// failures carry a body preview worth showing for diagnostics.
func (s *ConsoleSink) FeedFailure(err error) {
	s.println(FormatError(err.Error()))

	var feedErr *feed.Error
	if errors.As(err, &feedErr) && feedErr.Kind == feed.KindDecode && feedErr.Preview != "" {
		s.println(SubtleStyle.Render("  response preview: " + feedErr.Preview))
	}
}

func (s *ConsoleSink) println(line string) {
	// Best effort; a broken pipe on shutdown is not worth surfacing.
	_, _ = fmt.Fprintln(s.writer, line)
}
