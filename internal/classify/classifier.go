// Package classify decides whether a bank transaction settles one of the
// expected payments.
package classify

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vndev/paywatch/internal/model"
)

// Transfers correlate to expected payments through a six-character
// alphanumeric code placed immediately after this token in the transfer
// description.
const (
	CodeToken  = "VNDEV"
	CodeLength = 6
)

// Classify evaluates one transaction against the expected-payments table
// and returns exactly one verdict. It is a pure function of its inputs:
// the same transaction and table always yield the same verdict. A panic
// while evaluating a single transaction is recovered into an "exception"
// rejection so one malformed row can never abort the rest of a batch.
func Classify(tx model.Transaction, expected model.ExpectedPayments) (verdict model.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			verdict = model.Verdict{
				RefNo:       tx.RefNo,
				Status:      model.StatusRejected,
				Reason:      model.ReasonException,
				Description: tx.Description,
				Err:         fmt.Sprint(r),
			}
		}
	}()

	if tx.RefNo == "" {
		return model.Verdict{
			Status: model.StatusRejected,
			Reason: model.ReasonNoRefNo,
		}
	}

	debit := ParseAmount(string(tx.DebitAmount))
	credit := ParseAmount(string(tx.CreditAmount))
	if debit != 0 || credit <= 0 {
		return model.Verdict{
			RefNo:  tx.RefNo,
			Status: model.StatusRejected,
			Reason: model.ReasonNotInboundCredit,
			Debit:  debit,
			Credit: credit,
		}
	}

	desc := strings.ToUpper(strings.TrimSpace(tx.Description))
	words := strings.Fields(desc)
	idx := slices.Index(words, CodeToken)
	if idx < 0 {
		return model.Verdict{
			RefNo:       tx.RefNo,
			Status:      model.StatusRejected,
			Reason:      model.ReasonMissingToken,
			Description: desc,
		}
	}

	var code string
	if idx+1 < len(words) {
		code = words[idx+1]
	}
	if !validCode(code) {
		return model.Verdict{
			RefNo:  tx.RefNo,
			Status: model.StatusRejected,
			Reason: model.ReasonInvalidCode,
			Code:   code,
		}
	}

	want := expected.AmountFor(code)
	if want <= 0 {
		return model.Verdict{
			RefNo:  tx.RefNo,
			Status: model.StatusRejected,
			Reason: model.ReasonCodeNotExpected,
			Code:   code,
			Credit: credit,
		}
	}

	if credit == want {
		return model.Verdict{
			RefNo:  tx.RefNo,
			Status: model.StatusPaid,
			Code:   code,
			Amount: credit,
		}
	}

	return model.Verdict{
		RefNo:    tx.RefNo,
		Status:   model.StatusRejected,
		Reason:   model.ReasonAmountMismatch,
		Code:     code,
		Expected: want,
		Actual:   credit,
	}
}

// validCode requires exactly CodeLength alphanumeric characters.
func validCode(code string) bool {
	if utf8.RuneCountInString(code) != CodeLength {
		return false
	}
	for _, r := range code {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
