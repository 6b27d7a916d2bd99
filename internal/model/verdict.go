package model

// VerdictStatus is the top-level outcome of classifying a transaction.
type VerdictStatus string

// Verdict statuses.
const (
	StatusPaid     VerdictStatus = "paid"
	StatusRejected VerdictStatus = "rejected"
)

// RejectReason says why a transaction did not settle an expected payment.
// Every rejection carries exactly one reason so failures stay diagnosable.
type RejectReason string

// Rejection reasons, in the order the checks run.
const (
	ReasonNoRefNo          RejectReason = "no_refno"
	ReasonNotInboundCredit RejectReason = "not_inbound_credit"
	ReasonMissingToken     RejectReason = "missing_vndev_token"
	ReasonInvalidCode      RejectReason = "invalid_code"
	ReasonCodeNotExpected  RejectReason = "code_not_expected"
	ReasonAmountMismatch   RejectReason = "amount_mismatch"
	ReasonException        RejectReason = "exception"
)

// Verdict is the result of classifying one transaction. Exactly one verdict
// is produced per input transaction; verdicts are never retried or merged.
// The diagnostic fields are populated depending on the reason: Debit/Credit
// for not_inbound_credit, Expected/Actual for amount_mismatch, Description
// for missing_vndev_token, Err for exception.
type Verdict struct {
	RefNo       string
	Status      VerdictStatus
	Reason      RejectReason
	Code        string
	Amount      int64
	Debit       int64
	Credit      int64
	Expected    int64
	Actual      int64
	Description string
	Err         string
}

// Paid reports whether the verdict settles an expected payment.
func (v Verdict) Paid() bool {
	return v.Status == StatusPaid
}
