package model

// ExpectedPayments maps an uppercase payment code to the amount that
// settles it. The table is loaded once at startup and never mutated.
type ExpectedPayments map[string]int64

// AmountFor returns the expected amount for a code. A code that is absent
// or carries a non-positive amount returns 0: a zero or negative entry is
// "no expectation" and never matches, indistinguishable from an unknown
// code.
func (e ExpectedPayments) AmountFor(code string) int64 {
	amount, ok := e[code]
	if !ok || amount <= 0 {
		return 0
	}
	return amount
}
