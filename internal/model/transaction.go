// Package model holds the core types shared across the watcher.
package model

import (
	"bytes"
	"encoding/json"
)

// Transaction is a single row of the bank history feed. RefNo is the only
// identity the feed provides; everything else is free-form text.
type Transaction struct {
	RefNo        string    `json:"refNo"`
	DebitAmount  RawAmount `json:"debitAmount"`
	CreditAmount RawAmount `json:"creditAmount"`
	Description  string    `json:"addDescription"`
}

// RawAmount carries a feed amount as uninterpreted text. Most trackers send
// amounts as strings with grouping separators, but some gateways re-emit
// them as bare JSON numbers; both forms decode to the raw text and are
// normalized later by classify.ParseAmount.
type RawAmount string

// UnmarshalJSON accepts a JSON string, number, or null.
func (a *RawAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = RawAmount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = RawAmount(n.String())
	return nil
}
