// Package expected loads the expected-payments table from disk.
package expected

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/vndev/paywatch/internal/config"
	"github.com/vndev/paywatch/internal/model"
)

// Load reads the JSON object at path and normalizes it into an
// ExpectedPayments table. Loading is deliberately forgiving: a missing
// file, an unreadable file, or content that is not a JSON object all
// degrade to an empty table (with a warning) instead of failing startup.
// Keys are trimmed and uppercased; blank keys and entries whose amount is
// not a positive integer are dropped.
func Load(path string) model.ExpectedPayments {
	table := model.ExpectedPayments{}

	data, err := os.ReadFile(config.ExpandPath(path))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("could not read expected payments file", "path", path, "error", err)
		}
		return table
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		slog.Warn("expected payments file is not a JSON object, using an empty table",
			"path", path, "error", err)
		return table
	}

	for key, value := range raw {
		code := strings.ToUpper(strings.TrimSpace(key))
		if code == "" {
			continue
		}
		amount, ok := coerceAmount(value)
		if !ok {
			slog.Warn("skipping expected payment with non-integer amount",
				"code", code, "amount", value)
			continue
		}
		if amount <= 0 {
			slog.Warn("skipping expected payment with non-positive amount",
				"code", code, "amount", amount)
			continue
		}
		table[code] = amount
	}

	return table
}

// coerceAmount accepts JSON numbers and numeric strings.
func coerceAmount(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		parsed, err := json.Number(strings.TrimSpace(v)).Int64()
		return parsed, err == nil
	default:
		return 0, false
	}
}
