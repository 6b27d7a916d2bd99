package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vndev/paywatch/internal/common"
	"github.com/vndev/paywatch/internal/expected"
	"github.com/vndev/paywatch/internal/model"
)

// addFeedFlags registers the flags shared by commands that talk to the
// feed. Values resolve flag-first, then config/env, per resolveString.
func addFeedFlags(cmd *cobra.Command) {
	cmd.Flags().String("url", "", "transaction history endpoint (config: feed.url)")
	cmd.Flags().String("expected", "", "expected payments file (config: expected.path, default: expected.json)")
}

// resolveString prefers an explicitly set flag over the viper value.
// Shared keys like feed.url cannot be flag-bound per command because the
// last BindPFlag would win across commands.
func resolveString(cmd *cobra.Command, flag, key, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

// feedURL resolves the endpoint or returns a user-facing error.
func feedURL(cmd *cobra.Command) (string, error) {
	url := resolveString(cmd, "url", "feed.url", "")
	if url == "" {
		return "", common.NewUserError(
			"feed URL is required (--url, PAYWATCH_FEED_URL, or feed.url in config)",
			common.ErrMissingConfig)
	}
	return url, nil
}

// loadExpected resolves the table path and loads it, warning when the
// result is empty since nothing could ever match.
func loadExpected(cmd *cobra.Command) model.ExpectedPayments {
	path := resolveString(cmd, "expected", "expected.path", "expected.json")
	table := expected.Load(path)
	if len(table) == 0 {
		slog.Warn("expected payments table is empty; no transaction can match", "path", path)
	}
	return table
}
