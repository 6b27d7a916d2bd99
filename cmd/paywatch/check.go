package main

import (
	"github.com/spf13/cobra"

	"github.com/vndev/paywatch/internal/cli"
	"github.com/vndev/paywatch/internal/common"
	"github.com/vndev/paywatch/internal/feed"
	"github.com/vndev/paywatch/internal/service"
	"github.com/vndev/paywatch/internal/watcher"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a single fetch-and-classify pass",
		Long: `Fetch the history once, classify every transaction, and report all
settled payments. No dedup window applies: every qualifying payment in
the batch is reported.

Transient feed failures (timeouts, transport errors) can be retried with
--retries; bad statuses and invalid payloads fail immediately.

Examples:
  paywatch check --url https://tracker.example.com/history
  paywatch check --retries 3`,
		RunE: runCheck,
	}

	addFeedFlags(cmd)
	cmd.Flags().Int("retries", 0, "retry transient feed failures this many times")

	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	url, err := feedURL(cmd)
	if err != nil {
		return err
	}
	table := loadExpected(cmd)
	retries, _ := cmd.Flags().GetInt("retries")

	handler := cli.NewInterruptHandler(cmd.OutOrStdout())
	ctx := handler.HandleInterrupts(cmd.Context())

	w := watcher.New(
		feed.NewClient(url),
		cli.NewConsoleSink(cmd.OutOrStdout()),
		table,
		watcher.Config{},
	)

	if retries <= 0 {
		// Feed failures were already reported to the sink; a one-shot
		// run still exits non-zero so scripts can tell.
		return w.RunOnce(ctx)
	}

	return common.WithRetry(ctx, func() error {
		return w.RunOnce(ctx)
	}, service.RetryOptions{MaxAttempts: retries + 1})
}
