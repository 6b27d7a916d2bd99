package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vndev/paywatch/internal/cli"
	"github.com/vndev/paywatch/internal/dedup"
	"github.com/vndev/paywatch/internal/feed"
	"github.com/vndev/paywatch/internal/watcher"
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Continuously poll the feed and announce settled payments",
		Long: `Poll the transaction-history endpoint on a fixed cadence, classify every
returned transaction, and announce each settled payment once. Repeat
sightings of the same refNo are suppressed within the dedup window.

An interval of 0 or less degrades to a single pass, like the check command.

Examples:
  paywatch watch --url https://tracker.example.com/history
  paywatch watch --interval 5 --dedup 500
  PAYWATCH_FEED_URL=https://tracker.example.com/history paywatch watch`,
		RunE: runWatch,
	}

	addFeedFlags(cmd)
	cmd.Flags().Int("interval", 10, "seconds between poll starts; <= 0 runs a single pass")
	cmd.Flags().Int("dedup", dedup.DefaultCapacity, "how many announced refNos to remember")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("watch.interval", cmd.Flags().Lookup("interval"))
	_ = viper.BindPFlag("watch.dedup_size", cmd.Flags().Lookup("dedup"))

	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	url, err := feedURL(cmd)
	if err != nil {
		return err
	}
	table := loadExpected(cmd)

	handler := cli.NewInterruptHandler(cmd.OutOrStdout())
	ctx := handler.HandleInterrupts(cmd.Context())

	w := watcher.New(
		feed.NewClient(url),
		cli.NewConsoleSink(cmd.OutOrStdout()),
		table,
		watcher.Config{
			Interval:  time.Duration(viper.GetInt("watch.interval")) * time.Second,
			DedupSize: viper.GetInt("watch.dedup_size"),
		},
	)

	return w.Run(ctx)
}
