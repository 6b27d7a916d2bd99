package main

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vndev/paywatch/internal/cli"
)

func expectedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expected",
		Short: "Show the expected payments the watcher would match against",
		Long: `Load and normalize the expected-payments file exactly the way watch and
check do, then print the resulting table. Useful for spotting entries
that were dropped during normalization (blank codes, non-integer or
non-positive amounts).`,
		RunE: runExpected,
	}

	cmd.Flags().String("expected", "", "expected payments file (config: expected.path, default: expected.json)")

	return cmd
}

func runExpected(cmd *cobra.Command, _ []string) error {
	table := loadExpected(cmd)
	out := cmd.OutOrStdout()

	if len(table) == 0 {
		fmt.Fprintln(out, cli.FormatWarning("no expected payments loaded"))
		return nil
	}

	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	fmt.Fprintln(out, cli.FormatTitle("Expected payments"))
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		cli.TableHeaderStyle.Width(10).Render("CODE"),
		cli.TableHeaderStyle.Width(14).Render("AMOUNT"),
	)
	fmt.Fprintln(out, header)
	for _, code := range codes {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			cli.TableCellStyle.Width(10).Render(code),
			cli.TableCellStyle.Width(14).Render(fmt.Sprintf("%d", table[code])),
		)
		fmt.Fprintln(out, row)
	}
	fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d expected payment(s)", len(table))))

	return nil
}
