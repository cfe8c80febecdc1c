package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/danhodge/harvest"
	"github.com/danhodge/harvest/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	date    string
	account string
	offline bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "build the valuation and rebalancing report" }
func (*reportCmd) Usage() string {
	return `harvest report [-d <date>] [-a <account>] [-offline]

  Reconciles the event log as of the cutoff date, backfills prices from the
  quote service, prints the report, and exports it as CSV. A FileWritten
  notification is appended to the log. With -offline no quotes are fetched;
  only prices already in the log are used.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Cutoff date for the report (defaults to today).")
	f.StringVar(&c.account, "a", "", "Restrict the report to one account (defaults to all).")
	f.BoolVar(&c.offline, "offline", false, "Skip quote fetching.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	date, err := parseDateFlag(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	h := NewHandler()
	if c.offline {
		h.Fetch = nil
	}
	report, rows, path, err := h.Report(harvest.RunReport{Date: date, Account: c.account})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	md := renderer.ReportMarkdown(rows, date) + renderer.IncompleteMarkdown(report)
	printMarkdown(md)
	if path != "" {
		fmt.Printf("Report written to %s\n", path)
	}
	return subcommands.ExitSuccess
}
