// Package cmd implements the CLI application to track and rebalance a
// portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/danhodge/harvest"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&balanceCmd{}, "events")
	c.Register(&priceCmd{}, "events")
	c.Register(&allocationCmd{}, "events")
	c.Register(&targetCmd{}, "events")

	c.Register(&reportCmd{}, "reports")
	c.Register(&logCmd{}, "reports")

	c.Register(&fmtCmd{}, "maintenance")
	c.Register(&topicCmd{}, "maintenance")
	c.Register(&assistCmd{}, "maintenance")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var eventsFile = flag.String("events-file", "", "Path to the events file (JSONL format).\n If missing it defaults to harvest.<HARVEST_ENV>.jsonl, or harvest.jsonl when HARVEST_ENV is unset.")

// OpenLog returns the event log selected by the -events-file flag and the
// HARVEST_ENV environment variable.
func OpenLog() *harvest.EventLog {
	path := *eventsFile
	if path == "" {
		if env := os.Getenv("HARVEST_ENV"); env != "" {
			path = fmt.Sprintf("harvest.%s.jsonl", env)
		} else {
			path = "harvest.jsonl"
		}
	}
	return harvest.NewEventLog(path)
}

// NewHandler returns an event handler over the app's log, fetching quotes
// from Yahoo, printing notices to stdout.
func NewHandler() *harvest.Handler {
	return &harvest.Handler{Log: OpenLog(), Fetch: harvest.YahooFetcher(), Out: os.Stdout}
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// parseDateFlag parses a -d flag value, defaulting to today when empty.
func parseDateFlag(s string) (harvest.Date, error) {
	if s == "" {
		return harvest.Today(), nil
	}
	return harvest.ParseDate(s)
}
