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

type logCmd struct {
	tail int
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "display the event log" }
func (*logCmd) Usage() string {
	return `harvest log [-tail <n>]

  Displays the recorded events in log order, including any lines that failed
  to parse.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tail, "tail", 0, "Show only the last n events.")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	events, err := OpenLog().ReadAll()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.tail > 0 && len(events) > c.tail {
		events = events[len(events)-c.tail:]
	}
	printMarkdown(renderer.EventsMarkdown(events))
	return subcommands.ExitSuccess
}

type fmtCmd struct{}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "rewrite the event log in canonical form" }
func (*fmtCmd) Usage() string {
	return `harvest fmt

  Rewrites the event log so every parseable line uses the canonical field
  order and formatting. Lines that cannot be parsed are preserved verbatim.
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l := OpenLog()
	events, err := l.ReadAll()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := l.Rewrite(events); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Rewrote %d events to %s\n", countKnown(events), l.Path)
	return subcommands.ExitSuccess
}

func countKnown(events []harvest.Event) int {
	n := 0
	for _, e := range events {
		if e.What() != harvest.EvtUnknown {
			n++
		}
	}
	return n
}
