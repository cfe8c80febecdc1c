package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/danhodge/harvest"
	"github.com/danhodge/harvest/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct {
	offline bool
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `harvest assist [<initial prompt>]

  Starts an interactive session with the AI assistant. The assistant can read
  the event log, run reports and search for market information. Requires a
  Gemini API key in the environment.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Skip quote fetching when the assistant runs reports.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	var fetch harvest.Fetcher
	if !c.offline {
		fetch = harvest.YahooFetcher()
	}
	analyst := agent.NewAnalyst()
	accountant := agent.NewAccountant(OpenLog(), fetch)
	a := agent.New(os.Stdout, os.Stdin, analyst, accountant)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
