package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/danhodge/harvest"
	"github.com/google/subcommands"
)

type priceCmd struct {
	date   string
	symbol string
	fetch  bool
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "record the per-unit price of an asset" }
func (*priceCmd) Usage() string {
	return `harvest price -s <symbol> [-d <date>] (<amount> | -fetch)

  Records the per-unit value of an asset as of a date. The price applies to
  every account holding the asset. With -fetch the latest quote at-or-before
  the date is looked up instead of given on the command line.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the price (defaults to today).")
	f.StringVar(&c.symbol, "s", "", "Asset symbol.")
	f.BoolVar(&c.fetch, "fetch", false, "Fetch the latest quote instead of passing an amount.")
}

func (c *priceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	wantArgs := 1
	if c.fetch {
		wantArgs = 0
	}
	if c.symbol == "" || f.NArg() != wantArgs {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	date, err := parseDateFlag(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	asset := harvest.NewInvestment(c.symbol)
	var evt harvest.SetPrice
	if c.fetch {
		quote, err := harvest.YahooFetcher()(asset, date)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		evt = harvest.NewSetPrice(asset, quote.Date, quote.Price)
	} else {
		amount, err := harvest.ParseMoney(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", f.Arg(0), err)
			return subcommands.ExitFailure
		}
		evt = harvest.NewSetPrice(asset, date, amount)
	}

	if err := NewHandler().Handle(evt); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded price of %s for %s as of %s\n", evt.Amount, asset, evt.Date)
	return subcommands.ExitSuccess
}
