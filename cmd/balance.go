package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/danhodge/harvest"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type balanceCmd struct {
	date    string
	account string
	symbol  string
	cash    bool
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "record the shares of an asset held in an account" }
func (*balanceCmd) Usage() string {
	return `harvest balance -a <account> -s <symbol> [-d <date>] [-cash] <amount>

  Records how many shares or units of an asset an account holds as of a
  date. The amount is an exact decimal; use -cash for the cash position,
  where the amount is dollars and the unit price is 1.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the balance (defaults to today).")
	f.StringVar(&c.account, "a", "", "Account holding the asset.")
	f.StringVar(&c.symbol, "s", "", "Asset symbol.")
	f.BoolVar(&c.cash, "cash", false, "Record a cash balance instead of an investment.")
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.symbol == "" || f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	date, err := parseDateFlag(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	amount, err := decimal.NewFromString(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	asset := harvest.NewInvestment(c.symbol)
	if c.cash {
		asset = harvest.NewCash(c.symbol)
	}
	evt := harvest.NewSetBalance(c.account, asset, date, harvest.Q(amount))
	if err := NewHandler().Handle(evt); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded balance of %s %s in %s as of %s\n", amount, asset, c.account, date)
	return subcommands.ExitSuccess
}
