package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/danhodge/harvest"
	"github.com/google/subcommands"
)

// allocationFlags holds the six category percentages shared by the
// allocation and target subcommands.
type allocationFlags struct {
	stockLarge    string
	stockMidSmall string
	stockIntl     string
	bondUS        string
	bondIntl      string
	cash          string
}

func (a *allocationFlags) register(f *flag.FlagSet) {
	f.StringVar(&a.stockLarge, "stock-large", "0", "Large-cap stock percentage.")
	f.StringVar(&a.stockMidSmall, "stock-mid-small", "0", "Mid/small-cap stock percentage.")
	f.StringVar(&a.stockIntl, "stock-intl", "0", "International stock percentage.")
	f.StringVar(&a.bondUS, "bond-us", "0", "US bond percentage.")
	f.StringVar(&a.bondIntl, "bond-intl", "0", "International bond percentage.")
	f.StringVar(&a.cash, "cash", "0", "Cash percentage.")
}

func (a *allocationFlags) parse() (harvest.Allocation, error) {
	return harvest.ParseAllocation(a.stockLarge, a.stockMidSmall, a.stockIntl, a.bondUS, a.bondIntl, a.cash)
}

type allocationCmd struct {
	date   string
	symbol string
	alloc  allocationFlags
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "record the category breakdown of an asset" }
func (*allocationCmd) Usage() string {
	return `harvest allocation -s <symbol> [-d <date>] [category flags]

  Records how an asset's value splits across the six input categories. The
  breakdown applies to every account holding the asset. Whatever the six
  percentages leave short of 100 lands in the derived Other category.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the allocation (defaults to today).")
	f.StringVar(&c.symbol, "s", "", "Asset symbol.")
	c.alloc.register(f)
}

func (c *allocationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	date, err := parseDateFlag(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	allocation, err := c.alloc.parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing allocation: %v\n", err)
		return subcommands.ExitFailure
	}

	asset := harvest.NewInvestment(c.symbol)
	evt := harvest.NewSetAllocation(asset, date, allocation)
	if err := NewHandler().Handle(evt); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded allocation for %s as of %s (other %s%%)\n", asset, date, allocation.Other())
	return subcommands.ExitSuccess
}

type targetCmd struct {
	date  string
	alloc allocationFlags
}

func (*targetCmd) Name() string     { return "target" }
func (*targetCmd) Synopsis() string { return "record the portfolio-wide target allocation" }
func (*targetCmd) Usage() string {
	return `harvest target [-d <date>] [category flags]

  Records the single portfolio-wide target allocation used to compute
  rebalancing corrections. The most recent target at-or-before a report's
  cutoff date is the one the report uses.
`
}

func (c *targetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the target (defaults to today).")
	c.alloc.register(f)
}

func (c *targetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	date, err := parseDateFlag(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	allocation, err := c.alloc.parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing allocation: %v\n", err)
		return subcommands.ExitFailure
	}

	evt := harvest.NewSetTargetAllocation(date, allocation)
	if err := NewHandler().Handle(evt); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded target allocation as of %s (other %s%%)\n", date, allocation.Other())
	return subcommands.ExitSuccess
}
