// Package renderer turns reports and event logs into markdown for terminal
// display.
package renderer

import (
	"fmt"
	"strings"

	"github.com/danhodge/harvest"
)

// ReportMarkdown renders the report table as a markdown document. The
// Corrections row, when present, carries explicit signs so the direction of
// each rebalancing move is visible at a glance.
func ReportMarkdown(rows [][]harvest.Cell, asOf harvest.Date) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio Report as of %s\n\n", asOf)
	if len(rows) == 0 {
		fmt.Fprintln(&b, "No holdings to report.")
		return b.String()
	}

	for i, row := range rows {
		signed := len(row) > 0 && row[0] == "Corrections"
		b.WriteString("|")
		for _, c := range row {
			b.WriteString(" ")
			if m, ok := c.(harvest.Money); ok && signed {
				b.WriteString(m.SignedString())
			} else {
				b.WriteString(harvest.CellString(c))
			}
			b.WriteString(" |")
		}
		b.WriteString("\n")
		if i == 0 {
			b.WriteString("|:---|:---|")
			for range row[2:] {
				b.WriteString("---:|")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// IncompleteMarkdown lists the assets excluded from a report for lack of a
// price or allocation. It renders nothing when the report is complete.
func IncompleteMarkdown(report *harvest.Report) string {
	if len(report.IncompleteAssets) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n## Incomplete Holdings\n\n")
	for _, a := range report.IncompleteAssets {
		fmt.Fprintf(&b, "- %s (%s)\n", a.Identifier, a.Kind)
	}
	return b.String()
}

// EventsMarkdown renders the event log as a markdown table, one line per
// event in log order.
func EventsMarkdown(events []harvest.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Event Log\n\n")
	fmt.Fprintln(&b, "| Type | Date | Account | Asset | Detail |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|:---|")
	for _, e := range events {
		kind, date, account, asset, detail := describe(e)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", kind, date, account, asset, detail)
	}
	return b.String()
}

func describe(e harvest.Event) (kind, date, account, asset, detail string) {
	kind = string(e.What())
	if !e.When().IsZero() {
		date = e.When().String()
	}
	switch evt := e.(type) {
	case harvest.SetBalance:
		account = evt.Account
		asset = evt.Asset.Identifier
		detail = evt.Amount.String() + " units"
	case harvest.SetPrice:
		asset = evt.Asset.Identifier
		detail = evt.Amount.String() + " per unit"
	case harvest.SetAllocation:
		asset = evt.Asset.Identifier
		detail = allocationDetail(evt.Allocation)
	case harvest.SetTargetAllocation:
		detail = allocationDetail(evt.Allocation)
	case harvest.FileWritten:
		detail = evt.Path
		if len(evt.IncompleteSymbols) > 0 {
			detail += " (incomplete: " + strings.Join(evt.IncompleteSymbols, ", ") + ")"
		}
	case harvest.UnknownEvent:
		detail = evt.Raw
	}
	return
}

func allocationDetail(a harvest.Allocation) string {
	return fmt.Sprintf("stock %s%% bond %s%% cash %s%% other %s%%",
		a.Stock(), a.Bond(), a.Cash(), a.Other())
}
