package harvest

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cell is one report table cell. It holds a string label, a Quantity, a
// Money, or a bare decimal.Decimal percentage; CellString renders any of
// them. A blank cell is the empty string.
type Cell any

// ReportHeader lists the 16 report columns in order. Consumers of the
// exported file key off column position, so the order and count are part of
// the format.
var ReportHeader = []Cell{
	"Account", "Symbol", "Shares", "As Of", "NAV", "As Of",
	"Stock", "Stock-Large", "Stock-Mid/Small", "Stock-Intl",
	"Bond", "Bond-US", "Bond-Intl", "Cash", "Other", "Total",
}

// Rows renders the report as a rectangular table: header, one row per
// record, a Totals row, a Percentages row, and, when a target allocation is
// set, Target Percentages and Corrections rows. An empty report yields no
// rows at all, not a lone header.
//
// Percentages and corrections divide by the grand total, so a portfolio that
// nets to zero returns ErrDivisionByZero instead of a table.
func (r *Report) Rows() ([][]Cell, error) {
	if len(r.Records) == 0 {
		return nil, nil
	}

	rows := [][]Cell{ReportHeader}
	var totals [9]Money
	var grand Money
	for _, rec := range r.Records {
		total := rec.Total()
		subtotals := rec.Subtotals()
		row := []Cell{
			rec.Account,
			rec.Asset.Identifier,
			rec.Amount,
			rec.ReportDate.String(),
			rec.Price,
			rec.PriceDate.String(),
		}
		for i, sub := range subtotals {
			totals[i] = totals[i].Add(sub)
			row = append(row, sub)
		}
		row = append(row, total)
		grand = grand.Add(total)
		rows = append(rows, row)
	}

	totalsRow := labelRow("Totals")
	for _, t := range totals {
		totalsRow = append(totalsRow, t)
	}
	totalsRow = append(totalsRow, grand)
	rows = append(rows, totalsRow)

	if grand.IsZero() {
		return nil, fmt.Errorf("computing percentages of a zero grand total: %w", ErrDivisionByZero)
	}
	var pcts [9]decimal.Decimal
	pctRow := labelRow("Percentages")
	for i, t := range totals {
		pcts[i] = t.Decimal().Mul(hundred).Div(grand.Decimal()).RoundBank(2)
		pctRow = append(pctRow, pcts[i])
	}
	pctRow = append(pctRow, "")
	rows = append(rows, pctRow)

	if r.TargetAllocation != nil {
		targets := r.TargetAllocation.Percentages()
		targetRow := labelRow("Target Percentages")
		for _, t := range targets {
			targetRow = append(targetRow, t)
		}
		targetRow = append(targetRow, "")
		rows = append(rows, targetRow)

		// grand × (target% − current%)/100, the signed dollars to move
		// into or out of each category. The division by 100 is a shift,
		// keeping the corrections exact.
		correctionsRow := labelRow("Corrections")
		for i, t := range targets {
			c := Money{value: grand.Decimal().Mul(t.Sub(pcts[i])).Shift(-2)}
			correctionsRow = append(correctionsRow, c)
		}
		correctionsRow = append(correctionsRow, "")
		rows = append(rows, correctionsRow)
	}
	return rows, nil
}

func labelRow(label string) []Cell {
	return []Cell{label, "", "", "", "", ""}
}

// CellString renders a cell for delimited-text output.
func CellString(c Cell) string {
	switch v := c.(type) {
	case string:
		return v
	case Money:
		return v.String()
	case Quantity:
		return v.String()
	case decimal.Decimal:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
