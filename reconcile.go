package harvest

import "sort"

// ReportRecord is one fully joined holding: the latest balance for an
// (account, asset) pair matched with the latest price and allocation known
// for that asset as of the cutoff.
type ReportRecord struct {
	Account    string
	Asset      Asset
	ReportDate Date
	Amount     Quantity
	Price      Money
	PriceDate  Date
	Allocation Allocation
}

// Total returns the holding's value, price times quantity.
func (r ReportRecord) Total() Money { return r.Price.Mul(r.Amount) }

// Subtotals returns the holding's value split across the nine report
// categories.
func (r ReportRecord) Subtotals() [9]Money { return r.Allocation.Subtotals(r.Total()) }

// Report is the reconciled view of the portfolio as of a cutoff. It is built
// fresh on every request and never persisted.
type Report struct {
	Records          []ReportRecord
	IncompleteAssets []Asset
	TargetAllocation *Allocation
}

// join accumulates the facts matched so far for one (account, asset) pair.
// Pointer fields distinguish "not seen yet" from any legitimate value.
type join struct {
	balanceDate Date
	amount      Quantity
	price       *SetPrice
	allocation  *SetAllocation
}

type joinKey struct {
	account string
	asset   Asset
}

// Reconcile folds events into a Report as of cutoff. An empty account means
// all accounts. The function is pure: same events, cutoff and account always
// yield the same Report.
//
// Events are filtered by the cutoff, then walked in (kind, date) order with
// log order breaking ties. Balances create join entries; prices and
// allocations attach to every entry already holding the asset, in any
// account. A later balance overwrites only the quantity, keeping facts
// already joined to the holding. Entries still missing a price or an
// allocation are excluded from Records and surface in IncompleteAssets.
func Reconcile(events []Event, cutoff Date, account string) *Report {
	matched := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Matches(cutoff, account) {
			matched = append(matched, e)
		}
	}
	matched = SortEvents(matched)

	joins := make(map[joinKey]*join)
	var target *Allocation
	for _, e := range matched {
		switch evt := e.(type) {
		case SetBalance:
			key := joinKey{account: evt.Account, asset: evt.Asset}
			if j, ok := joins[key]; ok {
				j.balanceDate = evt.Date
				j.amount = evt.Amount
			} else {
				joins[key] = &join{balanceDate: evt.Date, amount: evt.Amount}
			}
		case SetPrice:
			for key, j := range joins {
				if key.asset == evt.Asset {
					price := evt
					j.price = &price
				}
			}
		case SetAllocation:
			for key, j := range joins {
				if key.asset == evt.Asset {
					allocation := evt
					j.allocation = &allocation
				}
			}
		case SetTargetAllocation:
			a := evt.Allocation
			target = &a
		}
	}

	report := &Report{TargetAllocation: target}
	incomplete := make(map[Asset]bool)
	for key, j := range joins {
		if j.price == nil || j.allocation == nil {
			incomplete[key.asset] = true
			continue
		}
		report.Records = append(report.Records, ReportRecord{
			Account:    key.account,
			Asset:      key.asset,
			ReportDate: j.balanceDate,
			Amount:     j.amount,
			Price:      j.price.Amount,
			PriceDate:  j.price.Date,
			Allocation: j.allocation.Allocation,
		})
	}
	sort.Slice(report.Records, func(i, k int) bool {
		a, b := report.Records[i], report.Records[k]
		if a.Account != b.Account {
			return a.Account < b.Account
		}
		return a.Asset.Identifier < b.Asset.Identifier
	})
	for asset := range incomplete {
		report.IncompleteAssets = append(report.IncompleteAssets, asset)
	}
	sort.Slice(report.IncompleteAssets, func(i, k int) bool {
		return report.IncompleteAssets[i].Identifier < report.IncompleteAssets[k].Identifier
	})
	return report
}

// IncompleteSymbols returns the identifiers of the incomplete assets, in
// order.
func (r *Report) IncompleteSymbols() []string {
	symbols := make([]string, len(r.IncompleteAssets))
	for i, a := range r.IncompleteAssets {
		symbols[i] = a.Identifier
	}
	return symbols
}

// Assets returns the distinct assets across the report's records, sorted by
// identifier.
func (r *Report) Assets() []Asset {
	seen := make(map[Asset]bool)
	var assets []Asset
	for _, rec := range r.Records {
		if !seen[rec.Asset] {
			seen[rec.Asset] = true
			assets = append(assets, rec.Asset)
		}
	}
	sort.Slice(assets, func(i, k int) bool { return assets[i].Identifier < assets[k].Identifier })
	return assets
}
