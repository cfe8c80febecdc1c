// Package harvest values and rebalances an investment portfolio from an
// append-only log of dated facts.
//
// The log holds four kinds of facts: share balances per (account, asset),
// per-unit prices and allocation breakdowns per asset, and a single
// portfolio-wide target allocation. Reconcile joins the latest facts
// at-or-before a cutoff date into one record per holding; Report.Rows turns
// the reconciled records into the report table with totals, percentages and
// rebalancing corrections.
//
// All amounts are exact decimals. Rounding, half to even, happens only when
// a value is formatted or a percentage is computed.
package harvest
