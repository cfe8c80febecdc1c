package harvest

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Handler applies events to the system: facts are appended to the log, the
// RunReport command drives the full report pipeline, and notifications are
// echoed to Out.
type Handler struct {
	Log   *EventLog
	Fetch Fetcher
	Out   io.Writer
}

// Handle processes a single event. Facts are persisted as-is. RunReport
// produces and exports a report, then records a FileWritten notification.
// UnknownEvent is logged and dropped; it only ever enters the system through
// a corrupt log line, never through Handle.
func (h *Handler) Handle(e Event) error {
	switch evt := e.(type) {
	case SetBalance, SetPrice, SetAllocation, SetTargetAllocation:
		return h.Log.Append(e)
	case RunReport:
		_, _, _, err := h.Report(evt)
		return err
	case FileWritten:
		if err := h.Log.Append(evt); err != nil {
			return err
		}
		fmt.Fprintf(h.Out, "wrote %s", evt.Path)
		if len(evt.IncompleteSymbols) > 0 {
			fmt.Fprintf(h.Out, " (incomplete: %s)", strings.Join(evt.IncompleteSymbols, ", "))
		}
		fmt.Fprintln(h.Out)
		return nil
	case UnknownEvent:
		log.Printf("ignoring unknown event: %s", evt.Raw)
		return nil
	default:
		return fmt.Errorf("unhandled event type %q", e.What())
	}
}

// Report runs the full pipeline for a RunReport command: load the log,
// backfill prices for every held asset, reconcile as of the cutoff, render
// the table, export it and record a FileWritten notification. It returns the
// reconciled report, the table rows and the exported path.
func (h *Handler) Report(rr RunReport) (*Report, [][]Cell, string, error) {
	events, err := h.Log.ReadAll()
	if err != nil {
		return nil, nil, "", err
	}

	if h.Fetch != nil {
		fresh, err := h.backfillPrices(events, rr)
		if err != nil {
			return nil, nil, "", err
		}
		events = append(events, fresh...)
	}

	report := Reconcile(events, rr.Date, rr.Account)
	rows, err := report.Rows()
	if err != nil {
		return nil, nil, "", fmt.Errorf("building report as of %s: %w", rr.Date, err)
	}
	if rows == nil {
		return report, nil, "", nil
	}

	path, err := ExportReport(rows)
	if err != nil {
		return nil, nil, "", err
	}
	if err := h.Handle(FileWritten{Path: path, IncompleteSymbols: report.IncompleteSymbols()}); err != nil {
		return nil, nil, "", err
	}
	return report, rows, path, nil
}

// backfillPrices fetches quotes for the report's holdings, appends the
// resulting SetPrice facts to the log, and returns them.
func (h *Handler) backfillPrices(events []Event, rr RunReport) ([]Event, error) {
	fresh, err := QuoteEvents(events, rr, h.Fetch)
	if err != nil {
		return nil, err
	}
	if len(fresh) == 0 {
		return nil, nil
	}
	if err := h.Log.Append(fresh...); err != nil {
		return nil, err
	}
	return fresh, nil
}

// QuoteEvents fetches a quote for every asset with a balance visible to the
// report and returns the corresponding SetPrice facts. Fetched quotes dated
// after the cutoff are filtered out during reconciliation like any other
// fact.
func QuoteEvents(events []Event, rr RunReport, fetch Fetcher) ([]Event, error) {
	seen := make(map[Asset]bool)
	var assets []Asset
	for _, e := range events {
		b, ok := e.(SetBalance)
		if !ok || !b.Matches(rr.Date, rr.Account) {
			continue
		}
		if !seen[b.Asset] {
			seen[b.Asset] = true
			assets = append(assets, b.Asset)
		}
	}
	if len(assets) == 0 {
		return nil, nil
	}

	quotes, err := LookupPrices(assets, rr.Date, fetch)
	if err != nil {
		return nil, fmt.Errorf("backfilling prices as of %s: %w", rr.Date, err)
	}
	return PriceEvents(quotes), nil
}
