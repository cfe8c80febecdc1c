package harvest

import (
	"sort"
	"time"
)

// EventType is a typed string naming an event kind. It doubles as the wire
// discriminator in the event log.
type EventType string

// Event types used for identifying log records.
const (
	EvtSetBalance          EventType = "SetBalance"
	EvtSetPrice            EventType = "SetPrice"
	EvtSetAllocation       EventType = "SetAllocation"
	EvtSetTargetAllocation EventType = "SetTargetAllocation"
	EvtRunReport           EventType = "RunReport"
	EvtFileWritten         EventType = "FileWritten"
	EvtUnknown             EventType = "UnknownEvent"
)

// Event is the closed set of facts and commands that can appear in the
// system. The unexported rank method keeps the set closed: every variant
// lives in this package, and a type switch over them is exhaustive.
type Event interface {
	What() EventType
	When() Date
	// Matches reports whether the event is visible to a report with the
	// given cutoff date and optional account ("" means all accounts). Only
	// balances are account-scoped; prices and allocations are facts about an
	// asset, not an account. Commands and notifications never match.
	Matches(cutoff Date, account string) bool

	// rank orders event kinds for reconciliation: balances first, then
	// prices, allocations and the target. Everything else sorts last.
	rank() int
}

// SetBalance records the shares or units of an asset held in an account as of
// a date.
type SetBalance struct {
	Account   string
	Asset     Asset
	Date      Date
	Amount    Quantity
	CreatedAt time.Time
}

// NewSetBalance creates a SetBalance fact stamped with the current time.
func NewSetBalance(account string, asset Asset, date Date, amount Quantity) SetBalance {
	return SetBalance{Account: account, Asset: asset, Date: date, Amount: amount, CreatedAt: time.Now().UTC()}
}

func (e SetBalance) What() EventType { return EvtSetBalance }
func (e SetBalance) When() Date      { return e.Date }
func (e SetBalance) rank() int       { return 0 }

func (e SetBalance) Matches(cutoff Date, account string) bool {
	if e.Date.After(cutoff) {
		return false
	}
	return account == "" || e.Account == account
}

// MarshalJSON implements the json.Marshaler interface for SetBalance.
func (e SetBalance) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", EvtSetBalance)
	w.Append("account", e.Account)
	w.Append("asset", e.Asset)
	w.Append("date", e.Date)
	w.Append("amount", e.Amount)
	w.Append("created_at", e.CreatedAt.Format(DatetimeFormat))
	return w.MarshalJSON()
}

// SetPrice records the per-unit value of an asset as of a date. It is a
// portfolio-wide fact: it applies to every account holding the asset.
type SetPrice struct {
	Asset     Asset
	Date      Date
	Amount    Money
	CreatedAt time.Time
}

// NewSetPrice creates a SetPrice fact stamped with the current time.
func NewSetPrice(asset Asset, date Date, amount Money) SetPrice {
	return SetPrice{Asset: asset, Date: date, Amount: amount, CreatedAt: time.Now().UTC()}
}

func (e SetPrice) What() EventType { return EvtSetPrice }
func (e SetPrice) When() Date      { return e.Date }
func (e SetPrice) rank() int       { return 1 }

func (e SetPrice) Matches(cutoff Date, _ string) bool { return !e.Date.After(cutoff) }

// MarshalJSON implements the json.Marshaler interface for SetPrice.
func (e SetPrice) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", EvtSetPrice)
	w.Append("asset", e.Asset)
	w.Append("date", e.Date)
	w.Append("amount", e.Amount)
	w.Append("created_at", e.CreatedAt.Format(DatetimeFormat))
	return w.MarshalJSON()
}

// SetAllocation records the category breakdown to apply to all holdings of an
// asset, in any account.
type SetAllocation struct {
	Asset      Asset
	Date       Date
	Allocation Allocation
	CreatedAt  time.Time
}

// NewSetAllocation creates a SetAllocation fact stamped with the current time.
func NewSetAllocation(asset Asset, date Date, allocation Allocation) SetAllocation {
	return SetAllocation{Asset: asset, Date: date, Allocation: allocation, CreatedAt: time.Now().UTC()}
}

func (e SetAllocation) What() EventType { return EvtSetAllocation }
func (e SetAllocation) When() Date      { return e.Date }
func (e SetAllocation) rank() int       { return 2 }

func (e SetAllocation) Matches(cutoff Date, _ string) bool { return !e.Date.After(cutoff) }

// MarshalJSON implements the json.Marshaler interface for SetAllocation.
func (e SetAllocation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", EvtSetAllocation)
	w.Append("asset", e.Asset)
	w.Append("date", e.Date)
	w.Append("allocation", e.Allocation)
	w.Append("created_at", e.CreatedAt.Format(DatetimeFormat))
	return w.MarshalJSON()
}

// SetTargetAllocation records the single portfolio-wide rebalancing target.
// It is not asset-scoped; the last one at-or-before the cutoff wins.
type SetTargetAllocation struct {
	Date       Date
	Allocation Allocation
	CreatedAt  time.Time
}

// NewSetTargetAllocation creates a SetTargetAllocation fact stamped with the
// current time.
func NewSetTargetAllocation(date Date, allocation Allocation) SetTargetAllocation {
	return SetTargetAllocation{Date: date, Allocation: allocation, CreatedAt: time.Now().UTC()}
}

func (e SetTargetAllocation) What() EventType { return EvtSetTargetAllocation }
func (e SetTargetAllocation) When() Date      { return e.Date }
func (e SetTargetAllocation) rank() int       { return 3 }

func (e SetTargetAllocation) Matches(cutoff Date, _ string) bool { return !e.Date.After(cutoff) }

// MarshalJSON implements the json.Marshaler interface for SetTargetAllocation.
func (e SetTargetAllocation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", EvtSetTargetAllocation)
	w.Append("date", e.Date)
	w.Append("allocation", e.Allocation)
	w.Append("created_at", e.CreatedAt.Format(DatetimeFormat))
	return w.MarshalJSON()
}

// RunReport requests a report as of a date, optionally restricted to one
// account. It is a command, not a fact: it is never persisted and never
// participates in reconciliation.
type RunReport struct {
	Date    Date
	Account string // "" means all accounts
}

func (e RunReport) What() EventType           { return EvtRunReport }
func (e RunReport) When() Date                { return e.Date }
func (e RunReport) rank() int                 { return 4 }
func (e RunReport) Matches(Date, string) bool { return false }

// FileWritten records that a report file was produced, along with the symbols
// that were too incomplete to appear in it. The report itself is never
// persisted; its path is.
type FileWritten struct {
	Path              string
	IncompleteSymbols []string
}

func (e FileWritten) What() EventType           { return EvtFileWritten }
func (e FileWritten) When() Date                { return Date{} }
func (e FileWritten) rank() int                 { return 4 }
func (e FileWritten) Matches(Date, string) bool { return false }

// MarshalJSON implements the json.Marshaler interface for FileWritten.
func (e FileWritten) MarshalJSON() ([]byte, error) {
	symbols := e.IncompleteSymbols
	if symbols == nil {
		symbols = []string{}
	}
	var w jsonObjectWriter
	w.Append("type", EvtFileWritten)
	w.Append("path", e.Path)
	w.Append("incomplete_symbols", symbols)
	return w.MarshalJSON()
}

// UnknownEvent is the sentinel for a log line that failed to parse. It keeps
// the raw line so nothing is lost on rewrite, and never matches temporal
// filtering.
type UnknownEvent struct {
	Raw string
}

func (e UnknownEvent) What() EventType           { return EvtUnknown }
func (e UnknownEvent) When() Date                { return Date{} }
func (e UnknownEvent) rank() int                 { return 4 }
func (e UnknownEvent) Matches(Date, string) bool { return false }

// SortEvents returns a copy of events ordered by (rank, date). The sort is
// stable: events of the same kind on the same date keep their log order, so a
// walk applying them in order makes the last-logged one win. This is the only
// tie-break rule in the system.
func SortEvents(events []Event) []Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].rank(), sorted[j].rank()
		if ri != rj {
			return ri < rj
		}
		if ri == 4 {
			// Untyped tail: date is meaningless there.
			return false
		}
		return sorted[i].When().Before(sorted[j].When())
	})
	return sorted
}
