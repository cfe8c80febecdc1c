package harvest

import (
	"testing"
	"time"
)

// scenarioEvents is the reference history used across reconciliation tests:
// one asset in one account with several balances and prices around the
// cutoff of 2022-05-27.
func scenarioEvents(t *testing.T) []Event {
	t.Helper()
	xyz := NewInvestment("XYZ")
	alloc := mustAllocation(t, "70.5", "6.5", "0.1", "7.71", "1.2", "3.45")
	return []Event{
		NewSetBalance("account1", xyz, NewDate(2022, time.May, 1), Q(decimalFromString(t, "567.89"))),
		NewSetBalance("account1", xyz, NewDate(2022, time.May, 20), Q(decimalFromString(t, "123.45"))),
		NewSetBalance("account1", xyz, NewDate(2022, time.May, 28), Q(decimalFromString(t, "234.56"))),
		NewSetPrice(xyz, NewDate(2022, time.May, 21), MustParseMoney("23.45")),
		NewSetPrice(xyz, NewDate(2022, time.May, 25), MustParseMoney("34.56")),
		NewSetAllocation(xyz, NewDate(2022, time.May, 20), alloc),
	}
}

func TestReconcile_Scenario(t *testing.T) {
	report := Reconcile(scenarioEvents(t), NewDate(2022, time.May, 27), "")

	if len(report.Records) != 1 {
		t.Fatalf("Reconcile() records = %d, want 1", len(report.Records))
	}
	rec := report.Records[0]

	if rec.Account != "account1" {
		t.Errorf("Account = %q, want %q", rec.Account, "account1")
	}
	if rec.Asset.Identifier != "XYZ" {
		t.Errorf("Asset = %q, want %q", rec.Asset.Identifier, "XYZ")
	}
	// The balance of 2022-05-28 is past the cutoff; the one of 2022-05-20 wins.
	if want := Q(decimalFromString(t, "123.45")); !rec.Amount.Equal(want) {
		t.Errorf("Amount = %v, want %v", rec.Amount, want)
	}
	if want := NewDate(2022, time.May, 20); rec.ReportDate != want {
		t.Errorf("ReportDate = %v, want %v", rec.ReportDate, want)
	}
	if want := MustParseMoney("34.56"); !rec.Price.Equal(want) {
		t.Errorf("Price = %v, want %v", rec.Price, want)
	}
	if want := NewDate(2022, time.May, 25); rec.PriceDate != want {
		t.Errorf("PriceDate = %v, want %v", rec.PriceDate, want)
	}
	if want := MustParseMoney("4266.432"); !rec.Total().Equal(want) {
		t.Errorf("Total() = %v, want %v", rec.Total().Decimal(), want.Decimal())
	}
	if len(report.IncompleteAssets) != 0 {
		t.Errorf("IncompleteAssets = %v, want none", report.IncompleteAssets)
	}
}

func TestReconcile_BalanceUpdateKeepsJoins(t *testing.T) {
	// A later balance overwrites only the quantity; the price and allocation
	// already joined to the holding survive.
	report := Reconcile(scenarioEvents(t), NewDate(2022, time.May, 28), "")

	if len(report.Records) != 1 {
		t.Fatalf("Reconcile() records = %d, want 1", len(report.Records))
	}
	rec := report.Records[0]
	if want := Q(decimalFromString(t, "234.56")); !rec.Amount.Equal(want) {
		t.Errorf("Amount = %v, want %v", rec.Amount, want)
	}
	if want := MustParseMoney("34.56"); !rec.Price.Equal(want) {
		t.Errorf("Price = %v, want %v", rec.Price, want)
	}
}

func TestReconcile_LastWriteWins(t *testing.T) {
	xyz := NewInvestment("XYZ")
	d := NewDate(2022, time.May, 20)
	events := []Event{
		NewSetBalance("a", xyz, d, Q(10)),
		NewSetAllocation(xyz, d, mustAllocation(t, "100", "0", "0", "0", "0", "0")),
		NewSetPrice(xyz, d, MustParseMoney("1.00")),
		NewSetPrice(xyz, d, MustParseMoney("2.00")),
	}

	report := Reconcile(events, d, "")
	if len(report.Records) != 1 {
		t.Fatalf("Reconcile() records = %d, want 1", len(report.Records))
	}
	if want := MustParseMoney("2.00"); !report.Records[0].Price.Equal(want) {
		t.Errorf("Price = %v, want %v (the later of two same-day prices)", report.Records[0].Price, want)
	}
}

func TestReconcile_Completeness(t *testing.T) {
	xyz := NewInvestment("XYZ")
	abc := NewInvestment("ABC")
	d := NewDate(2022, time.May, 20)
	alloc := mustAllocation(t, "100", "0", "0", "0", "0", "0")

	events := []Event{
		NewSetBalance("a", xyz, d, Q(10)),
		NewSetPrice(xyz, d, MustParseMoney("5")),
		NewSetAllocation(xyz, d, alloc),
		// ABC has a balance and a price but no allocation.
		NewSetBalance("a", abc, d, Q(3)),
		NewSetPrice(abc, d, MustParseMoney("7")),
	}

	report := Reconcile(events, d, "")
	if len(report.Records) != 1 || report.Records[0].Asset != xyz {
		t.Fatalf("Reconcile() records = %+v, want only XYZ", report.Records)
	}
	if got := report.IncompleteSymbols(); len(got) != 1 || got[0] != "ABC" {
		t.Errorf("IncompleteSymbols() = %v, want [ABC]", got)
	}
}

func TestReconcile_NoForwardReferences(t *testing.T) {
	// Prices and allocations for an asset no account holds attach to
	// nothing: no record, and nothing reported incomplete either.
	xyz := NewInvestment("XYZ")
	events := []Event{
		NewSetPrice(xyz, NewDate(2022, time.May, 25), MustParseMoney("34.56")),
		NewSetAllocation(xyz, NewDate(2022, time.May, 25), mustAllocation(t, "100", "0", "0", "0", "0", "0")),
	}

	report := Reconcile(events, NewDate(2022, time.May, 27), "")
	if len(report.Records) != 0 {
		t.Errorf("Reconcile() records = %+v, want none", report.Records)
	}
	if len(report.IncompleteAssets) != 0 {
		t.Errorf("IncompleteAssets = %v, want none", report.IncompleteAssets)
	}
}

func TestReconcile_RanksDominateDates(t *testing.T) {
	// A balance recorded after the price in log order still creates the join
	// entry first: balances sort before prices regardless of dates.
	xyz := NewInvestment("XYZ")
	events := []Event{
		NewSetPrice(xyz, NewDate(2022, time.May, 25), MustParseMoney("34.56")),
		NewSetBalance("a", xyz, NewDate(2022, time.May, 26), Q(10)),
		NewSetAllocation(xyz, NewDate(2022, time.May, 26), mustAllocation(t, "100", "0", "0", "0", "0", "0")),
	}

	report := Reconcile(events, NewDate(2022, time.May, 27), "")
	if len(report.Records) != 1 {
		t.Fatalf("Reconcile() records = %d, want 1", len(report.Records))
	}
	if want := MustParseMoney("34.56"); !report.Records[0].Price.Equal(want) {
		t.Errorf("Price = %v, want %v", report.Records[0].Price, want)
	}
}

func TestReconcile_AccountFilter(t *testing.T) {
	xyz := NewInvestment("XYZ")
	d := NewDate(2022, time.May, 20)
	alloc := mustAllocation(t, "100", "0", "0", "0", "0", "0")
	events := []Event{
		NewSetBalance("broker", xyz, d, Q(10)),
		NewSetBalance("ira", xyz, d, Q(20)),
		NewSetPrice(xyz, d, MustParseMoney("5")),
		NewSetAllocation(xyz, d, alloc),
	}

	all := Reconcile(events, d, "")
	if len(all.Records) != 2 {
		t.Fatalf("Reconcile(all accounts) records = %d, want 2", len(all.Records))
	}
	// Records sort by (account, asset).
	if all.Records[0].Account != "broker" || all.Records[1].Account != "ira" {
		t.Errorf("record order = %q, %q, want broker, ira", all.Records[0].Account, all.Records[1].Account)
	}

	ira := Reconcile(events, d, "ira")
	if len(ira.Records) != 1 || ira.Records[0].Account != "ira" {
		t.Fatalf("Reconcile(ira) records = %+v, want only ira", ira.Records)
	}
	// The shared price and allocation still match under the account filter.
	if want := MustParseMoney("5"); !ira.Records[0].Price.Equal(want) {
		t.Errorf("Price = %v, want %v", ira.Records[0].Price, want)
	}
}

func TestReconcile_TargetAllocation(t *testing.T) {
	d := NewDate(2022, time.May, 20)
	first := mustAllocation(t, "10", "0", "0", "0", "0", "90")
	second := mustAllocation(t, "20", "0", "0", "0", "0", "80")
	future := mustAllocation(t, "30", "0", "0", "0", "0", "70")
	events := []Event{
		NewSetTargetAllocation(d.Add(-2), first),
		NewSetTargetAllocation(d.Add(-1), second),
		NewSetTargetAllocation(d.Add(1), future),
	}

	report := Reconcile(events, d, "")
	if report.TargetAllocation == nil {
		t.Fatal("TargetAllocation = nil, want the latest at-or-before the cutoff")
	}
	if !report.TargetAllocation.Equal(second) {
		t.Errorf("TargetAllocation = %+v, want %+v", *report.TargetAllocation, second)
	}
}

func TestReconcile_Deterministic(t *testing.T) {
	events := scenarioEvents(t)
	cutoff := NewDate(2022, time.May, 27)

	a := Reconcile(events, cutoff, "")
	b := Reconcile(events, cutoff, "")

	if len(a.Records) != len(b.Records) {
		t.Fatalf("record counts differ: %d vs %d", len(a.Records), len(b.Records))
	}
	for i := range a.Records {
		if a.Records[i] != b.Records[i] {
			t.Errorf("record %d differs between runs", i)
		}
	}
}
