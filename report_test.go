package harvest

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestReport_Rows_Empty(t *testing.T) {
	report := Reconcile(nil, Today(), "")
	rows, err := report.Rows()
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if rows != nil {
		t.Errorf("Rows() = %v, want nil for an empty report", rows)
	}
}

func TestReport_Rows_Scenario(t *testing.T) {
	report := Reconcile(scenarioEvents(t), NewDate(2022, time.May, 27), "")
	rows, err := report.Rows()
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}

	// Header, one data row, Totals, Percentages. No target is set.
	if len(rows) != 4 {
		t.Fatalf("Rows() = %d rows, want 4", len(rows))
	}
	for i, row := range rows {
		if len(row) != 16 {
			t.Errorf("row %d has %d cells, want 16", i, len(row))
		}
	}

	data := rows[1]
	if data[0] != "account1" || data[1] != "XYZ" {
		t.Errorf("data row starts with %v, %v, want account1, XYZ", data[0], data[1])
	}
	if data[3] != "2022-05-20" || data[5] != "2022-05-25" {
		t.Errorf("dates = %v, %v, want 2022-05-20, 2022-05-25", data[3], data[5])
	}
	total, ok := data[15].(Money)
	if !ok || !total.Equal(MustParseMoney("4266.432")) {
		t.Errorf("Total cell = %v, want 4266.432", data[15])
	}

	totals := rows[2]
	if totals[0] != "Totals" {
		t.Errorf("totals row label = %v, want Totals", totals[0])
	}
	for i := 1; i < 6; i++ {
		if totals[i] != "" {
			t.Errorf("totals row cell %d = %v, want blank", i, totals[i])
		}
	}
	grand, ok := totals[15].(Money)
	if !ok || !grand.Equal(total) {
		t.Errorf("grand total = %v, want %v", totals[15], total)
	}

	pcts := rows[3]
	if pcts[0] != "Percentages" {
		t.Errorf("percentages row label = %v, want Percentages", pcts[0])
	}
	if pcts[15] != "" {
		t.Errorf("percentages row trailing cell = %v, want blank", pcts[15])
	}
	// One holding: every category percentage equals the allocation's own.
	stock, ok := pcts[6].(decimal.Decimal)
	if !ok || !stock.Equal(decimal.RequireFromString("77.1")) {
		t.Errorf("stock percentage = %v, want 77.1", pcts[6])
	}
	other, ok := pcts[14].(decimal.Decimal)
	if !ok || !other.Equal(decimal.RequireFromString("10.54")) {
		t.Errorf("other percentage = %v, want 10.54", pcts[14])
	}
}

func TestReport_Rows_Corrections(t *testing.T) {
	xyz := NewInvestment("XYZ")
	cash := NewCash("CASH")
	d := NewDate(2022, time.May, 20)
	events := []Event{
		NewSetBalance("a", xyz, d, Q(60)),
		NewSetPrice(xyz, d, MustParseMoney("1")),
		NewSetAllocation(xyz, d, mustAllocation(t, "100", "0", "0", "0", "0", "0")),
		NewSetBalance("a", cash, d, Q(40)),
		NewSetPrice(cash, d, MustParseMoney("1")),
		NewSetAllocation(cash, d, mustAllocation(t, "0", "0", "0", "0", "0", "100")),
		NewSetTargetAllocation(d, mustAllocation(t, "50", "0", "0", "0", "0", "50")),
	}

	report := Reconcile(events, d, "")
	rows, err := report.Rows()
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}

	// Header, two data rows, Totals, Percentages, Target Percentages,
	// Corrections.
	if len(rows) != 7 {
		t.Fatalf("Rows() = %d rows, want 7", len(rows))
	}
	corrections := rows[6]
	if corrections[0] != "Corrections" {
		t.Fatalf("last row label = %v, want Corrections", corrections[0])
	}

	// Grand total 100: stock is 60% against a 50% target, so 10 dollars
	// leave stock; cash is 40% against 50%, so 10 dollars come in.
	stockLarge, ok := corrections[7].(Money)
	if !ok || !stockLarge.Equal(MustParseMoney("-10")) {
		t.Errorf("stock-large correction = %v, want -10", corrections[7])
	}
	cashCorr, ok := corrections[13].(Money)
	if !ok || !cashCorr.Equal(MustParseMoney("10")) {
		t.Errorf("cash correction = %v, want +10", corrections[13])
	}
	if corrections[15] != "" {
		t.Errorf("corrections trailing cell = %v, want blank", corrections[15])
	}
}

func TestReport_Rows_ZeroGrandTotal(t *testing.T) {
	xyz := NewInvestment("XYZ")
	d := NewDate(2022, time.May, 20)
	events := []Event{
		NewSetBalance("a", xyz, d, Q(100)),
		NewSetPrice(xyz, d, MustParseMoney("0")),
		NewSetAllocation(xyz, d, mustAllocation(t, "100", "0", "0", "0", "0", "0")),
	}

	report := Reconcile(events, d, "")
	_, err := report.Rows()
	if !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Rows() error = %v, want ErrDivisionByZero", err)
	}
}

func TestReport_Rows_PercentageRounding(t *testing.T) {
	// One of three equal holdings is stock: its column is one third of the
	// grand total, displayed as 33.33 after rounding.
	d := NewDate(2022, time.May, 20)
	stock := mustAllocation(t, "100", "0", "0", "0", "0", "0")
	cash := mustAllocation(t, "0", "0", "0", "0", "0", "100")
	var events []Event
	for i, sym := range []string{"AAA", "BBB", "CCC"} {
		alloc := cash
		if i == 0 {
			alloc = stock
		}
		a := NewInvestment(sym)
		events = append(events,
			NewSetBalance("x", a, d, Q(1)),
			NewSetPrice(a, d, MustParseMoney("1")),
			NewSetAllocation(a, d, alloc),
		)
	}

	report := Reconcile(events, d, "")
	rows, err := report.Rows()
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	pcts := rows[len(rows)-1]
	got, ok := pcts[6].(decimal.Decimal)
	if !ok || !got.Equal(decimal.RequireFromString("33.33")) {
		t.Errorf("stock percentage = %v, want 33.33", pcts[6])
	}
	gotCash, ok := pcts[13].(decimal.Decimal)
	if !ok || !gotCash.Equal(decimal.RequireFromString("66.67")) {
		t.Errorf("cash percentage = %v, want 66.67", pcts[13])
	}
}

func TestCellString(t *testing.T) {
	testCases := []struct {
		in   Cell
		want string
	}{
		{in: "Account", want: "Account"},
		{in: "", want: ""},
		{in: MustParseMoney("1234.5"), want: "1,234.50"},
		{in: Q(decimal.RequireFromString("123.45")), want: "123.45"},
		{in: decimal.RequireFromString("77.1"), want: "77.1"},
	}

	for _, tc := range testCases {
		if got := CellString(tc.in); got != tc.want {
			t.Errorf("CellString(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
