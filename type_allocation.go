package harvest

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Categories is the fixed category order used by allocation subtotals and by
// every report column. Stock and Bond are rollups of the three, respectively
// two, categories that follow them.
var Categories = [9]string{
	"Stock",
	"Stock-Large",
	"Stock-Mid/Small",
	"Stock-Intl",
	"Bond",
	"Bond-US",
	"Bond-Intl",
	"Cash",
	"Other",
}

// Allocation is a percentage breakdown of a holding's value across six input
// categories. The stock, bond and other rollups are derived once at
// construction. Construction never fails: inputs summing past 100 simply
// leave a negative residual in Other.
type Allocation struct {
	stockLarge    decimal.Decimal
	stockMidSmall decimal.Decimal
	stockIntl     decimal.Decimal
	bondUS        decimal.Decimal
	bondIntl      decimal.Decimal
	cash          decimal.Decimal

	stock decimal.Decimal
	bond  decimal.Decimal
	other decimal.Decimal
}

// NewAllocation builds an Allocation from the six input percentages.
func NewAllocation(stockLarge, stockMidSmall, stockIntl, bondUS, bondIntl, cash decimal.Decimal) Allocation {
	a := Allocation{
		stockLarge:    stockLarge,
		stockMidSmall: stockMidSmall,
		stockIntl:     stockIntl,
		bondUS:        bondUS,
		bondIntl:      bondIntl,
		cash:          cash,
	}
	a.stock = stockLarge.Add(stockMidSmall).Add(stockIntl)
	a.bond = bondUS.Add(bondIntl)
	a.other = hundred.Sub(a.stock).Sub(a.bond).Sub(cash)
	return a
}

// ParseAllocation builds an Allocation from six exact decimal strings.
func ParseAllocation(stockLarge, stockMidSmall, stockIntl, bondUS, bondIntl, cash string) (Allocation, error) {
	var vals [6]decimal.Decimal
	for i, s := range []string{stockLarge, stockMidSmall, stockIntl, bondUS, bondIntl, cash} {
		v, err := decimal.NewFromString(s)
		if err != nil {
			return Allocation{}, err
		}
		vals[i] = v
	}
	return NewAllocation(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]), nil
}

func (a Allocation) StockLarge() decimal.Decimal    { return a.stockLarge }
func (a Allocation) StockMidSmall() decimal.Decimal { return a.stockMidSmall }
func (a Allocation) StockIntl() decimal.Decimal     { return a.stockIntl }
func (a Allocation) BondUS() decimal.Decimal        { return a.bondUS }
func (a Allocation) BondIntl() decimal.Decimal      { return a.bondIntl }
func (a Allocation) Cash() decimal.Decimal          { return a.cash }
func (a Allocation) Stock() decimal.Decimal         { return a.stock }
func (a Allocation) Bond() decimal.Decimal          { return a.bond }
func (a Allocation) Other() decimal.Decimal         { return a.other }

// Percentages returns the nine percentages in Categories order.
func (a Allocation) Percentages() [9]decimal.Decimal {
	return [9]decimal.Decimal{
		a.stock,
		a.stockLarge,
		a.stockMidSmall,
		a.stockIntl,
		a.bond,
		a.bondUS,
		a.bondIntl,
		a.cash,
		a.other,
	}
}

// Subtotals distributes total across the nine categories in Categories order.
// Each subtotal is total×(percentage/100), computed exactly: the division by
// 100 is a decimal shift, so the leaf categories always sum back to total.
func (a Allocation) Subtotals(total Money) [9]Money {
	var out [9]Money
	for i, p := range a.Percentages() {
		out[i] = Money{value: total.value.Mul(p).Shift(-2)}
	}
	return out
}

func (a Allocation) Equal(b Allocation) bool {
	return a.stockLarge.Equal(b.stockLarge) &&
		a.stockMidSmall.Equal(b.stockMidSmall) &&
		a.stockIntl.Equal(b.stockIntl) &&
		a.bondUS.Equal(b.bondUS) &&
		a.bondIntl.Equal(b.bondIntl) &&
		a.cash.Equal(b.cash)
}

// allocationJSON is the wire shape: the six inputs only, derived rollups are
// recomputed on read.
type allocationJSON struct {
	StockLarge    decimal.Decimal `json:"stock_large"`
	StockMidSmall decimal.Decimal `json:"stock_mid_small"`
	StockIntl     decimal.Decimal `json:"stock_intl"`
	BondUS        decimal.Decimal `json:"bond_us"`
	BondIntl      decimal.Decimal `json:"bond_intl"`
	Cash          decimal.Decimal `json:"cash"`
}

// MarshalJSON implements the json.Marshaler interface for Allocation.
func (a Allocation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("stock_large", a.stockLarge)
	w.Append("stock_mid_small", a.stockMidSmall)
	w.Append("stock_intl", a.stockIntl)
	w.Append("bond_us", a.bondUS)
	w.Append("bond_intl", a.bondIntl)
	w.Append("cash", a.cash)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Allocation.
func (a *Allocation) UnmarshalJSON(b []byte) error {
	var temp allocationJSON
	if err := json.Unmarshal(b, &temp); err != nil {
		return err
	}
	*a = NewAllocation(temp.StockLarge, temp.StockMidSmall, temp.StockIntl, temp.BondUS, temp.BondIntl, temp.Cash)
	return nil
}
