package harvest

import (
	"errors"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ErrDivisionByZero is returned when a ratio or percentage computation would
// divide by a zero value.
var ErrDivisionByZero = errors.New("division by zero")

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Money represents a monetary value as an exact decimal. No binary
// floating-point rounding happens anywhere in the arithmetic chain; rounding
// to two fractional digits (banker's rounding) occurs only when formatting.
type Money struct {
	value decimal.Decimal
}

// M creates a Money from any plain number or decimal. The constraint is what
// keeps Money arithmetic closed: an operand that is neither Money nor a plain
// number does not compile.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses an exact decimal string into a Money.
func ParseMoney(s string) (Money, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: v}, nil
}

// MustParseMoney parses an exact decimal string into a Money, panicking on
// malformed input. Intended for constants and tests.
func MustParseMoney(s string) Money {
	return Money{value: decimal.RequireFromString(s)}
}

func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) Neg() Money               { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money        { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money     { return Money{value: m.value.Mul(q.value)} }
func (m Money) Decimal() decimal.Decimal { return m.value }

// Div divides the money value by a dimensionless quantity.
func (m Money) Div(q Quantity) (Money, error) {
	if q.IsZero() {
		return Money{}, ErrDivisionByZero
	}
	return Money{value: m.value.Div(q.value)}, nil
}

// Ratio divides one money value by another, yielding a dimensionless ratio.
func (m Money) Ratio(n Money) (Quantity, error) {
	if n.IsZero() {
		return Quantity{}, ErrDivisionByZero
	}
	return Quantity{value: m.value.Div(n.value)}, nil
}

// groupedFormatter renders grouped digits with exactly two decimal places and
// no currency grapheme, e.g. "1,234.50".
var groupedFormatter = money.NewFormatter(2, ".", ",", "", "1")

// String returns the money value with grouped digits and exactly two decimal
// places, rounding half-to-even at this boundary only.
func (m Money) String() string {
	cents := m.value.RoundBank(2).Shift(2)
	return groupedFormatter.Format(cents.IntPart())
}

// SignedString is like String but with an explicit sign; zero renders as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON persists the value as an exact-precision decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

// UnmarshalJSON reads an exact-precision decimal string (quoted or bare).
func (m *Money) UnmarshalJSON(b []byte) error {
	return m.value.UnmarshalJSON(b)
}

// Quantity represents a count of shares or units, or a dimensionless ratio.
type Quantity struct {
	value decimal.Decimal
}

func Q[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

func (q Quantity) Equal(p Quantity) bool    { return q.value.Equal(p.value) }
func (q Quantity) Add(p Quantity) Quantity  { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) Sub(p Quantity) Quantity  { return Quantity{value: q.value.Sub(p.value)} }
func (q Quantity) Mul(p Quantity) Quantity  { return Quantity{value: q.value.Mul(p.value)} }
func (q Quantity) IsZero() bool             { return q.value.IsZero() }
func (q Quantity) IsNegative() bool         { return q.value.IsNegative() }
func (q Quantity) Decimal() decimal.Decimal { return q.value }
func (q Quantity) String() string           { return q.value.String() }

// MarshalJSON persists the quantity as an exact-precision decimal string.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return q.value.MarshalJSON()
}

// UnmarshalJSON reads an exact-precision decimal string (quoted or bare).
func (q *Quantity) UnmarshalJSON(b []byte) error {
	return q.value.UnmarshalJSON(b)
}
