// Package money holds monetary amounts as integer minor units. All rounding
// happens here, half-up, at the moment a fractional result is produced;
// downstream arithmetic on Money values is exact.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidCurrency  = errors.New("money: currency must be a 3-letter code")
	ErrCurrencyMismatch = errors.New("money: currency mismatch")
)

// DefaultCurrency is the Costa Rican colón; catalog rates and policy
// defaults are denominated in it.
const DefaultCurrency = "CRC"

// minorUnitsPerUnit is fixed at 100 (céntimos per colón). Every supported
// currency here uses two decimal places.
const minorUnitsPerUnit = 100

// Money is an amount in minor units of a single currency. The zero value is
// unusable; construct via New, Must, FromUnits or Zero.
type Money struct {
	Amount   int64  `json:"amount" bson:"amount"`
	Currency string `json:"currency" bson:"currency"`
}

// New builds an amount from minor units.
func New(amount int64, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return Money{}, ErrInvalidCurrency
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// Must is New for trusted literals; it panics on a bad currency code.
func Must(amount int64, currency string) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// FromUnits builds an amount from whole currency units.
func FromUnits(units int64, currency string) (Money, error) {
	return New(units*minorUnitsPerUnit, currency)
}

func Zero(currency string) Money {
	return Money{Amount: 0, Currency: strings.ToUpper(strings.TrimSpace(currency))}
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}, nil
}

// Multiply scales by an integer factor. Exact: no rounding occurs.
func (m Money) Multiply(factor int64) Money {
	return Money{Amount: m.Amount * factor, Currency: m.Currency}
}

// MulRate applies a fractional rate (tax, deposit, penalty) and rounds the
// result half-up to the minor unit. Each derived amount is rounded exactly
// once, here.
func (m Money) MulRate(rate float64) Money {
	return Money{
		Amount:   roundHalfUp(float64(m.Amount) * rate),
		Currency: m.Currency,
	}
}

// RoundToUnit rounds half-up to the nearest whole currency unit.
func (m Money) RoundToUnit() Money {
	units := roundHalfUp(float64(m.Amount) / minorUnitsPerUnit)
	return Money{Amount: units * minorUnitsPerUnit, Currency: m.Currency}
}

// Units returns the amount in whole currency units, rounded half-up.
func (m Money) Units() int64 {
	return roundHalfUp(float64(m.Amount) / minorUnitsPerUnit)
}

// Float returns the amount in currency units as a float64. Display and
// legacy-interchange only; arithmetic stays on Amount.
func (m Money) Float() float64 {
	return float64(m.Amount) / minorUnitsPerUnit
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

func (m Money) IsNegative() bool {
	return m.Amount < 0
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Float(), m.Currency)
}

// roundHalfUp matches round-half-up semantics for negative inputs too:
// -0.5 rounds to 0, not -1.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
