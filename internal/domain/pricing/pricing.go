// Package pricing derives stay totals from resolved catalog data. It is a
// pure calculator: every policy constant is part of the input and the result
// is a fresh value.
package pricing

import (
	"errors"

	"unahotel/internal/domain/catalog"
	"unahotel/internal/domain/shared/money"
)

var (
	// ErrNegativeNights signals an integration bug: the caller must derive
	// nights from a validated date range before asking for a price.
	ErrNegativeNights = errors.New("pricing: nights cannot be negative")
	ErrNegativeRate   = errors.New("pricing: nightly rate cannot be negative")
	ErrNegativePrice  = errors.New("pricing: service price cannot be negative")
	ErrCurrencyUnset  = errors.New("pricing: currency must be defined")
)

// QuoteInput carries everything a quote needs, already resolved: selected
// rooms (rates and capacities summed for multi-room stays), nights, selected
// services, and the property's policy rates.
type QuoteInput struct {
	Rooms       []catalog.Room
	Nights      int
	Services    []catalog.Service
	TaxRate     float64
	DepositRate float64
	Currency    string
}

// Result is the immutable totals object for one computation. Taxes and
// deposit are rounded half-up to the minor unit exactly once, when produced;
// Total is the exact sum of the already-rounded components.
type Result struct {
	Subtotal        money.Money `json:"subtotal" bson:"subtotal"`
	ServicesTotal   money.Money `json:"services_total" bson:"services_total"`
	Taxes           money.Money `json:"taxes" bson:"taxes"`
	Total           money.Money `json:"total" bson:"total"`
	DepositRequired money.Money `json:"deposit_required" bson:"deposit_required"`
}

// Quote prices a stay. Zero nights yields a zero subtotal (pricing is not
// meaningful until the dates validate); negative inputs are caller-contract
// violations and fail fast.
func Quote(in QuoteInput) (Result, error) {
	if in.Currency == "" {
		return Result{}, ErrCurrencyUnset
	}
	if in.Nights < 0 {
		return Result{}, ErrNegativeNights
	}

	nightly := catalog.TotalNightlyRate(in.Rooms, in.Currency)
	if nightly.IsNegative() {
		return Result{}, ErrNegativeRate
	}

	subtotal := money.Zero(in.Currency)
	if in.Nights > 0 {
		subtotal = nightly.Multiply(int64(in.Nights))
	}

	servicesTotal := money.Zero(in.Currency)
	for _, svc := range in.Services {
		if svc.Price.IsNegative() {
			return Result{}, ErrNegativePrice
		}
		sum, err := servicesTotal.Add(svc.Price)
		if err != nil {
			return Result{}, err
		}
		servicesTotal = sum
	}

	taxable, err := subtotal.Add(servicesTotal)
	if err != nil {
		return Result{}, err
	}
	taxes := taxable.MulRate(in.TaxRate)

	total, err := taxable.Add(taxes)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Subtotal:        subtotal,
		ServicesTotal:   servicesTotal,
		Taxes:           taxes,
		Total:           total,
		DepositRequired: total.MulRate(in.DepositRate),
	}, nil
}
