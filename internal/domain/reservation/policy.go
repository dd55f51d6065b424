package reservation

import (
	"errors"
	"sort"

	"unahotel/internal/domain/shared/money"
)

var (
	ErrNoPenaltyTiers    = errors.New("reservation: policy needs at least one penalty tier")
	ErrTierRateOutOfBand = errors.New("reservation: penalty tier rate must be within [0, 1]")
)

// PenaltyTier maps an upper bound of hours-until-check-in to a penalty rate.
// A cancellation falls into the smallest tier that still covers the remaining
// time; beyond the last tier cancellation is free.
type PenaltyTier struct {
	MaxHours float64 `json:"max_hours"`
	Rate     float64 `json:"rate"`
	Label    string  `json:"label"`
}

// Policy carries every jurisdiction/business constant the engine applies.
// Nothing reads these from globals: each property injects its own Policy.
type Policy struct {
	AdvanceBookingDays int           `json:"advance_booking_days"`
	MinStayNights      int           `json:"min_stay_nights"`
	MaxStayNights      int           `json:"max_stay_nights"`
	MinAdults          int           `json:"min_adults"`
	MaxGuests          int           `json:"max_guests"`
	TaxRate            float64       `json:"tax_rate"`
	DepositRate        float64       `json:"deposit_rate"`
	Currency           string        `json:"currency"`
	PenaltyTiers       []PenaltyTier `json:"penalty_tiers"`
}

// FreeCancellationLabel describes a cancellation outside every penalty tier.
const FreeCancellationLabel = "free cancellation"

// DefaultPolicy returns the front-desk defaults: 13% VAT, 50% deposit,
// one-year advance window and the standard penalty ladder.
func DefaultPolicy() Policy {
	return Policy{
		AdvanceBookingDays: 365,
		MinStayNights:      1,
		MaxStayNights:      30,
		MinAdults:          1,
		MaxGuests:          12,
		TaxRate:            0.13,
		DepositRate:        0.5,
		Currency:           money.DefaultCurrency,
		PenaltyTiers: []PenaltyTier{
			{MaxHours: 0, Rate: 1.0, Label: "entrada vencida"},
			{MaxHours: 24, Rate: 0.75, Label: "< 24h"},
			{MaxHours: 72, Rate: 0.5, Label: "24-72h"},
			{MaxHours: 168, Rate: 0.25, Label: "3-7 days"},
		},
	}
}

// Validate checks the invariants the penalty selection relies on.
func (p Policy) Validate() error {
	if len(p.PenaltyTiers) == 0 {
		return ErrNoPenaltyTiers
	}
	for _, tier := range p.PenaltyTiers {
		if tier.Rate < 0 || tier.Rate > 1 {
			return ErrTierRateOutOfBand
		}
	}
	if p.TaxRate < 0 || p.DepositRate < 0 || p.DepositRate > 1 {
		return errors.New("reservation: tax and deposit rates must be non-negative, deposit at most 1")
	}
	if p.MinStayNights < 1 || p.MaxStayNights < p.MinStayNights {
		return errors.New("reservation: stay bounds are inconsistent")
	}
	return nil
}

// sortedTiers returns the tiers ordered most-restrictive-first so that the
// first tier covering the remaining hours wins.
func (p Policy) sortedTiers() []PenaltyTier {
	tiers := append([]PenaltyTier(nil), p.PenaltyTiers...)
	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].MaxHours < tiers[j].MaxHours })
	return tiers
}
