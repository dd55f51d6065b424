package reservation

import (
	"math"
	"time"
)

// NoCheckInLabel is reported when a penalty is computed without a usable
// check-in date. Cancellation must stay possible with incomplete data, so
// this is a soft fallback, not an error.
const NoCheckInLabel = "no check-in date on record"

// PenaltyResult describes the cancellation charge against the deposit.
type PenaltyResult struct {
	// PenaltyAmount is in whole currency units, rounded half-up.
	PenaltyAmount     int64
	AppliedRate       float64
	RuleDescription   string
	HoursUntilCheckIn *float64
}

// CalculatePenalty maps the time remaining before check-in to a penalty
// against the deposit. The deposit is taken as a float because legacy
// reservation records carry fractional colón amounts.
//
// The tier table is evaluated most-restrictive-first: the first tier whose
// bound covers the remaining hours wins, and past the last tier the
// cancellation is free. now is explicit so the calculation is deterministic.
func CalculatePenalty(checkInDate string, deposit float64, now time.Time, policy Policy) PenaltyResult {
	checkIn, ok := parseDate(checkInDate)
	if !ok {
		return PenaltyResult{RuleDescription: NoCheckInLabel}
	}

	hours := checkIn.Sub(now).Hours()
	rate := 0.0
	label := FreeCancellationLabel
	for _, tier := range policy.sortedTiers() {
		if hours <= tier.MaxHours {
			rate = tier.Rate
			label = tier.Label
			break
		}
	}

	return PenaltyResult{
		PenaltyAmount:     roundToUnit(deposit * rate),
		AppliedRate:       rate,
		RuleDescription:   label,
		HoursUntilCheckIn: &hours,
	}
}

// roundToUnit rounds half-up to the whole colón; -0.5 rounds toward zero.
func roundToUnit(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
