package reservation

import (
	"fmt"
	"strings"
	"time"

	"unahotel/internal/domain/catalog"
	"unahotel/internal/domain/pricing"
)

// Rules is the single entry point the integration layer calls: one validation
// pass producing a field-keyed error map, one pricing pass producing totals,
// and the cancellation penalty. It aggregates the pure validators; it holds
// no state beyond the injected policy.
type Rules struct {
	Policy Policy
}

func NewRules(policy Policy) Rules {
	return Rules{Policy: policy}
}

// Validate merges the date and guest validators over the draft. selected are
// the rooms the guest picked (capacity summed for multi-room stays);
// available is the bookable inventory for the requested dates, used to
// distinguish "wrong number entered" from "no inventory exists for that
// number".
func (r Rules) Validate(d Draft, selected, available []catalog.Room, today time.Time) ValidationErrors {
	errs := ValidateDates(d.CheckInDate, d.CheckOutDate, today, r.Policy)

	var capacity *RoomCapacity
	if len(selected) > 0 {
		capacity = &RoomCapacity{
			RoomName: joinRoomTypes(selected),
			Limit:    catalog.TotalCapacity(selected),
		}
	}
	errs = errs.Merge(ValidateGuests(
		d.NumberOfAdults, d.NumberOfChildren, d.NumberOfInfants,
		d.NumberOfGuests, capacity, r.Policy,
	))

	calculated := d.NumberOfAdults + d.NumberOfChildren + d.NumberOfInfants
	if calculated == d.NumberOfGuests && calculated >= 1 && calculated <= r.Policy.MaxGuests &&
		len(available) > 0 && !anyRoomFits(available, calculated) {
		errs[FieldGuests] = fmt.Sprintf("no available room fits %d guests", calculated)
	}

	return errs
}

// Price computes the totals object for the draft. Nights come from the
// recomputed draft; callers must validate the dates first for the result to
// be meaningful.
func (r Rules) Price(d Draft, selected []catalog.Room, services []catalog.Service) (pricing.Result, error) {
	return pricing.Quote(pricing.QuoteInput{
		Rooms:       selected,
		Nights:      d.NumberOfNights,
		Services:    services,
		TaxRate:     r.Policy.TaxRate,
		DepositRate: r.Policy.DepositRate,
		Currency:    r.Policy.Currency,
	})
}

// Penalty computes the cancellation charge for a stored reservation.
func (r Rules) Penalty(checkInDate string, deposit float64, now time.Time) PenaltyResult {
	return CalculatePenalty(checkInDate, deposit, now, r.Policy)
}

func anyRoomFits(rooms []catalog.Room, guests int) bool {
	for _, room := range rooms {
		if room.Capacity >= guests {
			return true
		}
	}
	return false
}

func joinRoomTypes(rooms []catalog.Room) string {
	names := make([]string, 0, len(rooms))
	for _, room := range rooms {
		names = append(names, room.Type)
	}
	return strings.Join(names, " + ")
}
