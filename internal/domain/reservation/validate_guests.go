package reservation

import "fmt"

// RoomCapacity names a concrete occupancy limit so the capacity message can
// tell the guest which room is too small. A nil value means no room has been
// selected yet and the capacity rule is skipped.
type RoomCapacity struct {
	RoomName string
	Limit    int
}

// ValidateGuests checks guest-count invariants against the declared total and
// an optional selected-room capacity. The declared total is kept in sync by
// Recompute upstream; a mismatch here means the integration layer skipped it.
func ValidateGuests(adults, children, infants, declaredTotal int, capacity *RoomCapacity, policy Policy) ValidationErrors {
	errs := ValidationErrors{}
	calculated := adults + children + infants

	if calculated != declaredTotal {
		errs[FieldGuests] = fmt.Sprintf("guest total %d does not match adults + children + infants (%d)", declaredTotal, calculated)
	}

	if adults < policy.MinAdults {
		errs[FieldAdults] = fmt.Sprintf("at least %d adult(s) required", policy.MinAdults)
	}

	if _, taken := errs[FieldGuests]; !taken {
		switch {
		case calculated < 1:
			errs[FieldGuests] = "at least one guest is required"
		case calculated > policy.MaxGuests:
			errs[FieldGuests] = fmt.Sprintf("no more than %d guests per reservation", policy.MaxGuests)
		}
	}

	if capacity != nil && calculated > capacity.Limit {
		if _, taken := errs[FieldGuests]; !taken {
			errs[FieldGuests] = fmt.Sprintf("%s holds at most %d guest(s)", capacity.RoomName, capacity.Limit)
		}
	}

	return errs
}
