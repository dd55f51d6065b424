package reservation

import (
	"fmt"
	"time"
)

// ValidateDates checks presence, ordering and policy windows for the stay
// dates. Pure function of its inputs: today is passed in, never read from the
// clock. Comparisons are calendar-date only.
func ValidateDates(checkIn, checkOut string, today time.Time, policy Policy) ValidationErrors {
	errs := ValidationErrors{}

	if checkIn == "" {
		errs[FieldCheckInDate] = "check-in date is required"
	}
	if checkOut == "" {
		errs[FieldCheckOutDate] = "check-out date is required"
	}
	if !errs.Valid() {
		return errs
	}

	in, okIn := parseDate(checkIn)
	if !okIn {
		errs[FieldCheckInDate] = "check-in date is not a valid date"
	}
	out, okOut := parseDate(checkOut)
	if !okOut {
		errs[FieldCheckOutDate] = "check-out date is not a valid date"
	}
	if !errs.Valid() {
		return errs
	}

	todayDate := dateOnly(today)
	if in.Before(todayDate) {
		errs[FieldCheckInDate] = "check-in date cannot be in the past"
	}
	if !out.After(in) {
		errs[FieldCheckOutDate] = "check-out date must be after the check-in date"
	}

	// Boundary is strictly greater-than: booking exactly AdvanceBookingDays
	// ahead is still allowed.
	if policy.AdvanceBookingDays > 0 {
		latest := todayDate.AddDate(0, 0, policy.AdvanceBookingDays)
		if in.After(latest) {
			errs[FieldCheckInDate] = fmt.Sprintf("check-in date cannot be more than %d days in advance", policy.AdvanceBookingDays)
		}
	}

	if _, taken := errs[FieldCheckOutDate]; !taken {
		nights := nightsBetween(in, out)
		switch {
		case nights > policy.MaxStayNights:
			errs[FieldCheckOutDate] = fmt.Sprintf("stay cannot be longer than %d nights", policy.MaxStayNights)
		case nights < policy.MinStayNights:
			errs[FieldCheckOutDate] = fmt.Sprintf("stay must be at least %d night(s)", policy.MinStayNights)
		}
	}

	return errs
}
