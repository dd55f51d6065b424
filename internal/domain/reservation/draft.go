package reservation

import (
	"time"

	"unahotel/internal/domain/catalog"
)

// DateFormat is the ISO 8601 calendar-date layout the UI sends.
const DateFormat = "2006-01-02"

// Draft is the mutable form state the UI owns while a reservation is being
// composed. The engine never stores it; a Draft lives from form render to
// submit or cancel.
type Draft struct {
	CheckInDate      string
	CheckOutDate     string
	NumberOfAdults   int
	NumberOfChildren int
	NumberOfInfants  int
	// NumberOfGuests and NumberOfNights are derived; Recompute keeps them in
	// sync after every field mutation. The UI must never set them directly.
	NumberOfGuests int
	NumberOfNights int

	SelectedRoomIDs    []catalog.RoomID
	SelectedServiceIDs []catalog.ServiceID
	SpecialRequests    string
}

// FieldUpdate is one explicit, typed mutation of a known draft field. Each
// field has its own variant, so an unknown field path cannot compile.
type FieldUpdate interface {
	apply(Draft) Draft
}

type SetCheckInDate struct{ Value string }

func (u SetCheckInDate) apply(d Draft) Draft { d.CheckInDate = u.Value; return d }

type SetCheckOutDate struct{ Value string }

func (u SetCheckOutDate) apply(d Draft) Draft { d.CheckOutDate = u.Value; return d }

type SetAdults struct{ Value int }

func (u SetAdults) apply(d Draft) Draft { d.NumberOfAdults = u.Value; return d }

type SetChildren struct{ Value int }

func (u SetChildren) apply(d Draft) Draft { d.NumberOfChildren = u.Value; return d }

type SetInfants struct{ Value int }

func (u SetInfants) apply(d Draft) Draft { d.NumberOfInfants = u.Value; return d }

type SetRooms struct{ Value []catalog.RoomID }

func (u SetRooms) apply(d Draft) Draft {
	d.SelectedRoomIDs = append([]catalog.RoomID(nil), u.Value...)
	return d
}

type SetServices struct{ Value []catalog.ServiceID }

func (u SetServices) apply(d Draft) Draft {
	d.SelectedServiceIDs = append([]catalog.ServiceID(nil), u.Value...)
	return d
}

type SetSpecialRequests struct{ Value string }

func (u SetSpecialRequests) apply(d Draft) Draft { d.SpecialRequests = u.Value; return d }

// Apply runs the updates in order and recomputes the derived fields once at
// the end, so NumberOfGuests and NumberOfNights can never go stale.
func (d Draft) Apply(updates ...FieldUpdate) Draft {
	for _, u := range updates {
		d = u.apply(d)
	}
	return Recompute(d)
}

// Recompute derives NumberOfGuests and NumberOfNights from the raw fields.
// The integration layer calls it after every field mutation.
func Recompute(d Draft) Draft {
	d.NumberOfGuests = d.NumberOfAdults + d.NumberOfChildren + d.NumberOfInfants
	d.NumberOfNights = 0
	checkIn, okIn := parseDate(d.CheckInDate)
	checkOut, okOut := parseDate(d.CheckOutDate)
	if okIn && okOut {
		d.NumberOfNights = nightsBetween(checkIn, checkOut)
	}
	return d
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateFormat, raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func nightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn) / (24 * time.Hour))
}

// dateOnly zeroes the time component so comparisons are calendar-date only.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
