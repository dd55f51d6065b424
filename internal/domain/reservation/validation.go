package reservation

// Field names mirror the UI form model; the error map is keyed by them.
const (
	FieldCheckInDate  = "checkInDate"
	FieldCheckOutDate = "checkOutDate"
	FieldAdults       = "numberOfAdults"
	FieldGuests       = "numberOfGuests"
)

// ValidationErrors maps a form field to a user-facing message. A missing key
// means the field is valid. User-input problems are always reported through
// this map, never as Go errors.
type ValidationErrors map[string]string

// Merge copies entries from other into the receiver, keeping existing
// messages when both report on the same field.
func (v ValidationErrors) Merge(other ValidationErrors) ValidationErrors {
	for field, msg := range other {
		if _, taken := v[field]; !taken {
			v[field] = msg
		}
	}
	return v
}

// Valid reports whether no field failed.
func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}
