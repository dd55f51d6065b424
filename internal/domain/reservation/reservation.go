package reservation

import (
	"context"
	"errors"
	"time"

	"unahotel/internal/domain/catalog"
	"unahotel/internal/domain/pricing"
	"unahotel/internal/domain/shared/events"
)

var (
	ErrInvalidState        = errors.New("reservation: invalid state transition")
	ErrGuestRequired       = errors.New("reservation: guest id required")
	ErrDraftInvalid        = errors.New("reservation: draft failed validation")
	ErrReservationNotFound = errors.New("reservation: not found")
)

type ID string

type State string

const (
	StatePending    State = "PENDING"
	StateConfirmed  State = "CONFIRMED"
	StateCheckedIn  State = "CHECKED_IN"
	StateCheckedOut State = "CHECKED_OUT"
	StateCancelled  State = "CANCELLED"
	StateNoShow     State = "NO_SHOW"
)

// Reservation is the persisted aggregate a validated draft turns into on
// submit. The engine never mutates it concurrently; optimistic Version
// protects against lost updates in storage.
type Reservation struct {
	ID                 ID
	ConfirmationNumber string
	GuestID            string
	CheckInDate        string
	CheckOutDate       string
	Adults             int
	Children           int
	Infants            int
	RoomIDs            []catalog.RoomID
	ServiceIDs         []catalog.ServiceID
	Price              pricing.Result
	State              State
	SpecialRequests    string
	CancellationNote   string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Reservation, error)
	Save(ctx context.Context, r *Reservation) error
	ListByGuest(ctx context.Context, guestID string) ([]*Reservation, error)
}

type CreateParams struct {
	ID                 ID
	ConfirmationNumber string
	GuestID            string
	Draft              Draft
	Price              pricing.Result
	CreatedAt          time.Time
}

// New builds a pending reservation from an already-validated draft. Callers
// run Rules.Validate first; an empty guest id or unvalidated draft is an
// integration bug, not user input, so it fails fast.
func New(params CreateParams) (*Reservation, error) {
	if params.GuestID == "" {
		return nil, ErrGuestRequired
	}
	d := Recompute(params.Draft)
	if d.NumberOfGuests < 1 || d.NumberOfNights < 1 {
		return nil, ErrDraftInvalid
	}
	now := params.CreatedAt.UTC()
	r := &Reservation{
		ID:                 params.ID,
		ConfirmationNumber: params.ConfirmationNumber,
		GuestID:            params.GuestID,
		CheckInDate:        d.CheckInDate,
		CheckOutDate:       d.CheckOutDate,
		Adults:             d.NumberOfAdults,
		Children:           d.NumberOfChildren,
		Infants:            d.NumberOfInfants,
		RoomIDs:            append([]catalog.RoomID(nil), d.SelectedRoomIDs...),
		ServiceIDs:         append([]catalog.ServiceID(nil), d.SelectedServiceIDs...),
		Price:              params.Price,
		State:              StatePending,
		SpecialRequests:    d.SpecialRequests,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	r.Record(ReservationCreated{
		ReservationID:      r.ID,
		ConfirmationNumber: r.ConfirmationNumber,
		GuestID:            r.GuestID,
		CheckInDate:        r.CheckInDate,
		CheckOutDate:       r.CheckOutDate,
		Guests:             d.NumberOfGuests,
		Total:              r.Price.Total,
		At:                 now,
	})
	return r, nil
}

func (r *Reservation) Confirm(now time.Time) error {
	if r.State != StatePending {
		return ErrInvalidState
	}
	r.State = StateConfirmed
	r.UpdatedAt = now.UTC()
	r.Record(ReservationConfirmed{ReservationID: r.ID, At: r.UpdatedAt})
	return nil
}

// Cancel applies the tiered penalty and closes the reservation. It works from
// any live state: the front desk must always be able to cancel, even when the
// stored check-in date is unusable (the calculator soft-fails to a zero
// penalty in that case).
func (r *Reservation) Cancel(note string, now time.Time, policy Policy) (PenaltyResult, error) {
	switch r.State {
	case StatePending, StateConfirmed:
	default:
		return PenaltyResult{}, ErrInvalidState
	}
	penalty := CalculatePenalty(r.CheckInDate, r.Price.DepositRequired.Float(), now, policy)
	r.State = StateCancelled
	r.CancellationNote = note
	r.UpdatedAt = now.UTC()
	r.Record(ReservationCancelled{
		ReservationID: r.ID,
		PenaltyAmount: penalty.PenaltyAmount,
		AppliedRate:   penalty.AppliedRate,
		Rule:          penalty.RuleDescription,
		Note:          note,
		At:            r.UpdatedAt,
	})
	return penalty, nil
}

func (r *Reservation) CheckIn(now time.Time) error {
	if r.State != StateConfirmed {
		return ErrInvalidState
	}
	r.State = StateCheckedIn
	r.UpdatedAt = now.UTC()
	r.Record(GuestCheckedIn{ReservationID: r.ID, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) CheckOut(now time.Time) error {
	if r.State != StateCheckedIn {
		return ErrInvalidState
	}
	r.State = StateCheckedOut
	r.UpdatedAt = now.UTC()
	r.Record(GuestCheckedOut{ReservationID: r.ID, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) MarkNoShow(now time.Time) error {
	if r.State != StateConfirmed {
		return ErrInvalidState
	}
	r.State = StateNoShow
	r.UpdatedAt = now.UTC()
	r.Record(NoShowRecorded{ReservationID: r.ID, At: r.UpdatedAt})
	return nil
}

// IsActive reports whether the reservation still occupies inventory.
func (r *Reservation) IsActive() bool {
	return r.State != StateCancelled && r.State != StateNoShow && r.State != StateCheckedOut
}
