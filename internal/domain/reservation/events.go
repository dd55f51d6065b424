package reservation

import (
	"time"

	"unahotel/internal/domain/shared/money"
)

type ReservationCreated struct {
	ReservationID      ID
	ConfirmationNumber string
	GuestID            string
	CheckInDate        string
	CheckOutDate       string
	Guests             int
	Total              money.Money
	At                 time.Time
}

func (e ReservationCreated) EventName() string     { return "reservation.created" }
func (e ReservationCreated) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCreated) OccurredAt() time.Time { return e.At }

type ReservationConfirmed struct {
	ReservationID ID
	At            time.Time
}

func (e ReservationConfirmed) EventName() string     { return "reservation.confirmed" }
func (e ReservationConfirmed) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationConfirmed) OccurredAt() time.Time { return e.At }

type ReservationCancelled struct {
	ReservationID ID
	PenaltyAmount int64
	AppliedRate   float64
	Rule          string
	Note          string
	At            time.Time
}

func (e ReservationCancelled) EventName() string     { return "reservation.cancelled" }
func (e ReservationCancelled) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCancelled) OccurredAt() time.Time { return e.At }

type GuestCheckedIn struct {
	ReservationID ID
	At            time.Time
}

func (e GuestCheckedIn) EventName() string     { return "reservation.checked_in" }
func (e GuestCheckedIn) AggregateID() string   { return string(e.ReservationID) }
func (e GuestCheckedIn) OccurredAt() time.Time { return e.At }

type GuestCheckedOut struct {
	ReservationID ID
	At            time.Time
}

func (e GuestCheckedOut) EventName() string     { return "reservation.checked_out" }
func (e GuestCheckedOut) AggregateID() string   { return string(e.ReservationID) }
func (e GuestCheckedOut) OccurredAt() time.Time { return e.At }

type NoShowRecorded struct {
	ReservationID ID
	At            time.Time
}

func (e NoShowRecorded) EventName() string     { return "reservation.no_show" }
func (e NoShowRecorded) AggregateID() string   { return string(e.ReservationID) }
func (e NoShowRecorded) OccurredAt() time.Time { return e.At }
