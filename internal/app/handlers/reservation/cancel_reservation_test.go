package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainreservation "unahotel/internal/domain/reservation"
)

func TestCancelReservation(t *testing.T) {
	createHandler, reservations, box := newCreateHandler(t)

	created, err := createHandler.Handle(context.Background(), CreateReservationCommand{
		GuestID: "guest-42",
		Draft:   validDraft(),
	})
	require.NoError(t, err)
	require.Empty(t, created.Errors)

	h := &CancelReservationHandler{
		Reservations: reservations,
		Policy:       domainreservation.DefaultPolicy(),
		Outbox:       box,
		// 36 hours before the 2026-03-15 midnight check-in: the 24-72h
		// tier applies at half the deposit.
		Now: func() time.Time { return time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC) },
	}

	res, err := h.Handle(context.Background(), CancelReservationCommand{
		ReservationID: created.ReservationID,
		Note:          "change of plans",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.5, res.AppliedRate)
	// Deposit is 73450.00; half of that rounds to 36725 whole colones.
	assert.Equal(t, int64(36725), res.PenaltyAmount)

	stored, err := reservations.ByID(context.Background(), domainreservation.ID(created.ReservationID))
	require.NoError(t, err)
	assert.Equal(t, domainreservation.StateCancelled, stored.State)
	assert.Equal(t, "change of plans", stored.CancellationNote)
	assert.Equal(t, int64(2), stored.Version)

	records, err := box.Pending(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "reservation.cancelled", records[1].Name)
}

func TestCancelReservationTwice(t *testing.T) {
	createHandler, reservations, box := newCreateHandler(t)

	created, err := createHandler.Handle(context.Background(), CreateReservationCommand{
		GuestID: "guest-42",
		Draft:   validDraft(),
	})
	require.NoError(t, err)

	h := &CancelReservationHandler{
		Reservations: reservations,
		Policy:       domainreservation.DefaultPolicy(),
		Outbox:       box,
		Now:          func() time.Time { return handlerNow },
	}

	_, err = h.Handle(context.Background(), CancelReservationCommand{ReservationID: created.ReservationID})
	require.NoError(t, err)

	_, err = h.Handle(context.Background(), CancelReservationCommand{ReservationID: created.ReservationID})
	assert.ErrorIs(t, err, domainreservation.ErrInvalidState)
}

func TestCancelReservationNotFound(t *testing.T) {
	_, reservations, box := newCreateHandler(t)

	h := &CancelReservationHandler{
		Reservations: reservations,
		Policy:       domainreservation.DefaultPolicy(),
		Outbox:       box,
		Now:          func() time.Time { return handlerNow },
	}

	_, err := h.Handle(context.Background(), CancelReservationCommand{ReservationID: "missing"})
	assert.ErrorIs(t, err, domainreservation.ErrReservationNotFound)
}
