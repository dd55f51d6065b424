package reservation

import (
	"context"
	"time"

	"unahotel/internal/app/outbox"
	domainreservation "unahotel/internal/domain/reservation"
)

type CancelReservationCommand struct {
	ReservationID string
	Note          string
}

type CancelReservationResult struct {
	ReservationID string  `json:"reservation_id"`
	PenaltyAmount int64   `json:"penalty_amount"`
	AppliedRate   float64 `json:"applied_rate"`
	Rule          string  `json:"rule"`
}

type CancelReservationHandler struct {
	Reservations domainreservation.Repository
	Policy       domainreservation.Policy
	Outbox       outbox.Outbox
	Encoder      outbox.EventEncoder
	Now          func() time.Time
}

func (h *CancelReservationHandler) Handle(ctx context.Context, cmd CancelReservationCommand) (*CancelReservationResult, error) {
	res, err := h.Reservations.ByID(ctx, domainreservation.ID(cmd.ReservationID))
	if err != nil {
		return nil, err
	}

	penalty, err := res.Cancel(cmd.Note, h.now(), h.Policy)
	if err != nil {
		return nil, err
	}

	if err := h.Reservations.Save(ctx, res); err != nil {
		return nil, err
	}

	pending := res.PendingEvents()
	res.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, pending); err != nil {
		return nil, err
	}

	return &CancelReservationResult{
		ReservationID: string(res.ID),
		PenaltyAmount: penalty.PenaltyAmount,
		AppliedRate:   penalty.AppliedRate,
		Rule:          penalty.RuleDescription,
	}, nil
}

func (h *CancelReservationHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}
