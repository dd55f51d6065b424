package reservation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"unahotel/internal/app/outbox"
	"unahotel/internal/domain/catalog"
	domainpricing "unahotel/internal/domain/pricing"
	domainreservation "unahotel/internal/domain/reservation"
)

type CreateReservationCommand struct {
	GuestID string
	Draft   domainreservation.Draft
}

// CreateReservationResult reports either the persisted reservation or the
// validation failures; user-input problems never surface as Go errors.
type CreateReservationResult struct {
	ReservationID      string                             `json:"reservation_id,omitempty"`
	ConfirmationNumber string                             `json:"confirmation_number,omitempty"`
	Errors             domainreservation.ValidationErrors `json:"errors,omitempty"`
	Totals             *domainpricing.Result              `json:"totals,omitempty"`
}

type CreateReservationHandler struct {
	Reservations domainreservation.Repository
	Rooms        catalog.RoomRepository
	Services     catalog.ServiceRepository
	Rules        domainreservation.Rules
	Outbox       outbox.Outbox
	Encoder      outbox.EventEncoder
	Now          func() time.Time
}

func (h *CreateReservationHandler) Handle(ctx context.Context, cmd CreateReservationCommand) (*CreateReservationResult, error) {
	draft := domainreservation.Recompute(cmd.Draft)

	selected, services, available, err := resolveCatalog(ctx, h.Rooms, h.Services, draft)
	if err != nil {
		return nil, err
	}

	now := h.now()
	if errs := h.Rules.Validate(draft, selected, available, now); !errs.Valid() {
		return &CreateReservationResult{Errors: errs}, nil
	}

	totals, err := h.Rules.Price(draft, selected, services)
	if err != nil {
		return nil, err
	}

	res, err := domainreservation.New(domainreservation.CreateParams{
		ID:                 domainreservation.ID(uuid.NewString()),
		ConfirmationNumber: newConfirmationNumber(),
		GuestID:            cmd.GuestID,
		Draft:              draft,
		Price:              totals,
		CreatedAt:          now,
	})
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

	return &CreateReservationResult{
		ReservationID:      string(res.ID),
		ConfirmationNumber: res.ConfirmationNumber,
		Totals:             &totals,
	}, nil
}

func (h *CreateReservationHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

// newConfirmationNumber derives the short code guests quote at the desk.
func newConfirmationNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "UNA-" + raw[:8]
}
