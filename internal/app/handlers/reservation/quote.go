// Package reservation hosts the application handlers the UI-facing transport
// dispatches to. Each handler resolves catalog data first, then runs the pure
// rule engine over plain values.
package reservation

import (
	"context"
	"time"

	"unahotel/internal/domain/catalog"
	domainpricing "unahotel/internal/domain/pricing"
	domainreservation "unahotel/internal/domain/reservation"
)

// QuoteQuery is the per-field-change pass: the UI sends the whole draft and
// gets back the recomputed draft, the error map and, when valid, the totals.
type QuoteQuery struct {
	Draft domainreservation.Draft
}

type QuoteResult struct {
	Draft  domainreservation.Draft            `json:"draft"`
	Errors domainreservation.ValidationErrors `json:"errors"`
	Totals *domainpricing.Result              `json:"totals,omitempty"`
}

type QuoteHandler struct {
	Rooms    catalog.RoomRepository
	Services catalog.ServiceRepository
	Rules    domainreservation.Rules
	// Now is injectable so handler tests can pin the clock; the engine
	// itself always receives time explicitly.
	Now func() time.Time
}

func (h *QuoteHandler) Handle(ctx context.Context, q QuoteQuery) (*QuoteResult, error) {
	draft := domainreservation.Recompute(q.Draft)

	selected, services, available, err := resolveCatalog(ctx, h.Rooms, h.Services, draft)
	if err != nil {
		return nil, err
	}

	now := h.now()
	result := &QuoteResult{
		Draft:  draft,
		Errors: h.Rules.Validate(draft, selected, available, now),
	}
	if result.Errors.Valid() && draft.NumberOfNights >= 1 && len(selected) > 0 {
		totals, err := h.Rules.Price(draft, selected, services)
		if err != nil {
			return nil, err
		}
		result.Totals = &totals
	}
	return result, nil
}

func (h *QuoteHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

// resolveCatalog fetches the rooms and services a draft references, plus the
// bookable inventory for its dates. Lookups happen here, before the engine:
// the validators and the calculator stay free of I/O.
func resolveCatalog(
	ctx context.Context,
	rooms catalog.RoomRepository,
	services catalog.ServiceRepository,
	draft domainreservation.Draft,
) (selected []catalog.Room, addons []catalog.Service, available []catalog.Room, err error) {
	if rooms != nil && len(draft.SelectedRoomIDs) > 0 {
		selected, err = rooms.ByIDs(ctx, draft.SelectedRoomIDs)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	if rooms != nil && draft.CheckInDate != "" && draft.CheckOutDate != "" {
		available, err = rooms.Available(ctx, draft.CheckInDate, draft.CheckOutDate)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	if services != nil && len(draft.SelectedServiceIDs) > 0 {
		addons, err = services.ByIDs(ctx, draft.SelectedServiceIDs)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return selected, addons, available, nil
}
