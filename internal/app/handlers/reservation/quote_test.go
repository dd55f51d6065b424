package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unahotel/internal/domain/catalog"
	domainreservation "unahotel/internal/domain/reservation"
	"unahotel/internal/domain/shared/money"
	"unahotel/internal/infra/storage/memory"
)

var handlerNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func seededCatalog(t *testing.T) (*memory.RoomRepository, *memory.ServiceRepository) {
	t.Helper()
	rooms := memory.NewRoomRepository()
	rooms.Put(catalog.Room{ID: "std-1", Type: "Standard", Capacity: 2, NightlyRate: money.Must(6500000, "CRC")})
	rooms.Put(catalog.Room{ID: "fam-1", Type: "Family Suite", Capacity: 5, NightlyRate: money.Must(12000000, "CRC")})
	services := memory.NewServiceRepository()
	services.Put(catalog.Service{ID: "breakfast", Name: "Breakfast", Price: money.Must(500000, "CRC")})
	return rooms, services
}

func validDraft() domainreservation.Draft {
	return domainreservation.Draft{
		CheckInDate:     "2026-03-15",
		CheckOutDate:    "2026-03-17",
		NumberOfAdults:  2,
		SelectedRoomIDs: []catalog.RoomID{"std-1"},
	}
}

func TestQuoteHandlerValidDraft(t *testing.T) {
	rooms, services := seededCatalog(t)
	h := &QuoteHandler{
		Rooms:    rooms,
		Services: services,
		Rules:    domainreservation.NewRules(domainreservation.DefaultPolicy()),
		Now:      func() time.Time { return handlerNow },
	}

	res, err := h.Handle(context.Background(), QuoteQuery{Draft: validDraft()})
	require.NoError(t, err)

	assert.Empty(t, res.Errors)
	assert.Equal(t, 2, res.Draft.NumberOfGuests)
	assert.Equal(t, 2, res.Draft.NumberOfNights)
	require.NotNil(t, res.Totals)
	assert.Equal(t, int64(13000000), res.Totals.Subtotal.Amount)
	assert.Equal(t, int64(1690000), res.Totals.Taxes.Amount)
	assert.Equal(t, int64(14690000), res.Totals.Total.Amount)
	assert.Equal(t, int64(7345000), res.Totals.DepositRequired.Amount)
}

func TestQuoteHandlerWithService(t *testing.T) {
	rooms, services := seededCatalog(t)
	h := &QuoteHandler{
		Rooms:    rooms,
		Services: services,
		Rules:    domainreservation.NewRules(domainreservation.DefaultPolicy()),
		Now:      func() time.Time { return handlerNow },
	}

	draft := validDraft()
	draft.SelectedServiceIDs = []catalog.ServiceID{"breakfast"}

	res, err := h.Handle(context.Background(), QuoteQuery{Draft: draft})
	require.NoError(t, err)
	require.NotNil(t, res.Totals)
	assert.Equal(t, int64(500000), res.Totals.ServicesTotal.Amount)
	assert.Equal(t, int64(1755000), res.Totals.Taxes.Amount)
	assert.Equal(t, int64(15255000), res.Totals.Total.Amount)
}

func TestQuoteHandlerInvalidDraftSkipsTotals(t *testing.T) {
	rooms, services := seededCatalog(t)
	h := &QuoteHandler{
		Rooms:    rooms,
		Services: services,
		Rules:    domainreservation.NewRules(domainreservation.DefaultPolicy()),
		Now:      func() time.Time { return handlerNow },
	}

	draft := validDraft()
	draft.CheckOutDate = "2026-03-14" // before check-in

	res, err := h.Handle(context.Background(), QuoteQuery{Draft: draft})
	require.NoError(t, err)
	assert.Contains(t, res.Errors, domainreservation.FieldCheckOutDate)
	assert.Nil(t, res.Totals)
}

func TestQuoteHandlerNoRoomFits(t *testing.T) {
	rooms, services := seededCatalog(t)
	h := &QuoteHandler{
		Rooms:    rooms,
		Services: services,
		Rules:    domainreservation.NewRules(domainreservation.DefaultPolicy()),
		Now:      func() time.Time { return handlerNow },
	}

	draft := validDraft()
	draft.SelectedRoomIDs = nil
	draft.NumberOfAdults = 5
	draft.NumberOfChildren = 2 // 7 guests, largest room sleeps 5

	res, err := h.Handle(context.Background(), QuoteQuery{Draft: draft})
	require.NoError(t, err)
	assert.Equal(t, "no available room fits 7 guests", res.Errors[domainreservation.FieldGuests])
	assert.Nil(t, res.Totals)
}

func TestQuoteHandlerUnknownRoom(t *testing.T) {
	rooms, services := seededCatalog(t)
	h := &QuoteHandler{
		Rooms:    rooms,
		Services: services,
		Rules:    domainreservation.NewRules(domainreservation.DefaultPolicy()),
		Now:      func() time.Time { return handlerNow },
	}

	draft := validDraft()
	draft.SelectedRoomIDs = []catalog.RoomID{"penthouse"}

	_, err := h.Handle(context.Background(), QuoteQuery{Draft: draft})
	assert.ErrorIs(t, err, catalog.ErrRoomNotFound)
}
