package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unahotel/internal/domain/catalog"
	"unahotel/internal/domain/shared/money"
)

func room(id, roomType string, capacity int, rateUnits int64) catalog.Room {
	return catalog.Room{
		ID:          catalog.RoomID(id),
		Type:        roomType,
		Capacity:    capacity,
		NightlyRate: money.Must(rateUnits*100, "CRC"),
	}
}

func TestRulesValidateMergesBothValidators(t *testing.T) {
	rules := NewRules(DefaultPolicy())
	d := Recompute(Draft{
		CheckInDate:    day(-2),
		CheckOutDate:   day(1),
		NumberOfAdults: 0,
	})
	errs := rules.Validate(d, nil, nil, testToday)
	assert.Contains(t, errs, FieldCheckInDate)
	assert.Contains(t, errs, FieldAdults)
	assert.Contains(t, errs, FieldGuests)
}

func TestRulesValidateCleanDraft(t *testing.T) {
	rules := NewRules(DefaultPolicy())
	d := Recompute(Draft{
		CheckInDate:      day(10),
		CheckOutDate:     day(12),
		NumberOfAdults:   2,
		NumberOfChildren: 1,
	})
	selected := []catalog.Room{room("room-101", "Habitación Deluxe", 4, 65000)}
	errs := rules.Validate(d, selected, selected, testToday)
	assert.True(t, errs.Valid(), "unexpected errors: %v", errs)
	assert.Equal(t, 2, d.NumberOfNights)
}

func TestRulesValidateNoRoomFits(t *testing.T) {
	rules := NewRules(DefaultPolicy())
	d := Recompute(Draft{
		CheckInDate:    day(5),
		CheckOutDate:   day(8),
		NumberOfAdults: 5,
		NumberOfChildren: 2,
	})
	available := []catalog.Room{
		room("room-101", "Standard", 2, 45000),
		room("room-102", "Deluxe", 4, 65000),
		room("room-103", "Suite", 6, 120000),
	}
	errs := rules.Validate(d, nil, available, testToday)
	assert.Equal(t, "no available room fits 7 guests", errs[FieldGuests])
}

func TestRulesValidateCapacityDistinctFromInventory(t *testing.T) {
	rules := NewRules(DefaultPolicy())
	d := Recompute(Draft{
		CheckInDate:    day(5),
		CheckOutDate:   day(8),
		NumberOfAdults: 4,
	})
	selected := []catalog.Room{room("room-101", "Standard", 2, 45000)}
	available := []catalog.Room{
		room("room-101", "Standard", 2, 45000),
		room("room-103", "Suite", 6, 120000),
	}
	// Inventory can host four guests, so the failure is about the chosen room.
	errs := rules.Validate(d, selected, available, testToday)
	assert.Equal(t, "Standard holds at most 2 guest(s)", errs[FieldGuests])
}

func TestRulesValidateMultiRoomCapacitySums(t *testing.T) {
	rules := NewRules(DefaultPolicy())
	d := Recompute(Draft{
		CheckInDate:    day(5),
		CheckOutDate:   day(7),
		NumberOfAdults: 4,
		NumberOfChildren: 2,
	})
	selected := []catalog.Room{
		room("room-101", "Standard", 2, 45000),
		room("room-102", "Deluxe", 4, 65000),
	}
	errs := rules.Validate(d, selected, selected, testToday)
	assert.True(t, errs.Valid(), "summed capacity 6 should fit 6 guests: %v", errs)
}

func TestRulesPrice(t *testing.T) {
	rules := NewRules(DefaultPolicy())
	d := Recompute(Draft{
		CheckInDate:    day(10),
		CheckOutDate:   day(12),
		NumberOfAdults: 2,
	})
	selected := []catalog.Room{room("room-101", "Deluxe", 4, 65000)}

	result, err := rules.Price(d, selected, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(13000000), result.Subtotal.Amount)
	assert.Equal(t, int64(1690000), result.Taxes.Amount)
	assert.Equal(t, int64(14690000), result.Total.Amount)
	assert.Equal(t, int64(7345000), result.DepositRequired.Amount)
}

func TestRulesPenalty(t *testing.T) {
	rules := NewRules(DefaultPolicy())
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	got := rules.Penalty("2026-03-11", 92377.5, now)
	assert.Equal(t, 0.75, got.AppliedRate)
	assert.Equal(t, int64(69283), got.PenaltyAmount)
}
