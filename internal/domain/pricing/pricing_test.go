package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unahotel/internal/domain/catalog"
	"unahotel/internal/domain/shared/money"
)

func crc(units int64) money.Money {
	return money.Must(units*100, "CRC")
}

func TestQuoteTwoNightStay(t *testing.T) {
	result, err := Quote(QuoteInput{
		Rooms:       []catalog.Room{{ID: "room-101", Type: "Deluxe", Capacity: 4, NightlyRate: crc(65000)}},
		Nights:      2,
		TaxRate:     0.13,
		DepositRate: 0.5,
		Currency:    "CRC",
	})
	require.NoError(t, err)
	assert.Equal(t, crc(130000), result.Subtotal)
	assert.Equal(t, crc(0), result.ServicesTotal)
	assert.Equal(t, crc(16900), result.Taxes)
	assert.Equal(t, crc(146900), result.Total)
	assert.Equal(t, crc(73450), result.DepositRequired)
}

func TestQuoteWithServices(t *testing.T) {
	result, err := Quote(QuoteInput{
		Rooms:  []catalog.Room{{ID: "room-101", NightlyRate: crc(50000)}},
		Nights: 3,
		Services: []catalog.Service{
			{ID: "svc-breakfast", Name: "Desayuno", Price: crc(8000)},
			{ID: "svc-spa", Name: "Spa", Price: crc(25000)},
		},
		TaxRate:     0.13,
		DepositRate: 0.5,
		Currency:    "CRC",
	})
	require.NoError(t, err)
	assert.Equal(t, crc(150000), result.Subtotal)
	assert.Equal(t, crc(33000), result.ServicesTotal)
	assert.Equal(t, crc(23790), result.Taxes)
	assert.Equal(t, crc(206790), result.Total)
}

func TestQuoteMultiRoomSumsNightlyRates(t *testing.T) {
	result, err := Quote(QuoteInput{
		Rooms: []catalog.Room{
			{ID: "room-101", NightlyRate: crc(45000)},
			{ID: "room-102", NightlyRate: crc(65000)},
		},
		Nights:      2,
		TaxRate:     0.13,
		DepositRate: 0.5,
		Currency:    "CRC",
	})
	require.NoError(t, err)
	assert.Equal(t, crc(220000), result.Subtotal)
}

func TestQuoteZeroNights(t *testing.T) {
	result, err := Quote(QuoteInput{
		Rooms:       []catalog.Room{{ID: "room-101", NightlyRate: crc(65000)}},
		Nights:      0,
		TaxRate:     0.13,
		DepositRate: 0.5,
		Currency:    "CRC",
	})
	require.NoError(t, err)
	assert.True(t, result.Subtotal.IsZero())
	assert.True(t, result.Total.IsZero())
}

func TestQuoteContractViolations(t *testing.T) {
	base := QuoteInput{
		Rooms:       []catalog.Room{{ID: "room-101", NightlyRate: crc(1000)}},
		Nights:      1,
		TaxRate:     0.13,
		DepositRate: 0.5,
		Currency:    "CRC",
	}

	in := base
	in.Nights = -1
	_, err := Quote(in)
	assert.ErrorIs(t, err, ErrNegativeNights)

	in = base
	in.Services = []catalog.Service{{ID: "svc-bad", Price: money.Must(-100, "CRC")}}
	_, err = Quote(in)
	assert.ErrorIs(t, err, ErrNegativePrice)

	in = base
	in.Currency = ""
	_, err = Quote(in)
	assert.ErrorIs(t, err, ErrCurrencyUnset)
}

func TestQuoteLinearInNights(t *testing.T) {
	for n := 0; n <= 10; n++ {
		result, err := Quote(QuoteInput{
			Rooms:       []catalog.Room{{ID: "room-101", NightlyRate: crc(12345)}},
			Nights:      n,
			TaxRate:     0.13,
			DepositRate: 0.5,
			Currency:    "CRC",
		})
		require.NoError(t, err)
		assert.Equal(t, crc(12345).Multiply(int64(n)), result.Subtotal, "nights=%d", n)
	}
}

func TestQuoteTotalIsExactSumOfComponents(t *testing.T) {
	rates := []int64{1, 3, 777, 12345, 65000}
	for _, rate := range rates {
		for n := 1; n <= 5; n++ {
			result, err := Quote(QuoteInput{
				Rooms:       []catalog.Room{{ID: "room-101", NightlyRate: crc(rate)}},
				Nights:      n,
				Services:    []catalog.Service{{ID: "svc-x", Price: crc(rate / 2)}},
				TaxRate:     0.13,
				DepositRate: 0.5,
				Currency:    "CRC",
			})
			require.NoError(t, err)
			want := result.Subtotal.Amount + result.ServicesTotal.Amount + result.Taxes.Amount
			assert.Equal(t, want, result.Total.Amount, "rate=%d nights=%d", rate, n)
		}
	}
}
