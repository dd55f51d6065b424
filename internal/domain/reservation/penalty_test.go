package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePenaltyTiers(t *testing.T) {
	policy := DefaultPolicy()
	// Check-in day is fixed; moving "now" walks through every tier.
	checkIn := "2026-03-11"
	checkInAt := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		now        time.Time
		deposit    float64
		wantRate   float64
		wantAmount int64
		wantLabel  string
	}{
		{
			name: "check-in already passed",
			now:  checkInAt.Add(5 * time.Hour), deposit: 100000,
			wantRate: 1.0, wantAmount: 100000, wantLabel: "entrada vencida",
		},
		{
			name: "ten hours before check-in",
			now:  checkInAt.Add(-10 * time.Hour), deposit: 92377.5,
			wantRate: 0.75, wantAmount: 69283, wantLabel: "< 24h",
		},
		{
			name: "two days before check-in",
			now:  checkInAt.Add(-48 * time.Hour), deposit: 80000,
			wantRate: 0.5, wantAmount: 40000, wantLabel: "24-72h",
		},
		{
			name: "five days before check-in",
			now:  checkInAt.Add(-120 * time.Hour), deposit: 80000,
			wantRate: 0.25, wantAmount: 20000, wantLabel: "3-7 days",
		},
		{
			name: "two hundred hours before check-in",
			now:  checkInAt.Add(-200 * time.Hour), deposit: 80000,
			wantRate: 0, wantAmount: 0, wantLabel: FreeCancellationLabel,
		},
		{
			name: "exactly 24 hours lands in the 24h tier",
			now:  checkInAt.Add(-24 * time.Hour), deposit: 1000,
			wantRate: 0.75, wantAmount: 750, wantLabel: "< 24h",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePenalty(checkIn, tt.deposit, tt.now, policy)
			assert.Equal(t, tt.wantRate, got.AppliedRate)
			assert.Equal(t, tt.wantAmount, got.PenaltyAmount)
			assert.Equal(t, tt.wantLabel, got.RuleDescription)
			require.NotNil(t, got.HoursUntilCheckIn)
			assert.InDelta(t, checkInAt.Sub(tt.now).Hours(), *got.HoursUntilCheckIn, 1e-9)
		})
	}
}

func TestCalculatePenaltyMissingDate(t *testing.T) {
	policy := DefaultPolicy()
	for _, raw := range []string{"", "not-a-date", "2026/03/11"} {
		got := CalculatePenalty(raw, 50000, time.Now(), policy)
		assert.Zero(t, got.PenaltyAmount)
		assert.Zero(t, got.AppliedRate)
		assert.Equal(t, NoCheckInLabel, got.RuleDescription)
		assert.Nil(t, got.HoursUntilCheckIn)
	}
}

func TestPenaltyRateMonotonicallyNonIncreasing(t *testing.T) {
	policy := DefaultPolicy()
	checkInAt := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	checkIn := checkInAt.Format(DateFormat)

	hours := []time.Duration{1, 48, 100, 200, 500}
	prev := 2.0
	for _, h := range hours {
		res := CalculatePenalty(checkIn, 10000, checkInAt.Add(-h*time.Hour), policy)
		assert.LessOrEqual(t, res.AppliedRate, prev, "rate at %dh", h)
		prev = res.AppliedRate
	}
}

func TestCalculatePenaltyCustomTiers(t *testing.T) {
	policy := DefaultPolicy()
	policy.PenaltyTiers = []PenaltyTier{
		{MaxHours: 48, Rate: 1.0, Label: "no refund"},
		{MaxHours: 0, Rate: 1.0, Label: "no refund"},
	}
	checkInAt := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	got := CalculatePenalty(checkInAt.Format(DateFormat), 1000, checkInAt.Add(-30*time.Hour), policy)
	assert.Equal(t, 1.0, got.AppliedRate)
	assert.Equal(t, "no refund", got.RuleDescription)

	got = CalculatePenalty(checkInAt.Format(DateFormat), 1000, checkInAt.Add(-72*time.Hour), policy)
	assert.Zero(t, got.AppliedRate)
	assert.Equal(t, FreeCancellationLabel, got.RuleDescription)
}
