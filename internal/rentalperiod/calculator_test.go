package rentalperiod

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestChargeableDays(t *testing.T) {
	utc := time.UTC
	calc := New(utc)

	// 2025-01-06 понедельник
	mon := time.Date(2025, 1, 6, 0, 0, 0, 0, utc)
	fri := time.Date(2025, 1, 10, 0, 0, 0, 0, utc)
	nextMon := time.Date(2025, 1, 13, 0, 0, 0, 0, utc)

	tests := []struct {
		name   string
		rng    DateRange
		policy WeekendPolicy
		want   int
	}{
		{
			name:   "monday to friday without weekends",
			rng:    DateRange{Start: mon, End: fri},
			policy: WeekendPolicy{},
			want:   4,
		},
		{
			name:   "full week without weekends counts five",
			rng:    DateRange{Start: mon, End: nextMon},
			policy: WeekendPolicy{},
			want:   5,
		},
		{
			name:   "full week with weekends counts seven",
			rng:    DateRange{Start: mon, End: nextMon},
			policy: WeekendPolicy{IncludeSaturday: true, IncludeSunday: true},
			want:   7,
		},
		{
			name:   "saturday only policy over weekend",
			rng:    DateRange{Start: time.Date(2025, 1, 10, 0, 0, 0, 0, utc), End: nextMon},
			policy: WeekendPolicy{IncludeSaturday: true},
			want:   2, // пятница и суббота
		},
		{
			name:   "empty range",
			rng:    DateRange{Start: mon, End: mon},
			policy: WeekendPolicy{IncludeSaturday: true, IncludeSunday: true},
			want:   0,
		},
		{
			name:   "reversed range",
			rng:    DateRange{Start: fri, End: mon},
			policy: WeekendPolicy{IncludeSaturday: true, IncludeSunday: true},
			want:   0,
		},
		{
			name:   "same calendar date different clock times",
			rng:    DateRange{Start: mon.Add(2 * time.Hour), End: mon.Add(20 * time.Hour)},
			policy: WeekendPolicy{IncludeSaturday: true, IncludeSunday: true},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.ChargeableDays(tt.rng, tt.policy)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChargeableDays_FullPolicyCountsSpanLength(t *testing.T) {
	calc := New(time.UTC)
	policy := WeekendPolicy{IncludeSaturday: true, IncludeSunday: true}
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	for n := 1; n <= 31; n++ {
		rng := DateRange{Start: start, End: start.AddDate(0, 0, n)}
		assert.Equal(t, n, calc.ChargeableDays(rng, policy), "span of %d days", n)
	}
}

func TestChargeableDays_LinearUnderConcatenation(t *testing.T) {
	calc := New(time.UTC)
	policy := WeekendPolicy{IncludeSaturday: false, IncludeSunday: true}

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 2, 0)

	for mid := start; !mid.After(end); mid = mid.AddDate(0, 0, 3) {
		total := calc.ChargeableDays(DateRange{Start: start, End: end}, policy)
		left := calc.ChargeableDays(DateRange{Start: start, End: mid}, policy)
		right := calc.ChargeableDays(DateRange{Start: mid, End: end}, policy)
		assert.Equal(t, total, left+right, "split at %s", mid)
	}
}

func TestNormalizeDenormalize_RoundTrip(t *testing.T) {
	zones := []string{"UTC", "America/Sao_Paulo", "Asia/Yekaterinburg"}

	// полночь 2025-06-15 в UTC, как отдаёт виджет выбора даты
	picker := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC).UnixMilli()

	for _, name := range zones {
		t.Run(name, func(t *testing.T) {
			loc := mustZone(t, name)
			calc := New(loc)

			local := calc.NormalizeToLocalMidnight(picker)
			localTime := time.UnixMilli(local).In(loc)
			assert.Equal(t, 0, localTime.Hour())
			assert.Equal(t, 15, localTime.Day())
			assert.Equal(t, time.June, localTime.Month())

			back := calc.DenormalizeToPickerMillis(local)
			assert.Equal(t, picker, back)

			backTime := time.UnixMilli(back).In(time.UTC)
			assert.Equal(t, 0, backTime.Hour())
			assert.Equal(t, 15, backTime.Day())
		})
	}
}

func TestNormalizeToLocalMidnight_NegativeOffsetKeepsDate(t *testing.T) {
	loc := mustZone(t, "America/Sao_Paulo")
	calc := New(loc)

	picker := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC).UnixMilli()
	local := time.UnixMilli(calc.NormalizeToLocalMidnight(picker)).In(loc)

	// без нормализации UTC-полночь в Сан-Паулу это ещё 5 января
	assert.Equal(t, 6, local.Day())
	assert.Equal(t, time.January, local.Month())
	assert.Equal(t, 0, local.Hour())
}

func TestLocalDate(t *testing.T) {
	loc := mustZone(t, "Asia/Yekaterinburg")
	calc := New(loc)

	ts := time.Date(2025, 6, 15, 22, 30, 0, 0, loc).UnixMilli()
	got := calc.LocalDate(ts)

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, loc), got)
}
