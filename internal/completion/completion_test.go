package completion

import (
	"testing"

	"github.com/ownessay/ownessay-backend/internal/apperrors"
)

func TestDailyRate(t *testing.T) {
	cases := []struct {
		count   int
		rate    float64
		percent int
	}{
		{0, 0, 0},
		{1, 0.25, 25},
		{2, 0.5, 50},
		{3, 0.75, 75},
		{4, 1, 100},
	}
	for _, tc := range cases {
		rate, err := DailyRate(tc.count)
		if err != nil {
			t.Fatalf("count %d: %v", tc.count, err)
		}
		if rate != tc.rate {
			t.Fatalf("count %d: expected rate %v, got %v", tc.count, tc.rate, rate)
		}
		if got := ToPercentage(rate); got != tc.percent {
			t.Fatalf("count %d: expected %d%%, got %d%%", tc.count, tc.percent, got)
		}
	}
}

func TestDailyRate_OutOfRange(t *testing.T) {
	for _, count := range []int{-1, 5, 100} {
		if _, err := DailyRate(count); !apperrors.IsKind(err, apperrors.KindRange) {
			t.Fatalf("count %d: expected range error, got %v", count, err)
		}
	}
}

func TestWeeklyRate(t *testing.T) {
	// 7 is not a power of two, so rounding matters: 1/7 -> 14%, 5/7 -> 71%.
	percents := []int{0, 14, 29, 43, 57, 71, 86, 100}
	for days := 0; days <= 7; days++ {
		rate, err := WeeklyRate(days)
		if err != nil {
			t.Fatalf("days %d: %v", days, err)
		}
		if got := ToPercentage(rate); got != percents[days] {
			t.Fatalf("days %d: expected %d%%, got %d%%", days, percents[days], got)
		}
	}
}

func TestWeeklyRate_OutOfRange(t *testing.T) {
	for _, days := range []int{-1, 8} {
		if _, err := WeeklyRate(days); !apperrors.IsKind(err, apperrors.KindRange) {
			t.Fatalf("days %d: expected range error, got %v", days, err)
		}
	}
}

func TestIsAllCompleted(t *testing.T) {
	for count := 0; count < 4; count++ {
		if IsAllCompleted(count) {
			t.Fatalf("count %d should not be all completed", count)
		}
	}
	if !IsAllCompleted(4) {
		t.Fatalf("count 4 should be all completed")
	}
}

func TestToPercentage_RoundsHalfUp(t *testing.T) {
	if got := ToPercentage(0.125); got != 13 {
		t.Fatalf("expected 13, got %d", got)
	}
	if got := ToPercentage(0.124); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
}
