// Package completion turns completed-slot counts into rates and flags
// against the fixed capacities of 4 slots per day and 7 days per week.
package completion

import (
	"math"

	"github.com/ownessay/ownessay-backend/internal/apperrors"
	"github.com/ownessay/ownessay-backend/internal/types"
)

// DailyRate maps a completed-slot count in [0, 4] to a rate in [0, 1].
func DailyRate(completedCount int) (float64, error) {
	if completedCount < 0 || completedCount > types.SlotsPerDay {
		return 0, apperrors.Newf(apperrors.KindRange, "completed count must be between 0 and %d, got %d", types.SlotsPerDay, completedCount)
	}
	return float64(completedCount) / types.SlotsPerDay, nil
}

// WeeklyRate maps a completed-day count in [0, 7] to a rate in [0, 1].
func WeeklyRate(completedDays int) (float64, error) {
	if completedDays < 0 || completedDays > types.DaysPerWeek {
		return 0, apperrors.Newf(apperrors.KindRange, "completed days must be between 0 and %d, got %d", types.DaysPerWeek, completedDays)
	}
	return float64(completedDays) / types.DaysPerWeek, nil
}

func IsAllCompleted(completedCount int) bool {
	return completedCount == types.SlotsPerDay
}

// ToPercentage rounds a rate to a whole percentage, half away from zero.
func ToPercentage(rate float64) int {
	return int(math.Round(rate * 100))
}
