package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ownessay/ownessay-backend/internal/logger"
	"github.com/ownessay/ownessay-backend/internal/repos"
	"github.com/ownessay/ownessay-backend/internal/utils"
)

// streakWindowDays caps how far back either streak calculation looks.
const streakWindowDays = 365

// StreakService computes consecutive-day streaks from a user's record
// history. Both values are recomputed from live records on every call; no
// incremental streak state is kept anywhere.
type StreakService interface {
	GetCurrentStreak(ctx context.Context, userID uuid.UUID) (int, error)
	GetMaxStreak(ctx context.Context, userID uuid.UUID) (int, error)
}

type streakService struct {
	db         *gorm.DB
	log        *logger.Logger
	recordRepo repos.RecordRepo
}

func NewStreakService(db *gorm.DB, log *logger.Logger, recordRepo repos.RecordRepo) StreakService {
	return &streakService{
		db:         db,
		log:        log.With("service", "StreakService"),
		recordRepo: recordRepo,
	}
}

// GetCurrentStreak walks backward from today one day at a time, counting
// while each day has at least one live completed record. Today itself
// incomplete means 0.
func (s *streakService) GetCurrentStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	today := utils.DateOnly(time.Now())
	completed, err := s.completedDates(ctx, userID, today)
	if err != nil {
		return 0, err
	}

	streak := 0
	for i := 0; i < streakWindowDays; i++ {
		day := today.AddDate(0, 0, -i).Format(time.DateOnly)
		if _, ok := completed[day]; !ok {
			break
		}
		streak++
	}
	s.log.Debug("Computed current streak", "user_id", userID, "streak", streak)
	return streak, nil
}

// GetMaxStreak scans the sorted distinct completed dates of the trailing
// 365-day window for the longest run of consecutive days. An empty set is
// 0; any non-empty set is at least 1.
func (s *streakService) GetMaxStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	today := utils.DateOnly(time.Now())
	completed, err := s.completedDates(ctx, userID, today)
	if err != nil {
		return 0, err
	}
	if len(completed) == 0 {
		return 0, nil
	}

	dates := make([]time.Time, 0, len(completed))
	for day := range completed {
		d, pErr := time.Parse(time.DateOnly, day)
		if pErr != nil {
			return 0, fmt.Errorf("failed to parse completed date %q: %w", day, pErr)
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	maxStreak := 1
	current := 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].AddDate(0, 0, 1).Equal(dates[i]) {
			current++
			if current > maxStreak {
				maxStreak = current
			}
		} else {
			current = 1
		}
	}
	s.log.Debug("Computed max streak", "user_id", userID, "max_streak", maxStreak)
	return maxStreak, nil
}

// completedDates reduces the window's live records to the set of distinct
// dates holding at least one completed record. Soft-deleted records never
// reach this set: the repo filters them out at the query.
func (s *streakService) completedDates(ctx context.Context, userID uuid.UUID, today time.Time) (map[string]struct{}, error) {
	start := today.AddDate(0, 0, -streakWindowDays)
	records, err := s.recordRepo.GetLiveByUserAndDateRange(ctx, nil, userID, start, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for streak window: %w", err)
	}
	completed := make(map[string]struct{})
	for _, rec := range records {
		if rec.CompletedLive() {
			completed[utils.DateOnly(rec.RecordDate).Format(time.DateOnly)] = struct{}{}
		}
	}
	return completed, nil
}
