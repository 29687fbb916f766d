package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ownessay/ownessay-backend/internal/apperrors"
	"github.com/ownessay/ownessay-backend/internal/logger"
	"github.com/ownessay/ownessay-backend/internal/repos"
	"github.com/ownessay/ownessay-backend/internal/types"
	"github.com/ownessay/ownessay-backend/internal/utils"
)

// WeekProgressView is the computed read model for one (user, week) pair.
type WeekProgressView struct {
	WeekStart        string  `json:"week_start"`
	CompletedDays    int     `json:"completed_days"`
	CompletionRate   float64 `json:"completion_rate"`
	CanGenerateEssay bool    `json:"can_generate_essay"`
	EssayGenerated   bool    `json:"essay_generated"`
}

// WeekProgressService owns the per-(user, week) completion aggregate:
// compute on first read, overwrite on recompute, gate essay generation.
// completed_days is always re-derivable from live records; the row-level
// unique index on (user_id, week_start) serializes racing writers.
type WeekProgressService interface {
	GetWeekProgress(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*WeekProgressView, error)
	GetCurrentWeekProgress(ctx context.Context, userID uuid.UUID) (*WeekProgressView, error)
	GetAllWeekProgress(ctx context.Context, userID uuid.UUID) ([]*WeekProgressView, error)
	RecomputeForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.WeekProgress, error)
	MarkEssayGenerated(ctx context.Context, userID uuid.UUID, weekStart time.Time) error
}

type weekProgressService struct {
	db               *gorm.DB
	log              *logger.Logger
	recordRepo       repos.RecordRepo
	weekProgressRepo repos.WeekProgressRepo
}

func NewWeekProgressService(db *gorm.DB, log *logger.Logger, recordRepo repos.RecordRepo, weekProgressRepo repos.WeekProgressRepo) WeekProgressService {
	return &weekProgressService{
		db:               db,
		log:              log.With("service", "WeekProgressService"),
		recordRepo:       recordRepo,
		weekProgressRepo: weekProgressRepo,
	}
}

func (s *weekProgressService) GetWeekProgress(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*WeekProgressView, error) {
	weekStart = utils.DateOnly(weekStart)
	if !utils.IsMonday(weekStart) {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "week start date must be a Monday")
	}

	var row *types.WeekProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, gErr := s.weekProgressRepo.GetByUserAndWeekStart(ctx, tx, userID, weekStart)
		if gErr != nil {
			return fmt.Errorf("failed to load week progress: %w", gErr)
		}
		if existing != nil {
			row = existing
			return nil
		}
		computed, cErr := s.recompute(ctx, tx, userID, weekStart)
		if cErr != nil {
			return cErr
		}
		row = computed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return viewFromWeekProgress(row), nil
}

func (s *weekProgressService) GetCurrentWeekProgress(ctx context.Context, userID uuid.UUID) (*WeekProgressView, error) {
	return s.GetWeekProgress(ctx, userID, utils.WeekStartOf(time.Now()))
}

func (s *weekProgressService) GetAllWeekProgress(ctx context.Context, userID uuid.UUID) ([]*WeekProgressView, error) {
	rows, err := s.weekProgressRepo.GetByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list week progress: %w", err)
	}
	views := make([]*WeekProgressView, 0, len(rows))
	for _, row := range rows {
		views = append(views, viewFromWeekProgress(row))
	}
	return views, nil
}

// RecomputeForDate rebuilds the aggregate for the week containing date.
// Record writes call this so the stored completed_days never drifts from
// the live records.
func (s *weekProgressService) RecomputeForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.WeekProgress, error) {
	weekStart := utils.WeekStartOf(date)
	if tx != nil {
		return s.recompute(ctx, tx, userID, weekStart)
	}
	var row *types.WeekProgress
	err := s.db.WithContext(ctx).Transaction(func(innerTx *gorm.DB) error {
		computed, cErr := s.recompute(ctx, innerTx, userID, weekStart)
		if cErr != nil {
			return cErr
		}
		row = computed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// recompute counts the distinct dates in [weekStart, weekStart+6] that
// have at least one live completed record. Several completed slots on the
// same day still count as one day. The upsert overwrites completed_days
// and leaves essay_generated alone.
func (s *weekProgressService) recompute(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time) (*types.WeekProgress, error) {
	weekEnd := weekStart.AddDate(0, 0, types.DaysPerWeek-1)
	records, err := s.recordRepo.GetLiveByUserAndDateRange(ctx, tx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for week: %w", err)
	}

	completedDates := make(map[string]struct{})
	for _, rec := range records {
		if rec.CompletedLive() {
			completedDates[utils.DateOnly(rec.RecordDate).Format(time.DateOnly)] = struct{}{}
		}
	}
	completedDays := len(completedDates)

	s.log.Debug("Recomputed week progress", "user_id", userID, "week_start", weekStart.Format(time.DateOnly), "completed_days", completedDays)

	row, err := s.weekProgressRepo.UpsertCompletedDays(ctx, tx, userID, weekStart, completedDays)
	if err != nil {
		return nil, fmt.Errorf("failed to persist week progress: %w", err)
	}
	return row, nil
}

func (s *weekProgressService) MarkEssayGenerated(ctx context.Context, userID uuid.UUID, weekStart time.Time) error {
	weekStart = utils.DateOnly(weekStart)
	if !utils.IsMonday(weekStart) {
		return apperrors.New(apperrors.KindInvalidArgument, "week start date must be a Monday")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.weekProgressRepo.GetByUserAndWeekStart(ctx, tx, userID, weekStart)
		if err != nil {
			return fmt.Errorf("failed to load week progress: %w", err)
		}
		if row == nil {
			return apperrors.New(apperrors.KindNotFound, "week progress not found")
		}
		if !row.CanGenerateEssay() {
			return apperrors.Newf(apperrors.KindInvalidState, "essay generation requirements not met (at least %d completed days, not yet generated)", types.EssayMinCompletedDays)
		}
		if err := s.weekProgressRepo.SetEssayGenerated(ctx, tx, row.ID); err != nil {
			return fmt.Errorf("failed to mark essay generated: %w", err)
		}
		return nil
	})
}

func viewFromWeekProgress(row *types.WeekProgress) *WeekProgressView {
	return &WeekProgressView{
		WeekStart:        row.WeekStart.Format(time.DateOnly),
		CompletedDays:    row.CompletedDays,
		CompletionRate:   row.CompletionRate(),
		CanGenerateEssay: row.CanGenerateEssay(),
		EssayGenerated:   row.EssayGenerated,
	}
}
