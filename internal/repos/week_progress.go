package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ownessay/ownessay-backend/internal/logger"
	"github.com/ownessay/ownessay-backend/internal/types"
)

type WeekProgressRepo interface {
	GetByUserAndWeekStart(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time) (*types.WeekProgress, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WeekProgress, error)
	UpsertCompletedDays(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time, completedDays int) (*types.WeekProgress, error)
	SetEssayGenerated(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type weekProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeekProgressRepo(db *gorm.DB, baseLog *logger.Logger) WeekProgressRepo {
	return &weekProgressRepo{db: db, log: baseLog.With("repo", "WeekProgressRepo")}
}

func (r *weekProgressRepo) GetByUserAndWeekStart(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time) (*types.WeekProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.WeekProgress
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *weekProgressRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WeekProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.WeekProgress
	if userID == uuid.Nil {
		return results, nil
	}
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("week_start desc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// UpsertCompletedDays overwrites completed_days for the (user, week) row,
// inserting it when absent. The conflict target is the unique
// (user_id, week_start) index, which is what guarantees at-most-one
// logical writer wins when recomputations race. essay_generated is never
// touched here: recalculation must not reset it.
func (r *weekProgressRepo) UpsertCompletedDays(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time, completedDays int) (*types.WeekProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	row := &types.WeekProgress{
		ID:             uuid.New(),
		UserID:         userID,
		WeekStart:      weekStart,
		CompletedDays:  completedDays,
		EssayGenerated: false,
	}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
			DoUpdates: clause.AssignmentColumns([]string{"completed_days", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserAndWeekStart(ctx, transaction, userID, weekStart)
}

func (r *weekProgressRepo) SetEssayGenerated(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.WeekProgress{}).
		Where("id = ?", id).
		Update("essay_generated", true).Error
}
