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

// RecordRepo reads and writes daily records. Every read used by completion
// or streak calculations filters on is_deleted = false explicitly; the
// soft-delete flag is an invariant of this layer, not an accident.
type RecordRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Record, error)
	GetLiveByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) ([]*types.Record, error)
	GetLiveByUserAndDateRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*types.Record, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.Record) (*types.Record, error)
	SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type recordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecordRepo(db *gorm.DB, baseLog *logger.Logger) RecordRepo {
	return &recordRepo{db: db, log: baseLog.With("repo", "RecordRepo")}
}

func (r *recordRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Record, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Record
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
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

func (r *recordRepo) GetLiveByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) ([]*types.Record, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Record
	if userID == uuid.Nil {
		return results, nil
	}
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND record_date = ? AND is_deleted = ?", userID, date, false).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *recordRepo) GetLiveByUserAndDateRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*types.Record, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Record
	if userID == uuid.Nil {
		return results, nil
	}
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND record_date BETWEEN ? AND ? AND is_deleted = ?", userID, start, end, false).
		Order("record_date asc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Upsert inserts or overwrites the row identified by the (user_id,
// record_date, slot_type) unique index. A save over a soft-deleted row
// revives it; the storage layer's conflict handling is what serializes
// concurrent writers for a slot.
func (r *recordRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.Record) (*types.Record, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "record_date"}, {Name: "slot_type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"content", "is_completed", "is_deleted", "deleted_at", "updated_at",
			}),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}
	var saved types.Record
	err = transaction.WithContext(ctx).
		Where("user_id = ? AND record_date = ? AND slot_type = ?", row.UserID, row.RecordDate, row.SlotType).
		Limit(1).
		Find(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *recordRepo) SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now()
	return transaction.WithContext(ctx).
		Model(&types.Record{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": &now,
		}).Error
}
