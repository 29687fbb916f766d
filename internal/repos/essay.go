package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ownessay/ownessay-backend/internal/logger"
	"github.com/ownessay/ownessay-backend/internal/types"
)

type EssayRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Essay) (*types.Essay, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Essay, error)
	GetByIDAndUser(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.Essay, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Essay, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Essay) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type essayRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEssayRepo(db *gorm.DB, baseLog *logger.Logger) EssayRepo {
	return &essayRepo{db: db, log: baseLog.With("repo", "EssayRepo")}
}

func (r *essayRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Essay) (*types.Essay, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *essayRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Essay, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Essay
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

func (r *essayRepo) GetByIDAndUser(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.Essay, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil || userID == uuid.Nil {
		return nil, nil
	}
	var row types.Essay
	err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
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

func (r *essayRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Essay, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Essay
	if userID == uuid.Nil {
		return results, nil
	}
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *essayRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Essay) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(row).Error
}

func (r *essayRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Essay{}).Error
}
