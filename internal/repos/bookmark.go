package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ownessay/ownessay-backend/internal/logger"
	"github.com/ownessay/ownessay-backend/internal/types"
)

type BookmarkRepo interface {
	Exists(ctx context.Context, tx *gorm.DB, userID, essayID uuid.UUID) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, userID, essayID uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, userID, essayID uuid.UUID) error
	CountByEssay(ctx context.Context, tx *gorm.DB, essayID uuid.UUID) (int64, error)
	GetByUserPaged(ctx context.Context, tx *gorm.DB, userID uuid.UUID, page, size int) ([]*types.Bookmark, error)
}

type bookmarkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookmarkRepo(db *gorm.DB, baseLog *logger.Logger) BookmarkRepo {
	return &bookmarkRepo{db: db, log: baseLog.With("repo", "BookmarkRepo")}
}

func (r *bookmarkRepo) Exists(ctx context.Context, tx *gorm.DB, userID, essayID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.Bookmark{}).
		Where("user_id = ? AND essay_id = ?", userID, essayID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bookmarkRepo) Create(ctx context.Context, tx *gorm.DB, userID, essayID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	row := &types.Bookmark{ID: uuid.New(), UserID: userID, EssayID: essayID}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "essay_id"}},
			DoNothing: true,
		}).
		Create(row).Error
}

func (r *bookmarkRepo) Delete(ctx context.Context, tx *gorm.DB, userID, essayID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ? AND essay_id = ?", userID, essayID).
		Delete(&types.Bookmark{}).Error
}

func (r *bookmarkRepo) CountByEssay(ctx context.Context, tx *gorm.DB, essayID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.Bookmark{}).
		Where("essay_id = ?", essayID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *bookmarkRepo) GetByUserPaged(ctx context.Context, tx *gorm.DB, userID uuid.UUID, page, size int) ([]*types.Bookmark, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Bookmark
	if userID == uuid.Nil {
		return results, nil
	}
	err := transaction.WithContext(ctx).
		Preload("Essay").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(page * size).
		Limit(size).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
