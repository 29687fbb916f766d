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

type EssayCreateInput struct {
	Title        string
	FinalContent string
	AIDraft      string
	Theme        types.EssayTheme
	CoverImage   string
	WeekStart    time.Time
	WeekEnd      time.Time
}

// EssayUpdateInput carries a partial update; nil fields are left alone.
type EssayUpdateInput struct {
	Title        *string
	FinalContent *string
	Theme        *types.EssayTheme
	CoverImage   *string
}

type EssayView struct {
	ID            uuid.UUID           `json:"id"`
	Title         string              `json:"title"`
	FinalContent  string              `json:"final_content"`
	AIDraft       string              `json:"ai_draft,omitempty"`
	Theme         types.EssayTheme    `json:"theme,omitempty"`
	CoverImage    string              `json:"cover_image,omitempty"`
	PublishStatus types.PublishStatus `json:"publish_status"`
	ShareSlug     string              `json:"share_slug,omitempty"`
	WeekStart     string              `json:"week_start"`
	WeekEnd       string              `json:"week_end"`
	CreatedAt     time.Time           `json:"created_at"`
	PublishedAt   *time.Time          `json:"published_at,omitempty"`
}

type EssayService interface {
	Create(ctx context.Context, userID uuid.UUID, input EssayCreateInput) (*EssayView, error)
	Get(ctx context.Context, userID, essayID uuid.UUID) (*EssayView, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*EssayView, error)
	Update(ctx context.Context, userID, essayID uuid.UUID, input EssayUpdateInput) (*EssayView, error)
	Publish(ctx context.Context, userID, essayID uuid.UUID, status types.PublishStatus) (*EssayView, error)
	Delete(ctx context.Context, userID, essayID uuid.UUID) error
}

type essayService struct {
	db        *gorm.DB
	log       *logger.Logger
	essayRepo repos.EssayRepo
}

func NewEssayService(db *gorm.DB, log *logger.Logger, essayRepo repos.EssayRepo) EssayService {
	return &essayService{
		db:        db,
		log:       log.With("service", "EssayService"),
		essayRepo: essayRepo,
	}
}

func (s *essayService) Create(ctx context.Context, userID uuid.UUID, input EssayCreateInput) (*EssayView, error) {
	if input.FinalContent == "" {
		return nil, apperrors.New(apperrors.KindValidation, "essay content must not be empty")
	}
	row := &types.Essay{
		UserID:        userID,
		Title:         input.Title,
		FinalContent:  input.FinalContent,
		AIDraft:       input.AIDraft,
		Theme:         input.Theme,
		CoverImage:    input.CoverImage,
		PublishStatus: types.PublishPrivate,
		WeekStart:     utils.DateOnly(input.WeekStart),
		WeekEnd:       utils.DateOnly(input.WeekEnd),
	}
	created, err := s.essayRepo.Create(ctx, nil, row)
	if err != nil {
		return nil, fmt.Errorf("failed to create essay: %w", err)
	}
	s.log.Info("Created essay", "user_id", userID, "essay_id", created.ID)
	return viewFromEssay(created), nil
}

func (s *essayService) Get(ctx context.Context, userID, essayID uuid.UUID) (*EssayView, error) {
	row, err := s.getOwned(ctx, nil, userID, essayID)
	if err != nil {
		return nil, err
	}
	return viewFromEssay(row), nil
}

func (s *essayService) ListMine(ctx context.Context, userID uuid.UUID) ([]*EssayView, error) {
	rows, err := s.essayRepo.GetByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list essays: %w", err)
	}
	views := make([]*EssayView, 0, len(rows))
	for _, row := range rows {
		views = append(views, viewFromEssay(row))
	}
	return views, nil
}

func (s *essayService) Update(ctx context.Context, userID, essayID uuid.UUID, input EssayUpdateInput) (*EssayView, error) {
	var updated *types.Essay
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, gErr := s.getOwned(ctx, tx, userID, essayID)
		if gErr != nil {
			return gErr
		}
		if input.Title != nil {
			row.Title = *input.Title
		}
		if input.FinalContent != nil {
			row.FinalContent = *input.FinalContent
		}
		if input.Theme != nil {
			row.Theme = *input.Theme
		}
		if input.CoverImage != nil {
			row.CoverImage = *input.CoverImage
		}
		if uErr := s.essayRepo.Update(ctx, tx, row); uErr != nil {
			return fmt.Errorf("failed to update essay: %w", uErr)
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return viewFromEssay(updated), nil
}

// Publish moves the essay through its publish state machine. Requesting
// PRIVATE unpublishes (and drops the share slug); SHARED/PUBLIC set
// published_at and mint the share slug exactly once.
func (s *essayService) Publish(ctx context.Context, userID, essayID uuid.UUID, status types.PublishStatus) (*EssayView, error) {
	var updated *types.Essay
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, gErr := s.getOwned(ctx, tx, userID, essayID)
		if gErr != nil {
			return gErr
		}
		if status == types.PublishPrivate {
			row.PublishStatus = types.PublishPrivate
			row.ShareSlug = nil
		} else {
			row.PublishStatus = status
			if row.PublishedAt == nil {
				now := time.Now()
				row.PublishedAt = &now
			}
			if row.ShareSlug == nil {
				slug := uuid.NewString()[:8]
				row.ShareSlug = &slug
			}
		}
		if uErr := s.essayRepo.Update(ctx, tx, row); uErr != nil {
			return fmt.Errorf("failed to update publish status: %w", uErr)
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Changed essay publish status", "user_id", userID, "essay_id", essayID, "status", status)
	return viewFromEssay(updated), nil
}

func (s *essayService) Delete(ctx context.Context, userID, essayID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, gErr := s.getOwned(ctx, tx, userID, essayID)
		if gErr != nil {
			return gErr
		}
		if dErr := s.essayRepo.Delete(ctx, tx, row.ID); dErr != nil {
			return fmt.Errorf("failed to delete essay: %w", dErr)
		}
		return nil
	})
}

func (s *essayService) getOwned(ctx context.Context, tx *gorm.DB, userID, essayID uuid.UUID) (*types.Essay, error) {
	row, err := s.essayRepo.GetByIDAndUser(ctx, tx, essayID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load essay: %w", err)
	}
	if row == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "essay not found")
	}
	return row, nil
}

func viewFromEssay(row *types.Essay) *EssayView {
	shareSlug := ""
	if row.ShareSlug != nil {
		shareSlug = *row.ShareSlug
	}
	return &EssayView{
		ID:            row.ID,
		Title:         row.Title,
		FinalContent:  row.FinalContent,
		AIDraft:       row.AIDraft,
		Theme:         row.Theme,
		CoverImage:    row.CoverImage,
		PublishStatus: row.PublishStatus,
		ShareSlug:     shareSlug,
		WeekStart:     row.WeekStart.Format(time.DateOnly),
		WeekEnd:       row.WeekEnd.Format(time.DateOnly),
		CreatedAt:     row.CreatedAt,
		PublishedAt:   row.PublishedAt,
	}
}
