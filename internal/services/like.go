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
)

type LikeResult struct {
	Liked     bool  `json:"liked"`
	Added     bool  `json:"added"`
	LikeCount int64 `json:"like_count"`
}

type LikedEssayView struct {
	Essay   *EssayView `json:"essay"`
	LikedAt time.Time  `json:"liked_at"`
}

type LikeService interface {
	Add(ctx context.Context, userID, essayID uuid.UUID) (*LikeResult, error)
	Remove(ctx context.Context, userID, essayID uuid.UUID) (*LikeResult, error)
	ListMine(ctx context.Context, userID uuid.UUID, page, size int) ([]*LikedEssayView, error)
}

type likeService struct {
	db        *gorm.DB
	log       *logger.Logger
	likeRepo  repos.LikeRepo
	essayRepo repos.EssayRepo
}

func NewLikeService(db *gorm.DB, log *logger.Logger, likeRepo repos.LikeRepo, essayRepo repos.EssayRepo) LikeService {
	return &likeService{
		db:        db,
		log:       log.With("service", "LikeService"),
		likeRepo:  likeRepo,
		essayRepo: essayRepo,
	}
}

// Add is idempotent: liking an already-liked essay leaves one like.
func (s *likeService) Add(ctx context.Context, userID, essayID uuid.UUID) (*LikeResult, error) {
	if err := s.ensureEssayExists(ctx, essayID); err != nil {
		return nil, err
	}
	already, err := s.likeRepo.Exists(ctx, nil, userID, essayID)
	if err != nil {
		return nil, fmt.Errorf("failed to check like: %w", err)
	}
	if !already {
		if err := s.likeRepo.Create(ctx, nil, userID, essayID); err != nil {
			return nil, fmt.Errorf("failed to add like: %w", err)
		}
	}
	count, err := s.likeRepo.CountByEssay(ctx, nil, essayID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	return &LikeResult{Liked: true, Added: !already, LikeCount: count}, nil
}

func (s *likeService) Remove(ctx context.Context, userID, essayID uuid.UUID) (*LikeResult, error) {
	if err := s.ensureEssayExists(ctx, essayID); err != nil {
		return nil, err
	}
	if err := s.likeRepo.Delete(ctx, nil, userID, essayID); err != nil {
		return nil, fmt.Errorf("failed to remove like: %w", err)
	}
	count, err := s.likeRepo.CountByEssay(ctx, nil, essayID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	return &LikeResult{Liked: false, LikeCount: count}, nil
}

func (s *likeService) ListMine(ctx context.Context, userID uuid.UUID, page, size int) ([]*LikedEssayView, error) {
	likes, err := s.likeRepo.GetByUserPaged(ctx, nil, userID, page, size)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	views := make([]*LikedEssayView, 0, len(likes))
	for _, like := range likes {
		if like.Essay == nil {
			continue
		}
		views = append(views, &LikedEssayView{
			Essay:   viewFromEssay(like.Essay),
			LikedAt: like.CreatedAt,
		})
	}
	return views, nil
}

func (s *likeService) ensureEssayExists(ctx context.Context, essayID uuid.UUID) error {
	essay, err := s.essayRepo.GetByID(ctx, nil, essayID)
	if err != nil {
		return fmt.Errorf("failed to load essay: %w", err)
	}
	if essay == nil {
		return apperrors.New(apperrors.KindNotFound, "essay not found")
	}
	return nil
}
