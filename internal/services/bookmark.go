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

type BookmarkResult struct {
	Bookmarked    bool  `json:"bookmarked"`
	Added         bool  `json:"added"`
	BookmarkCount int64 `json:"bookmark_count"`
}

type BookmarkedEssayView struct {
	Essay        *EssayView `json:"essay"`
	BookmarkedAt time.Time  `json:"bookmarked_at"`
}

type BookmarkService interface {
	Add(ctx context.Context, userID, essayID uuid.UUID) (*BookmarkResult, error)
	Remove(ctx context.Context, userID, essayID uuid.UUID) (*BookmarkResult, error)
	ListMine(ctx context.Context, userID uuid.UUID, page, size int) ([]*BookmarkedEssayView, error)
}

type bookmarkService struct {
	db           *gorm.DB
	log          *logger.Logger
	bookmarkRepo repos.BookmarkRepo
	essayRepo    repos.EssayRepo
}

func NewBookmarkService(db *gorm.DB, log *logger.Logger, bookmarkRepo repos.BookmarkRepo, essayRepo repos.EssayRepo) BookmarkService {
	return &bookmarkService{
		db:           db,
		log:          log.With("service", "BookmarkService"),
		bookmarkRepo: bookmarkRepo,
		essayRepo:    essayRepo,
	}
}

func (s *bookmarkService) Add(ctx context.Context, userID, essayID uuid.UUID) (*BookmarkResult, error) {
	if err := s.ensureEssayExists(ctx, essayID); err != nil {
		return nil, err
	}
	already, err := s.bookmarkRepo.Exists(ctx, nil, userID, essayID)
	if err != nil {
		return nil, fmt.Errorf("failed to check bookmark: %w", err)
	}
	if !already {
		if err := s.bookmarkRepo.Create(ctx, nil, userID, essayID); err != nil {
			return nil, fmt.Errorf("failed to add bookmark: %w", err)
		}
	}
	count, err := s.bookmarkRepo.CountByEssay(ctx, nil, essayID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return &BookmarkResult{Bookmarked: true, Added: !already, BookmarkCount: count}, nil
}

func (s *bookmarkService) Remove(ctx context.Context, userID, essayID uuid.UUID) (*BookmarkResult, error) {
	if err := s.ensureEssayExists(ctx, essayID); err != nil {
		return nil, err
	}
	if err := s.bookmarkRepo.Delete(ctx, nil, userID, essayID); err != nil {
		return nil, fmt.Errorf("failed to remove bookmark: %w", err)
	}
	count, err := s.bookmarkRepo.CountByEssay(ctx, nil, essayID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return &BookmarkResult{Bookmarked: false, BookmarkCount: count}, nil
}

func (s *bookmarkService) ListMine(ctx context.Context, userID uuid.UUID, page, size int) ([]*BookmarkedEssayView, error) {
	bookmarks, err := s.bookmarkRepo.GetByUserPaged(ctx, nil, userID, page, size)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	views := make([]*BookmarkedEssayView, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		if bookmark.Essay == nil {
			continue
		}
		views = append(views, &BookmarkedEssayView{
			Essay:        viewFromEssay(bookmark.Essay),
			BookmarkedAt: bookmark.CreatedAt,
		})
	}
	return views, nil
}

func (s *bookmarkService) ensureEssayExists(ctx context.Context, essayID uuid.UUID) error {
	essay, err := s.essayRepo.GetByID(ctx, nil, essayID)
	if err != nil {
		return fmt.Errorf("failed to load essay: %w", err)
	}
	if essay == nil {
		return apperrors.New(apperrors.KindNotFound, "essay not found")
	}
	return nil
}
