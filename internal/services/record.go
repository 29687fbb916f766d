package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ownessay/ownessay-backend/internal/apperrors"
	"github.com/ownessay/ownessay-backend/internal/completion"
	"github.com/ownessay/ownessay-backend/internal/logger"
	"github.com/ownessay/ownessay-backend/internal/repos"
	"github.com/ownessay/ownessay-backend/internal/types"
	"github.com/ownessay/ownessay-backend/internal/utils"
	"github.com/ownessay/ownessay-backend/internal/validation"
)

type RecordView struct {
	ID          uuid.UUID              `json:"id"`
	RecordDate  string                 `json:"record_date"`
	SlotType    types.SlotType         `json:"slot_type"`
	Content     map[string]interface{} `json:"content"`
	IsCompleted bool                   `json:"is_completed"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// DailyRecordsView reports one day's records with completion figures
// against the fixed four-slot capacity.
type DailyRecordsView struct {
	Date              string        `json:"date"`
	Records           []*RecordView `json:"records"`
	CompletedCount    int           `json:"completed_count"`
	CompletionRate    float64       `json:"completion_rate"`
	CompletionPercent int           `json:"completion_percent"`
	AllCompleted      bool          `json:"all_completed"`
}

// RecordService owns the daily record lifecycle: idempotent save keyed by
// (user, date, slot), soft delete, and the reads the calculators feed on.
// Every write recomputes the affected week's progress in the same
// transaction.
type RecordService interface {
	SaveRecord(ctx context.Context, userID uuid.UUID, date time.Time, slotType types.SlotType, content map[string]interface{}, completed bool) (*RecordView, error)
	GetDailyRecords(ctx context.Context, userID uuid.UUID, date time.Time) (*DailyRecordsView, error)
	GetWeeklyRecords(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*RecordView, error)
	DeleteRecord(ctx context.Context, userID uuid.UUID, recordID uuid.UUID) error
}

type recordService struct {
	db                  *gorm.DB
	log                 *logger.Logger
	recordRepo          repos.RecordRepo
	weekProgressService WeekProgressService
}

func NewRecordService(db *gorm.DB, log *logger.Logger, recordRepo repos.RecordRepo, weekProgressService WeekProgressService) RecordService {
	return &recordService{
		db:                  db,
		log:                 log.With("service", "RecordService"),
		recordRepo:          recordRepo,
		weekProgressService: weekProgressService,
	}
}

func (s *recordService) SaveRecord(ctx context.Context, userID uuid.UUID, date time.Time, slotType types.SlotType, content map[string]interface{}, completed bool) (*RecordView, error) {
	if err := validation.Validate(slotType, content); err != nil {
		return nil, err
	}
	date = utils.DateOnly(date)

	var saved *types.Record
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := &types.Record{
			UserID:      userID,
			RecordDate:  date,
			SlotType:    slotType,
			Content:     datatypes.JSONMap(content),
			IsCompleted: completed,
			IsDeleted:   false,
			DeletedAt:   nil,
		}
		upserted, uErr := s.recordRepo.Upsert(ctx, tx, row)
		if uErr != nil {
			return fmt.Errorf("failed to save record: %w", uErr)
		}
		saved = upserted
		if _, wErr := s.weekProgressService.RecomputeForDate(ctx, tx, userID, date); wErr != nil {
			return wErr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Saved record", "user_id", userID, "date", date.Format(time.DateOnly), "slot_type", slotType, "completed", completed)
	return viewFromRecord(saved), nil
}

func (s *recordService) GetDailyRecords(ctx context.Context, userID uuid.UUID, date time.Time) (*DailyRecordsView, error) {
	date = utils.DateOnly(date)
	records, err := s.recordRepo.GetLiveByUserAndDate(ctx, nil, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily records: %w", err)
	}

	views := make([]*RecordView, 0, len(records))
	completedCount := 0
	for _, rec := range records {
		views = append(views, viewFromRecord(rec))
		if rec.IsCompleted {
			completedCount++
		}
	}

	rate, err := completion.DailyRate(completedCount)
	if err != nil {
		return nil, err
	}
	return &DailyRecordsView{
		Date:              date.Format(time.DateOnly),
		Records:           views,
		CompletedCount:    completedCount,
		CompletionRate:    rate,
		CompletionPercent: completion.ToPercentage(rate),
		AllCompleted:      completion.IsAllCompleted(completedCount),
	}, nil
}

func (s *recordService) GetWeeklyRecords(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*RecordView, error) {
	start = utils.DateOnly(start)
	end = utils.DateOnly(end)
	if end.Before(start) {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "end date must not be before start date")
	}
	records, err := s.recordRepo.GetLiveByUserAndDateRange(ctx, nil, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly records: %w", err)
	}
	views := make([]*RecordView, 0, len(records))
	for _, rec := range records {
		views = append(views, viewFromRecord(rec))
	}
	return views, nil
}

func (s *recordService) DeleteRecord(ctx context.Context, userID uuid.UUID, recordID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, gErr := s.recordRepo.GetByID(ctx, tx, recordID)
		if gErr != nil {
			return fmt.Errorf("failed to load record: %w", gErr)
		}
		if rec == nil || rec.UserID != userID || rec.IsDeleted {
			return apperrors.New(apperrors.KindNotFound, "record not found")
		}
		if dErr := s.recordRepo.SoftDelete(ctx, tx, rec.ID); dErr != nil {
			return fmt.Errorf("failed to delete record: %w", dErr)
		}
		if _, wErr := s.weekProgressService.RecomputeForDate(ctx, tx, userID, rec.RecordDate); wErr != nil {
			return wErr
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("Deleted record", "user_id", userID, "record_id", recordID)
	return nil
}

func viewFromRecord(rec *types.Record) *RecordView {
	return &RecordView{
		ID:          rec.ID,
		RecordDate:  utils.DateOnly(rec.RecordDate).Format(time.DateOnly),
		SlotType:    rec.SlotType,
		Content:     map[string]interface{}(rec.Content),
		IsCompleted: rec.IsCompleted,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
