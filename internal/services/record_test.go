package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/ownessay/ownessay-backend/internal/apperrors"
	"github.com/ownessay/ownessay-backend/internal/types"
)

func newRecordService(t *testing.T) (RecordService, WeekProgressService, *testFixture) {
	t.Helper()
	f := newFixture(t)
	weekSvc := NewWeekProgressService(f.db, f.log, f.recordRepo, f.weekProgressRepo)
	recSvc := NewRecordService(f.db, f.log, f.recordRepo, weekSvc)
	return recSvc, weekSvc, f
}

func healingContent() map[string]interface{} {
	return map[string]interface{}{
		"activity": "walk",
		"duration": 30,
		"result":   "felt calmer",
	}
}

func TestSaveRecord_PersistsAndRecomputes(t *testing.T) {
	recSvc, weekSvc, f := newRecordService(t)
	ctx := context.Background()
	monday := mustParseDate(t, "2026-08-31")

	view, err := recSvc.SaveRecord(ctx, f.user.ID, monday, types.SlotHealing, healingContent(), true)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if view.RecordDate != "2026-08-31" || view.SlotType != types.SlotHealing || !view.IsCompleted {
		t.Fatalf("unexpected saved view: %+v", view)
	}

	progress, err := weekSvc.GetWeekProgress(ctx, f.user.ID, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress.CompletedDays != 1 {
		t.Fatalf("expected week progress recomputed to 1 day, got %d", progress.CompletedDays)
	}
}

func TestSaveRecord_RejectsInvalidContent(t *testing.T) {
	recSvc, _, f := newRecordService(t)
	ctx := context.Background()
	monday := mustParseDate(t, "2026-08-31")

	content := healingContent()
	content["duration"] = "abc"
	_, err := recSvc.SaveRecord(ctx, f.user.ID, monday, types.SlotHealing, content, true)
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	records, err := recSvc.GetDailyRecords(ctx, f.user.ID, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records.Records) != 0 {
		t.Fatalf("invalid save must not persist anything, got %d records", len(records.Records))
	}
}

func TestSaveRecord_IdempotentPerSlot(t *testing.T) {
	recSvc, _, f := newRecordService(t)
	ctx := context.Background()
	monday := mustParseDate(t, "2026-08-31")

	first, err := recSvc.SaveRecord(ctx, f.user.ID, monday, types.SlotHealing, healingContent(), true)
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	updated := healingContent()
	updated["result"] = "even calmer"
	second, err := recSvc.SaveRecord(ctx, f.user.ID, monday, types.SlotHealing, updated, true)
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same row to be updated, got %s then %s", first.ID, second.ID)
	}

	daily, err := recSvc.GetDailyRecords(ctx, f.user.ID, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(daily.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(daily.Records))
	}
	if daily.Records[0].Content["result"] != "even calmer" {
		t.Fatalf("content not updated: %v", daily.Records[0].Content)
	}
}

func TestSaveRecord_RevivesSoftDeletedRow(t *testing.T) {
	recSvc, _, f := newRecordService(t)
	ctx := context.Background()
	monday := mustParseDate(t, "2026-08-31")

	saved, err := recSvc.SaveRecord(ctx, f.user.ID, monday, types.SlotHealing, healingContent(), true)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := recSvc.DeleteRecord(ctx, f.user.ID, saved.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	revived, err := recSvc.SaveRecord(ctx, f.user.ID, monday, types.SlotHealing, healingContent(), true)
	if err != nil {
		t.Fatalf("re-save failed: %v", err)
	}
	if revived.ID != saved.ID {
		t.Fatalf("expected the soft-deleted row to be revived, got %s then %s", saved.ID, revived.ID)
	}

	daily, err := recSvc.GetDailyRecords(ctx, f.user.ID, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(daily.Records) != 1 {
		t.Fatalf("expected 1 live record, got %d", len(daily.Records))
	}
}

func TestGetDailyRecords_CompletionFigures(t *testing.T) {
	recSvc, _, f := newRecordService(t)
	ctx := context.Background()
	monday := mustParseDate(t, "2026-08-31")

	seedRecord(t, f.db, f.user.ID, monday, types.SlotReading, true)
	seedRecord(t, f.db, f.user.ID, monday, types.SlotConsulting, true)
	seedRecord(t, f.db, f.user.ID, monday, types.SlotDiary, false)

	daily, err := recSvc.GetDailyRecords(ctx, f.user.ID, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if daily.CompletedCount != 2 {
		t.Fatalf("expected 2 completed, got %d", daily.CompletedCount)
	}
	if daily.CompletionRate != 0.5 || daily.CompletionPercent != 50 {
		t.Fatalf("expected 50%%, got rate %v percent %d", daily.CompletionRate, daily.CompletionPercent)
	}
	if daily.AllCompleted {
		t.Fatalf("2 of 4 slots must not be all completed")
	}
}

func TestGetDailyRecords_AllCompleted(t *testing.T) {
	recSvc, _, f := newRecordService(t)
	ctx := context.Background()
	monday := mustParseDate(t, "2026-08-31")

	for _, slotType := range types.AllSlotTypes() {
		seedRecord(t, f.db, f.user.ID, monday, slotType, true)
	}
	daily, err := recSvc.GetDailyRecords(ctx, f.user.ID, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !daily.AllCompleted || daily.CompletionPercent != 100 {
		t.Fatalf("expected all completed at 100%%, got %+v", daily)
	}
}

func TestGetWeeklyRecords_RejectsInvertedRange(t *testing.T) {
	recSvc, _, f := newRecordService(t)
	_, err := recSvc.GetWeeklyRecords(context.Background(), f.user.ID,
		mustParseDate(t, "2026-09-06"), mustParseDate(t, "2026-08-31"))
	if !apperrors.IsKind(err, apperrors.KindInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestDeleteRecord_OwnershipAndRecompute(t *testing.T) {
	recSvc, weekSvc, f := newRecordService(t)
	ctx := context.Background()
	monday := mustParseDate(t, "2026-08-31")

	saved, err := recSvc.SaveRecord(ctx, f.user.ID, monday, types.SlotHealing, healingContent(), true)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Someone else's record id reads as missing.
	other := seedUser(t, f.db)
	err = recSvc.DeleteRecord(ctx, other.ID, saved.ID)
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found for other user, got %v", err)
	}

	if err := recSvc.DeleteRecord(ctx, f.user.ID, saved.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	err = recSvc.DeleteRecord(ctx, f.user.ID, saved.ID)
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}

	progress, err := weekSvc.GetWeekProgress(ctx, f.user.ID, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress.CompletedDays != 0 {
		t.Fatalf("expected recompute back to 0 days, got %d", progress.CompletedDays)
	}

	if err := recSvc.DeleteRecord(ctx, f.user.ID, uuid.New()); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found for random id, got %v", err)
	}
}
