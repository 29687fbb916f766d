package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ownessay/ownessay-backend/internal/logger"
	"github.com/ownessay/ownessay-backend/internal/repos"
	"github.com/ownessay/ownessay-backend/internal/types"
	"github.com/ownessay/ownessay-backend/internal/utils"
)

// testFixture bundles the shared wiring most service tests need: one
// migrated database, one seeded user, and the repos over both.
type testFixture struct {
	db               *gorm.DB
	log              *logger.Logger
	user             *types.User
	recordRepo       repos.RecordRepo
	weekProgressRepo repos.WeekProgressRepo
	essayRepo        repos.EssayRepo
	likeRepo         repos.LikeRepo
	bookmarkRepo     repos.BookmarkRepo
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	return &testFixture{
		db:               db,
		log:              log,
		user:             seedUser(t, db),
		recordRepo:       repos.NewRecordRepo(db, log),
		weekProgressRepo: repos.NewWeekProgressRepo(db, log),
		essayRepo:        repos.NewEssayRepo(db, log),
		likeRepo:         repos.NewLikeRepo(db, log),
		bookmarkRepo:     repos.NewBookmarkRepo(db, log),
	}
}

// newTestDB opens a per-test in-memory database. The DSN is named after
// the test and shared-cache so every pooled connection sees the same
// schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	err = db.AutoMigrate(
		&types.User{},
		&types.Record{},
		&types.WeekProgress{},
		&types.Essay{},
		&types.Like{},
		&types.Bookmark{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return log
}

func seedUser(t *testing.T, db *gorm.DB) *types.User {
	t.Helper()
	user := &types.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		Nickname:     uuid.NewString()[:8],
		PasswordHash: "x",
		Timezone:     "Asia/Seoul",
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedRecord(t *testing.T, db *gorm.DB, userID uuid.UUID, date time.Time, slotType types.SlotType, completed bool) *types.Record {
	t.Helper()
	rec := &types.Record{
		ID:          uuid.New(),
		UserID:      userID,
		RecordDate:  utils.DateOnly(date),
		SlotType:    slotType,
		Content:     datatypes.JSONMap{"seed": "true"},
		IsCompleted: completed,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}
	return rec
}

func mustParseDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, value)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return d
}
