package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Record is one user's entry for one slot on one calendar date. At most one
// record exists per (user, date, slot) triple; deletion is a flag, never a
// row removal, and every read path filters on is_deleted explicitly.
type Record struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;index:idx_user_date_slot,unique" json:"user_id"`
	User        *User             `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	RecordDate  time.Time         `gorm:"type:date;not null;index:idx_user_date_slot,unique;column:record_date" json:"record_date"`
	SlotType    SlotType          `gorm:"type:varchar(20);not null;index:idx_user_date_slot,unique;column:slot_type" json:"slot_type"`
	Content     datatypes.JSONMap `gorm:"type:jsonb;not null;column:content" json:"content"`
	IsCompleted bool              `gorm:"not null;default:false;column:is_completed" json:"is_completed"`
	IsDeleted   bool              `gorm:"not null;default:false;column:is_deleted" json:"is_deleted"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
	DeletedAt   *time.Time        `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

func (Record) TableName() string { return "records" }

// CompletedLive reports whether the record counts toward completion and
// streak calculations.
func (r Record) CompletedLive() bool {
	return r.IsCompleted && !r.IsDeleted
}
