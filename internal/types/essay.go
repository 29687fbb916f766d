package types

import (
	"time"

	"github.com/google/uuid"
)

type Essay struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title         string        `gorm:"type:varchar(200);column:title" json:"title"`
	AIDraft       string        `gorm:"type:text;column:ai_draft" json:"ai_draft,omitempty"`
	FinalContent  string        `gorm:"type:text;not null;column:final_content" json:"final_content"`
	Theme         EssayTheme    `gorm:"type:varchar(50);column:theme" json:"theme,omitempty"`
	CoverImage    string        `gorm:"type:varchar(500);column:cover_image" json:"cover_image,omitempty"`
	PublishStatus PublishStatus `gorm:"type:varchar(20);not null;default:'PRIVATE';column:publish_status" json:"publish_status"`
	// ShareSlug is nil until first published; unique among published essays.
	ShareSlug     *string       `gorm:"type:varchar(100);uniqueIndex;column:share_slug" json:"share_slug,omitempty"`
	WeekStart     time.Time     `gorm:"type:date;not null;column:week_start" json:"week_start"`
	WeekEnd       time.Time     `gorm:"type:date;not null;column:week_end" json:"week_end"`
	CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
	PublishedAt   *time.Time    `gorm:"column:published_at" json:"published_at,omitempty"`
}

func (Essay) TableName() string { return "essays" }

func (e Essay) IsPublic() bool {
	return e.PublishStatus == PublishPublic
}

func (e Essay) IsShared() bool {
	return e.PublishStatus == PublishShared || e.PublishStatus == PublishPublic
}
