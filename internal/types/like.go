package types

import (
	"time"

	"github.com/google/uuid"
)

type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_essay_like,unique" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	EssayID   uuid.UUID `gorm:"type:uuid;not null;index:idx_user_essay_like,unique" json:"essay_id"`
	Essay     *Essay    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EssayID;references:ID" json:"essay,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Like) TableName() string { return "likes" }
