package types

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Nickname     string    `gorm:"uniqueIndex;not null;column:nickname" json:"nickname"`
	PasswordHash string    `gorm:"not null;column:password_hash" json:"-"`
	Timezone     string    `gorm:"not null;default:'Asia/Seoul';column:timezone" json:"timezone"`
	IsActive     bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }
