package types

import (
	"time"

	"github.com/google/uuid"
)

// DaysPerWeek is the fixed weekly day capacity.
const DaysPerWeek = 7

// EssayMinCompletedDays is the minimum completed days before an essay can
// be generated for a week.
const EssayMinCompletedDays = 3

// WeekProgress is the derived per-(user, week) completion aggregate.
// WeekStart is always a Monday; CompletedDays is always re-derivable by
// recomputation from live records.
type WeekProgress struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index:idx_user_week,unique" json:"user_id"`
	User           *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	WeekStart      time.Time `gorm:"type:date;not null;index:idx_user_week,unique;column:week_start" json:"week_start"`
	CompletedDays  int       `gorm:"not null;default:0;column:completed_days" json:"completed_days"`
	EssayGenerated bool      `gorm:"not null;default:false;column:essay_generated" json:"essay_generated"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (WeekProgress) TableName() string { return "week_progress" }

// CompletionRate is the completed-day ratio in [0, 1].
func (wp WeekProgress) CompletionRate() float64 {
	return float64(wp.CompletedDays) / DaysPerWeek
}

// CanGenerateEssay holds when the week has enough completed days and no
// essay has been generated for it yet.
func (wp WeekProgress) CanGenerateEssay() bool {
	return !wp.EssayGenerated && wp.CompletedDays >= EssayMinCompletedDays
}
