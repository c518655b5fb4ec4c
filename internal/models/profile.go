package model

import (
	"time"

	"skillhub.com/skillhub/internal/constants"
)

type Profile struct {
	ID                  string         `gorm:"primaryKey;size:36" json:"id"`
	Email               string         `gorm:"uniqueIndex;not null" json:"email"`
	Username            string         `gorm:"uniqueIndex;not null" json:"username"`
	FullName            string         `gorm:"not null" json:"full_name"`
	PasswordHash        string         `gorm:"not null" json:"-"`
	Role                constants.Role `gorm:"type:varchar(20);not null" json:"role"`
	AvatarURL           *string        `json:"avatar_url,omitempty"`
	Bio                 *string        `json:"bio,omitempty"`
	Skills              *string        `json:"skills,omitempty"`
	HourlyRate          *float64       `json:"hourly_rate,omitempty"`
	City                *string        `json:"city,omitempty"`
	State               *string        `json:"state,omitempty"`
	AverageRating       float64        `gorm:"not null;default:0" json:"average_rating"`
	TotalReviews        int            `gorm:"not null;default:0" json:"total_reviews"`
	TotalTasksCompleted int            `gorm:"not null;default:0" json:"total_tasks_completed"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
