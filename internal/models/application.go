package model

import (
	"time"

	"skillhub.com/skillhub/internal/constants"
)

type TaskApplication struct {
	ID            string                      `gorm:"primaryKey;size:36" json:"id"`
	TaskID        string                      `gorm:"size:36;not null;index" json:"task_id"`
	TaskerID      string                      `gorm:"size:36;not null;index" json:"tasker_id"`
	Message       *string                     `json:"message,omitempty"`
	ProposedPrice *float64                    `json:"proposed_price,omitempty"`
	EstimatedTime *float64                    `json:"estimated_time,omitempty"`
	Status        constants.ApplicationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`

	TaskerProfile *Profile `gorm:"foreignKey:TaskerID" json:"tasker_profile,omitempty"`
}

func (TaskApplication) TableName() string {
	return "task_applications"
}
