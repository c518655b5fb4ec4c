package model

import (
	"time"

	"skillhub.com/skillhub/internal/constants"
)

type Task struct {
	ID                  string               `gorm:"primaryKey;size:36" json:"id"`
	CustomerID          string               `gorm:"size:36;not null;index" json:"customer_id"`
	TaskerID            *string              `gorm:"size:36;index" json:"tasker_id,omitempty"`
	CategoryID          string               `gorm:"size:36;not null;index" json:"category_id"`
	Title               string               `gorm:"not null" json:"title"`
	Description         string               `gorm:"not null" json:"description"`
	Address             string               `json:"address"`
	City                string               `json:"city"`
	State               string               `json:"state"`
	ZipCode             string               `json:"zip_code"`
	TaskSize            constants.TaskSize   `gorm:"type:varchar(20);not null" json:"task_size"`
	BudgetMin           float64              `json:"budget_min"`
	BudgetMax           float64              `json:"budget_max"`
	FinalPrice          *float64             `json:"final_price,omitempty"`
	Urgency             constants.Urgency    `gorm:"type:varchar(20);not null" json:"urgency"`
	TaskDate            *string              `json:"task_date,omitempty"`
	TaskTime            *string              `json:"task_time,omitempty"`
	FlexibleDate        bool                 `gorm:"not null;default:true" json:"flexible_date"`
	SpecialInstructions *string              `json:"special_instructions,omitempty"`
	Status              constants.TaskStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Version             uint                 `gorm:"not null;default:1" json:"version"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
	CompletedAt         *time.Time           `json:"completed_at,omitempty"`

	Category          *TaskCategory `gorm:"foreignKey:CategoryID" json:"task_category,omitempty"`
	CustomerProfile   *Profile      `gorm:"foreignKey:CustomerID" json:"customer_profile,omitempty"`
	TaskerProfile     *Profile      `gorm:"foreignKey:TaskerID" json:"tasker_profile,omitempty"`
	ApplicationsCount int           `gorm:"-" json:"applications_count"`
}

func (Task) TableName() string {
	return "tasks"
}

// Assigned reports whether the task is bound to a tasker. The lifecycle
// invariant is: TaskerID is non-nil iff Status is assigned, in_progress
// or completed.
func (t *Task) Assigned() bool {
	return t.TaskerID != nil
}

func (t *Task) IsParticipant(userID string) bool {
	if t.CustomerID == userID {
		return true
	}
	return t.TaskerID != nil && *t.TaskerID == userID
}

// CounterpartID returns the chat partner for the given participant.
func (t *Task) CounterpartID(userID string) *string {
	if t.CustomerID == userID {
		return t.TaskerID
	}
	return &t.CustomerID
}

func (t *Task) Terminal() bool {
	return t.Status == constants.StatusCompleted || t.Status == constants.StatusCancelled
}
