package model

import (
	"time"

	"skillhub.com/skillhub/internal/constants"
)

type ChatMessage struct {
	ID          string                `gorm:"primaryKey;size:36" json:"id"`
	TaskID      string                `gorm:"size:36;not null;index" json:"task_id"`
	SenderID    string                `gorm:"size:36;not null" json:"sender_id"`
	ReceiverID  string                `gorm:"size:36;not null;index" json:"receiver_id"`
	Content     string                `gorm:"not null" json:"content"`
	MessageType constants.MessageType `gorm:"type:varchar(20);not null;default:'text'" json:"message_type"`
	ReadAt      *time.Time            `json:"read_at,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`

	SenderProfile *Profile `gorm:"foreignKey:SenderID" json:"sender_profile,omitempty"`
}

func (ChatMessage) TableName() string {
	return "messages"
}
