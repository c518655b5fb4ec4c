package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "skillhub.com/skillhub/internal/errors"
	model "skillhub.com/skillhub/internal/models"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *model.ChatMessage) error {
	message.ID = uuid.NewString()
	message.CreatedAt = time.Now().UTC()

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return err
	}

	return nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*model.ChatMessage, error) {
	var message model.ChatMessage
	err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

// ListByTask returns the full transcript in send order.
func (r *MessageRepository) ListByTask(ctx context.Context, taskID string) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.db.WithContext(ctx).
		Preload("SenderProfile").
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead stamps a single message, but only for its receiver. Messages
// are append-only otherwise.
func (r *MessageRepository) MarkRead(ctx context.Context, messageID, receiverID string) error {
	res := r.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("id = ? AND receiver_id = ? AND read_at IS NULL", messageID, receiverID).
		Update("read_at", time.Now().UTC())
	return res.Error
}

// MarkAllRead stamps every unread message addressed to the receiver in
// one transcript.
func (r *MessageRepository) MarkAllRead(ctx context.Context, taskID, receiverID string) error {
	res := r.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("task_id = ? AND receiver_id = ? AND read_at IS NULL", taskID, receiverID).
		Update("read_at", time.Now().UTC())
	return res.Error
}
