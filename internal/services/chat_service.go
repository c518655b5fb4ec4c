package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"skillhub.com/skillhub/internal/constants"
	apperrors "skillhub.com/skillhub/internal/errors"
	"skillhub.com/skillhub/internal/logger"
	model "skillhub.com/skillhub/internal/models"
	repository "skillhub.com/skillhub/internal/repositories"
)

// MessageBroker is the realtime fan-out the chat rides on. The redis hub
// implements it; tests substitute an in-memory one.
type MessageBroker interface {
	Publish(ctx context.Context, message model.ChatMessage) error

	Subscribe(ctx context.Context, taskID string) (<-chan model.ChatMessage, error)
}

// ChatService handles per-task transcripts. Chat is scoped to the task's
// customer and assigned tasker and unlocks once a tasker is assigned.
type ChatService struct {
	messages *repository.MessageRepository
	tasks    *repository.TaskRepository
	broker   MessageBroker
}

func NewChatService(messages *repository.MessageRepository, tasks *repository.TaskRepository, broker MessageBroker) *ChatService {
	return &ChatService{
		messages: messages,
		tasks:    tasks,
		broker:   broker,
	}
}

func (s *ChatService) participantTask(ctx context.Context, actor Actor, taskID string) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.IsParticipant(actor.ID) {
		return nil, apperrors.ErrNotAuthorized
	}
	return task, nil
}

// ListMessages returns the transcript and stamps everything addressed to
// the reader as read.
func (s *ChatService) ListMessages(ctx context.Context, actor Actor, taskID string) ([]model.ChatMessage, error) {
	if _, err := s.participantTask(ctx, actor, taskID); err != nil {
		return nil, err
	}

	messages, err := s.messages.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.messages.MarkAllRead(ctx, taskID, actor.ID); err != nil {
		// Read receipts are best effort; the transcript read stands.
		logger.Warn("failed to mark messages read",
			zap.String("task_id", taskID),
			zap.Error(err))
	}

	return messages, nil
}

// Send persists the message, then pushes it through the broker. The
// receiver is always the actor's counterpart on the task; sending
// requires an assigned tasker.
func (s *ChatService) Send(ctx context.Context, actor Actor, taskID, content string, messageType constants.MessageType) (*model.ChatMessage, error) {
	task, err := s.participantTask(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidation("message content must not be empty")
	}
	if messageType == "" {
		messageType = constants.MessageText
	}
	if !constants.ValidMessageType(messageType) {
		return nil, apperrors.NewValidation("message_type must be text, image or system")
	}

	receiver := task.CounterpartID(actor.ID)
	if receiver == nil {
		return nil, apperrors.NewValidation("task must have an assigned tasker before chatting")
	}

	message := &model.ChatMessage{
		TaskID:      taskID,
		SenderID:    actor.ID,
		ReceiverID:  *receiver,
		Content:     content,
		MessageType: messageType,
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	if err := s.broker.Publish(ctx, *message); err != nil {
		// The message is durable; only the push was lost. Receivers
		// pick it up on the next transcript fetch.
		logger.Warn("failed to publish chat message",
			zap.String("message_id", message.ID),
			zap.Error(err))
	}

	return message, nil
}

// Subscribe attaches a participant to the task's push stream.
func (s *ChatService) Subscribe(ctx context.Context, actor Actor, taskID string) (<-chan model.ChatMessage, error) {
	if _, err := s.participantTask(ctx, actor, taskID); err != nil {
		return nil, err
	}
	return s.broker.Subscribe(ctx, taskID)
}

// MarkRead stamps one message for its receiver.
func (s *ChatService) MarkRead(ctx context.Context, actor Actor, messageID string) error {
	message, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.ReceiverID != actor.ID {
		return apperrors.ErrNotAuthorized
	}
	return s.messages.MarkRead(ctx, messageID, actor.ID)
}
