package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"skillhub.com/skillhub/internal/logger"
	model "skillhub.com/skillhub/internal/models"
)

// Hub fans chat messages out through redis pub/sub, one channel per task.
// Messages are persisted before they are published; the hub only carries
// the push.
type Hub struct {
	client        rueidis.Client
	channelPrefix string
	quit          chan struct{}
	wg            sync.WaitGroup
	closeOnce     sync.Once
}

func NewHub(client rueidis.Client, channelPrefix string) *Hub {
	return &Hub{
		client:        client,
		channelPrefix: channelPrefix,
		quit:          make(chan struct{}),
	}
}

func (h *Hub) channel(taskID string) string {
	return fmt.Sprintf("%s:%s", h.channelPrefix, taskID)
}

func (h *Hub) Publish(ctx context.Context, message model.ChatMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("encode chat message: %w", err)
	}

	cmd := h.client.B().Publish().
		Channel(h.channel(message.TaskID)).
		Message(string(payload)).
		Build()

	return h.client.Do(ctx, cmd).Error()
}

// Subscribe delivers pushed messages for one task until ctx is cancelled
// or the hub shuts down. Duplicate pushes are dropped by message id.
func (h *Hub) Subscribe(ctx context.Context, taskID string) (<-chan model.ChatMessage, error) {
	subCtx, cancel := context.WithCancel(ctx)
	out := make(chan model.ChatMessage, 16)

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		select {
		case <-h.quit:
			cancel()
		case <-subCtx.Done():
		}
	}()

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer cancel()
		defer close(out)

		seen := make(map[string]struct{})
		cmd := h.client.B().Subscribe().Channel(h.channel(taskID)).Build()

		err := h.client.Receive(subCtx, cmd, func(m rueidis.PubSubMessage) {
			var message model.ChatMessage
			if err := json.Unmarshal([]byte(m.Message), &message); err != nil {
				logger.Warn("dropping undecodable chat push",
					zap.String("task_id", taskID),
					zap.Error(err))
				return
			}

			if _, dup := seen[message.ID]; dup {
				return
			}
			seen[message.ID] = struct{}{}

			select {
			case out <- message:
			case <-subCtx.Done():
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("chat subscription ended",
				zap.String("task_id", taskID),
				zap.Error(err))
		}
	}()

	return out, nil
}

// Shutdown stops every live subscription and waits for their goroutines,
// bounded by ctx.
func (h *Hub) Shutdown(ctx context.Context) {
	h.closeOnce.Do(func() {
		close(h.quit)
	})

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("realtime hub shut down cleanly")
	case <-ctx.Done():
		logger.Warn("realtime hub shutdown timed out")
	}
}
