package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"skillhub.com/skillhub/internal/constants"
	dto "skillhub.com/skillhub/internal/data_models"
	middleware "skillhub.com/skillhub/internal/http/middlewares"
)

func (h *Handler) ListMessages(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	actor := middleware.ActorFrom(c)

	messages, err := h.chatService.ListMessages(c.Request().Context(), actor, taskID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(messages),
		"messages": messages,
	})
}

func (h *Handler) SendMessage(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	var req dto.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	actor := middleware.ActorFrom(c)

	message, err := h.chatService.Send(
		c.Request().Context(),
		actor,
		taskID,
		req.Content,
		constants.MessageType(req.MessageType),
	)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, message)
}

func (h *Handler) MarkMessageRead(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message id is required")
	}

	actor := middleware.ActorFrom(c)

	if err := h.chatService.MarkRead(c.Request().Context(), actor, id); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// StreamMessages serves the task's realtime push stream as server-sent
// events until the client disconnects.
func (h *Handler) StreamMessages(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	actor := middleware.ActorFrom(c)
	ctx := c.Request().Context()

	stream, err := h.chatService.Subscribe(ctx, actor, taskID)
	if err != nil {
		return httpError(err)
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case message, ok := <-stream:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(message)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			w.Flush()
		}
	}
}
