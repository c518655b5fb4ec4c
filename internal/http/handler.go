package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "skillhub.com/skillhub/internal/errors"
	"skillhub.com/skillhub/internal/services"
)

type Handler struct {
	authService        *services.AuthService
	taskService        *services.TaskService
	applicationService *services.ApplicationService
	categoryService    *services.CategoryService
	profileService     *services.ProfileService
	chatService        *services.ChatService
}

func NewHandler(
	authService *services.AuthService,
	taskService *services.TaskService,
	applicationService *services.ApplicationService,
	categoryService *services.CategoryService,
	profileService *services.ProfileService,
	chatService *services.ChatService,
) *Handler {
	return &Handler{
		authService:        authService,
		taskService:        taskService,
		applicationService: applicationService,
		categoryService:    categoryService,
		profileService:     profileService,
		chatService:        chatService,
	}
}

// httpError maps service errors onto echo responses via the exception
// status codes.
func httpError(err error) error {
	return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status": "healthy",
	})
}
