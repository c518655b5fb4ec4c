package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "skillhub.com/skillhub/internal/data_models"
)

// ValidateCreateTaskRequest rejects structurally incomplete payloads
// before they reach the service. Business rules (budget ordering, enum
// membership) are enforced in the service layer.
func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if r.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if r.Description == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required")
	}
	if r.CategoryID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category_id is required")
	}
	return nil
}
