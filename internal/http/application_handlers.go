package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"skillhub.com/skillhub/internal/constants"
	dto "skillhub.com/skillhub/internal/data_models"
	middleware "skillhub.com/skillhub/internal/http/middlewares"
	"skillhub.com/skillhub/internal/services"
)

func (h *Handler) ApplyToTask(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	var req dto.ApplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	actor := middleware.ActorFrom(c)

	app, err := h.applicationService.Apply(c.Request().Context(), actor, taskID, services.ApplyInput{
		Message:       req.Message,
		ProposedPrice: req.ProposedPrice,
		EstimatedTime: req.EstimatedTime,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, app)
}

func (h *Handler) ListTaskApplications(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	actor := middleware.ActorFrom(c)

	apps, err := h.applicationService.ListForTask(c.Request().Context(), actor, taskID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(apps),
		"applications": apps,
	})
}

func (h *Handler) ListOwnApplications(c echo.Context) error {
	actor := middleware.ActorFrom(c)

	apps, err := h.applicationService.ListOwn(c.Request().Context(), actor)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(apps),
		"applications": apps,
	})
}

// UpdateApplication dispatches the status change: accept and reject are
// owner operations, withdraw belongs to the applicant.
func (h *Handler) UpdateApplication(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "application id is required")
	}

	var req dto.UpdateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	actor := middleware.ActorFrom(c)
	ctx := c.Request().Context()

	switch constants.ApplicationStatus(req.Status) {
	case constants.ApplicationAccepted:
		app, err := h.applicationService.Accept(ctx, actor, id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, app)
	case constants.ApplicationRejected:
		app, err := h.applicationService.Reject(ctx, actor, id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, app)
	case constants.ApplicationWithdrawn:
		app, err := h.applicationService.Withdraw(ctx, actor, id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, app)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "status must be accepted, rejected or withdrawn")
	}
}
