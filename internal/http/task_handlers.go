package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"skillhub.com/skillhub/internal/constants"
	dto "skillhub.com/skillhub/internal/data_models"
	middleware "skillhub.com/skillhub/internal/http/middlewares"
	"skillhub.com/skillhub/internal/http/validators"
	repository "skillhub.com/skillhub/internal/repositories"
	"skillhub.com/skillhub/internal/services"
)

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	actor := middleware.ActorFrom(c)

	task, err := h.taskService.CreateTask(c.Request().Context(), actor, services.CreateTaskInput{
		CategoryID:          req.CategoryID,
		Title:               req.Title,
		Description:         req.Description,
		Address:             req.Address,
		City:                req.City,
		State:               req.State,
		ZipCode:             req.ZipCode,
		TaskSize:            constants.TaskSize(req.TaskSize),
		BudgetMin:           req.BudgetMin,
		BudgetMax:           req.BudgetMax,
		Urgency:             constants.Urgency(req.Urgency),
		TaskDate:            req.TaskDate,
		TaskTime:            req.TaskTime,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	actor := middleware.ActorFrom(c)

	filter := repository.TaskFilter{
		CategoryID: c.QueryParam("category_id"),
		Status:     constants.TaskStatus(c.QueryParam("status")),
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), actor, filter)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	actor := middleware.ActorFrom(c)

	task, err := h.taskService.GetTask(c.Request().Context(), actor, id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) TransitionTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	var req dto.TransitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	actor := middleware.ActorFrom(c)

	task, err := h.taskService.RequestTransition(
		c.Request().Context(),
		actor,
		id,
		constants.TaskStatus(req.Status),
		req.FinalPrice,
	)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}
