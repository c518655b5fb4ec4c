package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"skillhub.com/skillhub/internal/constants"
	apperrors "skillhub.com/skillhub/internal/errors"
	"skillhub.com/skillhub/internal/logger"
	model "skillhub.com/skillhub/internal/models"
	repository "skillhub.com/skillhub/internal/repositories"
)

// TaskService owns the task lifecycle: creation, listings scoped by role,
// and the status state machine. Assignment itself lives on
// ApplicationService since it is triggered by accepting an application.
type TaskService struct {
	tasks        *repository.TaskRepository
	applications *repository.ApplicationRepository
}

func NewTaskService(tasks *repository.TaskRepository, applications *repository.ApplicationRepository) *TaskService {
	return &TaskService{
		tasks:        tasks,
		applications: applications,
	}
}

type CreateTaskInput struct {
	CategoryID          string
	Title               string
	Description         string
	Address             string
	City                string
	State               string
	ZipCode             string
	TaskSize            constants.TaskSize
	BudgetMin           float64
	BudgetMax           float64
	Urgency             constants.Urgency
	TaskDate            *string
	TaskTime            *string
	SpecialInstructions *string
}

func (s *TaskService) CreateTask(ctx context.Context, actor Actor, input CreateTaskInput) (*model.Task, error) {
	if !actor.IsCustomer() {
		return nil, apperrors.ErrNotAuthorized
	}

	if err := validateCreateTask(input); err != nil {
		return nil, err
	}

	task := &model.Task{
		CustomerID:          actor.ID,
		CategoryID:          input.CategoryID,
		Title:               input.Title,
		Description:         input.Description,
		Address:             input.Address,
		City:                input.City,
		State:               input.State,
		ZipCode:             input.ZipCode,
		TaskSize:            input.TaskSize,
		BudgetMin:           input.BudgetMin,
		BudgetMax:           input.BudgetMax,
		Urgency:             input.Urgency,
		TaskDate:            input.TaskDate,
		TaskTime:            input.TaskTime,
		FlexibleDate:        input.TaskDate == nil,
		SpecialInstructions: input.SpecialInstructions,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	logger.Info("task created",
		zap.String("task_id", task.ID),
		zap.String("customer_id", actor.ID),
		zap.String("category_id", task.CategoryID))

	return task, nil
}

func validateCreateTask(input CreateTaskInput) error {
	if input.Title == "" {
		return apperrors.NewValidation("title is required")
	}
	if input.Description == "" {
		return apperrors.NewValidation("description is required")
	}
	if input.CategoryID == "" {
		return apperrors.NewValidation("category_id is required")
	}
	if !constants.ValidTaskSize(input.TaskSize) {
		return apperrors.NewValidation("task_size must be small, medium or large")
	}
	if !constants.ValidUrgency(input.Urgency) {
		return apperrors.NewValidation("urgency must be flexible, within_week or urgent")
	}
	if input.BudgetMin < 0 || input.BudgetMax < 0 {
		return apperrors.NewValidation("budget must not be negative")
	}
	if input.BudgetMin >= input.BudgetMax {
		return apperrors.NewValidation("budget_min must be less than budget_max")
	}
	return nil
}

// ListTasks applies the role scoping policy: customers see their own
// tasks, taskers see unassigned tasks plus the ones assigned to them.
func (s *TaskService) ListTasks(ctx context.Context, actor Actor, filter repository.TaskFilter) ([]model.Task, error) {
	var (
		tasks []model.Task
		err   error
	)

	switch actor.Role {
	case constants.RoleCustomer:
		tasks, err = s.tasks.ListForCustomer(ctx, actor.ID, filter)
	case constants.RoleTasker:
		tasks, err = s.tasks.ListForTasker(ctx, actor.ID, filter)
	default:
		return nil, apperrors.ErrNotAuthorized
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachApplicationCounts(ctx, tasks); err != nil {
		// Counts are display enrichment; the listing itself stands.
		logger.Warn("failed to attach application counts", zap.Error(err))
	}

	for i := range tasks {
		fillProfilePlaceholders(&tasks[i])
	}

	return tasks, nil
}

func (s *TaskService) attachApplicationCounts(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}

	counts, err := s.tasks.CountApplications(ctx, ids)
	if err != nil {
		return err
	}

	for i := range tasks {
		tasks[i].ApplicationsCount = counts[tasks[i].ID]
	}
	return nil
}

// fillProfilePlaceholders degrades a missing join target to a labelled
// placeholder instead of failing the read.
func fillProfilePlaceholders(task *model.Task) {
	if task.CustomerProfile == nil {
		task.CustomerProfile = &model.Profile{
			ID:       task.CustomerID,
			FullName: "Customer",
			Role:     constants.RoleCustomer,
		}
	}
	if task.TaskerID != nil && task.TaskerProfile == nil {
		task.TaskerProfile = &model.Profile{
			ID:       *task.TaskerID,
			FullName: "Tasker",
			Role:     constants.RoleTasker,
		}
	}
}

// GetTask returns the detailed view. The owner additionally gets the
// task's applications; everyone else must be allowed to see the task by
// the listing policy.
func (s *TaskService) GetTask(ctx context.Context, actor Actor, id string) (*model.Task, error) {
	task, err := s.tasks.FindDetailed(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.visibleTo(task, actor) {
		return nil, apperrors.ErrNotAuthorized
	}

	counts, err := s.tasks.CountApplications(ctx, []string{task.ID})
	if err != nil {
		logger.Warn("failed to count applications", zap.String("task_id", task.ID), zap.Error(err))
	} else {
		task.ApplicationsCount = counts[task.ID]
	}
	fillProfilePlaceholders(task)

	return task, nil
}

func (s *TaskService) visibleTo(task *model.Task, actor Actor) bool {
	if task.CustomerID == actor.ID {
		return true
	}
	if actor.IsTasker() {
		return task.TaskerID == nil || *task.TaskerID == actor.ID
	}
	return false
}

// RequestTransition moves a task through the lifecycle state machine.
// posted->assigned is not reachable here; it only happens by accepting
// an application. On any rejection the stored status is untouched.
func (s *TaskService) RequestTransition(ctx context.Context, actor Actor, taskID string, target constants.TaskStatus, finalPrice *float64) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := checkTransition(task, actor, target); err != nil {
		return nil, err
	}

	task.Status = target
	if target == constants.StatusCompleted {
		now := time.Now().UTC()
		task.CompletedAt = &now
		if finalPrice != nil {
			task.FinalPrice = finalPrice
		}
	}

	if err := s.tasks.UpdateStatus(ctx, task); err != nil {
		return nil, err
	}

	logger.Info("task transitioned",
		zap.String("task_id", task.ID),
		zap.String("status", string(target)),
		zap.String("actor_id", actor.ID))

	return task, nil
}

// checkTransition is the transition table. It distinguishes "this edge
// does not exist" (conflict) from "this edge exists but not for you"
// (forbidden).
func checkTransition(task *model.Task, actor Actor, target constants.TaskStatus) error {
	isOwner := task.CustomerID == actor.ID
	isAssignee := task.TaskerID != nil && *task.TaskerID == actor.ID

	switch task.Status {
	case constants.StatusPosted:
		if target != constants.StatusCancelled {
			return apperrors.ErrInvalidTransition
		}
		if !isOwner {
			return apperrors.ErrNotAuthorized
		}
	case constants.StatusAssigned:
		switch target {
		case constants.StatusInProgress:
			if !isAssignee {
				return apperrors.ErrNotAuthorized
			}
		case constants.StatusCancelled:
			if !isOwner && !isAssignee {
				return apperrors.ErrNotAuthorized
			}
		default:
			return apperrors.ErrInvalidTransition
		}
	case constants.StatusInProgress:
		switch target {
		case constants.StatusCompleted:
			if !isAssignee {
				return apperrors.ErrNotAuthorized
			}
		case constants.StatusCancelled:
			if !isOwner && !isAssignee {
				return apperrors.ErrNotAuthorized
			}
		default:
			return apperrors.ErrInvalidTransition
		}
	default:
		// completed and cancelled are terminal
		return apperrors.ErrInvalidTransition
	}

	return nil
}
