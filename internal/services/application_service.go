package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"skillhub.com/skillhub/internal/constants"
	apperrors "skillhub.com/skillhub/internal/errors"
	"skillhub.com/skillhub/internal/guard"
	"skillhub.com/skillhub/internal/logger"
	model "skillhub.com/skillhub/internal/models"
	repository "skillhub.com/skillhub/internal/repositories"
)

// ApplicationService owns the application workflow: taskers apply to
// posted tasks, customers accept or reject, applicants withdraw. Accept
// is the one operation that also mutates the task.
type ApplicationService struct {
	applications *repository.ApplicationRepository
	tasks        *repository.TaskRepository
	assignGuard  guard.AssignGuard
}

func NewApplicationService(
	applications *repository.ApplicationRepository,
	tasks *repository.TaskRepository,
	assignGuard guard.AssignGuard,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		tasks:        tasks,
		assignGuard:  assignGuard,
	}
}

type ApplyInput struct {
	Message       *string
	ProposedPrice *float64
	EstimatedTime *float64
}

// Apply creates a pending application. It never mutates the task.
func (s *ApplicationService) Apply(ctx context.Context, actor Actor, taskID string, input ApplyInput) (*model.TaskApplication, error) {
	if !actor.IsTasker() {
		return nil, apperrors.ErrNotAuthorized
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status != constants.StatusPosted || task.TaskerID != nil {
		return nil, apperrors.NewValidation("task is not open for applications")
	}
	if task.CustomerID == actor.ID {
		return nil, apperrors.NewValidation("cannot apply to your own task")
	}

	exists, err := s.applications.Exists(ctx, taskID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewValidation("you already applied to this task")
	}

	app := &model.TaskApplication{
		TaskID:        taskID,
		TaskerID:      actor.ID,
		Message:       input.Message,
		ProposedPrice: input.ProposedPrice,
		EstimatedTime: input.EstimatedTime,
	}
	if app.ProposedPrice == nil {
		price := task.BudgetMax
		app.ProposedPrice = &price
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	logger.Info("application created",
		zap.String("application_id", app.ID),
		zap.String("task_id", taskID),
		zap.String("tasker_id", actor.ID))

	return app, nil
}

// ListForTask returns a task's applications to its owner.
func (s *ApplicationService) ListForTask(ctx context.Context, actor Actor, taskID string) ([]model.TaskApplication, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.CustomerID != actor.ID {
		return nil, apperrors.ErrNotAuthorized
	}

	return s.applications.ListByTask(ctx, taskID)
}

// ListOwn returns the tasker's applications across all tasks.
func (s *ApplicationService) ListOwn(ctx context.Context, actor Actor) ([]model.TaskApplication, error) {
	if !actor.IsTasker() {
		return nil, apperrors.ErrNotAuthorized
	}
	return s.applications.ListByTasker(ctx, actor.ID)
}

// Accept binds the application's tasker to the task. The redis guard
// absorbs double-submits before they reach the database; the assignment
// transaction re-checks status and version, so a second accept that
// slips past the guard still fails without partial state.
//
// Sibling pending applications stay pending. See DESIGN.md.
func (s *ApplicationService) Accept(ctx context.Context, actor Actor, applicationID string) (*model.TaskApplication, error) {
	app, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, app.TaskID)
	if err != nil {
		return nil, err
	}

	if task.CustomerID != actor.ID {
		return nil, apperrors.ErrNotAuthorized
	}
	if app.Status != constants.ApplicationPending {
		return nil, apperrors.ErrInvalidTransition
	}
	if task.Status != constants.StatusPosted || task.TaskerID != nil {
		return nil, apperrors.ErrInvalidTransition
	}

	if err := s.assignGuard.Acquire(ctx, task.ID); err != nil {
		if errors.Is(err, guard.ErrGuardHeld) {
			return nil, apperrors.ErrInvalidTransition
		}
		return nil, err
	}
	defer func() {
		if releaseErr := s.assignGuard.Release(context.WithoutCancel(ctx), task.ID); releaseErr != nil {
			logger.Warn("failed to release assignment guard",
				zap.String("task_id", task.ID),
				zap.Error(releaseErr))
		}
	}()

	if err := s.tasks.AssignTasker(ctx, task, app); err != nil {
		return nil, err
	}

	logger.Info("application accepted",
		zap.String("application_id", app.ID),
		zap.String("task_id", task.ID),
		zap.String("tasker_id", app.TaskerID))

	return app, nil
}

// Reject is owner-only and leaves the task untouched.
func (s *ApplicationService) Reject(ctx context.Context, actor Actor, applicationID string) (*model.TaskApplication, error) {
	app, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, app.TaskID)
	if err != nil {
		return nil, err
	}
	if task.CustomerID != actor.ID {
		return nil, apperrors.ErrNotAuthorized
	}
	if app.Status != constants.ApplicationPending {
		return nil, apperrors.ErrInvalidTransition
	}

	if err := s.applications.UpdateStatus(ctx, app, constants.ApplicationRejected); err != nil {
		return nil, err
	}
	return app, nil
}

// Withdraw is applicant-only and leaves the task untouched.
func (s *ApplicationService) Withdraw(ctx context.Context, actor Actor, applicationID string) (*model.TaskApplication, error) {
	app, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if app.TaskerID != actor.ID {
		return nil, apperrors.ErrNotAuthorized
	}
	if app.Status != constants.ApplicationPending {
		return nil, apperrors.ErrInvalidTransition
	}

	if err := s.applications.UpdateStatus(ctx, app, constants.ApplicationWithdrawn); err != nil {
		return nil, err
	}
	return app, nil
}
