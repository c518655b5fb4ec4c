package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skillhub.com/skillhub/internal/constants"
	apperrors "skillhub.com/skillhub/internal/errors"
	model "skillhub.com/skillhub/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// TaskFilter narrows listings. Zero values mean "no filter".
type TaskFilter struct {
	CategoryID string
	Status     constants.TaskStatus
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	task.ID = uuid.NewString()
	task.Status = constants.StatusPosted
	task.Version = 1
	task.CreatedAt = time.Now().UTC()
	task.UpdatedAt = task.CreatedAt

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return err
	}

	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// FindDetailed loads the task together with its typed joins: category
// metadata and both counterpart profiles.
func (r *TaskRepository) FindDetailed(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("CustomerProfile").
		Preload("TaskerProfile").
		First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListForCustomer returns only tasks owned by the customer.
func (r *TaskRepository) ListForCustomer(ctx context.Context, customerID string, filter TaskFilter) ([]model.Task, error) {
	query := r.detailedQuery(ctx, filter).Where("customer_id = ?", customerID)

	var tasks []model.Task
	if err := query.Order("created_at desc").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListForTasker returns the union of unassigned tasks and tasks assigned
// to this tasker, never tasks assigned to somebody else.
func (r *TaskRepository) ListForTasker(ctx context.Context, taskerID string, filter TaskFilter) ([]model.Task, error) {
	query := r.detailedQuery(ctx, filter).
		Where("tasker_id IS NULL OR tasker_id = ?", taskerID)

	var tasks []model.Task
	if err := query.Order("created_at desc").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) detailedQuery(ctx context.Context, filter TaskFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Task{}).
		Preload("Category").
		Preload("CustomerProfile").
		Preload("TaskerProfile")

	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	return query
}

// CountApplications returns the number of applications per task id.
func (r *TaskRepository) CountApplications(ctx context.Context, taskIDs []string) (map[string]int, error) {
	if len(taskIDs) == 0 {
		return map[string]int{}, nil
	}

	var rows []struct {
		TaskID string
		Total  int
	}
	err := r.db.WithContext(ctx).Model(&model.TaskApplication{}).
		Select("task_id, count(*) as total").
		Where("task_id IN ?", taskIDs).
		Group("task_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.TaskID] = row.Total
	}
	return counts, nil
}

// UpdateStatus persists a validated status transition. The version column
// guards against racing writers; a stale version rolls nothing forward.
func (r *TaskRepository) UpdateStatus(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"status":       task.Status,
			"final_price":  task.FinalPrice,
			"completed_at": task.CompletedAt,
			"updated_at":   time.Now().UTC(),
			"version":      gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}

	task.Version++
	return nil
}

// AssignTasker binds the accepted application's tasker to the task as one
// transaction: application goes accepted, task goes assigned. Either both
// rows move or neither does.
func (r *TaskRepository) AssignTasker(ctx context.Context, task *model.Task, app *model.TaskApplication) error {
	now := time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TaskApplication{}).
			Where("id = ? AND status = ?", app.ID, constants.ApplicationPending).
			Updates(map[string]interface{}{
				"status":     constants.ApplicationAccepted,
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrInvalidTransition
		}

		res = tx.Model(&model.Task{}).
			Where("id = ? AND status = ? AND tasker_id IS NULL AND version = ?",
				task.ID, constants.StatusPosted, task.Version).
			Updates(map[string]interface{}{
				"tasker_id":  app.TaskerID,
				"status":     constants.StatusAssigned,
				"updated_at": now,
				"version":    gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrOptimisticLock
		}

		return nil
	})
	if err != nil {
		return err
	}

	app.Status = constants.ApplicationAccepted
	app.UpdatedAt = now
	task.TaskerID = &app.TaskerID
	task.Status = constants.StatusAssigned
	task.UpdatedAt = now
	task.Version++
	return nil
}
