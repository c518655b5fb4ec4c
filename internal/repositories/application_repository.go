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

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *model.TaskApplication) error {
	app.ID = uuid.NewString()
	app.Status = constants.ApplicationPending
	app.CreatedAt = time.Now().UTC()
	app.UpdatedAt = app.CreatedAt

	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return err
	}

	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*model.TaskApplication, error) {
	var app model.TaskApplication
	err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) ListByTask(ctx context.Context, taskID string) ([]model.TaskApplication, error) {
	var apps []model.TaskApplication
	err := r.db.WithContext(ctx).
		Preload("TaskerProfile").
		Where("task_id = ?", taskID).
		Order("created_at desc").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ApplicationRepository) ListByTasker(ctx context.Context, taskerID string) ([]model.TaskApplication, error) {
	var apps []model.TaskApplication
	err := r.db.WithContext(ctx).
		Where("tasker_id = ?", taskerID).
		Order("created_at desc").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// Exists reports whether the tasker already applied to the task,
// regardless of the application's current status.
func (r *ApplicationRepository) Exists(ctx context.Context, taskID, taskerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TaskApplication{}).
		Where("task_id = ? AND tasker_id = ?", taskID, taskerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus moves an application from one status to another. The
// current status acts as the guard; a concurrent mutation leaves zero
// affected rows.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, app *model.TaskApplication, to constants.ApplicationStatus) error {
	now := time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&model.TaskApplication{}).
		Where("id = ? AND status = ?", app.ID, app.Status).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": now,
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}

	app.Status = to
	app.UpdatedAt = now
	return nil
}
