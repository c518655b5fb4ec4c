package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "skillhub.com/skillhub/internal/errors"
	model "skillhub.com/skillhub/internal/models"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListActive(ctx context.Context) ([]model.TaskCategory, error) {
	var categories []model.TaskCategory
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order asc").
		Find(&categories).Error
	if err != nil {
		if isMissingRelation(err) {
			return nil, apperrors.ErrSchemaUnavailable
		}
		return nil, err
	}
	return categories, nil
}

// Seed inserts categories that are not present yet, keyed by slug.
// Existing rows are left untouched.
func (r *CategoryRepository) Seed(ctx context.Context, categories []model.TaskCategory) error {
	for _, category := range categories {
		c := category
		err := r.db.WithContext(ctx).
			Where("slug = ?", c.Slug).
			FirstOrCreate(&c).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// isMissingRelation matches the driver-level "table is absent" failures
// that the catalog read degrades on: sqlite's "no such table" and
// postgres' "relation ... does not exist".
func isMissingRelation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "no such table") || strings.Contains(msg, "does not exist")
}
