package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	apperrors "skillhub.com/skillhub/internal/errors"
	"skillhub.com/skillhub/internal/logger"
	model "skillhub.com/skillhub/internal/models"
	repository "skillhub.com/skillhub/internal/repositories"
)

// CategoryService reads the catalog. When the backing table is missing
// the listing degrades to the static default set; the fallback is not
// authoritative and is never written back.
type CategoryService struct {
	categories *repository.CategoryRepository
}

func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context) ([]model.TaskCategory, error) {
	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrSchemaUnavailable) {
			logger.Warn("category catalog unavailable, serving static defaults", zap.Error(err))
			return DefaultCategories(), nil
		}
		return nil, err
	}
	return categories, nil
}

// Seed populates the catalog from the default set on startup. Existing
// rows win.
func (s *CategoryService) Seed(ctx context.Context) error {
	return s.categories.Seed(ctx, DefaultCategories())
}

// DefaultCategories is the degraded-mode catalog.
func DefaultCategories() []model.TaskCategory {
	return []model.TaskCategory{
		{ID: "1", Name: "Mounting & Installation", Slug: "mounting", Icon: "construct", Color: "#FF6B35", Description: "TV mounting, shelves, art, mirrors", IsActive: true, SortOrder: 1},
		{ID: "2", Name: "Furniture Assembly", Slug: "furniture", Icon: "construct", Color: "#4ECDC4", Description: "IKEA and other furniture assembly", IsActive: true, SortOrder: 2},
		{ID: "3", Name: "Moving Help", Slug: "moving", Icon: "car", Color: "#45B7D1", Description: "Loading, unloading, packing assistance", IsActive: true, SortOrder: 3},
		{ID: "4", Name: "Cleaning", Slug: "cleaning", Icon: "sparkles", Color: "#96CEB4", Description: "Home cleaning, deep cleaning, organizing", IsActive: true, SortOrder: 4},
		{ID: "5", Name: "Delivery", Slug: "delivery", Icon: "bicycle", Color: "#FFEAA7", Description: "Pick up and delivery services", IsActive: true, SortOrder: 5},
		{ID: "6", Name: "Handyman", Slug: "handyman", Icon: "hammer", Color: "#DDA0DD", Description: "General repairs and maintenance", IsActive: true, SortOrder: 6},
		{ID: "7", Name: "Electrical", Slug: "electrical", Icon: "flash", Color: "#FFD93D", Description: "Light fixtures, outlets, switches", IsActive: true, SortOrder: 7},
		{ID: "8", Name: "Plumbing", Slug: "plumbing", Icon: "water", Color: "#6C5CE7", Description: "Faucets, toilets, minor repairs", IsActive: true, SortOrder: 8},
		{ID: "9", Name: "Painting", Slug: "painting", Icon: "color-palette", Color: "#FF7675", Description: "Interior painting, touch-ups", IsActive: true, SortOrder: 9},
		{ID: "10", Name: "Yard Work", Slug: "yard", Icon: "leaf", Color: "#00B894", Description: "Lawn care, gardening, landscaping", IsActive: true, SortOrder: 10},
	}
}
