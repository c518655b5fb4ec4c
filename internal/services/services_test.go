package services

import (
	"context"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skillhub.com/skillhub/internal/constants"
	"skillhub.com/skillhub/internal/guard"
	model "skillhub.com/skillhub/internal/models"
	repository "skillhub.com/skillhub/internal/repositories"
)

// mockAssignGuard is a simple in-memory assignment guard for testing.
type mockAssignGuard struct {
	mu   sync.Mutex
	held map[string]bool
}

func newMockAssignGuard() *mockAssignGuard {
	return &mockAssignGuard{held: make(map[string]bool)}
}

func (m *mockAssignGuard) Acquire(ctx context.Context, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.held[taskID] {
		return guard.ErrGuardHeld
	}
	m.held[taskID] = true
	return nil
}

func (m *mockAssignGuard) Release(ctx context.Context, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.held, taskID)
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&model.Profile{},
		&model.TaskCategory{},
		&model.Task{},
		&model.TaskApplication{},
		&model.ChatMessage{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func createTestProfile(t *testing.T, db *gorm.DB, username string, role constants.Role) *model.Profile {
	t.Helper()

	repo := repository.NewProfileRepository(db)
	profile := &model.Profile{
		Email:        username + "@example.com",
		Username:     username,
		FullName:     username,
		PasswordHash: "x",
		Role:         role,
	}
	if err := repo.Create(context.Background(), profile); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return profile
}

func actorFor(profile *model.Profile) Actor {
	return Actor{
		ID:       profile.ID,
		Username: profile.Username,
		Role:     profile.Role,
	}
}

func createTestTask(t *testing.T, db *gorm.DB, customer *model.Profile) *model.Task {
	t.Helper()

	repo := repository.NewTaskRepository(db)
	task := &model.Task{
		CustomerID:  customer.ID,
		CategoryID:  "1",
		Title:       "Mount a TV",
		Description: "55 inch TV above the fireplace",
		City:        "Austin",
		State:       "TX",
		TaskSize:    constants.SizeMedium,
		BudgetMin:   50,
		BudgetMax:   120,
		Urgency:     constants.UrgencyFlexible,
	}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}
