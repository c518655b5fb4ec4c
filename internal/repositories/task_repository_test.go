package repository

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skillhub.com/skillhub/internal/constants"
	apperrors "skillhub.com/skillhub/internal/errors"
	model "skillhub.com/skillhub/internal/models"
)

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

func seedTask(t *testing.T, repo *TaskRepository) *model.Task {
	t.Helper()

	task := &model.Task{
		CustomerID:  "customer-1",
		CategoryID:  "1",
		Title:       "Mount a TV",
		Description: "55 inch TV above the fireplace",
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

func TestTaskRepository_CreateDefaults(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	task := seedTask(t, repo)

	if task.ID == "" {
		t.Error("expected a generated id")
	}
	if task.Status != constants.StatusPosted {
		t.Errorf("expected posted, got %s", task.Status)
	}
	if task.Version != 1 {
		t.Errorf("expected version 1, got %d", task.Version)
	}
}

func TestTaskRepository_FindByID(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	task := seedTask(t, repo)

	got, err := repo.FindByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.Title != task.Title {
		t.Errorf("unexpected task: %+v", got)
	}

	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskRepository_UpdateStatusOptimisticLock(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	task := seedTask(t, repo)
	ctx := context.Background()

	stale, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}

	task.Status = constants.StatusCancelled
	if err := repo.UpdateStatus(ctx, task); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if task.Version != 2 {
		t.Errorf("expected version bump to 2, got %d", task.Version)
	}

	// The stale copy still carries version 1; its write must not land.
	stale.Status = constants.StatusCancelled
	if err := repo.UpdateStatus(ctx, stale); !errors.Is(err, apperrors.ErrOptimisticLock) {
		t.Errorf("expected ErrOptimisticLock, got %v", err)
	}
}

func TestTaskRepository_AssignTasker(t *testing.T) {
	db := setupTestDB(t)
	taskRepo := NewTaskRepository(db)
	appRepo := NewApplicationRepository(db)
	ctx := context.Background()

	task := seedTask(t, taskRepo)
	app := &model.TaskApplication{TaskID: task.ID, TaskerID: "tasker-1"}
	if err := appRepo.Create(ctx, app); err != nil {
		t.Fatalf("failed to create application: %v", err)
	}

	if err := taskRepo.AssignTasker(ctx, task, app); err != nil {
		t.Fatalf("AssignTasker failed: %v", err)
	}

	got, err := taskRepo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.Status != constants.StatusAssigned {
		t.Errorf("expected assigned, got %s", got.Status)
	}
	if got.TaskerID == nil || *got.TaskerID != "tasker-1" {
		t.Errorf("expected tasker-1 bound, got %v", got.TaskerID)
	}
	if got.Version != 2 {
		t.Errorf("expected version 2, got %d", got.Version)
	}

	gotApp, err := appRepo.FindByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if gotApp.Status != constants.ApplicationAccepted {
		t.Errorf("expected accepted, got %s", gotApp.Status)
	}
}

func TestTaskRepository_AssignTaskerRollsBackTogether(t *testing.T) {
	db := setupTestDB(t)
	taskRepo := NewTaskRepository(db)
	appRepo := NewApplicationRepository(db)
	ctx := context.Background()

	task := seedTask(t, taskRepo)

	winner := &model.TaskApplication{TaskID: task.ID, TaskerID: "tasker-1"}
	if err := appRepo.Create(ctx, winner); err != nil {
		t.Fatalf("failed to create application: %v", err)
	}
	loser := &model.TaskApplication{TaskID: task.ID, TaskerID: "tasker-2"}
	if err := appRepo.Create(ctx, loser); err != nil {
		t.Fatalf("failed to create application: %v", err)
	}

	staleTask, err := taskRepo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}

	if err := taskRepo.AssignTasker(ctx, task, winner); err != nil {
		t.Fatalf("AssignTasker failed: %v", err)
	}

	// The losing assignment sees a moved task. The application update
	// inside its transaction must be rolled back with it.
	if err := taskRepo.AssignTasker(ctx, staleTask, loser); !errors.Is(err, apperrors.ErrOptimisticLock) {
		t.Fatalf("expected ErrOptimisticLock, got %v", err)
	}

	gotLoser, err := appRepo.FindByID(ctx, loser.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if gotLoser.Status != constants.ApplicationPending {
		t.Errorf("losing application leaked out of the transaction: %s", gotLoser.Status)
	}

	got, err := taskRepo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.TaskerID == nil || *got.TaskerID != "tasker-1" {
		t.Errorf("winner overwritten: %v", got.TaskerID)
	}
}

func TestTaskRepository_ListForTasker(t *testing.T) {
	db := setupTestDB(t)
	taskRepo := NewTaskRepository(db)
	appRepo := NewApplicationRepository(db)
	ctx := context.Background()

	open := seedTask(t, taskRepo)
	mine := seedTask(t, taskRepo)
	foreign := seedTask(t, taskRepo)

	mineApp := &model.TaskApplication{TaskID: mine.ID, TaskerID: "tasker-1"}
	if err := appRepo.Create(ctx, mineApp); err != nil {
		t.Fatalf("failed to create application: %v", err)
	}
	if err := taskRepo.AssignTasker(ctx, mine, mineApp); err != nil {
		t.Fatalf("AssignTasker failed: %v", err)
	}

	foreignApp := &model.TaskApplication{TaskID: foreign.ID, TaskerID: "tasker-2"}
	if err := appRepo.Create(ctx, foreignApp); err != nil {
		t.Fatalf("failed to create application: %v", err)
	}
	if err := taskRepo.AssignTasker(ctx, foreign, foreignApp); err != nil {
		t.Fatalf("AssignTasker failed: %v", err)
	}

	tasks, err := taskRepo.ListForTasker(ctx, "tasker-1", TaskFilter{})
	if err != nil {
		t.Fatalf("ListForTasker failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.ID == foreign.ID {
			t.Error("listing leaked a task assigned to somebody else")
		}
		if task.ID != open.ID && task.ID != mine.ID {
			t.Errorf("unexpected task %s", task.ID)
		}
	}
}

func TestTaskRepository_CountApplications(t *testing.T) {
	db := setupTestDB(t)
	taskRepo := NewTaskRepository(db)
	appRepo := NewApplicationRepository(db)
	ctx := context.Background()

	busy := seedTask(t, taskRepo)
	quiet := seedTask(t, taskRepo)

	for _, tasker := range []string{"tasker-1", "tasker-2", "tasker-3"} {
		app := &model.TaskApplication{TaskID: busy.ID, TaskerID: tasker}
		if err := appRepo.Create(ctx, app); err != nil {
			t.Fatalf("failed to create application: %v", err)
		}
	}

	counts, err := taskRepo.CountApplications(ctx, []string{busy.ID, quiet.ID})
	if err != nil {
		t.Fatalf("CountApplications failed: %v", err)
	}
	if counts[busy.ID] != 3 {
		t.Errorf("expected 3 applications, got %d", counts[busy.ID])
	}
	if counts[quiet.ID] != 0 {
		t.Errorf("expected 0 applications, got %d", counts[quiet.ID])
	}
}
