package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillhub.com/skillhub/internal/constants"
	apperrors "skillhub.com/skillhub/internal/errors"
	repository "skillhub.com/skillhub/internal/repositories"
)

func TestProfileService_GetSessionProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProfileRepository(db)
	service := NewProfileService(repo, 2, time.Millisecond)

	profile := createTestProfile(t, db, "alice", constants.RoleCustomer)

	got, err := service.GetSessionProfile(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("GetSessionProfile failed: %v", err)
	}
	if got.ID != profile.ID || got.Username != "alice" {
		t.Errorf("unexpected profile: %+v", got)
	}
}

func TestProfileService_GetSessionProfileDegrades(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProfileRepository(db)
	service := NewProfileService(repo, 2, time.Millisecond)

	// The row never appears; after the attempt budget the read degrades
	// to a placeholder instead of failing.
	got, err := service.GetSessionProfile(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("GetSessionProfile failed: %v", err)
	}
	if got.ID != "ghost" {
		t.Errorf("placeholder must carry the requested id, got %s", got.ID)
	}
	if got.FullName != "Demo User" || got.Username != "demouser" {
		t.Errorf("unexpected placeholder: %+v", got)
	}
}

func TestProfileService_GetSessionProfileHonorsContext(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProfileRepository(db)
	service := NewProfileService(repo, 5, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := service.GetSessionProfile(ctx, "ghost"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestProfileService_Lookup(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProfileRepository(db)
	service := NewProfileService(repo, 2, time.Millisecond)

	profile := createTestProfile(t, db, "alice", constants.RoleCustomer)

	got, err := service.Lookup(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if got.ID != profile.ID {
		t.Errorf("unexpected profile: %+v", got)
	}

	// Lookup never degrades.
	if _, err := service.Lookup(context.Background(), "ghost"); !errors.Is(err, apperrors.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileService_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProfileRepository(db)
	service := NewProfileService(repo, 2, time.Millisecond)

	customer := createTestProfile(t, db, "alice", constants.RoleCustomer)
	tasker := createTestProfile(t, db, "bob", constants.RoleTasker)
	ctx := context.Background()

	name := "Alice Jones"
	bio := "I post tasks"
	got, err := service.Update(ctx, actorFor(customer), UpdateProfileInput{FullName: &name, Bio: &bio})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.FullName != name {
		t.Errorf("expected full name %q, got %q", name, got.FullName)
	}
	if got.Bio == nil || *got.Bio != bio {
		t.Errorf("expected bio %q, got %v", bio, got.Bio)
	}

	rate := 45.0
	if _, err := service.Update(ctx, actorFor(tasker), UpdateProfileInput{HourlyRate: &rate}); err != nil {
		t.Errorf("tasker rate update failed: %v", err)
	}
	if _, err := service.Update(ctx, actorFor(customer), UpdateProfileInput{HourlyRate: &rate}); !apperrors.IsValidation(err) {
		t.Errorf("customer rate update: expected validation error, got %v", err)
	}

	bad := "no spaces!"
	if _, err := service.Update(ctx, actorFor(customer), UpdateProfileInput{Username: &bad}); !apperrors.IsValidation(err) {
		t.Errorf("bad username: expected validation error, got %v", err)
	}

	taken := "bob"
	if _, err := service.Update(ctx, actorFor(customer), UpdateProfileInput{Username: &taken}); !errors.Is(err, apperrors.ErrUsernameTaken) {
		t.Errorf("taken username: expected ErrUsernameTaken, got %v", err)
	}

	if _, err := service.Update(ctx, actorFor(customer), UpdateProfileInput{}); !apperrors.IsValidation(err) {
		t.Errorf("empty update: expected validation error, got %v", err)
	}
}
