package services

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.uber.org/zap"

	"skillhub.com/skillhub/internal/constants"
	apperrors "skillhub.com/skillhub/internal/errors"
	"skillhub.com/skillhub/internal/logger"
	model "skillhub.com/skillhub/internal/models"
	repository "skillhub.com/skillhub/internal/repositories"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ProfileService reads and mutates profiles. The session profile read is
// the one degrading path in the system: a bounded retry with backoff,
// then a synthetic placeholder so sign-in is never blocked indefinitely.
type ProfileService struct {
	profiles *repository.ProfileRepository
	retries  int
	backoff  time.Duration
}

func NewProfileService(profiles *repository.ProfileRepository, retries int, backoff time.Duration) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		retries:  retries,
		backoff:  backoff,
	}
}

// GetSessionProfile loads the signed-in user's profile. The row can lag
// registration, so absence and transient failures are retried up to the
// configured attempt budget before degrading to a placeholder.
func (s *ProfileService) GetSessionProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var lastErr error

	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.backoff * time.Duration(attempt)):
			}
		}

		profile, err := s.profiles.FindByID(ctx, userID)
		if err == nil {
			return profile, nil
		}
		lastErr = err

		if errors.Is(err, apperrors.ErrSchemaUnavailable) {
			break
		}
	}

	logger.Warn("profile unavailable, serving placeholder",
		zap.String("user_id", userID),
		zap.Int("attempts", s.retries+1),
		zap.Error(lastErr))

	return placeholderProfile(userID), nil
}

func placeholderProfile(userID string) *model.Profile {
	now := time.Now().UTC()
	return &model.Profile{
		ID:        userID,
		FullName:  "Demo User",
		Username:  "demouser",
		Role:      constants.RoleCustomer,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Lookup is the strict public read: no retry, no placeholder.
func (s *ProfileService) Lookup(ctx context.Context, userID string) (*model.Profile, error) {
	return s.profiles.FindByID(ctx, userID)
}

type UpdateProfileInput struct {
	FullName   *string
	Username   *string
	AvatarURL  *string
	Bio        *string
	Skills     *string
	HourlyRate *float64
	City       *string
	State      *string
}

// Update mutates the owner's profile. Role and rating aggregates are not
// client-writable.
func (s *ProfileService) Update(ctx context.Context, actor Actor, input UpdateProfileInput) (*model.Profile, error) {
	fields := map[string]interface{}{}

	if input.FullName != nil {
		if *input.FullName == "" {
			return nil, apperrors.NewValidation("full_name must not be empty")
		}
		fields["full_name"] = *input.FullName
	}
	if input.Username != nil {
		if !usernamePattern.MatchString(*input.Username) {
			return nil, apperrors.NewValidation("username may only contain letters, digits and underscores")
		}
		taken, err := s.profiles.UsernameExists(ctx, *input.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.ErrUsernameTaken
		}
		fields["username"] = *input.Username
	}
	if input.HourlyRate != nil {
		if !actor.IsTasker() {
			return nil, apperrors.NewValidation("hourly_rate is only valid for taskers")
		}
		if *input.HourlyRate < 0 {
			return nil, apperrors.NewValidation("hourly_rate must not be negative")
		}
		fields["hourly_rate"] = *input.HourlyRate
	}
	if input.AvatarURL != nil {
		fields["avatar_url"] = *input.AvatarURL
	}
	if input.Bio != nil {
		fields["bio"] = *input.Bio
	}
	if input.Skills != nil {
		fields["skills"] = *input.Skills
	}
	if input.City != nil {
		fields["city"] = *input.City
	}
	if input.State != nil {
		fields["state"] = *input.State
	}

	if len(fields) == 0 {
		return nil, apperrors.NewValidation("no fields to update")
	}

	return s.profiles.Update(ctx, actor.ID, fields)
}
