package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"skillhub.com/skillhub/internal/auth"
	"skillhub.com/skillhub/internal/constants"
	apperrors "skillhub.com/skillhub/internal/errors"
	"skillhub.com/skillhub/internal/logger"
	model "skillhub.com/skillhub/internal/models"
	repository "skillhub.com/skillhub/internal/repositories"
)

type AuthService struct {
	profiles *repository.ProfileRepository
	tokens   *auth.TokenManager
}

func NewAuthService(profiles *repository.ProfileRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		profiles: profiles,
		tokens:   tokens,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Username string
	Role     constants.Role
}

// Register creates the profile and issues a session token. Role is fixed
// here for the life of the account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, *model.Profile, error) {
	if err := validateRegister(input); err != nil {
		return "", nil, err
	}

	emailTaken, err := s.profiles.EmailExists(ctx, input.Email)
	if err != nil {
		return "", nil, err
	}
	if emailTaken {
		return "", nil, apperrors.ErrEmailTaken
	}

	usernameTaken, err := s.profiles.UsernameExists(ctx, input.Username)
	if err != nil {
		return "", nil, err
	}
	if usernameTaken {
		return "", nil, apperrors.ErrUsernameTaken
	}

	profile := &model.Profile{
		Email:        input.Email,
		Username:     input.Username,
		FullName:     input.FullName,
		PasswordHash: auth.HashPassword(input.Password),
		Role:         input.Role,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Generate(profile.ID, profile.Username, profile.Role)
	if err != nil {
		return "", nil, err
	}

	logger.Info("profile registered",
		zap.String("user_id", profile.ID),
		zap.String("role", string(profile.Role)))

	return token, profile, nil
}

func validateRegister(input RegisterInput) error {
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return apperrors.NewValidation("a valid email is required")
	}
	if len(input.Password) < 8 {
		return apperrors.NewValidation("password must be at least 8 characters")
	}
	if input.FullName == "" {
		return apperrors.NewValidation("full_name is required")
	}
	if !usernamePattern.MatchString(input.Username) {
		return apperrors.NewValidation("username may only contain letters, digits and underscores")
	}
	if !constants.ValidRole(input.Role) {
		return apperrors.NewValidation("role must be customer or tasker")
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.Profile, error) {
	profile, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.VerifyPassword(password, profile.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(profile.ID, profile.Username, profile.Role)
	if err != nil {
		return "", nil, err
	}

	return token, profile, nil
}
