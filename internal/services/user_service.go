package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/expiryguard/backend/internal/domain"
	apperrors "github.com/expiryguard/backend/internal/errors"
	"github.com/expiryguard/backend/internal/repository"
)

type UserService struct {
	users         domain.UserRepository
	defaultHour   int
	defaultMinute int
}

func NewUserService(users domain.UserRepository, defaultHour, defaultMinute int) *UserService {
	return &UserService{
		users:         users,
		defaultHour:   defaultHour,
		defaultMinute: defaultMinute,
	}
}

// Register creates an account. When hour/minute are nil the signup default
// notification time is applied.
func (s *UserService) Register(ctx context.Context, username, email, password string, hour, minute *int) (*domain.User, error) {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if email != "" {
		if _, err := s.users.GetByEmail(ctx, email); err == nil {
			return nil, apperrors.ErrEmailTaken
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:           username,
		Email:              email,
		PasswordHash:       string(hash),
		NotificationHour:   s.defaultHour,
		NotificationMinute: s.defaultMinute,
	}
	if hour != nil {
		user.NotificationHour = *hour
	}
	if minute != nil {
		user.NotificationMinute = *minute
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Authenticate verifies username and password.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateNotificationTime stores the user's preferred daily alert time. The
// running scheduler task picks the new value up on its next cycle.
func (s *UserService) UpdateNotificationTime(ctx context.Context, id uuid.UUID, hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return apperrors.NewValidationError("notification time out of range")
	}
	if err := s.users.UpdateNotificationTime(ctx, id, hour, minute); err != nil {
		return fmt.Errorf("failed to update notification time: %w", err)
	}
	return nil
}
