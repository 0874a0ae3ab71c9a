package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expiryguard/backend/internal/database"
	"github.com/expiryguard/backend/internal/domain"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("record not found")

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	row := userToRow(user)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.CreatedAt = row.CreatedAt
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var row database.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return userFromRow(&row), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row database.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return userFromRow(&row), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row database.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return userFromRow(&row), nil
}

// ListWithEmail returns every user that can receive alert emails.
func (r *UserRepository) ListWithEmail(ctx context.Context) ([]domain.User, error) {
	var rows []database.User
	if err := r.db.WithContext(ctx).Where("email <> ''").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, *userFromRow(&rows[i]))
	}
	return users, nil
}

func (r *UserRepository) UpdateNotificationTime(ctx context.Context, id uuid.UUID, hour, minute int) error {
	err := r.db.WithContext(ctx).Model(&database.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"notification_hour":   hour,
			"notification_minute": minute,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update notification time: %w", err)
	}
	return nil
}

func userToRow(u *domain.User) *database.User {
	return &database.User{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		PasswordHash:       u.PasswordHash,
		NotificationHour:   u.NotificationHour,
		NotificationMinute: u.NotificationMinute,
	}
}

func userFromRow(row *database.User) *domain.User {
	return &domain.User{
		ID:                 row.ID,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
		Username:           row.Username,
		Email:              row.Email,
		PasswordHash:       row.PasswordHash,
		NotificationHour:   row.NotificationHour,
		NotificationMinute: row.NotificationMinute,
	}
}
