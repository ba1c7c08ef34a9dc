// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"modelhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, user *models.User, fields ...string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByEmail returns nil, nil when no user has the email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByUsername returns nil, nil when no user has the username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Email or username already registered")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// UpdateFields writes only the named columns of user. Zero values are written
// too, so a nil pointer clears the column.
func (r *userRepository) UpdateFields(ctx context.Context, user *models.User, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	cols := append(append([]string{}, fields...), "updated_at")
	if err := r.db.WithContext(ctx).Model(user).Select(cols).Updates(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}
