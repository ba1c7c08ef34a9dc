package repository

import (
	"context"

	"modelhub/internal/models"
	"modelhub/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for likes.
type LikeRepository interface {
	Like(ctx context.Context, modelID, userID uuid.UUID) (*models.Like, error)
	Unlike(ctx context.Context, modelID, userID uuid.UUID) error
	IsLiked(ctx context.Context, modelID, userID uuid.UUID) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Like records userID's like on modelID and increments likes_count. A second
// like by the same user fails with a conflict, whether it is caught by the
// pre-check or by the unique index.
func (r *likeRepository) Like(ctx context.Context, modelID, userID uuid.UUID) (like *models.Like, err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "Like", "likes")
	defer func() { observability.EndSpan(span, err) }()

	like = &models.Like{ModelID: modelID, UserID: userID}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireModel(tx, modelID); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Like{}).
			Where("model_id = ? AND user_id = ?", modelID, userID).
			Count(&existing).Error; err != nil {
			return models.NewInternalError(err)
		}
		if existing > 0 {
			return models.NewConflictError("Model already liked")
		}

		if err := tx.Create(like).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewConflictError("Model already liked")
			}
			return models.NewInternalError(err)
		}
		return adjustCounter(tx, modelID, "likes_count", 1)
	})
	if err != nil {
		return nil, err
	}
	return like, nil
}

// Unlike removes the like. Only the call that actually deleted the row
// decrements the counter.
func (r *likeRepository) Unlike(ctx context.Context, modelID, userID uuid.UUID) (err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "Unlike", "likes")
	defer func() { observability.EndSpan(span, err) }()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("model_id = ? AND user_id = ?", modelID, userID).Delete(&models.Like{})
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return &models.AppError{Code: models.CodeNotFound, Message: "Like not found"}
		}
		return adjustCounter(tx, modelID, "likes_count", -1)
	})
}

func (r *likeRepository) IsLiked(ctx context.Context, modelID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("model_id = ? AND user_id = ?", modelID, userID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
