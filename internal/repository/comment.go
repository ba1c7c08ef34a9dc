package repository

import (
	"context"
	"errors"

	"modelhub/internal/models"
	"modelhub/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListByModel(ctx context.Context, modelID uuid.UUID, offset, limit int) ([]*models.Comment, error)
	Delete(ctx context.Context, comment *models.Comment) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment and bumps the model's comment counter in one
// transaction, then loads the author for the response.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "CreateComment", "comments")
	defer func() { observability.EndSpan(span, err) }()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireModel(tx, comment.ModelID); err != nil {
			return err
		}
		if err := tx.Create(comment).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := adjustCounter(tx, comment.ModelID, "comments_count", 1); err != nil {
			return err
		}
		if err := tx.Preload("User").First(comment, "id = ?", comment.ID).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// ListByModel returns comments newest first. An unknown model yields an empty list.
func (r *commentRepository) ListByModel(
	ctx context.Context,
	modelID uuid.UUID,
	offset, limit int,
) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0, limit)
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("model_id = ?", modelID).
		Order("created_at desc").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// Delete removes the comment and decrements the counter only if this call
// removed the row.
func (r *commentRepository) Delete(ctx context.Context, comment *models.Comment) (err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "DeleteComment", "comments")
	defer func() { observability.EndSpan(span, err) }()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Comment{}, "id = ?", comment.ID)
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Comment", comment.ID)
		}
		return adjustCounter(tx, comment.ModelID, "comments_count", -1)
	})
}

// requireModel fails with NotFound when no model has the id.
func requireModel(tx *gorm.DB, modelID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Model{}).Where("id = ?", modelID).Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count == 0 {
		return models.NewNotFoundError("Model", modelID)
	}
	return nil
}

// adjustCounter applies a relative update to one of the model's counters.
func adjustCounter(tx *gorm.DB, modelID uuid.UUID, column string, delta int) error {
	err := tx.Model(&models.Model{}).
		Where("id = ?", modelID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
