package service

import (
	"context"

	"modelhub/internal/models"
	"modelhub/internal/observability"
	"modelhub/internal/repository"
	"modelhub/internal/validation"

	"github.com/google/uuid"
)

type CommentService struct {
	commentRepo repository.CommentRepository
}

type ListCommentsInput struct {
	Page
	ModelID uuid.UUID
}

type CreateCommentInput struct {
	UserID  uuid.UUID `json:"-"`
	ModelID uuid.UUID `json:"-"`
	Content string    `json:"content" validate:"required,max=2000"`
	Rating  *int      `json:"rating" validate:"omitempty,min=1,max=5"`
}

type DeleteCommentInput struct {
	UserID    uuid.UUID
	CommentID uuid.UUID
}

func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// ListComments returns a page of a model's comments, newest first. An unknown
// model yields an empty page.
func (s *CommentService) ListComments(ctx context.Context, in ListCommentsInput) ([]*models.Comment, error) {
	if err := in.Page.validate(); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByModel(ctx, in.ModelID, in.Offset(), in.PageSize)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}

// CreateComment stores a comment; a missing rating means the default of 5.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	rating := models.DefaultRating
	if in.Rating != nil {
		rating = *in.Rating
	}

	comment := &models.Comment{
		ModelID: in.ModelID,
		UserID:  in.UserID,
		Content: in.Content,
		Rating:  rating,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	observability.RecordInteraction(observability.ActionComment)
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}
	if comment.UserID != in.UserID {
		return models.NewForbiddenError("Not allowed to delete this comment")
	}
	if err := s.commentRepo.Delete(ctx, comment); err != nil {
		return err
	}
	observability.RecordInteraction(observability.ActionUncomment)
	return nil
}
