package service

import (
	"context"

	"modelhub/internal/models"
	"modelhub/internal/observability"
	"modelhub/internal/repository"

	"github.com/google/uuid"
)

// LikeService toggles likes and reports whether a user likes a model.
type LikeService struct {
	likeRepo repository.LikeRepository
}

func NewLikeService(likeRepo repository.LikeRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo}
}

func (s *LikeService) Like(ctx context.Context, userID, modelID uuid.UUID) (*models.Like, error) {
	like, err := s.likeRepo.Like(ctx, modelID, userID)
	if err != nil {
		return nil, err
	}
	observability.RecordInteraction(observability.ActionLike)
	return like, nil
}

func (s *LikeService) Unlike(ctx context.Context, userID, modelID uuid.UUID) error {
	if err := s.likeRepo.Unlike(ctx, modelID, userID); err != nil {
		return err
	}
	observability.RecordInteraction(observability.ActionUnlike)
	return nil
}

// Status reports whether userID currently likes modelID.
func (s *LikeService) Status(ctx context.Context, userID, modelID uuid.UUID) (bool, error) {
	return s.likeRepo.IsLiked(ctx, modelID, userID)
}
