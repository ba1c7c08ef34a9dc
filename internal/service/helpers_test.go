package service

import (
	"context"
	"errors"
	"testing"

	"modelhub/internal/config"
	"modelhub/internal/models"
	"modelhub/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeValidation)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeUnauthorized)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeForbidden)
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                "test-secret-key-that-is-long-enough",
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: 30,
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uuid.UUID) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFieldsFn  func(context.Context, *models.User, ...string) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) UpdateFields(ctx context.Context, user *models.User, fields ...string) error {
	return s.updateFieldsFn(ctx, user, fields...)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uuid.UUID) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFieldsFn:  func(_ context.Context, _ *models.User, _ ...string) error { return nil },
	}
}

// modelRepoStub is a stub for repository.ModelRepository.
type modelRepoStub struct {
	listFn           func(context.Context, repository.ModelFilter) ([]models.Model, int64, error)
	getByIDFn        func(context.Context, uuid.UUID) (*models.Model, error)
	createFn         func(context.Context, *models.Model) error
	updateFieldsFn   func(context.Context, *models.Model, ...string) error
	deleteFn         func(context.Context, uuid.UUID) error
	incrementViewsFn func(context.Context, uuid.UUID) error
	recordDownloadFn func(context.Context, uuid.UUID) (*models.Model, error)
}

func (s *modelRepoStub) List(ctx context.Context, filter repository.ModelFilter) ([]models.Model, int64, error) {
	return s.listFn(ctx, filter)
}
func (s *modelRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Model, error) {
	return s.getByIDFn(ctx, id)
}
func (s *modelRepoStub) Create(ctx context.Context, model *models.Model) error {
	return s.createFn(ctx, model)
}
func (s *modelRepoStub) UpdateFields(ctx context.Context, model *models.Model, fields ...string) error {
	return s.updateFieldsFn(ctx, model, fields...)
}
func (s *modelRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}
func (s *modelRepoStub) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *modelRepoStub) RecordDownload(ctx context.Context, id uuid.UUID) (*models.Model, error) {
	return s.recordDownloadFn(ctx, id)
}

func noopModelRepo() *modelRepoStub {
	return &modelRepoStub{
		listFn: func(_ context.Context, _ repository.ModelFilter) ([]models.Model, int64, error) {
			return []models.Model{}, 0, nil
		},
		getByIDFn:        func(_ context.Context, id uuid.UUID) (*models.Model, error) { return &models.Model{ID: id}, nil },
		createFn:         func(_ context.Context, _ *models.Model) error { return nil },
		updateFieldsFn:   func(_ context.Context, _ *models.Model, _ ...string) error { return nil },
		deleteFn:         func(_ context.Context, _ uuid.UUID) error { return nil },
		incrementViewsFn: func(_ context.Context, _ uuid.UUID) error { return nil },
		recordDownloadFn: func(_ context.Context, id uuid.UUID) (*models.Model, error) {
			return nil, models.NewNotFoundError("Model", id)
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uuid.UUID) (*models.Comment, error)
	listByModelFn func(context.Context, uuid.UUID, int, int) ([]*models.Comment, error)
	deleteFn      func(context.Context, *models.Comment) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByModel(ctx context.Context, modelID uuid.UUID, offset, limit int) ([]*models.Comment, error) {
	return s.listByModelFn(ctx, modelID, offset, limit)
}
func (s *commentRepoStub) Delete(ctx context.Context, comment *models.Comment) error {
	return s.deleteFn(ctx, comment)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByModelFn: func(_ context.Context, _ uuid.UUID, _, _ int) ([]*models.Comment, error) {
			return nil, nil
		},
		deleteFn: func(_ context.Context, _ *models.Comment) error { return nil },
	}
}

// likeRepoMock is a testify mock for repository.LikeRepository.
type likeRepoMock struct {
	mock.Mock
}

func (m *likeRepoMock) Like(ctx context.Context, modelID, userID uuid.UUID) (*models.Like, error) {
	args := m.Called(ctx, modelID, userID)
	like, _ := args.Get(0).(*models.Like)
	return like, args.Error(1)
}

func (m *likeRepoMock) Unlike(ctx context.Context, modelID, userID uuid.UUID) error {
	return m.Called(ctx, modelID, userID).Error(0)
}

func (m *likeRepoMock) IsLiked(ctx context.Context, modelID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, modelID, userID)
	return args.Bool(0), args.Error(1)
}
