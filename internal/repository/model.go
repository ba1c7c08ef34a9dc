package repository

import (
	"context"
	"errors"
	"strings"

	"modelhub/internal/models"
	"modelhub/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sort orders accepted by ModelRepository.List.
const (
	SortLatest    = "latest"
	SortPopular   = "popular"
	SortDownloads = "downloads"
)

// ModelFilter selects and orders one page of models.
type ModelFilter struct {
	Category string
	Search   string
	Sort     string
	Offset   int
	Limit    int
}

// ModelRepository defines persistence operations for catalog models.
type ModelRepository interface {
	List(ctx context.Context, filter ModelFilter) ([]models.Model, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Model, error)
	Create(ctx context.Context, model *models.Model) error
	UpdateFields(ctx context.Context, model *models.Model, fields ...string) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	RecordDownload(ctx context.Context, id uuid.UUID) (*models.Model, error)
}

type modelRepository struct {
	db *gorm.DB
}

// NewModelRepository returns a new ModelRepository implementation.
func NewModelRepository(db *gorm.DB) ModelRepository {
	return &modelRepository{db: db}
}

// List returns the requested page and the number of models matching the
// filter before pagination.
func (r *modelRepository) List(ctx context.Context, filter ModelFilter) ([]models.Model, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	items := make([]models.Model, 0, filter.Limit)
	err := r.applySort(r.filtered(ctx, filter), filter.Sort).
		Preload("Author").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return items, total, nil
}

// filtered returns a fresh query per call; a statement that has run Count
// cannot be reused for Find.
func (r *modelRepository) filtered(ctx context.Context, filter ModelFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Model{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		query = query.Where(
			`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`,
			pattern, pattern,
		)
	}
	return query
}

func (r *modelRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case SortPopular:
		db = db.Order("likes_count DESC")
	case SortDownloads:
		db = db.Order("downloads DESC")
	}
	// Newest first, then id, so pages do not overlap on ties.
	return db.Order("created_at DESC").Order("id")
}

func (r *modelRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Model, error) {
	var model models.Model
	if err := r.db.WithContext(ctx).Preload("Author").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Model", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &model, nil
}

func (r *modelRepository) Create(ctx context.Context, model *models.Model) error {
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// UpdateFields writes only the named columns, leaving the counters alone.
func (r *modelRepository) UpdateFields(ctx context.Context, model *models.Model, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	cols := append(append([]string{}, fields...), "updated_at")
	if err := r.db.WithContext(ctx).Model(model).Select(cols).Updates(model).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the model together with its comments and likes.
func (r *modelRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "DeleteModel", "models")
	defer func() { observability.EndSpan(span, err) }()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("model_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("model_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		result := tx.Delete(&models.Model{}, "id = ?", id)
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Model", id)
		}
		return nil
	})
}

func (r *modelRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.Model{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Model", id)
	}
	return nil
}

// RecordDownload increments the download counter of a model that has a file
// and returns the model as it is after the increment.
func (r *modelRepository) RecordDownload(ctx context.Context, id uuid.UUID) (*models.Model, error) {
	var model models.Model
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Model", id)
			}
			return models.NewInternalError(err)
		}
		if model.FileURL == nil || *model.FileURL == "" {
			return models.NewValidationError("This model has no downloadable file")
		}
		if err := tx.Model(&models.Model{}).
			Where("id = ?", id).
			UpdateColumn("downloads", gorm.Expr("downloads + ?", 1)).Error; err != nil {
			return models.NewInternalError(err)
		}
		model.Downloads++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// escapeLike escapes LIKE wildcards so the search is a plain substring match.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
