package service

import (
	"context"

	"modelhub/internal/models"
	"modelhub/internal/observability"
	"modelhub/internal/repository"
	"modelhub/internal/validation"

	"github.com/google/uuid"
)

// ModelService implements the catalog operations on models.
type ModelService struct {
	modelRepo repository.ModelRepository
}

type ListModelsInput struct {
	Page
	Category string
	Search   string
	Sort     string
}

type CreateModelInput struct {
	AuthorID    uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"required,min=1,max=255"`
	Description *string   `json:"description"`
	Category    string    `json:"category" validate:"required,notblank,max=100"`
	Tags        []string  `json:"tags" validate:"omitempty,dive,max=50"`
	Framework   *string   `json:"framework" validate:"omitempty,max=100"`
	Version     string    `json:"version" validate:"max=50"`
	FileURL     *string   `json:"file_url" validate:"omitempty,max=1000"`
	FileSize    int64     `json:"file_size" validate:"min=0"`
	FileFormat  *string   `json:"file_format" validate:"omitempty,max=50"`
	APIEndpoint *string   `json:"api_endpoint" validate:"omitempty,max=500"`
	APIDocs     *string   `json:"api_docs"`
}

// ModelPatch is a partial model update.
type ModelPatch struct {
	Name        models.Optional[string]   `json:"name" swaggertype:"string"`
	Description models.Optional[string]   `json:"description" swaggertype:"string"`
	Category    models.Optional[string]   `json:"category" swaggertype:"string"`
	Tags        models.Optional[[]string] `json:"tags" swaggertype:"array,string"`
	Framework   models.Optional[string]   `json:"framework" swaggertype:"string"`
	Version     models.Optional[string]   `json:"version" swaggertype:"string"`
	FileURL     models.Optional[string]   `json:"file_url" swaggertype:"string"`
	FileSize    models.Optional[int64]    `json:"file_size" swaggertype:"integer"`
	FileFormat  models.Optional[string]   `json:"file_format" swaggertype:"string"`
	APIEndpoint models.Optional[string]   `json:"api_endpoint" swaggertype:"string"`
	APIDocs     models.Optional[string]   `json:"api_docs" swaggertype:"string"`
}

type UpdateModelInput struct {
	UserID  uuid.UUID
	ModelID uuid.UUID
	Patch   ModelPatch
}

type DeleteModelInput struct {
	UserID  uuid.UUID
	ModelID uuid.UUID
}

func NewModelService(modelRepo repository.ModelRepository) *ModelService {
	return &ModelService{modelRepo: modelRepo}
}

// ListModels returns one page of models and the total number of matches.
func (s *ModelService) ListModels(ctx context.Context, in ListModelsInput) (*models.ModelList, error) {
	if err := in.Page.validate(); err != nil {
		return nil, err
	}
	if in.Sort == "" {
		in.Sort = repository.SortLatest
	}
	if err := validation.Var("sort", in.Sort, "oneof=latest popular downloads"); err != nil {
		return nil, err
	}

	items, total, err := s.modelRepo.List(ctx, repository.ModelFilter{
		Category: in.Category,
		Search:   in.Search,
		Sort:     in.Sort,
		Offset:   in.Offset(),
		Limit:    in.PageSize,
	})
	if err != nil {
		return nil, err
	}

	return &models.ModelList{
		Items:    items,
		Total:    total,
		Page:     in.Page.Page,
		PageSize: in.PageSize,
	}, nil
}

// GetModel counts a view and returns the model including that view.
func (s *ModelService) GetModel(ctx context.Context, id uuid.UUID) (*models.Model, error) {
	if err := s.modelRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	observability.RecordInteraction(observability.ActionView)
	return s.modelRepo.GetByID(ctx, id)
}

func (s *ModelService) CreateModel(ctx context.Context, in CreateModelInput) (*models.Model, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	model := &models.Model{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Tags:        in.Tags,
		Framework:   in.Framework,
		Version:     in.Version,
		FileURL:     in.FileURL,
		FileSize:    in.FileSize,
		FileFormat:  in.FileFormat,
		APIEndpoint: in.APIEndpoint,
		APIDocs:     in.APIDocs,
		AuthorID:    in.AuthorID,
	}
	if err := s.modelRepo.Create(ctx, model); err != nil {
		return nil, err
	}
	return s.modelRepo.GetByID(ctx, model.ID)
}

func (s *ModelService) UpdateModel(ctx context.Context, in UpdateModelInput) (*models.Model, error) {
	model, err := s.modelRepo.GetByID(ctx, in.ModelID)
	if err != nil {
		return nil, err
	}
	if model.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only modify your own models")
	}

	fields, err := applyModelPatch(model, in.Patch)
	if err != nil {
		return nil, err
	}
	if err := s.modelRepo.UpdateFields(ctx, model, fields...); err != nil {
		return nil, err
	}
	return s.modelRepo.GetByID(ctx, model.ID)
}

// applyModelPatch copies the present patch fields onto model and returns the
// columns to write. Null is accepted only for nullable columns.
func applyModelPatch(model *models.Model, p ModelPatch) ([]string, error) {
	var fields []string

	required := []struct {
		column string
		set    bool
		null   bool
	}{
		{"name", p.Name.Set, p.Name.Null},
		{"category", p.Category.Set, p.Category.Null},
		{"tags", p.Tags.Set, p.Tags.Null},
		{"version", p.Version.Set, p.Version.Null},
		{"file_size", p.FileSize.Set, p.FileSize.Null},
	}
	for _, f := range required {
		if f.set && f.null {
			return nil, models.NewValidationError(f.column + " cannot be null")
		}
	}

	if p.Name.Set {
		if err := validation.Var("name", p.Name.Value, "min=1,max=255"); err != nil {
			return nil, err
		}
		model.Name = p.Name.Value
		fields = append(fields, "name")
	}
	if p.Category.Set {
		if err := validation.Var("category", p.Category.Value, "notblank,max=100"); err != nil {
			return nil, err
		}
		model.Category = p.Category.Value
		fields = append(fields, "category")
	}
	if p.Tags.Set {
		if p.Tags.Value == nil {
			p.Tags.Value = []string{}
		}
		model.Tags = p.Tags.Value
		fields = append(fields, "tags")
	}
	if p.Version.Set {
		if err := validation.Var("version", p.Version.Value, "notblank,max=50"); err != nil {
			return nil, err
		}
		model.Version = p.Version.Value
		fields = append(fields, "version")
	}
	if p.FileSize.Set {
		if p.FileSize.Value < 0 {
			return nil, models.NewValidationError("file_size must be at least 0")
		}
		model.FileSize = p.FileSize.Value
		fields = append(fields, "file_size")
	}

	nullable := []struct {
		column string
		value  models.Optional[string]
		dst    **string
	}{
		{"description", p.Description, &model.Description},
		{"framework", p.Framework, &model.Framework},
		{"file_url", p.FileURL, &model.FileURL},
		{"file_format", p.FileFormat, &model.FileFormat},
		{"api_endpoint", p.APIEndpoint, &model.APIEndpoint},
		{"api_docs", p.APIDocs, &model.APIDocs},
	}
	for _, f := range nullable {
		if !f.value.Set {
			continue
		}
		*f.dst = f.value.Ptr()
		fields = append(fields, f.column)
	}

	return fields, nil
}

func (s *ModelService) DeleteModel(ctx context.Context, in DeleteModelInput) error {
	model, err := s.modelRepo.GetByID(ctx, in.ModelID)
	if err != nil {
		return err
	}
	if model.AuthorID != in.UserID {
		return models.NewForbiddenError("You can only delete your own models")
	}
	return s.modelRepo.Delete(ctx, model.ID)
}

// DownloadModel counts a download and returns where to fetch the file.
func (s *ModelService) DownloadModel(ctx context.Context, id uuid.UUID) (*models.Download, error) {
	model, err := s.modelRepo.RecordDownload(ctx, id)
	if err != nil {
		return nil, err
	}
	observability.RecordInteraction(observability.ActionDownload)
	return &models.Download{
		DownloadURL: *model.FileURL,
		FileSize:    model.FileSize,
		FileFormat:  model.FileFormat,
	}, nil
}
