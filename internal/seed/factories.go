// Package seed provides helpers to create reference and demo data for the
// application database. The demo helpers are intended for development and
// testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"modelhub/internal/models"
	"modelhub/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "password123"

var (
	frameworks  = []string{"PyTorch", "TensorFlow", "JAX", "ONNX", "scikit-learn"}
	fileFormats = []string{"safetensors", "pt", "onnx", "gguf", "h5"}
	tagPool     = []string{
		"transformer", "diffusion", "classification", "detection", "generation",
		"fine-tuned", "quantized", "distilled", "multilingual", "open-weights",
	}
)

// Factory builds domain entities and persists them to the database.
// Comments and likes go through the repositories so model counters stay in step.
type Factory struct {
	db       *gorm.DB
	opts     Options
	rng      *rand.Rand
	comments repository.CommentRepository
	likes    repository.LikeRepository
}

// NewFactory creates a new Factory bound to the provided Gorm DB. db may be
// nil when only the Build* helpers are used.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)

	f := &Factory{
		db:   db,
		opts: opts,
		// #nosec G404: acceptable for seeding
		rng: rand.New(rand.NewSource(seed)),
	}
	if db != nil {
		f.comments = repository.NewCommentRepository(db)
		f.likes = repository.NewLikeRepository(db)
	}
	return f
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	bio := gofakeit.Sentence(10)
	avatar := fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID())
	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Bio:      &bio,
		Avatar:   &avatar,
		IsActive: true,
	}

	// bcrypt at MinCost keeps large dev seeds fast
	cost := bcrypt.DefaultCost
	if f.opts.FastHash {
		cost = bcrypt.MinCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = string(hash)

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		user.ID = uuid.New()
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildModel constructs a model authored by author without persisting it.
// Its created_at is spread over the last MaxDays days.
func (f *Factory) BuildModel(author *models.User, categorySlug string, overrides ...func(*models.Model)) *models.Model {
	description := gofakeit.Paragraph(1, 3, 12, " ")
	framework := frameworks[f.rng.Intn(len(frameworks))]
	format := fileFormats[f.rng.Intn(len(fileFormats))]
	name := fmt.Sprintf("%s-%s-%d", gofakeit.HipsterWord(), gofakeit.BuzzWord(), gofakeit.Number(1, 99))
	fileURL := fmt.Sprintf("https://files.example.com/models/%s.%s", gofakeit.UUID(), format)

	tags := make([]string, 0, 3)
	for _, i := range f.rng.Perm(len(tagPool))[:1+f.rng.Intn(3)] {
		tags = append(tags, tagPool[i])
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	age := time.Duration(f.rng.Intn(maxDays))*24*time.Hour + time.Duration(f.rng.Intn(24*60))*time.Minute
	created := time.Now().Add(-age)

	model := &models.Model{
		Name:        name,
		Description: &description,
		Category:    categorySlug,
		Tags:        tags,
		Framework:   &framework,
		Version:     fmt.Sprintf("%d.%d.%d", f.rng.Intn(3)+1, f.rng.Intn(10), f.rng.Intn(10)),
		FileURL:     &fileURL,
		FileSize:    int64(gofakeit.Number(1<<20, 1<<30)),
		FileFormat:  &format,
		Downloads:   f.rng.Intn(5000),
		Views:       f.rng.Intn(20000),
		AuthorID:    author.ID,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	for _, override := range overrides {
		override(model)
	}
	return model
}

// CreateModelsBatch persists multiple models in a single DB call.
func (f *Factory) CreateModelsBatch(batch []*models.Model) error {
	if f.opts.DryRun {
		for _, m := range batch {
			m.ID = uuid.New()
		}
		log.Printf("[dry-run] CreateModelsBatch: %d models (no DB write)", len(batch))
		return nil
	}
	return f.db.Create(&batch).Error
}

// CreateComment persists a sample comment by user on model.
func (f *Factory) CreateComment(ctx context.Context, user *models.User, model *models.Model, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		ModelID: model.ID,
		UserID:  user.ID,
		Content: gofakeit.Sentence(12),
		Rating:  1 + f.rng.Intn(5),
	}
	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		comment.ID = uuid.New()
		return comment, nil
	}
	if err := f.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from user on model.
func (f *Factory) CreateLike(ctx context.Context, user *models.User, model *models.Model) error {
	if f.opts.DryRun {
		return nil
	}
	_, err := f.likes.Like(ctx, model.ID, user.ID)
	return err
}
