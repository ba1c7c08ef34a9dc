package seed

import (
	"context"
	"fmt"
	"log"

	"modelhub/internal/models"

	"gorm.io/gorm"
)

// Options configures the demo data generator.
type Options struct {
	NumUsers    int
	NumModels   int
	MaxComments int // per model
	MaxLikes    int // per model, capped by NumUsers
	MaxDays     int
	RandSeed    int64
	FastHash    bool
	DryRun      bool
}

// Seeder writes reference and demo data.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, opts: opts, factory: NewFactory(db, opts)}
}

// ClearAll removes every row written by the seeder, children first.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	session := s.db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, table := range []any{&models.Like{}, &models.Comment{}, &models.Model{}, &models.User{}} {
		if err := session.Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	return nil
}

// SeedUsers creates count demo users.
func (s *Seeder) SeedUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for range count {
		u, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, u)
	}
	log.Printf("%d users created", len(users))
	return users, nil
}

// SeedCatalog creates count models spread across the built-in categories,
// each authored by one of users.
func (s *Seeder) SeedCatalog(users []*models.User, count int) ([]*models.Model, error) {
	if len(users) == 0 || count <= 0 {
		return nil, nil
	}
	categories, err := BuiltInCategories()
	if err != nil {
		return nil, err
	}

	batch := make([]*models.Model, 0, count)
	for i := range count {
		author := users[s.factory.rng.Intn(len(users))]
		batch = append(batch, s.factory.BuildModel(author, categories[i%len(categories)].Slug))
	}
	if err := s.factory.CreateModelsBatch(batch); err != nil {
		return nil, fmt.Errorf("create models: %w", err)
	}
	log.Printf("%d models created", len(batch))
	return batch, nil
}

// SeedEngagement adds comments and likes from users to every model.
func (s *Seeder) SeedEngagement(ctx context.Context, users []*models.User, catalog []*models.Model) error {
	if len(users) == 0 {
		return nil
	}
	rng := s.factory.rng

	var comments, likes int
	for _, m := range catalog {
		if s.opts.MaxComments > 0 {
			for range rng.Intn(s.opts.MaxComments + 1) {
				if _, err := s.factory.CreateComment(ctx, users[rng.Intn(len(users))], m); err != nil {
					return fmt.Errorf("create comment: %w", err)
				}
				comments++
			}
		}

		n := min(s.opts.MaxLikes, len(users))
		if n <= 0 {
			continue
		}
		for _, i := range rng.Perm(len(users))[:rng.Intn(n+1)] {
			if err := s.factory.CreateLike(ctx, users[i], m); err != nil {
				return fmt.Errorf("create like: %w", err)
			}
			likes++
		}
	}
	log.Printf("%d comments and %d likes created", comments, likes)
	return nil
}

// Run seeds categories, then users, models and engagement per the options.
func (s *Seeder) Run(ctx context.Context) error {
	if !s.opts.DryRun {
		if err := Categories(s.db); err != nil {
			return err
		}
	}
	users, err := s.SeedUsers(s.opts.NumUsers)
	if err != nil {
		return err
	}
	catalog, err := s.SeedCatalog(users, s.opts.NumModels)
	if err != nil {
		return err
	}
	return s.SeedEngagement(ctx, users, catalog)
}
