package seed

import (
	_ "embed"
	"fmt"

	"modelhub/internal/models"
	"modelhub/internal/validation"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed categories.yml
var builtInCategories []byte

// LoadCategories parses a YAML list of categories and validates each slug.
func LoadCategories(raw []byte) ([]models.Category, error) {
	var categories []models.Category
	if err := yaml.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}

	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if err := validation.ValidateCategorySlug(c.Slug); err != nil {
			return nil, fmt.Errorf("category %q: %w", c.Name, err)
		}
		if _, dup := seen[c.Slug]; dup {
			return nil, fmt.Errorf("duplicate category slug %q", c.Slug)
		}
		seen[c.Slug] = struct{}{}
	}
	return categories, nil
}

// BuiltInCategories returns the reference categories shipped with the binary.
func BuiltInCategories() ([]models.Category, error) {
	return LoadCategories(builtInCategories)
}

// Categories upserts the built-in categories by slug. Running it twice leaves
// one row per slug.
func Categories(db *gorm.DB) error {
	categories, err := BuiltInCategories()
	if err != nil {
		return err
	}

	for i := range categories {
		item := categories[i]
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "icon", "sort_order"}),
		}).Create(&item).Error
		if err != nil {
			return fmt.Errorf("seed category %s: %w", item.Slug, err)
		}
	}
	return nil
}
