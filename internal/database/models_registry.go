package database

import "modelhub/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Parents come before the tables referencing them.
func PersistentModels() []any {
	return []any{
		&models.User{},
		&models.Model{},
		&models.Comment{},
		&models.Like{},
		&models.Category{},
	}
}
