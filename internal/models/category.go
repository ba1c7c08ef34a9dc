package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a reference taxonomy entry. No route reads it; the seed
// command keeps it populated.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id" yaml:"-"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name" yaml:"name"`
	Slug        string    `gorm:"size:100;uniqueIndex;not null" json:"slug" yaml:"slug"`
	Description *string   `gorm:"type:text" json:"description" yaml:"description"`
	Icon        *string   `gorm:"size:100" json:"icon" yaml:"icon"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order" yaml:"sort_order"`
}

// BeforeCreate assigns a random UUID when none was set.
func (c *Category) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
