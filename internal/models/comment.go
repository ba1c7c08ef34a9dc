package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment rating bounds and default.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// Comment is a user's review of a model.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id" swaggertype:"string" format:"uuid"`
	ModelID   uuid.UUID `gorm:"type:uuid;not null;index" json:"model_id" swaggertype:"string" format:"uuid"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" swaggertype:"string" format:"uuid"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Rating    int       `gorm:"not null;default:5" json:"rating"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a random UUID when none was set.
func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Rating == 0 {
		c.Rating = DefaultRating
	}
	return nil
}
