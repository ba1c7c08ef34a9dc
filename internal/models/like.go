package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like represents a user's like on a model.
// The combination of ModelID and UserID must be unique.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id" swaggertype:"string" format:"uuid"`
	ModelID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_model_user" json:"model_id" swaggertype:"string" format:"uuid"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_model_user;index" json:"user_id" swaggertype:"string" format:"uuid"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a random UUID when none was set.
func (l *Like) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
