// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account in the ModelHub catalog.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id" swaggertype:"string" format:"uuid"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username       string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	HashedPassword string    `gorm:"column:hashed_password;size:255;not null" json:"-"`
	Avatar         *string   `gorm:"size:500" json:"avatar"`
	Bio            *string   `gorm:"type:text" json:"bio"`
	IsActive       bool      `gorm:"not null;default:true" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`

	Models   []Model   `gorm:"foreignKey:AuthorID" json:"-"`
	Comments []Comment `gorm:"foreignKey:UserID" json:"-"`
	Likes    []Like    `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate assigns a random UUID when none was set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
