package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultModelVersion is used when a model is created without a version.
const DefaultModelVersion = "1.0.0"

// Model is an AI model entry in the catalog.
// LikesCount and CommentsCount are denormalized counters kept in step with
// the likes and comments tables inside the same transaction.
type Model struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id" swaggertype:"string" format:"uuid"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:100;not null;index" json:"category"`
	Tags        []string  `gorm:"type:text;serializer:json" json:"tags"`
	Framework   *string   `gorm:"size:100" json:"framework"`
	Version     string    `gorm:"size:50;not null" json:"version"`

	FileURL    *string `gorm:"column:file_url;size:1000" json:"file_url"`
	FileSize   int64   `gorm:"column:file_size;not null;default:0" json:"file_size"`
	FileFormat *string `gorm:"column:file_format;size:50" json:"file_format"`

	Downloads     int `gorm:"not null;default:0" json:"downloads"`
	LikesCount    int `gorm:"column:likes_count;not null;default:0" json:"likes_count"`
	CommentsCount int `gorm:"column:comments_count;not null;default:0" json:"comments_count"`
	Views         int `gorm:"not null;default:0" json:"views"`

	APIEndpoint *string `gorm:"column:api_endpoint;size:500" json:"api_endpoint"`
	APIDocs     *string `gorm:"column:api_docs;type:text" json:"api_docs"`

	AuthorID uuid.UUID `gorm:"column:author_id;type:uuid;not null;index" json:"author_id" swaggertype:"string" format:"uuid"`
	Author   *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Comments []Comment `gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE" json:"-"`
	Likes    []Like    `gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns the ID and fills schema defaults.
func (m *Model) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Version == "" {
		m.Version = DefaultModelVersion
	}
	return nil
}

// BeforeSave keeps tags serialised as a JSON array rather than null.
func (m *Model) BeforeSave(_ *gorm.DB) error {
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return nil
}

// AfterFind normalises rows written before tags were required.
func (m *Model) AfterFind(_ *gorm.DB) error {
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return nil
}

// ModelList is one page of catalog entries.
type ModelList struct {
	Items    []Model `json:"items"`
	Total    int64   `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

// Download is the payload returned when a model file is requested.
type Download struct {
	DownloadURL string  `json:"download_url"`
	FileSize    int64   `json:"file_size"`
	FileFormat  *string `json:"file_format"`
}
