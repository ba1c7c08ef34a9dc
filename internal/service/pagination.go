package service

import (
	"math"

	"modelhub/internal/models"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MaxPage is the largest page whose offset fits in an int at any page size.
const MaxPage = math.MaxInt / MaxPageSize

// Page is a validated 1-based page request.
type Page struct {
	Page     int
	PageSize int
}

// Offset returns the number of rows before the page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p Page) validate() error {
	if p.Page < 1 {
		return models.NewValidationError("page must be at least 1")
	}
	if p.Page > MaxPage {
		return models.NewValidationError("page is too large")
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		return models.NewValidationError("page_size must be between 1 and 100")
	}
	return nil
}
