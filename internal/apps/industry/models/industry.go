package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IndustryCategory groups service industries
type IndustryCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (c *IndustryCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name to 'industry_categories'
func (IndustryCategory) TableName() string { return "industry_categories" }

// ServiceIndustry is a billable line of work within a category. Every service
// usage in this industry is invoiced at PricePerService.
type ServiceIndustry struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name            string            `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug            string            `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	CategoryID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"category_id"`
	Category        *IndustryCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	PricePerService int64             `gorm:"not null;default:0" json:"price_per_service"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (s *ServiceIndustry) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name to 'service_industries'
func (ServiceIndustry) TableName() string { return "service_industries" }

// CreateCategoryRequest is the payload for creating an industry category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateIndustryRequest is the payload for creating a service industry
type CreateIndustryRequest struct {
	Name            string    `json:"name" binding:"required,min=1,max=100"`
	CategoryID      uuid.UUID `json:"category_id" binding:"required"`
	PricePerService int64     `json:"price_per_service" binding:"required,gt=0"`
}

// UpdateIndustryRequest is the payload for updating a service industry
type UpdateIndustryRequest struct {
	Name            *string `json:"name,omitempty"`
	PricePerService *int64  `json:"price_per_service,omitempty"`
}
