package models

import (
	"time"

	usermodels "komakresan-backend/internal/apps/user/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents a service-providing business on the platform
type Company struct {
	ID                uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EmployerID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"employer_id"`
	Employer          *usermodels.User `gorm:"foreignKey:EmployerID" json:"employer,omitempty"`
	Name              string           `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Slug              string           `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description       string           `gorm:"type:text" json:"description,omitempty"`
	Website           string           `gorm:"size:255" json:"website,omitempty"`
	Email             string           `gorm:"size:255" json:"email,omitempty"`
	PhoneNumber       string           `gorm:"size:20" json:"phone_number,omitempty"`
	Address           string           `gorm:"type:text" json:"address,omitempty"`
	PostalCode        string           `gorm:"size:20" json:"postal_code,omitempty"`
	FoundedDate       *time.Time       `json:"founded_date,omitempty"`
	NumberOfEmployees *int             `json:"number_of_employees,omitempty"`
	IsValidated       bool             `gorm:"default:false;index" json:"is_validated"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name to 'companies'
func (Company) TableName() string { return "companies" }

// CreateCompanyRequest is the payload for onboarding a company
type CreateCompanyRequest struct {
	Name              string     `json:"name" binding:"required,min=1,max=255"`
	Description       string     `json:"description,omitempty"`
	Website           string     `json:"website,omitempty" binding:"omitempty,url"`
	Email             string     `json:"email,omitempty" binding:"omitempty,email"`
	PhoneNumber       string     `json:"phone_number,omitempty"`
	Address           string     `json:"address,omitempty"`
	PostalCode        string     `json:"postal_code,omitempty"`
	FoundedDate       *time.Time `json:"founded_date,omitempty"`
	NumberOfEmployees *int       `json:"number_of_employees,omitempty"`
}

// UpdateCompanyRequest is the payload for a partial company update
type UpdateCompanyRequest struct {
	Description       *string `json:"description,omitempty"`
	Website           *string `json:"website,omitempty" binding:"omitempty,url"`
	Email             *string `json:"email,omitempty" binding:"omitempty,email"`
	PhoneNumber       *string `json:"phone_number,omitempty"`
	Address           *string `json:"address,omitempty"`
	PostalCode        *string `json:"postal_code,omitempty"`
	NumberOfEmployees *int    `json:"number_of_employees,omitempty"`
}
