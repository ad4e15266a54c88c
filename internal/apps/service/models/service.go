package models

import (
	"time"

	companymodels "komakresan-backend/internal/apps/company/models"
	industrymodels "komakresan-backend/internal/apps/industry/models"
	usermodels "komakresan-backend/internal/apps/user/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestStatus enumerates the lifecycle of a service request
type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestAccepted  RequestStatus = "ACCEPTED"
	RequestDone      RequestStatus = "DONE"
	RequestCancelled RequestStatus = "CANCELLED"
)

// Service is a concrete offering a company provides within an industry
type Service struct {
	ID          uuid.UUID                       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID   uuid.UUID                       `gorm:"type:uuid;not null;index" json:"company_id"`
	Company     *companymodels.Company          `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	IndustryID  uuid.UUID                       `gorm:"type:uuid;not null;index" json:"industry_id"`
	Industry    *industrymodels.ServiceIndustry `gorm:"foreignKey:IndustryID" json:"industry,omitempty"`
	Name        string                          `gorm:"size:255;not null" json:"name"`
	Slug        string                          `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string                          `gorm:"type:text" json:"description,omitempty"`
	Price       int64                           `gorm:"not null" json:"price"`
	IsActive    bool                            `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time                       `json:"created_at"`
	UpdatedAt   time.Time                       `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name to 'services'
func (Service) TableName() string { return "services" }

// ServiceRequest is a customer's order for a service
type ServiceRequest struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"service_id"`
	Service     *Service         `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	CustomerID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer    *usermodels.User `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Status      RequestStatus    `gorm:"size:10;not null;default:'PENDING';index" json:"status"`
	Description string           `gorm:"type:text" json:"description,omitempty"`
	Address     string           `gorm:"type:text" json:"address,omitempty"`
	Invoiced    bool             `gorm:"default:false;index" json:"invoiced"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (r *ServiceRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name to 'service_requests'
func (ServiceRequest) TableName() string { return "service_requests" }

// CreateServicePayload is the payload for publishing a service
type CreateServicePayload struct {
	CompanyID   uuid.UUID `json:"company_id" binding:"required"`
	IndustryID  uuid.UUID `json:"industry_id" binding:"required"`
	Name        string    `json:"name" binding:"required,min=1,max=255"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price" binding:"required,gt=0"`
}

// UpdateServicePayload is the payload for a partial service update
type UpdateServicePayload struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty" binding:"omitempty,gt=0"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// PlaceRequestPayload is the payload for ordering a service
type PlaceRequestPayload struct {
	ServiceID   uuid.UUID `json:"service_id" binding:"required"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address" binding:"required"`
}
