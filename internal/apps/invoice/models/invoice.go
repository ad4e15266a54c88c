package models

import (
	"time"

	companymodels "komakresan-backend/internal/apps/company/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceStatus enumerates the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "UNPAID"
	InvoicePaid   InvoiceStatus = "PAID"
)

// Invoice bills a company for the platform's share of work completed in a
// billing period
type Invoice struct {
	ID          uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID   uuid.UUID              `gorm:"type:uuid;not null;index" json:"company_id"`
	Company     *companymodels.Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	PeriodStart time.Time              `gorm:"not null" json:"period_start"`
	PeriodEnd   time.Time              `gorm:"not null" json:"period_end"`
	TotalAmount int64                  `gorm:"not null" json:"total_amount"`
	Status      InvoiceStatus          `gorm:"size:10;not null;default:'UNPAID';index" json:"status"`
	PaidAt      *time.Time             `json:"paid_at,omitempty"`
	Items       []InvoiceItem          `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name to 'invoices'
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is one completed service request billed on an invoice
type InvoiceItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	RequestID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"request_id"`
	Description string    `gorm:"size:255" json:"description"`
	Amount      int64     `gorm:"not null" json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name to 'invoice_items'
func (InvoiceItem) TableName() string { return "invoice_items" }
