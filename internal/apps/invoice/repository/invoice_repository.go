package repository

import (
	"time"

	"komakresan-backend/internal/apps/invoice/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(invoice *models.Invoice) error
	FindByID(id uuid.UUID) (*models.Invoice, error)
	FindByCompany(companyID uuid.UUID) ([]models.Invoice, error)
	MarkPaid(id uuid.UUID, paidAt time.Time) (int64, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new instance of InvoiceRepository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Create persists the invoice together with its items
func (r *invoiceRepository) Create(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

func (r *invoiceRepository) FindByID(id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Preload("Items").Preload("Company").Where("id = ?", id).First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByCompany(companyID uuid.UUID) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Preload("Items").
		Where("company_id = ?", companyID).
		Order("period_start desc").
		Find(&invoices).Error
	return invoices, err
}

// MarkPaid settles an unpaid invoice. The status guard keeps a duplicate
// payment callback from rewriting paid_at.
func (r *invoiceRepository) MarkPaid(id uuid.UUID, paidAt time.Time) (int64, error) {
	res := r.db.Model(&models.Invoice{}).
		Where("id = ? AND status = ?", id, models.InvoiceUnpaid).
		Updates(map[string]interface{}{"status": models.InvoicePaid, "paid_at": paidAt})
	return res.RowsAffected, res.Error
}
