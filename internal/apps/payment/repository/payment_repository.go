package repository

import (
	"komakresan-backend/internal/apps/payment/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(payment *models.PaymentInvoice) error
	FindByID(id uuid.UUID) (*models.PaymentInvoice, error)
	FindByOrderID(orderID string) (*models.PaymentInvoice, error)
	FindByInvoice(invoiceID uuid.UUID) ([]models.PaymentInvoice, error)
	Settle(orderID string, paymentID string, status models.PaymentStatus, failureReason string) (int64, error)
}

// GatewayConfigRepository defines the interface for gateway credential storage
type GatewayConfigRepository interface {
	Upsert(config *models.GatewayConfig) error
	FindActiveByEnvironment(environment string) (*models.GatewayConfig, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *models.PaymentInvoice) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) FindByID(id uuid.UUID) (*models.PaymentInvoice, error) {
	var payment models.PaymentInvoice
	err := r.db.Preload("Invoice").Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByOrderID(orderID string) (*models.PaymentInvoice, error) {
	var payment models.PaymentInvoice
	err := r.db.Preload("Invoice").Where("razorpay_order_id = ?", orderID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByInvoice(invoiceID uuid.UUID) ([]models.PaymentInvoice, error) {
	var payments []models.PaymentInvoice
	err := r.db.Where("invoice_id = ?", invoiceID).Order("created_at desc").Find(&payments).Error
	return payments, err
}

// Settle finalizes a pending payment attempt. The status guard makes the
// verify callback and the webhook race-safe, only one of them wins.
func (r *paymentRepository) Settle(orderID string, paymentID string, status models.PaymentStatus, failureReason string) (int64, error) {
	res := r.db.Model(&models.PaymentInvoice{}).
		Where("razorpay_order_id = ? AND status = ?", orderID, models.PaymentPending).
		Updates(map[string]interface{}{
			"razorpay_payment_id": paymentID,
			"status":              status,
			"failure_reason":      failureReason,
		})
	return res.RowsAffected, res.Error
}

type gatewayConfigRepository struct {
	db *gorm.DB
}

// NewGatewayConfigRepository creates a new instance of GatewayConfigRepository
func NewGatewayConfigRepository(db *gorm.DB) GatewayConfigRepository {
	return &gatewayConfigRepository{db: db}
}

func (r *gatewayConfigRepository) Upsert(config *models.GatewayConfig) error {
	var existing models.GatewayConfig
	err := r.db.Where("environment = ?", config.Environment).First(&existing).Error
	if err == nil {
		config.ID = existing.ID
		config.CreatedAt = existing.CreatedAt
		return r.db.Save(config).Error
	}
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(config).Error
	}
	return err
}

func (r *gatewayConfigRepository) FindActiveByEnvironment(environment string) (*models.GatewayConfig, error) {
	var config models.GatewayConfig
	err := r.db.Where("environment = ? AND is_active = ?", environment, true).First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}
