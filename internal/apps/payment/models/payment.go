package models

import (
	"time"

	invoicemodels "komakresan-backend/internal/apps/invoice/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentStatus enumerates the lifecycle of a payment attempt
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// PaymentInvoice is one attempt to settle a platform invoice through the
// payment gateway
type PaymentInvoice struct {
	ID                uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID         uuid.UUID              `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Invoice           *invoicemodels.Invoice `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
	RazorpayOrderID   string                 `gorm:"size:64;uniqueIndex;not null" json:"razorpay_order_id"`
	RazorpayPaymentID string                 `gorm:"size:64" json:"razorpay_payment_id,omitempty"`
	Amount            int64                  `gorm:"not null" json:"amount"`
	Currency          string                 `gorm:"size:3;not null;default:'INR'" json:"currency"`
	Status            PaymentStatus          `gorm:"size:10;not null;default:'PENDING';index" json:"status"`
	FailureReason     string                 `gorm:"size:255" json:"failure_reason,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (p *PaymentInvoice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name to 'payment_invoices'
func (PaymentInvoice) TableName() string { return "payment_invoices" }

// GatewayConfig stores one set of payment gateway credentials per
// environment. The secrets are encrypted at rest.
type GatewayConfig struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Environment   string    `gorm:"size:20;uniqueIndex;not null" json:"environment"`
	KeyID         string    `gorm:"size:255;not null" json:"key_id"`
	KeySecret     string    `gorm:"size:512;not null" json:"-"`
	WebhookSecret string    `gorm:"size:512" json:"-"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (g *GatewayConfig) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name to 'payment_gateway_configs'
func (GatewayConfig) TableName() string { return "payment_gateway_configs" }

// CreateOrderRequest is the payload for opening a payment attempt
type CreateOrderRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id" binding:"required"`
}

// CreateOrderResponse carries everything the client checkout needs
type CreateOrderResponse struct {
	PaymentID       uuid.UUID `json:"payment_id"`
	RazorpayOrderID string    `json:"razorpay_order_id"`
	RazorpayKeyID   string    `json:"razorpay_key_id"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
}

// VerifyPaymentRequest is the checkout callback payload
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// UpsertGatewayConfigRequest is the admin payload for storing credentials
type UpsertGatewayConfigRequest struct {
	Environment   string `json:"environment" binding:"required,oneof=development staging production"`
	KeyID         string `json:"key_id" binding:"required"`
	KeySecret     string `json:"key_secret" binding:"required"`
	WebhookSecret string `json:"webhook_secret,omitempty"`
}
