package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	invoicemodels "komakresan-backend/internal/apps/invoice/models"
	invoiceservice "komakresan-backend/internal/apps/invoice/service"
	"komakresan-backend/internal/apps/payment/models"
	"komakresan-backend/internal/apps/payment/repository"
	"komakresan-backend/pkg/secure"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInvalidSignature     = errors.New("invalid payment signature")
	ErrGatewayNotConfigured = errors.New("payment gateway is not configured")
	ErrAlreadySettled       = errors.New("payment is already settled")
)

// gateway bundles a razorpay client with its decrypted credentials
type gateway struct {
	client        *razorpay.Client
	keyID         string
	keySecret     string
	webhookSecret string
}

// PaymentService defines the interface for payment business logic
type PaymentService interface {
	UpsertGatewayConfig(req *models.UpsertGatewayConfigRequest) error
	CreateOrder(actorID uuid.UUID, actorType string, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error)
	VerifyPayment(req *models.VerifyPaymentRequest) (*models.PaymentInvoice, error)
	HandleWebhook(payload []byte, signature string) error
	ListForInvoice(invoiceID uuid.UUID, actorID uuid.UUID, actorType string) ([]models.PaymentInvoice, error)
}

type paymentService struct {
	payments    repository.PaymentRepository
	configs     repository.GatewayConfigRepository
	invoices    invoiceservice.InvoiceService
	environment string

	mu     sync.Mutex
	cached *gateway
}

// NewPaymentService creates a new instance of PaymentService
func NewPaymentService(payments repository.PaymentRepository, configs repository.GatewayConfigRepository, invoices invoiceservice.InvoiceService, environment string) PaymentService {
	return &paymentService{
		payments:    payments,
		configs:     configs,
		invoices:    invoices,
		environment: environment,
	}
}

func verifyRazorpaySignature(message, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

func (s *paymentService) loadGateway() (*gateway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return s.cached, nil
	}

	config, err := s.configs.FindActiveByEnvironment(s.environment)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGatewayNotConfigured
		}
		return nil, err
	}

	keySecret, err := secure.DecryptString(config.KeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt gateway key secret: %w", err)
	}
	webhookSecret, err := secure.DecryptString(config.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt gateway webhook secret: %w", err)
	}

	s.cached = &gateway{
		client:        razorpay.NewClient(config.KeyID, keySecret),
		keyID:         config.KeyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
	return s.cached, nil
}

// UpsertGatewayConfig stores gateway credentials encrypted at rest and drops
// the cached client so the next call picks them up
func (s *paymentService) UpsertGatewayConfig(req *models.UpsertGatewayConfigRequest) error {
	keySecret, err := secure.EncryptString(req.KeySecret)
	if err != nil {
		return fmt.Errorf("failed to encrypt gateway key secret: %w", err)
	}
	webhookSecret, err := secure.EncryptString(req.WebhookSecret)
	if err != nil {
		return fmt.Errorf("failed to encrypt gateway webhook secret: %w", err)
	}

	config := &models.GatewayConfig{
		Environment:   req.Environment,
		KeyID:         req.KeyID,
		KeySecret:     keySecret,
		WebhookSecret: webhookSecret,
		IsActive:      true,
	}
	if err := s.configs.Upsert(config); err != nil {
		return err
	}

	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
	return nil
}

// CreateOrder opens a razorpay order for an unpaid invoice and records a
// pending payment attempt against it
func (s *paymentService) CreateOrder(actorID uuid.UUID, actorType string, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	invoice, err := s.invoices.GetByID(req.InvoiceID, actorID, actorType)
	if err != nil {
		return nil, err
	}
	if invoice.Status != invoicemodels.InvoiceUnpaid {
		return nil, invoiceservice.ErrInvoicePaid
	}

	gw, err := s.loadGateway()
	if err != nil {
		return nil, err
	}

	orderData := map[string]interface{}{
		"amount":   invoice.TotalAmount,
		"currency": "INR",
		"receipt":  invoice.ID.String(),
	}
	order, err := gw.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}
	orderID, _ := order["id"].(string)
	if orderID == "" {
		return nil, errors.New("razorpay order response missing id")
	}

	payment := &models.PaymentInvoice{
		InvoiceID:       invoice.ID,
		RazorpayOrderID: orderID,
		Amount:          invoice.TotalAmount,
		Currency:        "INR",
		Status:          models.PaymentPending,
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	return &models.CreateOrderResponse{
		PaymentID:       payment.ID,
		RazorpayOrderID: orderID,
		RazorpayKeyID:   gw.keyID,
		Amount:          payment.Amount,
		Currency:        payment.Currency,
	}, nil
}

// VerifyPayment checks the checkout callback signature and settles the
// payment and its invoice
func (s *paymentService) VerifyPayment(req *models.VerifyPaymentRequest) (*models.PaymentInvoice, error) {
	gw, err := s.loadGateway()
	if err != nil {
		return nil, err
	}

	message := req.RazorpayOrderID + "|" + req.RazorpayPaymentID
	if !verifyRazorpaySignature(message, req.RazorpaySignature, gw.keySecret) {
		return nil, ErrInvalidSignature
	}

	affected, err := s.payments.Settle(req.RazorpayOrderID, req.RazorpayPaymentID, models.PaymentSuccess, "")
	if err != nil {
		return nil, err
	}

	payment, err := s.payments.FindByOrderID(req.RazorpayOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if affected == 0 {
		if payment.Status == models.PaymentSuccess {
			return payment, nil
		}
		return nil, ErrAlreadySettled
	}

	if err := s.invoices.MarkPaid(payment.InvoiceID, time.Now().UTC()); err != nil &&
		!errors.Is(err, invoiceservice.ErrInvoicePaid) {
		return nil, err
	}
	payment.Status = models.PaymentSuccess
	payment.RazorpayPaymentID = req.RazorpayPaymentID
	return payment, nil
}

// HandleWebhook settles payments from gateway callbacks. Events other than
// capture and failure are acknowledged without action.
func (s *paymentService) HandleWebhook(payload []byte, signature string) error {
	gw, err := s.loadGateway()
	if err != nil {
		return err
	}
	if !verifyRazorpaySignature(string(payload), signature, gw.webhookSecret) {
		return ErrInvalidSignature
	}

	var event struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID               string `json:"id"`
					OrderID          string `json:"order_id"`
					ErrorDescription string `json:"error_description"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to parse webhook payload: %w", err)
	}

	entity := event.Payload.Payment.Entity
	switch event.Event {
	case "payment.captured":
		affected, err := s.payments.Settle(entity.OrderID, entity.ID, models.PaymentSuccess, "")
		if err != nil {
			return err
		}
		if affected == 0 {
			return nil
		}
		payment, err := s.payments.FindByOrderID(entity.OrderID)
		if err != nil {
			return err
		}
		if err := s.invoices.MarkPaid(payment.InvoiceID, time.Now().UTC()); err != nil &&
			!errors.Is(err, invoiceservice.ErrInvoicePaid) {
			return err
		}
		return nil
	case "payment.failed":
		_, err := s.payments.Settle(entity.OrderID, entity.ID, models.PaymentFailed, entity.ErrorDescription)
		return err
	default:
		log.Debug().Str("event", event.Event).Msg("ignoring webhook event")
		return nil
	}
}

func (s *paymentService) ListForInvoice(invoiceID uuid.UUID, actorID uuid.UUID, actorType string) ([]models.PaymentInvoice, error) {
	if _, err := s.invoices.GetByID(invoiceID, actorID, actorType); err != nil {
		return nil, err
	}
	return s.payments.FindByInvoice(invoiceID)
}
