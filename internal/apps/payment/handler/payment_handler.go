package handler

import (
	"errors"
	"io"
	"net/http"

	invoiceservice "komakresan-backend/internal/apps/invoice/service"
	"komakresan-backend/internal/apps/payment/models"
	"komakresan-backend/internal/apps/payment/service"
	"komakresan-backend/internal/common/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PaymentHandler handles HTTP requests for payments
type PaymentHandler struct {
	service service.PaymentService
}

// NewPaymentHandler creates a new instance of PaymentHandler
func NewPaymentHandler(service service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func paymentErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrPaymentNotFound), errors.Is(err, invoiceservice.ErrInvoiceNotFound):
		return http.StatusNotFound
	case errors.Is(err, invoiceservice.ErrNotInvoiceOwner):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidSignature):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAlreadySettled), errors.Is(err, invoiceservice.ErrInvoicePaid):
		return http.StatusConflict
	case errors.Is(err, service.ErrGatewayNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func callerIdentity(c *gin.Context) (uuid.UUID, string) {
	id, _ := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	userType, _ := c.MustGet(middleware.ContextUserType).(string)
	return id, userType
}

// CreateOrder handles POST /api/v1/payments/order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, actorType := callerIdentity(c)
	order, err := h.service.CreateOrder(actorID, actorType, &req)
	if err != nil {
		c.JSON(paymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": order})
}

// Verify handles POST /api/v1/payments/verify
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.service.VerifyPayment(&req)
	if err != nil {
		c.JSON(paymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": payment})
}

// Webhook handles POST /api/v1/payments/webhook
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if err := h.service.HandleWebhook(payload, signature); err != nil {
		log.Warn().Err(err).Msg("webhook processing failed")
		c.JSON(paymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListForInvoice handles GET /api/v1/payments/invoice/:id
func (h *PaymentHandler) ListForInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice id"})
		return
	}

	actorID, actorType := callerIdentity(c)
	payments, err := h.service.ListForInvoice(invoiceID, actorID, actorType)
	if err != nil {
		c.JSON(paymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": payments})
}

// UpsertGatewayConfig handles PUT /api/v1/payments/gateway-config
func (h *PaymentHandler) UpsertGatewayConfig(c *gin.Context) {
	var req models.UpsertGatewayConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpsertGatewayConfig(&req); err != nil {
		c.JSON(paymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "gateway config saved"})
}
