package handler

import (
	"errors"
	"net/http"

	"komakresan-backend/internal/apps/invoice/service"
	"komakresan-backend/internal/common/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles HTTP requests for invoices
type InvoiceHandler struct {
	service service.InvoiceService
}

// NewInvoiceHandler creates a new instance of InvoiceHandler
func NewInvoiceHandler(service service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

func invoiceErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvoiceNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotInvoiceOwner):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvoicePaid):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func callerIdentity(c *gin.Context) (uuid.UUID, string) {
	id, _ := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	userType, _ := c.MustGet(middleware.ContextUserType).(string)
	return id, userType
}

// Get handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice id"})
		return
	}

	actorID, actorType := callerIdentity(c)
	invoice, err := h.service.GetByID(id, actorID, actorType)
	if err != nil {
		c.JSON(invoiceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

// ListForCompany handles GET /api/v1/invoices/company/:id
func (h *InvoiceHandler) ListForCompany(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	actorID, actorType := callerIdentity(c)
	invoices, err := h.service.ListForCompany(companyID, actorID, actorType)
	if err != nil {
		c.JSON(invoiceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoices})
}
