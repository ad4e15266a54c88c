package handler

import (
	"errors"
	"net/http"

	"komakresan-backend/internal/apps/service/models"
	"komakresan-backend/internal/apps/service/service"
	"komakresan-backend/internal/common/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ServiceHandler handles HTTP requests for the service catalog and for
// service requests
type ServiceHandler struct {
	catalog  service.CatalogService
	requests service.RequestService
}

// NewServiceHandler creates a new instance of ServiceHandler
func NewServiceHandler(catalog service.CatalogService, requests service.RequestService) *ServiceHandler {
	return &ServiceHandler{catalog: catalog, requests: requests}
}

func serviceErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrServiceNotFound), errors.Is(err, service.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotServiceOwner),
		errors.Is(err, service.ErrNotRequestCustomer),
		errors.Is(err, service.ErrNotRequestOwnCompany):
		return http.StatusForbidden
	case errors.Is(err, service.ErrCompanyNotValidated),
		errors.Is(err, service.ErrServiceNotActive),
		errors.Is(err, service.ErrInvalidTransition):
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

// Publish handles POST /api/v1/services
func (h *ServiceHandler) Publish(c *gin.Context) {
	var req models.CreateServicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, actorType := callerIdentity(c)
	svc, err := h.catalog.Publish(actorID, actorType, &req)
	if err != nil {
		c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": svc})
}

// List handles GET /api/v1/services with an optional industry_id filter
func (h *ServiceHandler) List(c *gin.Context) {
	var industryID *uuid.UUID
	if raw := c.Query("industry_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid industry_id"})
			return
		}
		industryID = &id
	}

	services, err := h.catalog.ListActive(industryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": services})
}

// GetBySlug handles GET /api/v1/services/:slug
func (h *ServiceHandler) GetBySlug(c *gin.Context) {
	svc, err := h.catalog.GetBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": svc})
}

// Update handles PATCH /api/v1/services/:id
func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}

	var req models.UpdateServicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, actorType := callerIdentity(c)
	svc, err := h.catalog.Update(id, actorID, actorType, &req)
	if err != nil {
		c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": svc})
}

// Delete handles DELETE /api/v1/services/:id
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}

	actorID, actorType := callerIdentity(c)
	if err := h.catalog.Delete(id, actorID, actorType); err != nil {
		c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}

// PlaceRequest handles POST /api/v1/requests
func (h *ServiceHandler) PlaceRequest(c *gin.Context) {
	var req models.PlaceRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customerID, _ := callerIdentity(c)
	request, err := h.requests.Place(customerID, &req)
	if err != nil {
		c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": request})
}

// ListMyRequests handles GET /api/v1/requests/mine
func (h *ServiceHandler) ListMyRequests(c *gin.Context) {
	customerID, _ := callerIdentity(c)
	requests, err := h.requests.ListForCustomer(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": requests})
}

// ListCompanyRequests handles GET /api/v1/requests/company/:id
func (h *ServiceHandler) ListCompanyRequests(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	actorID, actorType := callerIdentity(c)
	requests, err := h.requests.ListForCompany(companyID, actorID, actorType)
	if err != nil {
		c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": requests})
}

func (h *ServiceHandler) transition(c *gin.Context, apply func(uuid.UUID, uuid.UUID, string) error, message string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	actorID, actorType := callerIdentity(c)
	if err := apply(id, actorID, actorType); err != nil {
		c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// AcceptRequest handles PATCH /api/v1/requests/:id/accept
func (h *ServiceHandler) AcceptRequest(c *gin.Context) {
	h.transition(c, h.requests.Accept, "request accepted")
}

// CompleteRequest handles PATCH /api/v1/requests/:id/complete
func (h *ServiceHandler) CompleteRequest(c *gin.Context) {
	h.transition(c, h.requests.Complete, "request completed")
}

// CancelRequest handles PATCH /api/v1/requests/:id/cancel
func (h *ServiceHandler) CancelRequest(c *gin.Context) {
	h.transition(c, h.requests.Cancel, "request cancelled")
}
