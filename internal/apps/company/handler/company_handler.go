package handler

import (
	"errors"
	"net/http"

	"komakresan-backend/internal/apps/company/models"
	"komakresan-backend/internal/apps/company/service"
	usermodels "komakresan-backend/internal/apps/user/models"
	"komakresan-backend/internal/common/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyHandler handles HTTP requests for companies
type CompanyHandler struct {
	service service.CompanyService
}

// NewCompanyHandler creates a new instance of CompanyHandler
func NewCompanyHandler(service service.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

func companyErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrCompanyNameTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotCompanyOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func callerIdentity(c *gin.Context) (uuid.UUID, string) {
	id, _ := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	userType, _ := c.MustGet(middleware.ContextUserType).(string)
	return id, userType
}

// Create handles POST /api/v1/companies
func (h *CompanyHandler) Create(c *gin.Context) {
	var req models.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employerID, _ := callerIdentity(c)
	company, err := h.service.Create(employerID, &req)
	if err != nil {
		c.JSON(companyErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": company})
}

// List handles GET /api/v1/companies. Admins see every company, everyone
// else only validated ones.
func (h *CompanyHandler) List(c *gin.Context) {
	includeUnvalidated := false
	if raw, ok := c.Get(middleware.ContextUserType); ok {
		if userType, ok := raw.(string); ok && userType == string(usermodels.UserTypeAdmin) {
			includeUnvalidated = true
		}
	}

	companies, err := h.service.List(includeUnvalidated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": companies})
}

// ListMine handles GET /api/v1/companies/mine
func (h *CompanyHandler) ListMine(c *gin.Context) {
	employerID, _ := callerIdentity(c)
	companies, err := h.service.ListMine(employerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": companies})
}

// GetBySlug handles GET /api/v1/companies/:slug
func (h *CompanyHandler) GetBySlug(c *gin.Context) {
	company, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(companyErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": company})
}

// Update handles PATCH /api/v1/companies/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	var req models.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, actorType := callerIdentity(c)
	company, err := h.service.Update(id, actorID, actorType, &req)
	if err != nil {
		c.JSON(companyErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": company})
}

// Validate handles PATCH /api/v1/companies/:id/validate
func (h *CompanyHandler) Validate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	var req struct {
		IsValidated bool `json:"is_validated"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SetValidated(id, req.IsValidated); err != nil {
		c.JSON(companyErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "company validation updated"})
}

// Delete handles DELETE /api/v1/companies/:id
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	actorID, actorType := callerIdentity(c)
	if err := h.service.Delete(id, actorID, actorType); err != nil {
		c.JSON(companyErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "company deleted"})
}
