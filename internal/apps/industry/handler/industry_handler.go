package handler

import (
	"errors"
	"net/http"

	"komakresan-backend/internal/apps/industry/models"
	"komakresan-backend/internal/apps/industry/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IndustryHandler handles HTTP requests for the industry catalog
type IndustryHandler struct {
	service service.IndustryService
}

// NewIndustryHandler creates a new instance of IndustryHandler
func NewIndustryHandler(service service.IndustryService) *IndustryHandler {
	return &IndustryHandler{service: service}
}

func industryErrorStatus(err error) int {
	if errors.Is(err, service.ErrCategoryNotFound) || errors.Is(err, service.ErrIndustryNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// CreateCategory handles POST /api/v1/industries/categories
func (h *IndustryHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.service.CreateCategory(req)
	if err != nil {
		c.JSON(industryErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": category})
}

// ListCategories handles GET /api/v1/industries/categories
func (h *IndustryHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// CreateIndustry handles POST /api/v1/industries
func (h *IndustryHandler) CreateIndustry(c *gin.Context) {
	var req models.CreateIndustryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	industry, err := h.service.CreateIndustry(req)
	if err != nil {
		c.JSON(industryErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": industry})
}

// ListIndustries handles GET /api/v1/industries
func (h *IndustryHandler) ListIndustries(c *gin.Context) {
	industries, err := h.service.ListIndustries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": industries})
}

// GetIndustry handles GET /api/v1/industries/:slug
func (h *IndustryHandler) GetIndustry(c *gin.Context) {
	industry, err := h.service.GetIndustryBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(industryErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": industry})
}

// UpdateIndustry handles PATCH /api/v1/industries/:id
func (h *IndustryHandler) UpdateIndustry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid industry id"})
		return
	}

	var req models.UpdateIndustryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	industry, err := h.service.UpdateIndustry(id, req)
	if err != nil {
		c.JSON(industryErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": industry})
}

// DeleteIndustry handles DELETE /api/v1/industries/:id
func (h *IndustryHandler) DeleteIndustry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid industry id"})
		return
	}

	if err := h.service.DeleteIndustry(id); err != nil {
		c.JSON(industryErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "industry deleted"})
}
