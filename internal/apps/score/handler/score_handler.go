package handler

import (
	"errors"
	"net/http"

	"komakresan-backend/internal/apps/score/models"
	"komakresan-backend/internal/apps/score/service"
	"komakresan-backend/internal/common/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ScoreHandler handles HTTP requests for service scores
type ScoreHandler struct {
	service service.ScoreService
}

// NewScoreHandler creates a new instance of ScoreHandler
func NewScoreHandler(service service.ScoreService) *ScoreHandler {
	return &ScoreHandler{service: service}
}

func scoreErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrScoreNotFound), errors.Is(err, service.ErrScoredRequestGone):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotScoreCustomer):
		return http.StatusForbidden
	case errors.Is(err, service.ErrRequestNotDone), errors.Is(err, service.ErrAlreadyScored):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Submit handles POST /api/v1/scores
func (h *ScoreHandler) Submit(c *gin.Context) {
	var req models.SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customerID, _ := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	score, err := h.service.Submit(customerID, &req)
	if err != nil {
		c.JSON(scoreErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": score})
}

// GetForRequest handles GET /api/v1/scores/request/:id
func (h *ScoreHandler) GetForRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	score, err := h.service.GetForRequest(requestID)
	if err != nil {
		c.JSON(scoreErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": score})
}

// CompanySummary handles GET /api/v1/scores/company/:id
func (h *ScoreHandler) CompanySummary(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	summary, err := h.service.CompanySummary(companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}
