package handler

import (
	"errors"
	"net/http"
	"strconv"

	"komakresan-backend/internal/apps/user/models"
	"komakresan-backend/internal/apps/user/service"
	"komakresan-backend/internal/common/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new instance of UserHandler
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func callerIdentity(c *gin.Context) (uuid.UUID, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	isAdmin := c.GetString(middleware.ContextUserType) == string(models.UserTypeAdmin)
	return userID, isAdmin
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	users, total, err := h.service.List(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users, "total": total, "page": page})
}

// GetUser handles GET /api/v1/users/:username
func (h *UserHandler) GetUser(c *gin.Context) {
	requesterID, isAdmin := callerIdentity(c)

	resp, err := h.service.GetByUsername(requesterID, isAdmin, c.Param("username"))
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrForbidden):
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// UpdateIDCard handles PATCH /api/v1/users/id-card
func (h *UserHandler) UpdateIDCard(c *gin.Context) {
	requesterID, isAdmin := callerIdentity(c)

	var req models.UpdateIDCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := h.service.UpdateIDCard(requesterID, isAdmin, req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": info})
}
