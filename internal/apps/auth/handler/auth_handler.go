package handler

import (
	"errors"
	"net/http"

	"komakresan-backend/internal/apps/auth/models"
	"komakresan-backend/internal/apps/auth/service"
	otpservice "komakresan-backend/internal/apps/otp/service"
	"komakresan-backend/pkg/password"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for the authentication flows
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new instance of AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// flowErrorStatus maps flow errors to HTTP status codes
func flowErrorStatus(err error) int {
	switch {
	case errors.Is(err, otpservice.ErrOTPNotFound), errors.Is(err, service.ErrUnknownPhone):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInactiveAccount):
		return http.StatusUnauthorized
	case errors.Is(err, otpservice.ErrInactive),
		errors.Is(err, otpservice.ErrInvalidCode),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrPhoneTaken),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrPasswordIsUsername),
		errors.Is(err, service.ErrInvalidUserType),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, password.ErrPolicyViolation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// StartRegistration handles POST /api/v1/auth/register-otp
func (h *AuthHandler) StartRegistration(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.StartRegistration(req)
	if err != nil {
		c.JSON(flowErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// CompleteRegistration handles POST /api/v1/auth/validate-otp/:token
func (h *AuthHandler) CompleteRegistration(c *gin.Context) {
	var req models.CodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, tokens, err := h.service.CompleteRegistration(c.Param("token"), req.Code)
	if err != nil {
		c.JSON(flowErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"user": user, "tokens": tokens}})
}

// StartLogin handles POST /api/v1/auth/login-otp
func (h *AuthHandler) StartLogin(c *gin.Context) {
	var req models.PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.StartLogin(req.Phone)
	if err != nil {
		c.JSON(flowErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// CompleteLogin handles POST /api/v1/auth/login-validate-otp/:token
func (h *AuthHandler) CompleteLogin(c *gin.Context) {
	var req models.CodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.service.CompleteLogin(c.Param("token"), req.Code)
	if err != nil {
		c.JSON(flowErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// PasswordLogin handles POST /api/v1/auth/login
func (h *AuthHandler) PasswordLogin(c *gin.Context) {
	var req models.PasswordLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.service.PasswordLogin(req.Phone, req.Password)
	if err != nil {
		c.JSON(flowErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// StartPasswordReset handles POST /api/v1/auth/reset-password-otp
func (h *AuthHandler) StartPasswordReset(c *gin.Context) {
	var req models.PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.StartPasswordReset(req.Phone)
	if err != nil {
		c.JSON(flowErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// CompletePasswordReset handles POST /api/v1/auth/reset-password-validate-otp/:token
func (h *AuthHandler) CompletePasswordReset(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.CompletePasswordReset(c.Param("token"), req); err != nil {
		c.JSON(flowErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password reset successfully"})
}
