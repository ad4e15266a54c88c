package handler

import (
	"komakresan-backend/internal/common/middleware"
	"komakresan-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers all authentication-flow routes. Every endpoint
// is for anonymous clients; authenticated callers are rejected.
func RegisterAuthRoutes(router *gin.RouterGroup, handler *AuthHandler, maker *token.Maker) {
	auth := router.Group("/auth", middleware.RejectAuthenticated(maker))
	{
		auth.POST("/register-otp", handler.StartRegistration)
		auth.POST("/validate-otp/:token", handler.CompleteRegistration)

		auth.POST("/login", handler.PasswordLogin)
		auth.POST("/login-otp", handler.StartLogin)
		auth.POST("/login-validate-otp/:token", handler.CompleteLogin)

		auth.POST("/reset-password-otp", handler.StartPasswordReset)
		auth.POST("/reset-password-validate-otp/:token", handler.CompletePasswordReset)
	}
}
