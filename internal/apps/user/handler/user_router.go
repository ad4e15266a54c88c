package handler

import (
	usermodels "komakresan-backend/internal/apps/user/models"
	"komakresan-backend/internal/common/middleware"
	"komakresan-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers all user-related routes
func RegisterUserRoutes(router *gin.RouterGroup, handler *UserHandler, maker *token.Maker) {
	users := router.Group("/users")
	{
		users.GET("", middleware.RequireUserType(maker, string(usermodels.UserTypeAdmin)), handler.ListUsers)
		users.GET("/:username", middleware.RequireAuth(maker), handler.GetUser)
		users.PATCH("/id-card", middleware.RequireAuth(maker), handler.UpdateIDCard)
	}
}
