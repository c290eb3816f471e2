package auth

import (
	"go-worksuite/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", middleware.RateLimitByIP(rate.Limit(1), 5), handler.Register)
		auth.POST("/login", middleware.RateLimitByIP(rate.Limit(1), 5), handler.Login)
		auth.POST("/refresh", handler.Refresh)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(), handler.Me)
	}
}
