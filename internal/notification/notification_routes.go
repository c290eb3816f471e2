package notification

import (
	"go-worksuite/internal/access"
	"go-worksuite/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	resolver middleware.CallerResolver,
	policy access.Enforcer,
) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(), middleware.ResolveCaller(resolver))
	{
		// Mark-read only touches the caller's own rows, so the read grant
		// is enough for every endpoint here.
		notifications.GET("", middleware.Authorize(policy, access.ResourceNotification, access.ActionRead), handler.GetAll)
		notifications.GET("/unread-count", middleware.Authorize(policy, access.ResourceNotification, access.ActionRead), handler.UnreadCount)
		notifications.POST("/:id/read", middleware.Authorize(policy, access.ResourceNotification, access.ActionRead), handler.MarkRead)
		notifications.POST("/read-all", middleware.Authorize(policy, access.ResourceNotification, access.ActionRead), handler.MarkAllRead)
	}
}
