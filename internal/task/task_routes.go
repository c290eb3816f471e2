package task

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
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware(), middleware.ResolveCaller(resolver))
	{
		tasks.GET("", middleware.Authorize(policy, access.ResourceTask, access.ActionRead), handler.GetAll)
		tasks.GET("/:id", middleware.Authorize(policy, access.ResourceTask, access.ActionRead), handler.GetById)
		tasks.POST("", middleware.Authorize(policy, access.ResourceTask, access.ActionCreate), handler.Create)
		tasks.PUT("/:id", middleware.Authorize(policy, access.ResourceTask, access.ActionUpdate), handler.Update)
		tasks.PATCH("/:id/status", middleware.Authorize(policy, access.ResourceTask, access.ActionUpdate), handler.UpdateStatus)
		tasks.PATCH("/:id/assignee", middleware.Authorize(policy, access.ResourceTask, access.ActionUpdate), handler.Assign)
		tasks.DELETE("/:id", middleware.Authorize(policy, access.ResourceTask, access.ActionDelete), handler.Delete)

		tasks.GET("/:id/comments", middleware.Authorize(policy, access.ResourceTask, access.ActionRead), handler.GetComments)
		tasks.POST("/:id/comments", middleware.Authorize(policy, access.ResourceTask, access.ActionComment), handler.AddComment)
		tasks.DELETE("/:id/comments/:commentId", middleware.Authorize(policy, access.ResourceTask, access.ActionComment), handler.DeleteComment)
	}
}
