package leave

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
	leaves := r.Group("/leave-requests")
	leaves.Use(middleware.AuthMiddleware(), middleware.ResolveCaller(resolver))
	{
		leaves.GET("", middleware.Authorize(policy, access.ResourceLeave, access.ActionRead), handler.GetAll)
		leaves.GET("/:id", middleware.Authorize(policy, access.ResourceLeave, access.ActionRead), handler.GetById)
		leaves.POST("", middleware.Authorize(policy, access.ResourceLeave, access.ActionCreate), handler.Create)
		leaves.POST("/:id/approve", middleware.Authorize(policy, access.ResourceLeave, access.ActionApprove), handler.Approve)
		leaves.POST("/:id/reject", middleware.Authorize(policy, access.ResourceLeave, access.ActionApprove), handler.Reject)
	}
}
