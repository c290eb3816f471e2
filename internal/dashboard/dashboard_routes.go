package dashboard

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
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(), middleware.ResolveCaller(resolver))
	{
		dashboard.GET("", middleware.Authorize(policy, access.ResourceDashboard, access.ActionRead), handler.Summary)
	}
}
